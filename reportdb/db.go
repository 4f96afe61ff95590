// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package reportdb stores report records in a SQL database.
package reportdb

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/laiszig/benchmarks-bft/report"
)

// DB is a high-level interface to a database of report records. It's
// safe for concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertUpload *sql.Stmt
	insertRecord *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Uploads (
	UploadID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Created BIGINT
);
CREATE TABLE IF NOT EXISTS Records (
	UploadID BIGINT UNSIGNED,
	RecordID BIGINT UNSIGNED,
	Protocol VARCHAR(255),
	File VARCHAR(1024),
	ReportNum BIGINT,
	Timestamp DOUBLE,
	Throughput DOUBLE,
	LatencyAvg DOUBLE,
	LatencyMax DOUBLE,
	AvgBlockExecTime DOUBLE,
	AvgMessageProcTime DOUBLE,
	PRIMARY KEY (UploadID, RecordID),
{{if not .sqlite3}}
	Index (Protocol(100)),
{{end}}
	FOREIGN KEY (UploadID) REFERENCES Uploads(UploadID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS RecordsProtocol ON Records(Protocol);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertUpload, err = db.sql.Prepare("INSERT INTO Uploads(Created) VALUES (?)")
	if err != nil {
		return err
	}
	db.insertRecord, err = db.sql.Prepare("INSERT INTO Records(UploadID, RecordID, " + recordCols + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// recordCols are the Records columns holding a report.Record, in
// report.Columns order.
const recordCols = "Protocol, File, ReportNum, Timestamp, Throughput, LatencyAvg, LatencyMax, AvgBlockExecTime, AvgMessageProcTime"

// now is time.Now, replaced in tests.
var now = time.Now

// An Upload is a set of records stored together in one transaction.
//
// While an Upload is open, it holds a database connection. On a
// single-connection database such as in-memory sqlite, other DB
// methods block until the Upload is committed or aborted.
type Upload struct {
	// ID is the key of the upload in the Uploads table.
	ID int64

	// recordid is the index of the next record to insert.
	recordid int64
	ctx      context.Context
	tx       *sql.Tx
	db       *DB
}

// NewUpload starts a new upload. All records written to the Upload
// share its ID and become visible together when it is committed.
func (db *DB) NewUpload(ctx context.Context) (*Upload, error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	res, err := tx.StmtContext(ctx, db.insertUpload).ExecContext(ctx, now().Unix())
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	return &Upload{ID: id, ctx: ctx, tx: tx, db: db}, nil
}

// InsertRecord adds rec to the upload.
func (u *Upload) InsertRecord(rec *report.Record) error {
	_, err := u.tx.StmtContext(u.ctx, u.db.insertRecord).ExecContext(u.ctx,
		u.ID, u.recordid,
		rec.Protocol, rec.File, rec.ReportNum, rec.Timestamp,
		rec.Throughput, rec.LatencyAvg, rec.LatencyMax,
		rec.AvgBlockExecTime, rec.AvgMessageProcTime)
	if err != nil {
		return err
	}
	u.recordid++
	return nil
}

// Commit finishes the upload.
func (u *Upload) Commit() error {
	return u.tx.Commit()
}

// Abort discards the upload and every record inserted into it.
func (u *Upload) Abort() error {
	return u.tx.Rollback()
}

// Store writes recs as a single new upload and returns its ID.
func (db *DB) Store(ctx context.Context, recs []report.Record) (id int64, err error) {
	u, err := db.NewUpload(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			u.Abort()
		} else {
			err = u.Commit()
		}
	}()
	for i := range recs {
		if err := u.InsertRecord(&recs[i]); err != nil {
			return 0, err
		}
	}
	return u.ID, nil
}

// Records returns the stored records of protocol, or of every
// protocol if protocol is "", in upload and insertion order.
func (db *DB) Records(ctx context.Context, protocol string) ([]report.Record, error) {
	q := "SELECT " + recordCols + " FROM Records"
	var args []interface{}
	if protocol != "" {
		q += " WHERE Protocol = ?"
		args = append(args, protocol)
	}
	q += " ORDER BY UploadID, RecordID"
	rows, err := db.sql.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var recs []report.Record
	for rows.Next() {
		var r report.Record
		if err := rows.Scan(&r.Protocol, &r.File, &r.ReportNum, &r.Timestamp,
			&r.Throughput, &r.LatencyAvg, &r.LatencyMax,
			&r.AvgBlockExecTime, &r.AvgMessageProcTime); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Protocols returns the distinct protocols with stored records, in
// sorted order.
func (db *DB) Protocols(ctx context.Context) ([]string, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT DISTINCT Protocol FROM Records ORDER BY Protocol")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ps []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, rows.Err()
}

// CountUploads returns the number of uploads in the database.
func (db *DB) CountUploads(ctx context.Context) (int, error) {
	var count int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Uploads").Scan(&count)
	return count, err
}

// DeleteUpload deletes the upload with the given ID and its records.
func (db *DB) DeleteUpload(ctx context.Context, id int64) error {
	res, err := db.sql.ExecContext(ctx, "DELETE FROM Uploads WHERE UploadID = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("upload %d not found", id)
	}
	return nil
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertUpload.Close(); err != nil {
		return err
	}
	if err := db.insertRecord.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
