// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 registers the sqlite3 driver for use with
// reportdb.OpenSQL.
package sqlite3

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/laiszig/benchmarks-bft/reportdb"
)

func init() {
	reportdb.RegisterOpenHook("sqlite3", func(db *sql.DB) error {
		// Every connection to ":memory:" is a separate database,
		// and the foreign key pragma is per connection.
		db.SetMaxOpenConns(1)
		_, err := db.Exec("PRAGMA foreign_keys = ON")
		return err
	})
}
