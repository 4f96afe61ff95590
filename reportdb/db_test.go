// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reportdb_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/laiszig/benchmarks-bft/report"
	. "github.com/laiszig/benchmarks-bft/reportdb"
	"github.com/laiszig/benchmarks-bft/reportdb/dbtest"
)

var testRecords = []report.Record{
	{"raft", "001-raft.txt", 1, 5, 120.5, 0.05, 0.2, 3, -0.25},
	{"hotstuff", "002-hotstuff.txt", 1, 5, 80, 0.1, 0.4, 2.5, 0},
	{"raft", "001-raft.txt", 2, 10, 130, 0.04, 0.1, 2, 0.5},
}

func TestStoreRecords(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)

	id, err := db.Store(ctx, testRecords)
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if id <= 0 {
		t.Errorf("Store returned upload ID %d", id)
	}

	got, err := db.Records(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(testRecords, got); diff != "" {
		t.Errorf("Records mismatch (-want +got):\n%s", diff)
	}

	got, err = db.Records(ctx, "raft")
	if err != nil {
		t.Fatal(err)
	}
	want := []report.Record{testRecords[0], testRecords[2]}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Records(raft) mismatch (-want +got):\n%s", diff)
	}

	ps, err := db.Protocols(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"hotstuff", "raft"}, ps); diff != "" {
		t.Errorf("Protocols mismatch (-want +got):\n%s", diff)
	}
}

// TestUploadIDs verifies that NewUpload generates increasing upload
// IDs and records the creation time.
func TestUploadIDs(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)

	SetNow(time.Unix(86400, 0))
	defer SetNow(time.Time{})

	var last int64
	for i := 0; i < 3; i++ {
		u, err := db.NewUpload(ctx)
		if err != nil {
			t.Fatalf("NewUpload: %v", err)
		}
		if err := u.Commit(); err != nil {
			t.Fatalf("Commit: %v", err)
		}
		if u.ID <= last {
			t.Errorf("upload %d has ID %d, not after %d", i, u.ID, last)
		}
		last = u.ID
	}
	n, err := db.CountUploads(ctx)
	if err != nil || n != 3 {
		t.Errorf("CountUploads = %d, %v; want 3", n, err)
	}

	var created int64
	if err := DBSQL(db).QueryRow("SELECT Created FROM Uploads WHERE UploadID = ?", last).Scan(&created); err != nil {
		t.Fatal(err)
	}
	if created != 86400 {
		t.Errorf("Created = %d, want 86400", created)
	}
}

func TestAbortUpload(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)

	u, err := db.NewUpload(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := u.InsertRecord(&testRecords[0]); err != nil {
		t.Fatal(err)
	}
	if err := u.Abort(); err != nil {
		t.Fatal(err)
	}

	if n, err := db.CountUploads(ctx); err != nil || n != 0 {
		t.Errorf("CountUploads after Abort = %d, %v; want 0", n, err)
	}
	if recs, err := db.Records(ctx, ""); err != nil || len(recs) != 0 {
		t.Errorf("Records after Abort = %v, %v; want none", recs, err)
	}
}

func TestDeleteUpload(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewDB(t)

	first, err := db.Store(ctx, testRecords[:1])
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Store(ctx, testRecords[1:]); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteUpload(ctx, first); err != nil {
		t.Fatalf("DeleteUpload: %v", err)
	}
	got, err := db.Records(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(testRecords[1:], got); diff != "" {
		t.Errorf("Records after delete mismatch (-want +got):\n%s", diff)
	}
	if err := db.DeleteUpload(ctx, first); err == nil {
		t.Errorf("second DeleteUpload: got nil error")
	}
}
