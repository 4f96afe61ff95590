// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/laiszig/benchmarks-bft/reportdb"
)

func (a *app) exportCmd() *cobra.Command {
	var (
		dbDriver, dbDSN, protocol, output string
		list                              bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the records stored in a database as a CSV dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbc := a.cfg.Database
			if cmd.Flags().Changed("db-driver") {
				dbc.Driver = dbDriver
			}
			if cmd.Flags().Changed("db-dsn") {
				dbc.DSN = dbDSN
			}
			if dbc.Driver == "" || dbc.DSN == "" {
				return errors.New("export requires --db-driver and --db-dsn")
			}
			ctx := cmd.Context()

			db, err := reportdb.OpenSQL(dbc.Driver, dbc.DSN)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close()

			if list {
				ps, err := db.Protocols(ctx)
				if err != nil {
					return err
				}
				for _, p := range ps {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return nil
			}

			recs, err := db.Records(ctx, protocol)
			if err != nil {
				return err
			}
			if err := a.writeDataset(ctx, output, recs); err != nil {
				return err
			}
			a.log.Info("exported records", "output", output, "records", len(recs))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&dbDriver, "db-driver", "", "database driver: sqlite3 or mysql")
	f.StringVar(&dbDSN, "db-dsn", "", "database data source name")
	f.StringVar(&protocol, "protocol", "", "only export records of this protocol")
	f.StringVarP(&output, "output", "o", "-", "dataset location: path, - for stdout, or gs://bucket/object")
	f.BoolVar(&list, "list-protocols", false, "list the stored protocols instead of exporting")
	return cmd
}
