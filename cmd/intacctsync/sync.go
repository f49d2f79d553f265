// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/freightdesk/intacct/pgstore"
	"github.com/freightdesk/intacct/upload"
)

var syncLimit int

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Upload pending receivables, payables and checks",
	Long: `sync pulls records awaiting upload from the database (DATABASE_URL)
and posts them in order: receivables, then payables with their
checks, then standalone checks.  Each record's outcome is written
back; a failed record does not stop the run.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().IntVar(&syncLimit, "limit", 100, "max records per type")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	pool, err := pgstore.NewPool(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()
	store := pgstore.New(pool)
	client, err := newClient(store)
	if err != nil {
		return err
	}

	receivables, err := store.PendingReceivables(ctx, syncLimit)
	if err != nil {
		return err
	}
	for _, r := range receivables {
		if err := client.SendReceivable(ctx, r); err != nil {
			return err
		}
	}

	payables, err := store.PendingPayables(ctx, syncLimit)
	if err != nil {
		return err
	}
	for _, p := range payables {
		checks, err := store.ChecksForPayable(ctx, p.ID)
		if err != nil {
			return err
		}
		if err := client.SendPayable(ctx, p, checks...); err != nil {
			return err
		}
	}

	checks, err := store.PendingChecks(ctx, syncLimit)
	if err != nil {
		return err
	}
	for _, c := range checks {
		if err := client.SendCheck(ctx, c, nil); err != nil {
			return err
		}
	}

	logger.Info("sync complete",
		zap.Int("receivables", len(receivables)),
		zap.Int("payables", len(payables)),
		zap.Int("checks", len(checks)))
	printSummary(cmd, receivables, payables, checks)
	return nil
}

func printSummary(cmd *cobra.Command, receivables []*upload.Receivable, payables []*upload.Payable, checks []*upload.Check) {
	var sent, failed int
	count := func(st upload.UploadStatus) {
		if st.Uploaded() {
			sent++
		} else {
			failed++
		}
	}
	for _, r := range receivables {
		count(r.UploadStatus)
	}
	for _, p := range payables {
		count(p.UploadStatus)
	}
	for _, c := range checks {
		count(c.UploadStatus)
	}
	cmd.Printf("uploaded %d record(s), %d failed\n", sent, failed)
}
