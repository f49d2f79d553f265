// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pgstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdesk/intacct"
	"github.com/freightdesk/intacct/upload"
)

// TestStore runs against a live database; set DATABASE_URL to enable.
func TestStore(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx)
	require.NoError(t, err)
	defer pool.Close()

	schema, err := os.ReadFile("schema.sql")
	require.NoError(t, err)
	_, err = pool.Exec(ctx, string(schema))
	require.NoError(t, err)

	var id int64
	err = pool.QueryRow(ctx, `
		INSERT INTO receivables (customer_id, invoice_number, invoice_date)
		VALUES ('C-9', 'INV-IT-1', '2024-02-01')
		RETURNING id
	`).Scan(&id)
	require.NoError(t, err)
	defer pool.Exec(ctx, "DELETE FROM receivable_lines WHERE receivable_id = $1", id)
	defer pool.Exec(ctx, "DELETE FROM receivables WHERE id = $1", id)

	_, err = pool.Exec(ctx, `
		INSERT INTO receivable_lines (receivable_id, line_no, charge_code, amount, broker_file)
		VALUES ($1, 1, 'OCEAN', 1500.00, 'BF-1')
	`, id)
	require.NoError(t, err)

	store := New(pool)

	pending, err := store.PendingReceivables(ctx, 1000)
	require.NoError(t, err)
	var rec *upload.Receivable
	for _, r := range pending {
		if r.ID == id {
			rec = r
		}
	}
	require.NotNil(t, rec, "inserted receivable must be pending")
	require.Len(t, rec.Lines, 1)
	amt, _ := intacct.AmountFromString("1500.00")
	assert.True(t, rec.Lines[0].Amount.Equal(amt))
	assert.Equal(t, "BF-1", rec.Lines[0].BrokerFile)

	rec.IntacctKey = "R-99"
	rec.IntacctUploadDate = time.Now().UTC()
	require.NoError(t, store.SaveReceivable(ctx, rec))

	got, err := store.GetReceivable(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "R-99", got.IntacctKey)
	assert.True(t, got.Uploaded())

	pending, err = store.PendingReceivables(ctx, 1000)
	require.NoError(t, err)
	for _, r := range pending {
		assert.NotEqual(t, id, r.ID, "an uploaded receivable is no longer pending")
	}

	missing := &upload.Receivable{ID: -1}
	assert.Error(t, store.SaveReceivable(ctx, missing))
}
