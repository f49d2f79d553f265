// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pgstore persists upload records in PostgreSQL.  The schema
// lives in schema.sql; tracking columns mirror upload.UploadStatus.
package pgstore

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/freightdesk/intacct/upload"
)

// NewPool connects using the DATABASE_URL environment variable and
// verifies the connection with a ping.
func NewPool(ctx context.Context) (*pgxpool.Pool, error) {
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}
	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to parse DATABASE_URL: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return pool, nil
}

// Store implements upload.Store over a pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

// New returns a Store backed by pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) saveStatus(ctx context.Context, table string, id int64, st *upload.UploadStatus) error {
	var uploadDate interface{}
	if !st.IntacctUploadDate.IsZero() {
		uploadDate = st.IntacctUploadDate
	}
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(`
		UPDATE %s
		SET intacct_key = $2, intacct_upload_date = $3, intacct_errors = $4
		WHERE id = $1
	`, table), id, st.IntacctKey, uploadDate, st.IntacctErrors)
	if err != nil {
		return fmt.Errorf("failed to update %s %d: %w", table, id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %d not found", table, id)
	}
	return nil
}

// SaveReceivable writes r's upload outcome.
func (s *Store) SaveReceivable(ctx context.Context, r *upload.Receivable) error {
	return s.saveStatus(ctx, "receivables", r.ID, &r.UploadStatus)
}

// SavePayable writes p's upload outcome.
func (s *Store) SavePayable(ctx context.Context, p *upload.Payable) error {
	return s.saveStatus(ctx, "payables", p.ID, &p.UploadStatus)
}

// SaveCheck writes c's upload outcome.
func (s *Store) SaveCheck(ctx context.Context, c *upload.Check) error {
	return s.saveStatus(ctx, "checks", c.ID, &c.UploadStatus)
}

// PendingReceivables returns receivables that have neither uploaded
// nor recorded a failure, oldest first, lines attached.
func (s *Store) PendingReceivables(ctx context.Context, limit int) ([]*upload.Receivable, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, customer_id, invoice_number, invoice_date, currency, credit_memo
		FROM receivables
		WHERE intacct_key = '' AND intacct_errors = ''
		ORDER BY invoice_date, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query receivables: %w", err)
	}
	defer rows.Close()

	var recs []*upload.Receivable
	for rows.Next() {
		r := &upload.Receivable{}
		if err := rows.Scan(&r.ID, &r.CustomerID, &r.InvoiceNumber, &r.InvoiceDate, &r.Currency, &r.CreditMemo); err != nil {
			return nil, fmt.Errorf("failed to scan receivable: %w", err)
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, r := range recs {
		if r.Lines, err = s.receivableLines(ctx, r.ID); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

func (s *Store) receivableLines(ctx context.Context, id int64) ([]upload.ReceivableLine, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT charge_code, charge_description, amount, location_id, department_id, broker_file, freight_file
		FROM receivable_lines
		WHERE receivable_id = $1
		ORDER BY line_no
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query receivable lines: %w", err)
	}
	defer rows.Close()

	var lines []upload.ReceivableLine
	for rows.Next() {
		var ln upload.ReceivableLine
		if err := rows.Scan(&ln.ChargeCode, &ln.ChargeDescription, &ln.Amount,
			&ln.LocationID, &ln.DepartmentID, &ln.BrokerFile, &ln.FreightFile); err != nil {
			return nil, fmt.Errorf("failed to scan receivable line: %w", err)
		}
		lines = append(lines, ln)
	}
	return lines, rows.Err()
}

// PendingPayables returns payables awaiting upload, lines attached.
func (s *Store) PendingPayables(ctx context.Context, limit int) ([]*upload.Payable, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, vendor_id, bill_number, bill_date, currency
		FROM payables
		WHERE intacct_key = '' AND intacct_errors = ''
		ORDER BY bill_date, id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query payables: %w", err)
	}
	defer rows.Close()

	var recs []*upload.Payable
	for rows.Next() {
		p := &upload.Payable{}
		if err := rows.Scan(&p.ID, &p.VendorID, &p.BillNumber, &p.BillDate, &p.Currency); err != nil {
			return nil, fmt.Errorf("failed to scan payable: %w", err)
		}
		recs = append(recs, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, p := range recs {
		if p.Lines, err = s.payableLines(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return recs, nil
}

func (s *Store) payableLines(ctx context.Context, id int64) ([]upload.PayableLine, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT gl_account, charge_description, amount, location_id, department_id, broker_file, freight_file
		FROM payable_lines
		WHERE payable_id = $1
		ORDER BY line_no
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query payable lines: %w", err)
	}
	defer rows.Close()

	var lines []upload.PayableLine
	for rows.Next() {
		var ln upload.PayableLine
		if err := rows.Scan(&ln.GLAccount, &ln.ChargeDescription, &ln.Amount,
			&ln.LocationID, &ln.DepartmentID, &ln.BrokerFile, &ln.FreightFile); err != nil {
			return nil, fmt.Errorf("failed to scan payable line: %w", err)
		}
		lines = append(lines, ln)
	}
	return lines, rows.Err()
}

// ChecksForPayable returns pending checks written against the
// payable, used to batch them into the payable's envelope.
func (s *Store) ChecksForPayable(ctx context.Context, payableID int64) ([]*upload.Check, error) {
	return s.queryChecks(ctx, `
		SELECT id, vendor_id, check_number, check_date, amount, bank_gl_account, gl_account,
		       memo, location_id, department_id, broker_file, freight_file
		FROM checks
		WHERE payable_id = $1 AND intacct_key = '' AND intacct_errors = ''
		ORDER BY check_date, id
	`, payableID)
}

// PendingChecks returns standalone checks awaiting upload.
func (s *Store) PendingChecks(ctx context.Context, limit int) ([]*upload.Check, error) {
	return s.queryChecks(ctx, `
		SELECT id, vendor_id, check_number, check_date, amount, bank_gl_account, gl_account,
		       memo, location_id, department_id, broker_file, freight_file
		FROM checks
		WHERE payable_id IS NULL AND intacct_key = '' AND intacct_errors = ''
		ORDER BY check_date, id
		LIMIT $1
	`, limit)
}

func (s *Store) queryChecks(ctx context.Context, sql string, args ...interface{}) ([]*upload.Check, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query checks: %w", err)
	}
	defer rows.Close()

	var recs []*upload.Check
	for rows.Next() {
		c := &upload.Check{}
		if err := rows.Scan(&c.ID, &c.VendorID, &c.CheckNumber, &c.CheckDate, &c.Amount,
			&c.BankGLAccount, &c.GLAccount, &c.Memo, &c.LocationID, &c.DepartmentID,
			&c.BrokerFile, &c.FreightFile); err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		recs = append(recs, c)
	}
	return recs, rows.Err()
}

// GetReceivable loads one receivable with its lines.
func (s *Store) GetReceivable(ctx context.Context, id int64) (*upload.Receivable, error) {
	r := &upload.Receivable{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, customer_id, invoice_number, invoice_date, currency, credit_memo,
		       intacct_key, intacct_errors
		FROM receivables WHERE id = $1
	`, id).Scan(&r.ID, &r.CustomerID, &r.InvoiceNumber, &r.InvoiceDate, &r.Currency,
		&r.CreditMemo, &r.IntacctKey, &r.IntacctErrors)
	if err == pgx.ErrNoRows {
		return nil, fmt.Errorf("receivable %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch receivable %d: %w", id, err)
	}
	if r.Lines, err = s.receivableLines(ctx, id); err != nil {
		return nil, err
	}
	return r, nil
}
