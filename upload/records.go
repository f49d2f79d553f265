// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package upload

import (
	"context"
	"time"

	"github.com/freightdesk/intacct"
)

// UploadStatus carries the tracking fields every uploaded record
// owns.  The client sets exactly one of Key or Errors per send and
// always persists the record afterwards.
type UploadStatus struct {
	IntacctKey        string
	IntacctUploadDate time.Time
	IntacctErrors     string
}

// Uploaded reports whether the record reached the ledger.
func (u *UploadStatus) Uploaded() bool {
	return u.IntacctKey != ""
}

func (u *UploadStatus) markSent(key string, now time.Time) {
	u.IntacctKey = key
	u.IntacctUploadDate = now
	u.IntacctErrors = ""
}

func (u *UploadStatus) markFailed(err error) {
	u.IntacctErrors = err.Error()
}

// Receivable is an AR invoice awaiting upload.
type Receivable struct {
	ID            int64
	CustomerID    string
	InvoiceNumber string
	InvoiceDate   time.Time
	Currency      string
	CreditMemo    bool
	Lines         []ReceivableLine
	UploadStatus
}

// ReceivableLine is one charge on a receivable.
type ReceivableLine struct {
	ChargeCode        string
	ChargeDescription string
	Amount            intacct.Amount
	LocationID        string
	DepartmentID      string
	BrokerFile        string
	FreightFile       string
}

// Payable is an AP bill awaiting upload.
type Payable struct {
	ID         int64
	VendorID   string
	BillNumber string
	BillDate   time.Time
	Currency   string
	Lines      []PayableLine
	UploadStatus
}

// PayableLine is one distribution on a payable.
type PayableLine struct {
	GLAccount         string
	ChargeDescription string
	Amount            intacct.Amount
	LocationID        string
	DepartmentID      string
	BrokerFile        string
	FreightFile       string
}

// Check is a disbursement awaiting upload.  When a check pays a
// payable it is sent in the payable's envelope as an AP adjustment;
// standalone checks post through the cash disbursements journal.
type Check struct {
	ID            int64
	VendorID      string
	CheckNumber   string
	CheckDate     time.Time
	Amount        intacct.Amount
	BankGLAccount string
	GLAccount     string
	Memo          string
	LocationID    string
	DepartmentID  string
	BrokerFile    string
	FreightFile   string
	UploadStatus
}

// Store persists upload outcomes.  Implementations must return an
// error on constraint violations rather than silently dropping the
// write; the client treats a failed save as fatal to the run.
type Store interface {
	SaveReceivable(ctx context.Context, r *Receivable) error
	SavePayable(ctx context.Context, p *Payable) error
	SaveCheck(ctx context.Context, c *Check) error
}
