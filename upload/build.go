// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package upload

import (
	"github.com/freightdesk/intacct"
	"github.com/freightdesk/intacct/v21"
	"github.com/shopspring/decimal"
)

// Builders translating domain records to 2.1 payloads.  Amount signs
// follow the record as given; credit memo handling happens upstream.

func receivableFunction(r *Receivable) *intacct.LegacyFunction {
	items := make([]v21.SOTransItem, 0, len(r.Lines))
	for _, ln := range r.Lines {
		items = append(items, v21.SOTransItem{
			ItemID:       ln.ChargeCode,
			Quantity:     decimal.NewFromInt(1),
			Unit:         "Each",
			Price:        ln.Amount,
			Memo:         ln.ChargeDescription,
			LocationID:   ln.LocationID,
			DepartmentID: ln.DepartmentID,
			ClassID:      ln.BrokerFile,
			ProjectID:    ln.FreightFile,
		})
	}
	transactionType := "Sales Invoice"
	if r.CreditMemo {
		transactionType = "Credit Memo"
	}
	return &intacct.LegacyFunction{Payload: &v21.CreateSOTransaction{
		TransactionType: transactionType,
		DateCreated:     v21.TimeToDateYMD(r.InvoiceDate),
		CustomerID:      r.CustomerID,
		DocumentNumber:  r.InvoiceNumber,
		Currency:        r.Currency,
		Items:           items,
	}}
}

func payableFunction(p *Payable) *intacct.LegacyFunction {
	items := make([]v21.LineItem, 0, len(p.Lines))
	for _, ln := range p.Lines {
		items = append(items, v21.LineItem{
			GLAccountNumber: ln.GLAccount,
			Amount:          ln.Amount,
			Memo:            ln.ChargeDescription,
			LocationID:      ln.LocationID,
			DepartmentID:    ln.DepartmentID,
			ClassID:         ln.BrokerFile,
			ProjectID:       ln.FreightFile,
		})
	}
	return &intacct.LegacyFunction{Payload: &v21.CreateBill{
		VendorID:    p.VendorID,
		DateCreated: v21.TimeToDateYMD(p.BillDate),
		BillNumber:  p.BillNumber,
		Currency:    p.Currency,
		Items:       items,
	}}
}

// checkAdjustmentFunction books a check against its payable: a
// negative AP adjustment that relieves the vendor balance.
func checkAdjustmentFunction(p *Payable, c *Check) *intacct.LegacyFunction {
	return &intacct.LegacyFunction{Payload: &v21.CreateAPAdjustment{
		VendorID:         c.VendorID,
		DateCreated:      v21.TimeToDateYMD(c.CheckDate),
		AdjustmentNumber: c.CheckNumber,
		BillNumber:       p.BillNumber,
		Description:      c.Memo,
		Items: []v21.LineItem{{
			GLAccountNumber: c.GLAccount,
			Amount:          c.Amount.Neg(),
			Memo:            c.Memo,
			LocationID:      c.LocationID,
			DepartmentID:    c.DepartmentID,
			ClassID:         c.BrokerFile,
			ProjectID:       c.FreightFile,
		}},
	}}
}

// checkGLFunction posts a standalone check through the cash
// disbursements journal: credit the bank account, debit the expense.
func checkGLFunction(c *Check) *intacct.LegacyFunction {
	line := func(trType, account string) v21.GLEntry {
		return v21.GLEntry{
			Type:            trType,
			Amount:          c.Amount,
			GLAccountNumber: account,
			Document:        c.CheckNumber,
			DateCreated:     v21.TimeToDateYMD(c.CheckDate),
			Memo:            c.Memo,
			LocationID:      c.LocationID,
			DepartmentID:    c.DepartmentID,
			ClassID:         c.BrokerFile,
			ProjectID:       c.FreightFile,
			VendorID:        c.VendorID,
		}
	}
	return &intacct.LegacyFunction{Payload: &v21.CreateGLTransaction{
		JournalID:       "CD",
		DateCreated:     v21.TimeToDateYMD(c.CheckDate),
		Description:     c.Memo,
		ReferenceNumber: c.CheckNumber,
		Entries: []v21.GLEntry{
			line("credit", c.BankGLAccount),
			line("debit", c.GLAccount),
		},
	}}
}
