// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v21

import (
	"encoding/xml"

	"github.com/shopspring/decimal"
)

// Amounts are decimal.Decimal throughout; they serialize as exact
// decimal text via encoding.TextMarshaler.  Never floats.

// Per-field blank policy: projectid, classid, customerid, vendorid
// and itemid are omitted entirely when blank because sending them
// empty changes how the gateway applies dimension defaulting;
// locationid and departmentid are always sent, empty or not.  Keep
// the split when adding fields.

// CreateSOTransaction posts an order-entry transaction used for
// receivables.
type CreateSOTransaction struct {
	XMLName         xml.Name         `xml:"create_sotransaction"`
	TransactionType string           `xml:"transactiontype"`
	DateCreated     DateYMD          `xml:"datecreated"`
	DatePosted      DateYMD          `xml:"dateposted,omitempty"`
	CustomerID      string           `xml:"customerid"`
	DocumentNumber  string           `xml:"documentno,omitempty"`
	ReferenceNumber string           `xml:"referenceno,omitempty"`
	Currency        string           `xml:"currency,omitempty"`
	ExchRateType    string           `xml:"exchratetype,omitempty"`
	Items           []SOTransItem    `xml:"sotransitems>sotransitem"`
	CustomFields    *[]CustomElement `xml:"customfields>customfield,omitempty"`
}

// SOTransItem is one line of an order-entry transaction.
type SOTransItem struct {
	ItemID       string          `xml:"itemid"`
	Quantity     decimal.Decimal `xml:"quantity"`
	Unit         string          `xml:"unit,omitempty"`
	Price        decimal.Decimal `xml:"price"`
	LocationID   string          `xml:"locationid"`
	DepartmentID string          `xml:"departmentid"`
	Memo         string          `xml:"memo,omitempty"`
	ProjectID    string          `xml:"projectid,omitempty"`
	CustomerID   string          `xml:"customerid,omitempty"`
	VendorID     string          `xml:"vendorid,omitempty"`
	ClassID      string          `xml:"classid,omitempty"`
}

// CustomElement is a named custom field value on a 2.1 payload.
type CustomElement struct {
	Name  string `xml:"customfieldname"`
	Value string `xml:"customfieldvalue"`
}

// CreateBill posts an AP bill used for payables.
type CreateBill struct {
	XMLName      xml.Name         `xml:"create_bill"`
	VendorID     string           `xml:"vendorid"`
	DateCreated  DateYMD          `xml:"datecreated"`
	DatePosted   DateYMD          `xml:"dateposted,omitempty"`
	DateDue      DateYMD          `xml:"datedue,omitempty"`
	TermName     string           `xml:"termname,omitempty"`
	BillNumber   string           `xml:"billno,omitempty"`
	PONumber     string           `xml:"ponumber,omitempty"`
	Description  string           `xml:"description,omitempty"`
	ExternalID   string           `xml:"externalid,omitempty"`
	Currency     string           `xml:"currency,omitempty"`
	ExchRateType string           `xml:"exchratetype,omitempty"`
	Items        []LineItem       `xml:"billitems>lineitem"`
	CustomFields *[]CustomElement `xml:"customfields>customfield,omitempty"`
}

// CreateAPAdjustment posts an AP adjustment; a negative total debits
// the vendor balance, which is how linked checks are represented
// against their bill.
type CreateAPAdjustment struct {
	XMLName          xml.Name   `xml:"create_apadjustment"`
	VendorID         string     `xml:"vendorid"`
	DateCreated      DateYMD    `xml:"datecreated"`
	AdjustmentNumber string     `xml:"adjustmentno,omitempty"`
	BillNumber       string     `xml:"billno,omitempty"`
	Description      string     `xml:"description,omitempty"`
	ExternalID       string     `xml:"externalid,omitempty"`
	Items            []LineItem `xml:"apadjustmentitems>lineitem"`
}

// LineItem is one distribution line of a bill or adjustment.
type LineItem struct {
	GLAccountNumber string          `xml:"glaccountno"`
	Amount          decimal.Decimal `xml:"amount"`
	Memo            string          `xml:"memo,omitempty"`
	LocationID      string          `xml:"locationid"`
	DepartmentID    string          `xml:"departmentid"`
	ProjectID       string          `xml:"projectid,omitempty"`
	CustomerID      string          `xml:"customerid,omitempty"`
	VendorID        string          `xml:"vendorid,omitempty"`
	ItemID          string          `xml:"itemid,omitempty"`
	ClassID         string          `xml:"classid,omitempty"`
}

// CreateGLTransaction posts a journal entry; check disbursements
// post through the cash disbursements journal this way.
type CreateGLTransaction struct {
	XMLName         xml.Name  `xml:"create_gltransaction"`
	JournalID       string    `xml:"journalid"`
	DateCreated     DateYMD   `xml:"datecreated"`
	Description     string    `xml:"description"`
	ReferenceNumber string    `xml:"referenceno,omitempty"`
	Entries         []GLEntry `xml:"gltransactionentries>glentry"`
}

// GLEntry is one side of a journal entry.
type GLEntry struct {
	Type            string          `xml:"trtype"` // debit or credit
	Amount          decimal.Decimal `xml:"amount"`
	GLAccountNumber string          `xml:"glaccountno"`
	Document        string          `xml:"document,omitempty"`
	DateCreated     DateYMD         `xml:"datecreated,omitempty"`
	Memo            string          `xml:"memo,omitempty"`
	LocationID      string          `xml:"locationid"`
	DepartmentID    string          `xml:"departmentid"`
	ProjectID       string          `xml:"projectid,omitempty"`
	CustomerID      string          `xml:"customerid,omitempty"`
	VendorID        string          `xml:"vendorid,omitempty"`
	ClassID         string          `xml:"classid,omitempty"`
}

// Balanced reports whether debits equal credits across entries.
func (g *CreateGLTransaction) Balanced() bool {
	var debit, credit decimal.Decimal
	for _, e := range g.Entries {
		switch e.Type {
		case "debit":
			debit = debit.Add(e.Amount)
		case "credit":
			credit = credit.Add(e.Amount)
		}
	}
	return debit.Equal(credit)
}
