// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v21

import (
	"encoding/xml"
	"errors"

	"github.com/shopspring/decimal"
)

// CreateAPPayment posts an AP payment applying bill lines and
// credit memo lines against a bank account.
type CreateAPPayment struct {
	XMLName        xml.Name        `xml:"create_appayment"`
	BankAccountID  string          `xml:"bankaccountid"`
	VendorID       string          `xml:"vendorid"`
	Memo           string          `xml:"memo,omitempty"`
	DocumentNumber string          `xml:"documentnumber,omitempty"`
	DateCreated    DateYMD         `xml:"datecreated"`
	PaymentMethod  string          `xml:"paymentmethod"`
	Details        []PaymentDetail `xml:"paymentdetails>paymentdetail"`
}

// PaymentDetail applies one bill line and/or one credit memo line to
// a payment.  The gateway rejects a detail carrying both a payment
// amount and a credit application, so applying a credit clears the
// payment amount at construction time; BillAmount and CreditAmount
// are never both serialized.
type PaymentDetail struct {
	BillRecordKey string           `xml:"recordkey"`
	BillLineKey   string           `xml:"entrykey,omitempty"`
	BillAmount    *decimal.Decimal `xml:"paymentamount,omitempty"`

	CreditRecordKey string           `xml:"creditmemokey,omitempty"`
	CreditLineKey   string           `xml:"creditmemoentrykey,omitempty"`
	CreditAmount    *decimal.Decimal `xml:"creditmemoamount,omitempty"`
}

// DebitDetail returns a detail paying amount against a bill line.
func DebitDetail(billKey, billLineKey string, amount decimal.Decimal) PaymentDetail {
	return PaymentDetail{
		BillRecordKey: billKey,
		BillLineKey:   billLineKey,
		BillAmount:    &amount,
	}
}

// ApplyCredit converts pd into a credit application of amount from
// the given credit memo line.  The plain payment amount is cleared:
// a detail may not carry both.
func (pd PaymentDetail) ApplyCredit(creditKey, creditLineKey string, amount decimal.Decimal) PaymentDetail {
	pd.CreditRecordKey = creditKey
	pd.CreditLineKey = creditLineKey
	pd.CreditAmount = &amount
	pd.BillAmount = nil
	return pd
}

// Validate checks the exactly-one-application invariant for every
// detail on the payment.
func (p *CreateAPPayment) Validate() error {
	if len(p.Details) == 0 {
		return errors.New("payment has no details")
	}
	for _, d := range p.Details {
		if d.BillAmount == nil && d.CreditAmount == nil {
			return errors.New("payment detail carries neither a payment nor a credit amount")
		}
		if d.BillAmount != nil && d.CreditAmount != nil {
			return errors.New("payment detail carries both a payment and a credit amount")
		}
		if d.BillRecordKey == "" {
			return errors.New("payment detail missing bill record key")
		}
	}
	return nil
}
