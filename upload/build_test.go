// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package upload

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdesk/intacct/v21"
)

func TestReceivableFunction(t *testing.T) {
	r := testReceivable()
	fn := receivableFunction(r)
	so, ok := fn.Payload.(*v21.CreateSOTransaction)
	require.True(t, ok)
	assert.Equal(t, "Sales Invoice", so.TransactionType)
	assert.Equal(t, "C-9", so.CustomerID)
	assert.Equal(t, "INV-1001", so.DocumentNumber)
	require.Len(t, so.Items, 1)
	assert.Equal(t, "BF-1", so.Items[0].ClassID, "broker file travels as the class dimension")
	assert.Equal(t, "FF-1", so.Items[0].ProjectID, "freight file travels as the project dimension")
	assert.Equal(t, "Each", so.Items[0].Unit)
	assert.Equal(t, int64(1), so.Items[0].Quantity.IntPart())

	r.CreditMemo = true
	so = receivableFunction(r).Payload.(*v21.CreateSOTransaction)
	assert.Equal(t, "Credit Memo", so.TransactionType)
}

func TestReceivableFunction_AmountText(t *testing.T) {
	b, err := xml.Marshal(receivableFunction(testReceivable()))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), "<price>1500</price>"),
		"amounts serialize as exact decimal text: %s", b)
	assert.True(t, strings.Contains(string(b), "<datecreated><year>2024</year><month>2</month><day>1</day></datecreated>"),
		"dates serialize as year/month/day: %s", b)
}

func TestPayableFunction(t *testing.T) {
	p := testPayable()
	bill, ok := payableFunction(p).Payload.(*v21.CreateBill)
	require.True(t, ok)
	assert.Equal(t, "V-7", bill.VendorID)
	assert.Equal(t, "B-2001", bill.BillNumber)
	require.Len(t, bill.Items, 1)
	assert.Equal(t, "6000", bill.Items[0].GLAccountNumber)
}

func TestCheckAdjustmentFunction(t *testing.T) {
	p, ck := testPayable(), testCheck("9001")
	adj, ok := checkAdjustmentFunction(p, ck).Payload.(*v21.CreateAPAdjustment)
	require.True(t, ok)
	assert.Equal(t, "B-2001", adj.BillNumber)
	assert.Equal(t, "9001", adj.AdjustmentNumber)
	require.Len(t, adj.Items, 1)
	assert.True(t, adj.Items[0].Amount.IsNegative())
}

func TestCheckGLFunction(t *testing.T) {
	gl, ok := checkGLFunction(testCheck("9001")).Payload.(*v21.CreateGLTransaction)
	require.True(t, ok)
	assert.Equal(t, "CD", gl.JournalID)
	require.Len(t, gl.Entries, 2)
	assert.Equal(t, "credit", gl.Entries[0].Type)
	assert.Equal(t, "1000", gl.Entries[0].GLAccountNumber)
	assert.Equal(t, "debit", gl.Entries[1].Type)
	assert.Equal(t, "6000", gl.Entries[1].GLAccountNumber)
	assert.True(t, gl.Balanced())
}
