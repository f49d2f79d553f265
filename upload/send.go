// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package upload

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/freightdesk/intacct"
	"github.com/freightdesk/intacct/v21"
)

// SendReceivable posts r as an order entry transaction.  The outcome
// is written onto r and r is persisted either way; a send failure is
// absorbed into r.IntacctErrors rather than returned.  Only
// configuration and persistence errors come back to the caller.
func (c *Client) SendReceivable(ctx context.Context, r *Receivable) error {
	fn := receivableFunction(r)
	controlID, err := intacct.HashFunction(fn)
	if err != nil {
		return &intacct.ConfigError{Reason: "receivable not marshalable", Err: err}
	}
	cc := &intacct.ControlConfig{IsTransaction: true, IsUnique: true}
	resp, err := c.execFinancial(ctx, cc, controlID, fn)
	if err != nil {
		if _, ok := err.(*intacct.ConfigError); ok {
			return err
		}
		c.log.Error("receivable upload failed",
			zap.String("invoice", r.InvoiceNumber),
			zap.Error(err))
		r.markFailed(err)
		return c.store.SaveReceivable(ctx, r)
	}
	r.markSent(resultKey(resp, controlID), c.now())
	c.log.Info("receivable uploaded",
		zap.String("invoice", r.InvoiceNumber),
		zap.String("key", r.IntacctKey))
	return c.store.SaveReceivable(ctx, r)
}

// SendPayable posts p as a bill, together with any checks already
// written against it.  The bill and the check adjustments travel in
// one transactional envelope, so either every record receives its
// ledger key or none does.
func (c *Client) SendPayable(ctx context.Context, p *Payable, checks ...*Check) error {
	fns := make([]intacct.Function, 0, len(checks)+1)
	ids := make([]string, 0, len(checks)+1)

	billFn := payableFunction(p)
	billID, err := intacct.HashFunction(billFn)
	if err != nil {
		return &intacct.ConfigError{Reason: "payable not marshalable", Err: err}
	}
	fns, ids = append(fns, billFn), append(ids, billID)
	for _, ck := range checks {
		fn := checkAdjustmentFunction(p, ck)
		id, err := intacct.HashFunction(fn)
		if err != nil {
			return &intacct.ConfigError{Reason: "check not marshalable", Err: err}
		}
		fns, ids = append(fns, fn), append(ids, id)
	}

	cc := &intacct.ControlConfig{IsTransaction: true, IsUnique: true}
	resp, err := c.execFinancial(ctx, cc, billID, fns...)
	if err != nil {
		if _, ok := err.(*intacct.ConfigError); ok {
			return err
		}
		c.log.Error("payable upload failed",
			zap.String("bill", p.BillNumber),
			zap.Int("checks", len(checks)),
			zap.Error(err))
		p.markFailed(err)
		for _, ck := range checks {
			ck.markFailed(err)
		}
		return c.savePayable(ctx, p, checks)
	}

	now := c.now()
	p.markSent(resultKey(resp, billID), now)
	for i, ck := range checks {
		ck.markSent(resultKey(resp, ids[i+1]), now)
	}
	c.log.Info("payable uploaded",
		zap.String("bill", p.BillNumber),
		zap.String("key", p.IntacctKey),
		zap.Int("checks", len(checks)))
	return c.savePayable(ctx, p, checks)
}

func (c *Client) savePayable(ctx context.Context, p *Payable, checks []*Check) error {
	if err := c.store.SavePayable(ctx, p); err != nil {
		return err
	}
	for _, ck := range checks {
		if err := c.store.SaveCheck(ctx, ck); err != nil {
			return err
		}
	}
	return nil
}

// SendCheck posts ck on its own.  A check paying an uploaded bill
// books as an AP adjustment against paid; a standalone check posts
// through the cash disbursements journal.
func (c *Client) SendCheck(ctx context.Context, ck *Check, paid *Payable) error {
	var fn *intacct.LegacyFunction
	if paid != nil {
		fn = checkAdjustmentFunction(paid, ck)
	} else {
		fn = checkGLFunction(ck)
	}
	controlID, err := intacct.HashFunction(fn)
	if err != nil {
		return &intacct.ConfigError{Reason: "check not marshalable", Err: err}
	}
	cc := &intacct.ControlConfig{IsTransaction: true, IsUnique: true}
	resp, err := c.execFinancial(ctx, cc, controlID, fn)
	if err != nil {
		if _, ok := err.(*intacct.ConfigError); ok {
			return err
		}
		c.log.Error("check upload failed",
			zap.String("check", ck.CheckNumber),
			zap.Error(err))
		ck.markFailed(err)
		return c.store.SaveCheck(ctx, ck)
	}
	ck.markSent(resultKey(resp, controlID), c.now())
	c.log.Info("check uploaded",
		zap.String("check", ck.CheckNumber),
		zap.String("key", ck.IntacctKey))
	return c.store.SaveCheck(ctx, ck)
}

// PostPayment applies an AP payment against posted bills and credit
// memos.  Payments carry no local record, so failures return rather
// than absorb.
func (c *Client) PostPayment(ctx context.Context, pmt *v21.CreateAPPayment) (string, error) {
	if err := pmt.Validate(); err != nil {
		return "", &intacct.ConfigError{Reason: "invalid payment", Err: err}
	}
	fn := &intacct.LegacyFunction{Payload: pmt}
	controlID, err := intacct.HashFunction(fn)
	if err != nil {
		return "", &intacct.ConfigError{Reason: "payment not marshalable", Err: err}
	}
	cc := &intacct.ControlConfig{IsTransaction: true, IsUnique: true}
	resp, err := c.execFinancial(ctx, cc, controlID, fn)
	if err != nil {
		return "", err
	}
	key := resultKey(resp, controlID)
	if key == "" {
		return "", fmt.Errorf("payment posted without a record key")
	}
	return key, nil
}

func resultKey(resp *intacct.Response, controlID string) string {
	if result := resp.Result(controlID); result != nil {
		return result.Key
	}
	return ""
}
