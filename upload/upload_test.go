// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package upload

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/freightdesk/intacct"
	"github.com/freightdesk/intacct/v21"
)

// scripted plays canned outcomes in order and records every call.
type scripted struct {
	t     *testing.T
	calls []execCall
	steps []step
}

type execCall struct {
	cc  *intacct.ControlConfig
	fns []intacct.Function
}

type step func(cc *intacct.ControlConfig, fns []intacct.Function) (*intacct.Response, error)

func (s *scripted) ExecWithControl(ctx context.Context, cc *intacct.ControlConfig, fns ...intacct.Function) (*intacct.Response, error) {
	s.calls = append(s.calls, execCall{cc: cc, fns: fns})
	if len(s.steps) == 0 {
		s.t.Fatalf("unexpected exec call %d: %v", len(s.calls), fns)
	}
	next := s.steps[0]
	s.steps = s.steps[1:]
	return next(cc, fns)
}

// success returns a success result with a key for every function.
func success(keys ...string) step {
	return func(cc *intacct.ControlConfig, fns []intacct.Function) (*intacct.Response, error) {
		resp := &intacct.Response{}
		for i, f := range fns {
			id, err := intacct.HashFunction(f)
			if err != nil {
				return nil, err
			}
			var key string
			if i < len(keys) {
				key = keys[i]
			}
			resp.Results = append(resp.Results, intacct.Result{
				Status:    "success",
				ControlID: id,
				Key:       key,
			})
		}
		return resp, nil
	}
}

// failure returns a failed result carrying the given error details.
func failure(details ...intacct.ErrorDetail) step {
	return func(cc *intacct.ControlConfig, fns []intacct.Function) (*intacct.Response, error) {
		id, _ := intacct.HashFunction(fns[0])
		resp := &intacct.Response{
			Results: []intacct.Result{{Status: "failure", ControlID: id, Errors: details}},
		}
		return resp, nil
	}
}

// listTotal answers an existence probe with the given total.
func listTotal(n int) step {
	return func(cc *intacct.ControlConfig, fns []intacct.Function) (*intacct.Response, error) {
		id, _ := intacct.HashFunction(fns[0])
		return &intacct.Response{
			Results: []intacct.Result{{
				Status:    "success",
				ControlID: id,
				ListType:  &intacct.ListType{Total: n},
			}},
		}, nil
	}
}

func transient() intacct.ErrorDetail {
	return intacct.ErrorDetail{ErrorNo: "XL03000009", Correction: "Please try the request again later."}
}

func missingBrokerFile(id string) intacct.ErrorDetail {
	return intacct.ErrorDetail{Description2: fmt.Sprintf("Invalid Brokerage File '%s' specified.", id)}
}

func fatal() intacct.ErrorDetail {
	return intacct.ErrorDetail{ErrorNo: "BL34000061", Description: "Currency XXX is not valid"}
}

// memStore records saves in memory.
type memStore struct {
	receivables []*Receivable
	payables    []*Payable
	checks      []*Check
	err         error
}

func (m *memStore) SaveReceivable(ctx context.Context, r *Receivable) error {
	m.receivables = append(m.receivables, r)
	return m.err
}

func (m *memStore) SavePayable(ctx context.Context, p *Payable) error {
	m.payables = append(m.payables, p)
	return m.err
}

func (m *memStore) SaveCheck(ctx context.Context, c *Check) error {
	m.checks = append(m.checks, c)
	return m.err
}

var testTime = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestClient(t *testing.T, steps ...step) (*Client, *scripted, *memStore, *[]int) {
	exec := &scripted{t: t, steps: steps}
	store := &memStore{}
	c := New(exec, store, zap.NewNop())
	var pauses []int
	c.pause = func(ctx context.Context, attempt int) {
		pauses = append(pauses, attempt)
	}
	c.now = func() time.Time { return testTime }
	return c, exec, store, &pauses
}

func testReceivable() *Receivable {
	amt, _ := intacct.AmountFromString("1500.00")
	return &Receivable{
		ID:            1,
		CustomerID:    "C-9",
		InvoiceNumber: "INV-1001",
		InvoiceDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Lines: []ReceivableLine{{
			ChargeCode:  "OCEAN",
			Amount:      amt,
			LocationID:  "100",
			BrokerFile:  "BF-1",
			FreightFile: "FF-1",
		}},
	}
}

func testPayable() *Payable {
	amt, _ := intacct.AmountFromString("800.00")
	return &Payable{
		ID:         2,
		VendorID:   "V-7",
		BillNumber: "B-2001",
		BillDate:   time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
		Lines: []PayableLine{{
			GLAccount:  "6000",
			Amount:     amt,
			LocationID: "100",
		}},
	}
}

func testCheck(n string) *Check {
	amt, _ := intacct.AmountFromString("400.00")
	return &Check{
		ID:            3,
		VendorID:      "V-7",
		CheckNumber:   n,
		CheckDate:     time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC),
		Amount:        amt,
		BankGLAccount: "1000",
		GLAccount:     "6000",
	}
}

func TestSendReceivable(t *testing.T) {
	c, exec, store, _ := newTestClient(t, success("R-123"))
	r := testReceivable()
	require.NoError(t, c.SendReceivable(context.Background(), r))

	assert.Equal(t, "R-123", r.IntacctKey)
	assert.Equal(t, testTime, r.IntacctUploadDate)
	assert.Empty(t, r.IntacctErrors)
	require.Len(t, exec.calls, 1)
	assert.True(t, exec.calls[0].cc.IsTransaction)
	assert.True(t, exec.calls[0].cc.IsUnique)
	require.Len(t, store.receivables, 1)
	assert.Same(t, r, store.receivables[0])
}

func TestSendReceivable_TransientExhausted(t *testing.T) {
	c, exec, store, pauses := newTestClient(t,
		failure(transient()), failure(transient()), failure(transient()))
	r := testReceivable()
	require.NoError(t, c.SendReceivable(context.Background(), r))

	assert.Empty(t, r.IntacctKey)
	assert.NotEmpty(t, r.IntacctErrors)
	assert.Len(t, exec.calls, 3)
	assert.Equal(t, []int{1, 2}, *pauses)
	require.Len(t, store.receivables, 1, "a failed record is still persisted")
}

func TestSendReceivable_TransientThenSuccess(t *testing.T) {
	c, exec, _, pauses := newTestClient(t, failure(transient()), success("R-5"))
	r := testReceivable()
	require.NoError(t, c.SendReceivable(context.Background(), r))
	assert.Equal(t, "R-5", r.IntacctKey)
	assert.Len(t, exec.calls, 2)
	assert.Equal(t, []int{1}, *pauses)
}

func TestSendReceivable_Fatal(t *testing.T) {
	c, exec, store, _ := newTestClient(t, failure(fatal()))
	r := testReceivable()
	require.NoError(t, c.SendReceivable(context.Background(), r))

	assert.Empty(t, r.IntacctKey)
	assert.Contains(t, r.IntacctErrors, "Currency XXX is not valid")
	assert.Len(t, exec.calls, 1, "fatal errors never retry")
	require.Len(t, store.receivables, 1)
}

func TestSendReceivable_MissingDimensionRecovery(t *testing.T) {
	c, exec, _, _ := newTestClient(t,
		failure(missingBrokerFile("BF-1")), // financial send
		listTotal(0),                       // dimension probe
		success(""),                        // dimension create
		success("R-77"),                    // resend
	)
	r := testReceivable()
	require.NoError(t, c.SendReceivable(context.Background(), r))
	assert.Equal(t, "R-77", r.IntacctKey)
	require.Len(t, exec.calls, 4)

	// probe was read-only, create was a write
	assert.True(t, exec.calls[1].cc.ReadOnly)
	assert.False(t, exec.calls[2].cc.ReadOnly)

	// the created value is remembered; no further gateway traffic
	id, err := c.SendDimension(context.Background(), v21.DimensionBrokerFile, "BF-1", "")
	require.NoError(t, err)
	assert.Equal(t, "BF-1", id)
	assert.Len(t, exec.calls, 4)
}

func TestSendReceivable_RecoveryCapped(t *testing.T) {
	// the dimension create "succeeds" but the gateway keeps
	// reporting the dimension missing; the loop must stop
	steps := []step{}
	for i := 0; i < recoveryAttemptsCap; i++ {
		steps = append(steps, failure(missingBrokerFile(fmt.Sprintf("BF-%d", i))))
		if i < recoveryAttemptsCap-1 {
			steps = append(steps, listTotal(0), success(""))
		}
	}
	c, exec, store, _ := newTestClient(t, steps...)
	r := testReceivable()
	require.NoError(t, c.SendReceivable(context.Background(), r))
	assert.Empty(t, r.IntacctKey)
	assert.NotEmpty(t, r.IntacctErrors)
	require.Len(t, store.receivables, 1)
	assert.Len(t, exec.calls, len(steps))
}

func TestSendDimension(t *testing.T) {
	t.Run("already exists", func(t *testing.T) {
		c, exec, _, _ := newTestClient(t, listTotal(1))
		id, err := c.SendDimension(context.Background(), v21.DimensionFreightFile, "FF-9", "")
		require.NoError(t, err)
		assert.Equal(t, "FF-9", id)
		assert.Len(t, exec.calls, 1)
	})

	t.Run("blank id skipped", func(t *testing.T) {
		c, exec, _, _ := newTestClient(t)
		id, err := c.SendDimension(context.Background(), v21.DimensionBrokerFile, "", "name")
		require.NoError(t, err)
		assert.Empty(t, id)
		assert.Empty(t, exec.calls)
	})

	t.Run("benign duplicate counts as created", func(t *testing.T) {
		c, _, _, _ := newTestClient(t,
			listTotal(0),
			failure(intacct.ErrorDetail{Description2: "Another Class with the given value(s)  BF-2  already exists"}),
		)
		id, err := c.SendDimension(context.Background(), v21.DimensionBrokerFile, "BF-2", "")
		require.NoError(t, err)
		assert.Equal(t, "BF-2", id)
	})

	t.Run("transient retries exhausted", func(t *testing.T) {
		steps := []step{listTotal(0)}
		for i := 0; i < dimensionAttempts; i++ {
			steps = append(steps, failure(transient()))
		}
		c, exec, _, pauses := newTestClient(t, steps...)
		id, err := c.SendDimension(context.Background(), v21.DimensionBrokerFile, "BF-3", "")
		require.NoError(t, err, "exhausted dimension creates are suppressed")
		assert.Empty(t, id)
		assert.Len(t, exec.calls, dimensionAttempts+1)
		assert.Equal(t, []int{1, 2, 3, 4}, *pauses)
	})

	t.Run("fatal suppressed", func(t *testing.T) {
		c, _, _, _ := newTestClient(t, listTotal(0), failure(fatal()))
		id, err := c.SendDimension(context.Background(), v21.DimensionBrokerFile, "BF-4", "")
		require.NoError(t, err)
		assert.Empty(t, id)
	})

	t.Run("config error surfaces", func(t *testing.T) {
		ce := &intacct.ConfigError{Reason: "write functions may not be sent"}
		c, _, _, _ := newTestClient(t,
			listTotal(0),
			func(cc *intacct.ControlConfig, fns []intacct.Function) (*intacct.Response, error) {
				return nil, ce
			},
		)
		_, err := c.SendDimension(context.Background(), v21.DimensionBrokerFile, "BF-5", "")
		assert.Equal(t, ce, err)
	})

	t.Run("unknown type", func(t *testing.T) {
		c, _, _, _ := newTestClient(t)
		_, err := c.SendDimension(context.Background(), "Container", "X", "")
		var cfg *intacct.ConfigError
		assert.ErrorAs(t, err, &cfg)
	})
}

func TestSendPayable_WithChecks(t *testing.T) {
	c, exec, store, _ := newTestClient(t, success("P-1", "A-1", "A-2"))
	p := testPayable()
	ck1, ck2 := testCheck("9001"), testCheck("9002")
	require.NoError(t, c.SendPayable(context.Background(), p, ck1, ck2))

	require.Len(t, exec.calls, 1, "bill and checks travel in one envelope")
	assert.Len(t, exec.calls[0].fns, 3)
	assert.True(t, exec.calls[0].cc.IsTransaction)

	assert.Equal(t, "P-1", p.IntacctKey)
	assert.Equal(t, "A-1", ck1.IntacctKey)
	assert.Equal(t, "A-2", ck2.IntacctKey)
	assert.Len(t, store.payables, 1)
	assert.Len(t, store.checks, 2)
}

func TestSendPayable_FailureNoPartialKeys(t *testing.T) {
	c, _, store, _ := newTestClient(t, failure(fatal()))
	p := testPayable()
	ck := testCheck("9001")
	require.NoError(t, c.SendPayable(context.Background(), p, ck))

	assert.Empty(t, p.IntacctKey)
	assert.Empty(t, ck.IntacctKey)
	assert.NotEmpty(t, p.IntacctErrors)
	assert.NotEmpty(t, ck.IntacctErrors)
	assert.Len(t, store.payables, 1)
	assert.Len(t, store.checks, 1)
}

func TestSendCheck(t *testing.T) {
	t.Run("standalone posts through cash disbursements", func(t *testing.T) {
		c, exec, store, _ := newTestClient(t, success("GL-3"))
		ck := testCheck("9005")
		require.NoError(t, c.SendCheck(context.Background(), ck, nil))
		assert.Equal(t, "GL-3", ck.IntacctKey)
		require.Len(t, exec.calls, 1)
		lf, ok := exec.calls[0].fns[0].(*intacct.LegacyFunction)
		require.True(t, ok)
		gl, ok := lf.Payload.(*v21.CreateGLTransaction)
		require.True(t, ok)
		assert.Equal(t, "CD", gl.JournalID)
		assert.True(t, gl.Balanced())
		assert.Len(t, store.checks, 1)
	})

	t.Run("against a bill posts an adjustment", func(t *testing.T) {
		c, exec, _, _ := newTestClient(t, success("ADJ-1"))
		ck := testCheck("9006")
		require.NoError(t, c.SendCheck(context.Background(), ck, testPayable()))
		lf := exec.calls[0].fns[0].(*intacct.LegacyFunction)
		adj, ok := lf.Payload.(*v21.CreateAPAdjustment)
		require.True(t, ok)
		require.Len(t, adj.Items, 1)
		assert.True(t, adj.Items[0].Amount.IsNegative(), "a check relieves the vendor balance")
	})
}

func TestPostPayment(t *testing.T) {
	amt, _ := intacct.AmountFromString("400.00")
	pmt := &v21.CreateAPPayment{
		BankAccountID: "OPER",
		VendorID:      "V-7",
		PaymentMethod: "Printed Check",
		Details:       []v21.PaymentDetail{v21.DebitDetail("1001", "", amt)},
	}

	c, _, _, _ := newTestClient(t, success("PMT-1"))
	key, err := c.PostPayment(context.Background(), pmt)
	require.NoError(t, err)
	assert.Equal(t, "PMT-1", key)

	c, _, _, _ = newTestClient(t)
	_, err = c.PostPayment(context.Background(), &v21.CreateAPPayment{})
	var cfg *intacct.ConfigError
	assert.ErrorAs(t, err, &cfg, "invalid payments never reach the gateway")
}

func listPage(rows int, remaining int, resultID string) step {
	return func(cc *intacct.ControlConfig, fns []intacct.Function) (*intacct.Response, error) {
		id, _ := intacct.HashFunction(fns[0])
		var payload string
		for i := 0; i < rows; i++ {
			payload += fmt.Sprintf("<VENDOR><VENDORID>V-%d</VENDORID></VENDOR>", i)
		}
		return &intacct.Response{
			Results: []intacct.Result{{
				Status:    "success",
				ControlID: id,
				Data: &intacct.ResultData{
					Count:        rows,
					NumRemaining: remaining,
					ResultID:     resultID,
					Payload:      []byte(payload),
				},
			}},
		}, nil
	}
}

func TestListObjects(t *testing.T) {
	c, exec, _, _ := newTestClient(t,
		listPage(2, 1, "cursor-1"),
		listPage(1, 0, ""),
	)
	rows, err := c.ListObjects(context.Background(), "VENDOR", "", 0)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	require.Len(t, exec.calls, 2)

	// second call must be the readMore continuation
	rd, ok := exec.calls[1].fns[0].(*intacct.Reader)
	require.True(t, ok)
	assert.Equal(t, "cursor-1", rd.ResultID)
}

func TestListObjects_Truncation(t *testing.T) {
	c, exec, _, _ := newTestClient(t, listPage(5, 10, "cursor-1"))
	rows, err := c.ListObjects(context.Background(), "VENDOR", "", 3)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Len(t, exec.calls, 1, "the cap stops pagination")
}

func TestExecFinancial_ConfigError(t *testing.T) {
	ce := &intacct.ConfigError{Reason: "write functions may not be sent"}
	c, _, store, _ := newTestClient(t,
		func(cc *intacct.ControlConfig, fns []intacct.Function) (*intacct.Response, error) {
			return nil, ce
		},
	)
	err := c.SendReceivable(context.Background(), testReceivable())
	assert.Equal(t, ce, err, "config errors surface instead of absorbing")
	assert.Empty(t, store.receivables, "nothing is persisted on a config error")
}
