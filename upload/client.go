// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package upload orchestrates sending financial records to the
// accounting ledger: build the function, post it, classify the
// outcome and retry, recover or absorb the failure per record.
// Callers keep exclusive logical ownership of a record for the
// duration of one send; the package never locks records itself.
package upload

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/freightdesk/intacct"
)

// Retry budgets.  Dimension creation is cheap and best-effort so it
// gets the larger transient budget; financial posts give up sooner
// and absorb the failure onto the record.  Missing-dimension
// recovery is capped so a dimension that can never be created does
// not loop forever.
const (
	dimensionAttempts   = 5
	financialAttempts   = 3
	recoveryAttemptsCap = 5
)

// Executor posts functions to the gateway.  *intacct.Service
// implements it; tests substitute fakes.
type Executor interface {
	ExecWithControl(ctx context.Context, cc *intacct.ControlConfig, f ...intacct.Function) (*intacct.Response, error)
}

// Client drives uploads against one company.  Safe for concurrent
// use.
type Client struct {
	api   Executor
	store Store
	log   *zap.Logger

	// pause and now are swapped out by tests
	pause func(ctx context.Context, attempt int)
	now   func() time.Time

	dims *dimensionTracker
}

// New returns a Client posting through api and persisting outcomes
// through store.  A nil logger is replaced with zap.NewNop().
func New(api Executor, store Store, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		api:   api,
		store: store,
		log:   log,
		pause: sleepAttempt,
		now:   time.Now,
		dims:  newDimensionTracker(),
	}
}

// sleepAttempt blocks attempt seconds, linear backoff.
func sleepAttempt(ctx context.Context, attempt int) {
	t := time.NewTimer(time.Duration(attempt) * time.Second)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// execFinancial posts fns and classifies the outcome for controlID.
// Transient failures retry with linear backoff up to
// financialAttempts total attempts; missing dimensions are created
// and the whole post retried up to recoveryAttemptsCap times.
// Everything else returns immediately.
func (c *Client) execFinancial(ctx context.Context, cc *intacct.ControlConfig, controlID string, fns ...intacct.Function) (*intacct.Response, error) {
	var transient, recoveries int
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		resp, err := c.api.ExecWithControl(ctx, cc, fns...)
		switch e := intacct.ClassifyExec(resp, err, controlID).(type) {
		case nil:
			return resp, nil
		case *intacct.TransientError:
			transient++
			if transient >= financialAttempts {
				return nil, e
			}
			c.pause(ctx, transient)
		case *intacct.MissingDimensionError:
			recoveries++
			if recoveries >= recoveryAttemptsCap {
				return nil, e
			}
			id, derr := c.SendDimension(ctx, e.Dimension, e.Value, "")
			if derr != nil {
				return nil, derr
			}
			if id == "" {
				// dimension creation is best-effort; when it
				// failed there is no point resending
				return nil, e
			}
		default:
			return nil, e
		}
	}
}
