// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package upload

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/freightdesk/intacct"
	"github.com/freightdesk/intacct/v21"
)

// dimensionTracker remembers which dimension values this process has
// already confirmed, so concurrent sends referencing the same broker
// or freight file do not race duplicate creates against the gateway.
type dimensionTracker struct {
	mu   sync.Mutex
	done map[string]bool
}

func newDimensionTracker() *dimensionTracker {
	return &dimensionTracker{done: make(map[string]bool)}
}

func (t *dimensionTracker) known(dimensionType, id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done[dimensionType+"\x00"+id]
}

func (t *dimensionTracker) mark(dimensionType, id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.done[dimensionType+"\x00"+id] = true
}

// SendDimension ensures the dimension value exists in the company,
// creating it when absent.  It returns the id on success and ("",
// nil) when creation failed for a reason worth only a log line:
// dimension records are supporting data and a failed create must
// never sink the financial send that triggered it.  Configuration
// errors still propagate.
func (c *Client) SendDimension(ctx context.Context, dimensionType, id, value string) (string, error) {
	if id == "" {
		return "", nil
	}
	if c.dims.known(dimensionType, id) {
		return id, nil
	}

	if exists, err := c.dimensionExists(ctx, dimensionType, id); err != nil {
		if _, ok := err.(*intacct.ConfigError); ok {
			return "", err
		}
		// fall through to create; a duplicate create is benign
	} else if exists {
		c.dims.mark(dimensionType, id)
		return id, nil
	}

	payload, err := v21.DimensionCreate(dimensionType, id, value)
	if err != nil {
		return "", &intacct.ConfigError{Reason: err.Error()}
	}
	fn := &intacct.LegacyFunction{Payload: payload}
	controlID, err := intacct.HashFunction(fn)
	if err != nil {
		return "", err
	}

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		resp, err := c.api.ExecWithControl(ctx, &intacct.ControlConfig{IsTransaction: true}, fn)
		cerr := intacct.ClassifyExec(resp, err, controlID)
		switch e := cerr.(type) {
		case nil:
			c.dims.mark(dimensionType, id)
			return id, nil
		case *intacct.ConfigError:
			return "", e
		case *intacct.TransientError:
			if attempt >= dimensionAttempts {
				c.log.Warn("dimension create exhausted retries",
					zap.String("dimension", dimensionType),
					zap.String("id", id),
					zap.Error(e))
				return "", nil
			}
			c.pause(ctx, attempt)
		default:
			if intacct.IsBenignDuplicate(cerr) {
				c.dims.mark(dimensionType, id)
				return id, nil
			}
			c.log.Warn("dimension create failed",
				zap.String("dimension", dimensionType),
				zap.String("id", id),
				zap.Error(cerr))
			return "", nil
		}
	}
}

// dimensionExists probes the company for the dimension value.
func (c *Client) dimensionExists(ctx context.Context, dimensionType, id string) (bool, error) {
	get, err := v21.DimensionGet(dimensionType, id)
	if err != nil {
		return false, &intacct.ConfigError{Reason: err.Error()}
	}
	fn := &intacct.LegacyFunction{Payload: get}
	controlID, err := intacct.HashFunction(fn)
	if err != nil {
		return false, err
	}
	resp, err := c.api.ExecWithControl(ctx, &intacct.ControlConfig{ReadOnly: true}, fn)
	if cerr := intacct.ClassifyExec(resp, err, controlID); cerr != nil {
		return false, cerr
	}
	result := resp.Result(controlID)
	return result != nil && result.ListType != nil && result.ListType.Total > 0, nil
}
