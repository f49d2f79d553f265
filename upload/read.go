// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package upload

import (
	"context"
	"fmt"

	"github.com/freightdesk/intacct"
)

// ReadObject fetches records by key into dst (a *S or *[]S per
// Result.Decode).  Reads never touch the environment guard, so they
// work from any deployment.
func (c *Client) ReadObject(ctx context.Context, object string, dst interface{}, keys ...string) error {
	fn := intacct.Read(object, keys...)
	controlID, err := intacct.HashFunction(fn)
	if err != nil {
		return err
	}
	resp, err := c.api.ExecWithControl(ctx, &intacct.ControlConfig{ReadOnly: true}, fn)
	if cerr := intacct.ClassifyExec(resp, err, controlID); cerr != nil {
		return cerr
	}
	result := resp.Result(controlID)
	if result == nil {
		return fmt.Errorf("no result for read of %s", object)
	}
	return result.Decode(dst)
}

// GetObjectFields returns the object's definition, fields and
// relationships included.
func (c *Client) GetObjectFields(ctx context.Context, object string) (*intacct.ObjectType, error) {
	fn := intacct.Lookup{ObjectName: object}
	controlID, err := intacct.HashFunction(fn)
	if err != nil {
		return nil, err
	}
	cc := &intacct.ControlConfig{ReadOnly: true, DTDVersion: "3.0"}
	resp, err := c.api.ExecWithControl(ctx, cc, fn)
	if cerr := intacct.ClassifyExec(resp, err, controlID); cerr != nil {
		return nil, cerr
	}
	result := resp.Result(controlID)
	if result == nil {
		return nil, fmt.Errorf("no result for lookup of %s", object)
	}
	var ot intacct.ObjectType
	if err := result.Decode(&ot); err != nil {
		return nil, err
	}
	return &ot, nil
}

// ListObjects pages through a readByQuery, collecting rows as field
// maps.  max caps the rows returned; zero means no cap.  The gateway
// hands back pages plus a continuation token, so the loop keeps
// pulling until the server reports nothing remaining or the cap is
// reached.
func (c *Client) ListObjects(ctx context.Context, object, query string, max int) ([]intacct.ResultMap, error) {
	var rows []intacct.ResultMap
	fn := intacct.ReadByQuery(object, query)
	for {
		controlID, err := intacct.HashFunction(fn)
		if err != nil {
			return nil, err
		}
		resp, err := c.api.ExecWithControl(ctx, &intacct.ControlConfig{ReadOnly: true}, fn)
		if cerr := intacct.ClassifyExec(resp, err, controlID); cerr != nil {
			return nil, cerr
		}
		result := resp.Result(controlID)
		if result == nil {
			return nil, fmt.Errorf("no result for query of %s", object)
		}
		var page []intacct.ResultMap
		if err := result.Decode(&page); err != nil {
			return nil, err
		}
		rows = append(rows, page...)
		if max > 0 && len(rows) >= max {
			return rows[:max], nil
		}
		if result.Data == nil || result.Data.NumRemaining == 0 {
			return rows, nil
		}
		fn = intacct.ReadMore(result.Data.ResultID)
	}
}
