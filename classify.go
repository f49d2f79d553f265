// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intacct

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jfcote87/ctxclient"
)

// The gateway reports most failures as human readable text, so
// classification is pattern matching against vendor wording.  Every
// such pattern lives in this file; if Intacct rewords a message only
// this file changes.
var (
	// corrections that amount to "retry me"
	transientCorrection = regexp.MustCompile(`(?i)try (the request |your request |this request )?again`)

	// "Invalid Brokerage File 'ABC123' specified." in description2
	missingDimension = regexp.MustCompile(`Invalid (Brokerage File|Freight File) '(.+)' specified`)

	// fatal-looking messages that mean a racing caller already
	// produced the desired end state
	benignDuplicate = []*regexp.Regexp{
		regexp.MustCompile(`(?i)a successful transaction has already been recorded`),
		regexp.MustCompile(`(?i)another .+ with the given value`),
		regexp.MustCompile(`(?i)concurrent request (is )?(already )?in process`),
	}
)

// dimensionNames maps the wording the gateway uses inside error text
// to the dimension names the rest of the system recognizes.
var dimensionNames = map[string]string{
	"Brokerage File": "Broker File",
	"Freight File":   "Freight File",
}

// TransientError indicates a condition expected to clear on retry: a
// response body that is not XML, or a gateway error whose correction
// text asks for a retry.
type TransientError struct {
	Reason  string
	Err     error
	Details []ErrorDetail
}

func (e *TransientError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transient: %s: %v", e.Reason, e.Err)
	}
	return "transient: " + e.Reason
}

func (e *TransientError) Unwrap() error { return e.Err }

// MissingDimensionError indicates a function referenced a dimension
// value the company has not recorded yet.  Creating the dimension
// and re-sending the original function recovers.
type MissingDimensionError struct {
	Dimension string // "Broker File" or "Freight File"
	Value     string
}

func (e *MissingDimensionError) Error() string {
	return fmt.Sprintf("missing dimension %s %q", e.Dimension, e.Value)
}

// FatalError is any gateway failure with no recovery path.  The
// retry controller absorbs these onto the affected record.
type FatalError struct {
	Function string
	Status   string
	Details  []ErrorDetail
}

func (e *FatalError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("function %s returned status %q", e.Function, e.Status)
	}
	var msgs []string
	for _, d := range e.Details {
		var parts []string
		for _, s := range []string{d.ErrorNo, d.Description, d.Description2, d.Correction} {
			if s != "" {
				parts = append(parts, s)
			}
		}
		msgs = append(msgs, strings.Join(parts, " "))
	}
	return strings.Join(msgs, "; ")
}

// ConfigError indicates a deployment or configuration problem:
// missing connection settings or a write attempted from a
// disallowed environment.  Never absorbed; always surfaced.
type ConfigError struct {
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("configuration: %s: %v", e.Reason, e.Err)
	}
	return "configuration: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsBenignDuplicate reports whether err is a FatalError whose text
// indicates the desired state was already achieved by a racing
// caller (already recorded, duplicate value, concurrent create).
func IsBenignDuplicate(err error) bool {
	fe, ok := err.(*FatalError)
	if !ok {
		return false
	}
	for _, d := range fe.Details {
		for _, txt := range []string{d.Description, d.Description2, d.Correction} {
			for _, re := range benignDuplicate {
				if re.MatchString(txt) {
					return true
				}
			}
		}
	}
	return false
}

// ClassifyDetails buckets a set of error elements.  Transient wins
// over missing-dimension which wins over fatal, matching recovery
// cost: a sleep is cheaper than a dimension create which is cheaper
// than giving up.
func ClassifyDetails(details []ErrorDetail) error {
	if len(details) == 0 {
		return nil
	}
	for _, d := range details {
		if transientCorrection.MatchString(d.Correction) {
			return &TransientError{Reason: "gateway requested retry", Details: details}
		}
	}
	for _, d := range details {
		if m := missingDimension.FindStringSubmatch(d.Description2); m != nil {
			return &MissingDimensionError{
				Dimension: dimensionNames[m[1]],
				Value:     m[2],
			}
		}
	}
	return &FatalError{Details: details}
}

// Classify inspects a response for the function posted under
// controlID.  It returns nil when that function's result reports
// success, otherwise the typed error for the failure.
func Classify(resp *Response, controlID string) error {
	if details := resp.Details(); len(details) > 0 {
		return ClassifyDetails(details)
	}
	result := resp.Result(controlID)
	if result == nil {
		return &FatalError{Status: "missing result for control ID " + controlID}
	}
	if !result.Success() {
		return &FatalError{Function: result.Function, Status: result.Status}
	}
	return nil
}

// ClassifyExec normalizes an Exec outcome: transport errors pass
// through, error-bearing responses are classified per controlID.
func ClassifyExec(resp *Response, err error, controlID string) error {
	switch err.(type) {
	case nil:
		return Classify(resp, controlID)
	case *TransientError, *ConfigError:
		return err
	case *ControlError, *OperationError:
		return ClassifyDetails(resp.Details())
	case *ctxclient.NotSuccess:
		// 5xx/4xx pages from load balancers and proxies
		return &TransientError{Reason: "http error", Err: err}
	}
	return err
}
