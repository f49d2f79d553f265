// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intacct

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"reflect"
	"time"
)

// Response contains function results from a Request.
type Response struct {
	Control  Control         `xml:"control"`
	Auth     *ResponseAuth   `xml:"operation>authentication"`
	ErrorMsg *ControlError   `xml:"errormessage>error"`
	OpError  *OperationError `xml:"operation>errormessage>error"`
	Results  []Result        `xml:"operation>result"`
}

// execErr returns the top level errors to indicate Exec error.
func (r *Response) execErr() error {
	if r.ErrorMsg != nil {
		return r.ErrorMsg
	}
	if r.OpError != nil {
		return r.OpError
	}
	return nil
}

// Error returns errors from the response: top level, operation
// level, or per-result.
func (r *Response) Error() error {
	if err := r.execErr(); err != nil {
		return err
	}
	var err error
	var errResult = make([][]ErrorDetail, len(r.Results))
	for idx, result := range r.Results {
		if len(result.Errors) > 0 {
			err = ResultsError(errResult)
		}
		errResult[idx] = result.Errors
	}
	return err
}

// Result returns the result matching controlID, nil if absent.
func (r *Response) Result(controlID string) *Result {
	for i := range r.Results {
		if r.Results[i].ControlID == controlID {
			return &r.Results[i]
		}
	}
	return nil
}

// Details flattens every error element in the response, wherever the
// gateway chose to report it.  Used by the classifier.
func (r *Response) Details() []ErrorDetail {
	var details []ErrorDetail
	if r.ErrorMsg != nil {
		details = append(details, *r.ErrorMsg...)
	}
	if r.OpError != nil {
		details = append(details, *r.OpError...)
	}
	for _, result := range r.Results {
		details = append(details, result.Errors...)
	}
	return details
}

// Decode interrogates the Response returning errors encoded in the
// top section and operation section.  Each Result is decoded into
// the corresponding returnValues interface.  Errors are tracked
// within a ResultsError.  If no errors are found, nil is returned.
//
// returnValues must be *[]Struct or *Struct types.
func (r *Response) Decode(returnValues ...interface{}) error {
	if err := r.execErr(); err != nil {
		return err
	}
	var errResult = make(ResultsError, len(r.Results))
	hasError := false
	for idx, result := range r.Results {
		if len(result.Errors) > 0 {
			hasError = true
			errResult[idx] = result.Errors
			continue
		}
		if len(returnValues) < idx+1 || returnValues[idx] == nil {
			continue
		}
		if err := result.Decode(returnValues[idx]); err != nil {
			hasError = true
			errResult[idx] = []ErrorDetail{{Description: "Decode Error", Err: err}}
		}
	}
	if hasError {
		return errResult
	}
	return nil
}

// ResponseAuth returns the authentication result for a request.
type ResponseAuth struct {
	Status           string    `xml:"status"`
	UserID           string    `xml:"userid"`
	CompanyID        string    `xml:"companyid"`
	SessionTimestamp time.Time `xml:"sessiontimestamp,omitempty"`
	SessionTimeout   time.Time `xml:"sessiontimeout,omitempty"`
}

// ControlError contains errors returned in the top level
// errormessage element: the request never reached an operation.
type ControlError []ErrorDetail

// OperationError signifies that the error was returned in the
// operation section rather than the top level.
type OperationError ControlError

// Error fulfills the error interface.
func (e *ControlError) Error() string {
	if e != nil && len(*e) > 0 {
		return (*e)[0].errString("control")
	}
	return "No error"
}

func (e *OperationError) Error() string {
	if e != nil && len(*e) > 0 {
		return (*e)[0].errString("operation")
	}
	return "No error"
}

// ErrorDetail describes each error element.
type ErrorDetail struct {
	ErrorNo      string `xml:"errorno"`
	Description  string `xml:"description"`
	Description2 string `xml:"description2"`
	Correction   string `xml:"correction"`
	Err          error  `xml:"-"`
}

func (e ErrorDetail) errString(prefix string) string {
	if e.Err != nil {
		return fmt.Sprintf("%v", e.Err)
	}
	return fmt.Sprintf("%s ErrorNo: %s - %s - %s", prefix, e.ErrorNo, e.Description, e.Description2)
}

// Result wraps the status and data for one function call.
type Result struct {
	Status    string        `xml:"status"`
	Function  string        `xml:"function"`
	ControlID string        `xml:"controlid"`
	Key       string        `xml:"key"`
	ListType  *ListType     `xml:"listtype"`
	Errors    []ErrorDetail `xml:"errormessage>error"`
	Data      *ResultData   `xml:"data"`
}

// Success reports whether the result carries a success status.
func (r *Result) Success() bool {
	return r != nil && r.Status == "success"
}

// ListType describes the start/ending/remaining records from a
// v2.1 style call.
type ListType struct {
	Start int    `xml:"start,attr,omitempty"`
	End   int    `xml:"end,attr,omitempty"`
	Total int    `xml:"total,attr,omitempty"`
	Name  string `xml:",chardata"`
}

// ResultData of executing a function.
type ResultData struct {
	ListType     string `xml:"listtype,attr"`
	Count        int    `xml:"count,attr"`
	TotalCount   int    `xml:"totalcount,attr"`
	NumRemaining int    `xml:"numremaining,attr"`
	ResultID     string `xml:"resultId,attr"`
	Payload      []byte `xml:",innerxml"`
}

// Decode unmarshals the result xml into dst.  dst must have a type
// of *[]S or *S.  If dst is not a pointer to a slice, only the first
// object in a list is unmarshalled.
func (r Result) Decode(dst interface{}) error {
	if len(r.Errors) > 0 {
		return ResultsError([][]ErrorDetail{r.Errors})
	}
	if dst == nil {
		return nil
	}
	dv := reflect.ValueOf(dst)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return errors.New("expected a non-nil ptr")
	}
	if r.Data == nil {
		return nil
	}

	dx := xml.NewDecoder(bytes.NewReader(r.Data.Payload))
	if dv = dv.Elem(); dv.Kind() == reflect.Slice {
		tk, err := dx.Token()
		for elementCnt := 0; err == nil; elementCnt++ {
			switch s := tk.(type) {
			case xml.StartElement:
				val := reflect.New(dv.Type().Elem()).Interface()
				if err = dx.DecodeElement(&val, &s); err != nil {
					return fmt.Errorf("%d: %v", elementCnt, err)
				}
				dv.Set(reflect.Append(dv, reflect.Indirect(reflect.ValueOf(val))))
			}
			tk, err = dx.Token()
		}
		if err == io.EOF {
			return nil
		}
		return err
	}
	return dx.Decode(dst)
}

// ResultsError contains an array of errors corresponding to the
// functions passed in Exec.
type ResultsError [][]ErrorDetail

func (re ResultsError) Error() string {
	msg := bytes.NewBufferString("")
	var prefix string
	for idx, detail := range re {
		if len(detail) > 0 {
			if prefix > "" {
				prefix = fmt.Sprintf(" | result[%d]", idx)
			} else {
				prefix = fmt.Sprintf("result[%d]", idx)
			}
			msg.WriteString(detail[0].errString(prefix))
		}
	}
	return msg.String()
}
