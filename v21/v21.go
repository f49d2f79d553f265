// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package v21 provides payload structs for version 2.1 (legacy DTD)
// gateway calls: get_list, get, the financial create functions and
// supporting document handling.  Wrap a payload in an
// intacct.LegacyFunction to execute it.
//
// The 2.1 DTD spells dates as explicit year/month/day sub-elements,
// not ISO strings; DateYMD preserves that shape.
package v21

import (
	"encoding/xml"
	"strconv"
	"time"
)

// ExpressionType identifies a get_list filter operator.
type ExpressionType string

// Filter operators.  The logical types nest child expressions; the
// rest compare a field against a value.
const (
	ExpressionLogicalAnd         ExpressionType = "and"
	ExpressionLogicalOr          ExpressionType = "or"
	ExpressionEqual              ExpressionType = "="
	ExpressionNotEqual           ExpressionType = "!="
	ExpressionLessThan           ExpressionType = "<"
	ExpressionLessThanOrEqual    ExpressionType = "<="
	ExpressionGreaterThan        ExpressionType = ">"
	ExpressionGreaterThanOrEqual ExpressionType = ">="
	ExpressionLike               ExpressionType = "like"
)

// GetList is the 2.1 list function with optional filter, sorting and
// field selection.
type GetList struct {
	XMLName     xml.Name    `xml:"get_list"`
	ObjectName  string      `xml:"object,attr"`
	Start       int         `xml:"start,attr,omitempty"`
	MaxItems    int         `xml:"maxitems,attr,omitempty"`
	ShowPrivate bool        `xml:"showprivate,attr,omitempty"`
	Filter      *Expression `xml:"filter,omitempty"`
	Sorts       *[]Sort     `xml:"sorts>sortfield,omitempty"`
	Fields      *[]string   `xml:"fields>field,omitempty"`
}

// Sort orders a get_list result.
type Sort struct {
	Field string `xml:",chardata"`
	Order string `xml:"order,attr,omitempty"` // asc or desc
}

// Expression is a get_list filter node: either a logical group of
// child expressions or a field comparison.
type Expression struct {
	Type        ExpressionType
	Field       string
	Value       string
	Expressions []Expression
}

// MarshalXML writes the enclosing element (normally <filter>) around
// the expression tree.
func (ex *Expression) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if err := ex.encode(e); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

func (ex *Expression) encode(e *xml.Encoder) error {
	if ex.Type == ExpressionLogicalAnd || ex.Type == ExpressionLogicalOr {
		logical := xml.StartElement{
			Name: xml.Name{Local: "logical"},
			Attr: []xml.Attr{{Name: xml.Name{Local: "logical_operator"}, Value: string(ex.Type)}},
		}
		if err := e.EncodeToken(logical); err != nil {
			return err
		}
		for i := range ex.Expressions {
			if err := ex.Expressions[i].encode(e); err != nil {
				return err
			}
		}
		return e.EncodeToken(logical.End())
	}
	expr := xml.StartElement{Name: xml.Name{Local: "expression"}}
	e.EncodeToken(expr)
	e.EncodeElement(ex.Field, xml.StartElement{Name: xml.Name{Local: "field"}})
	e.EncodeElement(string(ex.Type), xml.StartElement{Name: xml.Name{Local: "operator"}})
	e.EncodeElement(ex.Value, xml.StartElement{Name: xml.Name{Local: "value"}})
	return e.EncodeToken(expr.End())
}

// Get is the 2.1 single record read.
type Get struct {
	XMLName    xml.Name  `xml:"get"`
	ObjectName string    `xml:"object,attr"`
	Key        string    `xml:"key,attr"`
	Fields     *[]string `xml:"fields>field,omitempty"`
}

// DateYMD is a 2.1 date decomposed into year/month/day sub-elements.
// The shape is a protocol requirement, not a style choice.
type DateYMD struct {
	t *time.Time
}

// TimeToDateYMD converts a time.Time to a DateYMD.
func TimeToDateYMD(t time.Time) DateYMD {
	if t.IsZero() {
		return DateYMD{}
	}
	return DateYMD{t: &t}
}

// IsNil returns whether the underlying time is nil.
func (d DateYMD) IsNil() bool {
	return d.t == nil || d.t.IsZero()
}

// Val returns the underlying time.  Blanks are returned as nil.
func (d DateYMD) Val() *time.Time {
	if d.IsNil() {
		return nil
	}
	return d.t
}

// MarshalXML writes <year>/<month>/<day> children; nothing at all
// for a nil date.
func (d DateYMD) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if d.IsNil() {
		return nil
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, el := range []struct {
		name string
		val  int
	}{
		{"year", d.t.Year()},
		{"month", int(d.t.Month())},
		{"day", d.t.Day()},
	} {
		e.EncodeElement(strconv.Itoa(el.val), xml.StartElement{Name: xml.Name{Local: el.name}})
	}
	return e.EncodeToken(start.End())
}

// UnmarshalXML reads year/month/day children; an empty element
// yields a nil date.
func (d *DateYMD) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	var raw struct {
		Year  string `xml:"year"`
		Month string `xml:"month"`
		Day   string `xml:"day"`
	}
	if err := dec.DecodeElement(&raw, &start); err != nil {
		return err
	}
	yr, _ := strconv.Atoi(raw.Year)
	mth, _ := strconv.Atoi(raw.Month)
	day, _ := strconv.Atoi(raw.Day)
	if yr <= 0 || mth <= 0 || day <= 0 {
		d.t = nil
		return nil
	}
	tm := time.Date(yr, time.Month(mth), day, 0, 0, 0, 0, time.UTC)
	d.t = &tm
	return nil
}
