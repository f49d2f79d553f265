// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intacct

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"
)

// Query implements the newer query/lookup functionality replacing
// readByQuery and inspect.  Query and Lookup are Functions and may
// be passed to Service.Exec.  Requires DTD version "3.0".
type Query struct {
	XMLName         xml.Name      `xml:"query"`
	Object          string        `xml:"object"`
	Select          Select        `xml:"select"`
	Filter          *Filter       `xml:"filter,omitempty"`
	Sort            *QuerySort    `xml:"orderby,omitempty"`
	Options         *QueryOptions `xml:"options,omitempty"`
	PageSz          int           `xml:"pagesize,omitempty"`
	Offset          int           `xml:"offset,omitempty"`
	TransactionType string        `xml:"docparid,omitempty"`
	// ControlID overrides the content-hash control ID.
	ControlID string `xml:"-"`
}

// GetControlID fulfills the Function interface.
func (q Query) GetControlID() string {
	return q.ControlID
}

// GetAll reads all pages and unmarshals them into resultSlice, which
// must be a pointer to a slice.
func (q Query) GetAll(ctx context.Context, sv *Service, resultSlice interface{}) error {
	pgsz := q.PageSz
	if pgsz == 0 {
		pgsz = 100
	}
	numRemaining := -1
	for numRemaining != 0 {
		resp, err := sv.ExecWithControl(ctx, &ControlConfig{ReadOnly: true, DTDVersion: "3.0"}, q)
		if err != nil {
			return err
		}
		if err = resp.Decode(resultSlice); err != nil {
			return err
		}
		if len(resp.Results) == 0 || resp.Results[0].Data == nil {
			return fmt.Errorf("empty result returned")
		}
		numRemaining = resp.Results[0].Data.NumRemaining
		q.Offset += pgsz
	}
	return nil
}

// Select determines fields to return for a query.
type Select struct {
	Fields []string `xml:"field"`
	Count  string   `xml:"count,omitempty"`
	Avg    string   `xml:"avg,omitempty"`
	Min    string   `xml:"min,omitempty"`
	Max    string   `xml:"max,omitempty"`
	Sum    string   `xml:"sum,omitempty"`
}

// QuerySort wraps sort conditions.
type QuerySort struct {
	XMLName xml.Name  `xml:"orderby"`
	Fields  []OrderBy `xml:"order"`
}

// OrderBy describes one sort condition.
type OrderBy struct {
	XMLName    xml.Name `xml:"order"`
	Field      string   `xml:"field,omitempty"`
	Descending bool     `xml:"descending,omitempty"`
}

// MarshalXML creates the empty <descending/> tag.
func (o OrderBy) MarshalXML(e *xml.Encoder, s xml.StartElement) error {
	e.EncodeToken(s)
	e.EncodeElement(o.Field, xml.StartElement{Name: xml.Name{Local: "field"}})
	if o.Descending {
		e.EncodeElement("", xml.StartElement{Name: xml.Name{Local: "descending"}})
	}
	return e.EncodeToken(s.End())
}

// QueryOptions set query flags.
type QueryOptions struct {
	CaseInsensitive bool `xml:"caseinsensitive,omitempty"`
	ShowPrivate     bool `xml:"showprivate,omitempty"`
}

// NewFilter returns an initialized Filter pointer.
func NewFilter() *Filter {
	return &Filter{}
}

// Filter is a hierarchy of criteria.  Use the builder methods to add
// criteria.
type Filter struct {
	XMLName xml.Name
	Field   string     `xml:"field,omitempty"`
	Value   FilterVals `xml:"value,omitempty"`
	Filters []Filter
}

// And creates a new and-group and adds it to the receiver's filter
// list.  The return value is the new group, not the receiver.
func (f *Filter) And() *Filter {
	return f.newFilter("and")
}

// Or creates a new or-group and adds it to the receiver's filter
// list.  The return value is the new group, not the receiver.
func (f *Filter) Or() *Filter {
	return f.newFilter("or")
}

func (f *Filter) newFilter(nm string) *Filter {
	ret := Filter{XMLName: xml.Name{Local: nm}}
	if f != nil {
		f.Filters = append(f.Filters, ret)
		return &f.Filters[len(f.Filters)-1]
	}
	return &ret
}

// FilterVals handles proper marshaling of empty strings.
type FilterVals []string

// MarshalXML outputs nothing for an empty slice, value elements for
// all others.
func (fv FilterVals) MarshalXML(e *xml.Encoder, s xml.StartElement) error {
	for _, val := range fv {
		e.EncodeToken(s)
		e.EncodeToken(xml.CharData(val))
		e.EncodeToken(s.End())
	}
	return nil
}

func (f *Filter) add(nm, field string, values ...string) *Filter {
	if f == nil {
		f = &Filter{}
	}
	f.Filters = append(f.Filters, Filter{
		XMLName: xml.Name{Local: nm},
		Field:   field,
		Value:   values,
	})
	return f
}

// EqualTo adds an equal criterion.  The receiver is returned to
// allow chaining.
func (f *Filter) EqualTo(field string, value string) *Filter {
	return f.add("equalto", field, value)
}

// NotEqualTo adds a not-equal criterion.
func (f *Filter) NotEqualTo(field string, value string) *Filter {
	return f.add("notequalto", field, value)
}

// LessThan adds a less-than criterion.
func (f *Filter) LessThan(field string, value string) *Filter {
	return f.add("lessthan", field, value)
}

// LessThanOrEqualTo adds a less-than-or-equal criterion.
func (f *Filter) LessThanOrEqualTo(field string, value string) *Filter {
	return f.add("lessthanorequalto", field, value)
}

// GreaterThan adds a greater-than criterion.
func (f *Filter) GreaterThan(field string, value string) *Filter {
	return f.add("greaterthan", field, value)
}

// GreaterThanOrEqualTo adds a greater-than-or-equal criterion.
func (f *Filter) GreaterThanOrEqualTo(field string, value string) *Filter {
	return f.add("greaterthanorequalto", field, value)
}

// Between adds a date range criterion.
func (f *Filter) Between(field string, start, end time.Time) *Filter {
	return f.add("between", field, start.Format("01/02/2006"), end.Format("01/02/2006"))
}

// In adds a list criterion.
func (f *Filter) In(field string, values ...string) *Filter {
	return f.add("in", field, values...)
}

// NotIn adds an exclusion list criterion.
func (f *Filter) NotIn(field string, values ...string) *Filter {
	return f.add("notin", field, values...)
}

// Like adds a string match criterion.
func (f *Filter) Like(field string, value string) *Filter {
	return f.add("like", field, value)
}

// NotLike adds a negative string match criterion.
func (f *Filter) NotLike(field string, value string) *Filter {
	return f.add("notlike", field, value)
}

// IsNull adds a null check criterion.
func (f *Filter) IsNull(field string) *Filter {
	return f.add("isnull", field)
}

// IsNotNull adds a not-null check criterion.
func (f *Filter) IsNotNull(field string) *Filter {
	return f.add("isnotnull", field)
}

// ObjectRelationship describes a relationship between objects.
type ObjectRelationship struct {
	Path      string `xml:"OBJECTPATH"`
	Name      string `xml:"OBJECTNAME"`
	Label     string `xml:"LABEL"`
	Type      string `xml:"RELATIONSHIPTYPE"`
	RelatedBy string `xml:"RELATEDBY"`
}

// ObjectField defines one field of an object.
type ObjectField struct {
	ID          string   `xml:"ID"`
	Label       string   `xml:"LABEL"`
	Description string   `xml:"DESCRIPTION"`
	Required    bool     `xml:"REQUIRED"`
	ReadOnly    bool     `xml:"READONLY"`
	DataType    string   `xml:"DATATYPE"`
	IsCustom    bool     `xml:"ISCUSTOM"`
	ValidValues []string `xml:"VALIDVALUES>VALIDVALUE"`
}

// ObjectType is the top level response for a lookup function.
type ObjectType struct {
	XMLName       xml.Name             `xml:"Type"`
	Name          string               `xml:"Name,attr"`
	Type          string               `xml:"DocumentType,attr"`
	Fields        []ObjectField        `xml:"Fields>Field"`
	Relationships []ObjectRelationship `xml:"Relationships>Relationship"`
}

// Lookup returns an object definition.  Requires DTD version "3.0".
type Lookup struct {
	XMLName    xml.Name `xml:"lookup"`
	ObjectName string   `xml:"object"`
	ControlID  string   `xml:"-"`
}

// GetControlID fulfills the Function interface.
func (l Lookup) GetControlID() string {
	return l.ControlID
}
