// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intacct

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

// Function defines one atomic action within a request's content
// block.  A blank control ID tells the Service to derive one by
// hashing the function's serialized content.
type Function interface {
	GetControlID() string
}

// Reader may be a read, readByName, readByQuery or readMore
// function.  Use the Read, ReadByName, ReadByQuery or ReadMore
// funcs rather than constructing directly.
type Reader struct {
	XMLName      xml.Name
	Object       string  `xml:"object,omitempty"`
	Keys         *string `xml:"keys,omitempty"`         // comma sep list for read/readByName
	Query        *string `xml:"query,omitempty"`        // query statement for readByQuery
	FieldList    string  `xml:"fields,omitempty"`       // field list
	MaxRecs      int     `xml:"pagesize,omitempty"`     // max items per page
	ReturnFormat string  `xml:"returnFormat,omitempty"` // always xml
	ResultID     string  `xml:"resultId,omitempty"`     // readMore continuation token

	controlID string
}

var (
	readXMLName        = xml.Name{Local: "read"}
	readByQueryXMLName = xml.Name{Local: "readByQuery"}
	readByNameXMLName  = xml.Name{Local: "readByName"}
	readMoreXMLName    = xml.Name{Local: "readMore"}
	readReturnFormat   = "xml"
	readAllFields      = "*"
)

// Read returns a Reader to read specific keys.  If no keys are
// passed, the first 100 records are returned in an unspecified
// order.
func Read(objectName string, keys ...string) *Reader {
	var keyvals = strings.Join(keys, ",")
	return &Reader{
		XMLName:      readXMLName,
		Object:       objectName,
		Keys:         &keyvals,
		FieldList:    readAllFields,
		ReturnFormat: readReturnFormat,
	}
}

// ReadByName returns a Reader to read specific name keys.
func ReadByName(objectName string, keys ...string) *Reader {
	var keyvals = strings.Join(keys, ",")
	return &Reader{
		XMLName:      readByNameXMLName,
		Object:       objectName,
		Keys:         &keyvals,
		FieldList:    readAllFields,
		ReturnFormat: readReturnFormat,
	}
}

// ReadByQuery returns a Reader based upon the passed query string,
// an SQL-like filter over the object's fields.  Supported operators:
// <, >, >=, <=, =, like, not like, in, not in, IS NULL, IS NOT NULL,
// combined with AND/OR.  Single quotes in operands must be escaped
// with a backslash.
func ReadByQuery(objectName string, qry string) *Reader {
	return &Reader{
		XMLName:      readByQueryXMLName,
		Object:       objectName,
		Query:        &qry,
		FieldList:    readAllFields,
		ReturnFormat: readReturnFormat,
	}
}

// ReadMore returns a Reader that continues a prior readByQuery using
// the server-issued result ID.
func ReadMore(resultID string) *Reader {
	return &Reader{
		XMLName:  readMoreXMLName,
		ResultID: resultID,
	}
}

// Fields sets the fields to return.  If not set, all fields are
// returned.  Not valid on a ReadMore.
func (r *Reader) Fields(fields ...string) *Reader {
	if r != nil && r.XMLName.Local != readMoreXMLName.Local {
		r.FieldList = strings.Join(fields, ",")
	}
	return r
}

// PageSize sets the max number of records per page for a
// readByQuery.  The gateway assumes 100 when unset.
func (r *Reader) PageSize(numOfRecs int) *Reader {
	if r.XMLName.Local == readByQueryXMLName.Local {
		r.MaxRecs = numOfRecs
	}
	return r
}

// SetControlID overrides the content-hash control ID.
func (r *Reader) SetControlID(controlID string) *Reader {
	r.controlID = controlID
	return r
}

// GetControlID returns the explicit control ID for the call.
func (r Reader) GetControlID() string {
	return r.controlID
}

// GetAll reads every page of a readByQuery and unmarshals them into
// resultSlice, which must be of type *[]<Object>.
func (r Reader) GetAll(ctx context.Context, sv *Service, resultSlice interface{}) error {
	if r.XMLName.Local != readByQueryXMLName.Local && r.XMLName.Local != readMoreXMLName.Local {
		return fmt.Errorf("GetAll not allowed on %s", r.XMLName.Local)
	}
	rptr := &r
	for rptr != nil {
		resp, err := sv.Exec(ctx, rptr)
		if err != nil {
			return err
		}
		if err = resp.Decode(resultSlice); err != nil {
			return err
		}
		if len(resp.Results) > 0 && resp.Results[0].Data != nil && resp.Results[0].Data.NumRemaining > 0 {
			rptr = ReadMore(resp.Results[0].Data.ResultID)
		} else {
			rptr = nil
		}
	}
	return nil
}

// Writer creates functions such as create, update and delete.  Use
// the Create, Update and Delete funcs for those; Writer also covers
// one-off commands with no payload.
type Writer struct {
	// Cmd names the top level element.
	Cmd string `xml:"-"`
	// Payload may be nil for commands with no body.
	Payload interface{}
	// If not empty, ObjectName overrides Payload's XMLName.
	ObjectName string `xml:"-"`
	controlID  string
}

// MarshalXML customizes xml output for Writer.
func (w Writer) MarshalXML(e *xml.Encoder, s xml.StartElement) error {
	s.Name.Local = w.Cmd
	s.Name.Space = ""
	s.Attr = nil
	if err := e.EncodeToken(s); err != nil {
		return err
	}
	if w.Payload != nil {
		if err := w.encodePayload(e); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: s.Name})
}

func (w *Writer) encodePayload(e *xml.Encoder) error {
	if w.ObjectName == "" {
		return e.Encode(w.Payload)
	}
	return e.EncodeElement(w.Payload, xml.StartElement{Name: xml.Name{Local: w.ObjectName}})
}

// Create returns a Writer function to create object(s) in payload.
func Create(objectName string, payload interface{}) *Writer {
	return &Writer{
		Cmd:        "create",
		ObjectName: objectName,
		Payload:    payload,
	}
}

// Update returns a Writer function to update object(s) in payload.
// Payload must contain a key for the object.
func Update(objectName string, payload interface{}) *Writer {
	return &Writer{
		Cmd:        "update",
		ObjectName: objectName,
		Payload:    payload,
	}
}

// Delete returns a Writer function to delete object(s) in payload.
func Delete(objectName string, payload interface{}) *Writer {
	return &Writer{
		Cmd:        "delete",
		ObjectName: objectName,
		Payload:    payload,
	}
}

// SetControlID overrides the content-hash control ID.
func (w *Writer) SetControlID(controlID string) *Writer {
	w.controlID = controlID
	return w
}

// GetControlID returns the explicit control ID for the call.
func (w Writer) GetControlID() string {
	return w.controlID
}

// Inspector performs an inspection macro returning the definition of
// the named object.  For a list of all objects, set Object to "*".
type Inspector struct {
	XMLName   xml.Name `xml:"inspect"`
	IsDetail  int      `xml:"detail,attr,omitempty"` // set to 1 for detail
	Object    string   `xml:"object"`
	controlID string
}

// ObjectFields returns a function listing an object's fields.  With
// showDetail the gateway returns an InspectDetailResult, otherwise
// an InspectResult.
func ObjectFields(objectName string, showDetail bool) *Inspector {
	var detVal = 0
	if showDetail {
		detVal = 1
	}
	return &Inspector{
		IsDetail: detVal,
		Object:   objectName,
	}
}

// ObjectList returns an Inspector function that returns an
// []InspectName of all objects.
func ObjectList() *Inspector {
	return &Inspector{Object: "*"}
}

// GetControlID returns the explicit control ID for the function.
func (i *Inspector) GetControlID() string {
	return i.controlID
}

// SetControlID overrides the content-hash control ID.
func (i *Inspector) SetControlID(id string) {
	i.controlID = id
}

// InspectName is the name listing from a full inspect call.
type InspectName struct {
	TypeName string `xml:"typename,attr"`
	Name     string `xml:",chardata"`
}

// InspectDetailResult is the full description of an object from an
// inspect function call.
type InspectDetailResult struct {
	XMLName      xml.Name      `xml:"Type"`
	Name         string        `xml:"Name,attr"`
	SingularName string        `xml:"Attributes>SingularName"`
	PluralName   string        `xml:"Attributes>PluralName"`
	Description  string        `xml:"Attributes>Description"`
	Fields       []FieldDetail `xml:"Fields>Field"`
}

// FieldDetail is the description of each field of an object.
type FieldDetail struct {
	Name             string `xml:"Name"`
	GroupName        string `xml:"GroupName"`
	DataName         string `xml:"dataName"`
	ExternalDataName string `xml:"externalDataName"`
	IsRequired       bool   `xml:"isRequired"`
	IsReadOnly       bool   `xml:"isReadOnly"`
	MaxLen           string `xml:"maxLength"`
	DisplayLabel     string `xml:"DisplayLabel"`
	Description      string `xml:"Description"`
	ID               string `xml:"id"`
	Relationship     string `xml:"relationship"`
	RelatedObject    string `xml:"relatedObject"`
}

// InspectResult lists all fields for an object (name only).
type InspectResult struct {
	XMLName xml.Name `xml:"Type"`
	Name    string   `xml:"Name,attr"`
	Field   []string `xml:"Fields>Field"`
}

// LegacyFunction wraps v2.1 style payloads (get_list, create_bill,
// etc.).  See the v21 package.
type LegacyFunction struct {
	Payload   interface{}
	controlID string
}

// MarshalXML only encodes the Payload field.
func (n LegacyFunction) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if n.Payload == nil {
		return errors.New("no payload specified")
	}
	return e.Encode(n.Payload)
}

// SetControlID overrides the content-hash control ID.
func (n *LegacyFunction) SetControlID(id string) *LegacyFunction {
	n.controlID = id
	return n
}

// GetControlID fulfills the Function interface.
func (n LegacyFunction) GetControlID() string {
	return n.controlID
}
