// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v21

import (
	"encoding/base64"
	"encoding/xml"
)

// CreateSupdoc attaches supporting documents to a folder.
type CreateSupdoc struct {
	XMLName           xml.Name     `xml:"create_supdoc"`
	SupdocID          string       `xml:"supdocid"`
	SupdocName        string       `xml:"supdocname,omitempty"`
	SupdocfolderName  string       `xml:"supdocfoldername,omitempty"`
	Supdocdescription string       `xml:"supdocdescription,omitempty"`
	Attachments       []Attachment `xml:"attachments>attachment"`
}

// Attachment holds one file.  AttachmentData carries the raw bytes;
// the wire format is standard base64.
type Attachment struct {
	AttachmentName string
	AttachmentType string
	AttachmentData []byte
}

// MarshalXML base64 encodes the attachment data.
func (a Attachment) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	var enc = struct {
		Name string `xml:"attachmentname"`
		Type string `xml:"attachmenttype"`
		Data string `xml:"attachmentdata"`
	}{
		Name: a.AttachmentName,
		Type: a.AttachmentType,
		Data: base64.StdEncoding.EncodeToString(a.AttachmentData),
	}
	return e.EncodeElement(enc, start)
}

// UnmarshalXML base64 decodes the attachment data.
func (a *Attachment) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var enc struct {
		Name string `xml:"attachmentname"`
		Type string `xml:"attachmenttype"`
		Data string `xml:"attachmentdata"`
	}
	if err := d.DecodeElement(&enc, &start); err != nil {
		return err
	}
	data, err := base64.StdEncoding.DecodeString(enc.Data)
	if err != nil {
		return err
	}
	*a = Attachment{AttachmentName: enc.Name, AttachmentType: enc.Type, AttachmentData: data}
	return nil
}
