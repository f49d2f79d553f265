// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intacct

import (
	"encoding/xml"
)

// Request is the full envelope posted to the gateway.
type Request struct {
	XMLName xml.Name  `xml:"request"`
	Control Control   `xml:"control"`
	Op      Operation `xml:"operation"`
}

// Control provides the header of a request.
type Control struct {
	SenderID   string `xml:"senderid,omitempty"`
	Password   string `xml:"password,omitempty"`
	ControlID  string `xml:"controlid,omitempty"`
	UniqueID   bool   `xml:"uniqueid"`
	DTDVersion string `xml:"dtdversion"`
	PolicyID   string `xml:"policyid,omitempty"`
	Status     string `xml:"status,omitempty"`
}

// Operation marshals the authenticated portion of a request.  When
// Transaction is set, the batched functions succeed or fail as one.
type Operation struct {
	Transaction bool              `xml:"transaction,attr,omitempty"`
	Auth        interface{}       `xml:"authentication"`
	Content     []RequestFunction `xml:"content>function"`
}

// RequestFunction carries one pre-serialized function and its
// content-derived control ID.
type RequestFunction struct {
	ControlID string `xml:"controlid,attr"`
	Payload   []byte `xml:",innerxml"`
}
