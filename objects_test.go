// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intacct_test

import (
	"encoding/xml"
	"testing"

	"github.com/freightdesk/intacct"
)

func TestContactDecode(t *testing.T) {
	data := `<CONTACT>
  <RECORDNO>118</RECORDNO>
  <CONTACTNAME>Ship Ops</CONTACTNAME>
  <COMPANYNAME>Acme Lines</COMPANYNAME>
  <PHONE1>3175551212</PHONE1>
  <EMAIL1>ops@example.com</EMAIL1>
  <MAILADDRESS>
    <ADDRESS1>1 Harbor Way</ADDRESS1>
    <CITY>Long Beach</CITY>
    <STATE>CA</STATE>
    <ZIP>90802</ZIP>
  </MAILADDRESS>
  <BROKERREF>BF-1</BROKERREF>
</CONTACT>`
	var c intacct.Contact
	if err := xml.Unmarshal([]byte(data), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.ContactName != "Ship Ops" || c.RecordNumber.Val() != 118 {
		t.Errorf("unexpected contact %+v", c)
	}
	if c.Address == nil || c.Address.City != "Long Beach" {
		t.Errorf("expected mail address; got %+v", c.Address)
	}
	var found bool
	for _, cf := range c.CustomFields {
		if cf.Name == "BROKERREF" && cf.Value == "BF-1" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected BROKERREF custom field; got %v", c.CustomFields)
	}
}

func TestGetDimensions(t *testing.T) {
	b, err := xml.Marshal(intacct.GetDimensions())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "<getDimensions></getDimensions>" {
		t.Errorf("unexpected encoding %s", b)
	}
	b, _ = xml.Marshal(intacct.GetDimensionRelationships())
	if string(b) != "<getDimensionRelationships></getDimensionRelationships>" {
		t.Errorf("unexpected encoding %s", b)
	}
}
