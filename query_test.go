// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intacct_test

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/freightdesk/intacct"
)

func TestQueryMarshal(t *testing.T) {
	f := intacct.NewFilter()
	f.And().
		EqualTo("VENDORID", "V-100").
		GreaterThan("TOTALDUE", "0")
	q := &intacct.Query{
		Object: "APBILL",
		Select: intacct.Select{Fields: []string{"RECORDNO", "TOTALDUE"}},
		Filter: f,
		PageSz: 50,
	}
	b, err := xml.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(b)
	for _, want := range []string{
		"<query>",
		"<object>APBILL</object>",
		"<select><field>RECORDNO</field><field>TOTALDUE</field></select>",
		"<filter><and>",
		"<equalto><field>VENDORID</field><value>V-100</value></equalto>",
		"<greaterthan><field>TOTALDUE</field><value>0</value></greaterthan>",
		"<pagesize>50</pagesize>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("query missing %s\n%s", want, body)
		}
	}
}
