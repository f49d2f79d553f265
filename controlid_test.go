// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intacct_test

import (
	"encoding/xml"
	"regexp"
	"testing"

	"github.com/freightdesk/intacct"
)

var sha1Hex = regexp.MustCompile(`^[0-9a-f]{40}$`)

func TestControlID(t *testing.T) {
	content := []byte("<read><object>VENDOR</object></read>")
	id := intacct.ControlID(content)
	if !sha1Hex.MatchString(id) {
		t.Errorf("expected 40 char hex digest; got %q", id)
	}
	if id != intacct.ControlID([]byte("<read><object>VENDOR</object></read>")) {
		t.Errorf("identical content must produce identical control IDs")
	}
	if id == intacct.ControlID([]byte("<read><object>VENDOR</object></read> ")) {
		t.Errorf("a one byte change must produce a different control ID")
	}
}

func TestHashFunction(t *testing.T) {
	f := intacct.Read("VENDOR", "100")
	id, err := intacct.HashFunction(f)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	body, _ := xml.Marshal(f)
	if id != intacct.ControlID(body) {
		t.Errorf("expected hash of serialized content %s; got %s", intacct.ControlID(body), id)
	}

	f.SetControlID("explicit")
	if id, _ = intacct.HashFunction(f); id != "explicit" {
		t.Errorf("explicit control ID must win over the content hash; got %s", id)
	}
}
