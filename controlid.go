// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intacct

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/xml"
)

// ControlID returns the SHA-1 hex digest of the serialized function
// content.  Identical logical requests hash to identical IDs, which
// lets the gateway's uniqueid check reject accidental resubmission,
// and distinct functions batched into one envelope receive distinct
// IDs without any coordination.
func ControlID(content []byte) string {
	sum := sha1.Sum(content)
	return hex.EncodeToString(sum[:])
}

// HashFunction marshals f and returns its content-derived control ID.
// The ID matches what Exec assigns when the function carries no
// explicit control ID.
func HashFunction(f Function) (string, error) {
	if id := f.GetControlID(); id != "" {
		return id, nil
	}
	body, err := xml.Marshal(f)
	if err != nil {
		return "", err
	}
	return ControlID(body), nil
}
