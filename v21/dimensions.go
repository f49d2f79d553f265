// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package v21

import (
	"encoding/xml"
	"fmt"
)

// Dimension types the tracking system records transactions against.
// Both must exist in the company before a transaction referencing
// them can post.
const (
	DimensionBrokerFile  = "Broker File"
	DimensionFreightFile = "Freight File"
)

// dimensionObject maps a dimension type to the 2.1 object it is
// stored as and that object's key field.
var dimensionObject = map[string]struct {
	object   string
	keyField string
}{
	DimensionBrokerFile:  {"class", "classid"},
	DimensionFreightFile: {"project", "projectid"},
}

// DimensionGet returns a get_list locating the dimension value, a
// cheap existence probe with no side effects.
func DimensionGet(dimensionType, id string) (*GetList, error) {
	obj, ok := dimensionObject[dimensionType]
	if !ok {
		return nil, fmt.Errorf("unknown dimension type %q", dimensionType)
	}
	return &GetList{
		ObjectName: obj.object,
		MaxItems:   1,
		Filter: &Expression{
			Type:  ExpressionEqual,
			Field: obj.keyField,
			Value: id,
		},
		Fields: &[]string{obj.keyField},
	}, nil
}

// CreateClass records a Broker File dimension value.
type CreateClass struct {
	XMLName xml.Name `xml:"create_class"`
	ClassID string   `xml:"classid"`
	Name    string   `xml:"name"`
}

// CreateProject records a Freight File dimension value.
type CreateProject struct {
	XMLName         xml.Name `xml:"create_project"`
	ProjectID       string   `xml:"projectid"`
	Name            string   `xml:"name"`
	ProjectCategory string   `xml:"projectcategory"`
	Status          string   `xml:"status,omitempty"`
}

// DimensionCreate returns the create function recording the
// dimension value.  value is the display name; a blank value falls
// back to the id.
func DimensionCreate(dimensionType, id, value string) (interface{}, error) {
	if value == "" {
		value = id
	}
	switch dimensionType {
	case DimensionBrokerFile:
		return &CreateClass{ClassID: id, Name: value}, nil
	case DimensionFreightFile:
		return &CreateProject{
			ProjectID:       id,
			Name:            value,
			ProjectCategory: "Contract",
		}, nil
	}
	return nil, fmt.Errorf("unknown dimension type %q", dimensionType)
}
