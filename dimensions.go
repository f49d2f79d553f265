// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intacct

// GetDimensions lists all standard dimensions and user defined
// dimensions in a company along with integration information about
// each object.
func GetDimensions() Function {
	return &Writer{Cmd: "getDimensions"}
}

// GetDimensionRelationships lists all dimensions and provides
// information about their to-one and to-many relationships to other
// dimensions.
func GetDimensionRelationships() Function {
	return &Writer{Cmd: "getDimensionRelationships"}
}

// Relationship describes a dimension returned by GetDimensions.
type Relationship struct {
	Dimension       string     `xml:"dimension"`
	ObjectID        string     `xml:"object_id"`
	AutoFillRelated Bool       `xml:"autofillrelated"`
	EnableOverride  Bool       `xml:"enableoverride"`
	Related         []Related  `xml:"related"`
	AutoFill        []AutoFill `xml:"autofil"`
}

// Related describes relationships between dimensions.
type Related struct {
	DimensionRelationship
	SourceSide  string `xml:"source_side"`
	RelatedSide string `xml:"related_side"`
}

// AutoFill describes auto fill relationships for a dimension.
type AutoFill struct {
	DimensionRelationship
	Type string `xml:"type"`
}

// DimensionRelationship identifies a child relationship.
type DimensionRelationship struct {
	Dimension      string `xml:"dimension"`
	ObjectID       string `xml:"object_id"`
	RelationshipID string `xml:"relationship_id"`
}
