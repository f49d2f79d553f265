// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package intacct

// Contact describes the CONTACT entity embedded in customers,
// vendors and check recipients.
type Contact struct {
	RecordNumber Int           `xml:"RECORDNO,omitempty"`
	ContactName  string        `xml:"CONTACTNAME,omitempty"`
	Prefix       string        `xml:"PREFIX,omitempty"`
	FirstName    string        `xml:"FIRSTNAME,omitempty"`
	LastName     string        `xml:"LASTNAME,omitempty"`
	MI           string        `xml:"INITIAL,omitempty"`
	CompanyName  string        `xml:"COMPANYNAME,omitempty"`
	PrintAs      string        `xml:"PRINTAS,omitempty"`
	Taxable      Bool          `xml:"TAXABLE,omitempty"`
	TaxGroup     string        `xml:"TAXGROUP,omitempty"`
	PhoneNumber  string        `xml:"PHONE1,omitempty"`
	FaxNumber    string        `xml:"FAX,omitempty"`
	EmailAddress string        `xml:"EMAIL1,omitempty"`
	Visible      Bool          `xml:"VISIBLE,omitempty"`
	Status       string        `xml:"STATUS,omitempty"`
	WhenCreated  Datetime      `xml:"WHENCREATED,omitempty"`
	WhenModified Datetime      `xml:"WHENMODIFIED,omitempty"`
	Address      *MailAddress  `xml:"MAILADDRESS,omitempty"`
	CustomFields []CustomField `xml:",any"`
}

// MailAddress describes the mail address for a contact.
type MailAddress struct {
	Addr1         string        `xml:"ADDRESS1,omitempty"`
	Addr2         string        `xml:"ADDRESS2,omitempty"`
	City          string        `xml:"CITY,omitempty"`
	StateProvince string        `xml:"STATE,omitempty"`
	ZipPostalCode string        `xml:"ZIP,omitempty"`
	Country       string        `xml:"COUNTRY,omitempty"`
	CustomFields  []CustomField `xml:",any"`
}
