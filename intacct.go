// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package intacct implements a client for the Sage Intacct XML
// gateway.  A Service serializes one or more Functions into a
// request envelope, posts the envelope and decodes the response.
// Control IDs correlating functions to results are derived from a
// SHA-1 digest of each function's serialized content so that
// identical logical requests always carry identical IDs.
package intacct // import "github.com/freightdesk/intacct"

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/jfcote87/ctxclient"
)

// DefaultEndpoint used unless the Service specifies another.
const DefaultEndpoint = "https://api.intacct.com/ia/xml/xmlgw.phtml"

// DefaultDTDVersion used for requests.  May be overridden per call
// via ControlConfig; read functions on newer objects need "3.0".
const DefaultDTDVersion = "2.1"

const contentType = "x-intacct-xml-request"

// Environment determines the target company and whether write
// functions may be sent at all.
type Environment string

// Recognized environments.  Writes are only permitted from
// Production and Sandbox; every other environment may issue
// read-only calls.
const (
	Production  Environment = "production"
	Sandbox     Environment = "sandbox"
	Development Environment = "development"
	Test        Environment = "test"
)

// writesAllowed reports whether non read-only functions may be
// posted from this environment.
func (e Environment) writesAllowed() bool {
	return e == Production || e == Sandbox
}

// ResolveCompany returns the company ID targeted from this
// environment.  Production posts to the configured company; every
// other environment posts to its sandbox twin.
func (e Environment) ResolveCompany(companyID string) string {
	if e == Production {
		return companyID
	}
	return companyID + "-sandbox"
}

// Service stores connection configuration and provides functions for
// sending requests.  Populate once; a Service is safe for concurrent
// use and must not be mutated after first use.
type Service struct {
	// SenderID and Password are the partner credentials, not the
	// company login.
	SenderID string
	Password string
	// Authenticator marshals into the login or sessionid element.
	Authenticator Authenticator
	// Environment gates write calls and the uniqueid flag.  The
	// zero value behaves as Development: read-only only.
	Environment Environment
	// Endpoint overrides DefaultEndpoint when set.
	Endpoint string
	// Set if a dedicated http client is needed.
	HTTPClientFunc ctxclient.Func
}

// Authenticator returns an interface{} that will xml marshal into a
// valid login or sessionid element for a request.
type Authenticator interface {
	GetAuthElement(ctx context.Context) (interface{}, error)
}

// Login provides a username/password authentication mechanism.
// LocationID is optional and selects a sub-entity.
type Login struct {
	UserID     string `xml:"login>userid" json:"user_id"`
	Company    string `xml:"login>companyid" json:"company"`
	Password   string `xml:"login>password" json:"password"`
	LocationID string `xml:"login>locationid,omitempty" json:"location_id,omitempty"`
}

// GetAuthElement fulfills the Authenticator interface.
func (l *Login) GetAuthElement(ctx context.Context) (interface{}, error) {
	if l == nil {
		return nil, errNilLogin
	}
	return l, nil
}

// resolve returns a copy of l with the company ID adjusted for env.
func (l *Login) resolve(env Environment) *Login {
	var l2 = *l
	l2.Company = env.ResolveCompany(l.Company)
	return &l2
}

// SessionID provides an authorization token that may be used in a
// request in place of a Login.
type SessionID string

// GetAuthElement fulfills the Authenticator interface.
func (s SessionID) GetAuthElement(ctx context.Context) (interface{}, error) {
	if s == "" {
		return nil, errors.New("empty sessionid")
	}
	return s, nil
}

// MarshalXML formats sessionid for a request.
func (s SessionID) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	sname := xml.Name{Local: "sessionid"}
	e.EncodeToken(start)
	e.EncodeToken(xml.StartElement{Name: sname})
	e.EncodeToken(xml.CharData([]byte(s)))
	e.EncodeToken(xml.EndElement{Name: sname})
	return e.EncodeToken(start.End())
}

// Config provides a serializable Service definition.  This is the
// shape the ops secret stores hold.
type Config struct {
	URL            string `json:"url,omitempty"`
	SenderID       string `json:"sender_id"`
	SenderPassword string `json:"sender_pwd"`
	Login          *Login `json:"login,omitempty"`
	Environment    string `json:"environment,omitempty"`
	APIVersion     string `json:"api_version,omitempty"`
}

// ServiceFromConfigJSON returns a service decoded from r.  Do not
// make changes to the returned Service; create a new service if
// necessary.
func ServiceFromConfigJSON(r io.Reader) (*Service, error) {
	var cfg Config
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, &ConfigError{Reason: "decode config", Err: err}
	}
	return ServiceFromConfig(cfg)
}

// ServiceFromConfig creates a service from configuration.
func ServiceFromConfig(cfg Config) (*Service, error) {
	if cfg.SenderID == "" || cfg.SenderPassword == "" {
		return nil, &ConfigError{Reason: "sender_id/sender_pwd must be set"}
	}
	if cfg.Login == nil {
		return nil, &ConfigError{Reason: "a login must be specified"}
	}
	return &Service{
		SenderID:      cfg.SenderID,
		Password:      cfg.SenderPassword,
		Authenticator: cfg.Login,
		Endpoint:      cfg.URL,
		Environment:   Environment(cfg.Environment),
	}, nil
}

// ControlConfig specifies transactional data for a request.
type ControlConfig struct {
	// IsTransaction wraps all functions of the request into a
	// single atomic operation; on any failure none take effect.
	IsTransaction bool
	// IsUnique asks the gateway to reject a request whose control
	// ID matches an already accepted request.  Honored only in
	// Production; forced off everywhere else so repeated test runs
	// with identical content succeed.
	IsUnique bool
	// ForceNonUnique disables IsUnique even in Production.  Meant
	// for the documented hash-collision override only; it is an
	// explicit per-call setting, never ambient state.
	ForceNonUnique bool
	// ReadOnly marks a request that performs no writes.  Read-only
	// requests bypass the environment guard.
	ReadOnly bool
	// ControlID overrides the content-hash envelope control ID.
	ControlID string
	// DTDVersion overrides DefaultDTDVersion ("2.1").
	DTDVersion string
	// PolicyID routes the request to an async policy queue.
	PolicyID string
}

// Exec posts the given functions as a read-only request.  Use
// ExecWithControl for anything that writes.
func (sv *Service) Exec(ctx context.Context, f ...Function) (*Response, error) {
	return sv.ExecWithControl(ctx, &ControlConfig{ReadOnly: true}, f...)
}

func (sv *Service) validate(ctx context.Context, cc *ControlConfig, f ...Function) error {
	if sv == nil {
		return errors.New("nil Service")
	}
	if sv.Authenticator == nil {
		return errors.New("nil Authenticator")
	}
	if sv.SenderID == "" || sv.Password == "" {
		return &ConfigError{Reason: "SenderID/Password is empty"}
	}
	if ctx == nil {
		return errors.New("nil context")
	}
	if len(f) == 0 {
		return errors.New("no functions specified")
	}
	if (cc == nil || !cc.ReadOnly) && !sv.Environment.writesAllowed() {
		return &ConfigError{
			Reason: fmt.Sprintf("write functions may not be sent from the %q environment", sv.Environment),
		}
	}
	return nil
}

// ExecWithControl posts the functions under the given ControlConfig.
// The environment guard runs before any network I/O.  A response
// body that cannot be parsed as XML is returned as a *TransientError
// so callers may retry.
func (sv *Service) ExecWithControl(ctx context.Context, cc *ControlConfig, f ...Function) (*Response, error) {
	if err := sv.validate(ctx, cc, f...); err != nil {
		return nil, err
	}
	req, err := sv.makeRequest(ctx, cc, f)
	if err != nil {
		return nil, err
	}
	res, err := sv.HTTPClientFunc.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var reqResponse *Response
	if err = xml.NewDecoder(res.Body).Decode(&reqResponse); err != nil {
		// intermediaries answer with HTML error pages on occasion
		return nil, &TransientError{Reason: "unparseable response body", Err: err}
	}
	return reqResponse, reqResponse.execErr()
}

// control builds the request control block.  The envelope control ID
// defaults to the digest of the concatenated function content.
func (sv *Service) control(cc *ControlConfig, contentHash string) Control {
	if cc == nil {
		cc = &ControlConfig{}
	}
	return Control{
		SenderID:   sv.SenderID,
		Password:   sv.Password,
		ControlID:  isEmpty(cc.ControlID, contentHash),
		UniqueID:   cc.IsUnique && !cc.ForceNonUnique && sv.Environment == Production,
		DTDVersion: isEmpty(cc.DTDVersion, DefaultDTDVersion),
		PolicyID:   cc.PolicyID,
	}
}

func isEmpty(val, defaultVal string) string {
	if val == "" {
		return defaultVal
	}
	return val
}

func (sv *Service) authElement(ctx context.Context) (interface{}, error) {
	el, err := sv.Authenticator.GetAuthElement(ctx)
	if err != nil {
		return nil, err
	}
	if login, ok := el.(*Login); ok {
		return login.resolve(sv.Environment), nil
	}
	return el, nil
}

// makeRequest creates an *http.Request assigning headers and body.
// Each function is marshaled separately so its control ID can be
// derived from its own content before the envelope is assembled.
func (sv *Service) makeRequest(ctx context.Context, cc *ControlConfig, functions []Function) (*http.Request, error) {
	authElement, err := sv.authElement(ctx)
	if err != nil {
		return nil, err
	}
	reqFuncs := make([]RequestFunction, 0, len(functions))
	var content bytes.Buffer
	for _, f := range functions {
		body, err := xml.Marshal(f)
		if err != nil {
			return nil, fmt.Errorf("marshal function: %w", err)
		}
		content.Write(body)
		reqFuncs = append(reqFuncs, RequestFunction{
			ControlID: isEmpty(f.GetControlID(), ControlID(body)),
			Payload:   body,
		})
	}

	reqBuffer := bytes.NewBufferString(xml.Header)
	xmlEncoder := xml.NewEncoder(reqBuffer)
	if err := xmlEncoder.Encode(&Request{
		Control: sv.control(cc, ControlID(content.Bytes())),
		Op: Operation{
			Transaction: cc != nil && cc.IsTransaction,
			Auth:        authElement,
			Content:     reqFuncs,
		},
	}); err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, _ := http.NewRequest("POST", isEmpty(sv.Endpoint, DefaultEndpoint), reqBuffer)
	req.Header.Add("Content-Type", contentType)
	return req, nil
}

var errNilLogin = errors.New("userid/password not set, unable to login")
