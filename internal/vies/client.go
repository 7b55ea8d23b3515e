// Package vies implements the SOAP client for the VAT Information Exchange
// System: one checkVat call per record plus the independent checkStatus
// availability query. No retries, no caching.
package vies

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"

	"github.com/In-dig0/vat-controller/internal/config"
	"github.com/In-dig0/vat-controller/internal/domain"
	"github.com/In-dig0/vat-controller/internal/port"
)

const (
	soapEnvNS   = "http://schemas.xmlsoap.org/soap/envelope/"
	viesTypesNS = "urn:ec.europa.eu:taxud:vies:services:checkVat:types"

	contentTypeXML = "text/xml; charset=utf-8"
)

// Client calls the VIES SOAP endpoints over plain HTTP POST.
type Client struct {
	checkVatEndpoint string
	statusEndpoint   string
	client           *http.Client
}

// NewClient creates a VIES client from config.
func NewClient(cfg *config.VIESConfig) *Client {
	return newClient(cfg, cfg.CheckVatEndpoint, cfg.StatusEndpoint)
}

// NewClientWithEndpoints creates a client pointing at custom endpoints (for testing).
func NewClientWithEndpoints(cfg *config.VIESConfig, checkVatEndpoint, statusEndpoint string) *Client {
	return newClient(cfg, checkVatEndpoint, statusEndpoint)
}

func newClient(cfg *config.VIESConfig, checkVatEndpoint, statusEndpoint string) *Client {
	return &Client{
		checkVatEndpoint: checkVatEndpoint,
		statusEndpoint:   statusEndpoint,
		client:           &http.Client{Timeout: cfg.Timeout()},
	}
}

// CheckVAT performs one checkVat lookup. Transport-level failures wrap
// domain.ErrServiceUnavailable; SOAP faults wrap domain.ErrServiceFault via
// FaultError. A valid=false answer is a normal result, not an error.
func (c *Client) CheckVAT(ctx context.Context, countryCode, vatNumber string) (*port.CheckVATResult, error) {
	body, err := c.call(ctx, c.checkVatEndpoint, newCheckVatEnvelope(countryCode, vatNumber))
	if err != nil {
		return nil, err
	}
	if body.CheckVatResponse == nil {
		return nil, fmt.Errorf("%w: checkVat response missing body element", domain.ErrServiceUnavailable)
	}

	resp := body.CheckVatResponse
	return &port.CheckVATResult{
		CountryCode: resp.CountryCode,
		VATNumber:   resp.VATNumber,
		Valid:       resp.Valid,
		Name:        cleanField(resp.Name),
		Address:     cleanField(resp.Address),
		RequestDate: resp.RequestDate,
	}, nil
}

// CheckStatus queries overall and per-member-state availability.
func (c *Client) CheckStatus(ctx context.Context) (*port.ServiceStatus, error) {
	body, err := c.call(ctx, c.statusEndpoint, newCheckStatusEnvelope())
	if err != nil {
		return nil, err
	}
	if body.CheckStatusResponse == nil {
		return nil, fmt.Errorf("%w: checkStatus response missing body element", domain.ErrServiceUnavailable)
	}

	resp := body.CheckStatusResponse
	status := &port.ServiceStatus{
		Available:    resp.VOW.Available,
		MemberStates: make(map[string]bool, len(resp.CountryStatus)),
	}
	for _, cs := range resp.CountryStatus {
		status.MemberStates[cs.CountryCode] = cs.Availability == "AVAILABLE"
	}
	return status, nil
}

func (c *Client) call(ctx context.Context, endpoint string, env requestEnvelope) (*responseBody, error) {
	payload, err := xml.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshaling SOAP envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", contentTypeXML)
	req.Header.Set("SOAPAction", "")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: calling %s: %v", domain.ErrServiceUnavailable, endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", domain.ErrServiceUnavailable, err)
	}

	var envelope responseEnvelope
	if unmarshalErr := xml.Unmarshal(respBody, &envelope); unmarshalErr != nil {
		// Not a SOAP payload at all: proxies, maintenance pages, 5xx HTML.
		return nil, fmt.Errorf("%w: status %d, unparsable response: %v",
			domain.ErrServiceUnavailable, resp.StatusCode, unmarshalErr)
	}

	// Faults usually ride on HTTP 500 but the body is authoritative.
	if envelope.Body.Fault != nil {
		return nil, NewFaultError(envelope.Body.Fault.String)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrServiceUnavailable, resp.StatusCode)
	}
	return &envelope.Body, nil
}

// cleanField normalizes the service's "---" placeholder to an absent value.
func cleanField(s string) string {
	if s == "---" {
		return ""
	}
	return s
}
