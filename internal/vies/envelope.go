package vies

import "encoding/xml"

// SOAP 1.1 envelope shapes for the VIES checkVat and checkStatus services
// (urn:ec.europa.eu:taxud:vies:services:checkVat:types).

type requestEnvelope struct {
	XMLName  xml.Name    `xml:"soapenv:Envelope"`
	XMLNSEnv string      `xml:"xmlns:soapenv,attr"`
	XMLNSURN string      `xml:"xmlns:urn,attr"`
	Body     requestBody `xml:"soapenv:Body"`
}

type requestBody struct {
	CheckVat    *checkVatRequest    `xml:"urn:checkVat,omitempty"`
	CheckStatus *checkStatusRequest `xml:"urn:checkStatus,omitempty"`
}

type checkVatRequest struct {
	CountryCode string `xml:"urn:countryCode"`
	VATNumber   string `xml:"urn:vatNumber"`
}

type checkStatusRequest struct{}

type responseEnvelope struct {
	XMLName xml.Name     `xml:"Envelope"`
	Body    responseBody `xml:"Body"`
}

type responseBody struct {
	CheckVatResponse    *checkVatResponse    `xml:"checkVatResponse"`
	CheckStatusResponse *checkStatusResponse `xml:"checkStatusResponse"`
	Fault               *soapFault           `xml:"Fault"`
}

type checkVatResponse struct {
	CountryCode string `xml:"countryCode"`
	VATNumber   string `xml:"vatNumber"`
	RequestDate string `xml:"requestDate"`
	Valid       bool   `xml:"valid"`
	Name        string `xml:"name"`
	Address     string `xml:"address"`
}

type checkStatusResponse struct {
	VOW struct {
		Available bool `xml:"available"`
	} `xml:"vow"`
	CountryStatus []struct {
		CountryCode  string `xml:"countryCode"`
		Availability string `xml:"availability"`
	} `xml:"countryStatus"`
}

type soapFault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

func newCheckVatEnvelope(countryCode, vatNumber string) requestEnvelope {
	return requestEnvelope{
		XMLNSEnv: soapEnvNS,
		XMLNSURN: viesTypesNS,
		Body: requestBody{
			CheckVat: &checkVatRequest{CountryCode: countryCode, VATNumber: vatNumber},
		},
	}
}

func newCheckStatusEnvelope() requestEnvelope {
	return requestEnvelope{
		XMLNSEnv: soapEnvNS,
		XMLNSURN: viesTypesNS,
		Body:     requestBody{CheckStatus: &checkStatusRequest{}},
	}
}
