package viesmock

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postCheckVat(t *testing.T, ts *httptest.Server, countryCode, vatNumber string) (int, string) {
	t.Helper()
	envelope := `<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"
 xmlns:urn="urn:ec.europa.eu:taxud:vies:services:checkVat:types">
<soapenv:Body><urn:checkVat><urn:countryCode>` + countryCode + `</urn:countryCode>
<urn:vatNumber>` + vatNumber + `</urn:vatNumber></urn:checkVat></soapenv:Body></soapenv:Envelope>`

	resp, err := http.Post(ts.URL+"/checkVatService", "text/xml; charset=utf-8", strings.NewReader(envelope))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	buf := new(strings.Builder)
	_, err = io.Copy(buf, resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, buf.String()
}

func TestCheckVatConventions(t *testing.T) {
	srv := New()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	status, body := postCheckVat(t, ts, "NL", "100")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<valid>true</valid>")
	assert.Contains(t, body, "JOHN DOE BV")

	status, body = postCheckVat(t, ts, "DE", "200")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<valid>false</valid>")

	status, body = postCheckVat(t, ts, "IT", "301")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body, "MS_UNAVAILABLE")

	calls := srv.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, Call{CountryCode: "NL", VATNumber: "100"}, calls[0])
	assert.Equal(t, Call{CountryCode: "IT", VATNumber: "301"}, calls[2])
}

func TestCheckStatusAvailability(t *testing.T) {
	srv := New()
	srv.SetAvailability("ES", false)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Post(ts.URL+"/checkStatusService", "text/xml; charset=utf-8",
		strings.NewReader(`<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"><soapenv:Body/></soapenv:Envelope>`))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	buf := new(strings.Builder)
	_, err = io.Copy(buf, resp.Body)
	require.NoError(t, err)
	body := buf.String()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<available>true</available>")
	assert.Contains(t, body, "<countryCode>ES</countryCode><availability>UNAVAILABLE</availability>")
	assert.Contains(t, body, "<countryCode>FR</countryCode><availability>AVAILABLE</availability>")
}

func TestMalformedRequest(t *testing.T) {
	srv := New()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	resp, err := http.Post(ts.URL+"/checkVatService", "text/xml; charset=utf-8", strings.NewReader("not xml"))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
