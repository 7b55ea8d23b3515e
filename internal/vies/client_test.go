package vies

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/In-dig0/vat-controller/internal/config"
	"github.com/In-dig0/vat-controller/internal/domain"
	"github.com/In-dig0/vat-controller/internal/viesmock"
)

func newTestClient(t *testing.T) (*Client, *viesmock.Server) {
	t.Helper()
	srv := viesmock.New()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	cfg := &config.VIESConfig{TimeoutSecs: 5}
	client := NewClientWithEndpoints(cfg, ts.URL+"/checkVatService", ts.URL+"/checkStatusService")
	return client, srv
}

func TestCheckVAT_Valid(t *testing.T) {
	client, srv := newTestClient(t)

	res, err := client.CheckVAT(context.Background(), "NL", "100")
	require.NoError(t, err)

	assert.True(t, res.Valid)
	assert.Equal(t, "NL", res.CountryCode)
	assert.Equal(t, "100", res.VATNumber)
	assert.NotEmpty(t, res.Name)
	assert.NotEmpty(t, res.Address)
	assert.NotEmpty(t, res.RequestDate)

	calls := srv.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, viesmock.Call{CountryCode: "NL", VATNumber: "100"}, calls[0])
}

func TestCheckVAT_InvalidIsNotAnError(t *testing.T) {
	client, _ := newTestClient(t)

	res, err := client.CheckVAT(context.Background(), "DE", "200")
	require.NoError(t, err)

	assert.False(t, res.Valid)
	// The service's "---" placeholder is normalized to absent.
	assert.Empty(t, res.Name)
	assert.Empty(t, res.Address)
}

func TestCheckVAT_SOAPFault(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.CheckVAT(context.Background(), "IT", "301")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServiceFault)

	var fault *FaultError
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, "MS_UNAVAILABLE", fault.Code)
}

func TestCheckVAT_FaultCodes(t *testing.T) {
	client, _ := newTestClient(t)

	for vat, code := range map[string]string{
		"300": "SERVICE_UNAVAILABLE",
		"302": "TIMEOUT",
		"601": "MS_MAX_CONCURRENT_REQ",
	} {
		_, err := client.CheckVAT(context.Background(), "FR", vat)
		require.Error(t, err)

		var fault *FaultError
		require.ErrorAs(t, err, &fault, "vat %s", vat)
		assert.Equal(t, code, fault.Code)
	}
}

func TestCheckVAT_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close() // connection refused from here on

	cfg := &config.VIESConfig{TimeoutSecs: 2}
	client := NewClientWithEndpoints(cfg, ts.URL+"/checkVatService", ts.URL+"/checkStatusService")

	_, err := client.CheckVAT(context.Background(), "FR", "00353970262")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
	assert.False(t, errors.Is(err, domain.ErrServiceFault))
}

func TestCheckVAT_NonSOAPResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	t.Cleanup(ts.Close)

	cfg := &config.VIESConfig{TimeoutSecs: 2}
	client := NewClientWithEndpoints(cfg, ts.URL, ts.URL)

	_, err := client.CheckVAT(context.Background(), "FR", "00353970262")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestCheckStatus(t *testing.T) {
	client, srv := newTestClient(t)
	srv.SetAvailability("IT", false)

	status, err := client.CheckStatus(context.Background())
	require.NoError(t, err)

	assert.True(t, status.Available)
	assert.False(t, status.MemberStates["IT"])
	assert.True(t, status.MemberStates["FR"])
	assert.Len(t, status.MemberStates, len(domain.EUCountryCodes()))
}
