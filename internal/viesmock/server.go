// Package viesmock implements an in-process stand-in for the VIES SOAP
// endpoints. It follows the official test service's conventions: the VAT
// number alone selects the canned response.
//
//	100 -> valid
//	200 -> invalid
//	201 -> INVALID_INPUT fault
//	300 -> SERVICE_UNAVAILABLE fault
//	301 -> MS_UNAVAILABLE fault
//	302 -> TIMEOUT fault
//	601 -> MS_MAX_CONCURRENT_REQ fault
//
// Anything else is answered as invalid.
package viesmock

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/In-dig0/vat-controller/internal/domain"
)

// Call records one checkVat request received by the server.
type Call struct {
	CountryCode string
	VATNumber   string
}

// Server serves the mock checkVat and checkStatus endpoints.
type Server struct {
	engine *gin.Engine

	mu          sync.Mutex
	calls       []Call
	unavailable map[string]bool
}

// New constructs a mock server with every member state available.
func New() *Server {
	s := &Server{unavailable: make(map[string]bool)}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.POST("/checkVatService", s.handleCheckVat)
	r.POST("/checkStatusService", s.handleCheckStatus)
	s.engine = r
	return s
}

// Handler returns the HTTP handler, for mounting under httptest or a listener.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server on addr and blocks.
func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

// Calls returns the checkVat requests received so far.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}

// SetAvailability marks a member state as available or not in checkStatus
// responses.
func (s *Server) SetAvailability(countryCode string, available bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unavailable[countryCode] = !available
}

type soapRequest struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		CheckVat *struct {
			CountryCode string `xml:"countryCode"`
			VATNumber   string `xml:"vatNumber"`
		} `xml:"checkVat"`
	} `xml:"Body"`
}

func (s *Server) handleCheckVat(c *gin.Context) {
	var req soapRequest
	if err := xml.NewDecoder(c.Request.Body).Decode(&req); err != nil || req.Body.CheckVat == nil {
		c.String(http.StatusBadRequest, "malformed SOAP request")
		return
	}
	cc := req.Body.CheckVat.CountryCode
	vat := req.Body.CheckVat.VATNumber

	s.mu.Lock()
	s.calls = append(s.calls, Call{CountryCode: cc, VATNumber: vat})
	s.mu.Unlock()

	switch vat {
	case "201":
		writeFault(c, "INVALID_INPUT")
	case "300":
		writeFault(c, "SERVICE_UNAVAILABLE")
	case "301":
		writeFault(c, "MS_UNAVAILABLE")
	case "302":
		writeFault(c, "TIMEOUT")
	case "601":
		writeFault(c, "MS_MAX_CONCURRENT_REQ")
	case "100":
		writeCheckVatResponse(c, cc, vat, true, "JOHN DOE BV", "123 MAIN STREET, 1000 TESTCITY")
	default:
		writeCheckVatResponse(c, cc, vat, false, "---", "---")
	}
}

func (s *Server) handleCheckStatus(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	states := ""
	for _, code := range domain.EUCountryCodes() {
		availability := "AVAILABLE"
		if s.unavailable[code] {
			availability = "UNAVAILABLE"
		}
		states += fmt.Sprintf("<countryStatus><countryCode>%s</countryCode><availability>%s</availability></countryStatus>", code, availability)
	}

	body := fmt.Sprintf(`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
<soap:Body><checkStatusResponse xmlns="urn:ec.europa.eu:taxud:vies:services:checkVat:types">
<vow><available>true</available></vow>%s</checkStatusResponse></soap:Body></soap:Envelope>`, states)
	c.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(body))
}

func writeCheckVatResponse(c *gin.Context, countryCode, vatNumber string, valid bool, name, address string) {
	body := fmt.Sprintf(`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
<soap:Body><checkVatResponse xmlns="urn:ec.europa.eu:taxud:vies:services:checkVat:types">
<countryCode>%s</countryCode><vatNumber>%s</vatNumber><requestDate>2025-08-29+02:00</requestDate>
<valid>%t</valid><name>%s</name><address>%s</address></checkVatResponse></soap:Body></soap:Envelope>`,
		countryCode, vatNumber, valid, name, address)
	c.Data(http.StatusOK, "text/xml; charset=utf-8", []byte(body))
}

func writeFault(c *gin.Context, code string) {
	body := fmt.Sprintf(`<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
<soap:Body><soap:Fault><faultcode>soap:Server</faultcode><faultstring>%s</faultstring></soap:Fault></soap:Body></soap:Envelope>`, code)
	c.Data(http.StatusInternalServerError, "text/xml; charset=utf-8", []byte(body))
}
