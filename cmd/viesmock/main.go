// Command viesmock serves a local stand-in for the VIES SOAP endpoints,
// for development runs without hitting the real service.
//
// Point vatctl at it with:
//
//	vies:
//	  check_vat_endpoint: http://localhost:8091/checkVatService
//	  status_endpoint: http://localhost:8091/checkStatusService
package main

import (
	"flag"
	"log"

	"github.com/In-dig0/vat-controller/internal/viesmock"
)

func main() {
	addr := flag.String("addr", ":8091", "listen address")
	flag.Parse()

	srv := viesmock.New()
	log.Printf("mock VIES service listening on %s", *addr)
	if err := srv.Run(*addr); err != nil {
		log.Fatal(err)
	}
}
