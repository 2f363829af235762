package helpers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/openzipkin/zipkin-go"
	zipkinhttp "github.com/openzipkin/zipkin-go/middleware/http"
	"github.com/openzipkin/zipkin-go/reporter"
	httpreporter "github.com/openzipkin/zipkin-go/reporter/http"
	logreporter "github.com/openzipkin/zipkin-go/reporter/log"
)

// NewReporter sends spans to the Zipkin collector at address,
// or writes them to stderr when no address is configured
func NewReporter(address string) reporter.Reporter {
	if address == "" {
		return logreporter.NewReporter(log.New(os.Stderr, "", log.LstdFlags))
	}

	return httpreporter.NewReporter("http://" + address + "/api/v2/spans")
}

// NewTracer allows to create a Zipkin tracer
func NewTracer(rep reporter.Reporter, service string, port string) (*zipkin.Tracer, error) {
	endpoint, err := zipkin.NewEndpoint(service, "localhost:"+port)
	if err != nil {
		return nil, err
	}

	tracer, err := zipkin.NewTracer(rep, zipkin.WithLocalEndpoint(endpoint))
	if err != nil {
		return nil, err
	}

	return tracer, nil
}

// NewClient creates a traced HTTP client for outgoing API calls
func NewClient(tracer *zipkin.Tracer, timeout time.Duration) (*zipkinhttp.Client, error) {
	return zipkinhttp.NewClient(
		tracer,
		zipkinhttp.WithClient(&http.Client{Timeout: timeout}),
		zipkinhttp.ClientTrace(true),
	)
}

// ServerMiddleware traces every incoming request
func ServerMiddleware(tracer *zipkin.Tracer) func(http.Handler) http.Handler {
	return zipkinhttp.NewServerMiddleware(
		tracer, zipkinhttp.TagResponseSize(true),
	)
}
