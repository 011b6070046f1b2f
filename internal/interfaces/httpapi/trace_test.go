package httpapi

import "testing"

func TestShouldCreateHTTPAPISpan(t *testing.T) {
	if !shouldCreateHTTPAPISpan("httpapi.Handler.GetLeague") {
		t.Fatal("expected handler spans to be created")
	}
	if shouldCreateHTTPAPISpan("httpapi.writeJSON") {
		t.Fatal("expected helper spans to be suppressed")
	}
}
