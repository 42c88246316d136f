package net

import (
	"context"
	"net/http"
	"testing"

	perr "taxkaki/internal/platform/errors"
)

func TestContextValues(t *testing.T) {
	ctx := WithSubject(WithRequest(context.Background(), "req-9"), "AB1234")
	if RequestID(ctx) != "req-9" || Subject(ctx) != "AB1234" {
		t.Fatalf("context values lost")
	}
	bare := context.Background()
	if RequestID(WithRequest(bare, "")) != "" || Subject(WithSubject(bare, "")) != "" {
		t.Fatalf("empty values should not be stored")
	}
}

func TestErrorEnvelope(t *testing.T) {
	status, w := Error(perr.Forbiddenf("pan does not match session"), "req-1")
	if status != http.StatusForbidden || w.StatusCode != status || w.Kind != "forbidden" || w.RequestID != "req-1" {
		t.Fatalf("unexpected envelope: %d %+v", status, w)
	}
	if w.Error != "pan does not match session" {
		t.Fatalf("message = %q", w.Error)
	}
}
