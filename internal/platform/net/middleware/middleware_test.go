package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "taxkaki/internal/platform/errors"
	pnet "taxkaki/internal/platform/net"
	mw "taxkaki/internal/platform/net/middleware"
)

type fakePort struct {
	sub string
	err error
}

func (f fakePort) Parse(*http.Request) (string, error) { return f.sub, f.err }

func TestAuth(t *testing.T) {
	t.Parallel()

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.Subject(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	cases := []struct {
		name   string
		port   mw.AuthPort
		status int
		sub    string
	}{
		{"nil port passes", nil, http.StatusNoContent, ""},
		{"subject stored", fakePort{sub: "AB1234"}, http.StatusNoContent, "AB1234"},
		{"rejected", fakePort{err: perr.Unauthorizedf("bad token")}, http.StatusUnauthorized, ""},
		{"foreign error is 500", fakePort{err: errors.New("boom")}, http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		seen = ""
		rec := httptest.NewRecorder()
		mw.Auth(tc.port, nil)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != tc.status {
			t.Fatalf("%s: status=%d want %d", tc.name, rec.Code, tc.status)
		}
		if seen != tc.sub {
			t.Fatalf("%s: subject=%q want %q", tc.name, seen, tc.sub)
		}
	}
}

func TestAuth_EnvelopeShape(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	h := mw.Auth(fakePort{err: perr.Unauthorizedf("expired token")}, nil)(http.NotFoundHandler())
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var body pnet.Wire
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Kind != "unauthorized" || body.Error != "expired token" || body.StatusCode != 401 {
		t.Fatalf("unexpected envelope %+v", body)
	}
}

func TestRecoverJSON(t *testing.T) {
	t.Parallel()

	h := mw.RequestID()(mw.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", rec.Code)
	}
	var body pnet.Wire
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Kind != "panic" || body.RequestID == "" {
		t.Fatalf("unexpected envelope %+v", body)
	}
	if rec.Header().Get("X-Request-ID") != body.RequestID {
		t.Fatalf("request id header mismatch")
	}
}

func TestRecoverJSON_AbortHandlerRepanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() != http.ErrAbortHandler {
			t.Fatalf("expected ErrAbortHandler to propagate")
		}
	}()
	h := mw.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestAccessLog_PassesThrough(t *testing.T) {
	t.Parallel()

	h := mw.AccessLog(mw.AccessLogOptions{Slow: 1})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tea", nil))
	if rec.Code != http.StatusTeapot || rec.Body.String() != "short and stout" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestCORS_Preflight(t *testing.T) {
	t.Parallel()

	h := mw.CORS(mw.CORSOptions{AllowedOrigins: []string{"https://app.example"}})(http.NotFoundHandler())
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/chat/ask", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example" {
		t.Fatalf("allow origin=%q", got)
	}
}
