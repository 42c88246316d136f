package module

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taxkaki/internal/adapters/rowstore"
	"taxkaki/internal/adapters/rowstore/memory"
	"taxkaki/internal/core/convo"
	"taxkaki/internal/modkit"
	"taxkaki/internal/modkit/httpkit"
	"taxkaki/internal/modkit/module"
	phttp "taxkaki/internal/platform/net/http"
	"taxkaki/internal/services/chatlog/domain"

	"github.com/go-chi/chi/v5"
)

func serve(m modkit.Module) http.Handler {
	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	return mux
}

func call(h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRoutes_Open(t *testing.T) {
	mem := memory.New()
	h := serve(New(modkit.Deps{Chatlog: rowstore.Bind(mem, "log")}))

	rec := call(h, http.MethodPost, "/history", `{"pan":"ab1234","role":"user","message":"hello"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("append: %d %s", rec.Code, rec.Body)
	}
	if rec = call(h, http.MethodPost, "/history", `{"pan":"ab1234","role":"bot","message":"x"}`, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad role: %d", rec.Code)
	}

	rec = call(h, http.MethodGet, "/history/AB1234", "", "")
	var env struct {
		Data []convo.Turn `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	if rec.Code != http.StatusOK || len(env.Data) != 1 || env.Data[0].Content != "hello" {
		t.Fatalf("read: %d %s", rec.Code, rec.Body)
	}

	mem.LoadErr = errors.New("down")
	if rec = call(h, http.MethodGet, "/history/AB1234", "", ""); rec.Code != http.StatusBadGateway {
		t.Fatalf("read failure: %d", rec.Code)
	}
}

func TestRoutes_Protected(t *testing.T) {
	port := httpkit.NewPortFunc(func(tok string) (string, error) {
		if tok != "ab-token" {
			return "", errors.New("bad")
		}
		return "AB1234", nil
	})
	h := serve(New(modkit.Deps{Chatlog: rowstore.Bind(memory.New(), "log")}, modkit.WithPorts(Ports{Auth: port})))

	body := `{"pan":"AB1234","role":"user","message":"hello"}`
	if rec := call(h, http.MethodPost, "/history", body, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", rec.Code)
	}
	if rec := call(h, http.MethodPost, "/history", body, "ab-token"); rec.Code != http.StatusCreated {
		t.Fatalf("own pan: %d", rec.Code)
	}
	if rec := call(h, http.MethodGet, "/history/XY9999", "", "ab-token"); rec.Code != http.StatusForbidden {
		t.Fatalf("other pan: %d", rec.Code)
	}
}

func TestPorts(t *testing.T) {
	m := New(modkit.Deps{Chatlog: rowstore.Bind(memory.New(), "log")})
	history := module.MustPortsOf[domain.HistoryPort](m)
	if _, err := history.Append(t.Context(), "AB1234", convo.RoleUser, "q"); err != nil {
		t.Fatal(err)
	}
	if m.Name() != "chatlog" {
		t.Fatalf("name=%q", m.Name())
	}
}
