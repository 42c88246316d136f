package module

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taxkaki/internal/adapters/completion/echo"
	"taxkaki/internal/adapters/rowstore"
	"taxkaki/internal/adapters/rowstore/memory"
	"taxkaki/internal/core/convo"
	"taxkaki/internal/modkit"
	"taxkaki/internal/modkit/httpkit"
	"taxkaki/internal/modkit/module"
	pconfig "taxkaki/internal/platform/config"
	phttp "taxkaki/internal/platform/net/http"
	"taxkaki/internal/platform/testkit"
	chatmod "taxkaki/internal/services/chatlog/module"
	"taxkaki/internal/services/conversation/domain"

	"github.com/go-chi/chi/v5"
)

func build(t *testing.T, mem *memory.Store, auth httpkit.TokenFunc) http.Handler {
	t.Helper()
	deps := modkit.Deps{Chatlog: rowstore.Bind(mem, "log"), Completion: echo.Client{}}
	chat := chatmod.New(deps)

	in := Ports{History: module.MustPortsOf[domain.HistoryReader](chat)}
	if auth != nil {
		in.Auth = httpkit.NewPortFunc(auth)
	}
	m := NewWithOptions(deps, Options{WindowSize: 4}, modkit.WithPorts(in))

	mux := chi.NewRouter()
	m.MountRoutes(phttp.AdaptChi(mux))
	return mux
}

func ask(h http.Handler, body, token string) (int, domain.Answer) {
	req := httptest.NewRequest(http.MethodPost, "/chat/ask", strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	var env struct {
		Data domain.Answer `json:"data"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &env)
	return rec.Code, env.Data
}

func TestAsk(t *testing.T) {
	mem := memory.New()
	h := build(t, mem, nil)

	code, ans := ask(h, `{"pan":"AB1234","question":"Is my bonus taxable?"}`, "")
	if code != http.StatusOK || ans.Answer != "echo: Is my bonus taxable?" {
		t.Fatalf("%d %+v", code, ans)
	}
	if mem.Appends() != 0 {
		t.Fatal("ask must not write history")
	}
	if code, _ = ask(h, `{"pan":"AB1234"}`, ""); code != http.StatusBadRequest {
		t.Fatalf("missing question: %d", code)
	}
}

func TestAsk_Protected(t *testing.T) {
	h := build(t, memory.New(), func(tok string) (string, error) { return strings.ToUpper(tok), nil })

	if code, _ := ask(h, `{"pan":"AB1234","question":"q"}`, ""); code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", code)
	}
	if code, _ := ask(h, `{"pan":"AB1234","question":"q"}`, "xy9999"); code != http.StatusForbidden {
		t.Fatalf("other pan: %d", code)
	}
	if code, _ := ask(h, `{"pan":"AB1234","question":"q"}`, "ab1234"); code != http.StatusOK {
		t.Fatalf("own pan: %d", code)
	}
}

func TestNew_RequiresHistory(t *testing.T) {
	testkit.MustPanic(t, func() { New(modkit.Deps{Completion: echo.Client{}}) })
}

func TestFromConfig(t *testing.T) {
	testkit.Env(t, map[string]string{
		"CORE_CONVERSATION_WINDOW":        "6",
		"CORE_CONVERSATION_SYSTEM_PROMPT": "be brief",
		"CORE_COMPLETION_MODEL":           "gpt-4.1-mini",
	})
	o := FromConfig(pconfig.New())
	if o.WindowSize != 6 || o.SystemPrompt != "be brief" || o.Model != "gpt-4.1-mini" {
		t.Fatalf("%+v", o)
	}
	t.Setenv("CORE_CONVERSATION_WINDOW", "")
	if FromConfig(pconfig.New()).WindowSize != convo.DefaultWindowSize {
		t.Fatal("default window")
	}
}
