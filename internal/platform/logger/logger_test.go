package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	kit "taxkaki/internal/platform/testkit"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"trace", "trace"},
		{"debug", "debug"},
		{"info", "info"},
		{"warning", "warn"},
		{"error", "error"},
		{"fatal", "fatal"},
		{"panic", "panic"},
		{"", "info"},
		{"  loud  ", "info"},
	}
	for _, c := range cases {
		if got := parseLevel(c.in).String(); got != c.want {
			t.Fatalf("parseLevel(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "3")

	o := FromEnv()
	if o.Level != "debug" || o.Format != "json" || !o.WithCaller || o.SampleEvery != 3 {
		t.Fatalf("unexpected options: %+v", o)
	}
	if o.Service != "taxkaki" {
		t.Fatalf("service default = %q", o.Service)
	}
}

func TestMaskPAN(t *testing.T) {
	cases := map[string]string{
		"AB1234":   "**1234",
		" xy9999 ": "**9999",
		"123":      "***",
		"":         "",
	}
	for in, want := range cases {
		if got := MaskPAN(in); got != want {
			t.Fatalf("MaskPAN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestInitNamedAndContext(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "debug",
		Format:       "json",
		Service:      "taxkaki-test",
		Writer:       &buf,
		StaticFields: map[string]string{"build": "test"},
	})

	Get().Info().Msg("root-msg")
	Named("auth").Info().Msg("named-msg")

	ctx := WithSubscriber(WithRequest(context.Background(), "req-1"), "AB1234")
	C(ctx).Info().Msg("ctx-msg")

	out := buf.String()
	if !strings.Contains(out, "root-msg") {
		// another test in this binary may have initialized the root first
		t.Skip("root logger already initialized elsewhere")
	}
	kit.MustContain(t, out, `"component":"auth"`)
	kit.MustContain(t, out, `"request_id":"req-1"`)
	kit.MustContain(t, out, `"pan":"**1234"`)
	kit.MustContain(t, out, `"build":"test"`)
	if strings.Contains(out, "AB1234") {
		t.Fatalf("raw PAN leaked into logs: %s", out)
	}
}
