package swaggerkit

import (
	"encoding/json"
	"net/http"

	"taxkaki/internal/core/version"
)

// obj keeps the literal below readable
type obj = map[string]any

func ref(name string) obj { return obj{"$ref": "#/components/schemas/" + name} }

func jsonBody(schema obj) obj {
	return obj{"required": true, "content": obj{"application/json": obj{"schema": schema}}}
}

func reply(desc string, schema obj) obj {
	return obj{"description": desc, "content": obj{"application/json": obj{"schema": schema}}}
}

func str() obj { return obj{"type": "string"} }

// Doc returns the OpenAPI 3.0 document for the v1 API
// the document is assembled in code, there is no generator step
func Doc() map[string]any {
	secured := []any{obj{"bearer": []any{}}}
	spec := obj{
		"openapi": "3.0.3",
		"info": obj{
			"title":   "Tax Kaki API",
			"version": version.Short(),
		},
		"servers": []any{obj{"url": "/api/v1"}},
		"paths": obj{
			"/auth/login": obj{"post": obj{
				"tags":        []any{"Auth"},
				"summary":     "Check a PAN and PIN against the subscriber directory",
				"requestBody": jsonBody(ref("LoginInput")),
				"responses": obj{
					"200": reply("ok", ref("LoginResult")),
					"401": reply("invalid_pin, inactive, expired or pan_not_found", ref("LoginResult")),
					"422": reply("malformed_expiry", ref("LoginResult")),
					"503": reply("directory_unavailable", ref("LoginResult")),
				},
			}},
			"/chat/ask": obj{"post": obj{
				"tags":        []any{"Chat"},
				"summary":     "Answer a question using the subscriber's recent history",
				"security":    secured,
				"requestBody": jsonBody(ref("AskInput")),
				"responses":   obj{"200": reply("ok", ref("Answer"))},
			}},
			"/history": obj{"post": obj{
				"tags":        []any{"History"},
				"summary":     "Append one turn to the chat log",
				"security":    secured,
				"requestBody": jsonBody(ref("AppendInput")),
				"responses":   obj{"201": reply("created", ref("Turn"))},
			}},
			"/history/{pan}": obj{"get": obj{
				"tags":     []any{"History"},
				"summary":  "All turns of a PAN in store order",
				"security": secured,
				"parameters": []any{obj{
					"name": "pan", "in": "path", "required": true, "schema": str(),
				}},
				"responses": obj{"200": reply("ok", obj{"type": "array", "items": ref("Turn")})},
			}},
			"/meta/health":  obj{"get": obj{"tags": []any{"Meta"}, "summary": "Liveness", "responses": obj{"200": obj{"description": "ok"}}}},
			"/meta/ready":   obj{"get": obj{"tags": []any{"Meta"}, "summary": "Readiness with store checks", "responses": obj{"200": obj{"description": "ok"}}}},
			"/meta/version": obj{"get": obj{"tags": []any{"Meta"}, "summary": "Build info", "responses": obj{"200": obj{"description": "ok"}}}},
		},
		"components": obj{
			"securitySchemes": obj{
				"bearer": obj{"type": "http", "scheme": "bearer", "bearerFormat": "JWT"},
			},
			"schemas": obj{
				"LoginInput": obj{
					"type":       "object",
					"required":   []any{"pan", "pin"},
					"properties": obj{"pan": str(), "pin": str()},
				},
				"LoginResult": obj{
					"type": "object",
					"properties": obj{
						"outcome": obj{"type": "string", "enum": []any{
							"ok", "pan_not_found", "invalid_pin", "inactive", "expired", "malformed_expiry", "directory_unavailable",
						}},
						"message": str(),
						"pan":     str(),
						"token":   str(),
					},
				},
				"AskInput": obj{
					"type":       "object",
					"required":   []any{"pan", "question"},
					"properties": obj{"pan": str(), "question": str()},
				},
				"Answer": obj{"type": "object", "properties": obj{"answer": str()}},
				"AppendInput": obj{
					"type":     "object",
					"required": []any{"pan", "role", "message"},
					"properties": obj{
						"pan":     str(),
						"role":    obj{"type": "string", "enum": []any{"user", "assistant"}},
						"message": str(),
					},
				},
				"Turn": obj{
					"type": "object",
					"properties": obj{
						"timestamp": str(), "pan": str(), "role": str(), "message": str(),
					},
				},
			},
		},
	}
	ensureErrorResponseDefinition(spec)
	addDefaultError(spec)
	return spec
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(Doc())
	}
}

// ensureErrorResponseDefinition adds the error envelope model
// kept minimal so it does not drift from the runtime wire
func ensureErrorResponseDefinition(spec obj) {
	schemas := spec["components"].(obj)["schemas"].(obj)
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = obj{
		"type":        "object",
		"description": "Standard error response",
		"properties": obj{
			"status_code": obj{"type": "integer", "format": "int32"},
			"status":      str(),
			"code":        obj{"type": "integer", "format": "int32"},
			"kind":        str(),
			"error":       str(),
			"request_id":  str(),
		},
		"required": []any{"status_code", "status"},
	}
}

// addDefaultError injects 400 and 500 responses into every operation that lacks them
func addDefaultError(spec obj) {
	defaults := obj{
		"400": reply("Bad Request", ref("ErrorResponse")),
		"500": reply("Internal Server Error", ref("ErrorResponse")),
	}
	for _, p := range spec["paths"].(obj) {
		for _, opAny := range p.(obj) {
			op := opAny.(obj)
			responses, ok := op["responses"].(obj)
			if !ok {
				responses = obj{}
				op["responses"] = responses
			}
			for code, resp := range defaults {
				if _, exists := responses[code]; !exists {
					responses[code] = resp
				}
			}
		}
	}
}
