package api

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestForgotPasswordThrottlesRepeatedRequests(t *testing.T) {
	app := newTestApp(t)

	body := map[string]any{"email": "parent@example.com"}
	for i := 0; i < resetAttemptLimit; i++ {
		response, payload := doJSON(t, app, http.MethodPost, "/api/auth/forgot-password", body, nil)
		if response.StatusCode != fiber.StatusOK {
			t.Fatalf("request %d: status %d", i+1, response.StatusCode)
		}
		if payload["ok"] != true {
			t.Fatalf("request %d: expected ok response, got %v", i+1, payload)
		}
	}

	response, payload := doJSON(t, app, http.MethodPost, "/api/auth/forgot-password", body, nil)
	if response.StatusCode != fiber.StatusTooManyRequests {
		t.Fatalf("expected 429 after %d requests, got %d", resetAttemptLimit, response.StatusCode)
	}
	if payload["error"] != "too many attempts" {
		t.Fatalf("unexpected throttle payload: %v", payload)
	}
}

func TestForgotPasswordThrottleDoesNotLeakAccountExistence(t *testing.T) {
	app := newTestApp(t)
	registerTestUser(t, app, "parent@example.com", "Sam")

	known, knownPayload := doJSON(t, app, http.MethodPost, "/api/auth/forgot-password", map[string]any{
		"email": "parent@example.com",
	}, nil)
	unknown, unknownPayload := doJSON(t, app, http.MethodPost, "/api/auth/forgot-password", map[string]any{
		"email": "nobody@example.com",
	}, nil)

	if known.StatusCode != fiber.StatusOK || unknown.StatusCode != fiber.StatusOK {
		t.Fatalf("statuses must match for known and unknown emails, got %d and %d", known.StatusCode, unknown.StatusCode)
	}
	if knownPayload["ok"] != true || unknownPayload["ok"] != true {
		t.Fatalf("payloads must match for known and unknown emails, got %v and %v", knownPayload, unknownPayload)
	}
}
