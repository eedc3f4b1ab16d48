package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/nidolabs/nido/internal/db"
	"github.com/nidolabs/nido/internal/mail"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "nido-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	mailer, err := mail.NewMailer(context.Background(), "eu-west-1", "", "Nido", "http://localhost:8080")
	if err != nil {
		t.Fatalf("new mailer: %v", err)
	}

	handler := NewHandler(database, "test-secret", time.UTC, mailer)
	app := fiber.New()
	RegisterRoutes(app, handler)
	return app
}

func profilePath(profileID uint, suffix string) string {
	return "/api/profiles/" + strconv.FormatUint(uint64(profileID), 10) + suffix
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, body any, authCookie *http.Cookie) (*http.Response, map[string]any) {
	t.Helper()

	var requestBody *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		requestBody = bytes.NewBuffer(encoded)
	}

	request := httptest.NewRequest(method, path, requestBody)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	if authCookie != nil {
		request.AddCookie(authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}

	payload := map[string]any{}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		t.Fatalf("%s %s: decode response: %v", method, path, err)
	}
	return response, payload
}

func authCookieFrom(t *testing.T, response *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("no auth cookie in response")
	return nil
}

func registerTestUser(t *testing.T, app *fiber.App, email string, displayName string) *http.Cookie {
	t.Helper()
	response, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]any{
		"email":        email,
		"password":     "Str0ngPass",
		"display_name": displayName,
	}, nil)
	if response.StatusCode != fiber.StatusCreated {
		t.Fatalf("register %s: status %d", email, response.StatusCode)
	}
	return authCookieFrom(t, response)
}

func TestOwnerProfileLifecycleFlow(t *testing.T) {
	app := newTestApp(t)
	cookie := registerTestUser(t, app, "parent@example.com", "Sam")

	response, payload := doJSON(t, app, http.MethodGet, "/api/profiles", nil, cookie)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("empty roster: status %d", response.StatusCode)
	}
	if payload["state"] != "no_profile" {
		t.Fatalf("expected no_profile state, got %v", payload["state"])
	}

	response, payload = doJSON(t, app, http.MethodPost, "/api/profiles", map[string]any{"name": "Luna", "birth_date": "2026-01-15"}, cookie)
	if response.StatusCode != fiber.StatusCreated {
		t.Fatalf("create profile: status %d (%v)", response.StatusCode, payload)
	}

	response, payload = doJSON(t, app, http.MethodGet, "/api/profiles", nil, cookie)
	if response.StatusCode != fiber.StatusOK || payload["state"] != "idle" {
		t.Fatalf("roster after create: status %d state %v", response.StatusCode, payload["state"])
	}
	active, ok := payload["active"].(map[string]any)
	if !ok || active["name"] != "Luna" {
		t.Fatalf("expected Luna active, got %v", payload["active"])
	}

	// The basic plan allows exactly one owned profile.
	response, _ = doJSON(t, app, http.MethodPost, "/api/profiles", map[string]any{"name": "Mars"}, cookie)
	if response.StatusCode != fiber.StatusPaymentRequired {
		t.Fatalf("second profile on basic: status %d, want %d", response.StatusCode, fiber.StatusPaymentRequired)
	}

	response, _ = doJSON(t, app, http.MethodPost, "/api/subscription", map[string]any{"tier": "premium"}, cookie)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("upgrade: status %d", response.StatusCode)
	}
	response, payload = doJSON(t, app, http.MethodPost, "/api/profiles", map[string]any{"name": "Mars"}, cookie)
	if response.StatusCode != fiber.StatusCreated {
		t.Fatalf("second profile on premium: status %d (%v)", response.StatusCode, payload)
	}
	marsID := uint(payload["profile"].(map[string]any)["id"].(float64))

	response, payload = doJSON(t, app, http.MethodPost, profilePath(marsID, "/switch"), nil, cookie)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("switch: status %d (%v)", response.StatusCode, payload)
	}
	if payload["no_op"] != false {
		t.Fatalf("expected a real switch, got %v", payload)
	}

	// Switching again to the same profile is a no-op.
	_, payload = doJSON(t, app, http.MethodPost, profilePath(marsID, "/switch"), nil, cookie)
	if payload["no_op"] != true {
		t.Fatalf("expected an idempotent no-op switch, got %v", payload)
	}
}

func TestInvitationAndPermissionFlow(t *testing.T) {
	app := newTestApp(t)
	ownerCookie := registerTestUser(t, app, "parent@example.com", "Sam")
	viewerCookie := registerTestUser(t, app, "aunt@example.com", "May")

	response, payload := doJSON(t, app, http.MethodPost, "/api/profiles", map[string]any{"name": "Luna"}, ownerCookie)
	if response.StatusCode != fiber.StatusCreated {
		t.Fatalf("create profile: status %d", response.StatusCode)
	}
	profileID := uint(payload["profile"].(map[string]any)["id"].(float64))

	response, payload = doJSON(t, app, http.MethodPost, profilePath(profileID, "/invitations"), map[string]any{
		"email": "Aunt@Example.com",
		"role":  "viewer",
	}, ownerCookie)
	if response.StatusCode != fiber.StatusCreated {
		t.Fatalf("invite: status %d (%v)", response.StatusCode, payload)
	}
	token := payload["invitation"].(map[string]any)["token"].(string)

	// The invitee email matches under normalization.
	response, payload = doJSON(t, app, http.MethodGet, "/api/invitations/"+token, nil, viewerCookie)
	if response.StatusCode != fiber.StatusOK || payload["matches_email"] != true {
		t.Fatalf("lookup: status %d matches %v", response.StatusCode, payload["matches_email"])
	}

	response, _ = doJSON(t, app, http.MethodPost, "/api/invitations/"+token+"/accept", nil, viewerCookie)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("accept: status %d", response.StatusCode)
	}

	// The freshly shared profile is now the viewer's active profile.
	response, payload = doJSON(t, app, http.MethodGet, "/api/profiles", nil, viewerCookie)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("viewer roster: status %d", response.StatusCode)
	}
	active, ok := payload["active"].(map[string]any)
	if !ok || active["name"] != "Luna" || active["is_shared"] != true {
		t.Fatalf("expected shared Luna active, got %v", payload["active"])
	}

	// Viewers can read activities but not record them.
	response, _ = doJSON(t, app, http.MethodGet, profilePath(profileID, "/activities"), nil, viewerCookie)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("viewer list activities: status %d", response.StatusCode)
	}
	response, payload = doJSON(t, app, http.MethodPost, profilePath(profileID, "/activities"), map[string]any{
		"kind":       "sleep",
		"started_at": time.Now().UTC().Format(time.RFC3339),
	}, viewerCookie)
	if response.StatusCode != fiber.StatusForbidden {
		t.Fatalf("viewer record activity: status %d, want %d", response.StatusCode, fiber.StatusForbidden)
	}
	if payload["error"] != "you do not have permission to edit this profile" {
		t.Fatalf("denial message must name the capability, got %v", payload["error"])
	}

	// Viewers cannot invite either, with an invite-specific denial.
	response, payload = doJSON(t, app, http.MethodPost, profilePath(profileID, "/invitations"), map[string]any{
		"email": "other@example.com",
		"role":  "viewer",
	}, viewerCookie)
	if response.StatusCode != fiber.StatusForbidden {
		t.Fatalf("viewer invite: status %d", response.StatusCode)
	}
	if payload["error"] != "you do not have permission to invite caregivers to this profile" {
		t.Fatalf("unexpected invite denial %v", payload["error"])
	}
}

func TestProfileDeletionCascadeFlow(t *testing.T) {
	app := newTestApp(t)
	cookie := registerTestUser(t, app, "parent@example.com", "Sam")

	response, payload := doJSON(t, app, http.MethodPost, "/api/profiles", map[string]any{"name": "Luna"}, cookie)
	if response.StatusCode != fiber.StatusCreated {
		t.Fatalf("create profile: status %d", response.StatusCode)
	}
	profileID := uint(payload["profile"].(map[string]any)["id"].(float64))

	response, _ = doJSON(t, app, http.MethodPost, profilePath(profileID, "/activities"), map[string]any{
		"kind":       "feeding",
		"started_at": time.Now().UTC().Format(time.RFC3339),
		"details":    map[string]any{"feeding_method": "bottle", "amount_ml": 120},
	}, cookie)
	if response.StatusCode != fiber.StatusCreated {
		t.Fatalf("record activity: status %d", response.StatusCode)
	}
	response, _ = doJSON(t, app, http.MethodPost, profilePath(profileID, "/messages"), map[string]any{"body": "first feed done"}, cookie)
	if response.StatusCode != fiber.StatusCreated {
		t.Fatalf("post message: status %d", response.StatusCode)
	}

	response, _ = doJSON(t, app, http.MethodDelete, profilePath(profileID, ""), nil, cookie)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("delete profile: status %d", response.StatusCode)
	}

	response, payload = doJSON(t, app, http.MethodGet, "/api/profiles", nil, cookie)
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("roster after delete: status %d", response.StatusCode)
	}
	if payload["state"] != "no_profile" {
		t.Fatalf("expected no_profile after deleting the only profile, got %v", payload["state"])
	}
	if profiles, ok := payload["profiles"].([]any); !ok || len(profiles) != 0 {
		t.Fatalf("expected empty roster, got %v", payload["profiles"])
	}
}

func TestAuthRequiredOnProtectedRoutes(t *testing.T) {
	app := newTestApp(t)

	response, _ := doJSON(t, app, http.MethodGet, "/api/profiles", nil, nil)
	if response.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("unauthenticated roster: status %d, want %d", response.StatusCode, fiber.StatusUnauthorized)
	}

	request := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	healthResponse, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	if healthResponse.StatusCode != fiber.StatusOK {
		t.Fatalf("healthz: status %d", healthResponse.StatusCode)
	}
}
