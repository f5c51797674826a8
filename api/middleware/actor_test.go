package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fleetlinehq/fleetline-backend/pkg/enums"
	pkgerrors "github.com/fleetlinehq/fleetline-backend/pkg/errors"
	"github.com/fleetlinehq/fleetline-backend/pkg/types"
)

func TestActorRejectsMissingHeaders(t *testing.T) {
	handler := Actor(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run without an actor")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 but got %d", w.Code)
	}
	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeUnauthorized) {
		t.Fatalf("unexpected code %s", body.Error.Code)
	}
}

func TestActorRejectsBadID(t *testing.T) {
	handler := Actor(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run with a bad actor id")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.Header.Set("X-Actor-Id", "not-a-number")
	req.Header.Set("X-Actor-Role", "BDM")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 but got %d", w.Code)
	}
}

func TestActorRejectsUnknownRole(t *testing.T) {
	handler := Actor(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run with an unknown role")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.Header.Set("X-Actor-Id", "42")
	req.Header.Set("X-Actor-Role", "INTERN")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 but got %d", w.Code)
	}
}

func TestActorInjectsIdentityIntoContext(t *testing.T) {
	var gotID int64
	var gotRole enums.UserRole
	handler := Actor(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = ActorIDFromContext(r.Context())
		gotRole = ActorRoleFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.Header.Set("X-Actor-Id", "42")
	req.Header.Set("X-Actor-Role", "MANAGEMENT")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204 but got %d", w.Code)
	}
	if gotID != 42 {
		t.Fatalf("expected actor id 42 but got %d", gotID)
	}
	if gotRole != enums.UserRoleManagement {
		t.Fatalf("unexpected role %s", gotRole)
	}
}
