package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// stubOrgLookup is a stub OrganizationLookup keyed by admin ID
type stubOrgLookup struct {
	byOwner map[string]string
	err     error
}

func (s *stubOrgLookup) OrganizationIDByOwner(ctx context.Context, adminID string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.byOwner[adminID], nil
}

func strPtr(s string) *string { return &s }

// TestActor_CanManage tests the management rule for both admin shapes
func TestActor_CanManage(t *testing.T) {
	testCases := []struct {
		name     string
		actor    Actor
		orgID    *string
		expected bool
	}{
		{
			name:     "Super admin manages assigned donation",
			actor:    Actor{UserID: "super-1"},
			orgID:    strPtr("org-1"),
			expected: true,
		},
		{
			name:     "Super admin manages pool donation",
			actor:    Actor{UserID: "super-1"},
			orgID:    nil,
			expected: true,
		},
		{
			name:     "Org admin manages own organization's donation",
			actor:    Actor{UserID: "admin-1", OrganizationID: "org-1"},
			orgID:    strPtr("org-1"),
			expected: true,
		},
		{
			name:     "Org admin cannot manage another organization's donation",
			actor:    Actor{UserID: "admin-1", OrganizationID: "org-1"},
			orgID:    strPtr("org-2"),
			expected: false,
		},
		{
			name:     "Org admin manages pool donation",
			actor:    Actor{UserID: "admin-1", OrganizationID: "org-1"},
			orgID:    nil,
			expected: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.actor.CanManage(tc.orgID); got != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, got)
			}
		})
	}
}

// TestActor_IsSuperAdmin tests super admin detection
func TestActor_IsSuperAdmin(t *testing.T) {
	if !(Actor{UserID: "u"}).IsSuperAdmin() {
		t.Error("Expected actor without organization to be super admin")
	}
	if (Actor{UserID: "u", OrganizationID: "org-1"}).IsSuperAdmin() {
		t.Error("Expected actor with organization NOT to be super admin")
	}
}

// TestResolveActor tests actor resolution through the ownership lookup
func TestResolveActor(t *testing.T) {
	lookup := &stubOrgLookup{byOwner: map[string]string{"admin-1": "org-1"}}

	t.Run("Admin owning an organization", func(t *testing.T) {
		actor, err := ResolveActor(context.Background(), &Principal{UserID: "admin-1"}, lookup)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if actor.OrganizationID != "org-1" {
			t.Errorf("Expected OrganizationID 'org-1', got '%s'", actor.OrganizationID)
		}
		if actor.IsSuperAdmin() {
			t.Error("Expected org admin, got super admin")
		}
	})

	t.Run("Admin owning no organization is super admin", func(t *testing.T) {
		actor, err := ResolveActor(context.Background(), &Principal{UserID: "super-1"}, lookup)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if !actor.IsSuperAdmin() {
			t.Error("Expected super admin")
		}
	})

	t.Run("Lookup failure propagates", func(t *testing.T) {
		broken := &stubOrgLookup{err: errors.New("db down")}
		_, err := ResolveActor(context.Background(), &Principal{UserID: "admin-1"}, broken)
		if err == nil {
			t.Error("Expected error, got nil")
		}
	})
}

// TestActorMiddleware tests actor injection into the request context
func TestActorMiddleware(t *testing.T) {
	lookup := &stubOrgLookup{byOwner: map[string]string{"admin-1": "org-1"}}

	t.Run("Injects resolved actor", func(t *testing.T) {
		middleware := ActorMiddleware(lookup)

		called := false
		testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				t.Error("Expected actor in context, got none")
				return
			}
			if actor.UserID != "admin-1" {
				t.Errorf("Expected UserID 'admin-1', got '%s'", actor.UserID)
			}
			if actor.OrganizationID != "org-1" {
				t.Errorf("Expected OrganizationID 'org-1', got '%s'", actor.OrganizationID)
			}
			w.WriteHeader(http.StatusOK)
		})

		handler := middleware(testHandler)

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req = req.WithContext(ContextWithPrincipal(req.Context(), &Principal{UserID: "admin-1"}))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if !called {
			t.Error("Expected handler to be called")
		}
		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
	})

	t.Run("Unauthenticated request rejected", func(t *testing.T) {
		middleware := ActorMiddleware(lookup)

		called := false
		handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if called {
			t.Error("Expected handler NOT to be called")
		}
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("Expected status 401, got %d", rec.Code)
		}
	})

	t.Run("Lookup failure returns 500", func(t *testing.T) {
		middleware := ActorMiddleware(&stubOrgLookup{err: errors.New("db down")})

		called := false
		handler := middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req = req.WithContext(ContextWithPrincipal(req.Context(), &Principal{UserID: "admin-1"}))
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if called {
			t.Error("Expected handler NOT to be called")
		}
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("Expected status 500, got %d", rec.Code)
		}
	})
}
