package auth

import (
	"context"
	"log"
	"net/http"
)

const actorKey ctxKey = "auth_actor"

// OrganizationLookup resolves the organization owned by an admin account.
// It returns "" when the admin owns none.
type OrganizationLookup interface {
	OrganizationIDByOwner(ctx context.Context, adminID string) (string, error)
}

// Actor is the explicit capability model for admin operations: an admin who
// owns an organization manages that organization's donations plus the pool;
// an admin who owns none is a super admin and manages everything. It is
// resolved once at the boundary and passed by value into the core.
type Actor struct {
	UserID         string
	OrganizationID string // empty for a super admin
}

// IsSuperAdmin reports whether the actor has unrestricted management rights.
func (a Actor) IsSuperAdmin() bool {
	return a.OrganizationID == ""
}

// CanManage implements the authorization rule for acting on a donation.
// orgID is the donation's owning organization, nil while it is in the pool.
func (a Actor) CanManage(orgID *string) bool {
	if a.IsSuperAdmin() {
		return true
	}
	if orgID == nil {
		return true
	}
	return *orgID == a.OrganizationID
}

// ResolveActor derives the Actor for an authenticated admin by looking up
// organization ownership. The result is valid for the life of the request.
func ResolveActor(ctx context.Context, pr *Principal, orgs OrganizationLookup) (Actor, error) {
	orgID, err := orgs.OrganizationIDByOwner(ctx, pr.UserID)
	if err != nil {
		return Actor{}, err
	}
	return Actor{UserID: pr.UserID, OrganizationID: orgID}, nil
}

// ActorMiddleware resolves the Actor for the authenticated principal and
// injects it into the request context. Must run after Middleware.
func ActorMiddleware(orgs OrganizationLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			pr, ok := FromContext(ctx)
			if !ok {
				http.Error(w, "unauthenticated", http.StatusUnauthorized)
				return
			}
			actor, err := ResolveActor(ctx, pr, orgs)
			if err != nil {
				log.Printf("[ERROR] Actor resolution failed for user %s: %v", pr.UserID, err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			ctx = context.WithValue(ctx, actorKey, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext extracts the resolved Actor from context.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	a, ok := ctx.Value(actorKey).(Actor)
	return a, ok
}
