package http

import (
	"database/sql"
	"net/http"

	"github.com/GiveHope-Foundation/donation-service/internal/auth"
	"github.com/GiveHope-Foundation/donation-service/internal/donation"
	"github.com/GiveHope-Foundation/donation-service/internal/messaging"
	"github.com/GiveHope-Foundation/donation-service/internal/notify"
	"github.com/GiveHope-Foundation/donation-service/internal/organization"
	"github.com/GiveHope-Foundation/donation-service/internal/telemetry"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// Dependencies collects everything the router needs to wire up handlers.
// Publisher, Notifier and Metrics may be nil; the service layer treats them
// as disabled.
type Dependencies struct {
	DB        *sql.DB
	Verifier  *auth.Verifier
	Perms     auth.Permissions
	Publisher messaging.PublisherInterface
	Notifier  notify.Notifier
	Metrics   *telemetry.Metrics
}

// SetupRouter initializes all routes for the application
func SetupRouter(deps Dependencies) *mux.Router {
	// Initialize organization components
	orgRepo := organization.NewRepository(deps.DB)
	orgService := organization.NewService(orgRepo)
	orgHandler := organization.NewHandler(orgService)

	// Initialize donation components
	donationRepo := donation.NewRepository(deps.DB)
	donationService := donation.NewService(donationRepo, deps.Publisher, deps.Notifier, deps.Metrics)
	donationHandler := donation.NewHandler(donationService)

	authn := auth.MiddlewareWithMetrics(deps.Verifier, deps.Metrics)
	// Admin routes additionally resolve the acting admin's organization
	// ownership once per request.
	actor := auth.ActorMiddleware(orgRepo)

	require := func(perm string) func(http.Handler) http.Handler {
		return auth.RequirePermissionWithMetrics(perm, deps.Perms, deps.Metrics)
	}

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("donation-service"))
	if deps.Metrics != nil {
		r.Use(MetricsMiddleware(deps.Metrics))
	}

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"donation-service"}`))
	}).Methods("GET")

	// Donor routes
	r.Handle("/donations",
		authn(require("donation:submit")(
			http.HandlerFunc(donationHandler.Submit),
		)),
	).Methods("POST")

	r.Handle("/donations",
		authn(require("donation:view_own")(
			http.HandlerFunc(donationHandler.ListMine),
		)),
	).Methods("GET")

	// Admin donation routes. Order matters: the literal pool/pickups/claim
	// paths must register before the {id} routes.
	r.Handle("/admin/donations/pool",
		authn(require("donation:view")(actor(
			http.HandlerFunc(donationHandler.ListPool),
		))),
	).Methods("GET")

	r.Handle("/admin/donations/pickups",
		authn(require("donation:pickup")(actor(
			http.HandlerFunc(donationHandler.ListPickups),
		))),
	).Methods("GET")

	r.Handle("/admin/donations/claim",
		authn(require("donation:claim")(actor(
			http.HandlerFunc(donationHandler.Claim),
		))),
	).Methods("POST")

	r.Handle("/admin/donations/pickup",
		authn(require("donation:pickup")(actor(
			http.HandlerFunc(donationHandler.UpdatePickup),
		))),
	).Methods("PATCH")

	r.Handle("/admin/donations",
		authn(require("donation:view")(actor(
			http.HandlerFunc(donationHandler.ListForOrganization),
		))),
	).Methods("GET")

	r.Handle("/admin/donations/{id}",
		authn(require("donation:view")(actor(
			http.HandlerFunc(donationHandler.Get),
		))),
	).Methods("GET")

	r.Handle("/admin/donations/{id}/status",
		authn(require("donation:decide")(actor(
			http.HandlerFunc(donationHandler.Decide),
		))),
	).Methods("PATCH")

	// Organization routes (SUPER_ADMIN only, except view)
	r.Handle("/organizations",
		authn(require("organization:create")(
			http.HandlerFunc(orgHandler.CreateOrganization),
		)),
	).Methods("POST")

	r.Handle("/organizations",
		authn(require("organization:view")(
			http.HandlerFunc(orgHandler.ListOrganizations),
		)),
	).Methods("GET")

	r.Handle("/organizations/{id}",
		authn(require("organization:view")(
			http.HandlerFunc(orgHandler.GetOrganization),
		)),
	).Methods("GET")

	r.Handle("/organizations/{id}",
		authn(require("organization:update")(
			http.HandlerFunc(orgHandler.UpdateOrganization),
		)),
	).Methods("PUT")

	r.Handle("/organizations/{id}",
		authn(require("organization:delete")(
			http.HandlerFunc(orgHandler.DeleteOrganization),
		)),
	).Methods("DELETE")

	return r
}
