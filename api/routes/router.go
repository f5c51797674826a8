package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fleetlinehq/fleetline-backend/api/controllers"
	"github.com/fleetlinehq/fleetline-backend/api/middleware"
	"github.com/fleetlinehq/fleetline-backend/internal/companies"
	"github.com/fleetlinehq/fleetline-backend/internal/contacts"
	"github.com/fleetlinehq/fleetline-backend/internal/dashboard"
	"github.com/fleetlinehq/fleetline-backend/internal/opportunities"
	"github.com/fleetlinehq/fleetline-backend/internal/users"
	"github.com/fleetlinehq/fleetline-backend/internal/visits"
	"github.com/fleetlinehq/fleetline-backend/pkg/config"
	"github.com/fleetlinehq/fleetline-backend/pkg/logger"
	"github.com/fleetlinehq/fleetline-backend/pkg/metrics"
	pkgredis "github.com/fleetlinehq/fleetline-backend/pkg/redis"
)

// Services bundles the domain services the router exposes.
type Services struct {
	Users         users.Service
	Companies     companies.Service
	Contacts      contacts.Service
	Visits        visits.Service
	Opportunities opportunities.Service
	Dashboard     dashboard.Service
}

// Deps carries the infrastructure the router and its middleware need.
type Deps struct {
	Config           *config.Config
	Logger           *logger.Logger
	DBPinger         controllers.Pinger
	RedisPinger      controllers.Pinger
	IdempotencyStore pkgredis.IdempotencyStore
	HTTPMetrics      *metrics.HTTPMetrics
	MetricsRegistry  *prometheus.Registry
}

func NewRouter(deps Deps, svcs Services) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DBPinger, deps.RedisPinger, logg))
	})

	if deps.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Actor(logg))
		r.Use(middleware.Idempotency(deps.IdempotencyStore, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/users", func(r chi.Router) {
			r.Post("/", controllers.UserCreate(svcs.Users, logg))
			r.Get("/", controllers.UserList(svcs.Users, logg))
			r.Get("/{userID}", controllers.UserGet(svcs.Users, logg))
		})

		r.Route("/companies", func(r chi.Router) {
			r.Post("/", controllers.CompanyCreate(svcs.Companies, logg))
			r.Get("/", controllers.CompanyList(svcs.Companies, logg))
			r.Get("/{companyID}", controllers.CompanyGet(svcs.Companies, logg))
			r.Patch("/{companyID}", controllers.CompanyUpdate(svcs.Companies, logg))
			r.Get("/{companyID}/contacts", controllers.ContactsByCompany(svcs.Contacts, logg))
			r.Get("/{companyID}/visits", controllers.VisitsByCompany(svcs.Visits, logg))
			r.Get("/{companyID}/opportunities", controllers.OpportunitiesByCompany(svcs.Opportunities, logg))
		})

		r.Route("/contacts", func(r chi.Router) {
			r.Post("/", controllers.ContactCreate(svcs.Contacts, logg))
			r.Get("/{contactID}", controllers.ContactGet(svcs.Contacts, logg))
			r.Patch("/{contactID}", controllers.ContactUpdate(svcs.Contacts, logg))
		})

		r.Route("/visits", func(r chi.Router) {
			r.Post("/", controllers.VisitCreate(svcs.Visits, logg))
			r.Get("/", controllers.VisitList(svcs.Visits, logg))
			r.Get("/{visitID}", controllers.VisitGet(svcs.Visits, logg))
			r.Patch("/{visitID}", controllers.VisitUpdate(svcs.Visits, logg))
		})

		r.Route("/opportunities", func(r chi.Router) {
			r.Post("/", controllers.OpportunityCreate(svcs.Opportunities, logg))
			r.Get("/", controllers.OpportunityList(svcs.Opportunities, logg))
			r.Get("/{opportunityID}", controllers.OpportunityGet(svcs.Opportunities, logg))
			r.Patch("/{opportunityID}", controllers.OpportunityUpdate(svcs.Opportunities, logg))
		})

		r.Get("/dashboard", controllers.DashboardSnapshot(svcs.Dashboard, logg))
	})

	return r
}
