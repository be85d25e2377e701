package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wejdenmesaoud/cashback/api/controllers"
	"github.com/wejdenmesaoud/cashback/api/middleware"
	"github.com/wejdenmesaoud/cashback/internal/auth"
	"github.com/wejdenmesaoud/cashback/internal/bonuses"
	"github.com/wejdenmesaoud/cashback/internal/cases"
	"github.com/wejdenmesaoud/cashback/internal/engineers"
	"github.com/wejdenmesaoud/cashback/internal/excelimport"
	"github.com/wejdenmesaoud/cashback/internal/reports"
	"github.com/wejdenmesaoud/cashback/internal/settings"
	"github.com/wejdenmesaoud/cashback/internal/teams"
	"github.com/wejdenmesaoud/cashback/internal/users"
	"github.com/wejdenmesaoud/cashback/pkg/activesessions"
	"github.com/wejdenmesaoud/cashback/pkg/config"
	"github.com/wejdenmesaoud/cashback/pkg/db"
	"github.com/wejdenmesaoud/cashback/pkg/enums"
	"github.com/wejdenmesaoud/cashback/pkg/logger"
	"github.com/wejdenmesaoud/cashback/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Registry    *prometheus.Registry
	Sessions    *activesessions.Tracker
	StartedAt   time.Time
	AuthService auth.Service
	Users       *users.Repository
	Engineers   *engineers.Repository
	Teams       *teams.Repository
	Cases       *cases.Repository
	CaseStats   *cases.Service
	Reports     *reports.Repository
	ReportGen   *reports.Service
	Settings    *settings.Repository
	Bonuses     *bonuses.Repository
	Importer    *excelimport.Service
}

// NewRouter builds the full HTTP surface. Every /api route below runs behind
// the fail-open authenticator; role gates decide access per group.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	signinPolicy := middleware.NewAuthRateLimitPolicy(
		"signin",
		cfg.AuthRateLimit.SigninWindow,
		cfg.AuthRateLimit.SigninIPLimit,
		cfg.AuthRateLimit.SigninUsernameLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupUsernameLimit,
	)

	anyRole := middleware.RequireAnyRole(logg, enums.RoleUser, enums.RoleModerator, enums.RoleAdmin)
	modOrAdmin := middleware.RequireAnyRole(logg, enums.RoleModerator, enums.RoleAdmin)
	adminOnly := middleware.RequireAnyRole(logg, enums.RoleAdmin)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))

	r.Route("/api/monitoring", func(r chi.Router) {
		r.Get("/health", controllers.MonitoringHealth(deps.StartedAt))
		r.Get("/metrics/summary", controllers.MonitoringMetricsSummary(deps.Registry, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Authenticate(cfg.JWT, deps.Users, deps.Sessions, logg))

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(signinPolicy, deps.Redis, logg)).Post("/signin", controllers.Signin(deps.AuthService, logg))
			r.With(middleware.AuthRateLimit(signupPolicy, deps.Redis, logg)).Post("/signup", controllers.Signup(deps.AuthService, logg))
			r.Post("/signout", controllers.Signout(deps.AuthService, logg))
		})

		r.Route("/cases", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(anyRole)
				r.Get("/", controllers.CaseList(deps.Cases, logg))
				r.Get("/{id}", controllers.CaseGet(deps.Cases, logg))
				r.Get("/engineer/{engineerId}", controllers.CasesByEngineer(deps.Cases, deps.Engineers, logg))
				r.Get("/report/{reportId}", controllers.CasesByReport(deps.Cases, deps.Reports, logg))
				r.Get("/date-range", controllers.CasesByDateRange(deps.Cases, logg))
				r.Get("/team/{teamId}", controllers.CasesByTeam(deps.Cases, logg))
				r.Get("/statistics/engineer/{engineerId}", controllers.CaseStatistics(deps.CaseStats, logg))
			})
			r.Group(func(r chi.Router) {
				r.Use(modOrAdmin)
				r.Post("/", controllers.CaseCreate(deps.Cases, logg))
				r.Put("/{id}", controllers.CaseUpdate(deps.Cases, logg))
				r.Put("/{id}/engineer/{engineerId}", controllers.CaseAssignEngineer(deps.Cases, deps.Engineers, logg))
				r.Put("/{id}/report/{reportId}", controllers.CaseAssignReport(deps.Cases, deps.Reports, logg))
			})
			r.With(adminOnly).Delete("/{id}", controllers.CaseDelete(deps.Cases, logg))
		})

		r.Route("/engineers", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(anyRole)
				r.Get("/", controllers.EngineerList(deps.Engineers, logg))
				r.Get("/{id}", controllers.EngineerGet(deps.Engineers, logg))
				r.Get("/team/{teamId}", controllers.EngineersByTeam(deps.Engineers, deps.Teams, logg))
				r.Get("/manager/{username}", controllers.EngineersByManager(deps.Engineers, logg))
			})
			r.Group(func(r chi.Router) {
				r.Use(modOrAdmin)
				r.Post("/", controllers.EngineerCreate(deps.Engineers, logg))
				r.Put("/{id}", controllers.EngineerUpdate(deps.Engineers, logg))
				r.Put("/{id}/team/{teamId}", controllers.EngineerAssignTeam(deps.Engineers, deps.Teams, logg))
			})
			r.With(adminOnly).Delete("/{id}", controllers.EngineerDelete(deps.Engineers, logg))
		})

		r.Route("/teams", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(anyRole)
				r.Get("/", controllers.TeamList(deps.Teams, logg))
				r.Get("/{id}", controllers.TeamGet(deps.Teams, logg))
				r.Get("/name/{name}", controllers.TeamByName(deps.Teams, logg))
				r.Get("/user/{userId}", controllers.TeamsByUser(deps.Teams, deps.Users, logg))
			})
			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Post("/", controllers.TeamCreate(deps.Teams, logg))
				r.Post("/user/{userId}", controllers.TeamCreateWithManager(deps.Teams, deps.Users, logg))
				r.Put("/{id}", controllers.TeamUpdate(deps.Teams, logg))
				r.Put("/{id}/user/{userId}", controllers.TeamAssignManager(deps.Teams, deps.Users, logg))
				r.Delete("/{id}", controllers.TeamDelete(deps.Teams, logg))
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(anyRole)
				r.Get("/", controllers.ReportList(deps.Reports, logg))
				r.Get("/{id}", controllers.ReportGet(deps.Reports, logg))
				r.Get("/engineer/{engineerName}", controllers.ReportsByEngineerName(deps.Reports, logg))
				r.Get("/total-greater-than/{total}", controllers.ReportsByTotalGreaterThan(deps.Reports, logg))
			})
			r.Group(func(r chi.Router) {
				r.Use(modOrAdmin)
				r.Post("/", controllers.ReportCreate(deps.Reports, logg))
				r.Post("/generate/engineer/{engineerId}", controllers.ReportGenerate(deps.ReportGen, logg))
				r.Put("/{id}", controllers.ReportUpdate(deps.Reports, logg))
			})
			r.With(adminOnly).Delete("/{id}", controllers.ReportDelete(deps.Reports, logg))
		})

		r.Route("/settings", func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", controllers.SettingList(deps.Settings, logg))
			r.Get("/global", controllers.SettingGlobal(deps.Settings, logg))
			r.Get("/{id}", controllers.SettingGet(deps.Settings, logg))
			r.Get("/user/{userId}", controllers.SettingsByUser(deps.Settings, deps.Users, logg))
			r.Post("/", controllers.SettingCreate(deps.Settings, logg))
			r.Post("/user/{userId}", controllers.SettingCreateForUser(deps.Settings, deps.Users, logg))
			r.Put("/{id}", controllers.SettingUpdate(deps.Settings, logg))
			r.Delete("/{id}", controllers.SettingDelete(deps.Settings, logg))
		})

		r.Route("/bonuses", func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/", controllers.BonusList(deps.Bonuses, logg))
			r.Get("/{id}", controllers.BonusGet(deps.Bonuses, logg))
			r.Get("/engineer/{engineerId}", controllers.BonusesByEngineer(deps.Bonuses, deps.Engineers, logg))
			r.Post("/", controllers.BonusCreate(deps.Bonuses, deps.Engineers, logg))
			r.Delete("/{id}", controllers.BonusDelete(deps.Bonuses, logg))
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(adminOnly)
			r.Get("/managers", controllers.ManagerList(deps.Users, logg))
			r.Get("/managers/{id}", controllers.ManagerGet(deps.Users, logg))
			r.Put("/{id}", controllers.UserUpdate(deps.Users, cfg.Password, logg))
			r.Put("/{id}/role/manager", controllers.ManagerGrantByID(deps.Users, logg))
			r.Put("/username/{username}/role/manager", controllers.ManagerGrantByUsername(deps.Users, logg))
			r.Delete("/{id}/role/manager", controllers.ManagerRevokeByID(deps.Users, logg))
			r.Delete("/username/{username}/role/manager", controllers.ManagerRevokeByUsername(deps.Users, logg))
		})

		r.Route("/excel", func(r chi.Router) {
			r.With(modOrAdmin).Post("/import-cases", controllers.ExcelImportCases(deps.Importer, cfg.Excel.MaxUploadMB, logg))
			r.With(anyRole).Get("/template", controllers.ExcelTemplate(cfg.Excel.TemplatePath, logg))
		})
	})

	return r
}
