package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/prime-cardio/cvdrisk/internal/api/http"
	"github.com/prime-cardio/cvdrisk/internal/assessment"
	"github.com/prime-cardio/cvdrisk/internal/audit"
	auth "github.com/prime-cardio/cvdrisk/internal/auth/middleware"
	"github.com/prime-cardio/cvdrisk/internal/config"
	"github.com/prime-cardio/cvdrisk/internal/db"
	"github.com/prime-cardio/cvdrisk/internal/rbac"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func main() {
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := assessment.NewSQLStore(dbh, cfg.DBDriver)
	events := audit.NewEventRepo(dbh)
	checker := rbac.NewChecker(nil)

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if cfg.EnableLocalAuth {
		r.Post("/auth/login", auth.LoginHandler(authSvc, dbh, auth.AdminFallback{
			User:     cfg.AdminUser,
			PassHash: cfg.AdminPassHash,
		}))
	}

	// Guidance catalog is static and public.
	r.Get("/guidance", api.GuidanceCatalogHandler())
	r.Get("/guidance/{tier}", api.GuidanceHandler())

	// Protected API (JWT → subject/role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		// Stateless risk computation
		pr.With(rbac.Require("risk:compute")).
			Post("/risk", api.ComputeRiskHandler())

		// Persisted assessments
		pr.With(rbac.Require("assessment:create")).
			Post("/assessments", api.CreateAssessmentHandler(store, events))
		pr.With(rbac.RequireAny("assessment:view-own", "assessment:view-all")).
			Get("/assessments/{assessmentID}", api.GetAssessmentHandler(store, checker))
		pr.With(rbac.RequireAny("assessment:view-own", "assessment:view-all")).
			Get("/assessments", api.ListAssessmentsHandler(store, checker))

		// Users (admin)
		pr.With(rbac.Require("users:bulk_upsert")).
			Post("/users/bulk", api.BulkUpsertUsersHandler(dbh))
		pr.With(rbac.Require("users:list")).
			Get("/users", api.ListUsersHandler(dbh))
		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", api.ChangePasswordHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
