package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/eco-academy/ecoacademy/internal/activity"
	api "github.com/eco-academy/ecoacademy/internal/api/http"
	auth "github.com/eco-academy/ecoacademy/internal/auth/middleware"
	"github.com/eco-academy/ecoacademy/internal/config"
	"github.com/eco-academy/ecoacademy/internal/db"
	"github.com/eco-academy/ecoacademy/internal/events"
	"github.com/eco-academy/ecoacademy/internal/feed"
	"github.com/eco-academy/ecoacademy/internal/ingest"
	"github.com/eco-academy/ecoacademy/internal/quiz"
	"github.com/eco-academy/ecoacademy/internal/rbac"
	"github.com/eco-academy/ecoacademy/internal/waste"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	wasteStore := waste.NewSQLStore(dbh, cfg.DBDriver)
	wasteSvc := waste.NewService(wasteStore)
	eventStore := events.NewSQLStore(dbh, cfg.DBDriver)
	feedStore := feed.NewSQLStore(dbh, cfg.DBDriver)
	quizStore := quiz.NewSQLStore(dbh, cfg.DBDriver)
	activityLog := activity.NewRepo(dbh)

	authSvc := auth.NewAuthService(cfg.AuthSecret)

	// --- Kafka ingest (optional) ---
	if cfg.EnableKafkaIngest {
		consumer := ingest.NewConsumer(ingest.Config{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
			GroupID: cfg.KafkaGroupID,
		}, wasteStore, slog.Default())
		go func() {
			if err := consumer.Run(context.Background()); err != nil {
				log.Printf("kafka ingest stopped: %v", err)
			}
		}()
	}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, dbh, cfg.AdminUser, cfg.AdminPassHash))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))
		pr.Use(auth.AttachRoleFromDB(dbh, cfg.Mode == config.ModeDev))

		// Waste reporting
		pr.With(rbac.Require("records:submit")).
			Post("/records", api.SubmitRecordHandler(wasteSvc, activityLog))
		pr.With(rbac.Require("records:import")).
			Post("/records/import", api.ImportRecordsHandler(wasteSvc, activityLog))
		pr.With(rbac.Require("records:view")).
			Get("/records", api.ListRecordsHandler(wasteSvc))
		pr.With(rbac.Require("records:delete")).
			Delete("/records/{recordID}", api.DeleteRecordHandler(wasteSvc))

		// Dashboards
		pr.With(rbac.Require("trends:view")).
			Get("/trends", api.TrendsHandler(wasteSvc))
		pr.With(rbac.Require("trends:view")).
			Get("/kpis", api.KPIHandler(wasteSvc, cfg.KPIWindow))
		pr.With(rbac.Require("leaderboard:view")).
			Get("/leaderboard", api.LeaderboardHandler(wasteSvc))

		// Event calendar
		pr.With(rbac.Require("events:create")).
			Post("/events", api.CreateEventHandler(eventStore, activityLog))
		pr.With(rbac.Require("events:view")).
			Get("/events", api.ListEventsHandler(eventStore))
		pr.With(rbac.Require("events:view")).
			Get("/events/{eventID}", api.GetEventHandler(eventStore))
		pr.With(rbac.Require("events:delete")).
			Delete("/events/{eventID}", api.DeleteEventHandler(eventStore))

		// Green Leaders Network
		pr.With(rbac.Require("feed:post")).
			Post("/feed", api.CreatePostHandler(feedStore))
		pr.With(rbac.Require("feed:view")).
			Get("/feed", api.ListFeedHandler(feedStore))

		// Quizzes
		pr.With(rbac.Require("quiz:create")).
			Post("/quizzes", api.UploadQuizHandler(quizStore))
		pr.With(rbac.Require("quiz:view")).
			Get("/quizzes/{quizID}", api.GetQuizHandler(quizStore))
		pr.With(rbac.Require("attempt:create")).
			Post("/attempts", api.CreateQuizAttemptHandler(quizStore))
		pr.With(rbac.Require("attempt:save")).
			Post("/attempts/{attemptID}/responses", api.SaveQuizResponsesHandler(quizStore))
		pr.With(rbac.Require("attempt:submit")).
			Post("/attempts/{attemptID}/submit", api.SubmitQuizAttemptHandler(quizStore))
		pr.With(rbac.RequireOwnerOr("attempt:view-all", api.OwnsAttempt(quizStore))).
			Get("/attempts/{attemptID}", api.GetQuizAttemptHandler(quizStore))

		// Accounts
		pr.With(rbac.Require("users:bulk_upsert")).
			Post("/users/bulk", api.BulkUpsertUsersHandler(dbh))
		pr.With(rbac.Require("users:list")).
			Get("/users", api.ListUsersHandler(dbh))
		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", api.ChangePasswordHandler(dbh))

		// Audit
		pr.With(rbac.Require("activity:view")).
			Get("/activity", api.RecentActivityHandler(activityLog))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
