package main

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type api struct {
	cfg   Config
	store TaskStore
}

func main() {
	loadDotenv()
	cfg := loadConfig()

	var store TaskStore
	if cfg.DatabaseURL == "" {
		log.Println("[DB] DATABASE_URL not set, using in-memory store")
		store = newMemoryStore()
	} else {
		dsn := cfg.DatabaseURL
		// local only: allow sslmode=disable if using localhost
		if strings.Contains(dsn, "localhost") && !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=disable"
			} else {
				dsn += "?sslmode=disable"
			}
		}
		db, err := openGorm(dsn)
		if err != nil {
			log.Fatalf("[DB] connect failed: %v", err)
		}
		if err := autoMigrate(db); err != nil {
			log.Fatalf("[DB] migrate failed: %v", err)
		}
		log.Println("[DB] connected")
		store = newGormStore(db)
	}

	a := &api{cfg: cfg, store: store}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
	}
	log.Println("API listening on", addr, "CORS_ORIGIN:", cfg.CORSOrigin)
	log.Fatal(srv.ListenAndServe())
}

func newRouter(a *api) http.Handler {
	r := chi.NewRouter()

	// allow comma-separated list of origins
	var origins []string
	for _, p := range strings.Split(a.cfg.CORSOrigin, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "If-Version", "X-Asana-User", "X-Requested-With"},
		ExposedHeaders:   []string{"Set-Cookie"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	// Finish bare OPTIONS quickly
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	// Auth
	r.Post("/api/auth/register", a.handleRegister)
	r.Post("/api/auth/login", a.handleLogin)

	// Tasks
	r.Get("/api/tasks/{userID}", a.handleListTasks)
	r.Post("/api/tasks", a.handleCreateTask)
	r.Post("/api/tasks/{userID}", a.handleCreateTask)
	r.Put("/api/tasks/{id}", a.handleUpdateTask)
	r.Delete("/api/tasks/{id}", a.handleDeleteTask)

	// Health
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	return r
}
