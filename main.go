package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/empowered-auth/auth-backend/internal/auth"
	"github.com/empowered-auth/auth-backend/internal/config"
	"github.com/empowered-auth/auth-backend/internal/db"
	"github.com/empowered-auth/auth-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "Server is up!")
}

func main() {
	_ = godotenv.Load(".env.local")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	gdb, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	if err := auth.Migrate(gdb); err != nil {
		log.Fatal("Failed to auto-migrate tables: ", err)
	}

	handler := &auth.Handler{
		Service: &auth.Service{
			DB:       gdb,
			Verifier: auth.NewGoogleVerifier(cfg.GoogleClientID),
		},
		CookieSecure: cfg.Production(),
	}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	r.Get("/", RootHandler)
	r.Mount("/auth", handler.SetupRoutes())

	log.Printf("Server listening on port :%s...", cfg.Port)
	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
