package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/shashi997/spacey-mission/config"
	"github.com/shashi997/spacey-mission/db"
	"github.com/shashi997/spacey-mission/handlers"
	"github.com/shashi997/spacey-mission/services"
	"github.com/shashi997/spacey-mission/services/agent"
)

func main() {
	cfg := config.Load()

	if cfg.FirebaseProjectID == "" {
		log.Fatal("FIREBASE_PROJECT_ID environment variable is required")
	}

	if cfg.CredentialsFile == "" {
		log.Fatal("Firebase credentials missing. Set GOOGLE_APPLICATION_CREDENTIALS or place service-account.json next to the server")
	}

	if cfg.GroqAPIKey == "" {
		log.Fatal("GROQ_API_KEY environment variable is required")
	}

	ctx := context.Background()

	progressRepo, err := db.NewFirestoreProgressRepository(ctx, cfg.FirebaseProjectID, cfg.CredentialsFile)
	if err != nil {
		log.Fatalf("Failed to initialize progress database: %v", err)
	}
	defer progressRepo.Close()

	progressService := services.NewProgressService(progressRepo)
	progressHandler := handlers.NewProgressHandler(progressService)

	agentService, err := agent.NewService(cfg.GroqAPIKey)
	if err != nil {
		log.Fatalf("Failed to initialize agent service: %v", err)
	}
	agentHandler := handlers.NewAgentHandler(agentService)

	router := mux.NewRouter()

	router.Use(corsMiddleware)
	router.Use(jsonMiddleware)

	router.PathPrefix("/").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("OPTIONS")

	progressHandler.RegisterRoutes(router)
	agentHandler.RegisterRoutes(router)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")

	addr := ":" + cfg.Port
	fmt.Printf("Server starting on port %s\n", cfg.Port)

	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
