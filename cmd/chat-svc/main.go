package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"gotalk/internal/common"
	"gotalk/internal/dbmysql"
	"gotalk/internal/di"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	log.Println("Starting Chat Service...")

	app, cleanup, err := di.InitializeApplication()
	if err != nil {
		log.Fatalf("Failed to initialize chat service: %v", err)
	}
	defer cleanup()

	// Migrations run in main, not hidden inside repositories.
	if err := app.DB.AutoMigrate(&dbmysql.User{}, &dbmysql.Message{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	router := newRouter(app)

	srv := &http.Server{
		Addr:         app.Config.Server.Host + ":" + app.Config.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(app.Config.Server.ReadTimeout) * time.Second,
		// WriteTimeout would cut off long-lived streams, the per-handler
		// deadlines cover the rest.
	}

	go func() {
		log.Printf("Chat Service running on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Chat Service...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	log.Println("Chat Service stopped")
}

func newRouter(app *di.Application) *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	// Public endpoints
	router.HandleFunc("/api/register", app.UserHandler.Register).Methods("POST")
	router.HandleFunc("/api/login", app.UserHandler.Login).Methods("POST")

	// Everything else needs a verified identity
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(common.AuthMiddleware)
	protected.HandleFunc("/users", app.UserHandler.ListUsers).Methods("GET")
	protected.HandleFunc("/message", app.ChatHandler.SendMessage).Methods("POST")
	protected.HandleFunc("/messages/{other_user_id:[0-9]+}", app.ChatHandler.History).Methods("GET")
	protected.HandleFunc("/chats", app.ChatHandler.Conversations).Methods("GET")
	protected.HandleFunc("/stream", app.ChatHandler.Stream).Methods("GET")
	protected.HandleFunc("/upload", app.UploadHandler.Upload).Methods("POST")

	return router
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("→ %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("✓ %s %s completed (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}
