package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "crisp-interview/docs" // Swagger docs
	"crisp-interview/internal/api"
	"crisp-interview/internal/config"
	"crisp-interview/internal/llm"
	"crisp-interview/internal/resume"
	"crisp-interview/internal/storage"
)

// @title Crisp Interview API
// @version 1.0
// @description AI-powered interview practice service: résumé parsing, timed AI-scored questions and a candidate roster

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http

func main() {
	cfg := config.LoadConfig()

	var store storage.Store
	var err error
	if cfg.DatabaseURL != "" {
		log.Println("Connecting to database...")
		store, err = storage.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("db open:", err)
		}
		log.Println("Database connected successfully!")
	} else {
		log.Printf("No DATABASE_URL set, persisting state to %s", cfg.DataFile)
		store, err = storage.NewFileStore(cfg.DataFile)
		if err != nil {
			log.Fatal("file store:", err)
		}
	}
	defer store.Close()

	provider := cfg.LLMProvider
	if provider != "none" && provider != "ollama" && cfg.LLMAPIKey == "" {
		log.Printf("No API key for provider %q, interviews will run in offline mode", provider)
		provider = "none"
	}
	gateway := llm.NewGateway(llm.NewService(provider, cfg.LLMAPIKey, cfg.LLMModel))

	parser := resume.NewParser(cfg.UploadsDir)

	apiSrv := api.NewAPI(gateway, parser, store)
	if err := apiSrv.RestoreState(context.Background()); err != nil {
		log.Printf("Warning: could not restore persisted state: %v", err)
	}
	apiSrv.StartBackgroundWorkers()

	router := api.NewRouter(apiSrv)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second, // résumé uploads
		WriteTimeout: 5 * time.Minute,  // LLM round-trips with retries
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Println("server shutdown:", err)
		}
		close(idleConnsClosed)
	}()

	log.Printf("API server listening on :%s\n", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}

	<-idleConnsClosed
}
