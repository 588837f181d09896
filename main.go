package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taxiapi/internal/auth"
	intconfig "taxiapi/internal/config"
	router "taxiapi/internal/http"
	"taxiapi/internal/query"
	"taxiapi/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	env, err := intconfig.LoadEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	// One-time table load. Any failure here keeps the process from
	// becoming ready; there is no partial-load tolerance.
	loader := &store.Loader{DataDir: env.DataDir}
	if env.S3Bucket != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		dl, err := store.NewS3Downloader(ctx, env.S3Bucket, store.S3Options{
			Region:       env.AWSRegion,
			Endpoint:     env.S3Endpoint,
			UsePathStyle: env.S3PathStyle,
		})
		cancel()
		if err != nil {
			log.Fatalf("Object storage setup failed: %v", err)
		}
		loader.Downloader = dl
	}

	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 5*time.Minute)
	snap, err := loader.Load(loadCtx)
	cancelLoad()
	if err != nil {
		log.Fatalf("Data load failed: %v", err)
	}

	authenticator := auth.New(env.APIKey, env.APIKeyHash, env.ValidGroups)
	engine := query.New(snap, env.MaxLimit)

	// Router (Gin engine)
	r := router.NewRouter(env, authenticator, engine, snap)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}
