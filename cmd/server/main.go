package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/youruser/axismedia/internal/api"
	"github.com/youruser/axismedia/internal/catalog"
	"github.com/youruser/axismedia/internal/config"
	imagepkg "github.com/youruser/axismedia/internal/image"
	"github.com/youruser/axismedia/internal/session"
	"github.com/youruser/axismedia/internal/util"
)

func main() {
	cfgPath := os.Getenv("CONFIG")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal(err)
	}

	if err := util.EnsureDir(cfg.Catalog.AssetsDir); err != nil {
		log.Println("Warning: failed to create assets dir:", err)
	}

	cat, err := catalog.New(cfg.Catalog.File)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Catalog.Watch {
		// best-effort: a missing catalog directory only disables reloads
		if err := cat.Watch(ctx); err != nil {
			log.Println("Warning: catalog reload disabled:", err)
		}
	}

	h := api.NewHandler(session.NewManager(cat), imagepkg.Loader{
		AssetsDir:    cfg.Catalog.AssetsDir,
		FetchTimeout: cfg.Images.FetchTimeout,
		MaxPixels:    cfg.Images.MaxPixels,
	}, api.Options{
		ResizeQuality:    cfg.Images.ResizeQuality,
		ThumbnailQuality: cfg.Images.ThumbnailQuality,
		MaxUploadBytes:   cfg.Uploads.MaxBytes,
	})

	r := gin.Default()
	api.RegisterRoutes(r, h)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Server.Port
	}
	srv := &http.Server{Addr: ":" + port, Handler: r}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Println("shutdown:", err)
		}
	}()

	log.Println("starting server on http://localhost:" + port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
