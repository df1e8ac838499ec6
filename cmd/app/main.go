package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	cfgpkg "github.com/local/textextract/internal/config"
	"github.com/local/textextract/internal/document"
	"github.com/local/textextract/internal/extract"
	logpkg "github.com/local/textextract/internal/logger"
	"github.com/local/textextract/internal/metrics"
	"github.com/local/textextract/internal/ocr"
	"github.com/local/textextract/internal/router"
	"github.com/local/textextract/internal/statuscheck"
)

func main() {
	_ = godotenv.Load()
	cfg := cfgpkg.FromEnv()

	// Init logging
	_ = logpkg.Init(logpkg.Options{
		Level:        cfg.Logging.Level,
		Pretty:       cfg.Logging.Pretty,
		File:         cfg.Logging.File,
		MaxSizeMB:    cfg.Logging.MaxSizeMB,
		MaxBackups:   cfg.Logging.MaxBackups,
		MaxAgeDays:   cfg.Logging.MaxAgeDays,
		Compress:     cfg.Logging.Compress,
		SendToAxiom:  cfg.Axiom.Send && cfg.Axiom.APIKey != "",
		AxiomAPIKey:  cfg.Axiom.APIKey,
		AxiomOrgID:   cfg.Axiom.OrgID,
		AxiomDataset: cfg.Axiom.Dataset,
		AxiomFlush:   cfg.Axiom.FlushInterval,
	})
	defer logpkg.Close()

	metrics.Init()

	engine := ocr.NewTesseract(cfg.Engine)
	svc := extract.New(document.FitzOpener{}, engine, cfg)

	checker := statuscheck.New(statuscheck.Options{EngineBinary: cfg.Engine.Binary})

	rt := router.New(map[string]router.Handler{
		"image-ocr": svc.RecognizeImage,
		"pdf-text":  svc.ExtractText,
		"pdf-ocr":   svc.RenderAndRecognize,
	}, checker)

	mux := http.NewServeMux()
	rt.RegisterRoutes(mux)

	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: mux}

	go func() {
		log.Info().Msgf("HTTP server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	_ = srv.Shutdown(ctx)
	fmt.Println("shutdown complete")
}
