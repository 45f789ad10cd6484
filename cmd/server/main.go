package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gostones/resumeupload/internal/config"
	"github.com/gostones/resumeupload/internal/server"
	"github.com/gostones/resumeupload/internal/storage"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "resume-server",
		Short:        "Development backend for the resume upload client",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(configPath)
		},
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML config file")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(configPath string) error {
	cfg, path, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log.Logger = cfg.Logging.Logger(os.Stdout)
	if path != "" {
		log.Info().Str("path", path).Msg("config file loaded")
	}

	sess, err := storage.NewSession(cfg.Server.AWS)
	if err != nil {
		return err
	}

	srv := server.New(cfg.Server, storage.NewS3Store(sess), storage.NewTextractDetector(sess), log.Logger)
	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", httpServer.Addr).Str("bucket", cfg.Server.BucketName()).Msg("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errChan:
		return fmt.Errorf("server stopped: %w", err)
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
