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

	"studylog/backend/internal/config"
	"studylog/backend/internal/handler"
	transport "studylog/backend/internal/http"
	"studylog/backend/internal/logger"
	"studylog/backend/internal/network"
	"studylog/backend/internal/service"
	"studylog/backend/internal/store"
)

// @title StudyLog API
// @version 1.0
// @description Appends study summaries to a JSON collection kept in a GitHub repository.
// @BasePath /
func main() {
	cfg := config.Load()
	logger.Init(logger.ParseLevel(cfg.LogLevel))

	summaryService := buildSummaryService(cfg)
	summaryHandler := handler.NewSummaryHandler(summaryService)
	router := transport.NewRouter(summaryHandler)

	go func() {
		logger.Info("server starting", "module", "server", "action", "start", "addr", cfg.Addr)
		if err := router.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("start server", "module", "server", "action", "start", "result", "failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logger.Info("shutting down...", "module", "server", "action", "shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown server", "module", "server", "action", "shutdown", "result", "failed", "error", err)
	}
}

// buildSummaryService wires the GitHub store. Configuration problems do not
// stop the process; the service then fails every submission with ErrConfig.
func buildSummaryService(cfg config.Config) service.SummaryService {
	opts := service.SummaryOptions{Path: cfg.FilePath}

	st, err := buildStore(cfg)
	if err != nil {
		logger.Warn("store not configured, submissions will be rejected",
			"module", "config",
			"action", "load",
			"resource", "store",
			"result", "failed",
			"error", err,
		)
		opts.Unconfigured = err
		return service.NewSummaryService(nil, opts)
	}
	return service.NewSummaryService(st, opts)
}

func buildStore(cfg config.Config) (*store.GitHubStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	owner, repo, err := cfg.Repository()
	if err != nil {
		return nil, err
	}
	factory, err := network.NewClientFactory(cfg.ProxyURL, cfg.HTTPTimeout)
	if err != nil {
		return nil, fmt.Errorf("STUDY_PROXY_URL: %w", err)
	}
	client := store.NewGitHubClient(factory.NewHTTPClient(), cfg.GitHubToken, config.UserAgent)
	logger.Info("github store configured",
		"module", "config",
		"action", "load",
		"resource", "store",
		"result", "ok",
		"repo", cfg.RepoName,
		"branch", cfg.Branch,
		"path", cfg.FilePath,
		"proxy", factory.ProxyURL(),
	)
	return store.NewGitHubStore(client, owner, repo, cfg.Branch), nil
}
