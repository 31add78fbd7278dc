// Command server runs the credit studio operator API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"creditstudio/internal/agentauth"
	"creditstudio/internal/agents"
	"creditstudio/internal/audit"
	"creditstudio/internal/chain"
	"creditstudio/internal/consensus"
	"creditstudio/internal/platform/config"
	"creditstudio/internal/platform/health"
	"creditstudio/internal/platform/logger"
	"creditstudio/internal/platform/tracer"
	httptransport "creditstudio/internal/transport/http"
	"creditstudio/internal/underwriting"
	umetrics "creditstudio/internal/underwriting/metrics"
	"creditstudio/internal/verification"
	vmetrics "creditstudio/internal/verification/metrics"
	"creditstudio/internal/workflow"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	log.Info("initializing credit studio",
		"addr", cfg.Addr,
		"network", cfg.Network,
		"verifiers", cfg.VerifierCount,
	)

	auditPublisher := audit.NewPublisher(audit.NewInMemoryStore(),
		audit.WithAsyncBuffer(256),
		audit.WithPublisherLogger(log),
	)
	defer auditPublisher.Close()

	sim := chain.NewSimulator(cfg.Network)

	engine := underwriting.New(auditPublisher,
		underwriting.WithLogger(log),
		underwriting.WithMetrics(umetrics.New()),
	)
	worker := agents.NewWorker(
		"credit-analyst", "analyst.creditstudio.example.com",
		sim.NewClient("credit-analyst", "analyst.creditstudio.example.com"),
		engine, auditPublisher,
		agents.WithWorkerLogger(log),
	)

	scoringMetrics := vmetrics.New()
	verifiers := make([]*agents.VerifierAgent, 0, cfg.VerifierCount)
	for i := 1; i <= cfg.VerifierCount; i++ {
		name := fmt.Sprintf("verifier-%d", i)
		domain := fmt.Sprintf("verifier%d.creditstudio.example.com", i)
		client := sim.NewClient(name, domain)
		scoring := verification.New(name, client, auditPublisher,
			verification.WithLogger(log),
			verification.WithMetrics(scoringMetrics),
		)
		verifiers = append(verifiers, agents.NewVerifier(name, domain, client, scoring, auditPublisher,
			agents.WithVerifierLogger(log),
		))
	}

	orchestrator := workflow.New(
		sim.NewClient("studio-operator", "operator.creditstudio.example.com"),
		worker,
		verifiers,
		consensus.New(
			consensus.WithMinVerifiers(cfg.MinVerifiers),
			consensus.WithLogger(log),
		),
		auditPublisher,
		workflow.Config{
			StudioName:     cfg.StudioName,
			InitialBudget:  cfg.InitialBudget,
			StakeAmount:    cfg.StakeAmount,
			BaseReward:     cfg.BaseReward,
			VerifierReward: cfg.VerifierReward,
		},
		workflow.WithTracer(tracer.NewOTel()),
		workflow.WithLogger(log),
	)

	auth := agentauth.NewService(cfg.JWTSigningKey, cfg.TokenTTL)
	handler := httptransport.NewHandler(engine, orchestrator, auth, log)
	router := httptransport.NewRouter(handler, health.New(cfg.Environment), log, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
	}

	go func() {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
