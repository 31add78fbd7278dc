// Command demo runs one complete studio workflow against the simulated
// network and prints the run report.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"creditstudio/internal/agents"
	"creditstudio/internal/audit"
	"creditstudio/internal/chain"
	"creditstudio/internal/consensus"
	"creditstudio/internal/platform/config"
	"creditstudio/internal/platform/logger"
	"creditstudio/internal/underwriting"
	"creditstudio/internal/verification"
	"creditstudio/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	auditPublisher := audit.NewPublisher(audit.NewInMemoryStore(), audit.WithPublisherLogger(log))

	sim := chain.NewSimulator(cfg.Network)

	engine := underwriting.New(auditPublisher, underwriting.WithLogger(log))
	worker := agents.NewWorker(
		"credit-analyst", "analyst.creditstudio.example.com",
		sim.NewClient("credit-analyst", "analyst.creditstudio.example.com"),
		engine, auditPublisher,
		agents.WithWorkerLogger(log),
	)

	verifiers := make([]*agents.VerifierAgent, 0, cfg.VerifierCount)
	for i := 1; i <= cfg.VerifierCount; i++ {
		name := fmt.Sprintf("verifier-%d", i)
		domain := fmt.Sprintf("verifier%d.creditstudio.example.com", i)
		client := sim.NewClient(name, domain)
		scoring := verification.New(name, client, auditPublisher, verification.WithLogger(log))
		verifiers = append(verifiers, agents.NewVerifier(name, domain, client, scoring, auditPublisher,
			agents.WithVerifierLogger(log),
		))
	}

	orchestrator := workflow.New(
		sim.NewClient("studio-operator", "operator.creditstudio.example.com"),
		worker,
		verifiers,
		consensus.New(consensus.WithMinVerifiers(cfg.MinVerifiers), consensus.WithLogger(log)),
		auditPublisher,
		workflow.Config{
			StudioName:     cfg.StudioName,
			InitialBudget:  cfg.InitialBudget,
			StakeAmount:    cfg.StakeAmount,
			BaseReward:     cfg.BaseReward,
			VerifierReward: cfg.VerifierReward,
		},
		workflow.WithLogger(log),
	)

	creditScore := 720
	annualIncome := 85000.0
	debtToIncome := 0.28
	employmentYears := 5
	requestedAmount := 50000.0
	app := underwriting.Application{
		ApplicantName:   "Jordan Reyes",
		CreditScore:     &creditScore,
		AnnualIncome:    &annualIncome,
		DebtToIncome:    &debtToIncome,
		EmploymentYears: &employmentYears,
		RequestedAmount: &requestedAmount,
		Purpose:         "home_improvement",
	}

	log.Info("starting studio run",
		"studio", cfg.StudioName,
		"network", cfg.Network,
		"verifiers", cfg.VerifierCount,
	)

	report, err := orchestrator.Run(context.Background(), app)
	if err != nil {
		log.Error("workflow run failed", "error", err)
		os.Exit(1)
	}

	log.Info("studio run complete",
		"studio", report.StudioAddr,
		"data_hash", report.DataHashHex,
		"recommendation", string(report.Decision.Recommendation),
		"consensus_score", report.Consensus.FinalScore,
		"consensus_verdict", string(report.Consensus.Recommendation),
		"worker_reward", report.Rewards.WorkerReward,
	)

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Error("could not render run report", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
