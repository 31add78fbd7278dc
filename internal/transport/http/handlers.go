// Package httptransport is the thin HTTP layer over the studio services. It
// delegates to domain services without embedding business logic so transport
// concerns remain isolated.
package httptransport

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"creditstudio/internal/agentauth"
	"creditstudio/internal/platform/httputil"
	"creditstudio/internal/transport/http/shared"
	"creditstudio/internal/underwriting"
	"creditstudio/internal/workflow"
	dErrors "creditstudio/pkg/domain-errors"
)

// Runner runs the complete studio workflow for one application.
type Runner interface {
	Run(ctx context.Context, app underwriting.Application) (*workflow.RunReport, error)
}

// Handler serves the operator API.
type Handler struct {
	engine *underwriting.Service
	runner Runner
	auth   *agentauth.Service
	logger *slog.Logger
}

// NewHandler creates the HTTP handler.
// Panics on nil dependencies - the router cannot serve without them.
func NewHandler(engine *underwriting.Service, runner Runner, auth *agentauth.Service, logger *slog.Logger) *Handler {
	if engine == nil {
		panic("httptransport.NewHandler: underwriting engine is required")
	}
	if runner == nil {
		panic("httptransport.NewHandler: workflow runner is required")
	}
	if auth == nil {
		panic("httptransport.NewHandler: auth service is required")
	}
	return &Handler{engine: engine, runner: runner, auth: auth, logger: logger}
}

// handleEvaluate runs the decision engine alone: no chain interaction, no
// verification round. Useful for previewing a decision before a full run.
func (h *Handler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var app underwriting.Application
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed application payload"))
		return
	}

	decision, err := h.engine.Analyze(r.Context(), app, 0)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, decision)
}

// handleWorkflowRun executes all five phases and returns the run report.
func (h *Handler) handleWorkflowRun(w http.ResponseWriter, r *http.Request) {
	var app underwriting.Application
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed application payload"))
		return
	}

	report, err := h.runner.Run(r.Context(), app)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, report)
}

type registerAgentRequest struct {
	AgentName string `json:"agent_name"`
}

// handleAgentRegister creates an API agent and returns its one-time key.
func (h *Handler) handleAgentRegister(w http.ResponseWriter, r *http.Request) {
	var req registerAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed registration payload"))
		return
	}

	reg, err := h.auth.Register(r.Context(), req.AgentName)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, reg)
}

type tokenRequest struct {
	AgentName string `json:"agent_name"`
	APIKey    string `json:"api_key"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// handleAgentToken exchanges an API key for a session token.
func (h *Handler) handleAgentToken(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		shared.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed token payload"))
		return
	}

	token, expiresAt, err := h.auth.IssueToken(r.Context(), req.AgentName, req.APIKey)
	if err != nil {
		shared.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: expiresAt})
}

// requireSession guards endpoints behind a bearer session token.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			shared.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing bearer token"))
			return
		}
		if _, err := h.auth.Validate(token); err != nil {
			shared.WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}
