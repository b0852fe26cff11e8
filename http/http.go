package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/awantoch/flowsketch/config"
	"github.com/awantoch/flowsketch/constants"
	"github.com/awantoch/flowsketch/model"
	"github.com/awantoch/flowsketch/telemetry"
	"github.com/awantoch/flowsketch/utils"
	"github.com/awantoch/flowsketch/workflow"
)

const (
	maxRequestBytes = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Generator produces a workflow from a description. *workflow.Service satisfies it.
type Generator interface {
	Generate(ctx context.Context, description string) (*model.Workflow, error)
}

// GenerateRequest is the body of POST /api/generate-workflow.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// NewMux registers every route, each wrapped with request IDs and telemetry.
func NewMux(gen Generator) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(constants.RouteGenerateWorkflow, instrument("generate_workflow", generateWorkflowHandler(gen)))
	mux.Handle(constants.RouteHealthz, instrument("healthz", http.HandlerFunc(healthHandler)))
	mux.Handle(constants.RouteMetrics, telemetry.MetricsHandler())
	return mux
}

// StartServer serves on cfg's address until ctx is cancelled, then shuts down gracefully.
func StartServer(ctx context.Context, cfg *config.Config, gen Generator) error {
	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}
	return Serve(ctx, ln, gen)
}

// Serve accepts connections on ln until ctx is cancelled.
func Serve(ctx context.Context, ln net.Listener, gen Generator) error {
	srv := &http.Server{
		Handler:           NewMux(gen),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Info("flowsketch listening on %s", ln.Addr())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	utils.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// instrument assigns a request ID and applies telemetry.
func instrument(name string, next http.Handler) http.Handler {
	return telemetry.WrapHandler(name, withRequestID(next))
}

func withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := strings.TrimSpace(r.Header.Get(constants.HeaderRequestID))
		if reqID == "" {
			reqID = utils.NewRequestID()
		}
		w.Header().Set(constants.HeaderRequestID, reqID)
		next.ServeHTTP(w, r.WithContext(utils.WithRequestID(r.Context(), reqID)))
	})
}

// POST /api/generate-workflow { prompt: <text> }
func generateWorkflowHandler(gen Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			utils.WriteHTTPError(w, http.StatusMethodNotAllowed, constants.ResponseMethodNotAllowed)
			return
		}
		var req GenerateRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
			utils.DebugCtx(r.Context(), "undecodable request body", "error", err)
			utils.WriteHTTPError(w, http.StatusBadRequest, constants.ResponsePromptRequired)
			return
		}
		if strings.TrimSpace(req.Prompt) == "" {
			utils.WriteHTTPError(w, http.StatusBadRequest, constants.ResponsePromptRequired)
			return
		}

		wf, err := gen.Generate(r.Context(), req.Prompt)
		if err != nil {
			code, msg := errorResponse(err)
			utils.WriteHTTPError(w, code, msg)
			return
		}
		utils.WriteHTTPJSON(w, http.StatusOK, wf)
	}
}

// errorResponse maps a generation error to a status code and a client-safe message.
func errorResponse(err error) (int, string) {
	if workflow.KindOf(err) == workflow.KindInvalidInput {
		return http.StatusBadRequest, workflow.UserMessage(err)
	}
	return http.StatusInternalServerError, workflow.UserMessage(err)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	if _, err := w.Write([]byte(constants.HealthCheckResponse)); err != nil {
		utils.Error(constants.LogFailedWriteHealthCheck, err)
	}
}
