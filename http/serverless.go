package http

import (
	"context"
	"net/http"
	"sync"

	"github.com/awantoch/flowsketch/config"
	"github.com/awantoch/flowsketch/event"
	"github.com/awantoch/flowsketch/utils"
	"github.com/awantoch/flowsketch/workflow"
)

var (
	serverlessMux *http.ServeMux
	muxMutex      sync.Mutex
)

// ServerlessHandler serves the API from a single function entry point. The service is
// built from config and environment on first use and reused afterwards. A failed build
// is not cached, so the next request tries again.
func ServerlessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	mux, err := getServerlessMux(r.Context())
	if err != nil {
		utils.Error("serverless init failed: %v", err)
		utils.WriteHTTPError(w, http.StatusInternalServerError, workflow.UserMessage(err))
		return
	}
	mux.ServeHTTP(w, r)
}

func getServerlessMux(ctx context.Context) (*http.ServeMux, error) {
	muxMutex.Lock()
	defer muxMutex.Unlock()
	if serverlessMux != nil {
		return serverlessMux, nil
	}
	mux, err := createServerlessMux(ctx)
	if err != nil {
		return nil, err
	}
	serverlessMux = mux
	return mux, nil
}

func createServerlessMux(ctx context.Context) (*http.ServeMux, error) {
	cfg, err := config.LoadConfigOrDefault(config.DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	bus, err := event.NewEventBusFromConfig(&cfg.Event)
	if err != nil {
		return nil, err
	}
	svc, err := workflow.NewServiceFromConfig(context.WithoutCancel(ctx), cfg, bus)
	if err != nil {
		bus.Close()
		return nil, err
	}
	return NewMux(svc), nil
}

// ResetServerlessMux drops the cached service so the next request initializes again.
func ResetServerlessMux() {
	muxMutex.Lock()
	defer muxMutex.Unlock()
	serverlessMux = nil
}
