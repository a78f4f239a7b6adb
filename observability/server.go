package observability

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
	"github.com/ethereum/go-ethereum/metrics/exp"
	"github.com/rs/cors"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// Config controls whether and how the observability server runs.
type Config struct {
	Enable   bool
	Addr     string
	InfluxURL   string
	InfluxToken string
}

// Serve mounts the metrics endpoint and (if configured) starts the
// periodic InfluxDB pusher, blocking until ctx is cancelled. It is a
// no-op if cfg.Enable is false.
func Serve(ctx context.Context, cfg Config) {
	if !cfg.Enable {
		return
	}

	exp.Exp(metrics.DefaultRegistry)
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", healthzHandler)
	mux.Handle("/debug/metrics", http.DefaultServeMux)

	handler := cors.Default().Handler(mux)

	srv := &http.Server{Addr: cfg.Addr, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if cfg.InfluxURL != "" {
		go runInfluxPusher(ctx, cfg)
	}

	log.Info("Observability server listening", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("Observability server exited", "err", err)
	}
}

type healthzResponse struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

// healthzHandler reports coarse host resource usage via gopsutil,
// useful for a liveness probe that also flags host-level resource
// starvation rather than just process aliveness.
func healthzHandler(w http.ResponseWriter, r *http.Request) {
	resp := healthzResponse{}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		resp.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		resp.MemoryPercent = vm.UsedPercent
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
