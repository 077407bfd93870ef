package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/isabel-dlai/process-viewer/internal/service"
)

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// ReadyCheck reports ready only after the first process scan has completed,
// so load balancers and launch scripts can wait for real data.
func ReadyCheck(monitor *service.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := "ready"
		code := http.StatusOK
		if _, ok := monitor.Snapshot(); !ok {
			status = "starting"
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(HealthResponse{
			Status:    status,
			Timestamp: time.Now().Format(time.RFC3339),
		})
	}
}
