package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/isabel-dlai/process-viewer/internal/models"
	"github.com/isabel-dlai/process-viewer/internal/scanner"
	"github.com/isabel-dlai/process-viewer/internal/service"

	"github.com/gorilla/mux"
)

type ProcessHandler struct {
	monitor *service.Monitor
	scanner *scanner.Scanner
}

func NewProcessHandler(monitor *service.Monitor, sc *scanner.Scanner) *ProcessHandler {
	return &ProcessHandler{monitor: monitor, scanner: sc}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (h *ProcessHandler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func (h *ProcessHandler) writeError(w http.ResponseWriter, status int, err error, message string) {
	h.writeJSON(w, status, ErrorResponse{
		Error:   err.Error(),
		Message: message,
	})
}

// GetProcesses serves the latest snapshot of grouped dev applications.
// With ?all=1 the snapshot is rebuilt from the cached process table so that
// notable system processes (databases, containers) appear as well.
func (h *ProcessHandler) GetProcesses(w http.ResponseWriter, r *http.Request) {
	var (
		snap models.Snapshot
		ok   bool
	)
	if r.URL.Query().Get("all") != "" {
		snap, ok = h.monitor.SnapshotAll()
	} else {
		snap, ok = h.monitor.Snapshot()
	}
	if !ok {
		// First scan has not completed yet. Serve a well-formed empty
		// snapshot instead of an error so the dashboard can render.
		h.writeJSON(w, http.StatusOK, models.Snapshot{Processes: []models.AppGroup{}})
		return
	}

	h.writeJSON(w, http.StatusOK, snap)
}

// GetProcess serves a point-in-time detail view for a single PID, read
// directly from the OS rather than from the cached snapshot.
func (h *ProcessHandler) GetProcess(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	pid, err := strconv.Atoi(vars["pid"])
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err, "Invalid pid: "+vars["pid"])
		return
	}

	detail, err := h.scanner.Detail(r.Context(), pid)
	if err != nil {
		if errors.Is(err, scanner.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, err, "Process not found: "+vars["pid"])
			return
		}
		h.writeError(w, http.StatusInternalServerError, err, "Failed to inspect process")
		return
	}

	h.writeJSON(w, http.StatusOK, detail)
}
