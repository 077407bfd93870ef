package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/isabel-dlai/process-viewer/internal/models"
	"github.com/isabel-dlai/process-viewer/internal/scanner"
	"github.com/isabel-dlai/process-viewer/internal/service"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handlerTable() *models.ProcessTable {
	captured := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &models.ProcessTable{
		CapturedAt: captured,
		Processes: []models.RawProcess{
			{
				PID:            10,
				Name:           "node",
				Cmdline:        []string{"node", "node_modules/.bin/vite"},
				Username:       "dev",
				Cwd:            "/home/dev/shop",
				CPUPercent:     3.5,
				MemoryMB:       128,
				ListeningPorts: []int{5173},
				StartedAt:      captured.Add(-90 * time.Second),
			},
			{
				PID:            12,
				Name:           "postgres",
				Cmdline:        []string{"postgres", "-D", "/var/lib/postgresql/data"},
				Username:       "postgres",
				Cwd:            "/var/lib/postgresql",
				ListeningPorts: []int{},
			},
		},
		System: models.SystemInfo{CPUPercent: 12.5, MemoryPercent: 41.2},
	}
}

func seededMonitor(t *testing.T) *service.Monitor {
	t.Helper()

	monitor := service.NewMonitor(func(ctx context.Context) (*models.ProcessTable, error) {
		return handlerTable(), nil
	}, time.Second, nil)

	_, err := monitor.RunOnce(context.Background())
	require.NoError(t, err)
	return monitor
}

func TestGetProcesses(t *testing.T) {
	h := NewProcessHandler(seededMonitor(t), scanner.New())

	rr := httptest.NewRecorder()
	h.GetProcesses(rr, httptest.NewRequest(http.MethodGet, "/api/processes", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))

	require.Len(t, snap.Processes, 1)
	assert.Equal(t, "10:5173", snap.Processes[0].GroupID)
	assert.Equal(t, "Shop", snap.Processes[0].AppName)
	assert.Equal(t, "1m 30s", snap.Processes[0].Uptime)
	assert.Equal(t, 12.5, snap.SystemInfo.CPUPercent)
}

func TestGetProcessesShowAll(t *testing.T) {
	h := NewProcessHandler(seededMonitor(t), scanner.New())

	rr := httptest.NewRecorder()
	h.GetProcesses(rr, httptest.NewRequest(http.MethodGet, "/api/processes?all=1", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))

	names := make([]string, 0, len(snap.Processes))
	for _, g := range snap.Processes {
		names = append(names, g.Name)
	}
	assert.Contains(t, names, "node")
	assert.Contains(t, names, "postgres")
}

func TestGetProcessesBeforeFirstScan(t *testing.T) {
	monitor := service.NewMonitor(func(ctx context.Context) (*models.ProcessTable, error) {
		return handlerTable(), nil
	}, time.Second, nil)
	h := NewProcessHandler(monitor, scanner.New())

	rr := httptest.NewRecorder()
	h.GetProcesses(rr, httptest.NewRequest(http.MethodGet, "/api/processes", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"processes":[]`)
}

func TestGetProcessInvalidPID(t *testing.T) {
	h := NewProcessHandler(seededMonitor(t), scanner.New())

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/processes/abc", nil), map[string]string{"pid": "abc"})
	rr := httptest.NewRecorder()
	h.GetProcess(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "abc")
}

func TestGetProcessNotFound(t *testing.T) {
	h := NewProcessHandler(seededMonitor(t), scanner.New())

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/processes/999999999", nil), map[string]string{"pid": "999999999"})
	rr := httptest.NewRecorder()
	h.GetProcess(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetProcessSelf(t *testing.T) {
	h := NewProcessHandler(seededMonitor(t), scanner.New())

	pid := os.Getpid()
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/processes/"+strconv.Itoa(pid), nil), map[string]string{"pid": strconv.Itoa(pid)})
	rr := httptest.NewRecorder()
	h.GetProcess(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var detail models.ProcessDetail
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
	assert.Equal(t, pid, detail.PID)
	assert.NotEmpty(t, detail.Name)
}

func TestHealthCheck(t *testing.T) {
	rr := httptest.NewRecorder()
	HealthCheck(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
}

func TestReadyCheck(t *testing.T) {
	monitor := service.NewMonitor(func(ctx context.Context) (*models.ProcessTable, error) {
		return handlerTable(), nil
	}, time.Second, nil)
	handler := ReadyCheck(monitor)

	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	_, err := monitor.RunOnce(context.Background())
	require.NoError(t, err)

	rr = httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
}
