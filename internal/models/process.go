package models

import (
	"strconv"
	"time"
)

// Category is the application category assigned by the classifier.
type Category string

const (
	CategoryWebFramework   Category = "web_framework"
	CategoryBundler        Category = "bundler"
	CategoryPackageManager Category = "package_manager"
	CategoryVirtualEnv     Category = "virtual_env"
	CategoryWatcher        Category = "watcher"
	CategoryWorker         Category = "worker"
	CategoryContainer      Category = "container"
	CategoryUnknown        Category = "unknown"
)

// Relation describes how a bundled process relates to its owning app.
type Relation string

const (
	RelationBackendInstance Relation = "Backend Instance"
	RelationBackendServer   Relation = "Backend Server"
	RelationPackageManager  Relation = "Package Manager"
	RelationVirtualEnv      Relation = "Virtual Environment"
	RelationBundler         Relation = "Bundler"
	RelationAutoRestart     Relation = "Auto-restart Tool"
	RelationWorker          Relation = "Worker"
)

// Port roles assigned by the grouping engine's port heuristic.
const (
	RoleFrontend  = "frontend"
	RoleBackend   = "backend"
	RoleFullstack = "fullstack"
)

// RawProcess is one record from the process-table scan. Fields that could
// not be read (permission denied) are left at their zero value.
type RawProcess struct {
	PID            int       `json:"pid"`
	ParentPID      int       `json:"parent_pid"`
	Name           string    `json:"name"`
	Exe            string    `json:"exe,omitempty"`
	Cmdline        []string  `json:"cmdline"`
	Username       string    `json:"username"`
	Cwd            string    `json:"cwd"`
	Status         string    `json:"status,omitempty"`
	CPUPercent     float64   `json:"cpu_percent"`
	MemoryMB       float64   `json:"memory_mb"`
	MemoryPercent  float64   `json:"memory_percent"`
	ListeningPorts []int     `json:"listening_ports"`
	StartedAt      time.Time `json:"-"`
}

// PrimaryPort returns the lowest listening port, or 0 when the process
// holds none. The scanner emits ports sorted ascending.
func (p *RawProcess) PrimaryPort() int {
	if len(p.ListeningPorts) == 0 {
		return 0
	}
	return p.ListeningPorts[0]
}

// ClassifiedProcess is a RawProcess plus the classifier's verdict.
type ClassifiedProcess struct {
	RawProcess

	Category    Category `json:"category"`
	AppName     string   `json:"app_name"`
	Description string   `json:"description"`
	IsCandidate bool     `json:"is_candidate"`
}

// RelatedProcess is a lightweight projection of an auxiliary process
// bundled under an owning app. Cmdline is truncated to the first three
// arguments.
type RelatedProcess struct {
	PID        int      `json:"pid"`
	Name       string   `json:"name"`
	Type       Relation `json:"type"`
	CPUPercent float64  `json:"cpu_percent"`
	MemoryMB   float64  `json:"memory_mb"`
	Cmdline    []string `json:"cmdline"`
	Ports      []int    `json:"ports"`
}

// AppGroup is one app card: a primary process plus its bundled related
// processes. GroupID is the identity key the dashboard reconciles on; it
// must be stable across cycles for an unchanged primary.
type AppGroup struct {
	ClassifiedProcess

	Role    string           `json:"role"`
	GroupID string           `json:"group_id"`
	Uptime  string           `json:"uptime,omitempty"`
	Related []RelatedProcess `json:"related_processes"`
}

// GroupID derives the identity key for an app from its primary process
// identifier and primary port.
func GroupID(pid, port int) string {
	return strconv.Itoa(pid) + ":" + strconv.Itoa(port)
}

// SystemInfo carries host-level totals published alongside the process list.
type SystemInfo struct {
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
}

// ProcessTable is one captured process-table population. The whole
// classification pipeline is a pure function of this value.
type ProcessTable struct {
	CapturedAt time.Time
	Processes  []RawProcess
	System     SystemInfo
}

// Snapshot is the published output shape. Field names are a wire contract:
// the dashboard pattern-matches on them directly.
type Snapshot struct {
	Processes  []AppGroup `json:"processes"`
	SystemInfo SystemInfo `json:"system_info"`
}

// ProcessDetail is the on-demand detail view for a single process.
type ProcessDetail struct {
	PID            int      `json:"pid"`
	Name           string   `json:"name"`
	Status         string   `json:"status"`
	Username       string   `json:"username"`
	CPUPercent     float64  `json:"cpu_percent"`
	MemoryPercent  float64  `json:"memory_percent"`
	MemoryMB       float64  `json:"memory_mb"`
	NumThreads     int      `json:"num_threads"`
	CreateTime     string   `json:"create_time"`
	Exe            string   `json:"exe"`
	Cwd            string   `json:"cwd"`
	Cmdline        []string `json:"cmdline"`
	ListeningPorts []int    `json:"listening_ports"`
}
