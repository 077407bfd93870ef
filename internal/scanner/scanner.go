package scanner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/isabel-dlai/process-viewer/internal/classifier"
	"github.com/isabel-dlai/process-viewer/internal/models"
)

// ErrNotFound reports that no process with the requested pid exists.
var ErrNotFound = errors.New("process not found")

// excludedNames drops obvious non-development processes before any
// expensive metadata reads. Matched as substrings of the lowercased name.
var excludedNames = []string{
	"chrome", "firefox", "safari", "slack", "spotify",
	"electron", "code helper",
	"finder", "dock", "systemuiserver", "windowserver",
}

// excludedExePrefixes drop OS-owned binaries.
var excludedExePrefixes = []string{"/System/", "/usr/libexec/", "/usr/sbin/"}

// listenKeywords gate the per-process socket scan, which is far more
// expensive than the other metadata reads. Only processes whose name or
// command line suggests a server are checked for listening ports.
var listenKeywords = []string{
	"python", "node", "npm", "yarn", "pnpm",
	"flask", "django", "uvicorn", "gunicorn",
	"streamlit", "gradio", "vite", "webpack", "next",
	"deno", "bun", "ruby", "rails", "php", "java", "dotnet",
	"server",
}

// Scanner reads the OS process table and produces the raw population the
// classification pipeline consumes.
type Scanner struct{}

func New() *Scanner {
	return &Scanner{}
}

// Scan captures one process-table population plus host CPU and memory
// totals. Unreadable per-process fields degrade to their zero value;
// only a failure to enumerate the table at all is an error.
func (s *Scanner) Scan(ctx context.Context) (*models.ProcessTable, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}

	table := &models.ProcessTable{
		CapturedAt: time.Now(),
		Processes:  make([]models.RawProcess, 0, len(procs)),
	}
	for _, p := range procs {
		raw, ok := collect(ctx, p)
		if !ok {
			continue
		}
		table.Processes = append(table.Processes, raw)
	}
	sort.Slice(table.Processes, func(i, j int) bool {
		return table.Processes[i].PID < table.Processes[j].PID
	})

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		table.System.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		table.System.MemoryPercent = vm.UsedPercent
	}
	return table, nil
}

// collect reads one process's metadata. The second return is false when the
// process is filtered out or vanished mid-read.
func collect(ctx context.Context, p *process.Process) (models.RawProcess, bool) {
	raw := models.RawProcess{
		PID:            int(p.Pid),
		Cmdline:        []string{},
		ListeningPorts: []int{},
	}

	name, err := p.NameWithContext(ctx)
	if err != nil || name == "" {
		return raw, false
	}
	raw.Name = name
	if excludedName(name) {
		return raw, false
	}

	if exe, err := p.ExeWithContext(ctx); err == nil {
		raw.Exe = exe
		for _, prefix := range excludedExePrefixes {
			if strings.HasPrefix(exe, prefix) {
				return raw, false
			}
		}
	}

	if pp, err := p.PpidWithContext(ctx); err == nil {
		raw.ParentPID = int(pp)
	}
	if cl, err := p.CmdlineSliceWithContext(ctx); err == nil && len(cl) > 0 {
		raw.Cmdline = cl
	}
	if u, err := p.UsernameWithContext(ctx); err == nil {
		raw.Username = u
	}
	if cwd, err := p.CwdWithContext(ctx); err == nil {
		raw.Cwd = cwd
	}
	if st, err := p.StatusWithContext(ctx); err == nil && len(st) > 0 {
		raw.Status = st[0]
	}
	if pct, err := p.CPUPercentWithContext(ctx); err == nil {
		raw.CPUPercent = pct
	}
	if mp, err := p.MemoryPercentWithContext(ctx); err == nil {
		raw.MemoryPercent = float64(mp)
	}
	if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
		raw.MemoryMB = float64(mi.RSS) / 1024 / 1024
	}
	if start, err := p.CreateTimeWithContext(ctx); err == nil {
		raw.StartedAt = time.UnixMilli(start)
	}

	if mightListen(raw.Name, raw.Cmdline) {
		raw.ListeningPorts = listeningPorts(ctx, p, true)
	}
	return raw, true
}

// listeningPorts returns the process's bound listening ports, deduplicated
// and sorted ascending so the lowest (usually the main server) port comes
// first. With interestingOnly the result is narrowed to development ports.
func listeningPorts(ctx context.Context, p *process.Process, interestingOnly bool) []int {
	conns, err := p.ConnectionsWithContext(ctx)
	if err != nil {
		return []int{}
	}
	seen := make(map[int]bool)
	ports := []int{}
	for _, c := range conns {
		if c.Status != "LISTEN" {
			continue
		}
		port := int(c.Laddr.Port)
		if seen[port] {
			continue
		}
		if interestingOnly && !classifier.IsInterestingPort(port) {
			continue
		}
		seen[port] = true
		ports = append(ports, port)
	}
	sort.Ints(ports)
	return ports
}

func excludedName(name string) bool {
	n := strings.ToLower(name)
	for _, excluded := range excludedNames {
		if strings.Contains(n, excluded) {
			return true
		}
	}
	return false
}

func mightListen(name string, cmdline []string) bool {
	n := strings.ToLower(name)
	joined := strings.ToLower(strings.Join(cmdline, " "))
	for _, kw := range listenKeywords {
		if strings.Contains(n, kw) || strings.Contains(joined, kw) {
			return true
		}
	}
	return false
}

// Detail reads the on-demand detail view for a single process. Unlike Scan
// it applies no filtering, so any live pid can be inspected.
func (s *Scanner) Detail(ctx context.Context, pid int) (*models.ProcessDetail, error) {
	p, err := process.NewProcessWithContext(ctx, int32(pid))
	if err != nil {
		return nil, fmt.Errorf("process %d: %w", pid, ErrNotFound)
	}

	d := &models.ProcessDetail{
		PID:            pid,
		Cmdline:        []string{},
		ListeningPorts: []int{},
	}
	name, err := p.NameWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("process %d: %w", pid, ErrNotFound)
	}
	d.Name = name

	if st, err := p.StatusWithContext(ctx); err == nil && len(st) > 0 {
		d.Status = st[0]
	}
	if u, err := p.UsernameWithContext(ctx); err == nil {
		d.Username = u
	}
	if pct, err := p.CPUPercentWithContext(ctx); err == nil {
		d.CPUPercent = pct
	}
	if mp, err := p.MemoryPercentWithContext(ctx); err == nil {
		d.MemoryPercent = float64(mp)
	}
	if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
		d.MemoryMB = float64(mi.RSS) / 1024 / 1024
	}
	if threads, err := p.NumThreadsWithContext(ctx); err == nil {
		d.NumThreads = int(threads)
	}
	if start, err := p.CreateTimeWithContext(ctx); err == nil {
		d.CreateTime = time.UnixMilli(start).Format(time.RFC3339)
	}
	if exe, err := p.ExeWithContext(ctx); err == nil {
		d.Exe = exe
	}
	if cwd, err := p.CwdWithContext(ctx); err == nil {
		d.Cwd = cwd
	}
	if cl, err := p.CmdlineSliceWithContext(ctx); err == nil && len(cl) > 0 {
		d.Cmdline = cl
	}
	d.ListeningPorts = listeningPorts(ctx, p, false)
	return d, nil
}
