package classifier

import (
	"strings"

	"github.com/isabel-dlai/process-viewer/internal/models"
)

// Detector finds the auxiliary processes that belong to a primary
// application: package-manager shims, virtual-env interpreters, bundlers,
// auto-restart watchers and worker pools. Both indexes are built once per
// cycle so per-primary lookups stay O(matches) instead of O(population).
type Detector struct {
	byCwd    map[string][]models.RawProcess
	byParent map[int][]models.RawProcess
}

// NewDetector indexes the population by working directory and by parent
// process. Processes with an unreadable working directory are only
// reachable through the parent index.
func NewDetector(population []models.RawProcess) *Detector {
	d := &Detector{
		byCwd:    make(map[string][]models.RawProcess),
		byParent: make(map[int][]models.RawProcess),
	}
	for _, p := range population {
		if p.Cwd != "" {
			d.byCwd[p.Cwd] = append(d.byCwd[p.Cwd], p)
		}
		d.byParent[p.ParentPID] = append(d.byParent[p.ParentPID], p)
	}
	return d
}

// Related returns the auxiliary processes belonging to primary. Child
// rules run before directory rules so a worker spawned by the primary is
// labeled as a worker even when it would also match a directory rule.
func (d *Detector) Related(primary *models.ClassifiedProcess) []models.RelatedProcess {
	var out []models.RelatedProcess
	seen := map[int]bool{primary.PID: true}

	for _, p := range d.byParent[primary.PID] {
		if seen[p.PID] {
			continue
		}
		joined := joinedCmdline(p.Cmdline)
		if containsAny(joined, "gunicorn", "uvicorn", "celery", "rq worker", "huey") {
			seen[p.PID] = true
			out = append(out, relatedRef(p, models.RelationWorker))
		}
	}

	if primary.Cwd == "" {
		return out
	}
	for _, p := range d.byCwd[primary.Cwd] {
		if seen[p.PID] {
			continue
		}
		rel, ok := relationFor(p)
		if !ok {
			continue
		}
		seen[p.PID] = true
		out = append(out, relatedRef(p, rel))
	}
	return out
}

// relationFor applies the same-directory auxiliary rules. Package managers
// are matched by exact executable basename, everything else by command-line
// substring.
func relationFor(p models.RawProcess) (models.Relation, bool) {
	if _, ok := packageManagerExes[exeBase(p)]; ok {
		return models.RelationPackageManager, true
	}
	joined := joinedCmdline(p.Cmdline)
	switch {
	case containsAny(joined, ".venv", "virtualenv", "pipenv"):
		return models.RelationVirtualEnv, true
	case containsAny(joined, "vite", "webpack", "esbuild"):
		return models.RelationBundler, true
	case strings.Contains(joined, "nodemon"):
		return models.RelationAutoRestart, true
	case containsAny(joined, "celery", "rq worker", "huey"):
		return models.RelationWorker, true
	}
	return "", false
}

// relatedRef projects a raw process into the bundled-process shape,
// truncating the command line to its first three arguments.
func relatedRef(p models.RawProcess, rel models.Relation) models.RelatedProcess {
	cmd := p.Cmdline
	if len(cmd) > 3 {
		cmd = cmd[:3]
	}
	return models.RelatedProcess{
		PID:        p.PID,
		Name:       p.Name,
		Type:       rel,
		CPUPercent: p.CPUPercent,
		MemoryMB:   p.MemoryMB,
		Cmdline:    cmd,
		Ports:      p.ListeningPorts,
	}
}

func containsAny(s string, tokens ...string) bool {
	for _, tok := range tokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
