package classifier

import (
	"strings"

	"github.com/isabel-dlai/process-viewer/internal/models"
)

// minCommonSegments is the pass-2 pairing threshold: a frontend and backend
// directory must share at least this many leading path segments before they
// are treated as two halves of one project.
const minCommonSegments = 5

// Group builds the final app list from the classified candidate set.
//
// Pass 1 consolidates same-directory multi-instance servers under a single
// primary. Pass 2 pairs frontend dev servers with backend servers living in
// sibling directories. Candidates are visited port-bearing first, then
// portless, preserving arrival order within each class, so an auxiliary shim
// (npm, venv interpreter) is consumed by the server it serves before it can
// claim a card of its own. A process identifier never appears as more than
// one group's primary, nor as both a primary and a bundled entry.
func Group(candidates []models.ClassifiedProcess, population []models.RawProcess) []models.AppGroup {
	det := NewDetector(population)

	order := make([]int, 0, len(candidates))
	for i := range candidates {
		if len(candidates[i].ListeningPorts) > 0 {
			order = append(order, i)
		}
	}
	for i := range candidates {
		if len(candidates[i].ListeningPorts) == 0 {
			order = append(order, i)
		}
	}

	bundled := make(map[int]bool)   // PIDs consumed as related entries
	primaries := make(map[int]bool) // PIDs emitted as a group's primary
	groups := make([]models.AppGroup, 0, len(candidates))

	for _, idx := range order {
		c := candidates[idx]
		if bundled[c.PID] || primaries[c.PID] {
			continue
		}

		g := models.AppGroup{
			ClassifiedProcess: c,
			Role:              PortRole(c.ListeningPorts),
			GroupID:           models.GroupID(c.PID, c.PrimaryPort()),
			Related:           []models.RelatedProcess{},
		}
		inGroup := map[int]bool{c.PID: true}
		attach := func(ref models.RelatedProcess) {
			if inGroup[ref.PID] || bundled[ref.PID] || primaries[ref.PID] {
				return
			}
			inGroup[ref.PID] = true
			bundled[ref.PID] = true
			g.Related = append(g.Related, ref)
		}

		for _, ref := range det.Related(&c) {
			attach(ref)
		}

		// Same-directory consolidation: fold every other unconsumed
		// port-bearing candidate sharing this working directory. Together
		// with the port-bearing current process, any non-empty match set
		// means more than one port-bearing process serves the directory.
		// Portless directory mates are never folded here; they surface on
		// their own iteration.
		if c.Cwd != "" && len(c.ListeningPorts) > 0 {
			for _, j := range order {
				m := candidates[j]
				if m.PID == c.PID || bundled[m.PID] || primaries[m.PID] {
					continue
				}
				if m.Cwd != c.Cwd || len(m.ListeningPorts) == 0 {
					continue
				}
				attach(relatedRef(m.RawProcess, models.RelationBackendInstance))
				for _, ref := range det.Related(&m) {
					attach(ref)
				}
			}
		}

		primaries[c.PID] = true
		groups = append(groups, g)
	}

	return pairFrontendBackend(groups)
}

// pairFrontendBackend is pass 2: each frontend group scans the backend
// groups in order and merges with the first one rooted in the same project
// tree. The backend's primary joins the frontend's bundle as a Backend
// Server and its own bundle is carried along; the backend group disappears
// from the output. A backend pairs with at most one frontend.
func pairFrontendBackend(groups []models.AppGroup) []models.AppGroup {
	removed := make(map[int]bool)
	for i := range groups {
		if groups[i].Role != models.RoleFrontend {
			continue
		}
		for j := range groups {
			if i == j || removed[j] || groups[j].Role != models.RoleBackend {
				continue
			}
			if !pairable(groups[i].Cwd, groups[j].Cwd) {
				continue
			}
			b := groups[j]
			groups[i].Related = append(groups[i].Related, relatedRef(b.RawProcess, models.RelationBackendServer))
			groups[i].Related = append(groups[i].Related, b.Related...)
			removed[j] = true
			break
		}
	}

	out := make([]models.AppGroup, 0, len(groups))
	for j := range groups {
		if !removed[j] {
			out = append(out, groups[j])
		}
	}
	return out
}

// pairable reports whether a frontend directory and a backend directory
// look like two halves of the same project: the names must carry the
// literal "frontend" and "backend" markers and the directories must share a
// deep common root.
func pairable(frontCwd, backCwd string) bool {
	if frontCwd == "" || backCwd == "" {
		return false
	}
	if !strings.Contains(strings.ToLower(frontCwd), "frontend") {
		return false
	}
	if !strings.Contains(strings.ToLower(backCwd), "backend") {
		return false
	}
	return commonSegmentCount(frontCwd, backCwd) >= minCommonSegments
}

// commonSegmentCount counts the path segments spanned by the character-wise
// common prefix of two directories. "/Users/x/proj/frontend" and
// "/Users/x/proj/backend" share "/Users/x/proj/", which splits into five
// segments counting the leading root and the trailing cut point.
func commonSegmentCount(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	if n == 0 {
		return 0
	}
	return len(strings.Split(a[:n], "/"))
}
