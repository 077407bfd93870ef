package classifier

import "github.com/isabel-dlai/process-viewer/internal/models"

// portRange is an inclusive port interval.
type portRange struct {
	lo, hi int
}

func (r portRange) contains(port int) bool {
	return port >= r.lo && port <= r.hi
}

// ephemeralPortFloor approximates the OS ephemeral range (49152-65535).
// Nothing at or above it is ever interesting.
const ephemeralPortFloor = 49000

// devPortRanges are the port bands used by common development frameworks.
var devPortRanges = []portRange{
	{3000, 3010}, // Node / React tooling
	{4000, 4010},
	{5000, 5010}, // Python web frameworks
	{7860, 7870}, // ML demo frameworks
	{8000, 8100}, // generic HTTP / ASGI serving
	{8500, 8510}, // dashboard frameworks
	{9000, 9100},
}

// commonDevPorts lists individual dev-server ports, including ones that sit
// outside every band above (Vite's 5173/5174, Angular's 4200).
var commonDevPorts = map[int]bool{
	80: true, 443: true,
	3000: true, 3001: true, 3002: true, 3003: true, 3004: true, 3005: true,
	4000: true, 4001: true, 4200: true,
	5000: true, 5001: true, 5173: true, 5174: true, 5555: true, 5556: true,
	7860: true, 7861: true,
	8000: true, 8001: true, 8080: true, 8081: true, 8501: true, 8502: true, 8503: true, 8888: true,
	9000: true, 9001: true, 9090: true,
}

// Framework-pinned sub-ranges, trusted as a classification tie-breaker when
// the command line alone cannot name the framework.
var (
	streamlitPorts = portRange{8501, 8503}
	gradioPorts    = portRange{7860, 7861}
)

// IsInterestingPort reports whether port looks like a development web server
// port rather than ephemeral or system noise. Only explicit membership in a
// band or the common-port list qualifies.
func IsInterestingPort(port int) bool {
	if port >= ephemeralPortFloor {
		return false
	}
	if commonDevPorts[port] {
		return true
	}
	for _, r := range devPortRanges {
		if r.contains(port) {
			return true
		}
	}
	return false
}

// InterestingPorts filters ports down to the interesting ones, preserving
// order.
func InterestingPorts(ports []int) []int {
	var out []int
	for _, p := range ports {
		if IsInterestingPort(p) {
			out = append(out, p)
		}
	}
	return out
}

func hasPortIn(ports []int, r portRange) bool {
	for _, p := range ports {
		if r.contains(p) {
			return true
		}
	}
	return false
}

// Fixed port sets for the frontend/backend role heuristic.
var (
	frontendRolePorts = map[int]bool{3000: true, 3001: true, 5173: true, 5174: true, 4200: true}
	backendRolePorts  = map[int]bool{8000: true, 8001: true, 5000: true, 5001: true, 4000: true, 4001: true, 8080: true}
	backendRoleRange  = portRange{8080, 8090}
)

// PortRole derives a frontend/backend/fullstack role from listening ports.
// The frontend check runs first, so a process matching both sets reads as
// frontend.
func PortRole(ports []int) string {
	for _, p := range ports {
		if frontendRolePorts[p] {
			return models.RoleFrontend
		}
	}
	for _, p := range ports {
		if backendRolePorts[p] || backendRoleRange.contains(p) {
			return models.RoleBackend
		}
	}
	return models.RoleFullstack
}
