package classifier

import (
	"path/filepath"
	"strings"
	"unicode"

	"github.com/isabel-dlai/process-viewer/internal/models"
)

// Classify assigns a category, display name, description and candidacy to a
// single raw process. It is a pure function of its argument; cross-process
// reasoning happens later in the grouping engine.
//
// A process is a candidate when it matches a framework signature or holds at
// least one interesting listening port. Editors and git are never candidates,
// though later stages may still pick them up as auxiliary tooling.
func Classify(raw models.RawProcess) models.ClassifiedProcess {
	cp := models.ClassifiedProcess{
		RawProcess:  raw,
		Category:    models.CategoryUnknown,
		AppName:     raw.Name,
		Description: raw.Name,
	}

	if isEditorOrVCS(raw) {
		return cp
	}

	if sig, ok := matchSignature(raw); ok {
		cp.Category = sig.category
		cp.AppName = DisplayName(raw.Cwd, sig.appName, raw.Name)
		cp.Description = sig.description
		cp.IsCandidate = true
		return cp
	}

	if len(InterestingPorts(raw.ListeningPorts)) > 0 {
		cp.Category = models.CategoryWebFramework
		cp.AppName = DisplayName(raw.Cwd, "", raw.Name)
		cp.Description = "Development Web Server"
		cp.IsCandidate = true
		return cp
	}

	return cp
}

// matchSignature runs the rule table: command line first, executable
// basename second, framework-pinned ports as the final tie-breaker.
func matchSignature(raw models.RawProcess) (signature, bool) {
	joined := joinedCmdline(raw.Cmdline)
	if joined != "" {
		for _, sig := range cmdlineSignatures {
			if sig.matches(joined) {
				return sig, true
			}
		}
	}

	base := exeBase(raw)
	if sig, ok := packageManagerExes[base]; ok {
		return sig, true
	}
	if base != "" {
		for _, sig := range cmdlineSignatures {
			if sig.matches(base) {
				return sig, true
			}
		}
	}

	if hasPortIn(raw.ListeningPorts, streamlitPorts) {
		return sigStreamlit, true
	}
	if hasPortIn(raw.ListeningPorts, gradioPorts) {
		return sigGradio, true
	}

	return signature{}, false
}

func (s signature) matches(text string) bool {
	for _, tok := range s.tokens {
		if strings.Contains(text, tok) {
			return true
		}
	}
	return false
}

func isEditorOrVCS(raw models.RawProcess) bool {
	name := strings.ToLower(raw.Name)
	base := exeBase(raw)
	if editorExes[name] || editorExes[base] {
		return true
	}
	if name == "git" || base == "git" {
		return true
	}
	joined := joinedCmdline(raw.Cmdline)
	for _, tok := range editorCmdTokens {
		if strings.Contains(joined, tok) {
			return true
		}
	}
	return false
}

func joinedCmdline(cmdline []string) string {
	return strings.ToLower(strings.Join(cmdline, " "))
}

func exeBase(raw models.RawProcess) string {
	if raw.Exe != "" {
		return strings.ToLower(filepath.Base(raw.Exe))
	}
	return strings.ToLower(raw.Name)
}

// IsNotableSystemProcess reports whether a non-candidate process is still
// worth listing in the expanded view (databases, container daemons).
func IsNotableSystemProcess(name string) bool {
	n := strings.ToLower(name)
	for _, tok := range notableSystemTokens {
		if strings.Contains(n, tok) {
			return true
		}
	}
	return false
}

var notableSystemTokens = []string{"docker", "postgres", "mysql", "redis", "mongo", "elastic"}

// DisplayName derives a card title from the working directory's trailing
// path segment: "drawing-tutor" becomes "Drawing Tutor", "myApp" becomes
// "My App". framework and exe are fallbacks for processes with no usable
// working directory.
func DisplayName(cwd, framework, exe string) string {
	if name := prettifySegment(trailingSegment(cwd)); name != "" {
		return name
	}
	if framework != "" {
		return framework
	}
	return exe
}

// trailingSegment returns the last non-empty path segment of cwd, so a
// trailing slash does not produce an empty name.
func trailingSegment(cwd string) string {
	parts := strings.Split(cwd, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

func prettifySegment(seg string) string {
	seg = strings.ReplaceAll(seg, "-", " ")
	seg = strings.ReplaceAll(seg, "_", " ")
	seg = splitCamel(seg)
	words := strings.Fields(seg)
	for i, w := range words {
		words[i] = upperFirst(w)
	}
	return strings.Join(words, " ")
}

// splitCamel inserts a space before each upper-case rune that follows a
// lower-case rune or digit.
func splitCamel(s string) string {
	var b strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) && (unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
