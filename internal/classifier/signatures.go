package classifier

import "github.com/isabel-dlai/process-viewer/internal/models"

// signature is one classification rule: substring tokens matched
// case-insensitively against the joined command line, with the executable
// basename as a fallback. Rules are evaluated in order and the first match
// wins, so specific signatures must precede the generic ones they overlap
// with (uvicorn before the plain python http.server, "rq worker" rather
// than a bare "rq").
type signature struct {
	tokens      []string
	category    models.Category
	appName     string
	description string
}

var (
	sigStreamlit = signature{
		tokens:      []string{"streamlit"},
		category:    models.CategoryWebFramework,
		appName:     "Streamlit",
		description: "Streamlit - Python data app framework",
	}
	sigGradio = signature{
		tokens:      []string{"gradio"},
		category:    models.CategoryWebFramework,
		appName:     "Gradio",
		description: "Gradio - ML demo framework",
	}
)

// cmdlineSignatures is the ordered rule table for command-line matching.
var cmdlineSignatures = []signature{
	sigStreamlit,
	sigGradio,
	{
		tokens:      []string{"manage.py"},
		category:    models.CategoryWebFramework,
		appName:     "Django",
		description: "Django Dev Server - Python web framework",
	},
	{
		tokens:      []string{"uvicorn"},
		category:    models.CategoryWebFramework,
		appName:     "Uvicorn",
		description: "Uvicorn - ASGI web server",
	},
	{
		tokens:      []string{"gunicorn"},
		category:    models.CategoryWebFramework,
		appName:     "Gunicorn",
		description: "Gunicorn - Python WSGI server",
	},
	{
		tokens:      []string{"fastapi"},
		category:    models.CategoryWebFramework,
		appName:     "FastAPI",
		description: "FastAPI - Python API framework",
	},
	{
		tokens:      []string{"django"},
		category:    models.CategoryWebFramework,
		appName:     "Django",
		description: "Django Dev Server - Python web framework",
	},
	{
		tokens:      []string{"flask"},
		category:    models.CategoryWebFramework,
		appName:     "Flask",
		description: "Flask Dev Server - Python micro framework",
	},
	{
		tokens:      []string{"rails"},
		category:    models.CategoryWebFramework,
		appName:     "Rails",
		description: "Rails Server - Ruby web framework",
	},
	{
		tokens:      []string{"next dev", "next-server", "next start", ".bin/next"},
		category:    models.CategoryWebFramework,
		appName:     "Next.js",
		description: "Next.js Dev Server - React framework",
	},
	{
		tokens:      []string{"vite"},
		category:    models.CategoryBundler,
		appName:     "Vite",
		description: "Vite Dev Server - Fast frontend build tool",
	},
	{
		tokens:      []string{"webpack"},
		category:    models.CategoryBundler,
		appName:     "Webpack",
		description: "Webpack Dev Server - JavaScript bundler",
	},
	{
		tokens:      []string{"esbuild"},
		category:    models.CategoryBundler,
		appName:     "esbuild",
		description: "esbuild - JavaScript bundler",
	},
	{
		tokens:      []string{"nodemon"},
		category:    models.CategoryWatcher,
		appName:     "Nodemon",
		description: "Nodemon - Node.js auto-restart tool",
	},
	{
		tokens:      []string{"celery"},
		category:    models.CategoryWorker,
		appName:     "Celery",
		description: "Celery - Distributed task queue",
	},
	{
		tokens:      []string{"rq worker"},
		category:    models.CategoryWorker,
		appName:     "RQ",
		description: "RQ - Redis task queue worker",
	},
	{
		tokens:      []string{"huey"},
		category:    models.CategoryWorker,
		appName:     "Huey",
		description: "Huey - Lightweight task queue",
	},
	{
		tokens:      []string{"docker"},
		category:    models.CategoryContainer,
		appName:     "Docker",
		description: "Docker Container Platform",
	},
	{
		tokens:      []string{"http.server"},
		category:    models.CategoryWebFramework,
		appName:     "Python HTTP Server",
		description: "Python HTTP Server - Static file serving",
	},
	// Last: the interpreter path of anything launched from a virtualenv
	// contains ".venv", so this must not shadow the rules above.
	{
		tokens:      []string{".venv", "virtualenv", "pipenv"},
		category:    models.CategoryVirtualEnv,
		appName:     "Python",
		description: "Virtual Environment - Isolated Python interpreter",
	},
}

// packageManagerExes matches package-manager shims by exact executable
// basename. Substring matching is unsafe here ("uv" sits inside "uvicorn").
var packageManagerExes = map[string]signature{
	"npm": {
		category:    models.CategoryPackageManager,
		appName:     "NPM",
		description: "NPM - Node.js package manager",
	},
	"yarn": {
		category:    models.CategoryPackageManager,
		appName:     "Yarn",
		description: "Yarn - JavaScript package manager",
	},
	"pnpm": {
		category:    models.CategoryPackageManager,
		appName:     "PNPM",
		description: "PNPM - Fast, disk space efficient package manager",
	},
	"uv": {
		category:    models.CategoryPackageManager,
		appName:     "UV",
		description: "UV Package Manager - Fast Python package installer",
	},
	"pip": {
		category:    models.CategoryPackageManager,
		appName:     "Pip",
		description: "Pip - Python package installer",
	},
	"pip3": {
		category:    models.CategoryPackageManager,
		appName:     "Pip",
		description: "Pip - Python package installer",
	},
	"poetry": {
		category:    models.CategoryPackageManager,
		appName:     "Poetry",
		description: "Poetry - Python dependency manager",
	},
}

// editorExes are IDE and editor executables excluded from candidacy, by
// exact lowercased basename.
var editorExes = map[string]bool{
	"code":         true,
	"code-helper":  true,
	"vscode":       true,
	"vim":          true,
	"nvim":         true,
	"emacs":        true,
	"sublime":      true,
	"sublime_text": true,
	"atom":         true,
}

// editorCmdTokens catch editor helper processes whose basename is not on
// the list (macOS "Code Helper (Renderer)" and friends).
var editorCmdTokens = []string{"visual studio code", "code helper", "vscode"}
