package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isabel-dlai/process-viewer/internal/models"
)

func TestDetectorSameDirectoryRules(t *testing.T) {
	const cwd = "/Users/alice/projects/shop"
	population := []models.RawProcess{
		{PID: 100, Name: "node", Cmdline: []string{"node", "server.js"}, Cwd: cwd, ListeningPorts: []int{3000}},
		{PID: 101, Name: "npm", Exe: "/usr/local/bin/npm", Cmdline: []string{"npm", "run", "dev", "--workspace", "web"}, Cwd: cwd},
		{PID: 102, Name: "python3", Cmdline: []string{"/Users/alice/projects/shop/.venv/bin/python"}, Cwd: cwd},
		{PID: 103, Name: "node", Cmdline: []string{"node", "/x/.bin/vite"}, Cwd: cwd},
		{PID: 104, Name: "node", Cmdline: []string{"node", "/x/.bin/nodemon", "server.js"}, Cwd: cwd},
		{PID: 105, Name: "celery", Cmdline: []string{"celery", "-A", "shop", "worker"}, Cwd: cwd},
		{PID: 106, Name: "npm", Exe: "/usr/local/bin/npm", Cmdline: []string{"npm", "run", "dev"}, Cwd: "/Users/alice/projects/other"},
		{PID: 107, Name: "bash", Cmdline: []string{"bash"}, Cwd: cwd},
	}
	primary := Classify(population[0])

	d := NewDetector(population)
	refs := d.Related(&primary)
	require.Len(t, refs, 5)

	byPID := map[int]models.RelatedProcess{}
	for _, r := range refs {
		byPID[r.PID] = r
	}
	assert.Equal(t, models.RelationPackageManager, byPID[101].Type)
	assert.Equal(t, models.RelationVirtualEnv, byPID[102].Type)
	assert.Equal(t, models.RelationBundler, byPID[103].Type)
	assert.Equal(t, models.RelationAutoRestart, byPID[104].Type)
	assert.Equal(t, models.RelationWorker, byPID[105].Type)

	assert.NotContains(t, byPID, 106, "other directory must not match")
	assert.NotContains(t, byPID, 107, "plain shell must not match")
	assert.NotContains(t, byPID, 100, "primary must not reference itself")

	assert.Equal(t, []string{"npm", "run", "dev"}, byPID[101].Cmdline, "cmdline is truncated to three args")
}

func TestDetectorChildWorkers(t *testing.T) {
	population := []models.RawProcess{
		{PID: 200, Name: "gunicorn", Cmdline: []string{"gunicorn", "app:app"}, Cwd: "/srv/api", ListeningPorts: []int{8000}},
		{PID: 201, ParentPID: 200, Name: "gunicorn", Cmdline: []string{"gunicorn", "app:app"}},
		{PID: 202, ParentPID: 200, Name: "gunicorn", Cmdline: []string{"gunicorn", "app:app"}},
		{PID: 203, ParentPID: 1, Name: "gunicorn", Cmdline: []string{"gunicorn", "other:app"}},
	}
	primary := Classify(population[0])

	refs := NewDetector(population).Related(&primary)
	require.Len(t, refs, 2)
	for _, r := range refs {
		assert.Equal(t, models.RelationWorker, r.Type)
	}
	pids := []int{refs[0].PID, refs[1].PID}
	assert.ElementsMatch(t, []int{201, 202}, pids)
}

func TestDetectorNoCwdPrimary(t *testing.T) {
	population := []models.RawProcess{
		{PID: 300, Name: "python3", Cmdline: []string{"python3", "-m", "uvicorn", "api:app"}, ListeningPorts: []int{8000}},
		{PID: 301, ParentPID: 300, Name: "python3", Cmdline: []string{"python3", "-m", "uvicorn", "api:app"}},
		{PID: 302, Name: "npm", Exe: "/usr/local/bin/npm", Cmdline: []string{"npm", "run", "dev"}, Cwd: "/Users/alice/api"},
	}
	primary := Classify(population[0])

	refs := NewDetector(population).Related(&primary)
	require.Len(t, refs, 1, "directory rules must not fire without a cwd")
	assert.Equal(t, 301, refs[0].PID)
	assert.Equal(t, models.RelationWorker, refs[0].Type)
}
