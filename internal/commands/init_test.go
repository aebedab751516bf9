package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/clubhouse/internal/commands"
	"github.com/cleared-dev/clubhouse/internal/config"
)

// runClubhouse executes the CLI in-process and returns what it printed to stdout.
func runClubhouse(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out, err := runClubhouse(t, "init", dir, "--name", "Llanrug United")
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized Llanrug United")

	for _, d := range []string{"logs", "exports", "import", filepath.Join("import", "processed")} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
	for _, f := range []string{"clubhouse.yaml", "clubhouse.db", ".gitignore", filepath.Join("import", ".gitkeep")} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "file %s should exist", f)
	}
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runClubhouse(t, "init", dir, "--name", "Llanrug United")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "Llanrug United", cfg.Club.Name)
	assert.Equal(t, "GBP", cfg.Club.Currency)
	assert.InDelta(t, 0.75, cfg.Matching.WhatsApp, 1e-9)
	assert.Equal(t, "MATCH_FEE", cfg.Fees.Category)
	assert.NotEmpty(t, cfg.Categories)
}

func TestInit_Gitignore(t *testing.T) {
	dir := t.TempDir()
	_, err := runClubhouse(t, "init", dir, "--name", "Llanrug United")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	for _, pattern := range []string{"clubhouse.db", "exports/", ".env"} {
		assert.Contains(t, string(data), pattern)
	}
}

func TestInit_UsesDirFlag(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "club")
	_, err := runClubhouse(t, "init", "--dir", dir, "--name", "Llanrug United")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, config.FileName))
	assert.NoError(t, err)
}

func TestInit_RequiresName(t *testing.T) {
	_, err := runClubhouse(t, "init", t.TempDir())
	require.Error(t, err, "init without --name should fail")
}

func TestInit_RefusesExistingClub(t *testing.T) {
	dir := t.TempDir()
	_, err := runClubhouse(t, "init", dir, "--name", "Llanrug United")
	require.NoError(t, err)

	_, err = runClubhouse(t, "init", dir, "--name", "Other")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestCommands_RequireInit(t *testing.T) {
	_, err := runClubhouse(t, "players", "list", "--dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run init first")
}
