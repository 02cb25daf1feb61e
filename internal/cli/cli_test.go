package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trainer/internal/service"
)

// setupHome points the config and database at a fresh directory
func setupHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TRAINER_STRAVA_CLIENT_ID", "")
	t.Setenv("TRAINER_STRAVA_CLIENT_SECRET", "")
	return home
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func addRun(t *testing.T, date, duration string) string {
	t.Helper()
	out, err := execute(t, "add", "--date", date, "--type", "easy", "--distance", "10", "--duration", duration, "--hr", "150")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "Added "), out)
	return strings.TrimSpace(strings.TrimPrefix(out, "Added "))
}

func TestAddListDelete(t *testing.T) {
	setupHome(t)

	first := addRun(t, "2024-03-04", "55:00")
	second := addRun(t, "2024-03-11", "54:00")

	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, first)
	assert.Contains(t, out, second)
	assert.Contains(t, out, "5:30 /km")
	assert.Less(t, strings.Index(out, second), strings.Index(out, first), "newest first")

	out, err = execute(t, "delete", first)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted "+first)

	out, err = execute(t, "list")
	require.NoError(t, err)
	assert.NotContains(t, out, first)
	assert.Contains(t, out, second)
}

func TestAdd_Invalid(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "add", "--date", "2024-03-04", "--distance", "10")
	assert.ErrorIs(t, err, service.ErrInvalidWorkout)
}

func TestDelete_NotFound(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "delete", "missing")
	assert.Error(t, err)
}

func TestList_Empty(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No workouts logged.")
}

func TestAnalyze(t *testing.T) {
	setupHome(t)
	addRun(t, "2024-03-04", "55:00")
	addRun(t, "2024-03-11", "54:00")
	addRun(t, "2024-03-18", "53:00")

	out, err := execute(t, "analyze", "--json", "--as-of", "2024-03-20")
	require.NoError(t, err)

	var d service.Dashboard
	require.NoError(t, json.Unmarshal([]byte(out), &d))
	assert.Equal(t, 3, d.WorkoutCount)
	require.NotNil(t, d.Report)
	assert.Equal(t, 3, d.Report.SampleCount)
	assert.NotNil(t, d.Report.TrainingLoad)

	out, err = execute(t, "analyze", "--as-of", "2024-03-20")
	require.NoError(t, err)
	assert.Contains(t, out, "Analysis as of 2024-03-20 (3 workouts)")
	assert.Contains(t, out, "Fitness:")
}

func TestAnalyze_Empty(t *testing.T) {
	setupHome(t)

	out, err := execute(t, "analyze")
	require.NoError(t, err)
	assert.Contains(t, out, "No workouts logged yet.")
}

func TestAnalyze_BadDate(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "analyze", "--as-of", "20-03-2024")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	home := setupHome(t)
	addRun(t, "2024-03-04", "55:00")

	path := filepath.Join(home, "out.csv")
	out, err := execute(t, "export", "--format", "csv", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 workouts")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-03-04")
}

func TestExport_DateRange(t *testing.T) {
	home := setupHome(t)
	addRun(t, "2024-03-04", "55:00")
	addRun(t, "2024-03-11", "54:00")

	path := filepath.Join(home, "march.csv")
	out, err := execute(t, "export", "-f", "csv", "-o", path, "--from", "2024-03-10")
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 workouts")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "2024-03-04")
	assert.Contains(t, string(data), "2024-03-11")
}

func TestExport_UnknownFormat(t *testing.T) {
	home := setupHome(t)

	path := filepath.Join(home, "out.pdf")
	_, err := execute(t, "export", "--format", "pdf", "--output", path)
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestSync_RequiresStrava(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "sync")
	assert.ErrorContains(t, err, "strava.client_id")
}

func TestLogout_NotLoggedIn(t *testing.T) {
	setupHome(t)

	_, err := execute(t, "logout")
	assert.ErrorIs(t, err, errNotLoggedIn)
}
