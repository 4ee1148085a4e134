package workout

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCLI(t *testing.T, packages []Package) (*CLI, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCLI(&out, logger, newTestService(t), packages, ":0"), &out
}

func TestCLIShowSamples(t *testing.T) {
	cli, out := newTestCLI(t, SamplePackages())

	require.NoError(t, cli.Run(nil))

	want := "Workout type: Swimming; Duration: 1.000 h; Distance: 0.468 km; Avg speed: 1.000 km/h; Calories burned: 336.000.\n" +
		"Workout type: Running; Duration: 1.000 h; Distance: 9.750 km; Avg speed: 9.750 km/h; Calories burned: 699.750.\n" +
		"Workout type: SportsWalking; Duration: 1.000 h; Distance: 5.850 km; Avg speed: 5.850 km/h; Calories burned: 157.500.\n"
	assert.Equal(t, want, out.String())
}

func TestCLIShowStopsAtUnsupportedCode(t *testing.T) {
	cli, out := newTestCLI(t, []Package{
		{Code: CodeRunning, Data: []float64{15000, 1, 75}},
		{Code: "XYZ", Data: []float64{1, 1, 1}},
		{Code: CodeWalking, Data: []float64{9000, 1, 75, 180}},
	})

	err := cli.Run([]string{"show"})
	assert.ErrorIs(t, err, ErrUnsupportedWorkoutType)
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
}

func TestCLIAddAndHistory(t *testing.T) {
	cli, out := newTestCLI(t, nil)

	require.NoError(t, cli.Run([]string{"add", "--code", "WLK", "--data", "9000, 1, 75, 180"}))
	assert.Contains(t, out.String(), "Calories burned: 157.500.")

	out.Reset()
	require.NoError(t, cli.Run([]string{"history"}))
	assert.Contains(t, out.String(), "Workout type: SportsWalking;")
}

func TestCLIAddErrors(t *testing.T) {
	cli, _ := newTestCLI(t, nil)

	assert.Error(t, cli.Run([]string{"add", "--code", "RUN"}))
	assert.Error(t, cli.Run([]string{"add", "--code", "RUN", "--data", "1,x,3"}))
	assert.ErrorIs(t, cli.Run([]string{"add", "--code", "XYZ", "--data", "1,1,1"}), ErrUnsupportedWorkoutType)
	assert.ErrorIs(t, cli.Run([]string{"add", "--code", "wlk", "--data", "9000,1,75,180"}), ErrUnsupportedWorkoutType)
	assert.NoError(t, cli.Run([]string{"add", "--help"}))
}

func TestCLIImportGPX(t *testing.T) {
	cli, out := newTestCLI(t, nil)
	path := filepath.Join(t.TempDir(), "run.gpx")
	require.NoError(t, os.WriteFile(path, []byte(testGPX), 0644))

	require.NoError(t, cli.Run([]string{"gpx", "--file", path, "--weight", "75"}))
	require.NoError(t, cli.Run([]string{"gpx", "--file", path, "--weight", "75"}))
	assert.Contains(t, out.String(), "Workout type: Running;")

	workouts, err := cli.service.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, workouts, 1)

	assert.Error(t, cli.Run([]string{"gpx", "--weight", "75"}))
	assert.ErrorIs(t, cli.Run([]string{"gpx", "--code", "run", "--file", path, "--weight", "75"}), ErrUnsupportedWorkoutType)
}

func TestCLIShowWithoutStore(t *testing.T) {
	var out bytes.Buffer
	cli := NewCLI(&out, slog.New(slog.NewTextHandler(io.Discard, nil)), nil, SamplePackages(), ":0")

	require.NoError(t, cli.Run(nil))
	assert.Equal(t, 3, strings.Count(out.String(), "\n"))

	out.Reset()
	require.NoError(t, cli.Run([]string{"show"}))
	assert.Equal(t, 3, strings.Count(out.String(), "\n"))
}

func TestCLIStoreCommandsWithoutStore(t *testing.T) {
	cli := NewCLI(io.Discard, slog.New(slog.NewTextHandler(io.Discard, nil)), nil, nil, ":0")

	assert.ErrorIs(t, cli.Run([]string{"add", "--code", "RUN", "--data", "15000,1,75"}), errNoStore)
	assert.ErrorIs(t, cli.Run([]string{"history"}), errNoStore)
	assert.ErrorIs(t, cli.Run([]string{"api"}), errNoStore)
}

func TestNeedsStore(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{nil, false},
		{[]string{"show"}, false},
		{[]string{"nope"}, false},
		{[]string{"add", "--code", "RUN"}, true},
		{[]string{"gpx"}, true},
		{[]string{"history"}, true},
		{[]string{"api"}, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NeedsStore(tt.args), "%v", tt.args)
	}
}

func TestCLIUnknownCommandPrintsUsage(t *testing.T) {
	cli, out := newTestCLI(t, nil)

	require.NoError(t, cli.Run([]string{"nope"}))
	assert.True(t, strings.HasPrefix(out.String(), "Usage: ftracker"))
}

func TestParseReadings(t *testing.T) {
	got, err := parseReadings("720, 1,80,25 ,40")
	require.NoError(t, err)
	assert.Equal(t, []float64{720, 1, 80, 25, 40}, got)

	_, err = parseReadings(" ")
	assert.Error(t, err)
}
