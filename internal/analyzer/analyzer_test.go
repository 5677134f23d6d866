package analyzer

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/penwyp/go-nfc-checklist/internal/config"
	"github.com/penwyp/go-nfc-checklist/internal/core/checklist"
	"github.com/penwyp/go-nfc-checklist/internal/testing/fixtures"
	"github.com/penwyp/go-nfc-checklist/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detections = "season,year,detector,species,date,recording_start,recording_length,real_detection_time\n" +
	"Fall,2020,Tseep,wiwa,09/07/20,23:30:00,3:00:00,09/07/20 23:45:10\n" +
	"Fall,2020,Tseep,,09/07/20,23:30:00,3:00:00,09/08/20 00:12:00\n" +
	"Fall,2020,Tseep,wiwa,09/07/20,23:30:00,3:00:00,09/08/20 00:40:00\n" +
	"Fall,2020,Tseep,nowa,09/07/20,23:30:00,3:00:00,09/08/20 02:10:00\n" +
	",,,,,,,\n"

func init() {
	color.NoColor = true
	util.InitializeTimeProvider("UTC")
}

func writeInput(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "detections.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAnalyzer_RunConsole(t *testing.T) {
	input := writeInput(t, t.TempDir(), detections)

	var out bytes.Buffer
	a, err := New(&Config{InputFile: input}, &out, &bytes.Buffer{})
	require.NoError(t, err)

	list, err := a.Run()
	require.NoError(t, err)
	require.NotNil(t, list)

	report := out.String()
	assert.Contains(t, report, "Date: 09/07/20\nHour: 23:30\nDuration: 30 mins.\nWIWA:\t 1\n")
	assert.Contains(t, report, "Date: 09/08/20\nHour: 0:00\nDuration: 60 mins.\nTseeps:\t 1\nWIWA:\t 1\n")
	assert.Contains(t, report, "Hour: 2:00\nDuration: 30 mins.\nNOWA:\t 1\n")
	assert.NotContains(t, report, "Hour: 1:00", "empty hours are not printed")

	runs, detected, assigned, buckets, hours, exported := a.Stats().GetStats()
	assert.Equal(t, int64(1), runs)
	assert.Equal(t, int64(4), detected)
	assert.Equal(t, int64(4), assigned)
	assert.Equal(t, int64(4), buckets)
	assert.Equal(t, int64(3), hours)
	assert.Zero(t, exported)
}

func TestAnalyzer_MultipleNights(t *testing.T) {
	input := filepath.Join(t.TempDir(), "detections.csv")
	first := time.Date(2020, 9, 7, 20, 0, 0, 0, time.UTC)
	second := time.Date(2020, 9, 8, 20, 0, 0, 0, time.UTC)
	require.NoError(t, fixtures.WriteDetections(input,
		fixtures.Night{
			Start: first, Length: 10 * time.Hour, Detector: "Tseep",
			Calls: []fixtures.Call{{At: first.Add(9*time.Hour + 30*time.Minute), Species: "wiwa"}},
		},
		fixtures.Night{
			Start: second, Length: 10 * time.Hour, Detector: "Thrush",
			Calls: []fixtures.Call{{At: second.Add(10 * time.Minute), Species: "swth"}},
		},
	))

	var out bytes.Buffer
	a, err := New(&Config{InputFile: input}, &out, nil)
	require.NoError(t, err)
	list, err := a.Run()
	require.NoError(t, err)

	assert.Equal(t, 22, list.Buckets.Len())
	assert.Equal(t, "\n"+
		"Date: 09/08/20\n"+
		"Hour: 5:00\n"+
		"Duration: 60 mins.\n"+
		"WIWA:\t 1\n"+
		"\n"+
		"Hour: 20:00\n"+
		"Duration: 60 mins.\n"+
		"SWTH:\t 1\n"+
		"\n", out.String())
}

func TestAnalyzer_RunWithFilter(t *testing.T) {
	input := writeInput(t, t.TempDir(), detections)
	filter, err := checklist.NewTimeFilter(
		time.Date(2020, 9, 8, 0, 30, 0, 0, time.UTC),
		time.Date(2020, 9, 8, 2, 30, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	var out bytes.Buffer
	a, err := New(&Config{InputFile: input, Filter: filter, OutputFormat: "json"}, &out, nil)
	require.NoError(t, err)

	_, err = a.Run()
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"hour": "0:00:00"`)
	assert.Contains(t, out.String(), `"duration": 30`)
	assert.NotContains(t, out.String(), `"23:30:00"`)
	assert.Equal(t, int64(2), a.Stats().Filtered())
}

func TestAnalyzer_RunExport(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, detections)
	codes := filepath.Join(dir, "codes.csv")
	require.NoError(t, os.WriteFile(codes, []byte("Code,Species\nWIWA,Wilson's Warbler\n"), 0644))

	settings := config.Default()
	settings.CodesFile = codes
	settings.CommentsFile = filepath.Join(dir, "missing.json")
	exportPath := filepath.Join(dir, "export.csv")

	var out, warn bytes.Buffer
	a, err := New(&Config{
		InputFile:  input,
		Export:     true,
		ExportFile: exportPath,
		Settings:   settings,
	}, &out, &warn)
	require.NoError(t, err)

	_, err = a.Run()
	require.NoError(t, err)

	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Wilson's Warbler,,,1,"))
	assert.True(t, strings.HasPrefix(lines[1], "passerine sp.,,,1,"))
	assert.Contains(t, warn.String(), "NOWA:\t 1")

	_, _, _, _, _, exported := a.Stats().GetStats()
	assert.Equal(t, int64(4), exported)
}

func TestAnalyzer_Errors(t *testing.T) {
	t.Run("unknown output format", func(t *testing.T) {
		_, err := New(&Config{InputFile: "x.csv", OutputFormat: "xml"}, nil, nil)
		assert.Error(t, err)
	})

	t.Run("missing input", func(t *testing.T) {
		a, err := New(&Config{InputFile: filepath.Join(t.TempDir(), "none.csv")}, &bytes.Buffer{}, nil)
		require.NoError(t, err)
		_, err = a.Run()
		assert.Error(t, err)
	})

	t.Run("orphan detection", func(t *testing.T) {
		input := writeInput(t, t.TempDir(), "season,year,detector,species,date,recording_start,recording_length,real_detection_time\n"+
			"Fall,2020,Tseep,wiwa,09/07/20,23:30:00,1:00:00,09/09/20 05:00:00\n")
		a, err := New(&Config{InputFile: input}, &bytes.Buffer{}, nil)
		require.NoError(t, err)
		_, err = a.Run()
		require.Error(t, err)
		assert.ErrorIs(t, err, checklist.ErrOrphanEvent)
	})

	t.Run("missing codes table", func(t *testing.T) {
		dir := t.TempDir()
		input := writeInput(t, dir, detections)
		settings := config.Default()
		settings.CodesFile = filepath.Join(dir, "absent.csv")
		a, err := New(&Config{InputFile: input, Export: true, ExportFile: filepath.Join(dir, "e.csv"), Settings: settings},
			&bytes.Buffer{}, &bytes.Buffer{})
		require.NoError(t, err)
		_, err = a.Run()
		assert.Error(t, err)
	})
}

func TestRunStats(t *testing.T) {
	rs := NewRunStats()
	rs.Record(10, 7, 5, 3)
	rs.Record(2, 2, 1, 1)
	rs.RecordExport(6)

	runs, detected, assigned, buckets, hours, exported := rs.GetStats()
	assert.Equal(t, int64(2), runs)
	assert.Equal(t, int64(12), detected)
	assert.Equal(t, int64(9), assigned)
	assert.Equal(t, int64(6), buckets)
	assert.Equal(t, int64(4), hours)
	assert.Equal(t, int64(6), exported)
	assert.Equal(t, int64(3), rs.Filtered())

	rs.PrintFinalStats()
}
