package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"
	"github.com/vvaidy/spotify-track-info/internal/models"
	"github.com/vvaidy/spotify-track-info/internal/services"
	"github.com/vvaidy/spotify-track-info/internal/shared"
	tu "github.com/vvaidy/spotify-track-info/internal/testing"
	"github.com/vvaidy/spotify-track-info/internal/ui"
)

func TestNewRunner(t *testing.T) {
	t.Run("applies defaults for zero options", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})

		if runner.config == nil {
			t.Error("expected default config")
		}
		if runner.logger == nil {
			t.Error("expected default logger")
		}
		if runner.output != os.Stdout {
			t.Error("expected stdout output")
		}
		if runner.palette != ui.DefaultPalette {
			t.Error("expected default palette")
		}
		if runner.engine == nil {
			t.Error("expected engine to be constructed")
		}
	})

	t.Run("wires provided options", func(t *testing.T) {
		config := shared.DefaultConfig()
		catalog := &tu.MockCatalog{}
		logger := shared.NewLogger(io.Discard)
		var buf bytes.Buffer

		runner := NewRunner(RunnerOpts{Config: config, Catalog: catalog, Logger: logger, Output: &buf})

		if runner.config != config {
			t.Error("expected provided config")
		}
		if runner.catalog != catalog {
			t.Error("expected provided catalog")
		}
		if runner.logger != logger {
			t.Error("expected provided logger")
		}
		if runner.output != &buf {
			t.Error("expected provided output")
		}
	})

	t.Run("registers the command set", func(t *testing.T) {
		commands := NewRunner(RunnerOpts{}).register()
		if len(commands) != 2 {
			t.Fatalf("expected 2 commands, got %d", len(commands))
		}
		if commands[0].Name != "fetch" || commands[1].Name != "config" {
			t.Errorf("unexpected command names: %s, %s", commands[0].Name, commands[1].Name)
		}
	})
}

func TestWriteHelpers(t *testing.T) {
	t.Run("writeJSON", func(t *testing.T) {
		var buf bytes.Buffer
		runner := NewRunner(RunnerOpts{Output: &buf, Logger: shared.NewLogger(io.Discard)})

		if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if got := buf.String(); got != "{\"key\":\"value\"}\n" {
			t.Errorf("unexpected output: %q", got)
		}

		buf.Reset()
		if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if !strings.Contains(buf.String(), "  \"key\"") {
			t.Errorf("expected indented output, got %q", buf.String())
		}
	})

	t.Run("writeJSON surfaces writer errors", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}, Logger: shared.NewLogger(io.Discard)})
		if err := runner.writeJSON(map[string]string{}, false); err == nil {
			t.Error("expected error from failing writer")
		}
	})

	t.Run("writePlain formats into the output", func(t *testing.T) {
		var buf bytes.Buffer
		runner := NewRunner(RunnerOpts{Output: &buf, Logger: shared.NewLogger(io.Discard)})

		if err := runner.writePlain("%d tracks", 3); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		if buf.String() != "3 tracks" {
			t.Errorf("unexpected output: %q", buf.String())
		}
	})
}

// testApp builds a CLI app around a runner wired with the given catalog,
// capturing plain output in the returned buffer.
func testApp(catalog services.Catalog) (*cli.Command, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Catalog: catalog,
		Logger:  shared.NewLogger(io.Discard),
		Output:  buf,
	})
	return &cli.Command{Name: "spotify-track-info", Commands: runner.register()}, buf
}

func readDocument(t *testing.T, path string) *models.ResultSet {
	t.Helper()
	var rs models.ResultSet
	if err := json.Unmarshal([]byte(tu.MustReadFile(t, path)), &rs); err != nil {
		t.Fatalf("Failed to decode output document %s: %v", path, err)
	}
	return &rs
}

func TestFetchCommand(t *testing.T) {
	ctx := context.Background()

	wd := tu.MustGetwd(t)
	t.Cleanup(func() { tu.MustChdir(t, wd) })

	t.Run("inline identifiers write the default document", func(t *testing.T) {
		tu.MustChdir(t, t.TempDir())
		app, out := testApp(&tu.MockCatalog{})

		if err := app.Run(ctx, []string{"spotify-track-info", "fetch", "ABC,DEF"}); err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		tu.AssertFileExists(t, "trackinfo.json")
		rs := readDocument(t, "trackinfo.json")
		if rs.TrackCount != 2 {
			t.Errorf("expected track_count 2, got %d", rs.TrackCount)
		}
		if !strings.Contains(out.String(), "2 retrieved, 0 failed") {
			t.Errorf("expected summary line, got:\n%s", out.String())
		}
	})

	t.Run("file input derives the document name", func(t *testing.T) {
		tu.MustChdir(t, t.TempDir())
		if err := os.WriteFile("my_tracks.txt", []byte("ABC\n\nDEF\n"), 0644); err != nil {
			t.Fatalf("Failed to write input file: %v", err)
		}
		app, _ := testApp(&tu.MockCatalog{})

		if err := app.Run(ctx, []string{"spotify-track-info", "fetch", "my_tracks.txt"}); err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		tu.AssertFileExists(t, "my_tracks.json")
		if rs := readDocument(t, "my_tracks.json"); rs.TrackCount != 2 {
			t.Errorf("expected blank lines skipped, got track_count %d", rs.TrackCount)
		}
	})

	t.Run("identifier failures exit successfully", func(t *testing.T) {
		tu.MustChdir(t, t.TempDir())
		catalog := &tu.MockCatalog{
			TrackFn: func(ctx context.Context, trackID, market string) (*services.SpotifyTrack, error) {
				if trackID == "BAD" {
					return nil, errors.New("resource not found")
				}
				return &services.SpotifyTrack{ID: trackID}, nil
			},
		}
		app, out := testApp(catalog)

		if err := app.Run(ctx, []string{"spotify-track-info", "fetch", "ABC,BAD"}); err != nil {
			t.Fatalf("expected success despite failed identifier, got %v", err)
		}

		rs := readDocument(t, "trackinfo.json")
		if rs.TrackCount != 2 {
			t.Errorf("expected track_count 2, got %d", rs.TrackCount)
		}
		if rs.Tracks[1].Status != models.StatusFailed {
			t.Errorf("expected second entry failed, got %s", rs.Tracks[1].Status)
		}
		if !strings.Contains(out.String(), "1 retrieved, 1 failed") {
			t.Errorf("expected summary line, got:\n%s", out.String())
		}
	})

	t.Run("existing document is relocated first", func(t *testing.T) {
		tu.MustChdir(t, t.TempDir())
		if err := os.WriteFile("trackinfo.json", []byte("prior run"), 0644); err != nil {
			t.Fatalf("Failed to write file: %v", err)
		}
		app, _ := testApp(&tu.MockCatalog{})

		if err := app.Run(ctx, []string{"spotify-track-info", "fetch", "ABC"}); err != nil {
			t.Fatalf("expected success, got %v", err)
		}

		tu.AssertFileExists(t, "trackinfo_1.json")
		if content := tu.MustReadFile(t, "trackinfo_1.json"); content != "prior run" {
			t.Errorf("expected prior content preserved, got %q", content)
		}
		if rs := readDocument(t, "trackinfo.json"); rs.TrackCount != 1 {
			t.Errorf("expected fresh document, got %+v", rs)
		}
	})

	t.Run("output flag overrides the derived name", func(t *testing.T) {
		dir := t.TempDir()
		tu.MustChdir(t, dir)
		app, _ := testApp(&tu.MockCatalog{})

		target := filepath.Join(dir, "custom.json")
		if err := app.Run(ctx, []string{"spotify-track-info", "fetch", "-o", target, "ABC"}); err != nil {
			t.Fatalf("expected success, got %v", err)
		}
		tu.AssertFileExists(t, target)
	})

	t.Run("missing input argument fails", func(t *testing.T) {
		app, _ := testApp(&tu.MockCatalog{})
		err := app.Run(ctx, []string{"spotify-track-info", "fetch"})
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("missing credentials fail without a catalog", func(t *testing.T) {
		tu.MustChdir(t, t.TempDir())
		app, _ := testApp(nil)
		err := app.Run(ctx, []string{"spotify-track-info", "fetch", "ABC"})
		if !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("identifier cap is enforced before authentication", func(t *testing.T) {
		tu.MustChdir(t, t.TempDir())
		authenticated := false
		catalog := &tu.MockCatalog{
			AuthenticateFn: func(ctx context.Context) error {
				authenticated = true
				return nil
			},
		}
		app, _ := testApp(catalog)

		ids := make([]string, shared.MaxTracks+1)
		for i := range ids {
			ids[i] = fmt.Sprintf("T%d", i)
		}
		err := app.Run(ctx, []string{"spotify-track-info", "fetch", strings.Join(ids, ",")})
		if !errors.Is(err, shared.ErrTooManyTracks) {
			t.Errorf("expected ErrTooManyTracks, got %v", err)
		}
		if authenticated {
			t.Error("expected cap check to run before any network access")
		}
	})

	t.Run("authentication failure aborts the run", func(t *testing.T) {
		tu.MustChdir(t, t.TempDir())
		catalog := &tu.MockCatalog{
			AuthenticateFn: func(ctx context.Context) error {
				return shared.ErrAuthFailed
			},
		}
		app, _ := testApp(catalog)

		err := app.Run(ctx, []string{"spotify-track-info", "fetch", "ABC"})
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
		if _, statErr := os.Stat("trackinfo.json"); !os.IsNotExist(statErr) {
			t.Error("expected no document written after auth failure")
		}
	})
}

func TestConfigInitCommand(t *testing.T) {
	ctx := context.Background()

	wd := tu.MustGetwd(t)
	t.Cleanup(func() { tu.MustChdir(t, wd) })
	tu.MustChdir(t, t.TempDir())

	app, out := testApp(nil)
	if err := app.Run(ctx, []string{"spotify-track-info", "config", "init"}); err != nil {
		t.Fatalf("expected success, got %v", err)
	}

	tu.AssertFileExists(t, "config.toml")
	content := tu.MustReadFile(t, "config.toml")
	if !strings.Contains(content, "client_id") || !strings.Contains(content, "[fetch]") {
		t.Errorf("expected template content, got:\n%s", content)
	}
	if !strings.Contains(out.String(), "Config written") {
		t.Errorf("expected confirmation message, got:\n%s", out.String())
	}
}
