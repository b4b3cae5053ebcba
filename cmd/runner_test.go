package main

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/dmholland/queuectl/internal/models"
	"github.com/dmholland/queuectl/internal/shared"
	tu "github.com/dmholland/queuectl/internal/testing"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func testApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:     "queuectl",
		Commands: r.register(),
	}
}

func testPlayer() *tu.MockPlayer {
	return &tu.MockPlayer{
		TrackList: []models.TrackID{
			models.MustTrackID("/track/1"),
			models.MustTrackID("/track/2"),
		},
		Metadata: map[models.TrackID]models.Metadata{
			models.MustTrackID("/track/1"): models.Metadata{
				Title:   "Song One",
				Artists: []string{"Artist One"},
			}.WithTrackID(models.MustTrackID("/track/1")),
			models.MustTrackID("/track/2"): models.Metadata{
				Title: "Song Two",
			}.WithTrackID(models.MustTrackID("/track/2")),
		},
	}
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			player := testPlayer()

			runner := NewRunner(RunnerOpts{
				Config: config,
				Logger: logger,
				Output: output,
				Player: player,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.player != player {
				t.Error("expected player to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			if err := runner.writeJSON(data, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			if err := runner.writeJSON(data, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func TestCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("tracks prints the queue", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Player: testPlayer(), Output: output})

		if err := testApp(runner).Run(ctx, []string{"queuectl", "tracks"}); err != nil {
			t.Fatalf("tracks failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "Artist One - Song One") {
			t.Errorf("expected track listing, got: %s", result)
		}
		if !strings.Contains(result, "2 tracks") {
			t.Errorf("expected summary line, got: %s", result)
		}
	})

	t.Run("tracks with json flag", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Player: testPlayer(), Output: output})

		if err := testApp(runner).Run(ctx, []string{"queuectl", "tracks", "--json"}); err != nil {
			t.Fatalf("tracks failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, `"track_id": "/track/1"`) {
			t.Errorf("expected JSON output, got: %s", result)
		}
	})

	t.Run("missing reports anonymous answers", func(t *testing.T) {
		player := testPlayer()
		player.MetadataFunc = func(ids []models.TrackID) ([]models.Metadata, error) {
			// The player answers but never names the tracks.
			return make([]models.Metadata, len(ids)), nil
		}

		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Player: player, Output: output})

		if err := testApp(runner).Run(ctx, []string{"queuectl", "missing"}); err != nil {
			t.Fatalf("missing failed: %v", err)
		}

		result := output.String()
		if !strings.Contains(result, "2 of 2 tracks have no metadata") {
			t.Errorf("expected missing report, got: %s", result)
		}
		if !strings.Contains(result, "/track/1") {
			t.Errorf("expected missing ids listed, got: %s", result)
		}
	})

	t.Run("missing reports nothing when cache completes", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Player: testPlayer(), Output: output})

		if err := testApp(runner).Run(ctx, []string{"queuectl", "missing"}); err != nil {
			t.Fatalf("missing failed: %v", err)
		}

		if !strings.Contains(output.String(), "All 2 tracks have metadata") {
			t.Errorf("expected success line, got: %s", output.String())
		}
	})

	t.Run("export writes a file", func(t *testing.T) {
		tempDir := t.TempDir()
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Player: testPlayer(), Output: output})

		args := []string{"queuectl", "export", "--format", "csv", "--output", tempDir, "--file", "queue.csv"}
		if err := testApp(runner).Run(ctx, args); err != nil {
			t.Fatalf("export failed: %v", err)
		}

		path := filepath.Join(tempDir, "queue.csv")
		tu.AssertFileExists(t, path)

		content := tu.MustReadFile(t, path)
		if !strings.Contains(content, "Song One") {
			t.Errorf("export missing track data: %s", content)
		}
		if !strings.Contains(output.String(), "✓ Exported 2 tracks") {
			t.Errorf("expected confirmation, got: %s", output.String())
		}
	})

	t.Run("snapshot save list show delete", func(t *testing.T) {
		db := testDB(t)
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Player: testPlayer(), DB: db, Output: output})
		app := testApp(runner)

		if err := app.Run(ctx, []string{"queuectl", "snapshot", "save"}); err != nil {
			t.Fatalf("snapshot save failed: %v", err)
		}
		if !strings.Contains(output.String(), "✓ Saved snapshot #1") {
			t.Errorf("expected save confirmation, got: %s", output.String())
		}

		output.Reset()
		if err := app.Run(ctx, []string{"queuectl", "snapshot", "list"}); err != nil {
			t.Fatalf("snapshot list failed: %v", err)
		}
		if !strings.Contains(output.String(), "#1") || !strings.Contains(output.String(), "2 tracks") {
			t.Errorf("expected snapshot row, got: %s", output.String())
		}

		output.Reset()
		if err := app.Run(ctx, []string{"queuectl", "snapshot", "show", "1"}); err != nil {
			t.Fatalf("snapshot show failed: %v", err)
		}
		if !strings.Contains(output.String(), "Artist One - Song One") {
			t.Errorf("expected stored queue, got: %s", output.String())
		}

		output.Reset()
		if err := app.Run(ctx, []string{"queuectl", "snapshot", "delete", "1"}); err != nil {
			t.Fatalf("snapshot delete failed: %v", err)
		}
		if !strings.Contains(output.String(), "✓ Deleted snapshot #1") {
			t.Errorf("expected delete confirmation, got: %s", output.String())
		}

		if err := app.Run(ctx, []string{"queuectl", "snapshot", "show", "1"}); err == nil {
			t.Error("expected error showing a deleted snapshot")
		}
	})

	t.Run("snapshot show rejects a bad sequence", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{DB: testDB(t), Output: &bytes.Buffer{}})

		err := testApp(runner).Run(ctx, []string{"queuectl", "snapshot", "show", "abc"})
		if err == nil {
			t.Fatal("expected error for non-numeric sequence")
		}
		if !strings.Contains(err.Error(), "not a snapshot sequence number") {
			t.Errorf("expected sequence error, got %v", err)
		}
	})
}
