package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/dmholland/queuectl/internal/models"
	"github.com/dmholland/queuectl/internal/services"
	"github.com/dmholland/queuectl/internal/shared"
	"github.com/dmholland/queuectl/internal/tasks"
	"github.com/dmholland/queuectl/internal/tracklist"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
//
// The player connection and database handle are opened lazily: listing stored
// snapshots needs no bus, and inspecting the live queue needs no database.
type Runner struct {
	config *shared.Config
	player tasks.Player
	db     *sql.DB
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
//
// A pre-built Player or database handle skips the lazy initialization, which
// tests use to inject doubles.
type RunnerOpts struct {
	Config *shared.Config
	Player tasks.Player
	DB     *sql.DB
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config: opts.Config,
		player: opts.Player,
		db:     opts.DB,
		logger: opts.Logger,
		output: opts.Output,
	}
}

// Close releases the database handle if one was opened.
func (r *Runner) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, playersCommand, tracksCommand, missingCommand, exportCommand, snapshotCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// getPlayer returns the configured player, connecting to the session bus on
// first use. A --player flag overrides the configured bus name.
func (r *Runner) getPlayer(cmd *cli.Command) (tasks.Player, error) {
	if r.player != nil {
		return r.player, nil
	}

	busName := r.config.Player.BusName
	if cmd != nil {
		if flag := cmd.String("player"); flag != "" {
			busName = flag
		}
	}

	player, err := services.Connect(busName, r.logger)
	if err != nil {
		return nil, err
	}

	r.player = player
	return player, nil
}

// openDatabase returns the snapshot database, opening it on first use.
func (r *Runner) openDatabase() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	r.db = db
	return db, nil
}

// captureOpts maps the player configuration onto capture options.
func (r *Runner) captureOpts() tasks.CaptureOpts {
	return tasks.CaptureOpts{
		BatchSize: r.config.Player.BatchSize,
		RateLimit: r.config.Player.RateLimit,
	}
}

// capture grabs the live queue, logging progress as it goes. When store is
// non-nil the snapshot is persisted.
func (r *Runner) capture(ctx context.Context, cmd *cli.Command, store tasks.SnapshotStore) (*models.QueueSnapshot, error) {
	player, err := r.getPlayer(cmd)
	if err != nil {
		return nil, err
	}

	engine := tasks.NewCaptureEngine(player, store)

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
	}()

	snap, err := engine.Capture(ctx, progress, tracklist.New(nil), r.captureOpts())
	close(progress)
	<-done

	return snap, err
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
