package main

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/urfave/cli/v3"

	"github.com/dmholland/queuectl/internal/formatter"
	"github.com/dmholland/queuectl/internal/models"
	"github.com/dmholland/queuectl/internal/services"
	"github.com/dmholland/queuectl/internal/shared"
	"github.com/dmholland/queuectl/internal/tracklist"
	"github.com/dmholland/queuectl/internal/ui"
)

// Players lists MPRIS-capable bus names on the session bus.
func (r *Runner) Players(ctx context.Context, cmd *cli.Command) error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrBusUnavailable, err)
	}

	players, err := services.ListPlayers(conn)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(players, true)
	}

	if len(players) == 0 {
		return r.writePlain("%s\n", ui.Warn("No media players found on the session bus"))
	}

	return r.writePlain("%s", ui.RenderPlayers(players, r.config.Player.BusName))
}

// Tracks captures the live queue and prints it.
func (r *Runner) Tracks(ctx context.Context, cmd *cli.Command) error {
	snap, err := r.capture(ctx, cmd, nil)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		data, err := formatter.ExportToJSON(snap)
		if err != nil {
			return err
		}
		return r.writePlain("%s\n", data)
	}

	return r.writePlain("%s", ui.RenderQueue(snap))
}

// Missing reports queue entries the player returned no keyable metadata for.
//
// Cache completion keys records by the id they self-report, so tracks the
// player answers for anonymously stay missing and end up listed here.
func (r *Runner) Missing(ctx context.Context, cmd *cli.Command) error {
	player, err := r.getPlayer(cmd)
	if err != nil {
		return err
	}

	list := tracklist.New(nil)
	if err := list.Reload(ctx, player); err != nil {
		return err
	}
	if err := list.CompleteCache(ctx, player); err != nil {
		return err
	}

	missing := list.MissingIDs()
	if len(missing) == 0 {
		return r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ All %d tracks have metadata", list.Len())))
	}

	r.writePlain("%s\n", ui.Warn(fmt.Sprintf("%d of %d tracks have no metadata:", len(missing), list.Len())))
	for _, id := range missing {
		r.writePlain("  %s\n", id)
	}
	return nil
}

// Export writes the live queue, or a stored snapshot, to a file.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	var snap *models.QueueSnapshot

	if sequence := int(cmd.Int("snapshot")); sequence > 0 {
		loaded, err := r.getSnapshot(sequence)
		if err != nil {
			return err
		}
		snap = loaded
	} else {
		captured, err := r.capture(ctx, cmd, nil)
		if err != nil {
			return err
		}
		snap = captured
	}

	format := cmd.String("format")
	if format == "" {
		format = r.config.Export.Format
	}
	outputDir := cmd.String("output")
	if outputDir == "" {
		outputDir = r.config.Export.OutputDir
	}

	path, err := formatter.WriteExport(snap, format, outputDir, cmd.String("file"))
	if err != nil {
		return err
	}

	r.logger.Info("export written", "format", format, "path", path)
	return r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Exported %d tracks to %s", len(snap.Tracks), path)))
}
