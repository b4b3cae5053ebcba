package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/dmholland/queuectl/internal/formatter"
	"github.com/dmholland/queuectl/internal/models"
	"github.com/dmholland/queuectl/internal/repositories"
	"github.com/dmholland/queuectl/internal/shared"
	"github.com/dmholland/queuectl/internal/ui"
)

// getRepository opens the snapshot repository over the lazy database handle.
func (r *Runner) getRepository() (*repositories.SnapshotRepository, error) {
	db, err := r.openDatabase()
	if err != nil {
		return nil, err
	}
	return repositories.NewSnapshotRepository(db), nil
}

// getSnapshot loads a stored snapshot by sequence number.
func (r *Runner) getSnapshot(sequence int) (*models.QueueSnapshot, error) {
	repo, err := r.getRepository()
	if err != nil {
		return nil, err
	}
	return repo.GetBySequence(sequence)
}

// sequenceArg parses the positional sequence number argument.
func sequenceArg(cmd *cli.Command) (int, error) {
	raw := cmd.StringArg("sequence")
	if raw == "" {
		return 0, fmt.Errorf("%w: snapshot sequence number", shared.ErrMissingArgument)
	}
	sequence, err := strconv.Atoi(raw)
	if err != nil || sequence <= 0 {
		return 0, fmt.Errorf("%w: %q is not a snapshot sequence number", shared.ErrInvalidArgument, raw)
	}
	return sequence, nil
}

// SnapshotSave captures the current queue and stores it in the database.
func (r *Runner) SnapshotSave(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.getRepository()
	if err != nil {
		return err
	}

	snap, err := r.capture(ctx, cmd, repo)
	if err != nil {
		return err
	}

	return r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Saved snapshot #%d (%d tracks from %s)",
		snap.Sequence, len(snap.Tracks), snap.Player)))
}

// SnapshotList prints stored snapshot headers, newest first.
func (r *Runner) SnapshotList(ctx context.Context, cmd *cli.Command) error {
	repo, err := r.getRepository()
	if err != nil {
		return err
	}

	infos, err := repo.List(int(cmd.Int("limit")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(infos, true)
	}

	if len(infos) == 0 {
		return r.writePlain("%s\n", ui.Help("No snapshots stored. Run 'queuectl snapshot save' first."))
	}

	r.writePlain("%s\n", ui.Title("Snapshots"))
	for _, info := range infos {
		r.writePlain("#%-4d %s  %3d tracks  %s\n",
			info.Sequence,
			info.CapturedAt.Format("2006-01-02 15:04"),
			info.TrackCount,
			info.Player,
		)
	}
	return nil
}

// SnapshotShow prints one stored snapshot by sequence number.
func (r *Runner) SnapshotShow(ctx context.Context, cmd *cli.Command) error {
	sequence, err := sequenceArg(cmd)
	if err != nil {
		return err
	}

	snap, err := r.getSnapshot(sequence)
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

// SnapshotDelete removes a stored snapshot.
func (r *Runner) SnapshotDelete(ctx context.Context, cmd *cli.Command) error {
	sequence, err := sequenceArg(cmd)
	if err != nil {
		return err
	}

	repo, err := r.getRepository()
	if err != nil {
		return err
	}

	snap, err := repo.GetBySequence(sequence)
	if err != nil {
		return err
	}
	if err := repo.Delete(snap.ID); err != nil {
		return err
	}

	r.logger.Info("snapshot deleted", "sequence", sequence, "id", snap.ID)
	return r.writePlain("%s\n", ui.Success(fmt.Sprintf("✓ Deleted snapshot #%d", sequence)))
}
