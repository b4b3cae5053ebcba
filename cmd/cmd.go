// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand initializes the configuration file and snapshot database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and snapshot database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// playersCommand lists media players available on the session bus.
func playersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "players",
		Aliases: []string{"ls"},
		Usage:   "List media players on the session bus",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Players,
	}
}

// tracksCommand shows the player's current queue.
func tracksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tracks",
		Aliases: []string{"queue"},
		Usage:   "Show the player's current queue with metadata",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "player",
				Aliases: []string{"p"},
				Usage:   "Player bus name (default: first player found)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Tracks,
	}
}

// missingCommand reports queue entries the player holds no metadata for.
func missingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "missing",
		Usage: "Report queue entries with no retrievable metadata",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "player",
				Aliases: []string{"p"},
				Usage:   "Player bus name (default: first player found)",
			},
		},
		Action: r.Missing,
	}
}

// exportCommand writes the queue to a file.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export the queue to CSV, Markdown, JSON or plain text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "player",
				Aliases: []string{"p"},
				Usage:   "Player bus name (default: first player found)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: csv, markdown, text or json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "Output filename (default: derived from the snapshot)",
			},
			&cli.IntFlag{
				Name:    "snapshot",
				Aliases: []string{"s"},
				Usage:   "Export a stored snapshot by sequence number instead of the live queue",
			},
		},
		Action: r.Export,
	}
}

// snapshotCommand manages stored queue snapshots.
func snapshotCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "snapshot",
		Aliases: []string{"snap"},
		Usage:   "Capture and manage stored queue snapshots",
		Commands: []*cli.Command{
			{
				Name:  "save",
				Usage: "Capture the current queue and store it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "player",
						Aliases: []string{"p"},
						Usage:   "Player bus name (default: first player found)",
					},
				},
				Action: r.SnapshotSave,
			},
			{
				Name:  "list",
				Usage: "List stored snapshots, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of snapshots to show",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SnapshotList,
			},
			{
				Name:  "show",
				Usage: "Show a stored snapshot by sequence number",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "sequence",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.SnapshotShow,
			},
			{
				Name:  "delete",
				Usage: "Delete a stored snapshot by sequence number",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "sequence",
					},
				},
				Action: r.SnapshotDelete,
			},
		},
	}
}
