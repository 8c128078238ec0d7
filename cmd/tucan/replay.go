package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tucan/internal/assets"
	"github.com/vovakirdan/tui-tucan/internal/platform/tui"
	"github.com/vovakirdan/tui-tucan/internal/replay"
	"github.com/vovakirdan/tui-tucan/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Watch a recorded run",
	Long: `Play back a recorded run tick by tick.

The run is rebuilt from its seed, its config snapshot and the recorded
taps, so it looks exactly as it did when it was played.

Controls:
  P         - Hold/continue
  Q/Ctrl+C  - Quit

Examples:
  tucan replay 0b6c1d7e-5f7a-4a47-9f0e-8f1f0f3b2a11`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	// Open replay storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening replay database: %v", err)
	}

	rep, err := store.Replay(args[0])
	store.Close()
	if errors.Is(err, storage.ErrReplayNotFound) {
		exitf("no replay with id %q. Run 'tucan replays --list' to see them.", args[0])
	}
	if err != nil {
		exitf("loading replay: %v", err)
	}
	watch(rep)
}

// watch plays rep back in the terminal.
func watch(rep *storage.Replay) {
	logger, closer := newLogger(true)
	defer closer.Close()

	player, err := replay.NewPlayer(rep)
	if err != nil {
		exitf("%v", err)
	}
	atlas, err := assets.Load(player.Config().Assets.Atlas)
	if err != nil {
		exitf("%v", err)
	}
	game := newGame(player.Config(), atlas, logger)

	width, height := terminalSize()
	model := tui.NewModel(game, player.Runtime(width, height), tui.WithLogger(logger), tui.WithPlayer(player))
	if _, err := tui.Run(model); err != nil {
		exitf("running replay: %v", err)
	}
}
