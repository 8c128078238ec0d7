package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tucan/internal/core"
	"github.com/vovakirdan/tui-tucan/internal/platform/tui"
	"github.com/vovakirdan/tui-tucan/internal/replay"
	"github.com/vovakirdan/tui-tucan/internal/storage"
)

var flagNoRecord bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start playing in the current terminal.

Controls:
  Space/Up/W/Enter/Click - Flap (after a crash: start again)
  P                      - Pause
  Ctrl+S                 - Screenshot to ~/.tucan/screenshots
  Q/Ctrl+C               - Quit

Every session is recorded and can be watched later with 'tucan replays'.

Examples:
  tucan play
  tucan play --seed 42
  tucan play --config ./my-tucan.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save a replay of this session")
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closer := newLogger(true)
	defer closer.Close()

	cfg, atlas := loadGame()
	game := newGame(cfg, atlas, logger)

	width, height := terminalSize()
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	rec := replay.NewRecorder(game.ID(), cfg, runtime)
	model := tui.NewModel(game, runtime, tui.WithLogger(logger), tui.WithRecorder(rec))
	if _, err := tui.Run(model); err != nil {
		exitf("running game: %v", err)
	}

	if flagNoRecord || rec.Ticks() == 0 {
		return
	}

	// Open replay storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database", "error", err)
		return
	}
	defer store.Close()

	r, err := rec.Replay()
	if err == nil {
		r.ID, err = store.SaveReplay(r)
	}
	if err != nil {
		logger.Warn("could not save replay", "error", err)
		return
	}
	logger.Info("replay saved", "id", r.ID, "ticks", r.Ticks, "taps", r.TapCount, "deaths", r.Deaths)
	fmt.Printf("Replay saved: %s\n", r.ID)
}
