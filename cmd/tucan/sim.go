package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tucan/internal/core"
	"github.com/vovakirdan/tui-tucan/internal/games/tucan"
	"github.com/vovakirdan/tui-tucan/internal/replay"
	"github.com/vovakirdan/tui-tucan/internal/storage"
)

var (
	flagSimTicks  int
	flagAutopilot bool
	flagSimSave   bool
	flagSimFrame  bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the game without a terminal",
	Long: `Simulate a number of ticks as fast as possible and report what happened.

With --autopilot the bird flaps whenever it sinks below the next gap and
starts a new round straight after a crash; without it, it just falls.

Examples:
  tucan sim --ticks 600
  tucan sim --ticks 36000 --autopilot --seed 7
  tucan sim --autopilot --save        # store the run as a replay
  tucan sim --ticks 90 --frame        # print the last frame`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 3600, "Number of ticks to simulate")
	simCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Flap automatically to follow the gaps")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Save the run to the replay database")
	simCmd.Flags().BoolVar(&flagSimFrame, "frame", false, "Print the final frame as text")
}

// simStats summarizes a headless run.
type simStats struct {
	ticks    int
	taps     int
	contacts int
	maxPairs int
}

func runSim(_ *cobra.Command, _ []string) {
	logger, closer := newLogger(false)
	defer closer.Close()

	if flagSimTicks <= 0 {
		exitf("--ticks must be positive, got %d", flagSimTicks)
	}

	cfg, atlas := loadGame()
	game := newGame(cfg, atlas, logger)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	width, height := terminalSize()
	runtime := core.RuntimeConfig{ScreenW: width, ScreenH: height, TickRate: flagFPS, Seed: seed}
	if err := game.Reset(runtime); err != nil {
		exitf("%v", err)
	}

	var pilot *tucan.Autopilot
	if flagAutopilot {
		pilot = tucan.NewAutopilot()
	}

	rec := replay.NewRecorder(game.ID(), cfg, runtime)
	start := time.Now()
	stats := simulate(game, pilot, rec, flagSimTicks)
	elapsed := time.Since(start)

	logger.Info("simulation finished",
		"seed", seed,
		"ticks", stats.ticks,
		"taps", stats.taps,
		"deaths", rec.Deaths(),
		"contacts", stats.contacts,
		"max_pairs", stats.maxPairs,
		"spawned", game.World().Spawner().Spawned(),
		"elapsed", elapsed.Round(time.Millisecond),
	)

	if flagSimFrame {
		screen := core.NewScreen(width, height)
		game.Render(screen)
		fmt.Println(screen.String())
	}

	if !flagSimSave {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening replay database: %v", err)
	}
	defer store.Close()

	r, err := rec.Replay()
	if err == nil {
		r.ID, err = store.SaveReplay(r)
	}
	if err != nil {
		exitf("saving replay: %v", err)
	}
	logger.Info("replay saved", "id", r.ID)
	fmt.Printf("Replay saved: %s\n", r.ID)
}

// simulate steps game for ticks ticks, asking pilot for taps when set.
func simulate(game *tucan.Game, pilot *tucan.Autopilot, rec *replay.Recorder, ticks int) simStats {
	var stats simStats
	for range ticks {
		in := core.NewInputFrame()
		if pilot != nil && pilot.Decide(game.Machine()) {
			in.Set(core.ActionTap)
			stats.taps++
		}
		res := game.Step(in)
		rec.Observe(in, res)

		stats.ticks++
		stats.contacts += res.Contacts
		stats.maxPairs = max(stats.maxPairs, res.State.Obstacles)
	}
	return stats
}
