// tucan is a terminal flap-through-the-poles arcade game.
//
// Usage:
//
//	tucan play             - Play the game
//	tucan serve            - Start SSH server for remote play
//	tucan sim              - Run the game headless, optionally on autopilot
//	tucan replays          - Browse recorded runs
//	tucan replay <id>      - Watch a recorded run
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--config <path>     - Use a custom game config YAML
//	--db <path>         - Set database path (default: ~/.tucan/replays.db)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tucan/internal/assets"
	"github.com/vovakirdan/tui-tucan/internal/config"
	"github.com/vovakirdan/tui-tucan/internal/games/tucan"
	"github.com/vovakirdan/tui-tucan/internal/logging"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tucan",
	Short: "Tucany Bird - flap between the tiki poles in your terminal",
	Long: `Tucany Bird is a terminal arcade game: tap to flap, stay clear of the
poles and the ground.

Available commands:
  play     - Play the game
  serve    - Start SSH server for remote play
  sim      - Run the game headless
  replays  - Browse recorded runs
  replay   - Watch a recorded run

Examples:
  tucan play
  tucan play --seed 42
  tucan serve --ssh :2222
  tucan sim --ticks 3600 --autopilot
  tucan replays`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tucan/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (interactive commands default to "+logging.DefaultFile+")")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
}

// exitf prints an error to stderr and exits with status 1.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the command logger. Interactive commands own the
// terminal, so they log to a file unless --log-file says otherwise.
func newLogger(interactive bool) (*log.Logger, io.Closer) {
	opts := logging.Options{Level: flagLogLevel, File: flagLogFile, Prefix: "tucan"}
	if opts.File == "" {
		if interactive {
			opts.File = logging.DefaultFile
		} else {
			opts.Output = os.Stderr
		}
	}
	logger, closer, err := logging.New(opts)
	if err != nil {
		exitf("%v", err)
	}
	return logger, closer
}

// loadGame loads the game config and the sprite atlas it points at.
func loadGame() (config.Config, *assets.Atlas) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		exitf("%v", err)
	}
	atlas, err := assets.Load(cfg.Assets.Atlas)
	if err != nil {
		exitf("%v", err)
	}
	return cfg, atlas
}

// newGame builds a game from cfg and atlas.
func newGame(cfg config.Config, atlas *assets.Atlas, logger *log.Logger) *tucan.Game {
	game, err := tucan.New(cfg, atlas, tucan.WithLogger(logger))
	if err != nil {
		exitf("creating game: %v", err)
	}
	return game
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (width, height int) {
	width, height = 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}
