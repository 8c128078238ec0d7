package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tucan/internal/platform/tui"
	"github.com/vovakirdan/tui-tucan/internal/storage"
)

var (
	flagReplaysList  bool
	flagReplaysLimit int
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded runs",
	Long: `Show the recorded runs in an interactive table. Enter watches the
selected run, d deletes it.

With --list the runs are printed instead.

Examples:
  tucan replays
  tucan replays --list --limit 20`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagReplaysList, "list", false, "Print replays instead of opening the browser")
	replaysCmd.Flags().IntVar(&flagReplaysLimit, "limit", 10, "Number of replays to print with --list")
}

func runReplays(_ *cobra.Command, _ []string) {
	// Open replay storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening replay database: %v", err)
	}

	if flagReplaysList {
		err = printReplays(store, flagReplaysLimit)
		store.Close()
		if err != nil {
			exitf("listing replays: %v", err)
		}
		return
	}

	width, height := terminalSize()
	id, err := tui.RunBrowser(store, width, height)
	if err != nil {
		store.Close()
		exitf("running browser: %v", err)
	}
	if id == "" {
		store.Close()
		return
	}

	rep, err := store.Replay(id)
	store.Close()
	if err != nil {
		exitf("loading replay: %v", err)
	}
	watch(rep)
}

func printReplays(store *storage.Store, limit int) error {
	replays, err := store.RecentReplays(limit)
	if err != nil {
		return err
	}

	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		fmt.Println()
		fmt.Println("Play 'tucan play' to record the first one!")
		return nil
	}

	// Print header
	fmt.Printf("  %-36s  %-16s  %-8s  %-6s  %s\n", "ID", "Date", "Ticks", "Taps", "Deaths")
	fmt.Printf("  %-36s  %-16s  %-8s  %-6s  %s\n", "--", "----", "-----", "----", "------")

	for _, r := range replays {
		dateStr := r.CreatedAt.Local().Format("2006-01-02 15:04")
		fmt.Printf("  %-36s  %-16s  %-8d  %-6d  %d\n", r.ID, dateStr, r.Ticks, r.TapCount, r.Deaths)
	}
	return nil
}
