package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-duo/internal/platform/tui"
	"github.com/vovakirdan/flappy-duo/internal/replay"
	"github.com/vovakirdan/flappy-duo/internal/storage"
)

var (
	flagReplaysPlain bool
	flagReplaysLimit int
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse stored replays",
	Long: `List finished games stored in the replay database.

In a terminal this opens an interactive table (Enter verifies the selected
replay, D deletes it). Use --plain or pipe the output for a text listing.

Examples:
  flappyduo replays
  flappyduo replays --plain --limit 5
  flappyduo replays verify 3
  flappyduo replays export 3 > game3.json
  flappyduo replays delete 3`,
	Args: cobra.NoArgs,
	Run:  runReplays,
}

var replaysVerifyCmd = &cobra.Command{
	Use:   "verify <id>",
	Short: "Re-simulate a replay and check its recorded result",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysVerify,
}

var replaysExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Print a replay record as JSON",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysExport,
}

var replaysDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored replay",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysDelete,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagReplaysPlain, "plain", false, "Print a text listing instead of the interactive table")
	replaysCmd.Flags().IntVar(&flagReplaysLimit, "limit", 20, "Number of replays to list in text mode")

	replaysCmd.AddCommand(replaysVerifyCmd)
	replaysCmd.AddCommand(replaysExportCmd)
	replaysCmd.AddCommand(replaysDeleteCmd)
}

// verifyRecord re-simulates a record under the config it was played with:
// the loaded game config plus the record's difficulty preset.
func verifyRecord(rec replay.Record) error {
	cfg, err := gameConfig(rec.Difficulty)
	if err != nil {
		return err
	}
	return replay.Verify(cfg, rec)
}

// mustOpenStore opens the replay database, exiting on error.
func mustOpenStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening replay database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func parseReplayID(arg string) int64 {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid replay id %q\n", arg)
		os.Exit(1)
	}
	return id
}

func runReplays(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if !flagReplaysPlain && term.IsTerminal(fd) {
		width, height := 80, 24
		if w, h, err := term.GetSize(fd); err == nil {
			width, height = w, h
		}
		if err := tui.RunReplayBrowser(store, verifyRecord, width, height); err != nil {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error running replay browser: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printReplays(os.Stdout, store, flagReplaysLimit); err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving replays: %v\n", err)
		os.Exit(1)
	}
}

// printReplays writes a text table of the latest replays and overall stats.
func printReplays(w io.Writer, store *storage.Store, limit int) error {
	entries, err := store.ListReplays(limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Replays - Flappy Duo")
	fmt.Fprintln(w)

	if len(entries) == 0 {
		fmt.Fprintln(w, "No replays recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'flappyduo play' and finish a game to record one!")
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-10s  %-10s  %-7s  %-6s  %-7s  %s\n", "ID", "P1", "P2", "Score", "Ticks", "Mode", "Date")
	fmt.Fprintf(w, "  %-4s  %-10s  %-10s  %-7s  %-6s  %-7s  %s\n", "--", "--", "--", "-----", "-----", "----", "----")

	for _, e := range entries {
		score := fmt.Sprintf("%d-%d", e.Score1, e.Score2)
		fmt.Fprintf(w, "  %-4d  %-10s  %-10s  %-7s  %-6d  %-7s  %s\n",
			e.ID, e.Player1, e.Player2, score, e.Ticks, e.Difficulty, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats()
	if err == nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Games: %d  Best: %d  Longest: %d ticks\n", stats.Games, stats.BestScore, stats.LongestRun)
	}
	return nil
}

func runReplaysVerify(_ *cobra.Command, args []string) {
	id := parseReplayID(args[0])
	store := mustOpenStore()
	rec, err := store.Replay(id)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := verifyRecord(rec); err != nil {
		fmt.Fprintf(os.Stderr, "Replay #%d FAILED: %v\n", id, err)
		os.Exit(1)
	}
	fmt.Printf("Replay #%d OK: %s %d - %d %s after %d ticks\n",
		id, rec.Names[0], rec.Scores[0], rec.Scores[1], rec.Names[1], rec.Ticks)
}

func runReplaysExport(_ *cobra.Command, args []string) {
	id := parseReplayID(args[0])
	store := mustOpenStore()
	rec, err := store.Replay(id)
	store.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := rec.Encode()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func runReplaysDelete(_ *cobra.Command, args []string) {
	id := parseReplayID(args[0])
	store := mustOpenStore()
	defer store.Close()

	if err := store.DeleteReplay(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			store.Close()
			fmt.Fprintf(os.Stderr, "Error: no replay #%d\n", id)
			os.Exit(1)
		}
		store.Close()
		fmt.Fprintf(os.Stderr, "Error deleting replay: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted replay #%d\n", id)
}
