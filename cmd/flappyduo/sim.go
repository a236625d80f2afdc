package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-duo/internal/config"
	"github.com/vovakirdan/flappy-duo/internal/games/flappyduo"
	"github.com/vovakirdan/flappy-duo/internal/replay"
	"github.com/vovakirdan/flappy-duo/internal/storage"
	"github.com/vovakirdan/flappy-duo/internal/telemetry"
)

var (
	flagSimRuns     int
	flagSimMaxTicks int
	flagSimOut      string
	flagSimTrace    bool
	flagSimSkill    float64
	flagSimSave     bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run headless autopilot games",
	Long: `Play a batch of games with both birds flown by the autopilot and
print statistics about run length and scores.

Each run uses seed --seed + run number, so a batch is reproducible when
--seed is set. With --out, a summary row per run is written to runs.csv
and, with --trace, every tick to ticks.csv.

Examples:
  flappyduo sim
  flappyduo sim --runs 200 --skill 0.8
  flappyduo sim --seed 7 --out ./runs --trace
  flappyduo sim --runs 5 --save`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSimRuns, "runs", 10, "Number of games to play")
	simCmd.Flags().IntVar(&flagSimMaxTicks, "max-ticks", 100_000, "Stop a game after this many ticks")
	simCmd.Flags().StringVar(&flagSimOut, "out", "", "Directory for CSV output (disabled if empty)")
	simCmd.Flags().BoolVar(&flagSimTrace, "trace", false, "Also write a per-tick trace (needs --out)")
	simCmd.Flags().Float64Var(&flagSimSkill, "skill", 0.9, "Autopilot skill from 0 to 1")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store finished games as replays")
}

// simOptions configures a batch of autopilot runs.
type simOptions struct {
	Game       config.DuoConfig
	Difficulty string
	Seed       int64
	Skill      float64
	MaxTicks   int
	Output     *telemetry.Output
	Store      *storage.Store // nil disables replay saving
	Logger     *log.Logger
}

func runSim(_ *cobra.Command, _ []string) {
	cfg := mustGameConfig()
	logger, closeLog := mustLogger(os.Stderr)
	defer closeLog()

	if flagSimRuns <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --runs must be positive")
		os.Exit(1)
	}

	out, err := telemetry.NewOutput(flagSimOut, flagSimTrace)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var store *storage.Store
	if flagSimSave {
		store = openStore()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runs, simErr := simulateBatch(simOptions{
		Game:       cfg,
		Difficulty: flagDifficulty,
		Seed:       seed,
		Skill:      flagSimSkill,
		MaxTicks:   flagSimMaxTicks,
		Output:     out,
		Store:      store,
		Logger:     logger,
	}, flagSimRuns)

	if err := out.Close(); err != nil && simErr == nil {
		simErr = err
	}
	if store != nil {
		store.Close()
	}
	if simErr != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error: %v\n", simErr)
		os.Exit(1)
	}

	printSummary(os.Stdout, telemetry.Summarize(runs), seed)
	if dir := out.Dir(); dir != "" {
		fmt.Printf("\nCSV written to %s\n", dir)
	}
}

// simulateBatch plays n runs with seeds opts.Seed+1 .. opts.Seed+n.
func simulateBatch(opts simOptions, n int) ([]telemetry.RunSummary, error) {
	runs := make([]telemetry.RunSummary, 0, n)
	for run := 1; run <= n; run++ {
		summary, err := simulateRun(opts, run)
		if err != nil {
			return runs, fmt.Errorf("run %d: %w", run, err)
		}
		runs = append(runs, summary)
	}
	return runs, nil
}

// simulateRun plays one autopilot game through a Session, so it goes through
// the same recorder and phase checks as interactive play.
func simulateRun(opts simOptions, run int) (telemetry.RunSummary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("run", run)

	seed := opts.Seed + int64(run)
	session := flappyduo.NewSession(opts.Game, logger)
	recorder := replay.NewRecorder(opts.Difficulty)
	session.SetRecorder(recorder)
	if err := session.StartWithSeed("", "", seed); err != nil {
		return telemetry.RunSummary{}, err
	}

	pilots := [flappyduo.NumPlayers]*flappyduo.Pilot{
		flappyduo.NewPilot(seed*2, opts.Skill),
		flappyduo.NewPilot(seed*2+1, opts.Skill),
	}

	var trace []telemetry.TickRecord
	snap := session.Snapshot()
	for session.Phase() == flappyduo.PhasePlaying && snap.Tick < opts.MaxTicks {
		var jumps [flappyduo.NumPlayers]bool
		for i, p := range pilots {
			jumps[i] = p.Decide(snap, i)
		}
		ev, err := session.Tick(jumps[0], jumps[1])
		if err != nil {
			return telemetry.RunSummary{}, err
		}
		snap = session.Snapshot()
		if opts.Output != nil {
			trace = append(trace, telemetry.NewTickRecord(run, snap, ev))
		}
	}

	if session.Phase() == flappyduo.PhasePlaying {
		logger.Warn("run stopped at tick limit", "tick", snap.Tick)
	}

	if err := opts.Output.WriteTicks(trace); err != nil {
		return telemetry.RunSummary{}, err
	}
	summary := telemetry.NewRunSummary(run, snap)
	if err := opts.Output.WriteSummary(summary); err != nil {
		return telemetry.RunSummary{}, err
	}

	if rec, ok := recorder.Record(); ok && opts.Store != nil {
		id, err := opts.Store.SaveReplay(rec)
		if err != nil {
			logger.Error("failed to save replay", "err", err)
		} else {
			logger.Debug("replay saved", "id", id)
		}
	}
	return summary, nil
}

func printSummary(w io.Writer, s telemetry.Summary, seed int64) {
	fmt.Fprintf(w, "Runs:   %d (base seed %d)\n", s.Runs, seed)
	fmt.Fprintf(w, "Ticks:  %s\n", s.Ticks)
	fmt.Fprintf(w, "Score:  %s\n", s.Score)
	fmt.Fprintf(w, "Wins:   P1 %d, P2 %d, draws %d\n", s.Wins[0], s.Wins[1], s.Draws)
}
