// flappyduo is a two-player Flappy Bird-style game for the terminal.
//
// Usage:
//
//	flappyduo play              - Play on this keyboard (Space and Up)
//	flappyduo serve             - Start SSH server for remote play
//	flappyduo sim               - Run headless autopilot games and report statistics
//	flappyduo replays           - Browse stored replays
//	flappyduo replays verify ID - Re-simulate a replay and check its result
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 50)
//	--seed <value>        - Set RNG seed for reproducible courses
//	--db <path>           - Set database path (default: ~/.flappyduo/duo.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Append logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappy-duo/internal/config"
	"github.com/vovakirdan/flappy-duo/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappyduo",
	Short: "Flappy Duo - two birds, one keyboard",
	Long: `Flappy Duo is a two-player Flappy Bird-style game for the terminal.
Player 1 flaps with Space, player 2 with the Up arrow. Both birds fly
through the same course and score for every pipe they survive.

Available commands:
  play     - Play a local two-player game
  serve    - Start SSH server for remote play
  sim      - Run headless autopilot games
  replays  - Browse, verify and delete stored replays

Examples:
  flappyduo play
  flappyduo play --difficulty hard --seed 42
  flappyduo serve --ssh :2222
  flappyduo sim --runs 100 --out ./runs
  flappyduo replays verify 3`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 50, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappyduo/duo.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", string(config.DifficultyNormal),
		"Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(replaysCmd)
}

// gameConfig loads the game config and applies a difficulty preset and the
// --fps override.
func gameConfig(preset string) (config.DuoConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyPreset(&cfg, config.DifficultyPreset(preset)); err != nil {
		return cfg, err
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	return cfg, cfg.Validate()
}

// mustGameConfig is gameConfig for the selected --difficulty, exiting on error.
func mustGameConfig() config.DuoConfig {
	cfg, err := gameConfig(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// newLogger builds the command logger. With --log-file set, output goes to
// that file and the returned closer closes it; otherwise it goes to w.
func newLogger(w io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	if flagLogFile == "" {
		logger.SetPrefix("flappyduo")
		return logger, func() {}, nil
	}

	f, err := tea.LogToFileWith(flagLogFile, "flappyduo", logger)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return logger, func() { f.Close() }, nil
}

// mustLogger is newLogger, exiting on error.
func mustLogger(w io.Writer) (*log.Logger, func()) {
	logger, closeLog, err := newLogger(w)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, closeLog
}

// openStore opens the replay database, returning nil with a warning when it
// is unavailable. The game still works without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		return nil
	}
	return store
}
