package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappy-duo/internal/core"
	"github.com/vovakirdan/flappy-duo/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a local two-player game",
	Long: `Start a two-player game on this keyboard.

Controls:
  Space      - Player 1 flaps
  Up         - Player 2 flaps
  Tab        - Switch name field (menu)
  Enter      - Start (menu), back to menu (game over)
  P          - Pause
  Esc        - Abort the running game
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower start, escalates half as often
  normal - Standard speed and escalation
  hard   - Faster start and denser pipes
  fixed  - No escalation, stays at the base speed

Finished games are saved as replays in the database.

Examples:
  flappyduo play
  flappyduo play --difficulty easy
  flappyduo play --seed 42
  flappyduo play --config ./my-duo.yaml --log-file duo.log`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg := mustGameConfig()

	// The alt-screen owns the terminal, so logs only go to --log-file
	logger, closeLog := mustLogger(io.Discard)
	defer closeLog()

	rt := core.DefaultConfig()
	rt.TickRate = cfg.TickRate
	rt.Seed = flagSeed
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}

	store := openStore()

	runErr := tui.Run(tui.Options{
		Game:       cfg,
		Runtime:    rt,
		Difficulty: flagDifficulty,
		Store:      store,
		Logger:     logger,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
