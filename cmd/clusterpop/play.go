package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/clusterpop/internal/config"
	"github.com/vovakirdan/clusterpop/internal/core"
	"github.com/vovakirdan/clusterpop/internal/games/clusterpop"
	"github.com/vovakirdan/clusterpop/internal/platform/tui"
	"github.com/vovakirdan/clusterpop/internal/registry"
	"github.com/vovakirdan/clusterpop/internal/storage"
)

var (
	flagLevel      int
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Pick a level and play",
	Long: `Start ClusterPop. Without --level a level menu opens; only unlocked
levels can be played. Winning a level unlocks the next one.

Controls:
  Arrows/WASD  - Move the cursor
  Enter        - Collect the cluster under the cursor
  Space        - Mark a tile; the next direction swaps it with a neighbor
  X            - Abandon the level
  N/Enter      - Next level (after a win)
  R            - Retry (after the level ends)
  P            - Pause
  B/Esc        - Back to the level menu (after the level ends)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options scale every level's move budget:
  easy   - 150% moves
  normal - 100% moves
  hard   - 75% moves

Examples:
  clusterpop play
  clusterpop play --level 4
  clusterpop play --difficulty hard --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start this level directly (must be unlocked)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

func runPlay(_ *cobra.Command, _ []string) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if preset != "" {
		config.ApplyPreset(&appConfig, preset)
		clusterpop.SetConfig(appConfig)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	sess := tui.Session{
		Store:    store,
		Profile:  flagProfile,
		MaxLevel: appLevels.MaxID(),
		Logger:   logger,
	}

	if flagLevel > 0 {
		if err := playLevel(sess, cfg, flagLevel); err != nil && !errors.Is(err, errQuit) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Menu loop: level menu -> game -> level menu
	for {
		res, err := tui.RunLevelMenu(appLevels, loadProgress(store), cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		switch {
		case res.Quit:
			return
		case res.WantsScoreboard:
			back, err := tui.RunScoreboard(store, appLevels, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if !back {
				return
			}
			continue
		}

		if err := playLevel(sess, cfg, res.LevelID); err != nil {
			if errors.Is(err, errQuit) {
				return
			}
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// errQuit reports that the player quit from inside a game.
var errQuit = errors.New("quit")

// playLevel runs one game session starting at levelID.
func playLevel(sess tui.Session, cfg core.RuntimeConfig, levelID int) error {
	if !appLevels.Exists(levelID) {
		return fmt.Errorf("unknown level %d (run 'clusterpop levels')", levelID)
	}
	if sess.Store != nil {
		if _, err := sess.Store.SelectLevel(sess.Profile, levelID); err != nil {
			if errors.Is(err, storage.ErrLevelLocked) {
				return fmt.Errorf("level %d is locked; win the previous level first", levelID)
			}
			return err
		}
	}

	game, err := registry.Create(clusterpop.ID)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	if sel, ok := game.(registry.LevelSelector); ok {
		if err := sel.SelectLevel(levelID); err != nil {
			return err
		}
	}

	back, err := tui.Run(game, sess, cfg)
	if err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	if !back {
		return errQuit
	}
	return nil
}

func loadProgress(store *storage.Store) storage.Progress {
	if store == nil {
		// Without storage every level is open
		return storage.Progress{Profile: flagProfile, CurrentLevel: 1, UnlockedLevel: appLevels.MaxID()}
	}
	p, err := store.Progress(flagProfile)
	if err != nil {
		logger.Warn("cannot load progress", "err", err)
	}
	return p
}
