// clusterpop is a terminal puzzle game: collect connected clusters of
// same-colored tiles before the move budget runs out.
//
// Usage:
//
//	clusterpop play                 - Pick a level and play
//	clusterpop levels               - List levels and their lock status
//	clusterpop scores [level]       - Show high scores
//	clusterpop progress             - Show or reset level progress
//	clusterpop serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible boards
//	--db <path>         - Set database path (default: ~/.clusterpop/scores.db)
//	--config <path>     - Load settings from a YAML file
//	--levels <dir>      - Load extra level files from a directory
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/clusterpop/internal/config"
	"github.com/vovakirdan/clusterpop/internal/games/clusterpop"
	"github.com/vovakirdan/clusterpop/internal/games/clusterpop/levels"
	"github.com/vovakirdan/clusterpop/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLevels   string
	flagProfile  string
	flagLogLevel string
	flagLogFile  string
)

// Set up by the root command before any subcommand runs.
var (
	appConfig config.ClusterPopConfig
	appLevels *levels.Table
	logger    = log.New(io.Discard)
	logFile   *os.File
)

func main() {
	// A missing .env file is fine
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clusterpop",
	Short: "ClusterPop - collect color clusters in your terminal",
	Long: `ClusterPop is a terminal puzzle game. Collect groups of two or more
connected tiles of the same color; the remaining tiles fall down and slide
right, and new tiles spawn until the level's item budget is spent.
Clear the board or run out of matches to win before the moves run out.

Available commands:
  play      - Pick a level and play
  levels    - List levels and their lock status
  scores    - View high scores
  progress  - Show or reset level progress
  serve     - Start SSH server for remote play

Environment:
  CLUSTERPOP_DB        - default for --db
  CLUSTERPOP_LOG_LEVEL - default for --log-level
  Variables may also be set in a .env file in the working directory.

Examples:
  clusterpop play
  clusterpop play --level 3 --difficulty easy
  clusterpop scores 3
  clusterpop serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default ~/.clusterpop/scores.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory with extra level files")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", storage.DefaultProfile, "Progress profile name")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads configuration, the level table and the logger, and hands
// them to the game package.
func setup(cmd *cobra.Command, _ []string) error {
	if flagDBPath == "" {
		flagDBPath = os.Getenv("CLUSTERPOP_DB")
	}
	if flagDBPath == "" {
		flagDBPath = filepath.Join(config.DataDir(), "scores.db")
	}
	if flagLogLevel == "" {
		flagLogLevel = os.Getenv("CLUSTERPOP_LOG_LEVEL")
	}

	l, err := newLogger(cmd, flagLogLevel, flagLogFile)
	if err != nil {
		return err
	}
	logger = l

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	appConfig = cfg

	table := levels.Default()
	dir := flagLevels
	if dir == "" {
		dir = cfg.Levels.Dir
	}
	if dir != "" {
		loader := levels.NewLoader(dir)
		loader.OnSkip = func(path string, err error) {
			logger.Warn("skipping level file", "path", path, "err", err)
		}
		n, err := loader.LoadInto(table)
		if err != nil {
			return fmt.Errorf("load levels from %s: %w", dir, err)
		}
		logger.Info("levels loaded", "dir", dir, "count", n)
	}
	appLevels = table

	clusterpop.SetConfig(cfg)
	clusterpop.SetLevels(table)
	clusterpop.SetLogger(logger)
	return nil
}

// newLogger builds the application logger. Logs go to the log file when
// one is given; otherwise interactive commands discard them so they do not
// corrupt the screen, and serve logs to stderr.
func newLogger(cmd *cobra.Command, level, path string) (*log.Logger, error) {
	var w io.Writer = io.Discard
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		w = f
	case cmd.Name() == "serve":
		w = os.Stderr
	}

	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "clusterpop",
	})
	if level != "" {
		lvl, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		l.SetLevel(lvl)
	}
	return l, nil
}

// openStore opens the score database, warning and returning nil on failure
// so the game still works without persistence.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}
