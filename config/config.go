// Package config loads minesweeper settings through viper: defaults, an
// optional YAML file, MINESWEEPER_* environment variables and command
// line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"minesweeper/logging"
)

// Config is the complete minesweeper configuration.
type Config struct {
	Board   BoardConfig   `mapstructure:"board"`
	Game    GameConfig    `mapstructure:"game"`
	Logging LoggingConfig `mapstructure:"logging"`
	Display DisplayConfig `mapstructure:"display"`
}

// BoardConfig describes a freshly generated board. It is ignored when a
// snapshot is loaded.
type BoardConfig struct {
	Rows    int `mapstructure:"rows"`
	Columns int `mapstructure:"columns"`
	Mines   int `mapstructure:"mines"`
}

// GameConfig holds everything else about a game.
type GameConfig struct {
	// Seed fixes mine placement and solver guesses. 0 means time-seeded.
	Seed uint64 `mapstructure:"seed"`
	// SnapshotPath is where the terminal UI saves.
	SnapshotPath string `mapstructure:"snapshot_path"`
}

// LoggingConfig controls the logrus logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error
	Level string `mapstructure:"level"`
	// File, when set, receives logs instead of stderr
	File string `mapstructure:"file"`
}

// DisplayConfig controls board rendering.
type DisplayConfig struct {
	// Color enables lipgloss styling when the output is a terminal
	Color bool `mapstructure:"color"`
}

// Default returns the defaults of the command line:
// a 1x2 board with one mine.
func Default() *Config {
	return &Config{
		Board: BoardConfig{
			Rows:    1,
			Columns: 2,
			Mines:   1,
		},
		Game: GameConfig{
			SnapshotPath: "minesweeper.txt",
		},
		Logging: LoggingConfig{
			Level: logging.LevelWarn,
		},
		Display: DisplayConfig{
			Color: true,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("board.rows", defaults.Board.Rows)
	viper.SetDefault("board.columns", defaults.Board.Columns)
	viper.SetDefault("board.mines", defaults.Board.Mines)

	viper.SetDefault("game.seed", defaults.Game.Seed)
	viper.SetDefault("game.snapshot_path", defaults.Game.SnapshotPath)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)

	viper.SetDefault("display.color", defaults.Display.Color)
}

// Init points viper at the config file (cfgFile, or minesweeper.yaml in
// the config directory or working directory) and the environment. A
// missing file is not an error.
func Init(cfgFile string) error {
	SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("minesweeper")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(Dir())
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("MINESWEEPER")
	// MINESWEEPER_BOARD_ROWS for board.rows
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Dir returns the user's config directory for minesweeper.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "minesweeper")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".minesweeper"
	}
	return filepath.Join(home, ".config", "minesweeper")
}

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// Validate returns every problem found. Board dimensions are left to the
// game engine, which reports them when a board is built.
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if c.Logging.Level != "" && !slices.Contains(logging.ValidLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of %s", strings.Join(logging.ValidLevels(), ", ")),
		})
	}
	if strings.TrimSpace(c.Game.SnapshotPath) == "" {
		errs = append(errs, ValidationError{
			Field:   "game.snapshot_path",
			Value:   c.Game.SnapshotPath,
			Message: "must not be empty",
		})
	}

	return errs
}
