package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Colors holds color values for every UI style.
// Values can be xterm-256 codes (0-255) or hex colors (#rrggbb).
type Colors struct {
	Title        string `toml:"title"`
	Header       string `toml:"header"`
	SelectedBG   string `toml:"selected_bg"`
	SelectedFG   string `toml:"selected_fg"`
	Leader       string `toml:"leader"`
	Thinker      string `toml:"thinker"`
	Balanced     string `toml:"balanced"`
	Skill        string `toml:"skill"`
	Notification string `toml:"notification"`
	Help         string `toml:"help"`
	Border       string `toml:"border"`
	Separator    string `toml:"separator"`
	WizardTitle  string `toml:"wizard_title"`
	WizardActive string `toml:"wizard_active"`
	WizardDim    string `toml:"wizard_dim"`
	Error        string `toml:"error"`
	Logo         string `toml:"logo"`
	Team         string `toml:"team"`
}

// Data holds file locations.
type Data struct {
	Participants string `toml:"participants" env:"TEAMMATE_PARTICIPANTS"`
	Output       string `toml:"output" env:"TEAMMATE_OUTPUT"`
	Report       string `toml:"report" env:"TEAMMATE_REPORT"`
	StateDir     string `toml:"state_dir" env:"TEAMMATE_STATE_DIR"`
}

// Formation holds the defaults used when forming teams.
type Formation struct {
	TeamSize int `toml:"team_size" env:"TEAMMATE_TEAM_SIZE"`
	// Seed 0 means draw a fresh seed for every run.
	Seed          uint64 `toml:"seed" env:"TEAMMATE_SEED"`
	MaxIterations int    `toml:"max_iterations" env:"TEAMMATE_MAX_ITERATIONS"`
}

type Logging struct {
	Level string `toml:"level" env:"TEAMMATE_LOG_LEVEL"`
}

// Config is the top-level configuration.
type Config struct {
	Colors    Colors    `toml:"colors"`
	Data      Data      `toml:"data"`
	Formation Formation `toml:"formation"`
	Logging   Logging   `toml:"logging"`
}

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		Colors: Colors{
			Title:        "#cba6f7", // Mauve
			Header:       "#89b4fa", // Blue
			SelectedBG:   "#313244", // Surface 0
			SelectedFG:   "#cdd6f4", // Text
			Leader:       "#fab387", // Peach
			Thinker:      "#b4befe", // Lavender
			Balanced:     "#94e2d5", // Teal
			Skill:        "#a6e3a1", // Green
			Notification: "#a6adc8", // Subtext 0
			Help:         "#7f849c", // Overlay 1
			Border:       "#585b70", // Surface 2
			Separator:    "#585b70", // Surface 2
			WizardTitle:  "#cba6f7", // Mauve
			WizardActive: "#cba6f7", // Mauve
			WizardDim:    "#7f849c", // Overlay 1
			Error:        "#f38ba8", // Red
			Logo:         "#cba6f7", // Mauve
			Team:         "#74c7ec", // Sapphire
		},
		Data: Data{
			Participants: "participants.csv",
			Output:       "formed_teams.csv",
			Report:       "formation_report.yaml",
			StateDir:     stateDir(),
		},
		Formation: Formation{
			TeamSize:      5,
			MaxIterations: 5000,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// Path returns the config file path, respecting XDG_CONFIG_HOME.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "teammate", "teammate.conf")
}

func stateDir() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(dir, "teammate")
}

// Load reads the config file at Path and then applies environment
// overrides. Omitted fields keep their default values. If the file does
// not exist, defaults are used with no error.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

const defaultFileContent = `# TeamMate configuration
# Uncomment and modify values to customize. All values are optional.
# Colors can be hex (#rrggbb) or xterm-256 codes (0-255).
# Defaults use the Catppuccin Mocha palette.
# Every [data], [formation] and [logging] value can also be set from the
# environment (TEAMMATE_PARTICIPANTS, TEAMMATE_TEAM_SIZE, ...).

[colors]
# title         = "#cba6f7"  # Mauve
# header        = "#89b4fa"  # Blue
# selected_bg   = "#313244"  # Surface 0
# selected_fg   = "#cdd6f4"  # Text
# leader        = "#fab387"  # Peach
# thinker       = "#b4befe"  # Lavender
# balanced      = "#94e2d5"  # Teal
# skill         = "#a6e3a1"  # Green
# notification  = "#a6adc8"  # Subtext 0
# help          = "#7f849c"  # Overlay 1
# border        = "#585b70"  # Surface 2
# separator     = "#585b70"  # Surface 2
# wizard_title  = "#cba6f7"  # Mauve
# wizard_active = "#cba6f7"  # Mauve
# wizard_dim    = "#7f849c"  # Overlay 1
# error         = "#f38ba8"  # Red
# logo          = "#cba6f7"  # Mauve
# team          = "#74c7ec"  # Sapphire

[data]
# participants = "participants.csv"       # participant pool, relative to the working directory
# output       = "formed_teams.csv"       # team export written after each run
# report       = "formation_report.yaml"  # run summary written after each run
# state_dir    = "~/.local/state/teammate" # log file location

[formation]
# team_size      = 5      # default size offered by the formation panel
# seed           = 0      # 0 draws a fresh seed per run; set to replay a run
# max_iterations = 5000   # balancer iteration budget

[logging]
# level = "info"  # debug, info, warn or error
`

// WriteDefault writes the default config file with all values commented out.
// It no-ops if the file already exists. Parent directories are created as needed.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // file already exists
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(defaultFileContent), 0o644)
}
