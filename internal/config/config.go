package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aoc-template/tasks/internal/branding"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const (
	fileName = "config"
	fileType = "yaml"

	// EnvFile is the project-level dotenv file merged over the user config.
	EnvFile = ".env"
)

// Setting keys.
const (
	KeyRoot      = "root"
	KeyRustFlags = "rustflags"
	KeyBench     = "bench"
	KeyUserAgent = "user_agent"
	KeySession   = "session"
	KeyInputURL  = "input_url"
)

// DefaultRustFlags enables native-CPU code generation for every cargo run.
const DefaultRustFlags = "-C target-cpu=native"

// Keys lists every recognized setting key.
var Keys = []string{KeyRoot, KeyRustFlags, KeyBench, KeyUserAgent, KeySession, KeyInputURL}

// Settings is the resolved configuration for one invocation.
type Settings struct {
	Root      string
	RustFlags string
	Bench     string
	UserAgent string
	Session   string
	InputURL  string

	// Env holds the .env variables not already set in the process
	// environment. Every child process inherits them.
	Env map[string]string
}

// BuildEnv returns the environment overlay for cargo invocations.
func (s Settings) BuildEnv() map[string]string {
	if s.RustFlags == "" {
		return nil
	}
	return map[string]string{"RUSTFLAGS": s.RustFlags}
}

// Dir returns the path to the config directory (~/.tasks/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.tasks/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// projectEnv holds the variables from the last LoadProject call.
var projectEnv map[string]string

// Load initializes Viper to read from the config file and environment.
func Load() {
	projectEnv = nil
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyRustFlags, DefaultRustFlags)
	viper.SetDefault(KeyBench, "criterion")
	viper.SetDefault(KeyUserAgent, branding.UserAgent())

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// LoadProject merges root/.env over the loaded settings. Dotenv keys are
// matched case-insensitively against the setting keys, so SESSION and
// INPUT_URL in .env set session and input_url. Variables not already in the
// process environment are kept for Settings.Env so child processes see them
// (CARGO_TARGET_DIR and the like). The process environment is never modified.
func LoadProject(root string) error {
	path := filepath.Join(root, EnvFile)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	env, err := gotenv.StrictParse(f)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	overlay := map[string]any{}
	projectEnv = map[string]string{}
	for k, v := range env {
		if _, set := os.LookupEnv(k); !set {
			projectEnv[k] = v
		}
		key := strings.ToLower(k)
		if isKey(key) {
			overlay[key] = v
		}
	}
	if err := viper.MergeConfigMap(overlay); err != nil {
		return fmt.Errorf("merging %s: %w", path, err)
	}
	return nil
}

// Resolve returns the current settings.
func Resolve() Settings {
	return Settings{
		Root:      viper.GetString(KeyRoot),
		RustFlags: viper.GetString(KeyRustFlags),
		Bench:     viper.GetString(KeyBench),
		UserAgent: viper.GetString(KeyUserAgent),
		Session:   viper.GetString(KeySession),
		InputURL:  viper.GetString(KeyInputURL),
		Env:       maps.Clone(projectEnv),
	}
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file. Only keys
// already in the file plus key are written; flag values, environment
// variables and defaults stay out of it.
func Set(key, value string) error {
	if !isKey(key) {
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys, ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()
	file := viper.New()
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if _, err := os.Stat(configFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	}

	file.Set(key, value)
	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	viper.Set(key, value)
	return nil
}

func isKey(key string) bool {
	return slices.Contains(Keys, key)
}
