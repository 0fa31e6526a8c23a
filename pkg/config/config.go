package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goblinsan/things-diff/pkg/tasks"
	"github.com/goblinsan/things-diff/pkg/types"
	"github.com/spf13/viper"
)

const (
	appDir     = ".things-diff"
	configName = "config.yml"
	envPrefix  = "THINGS_DIFF"
)

// ErrNotFound is returned by Load when the config file does not exist.
var ErrNotFound = errors.New("config file not found")

// DefaultPath returns $HOME/.things-diff/config.yml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error finding home directory: %w", err)
	}
	return filepath.Join(home, appDir, configName), nil
}

// Load reads the config file at path (or DefaultPath when empty) into v and
// decodes it. Environment variables prefixed with THINGS_DIFF_ override file
// values. A relative data_file is resolved against the config file directory.
func Load(v *viper.Viper, path string) (*types.Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	for _, key := range []string{"token", "user", "data_file", "task_command"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	v.SetDefault("task_command", tasks.DefaultCommand)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if cfg.DataFile == "" {
		return nil, errors.New("data_file is required")
	}
	cfg.DataFile = resolveDataFile(path, cfg.DataFile)
	return &cfg, nil
}

func resolveDataFile(configPath, dataFile string) string {
	if strings.HasPrefix(dataFile, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, dataFile[2:])
		}
	}
	if filepath.IsAbs(dataFile) {
		return filepath.Clean(dataFile)
	}
	return filepath.Join(filepath.Dir(configPath), dataFile)
}

// Validate performs structural checks on cfg and returns one message per problem.
func Validate(cfg *types.Config) []string {
	var errs []string

	if cfg.DataFile == "" {
		errs = append(errs, "data_file is required")
	}
	if len(cfg.Projects) == 0 {
		errs = append(errs, "at least one project is required")
	}

	names := make(map[string]bool)
	for i, p := range cfg.Projects {
		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("projects[%d]: name is required", i))
			continue
		}
		parts := strings.Split(p.Name, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			errs = append(errs, fmt.Sprintf("projects[%d]: name %q must be in owner/repo format", i, p.Name))
		}
		if names[p.Name] {
			errs = append(errs, fmt.Sprintf("projects[%d]: duplicate name %q", i, p.Name))
		}
		names[p.Name] = true

		errs = append(errs, duplicateMilestones(i, "include", p.Milestones.Include)...)
		errs = append(errs, duplicateMilestones(i, "exclude", p.Milestones.Exclude)...)
	}

	return errs
}

func duplicateMilestones(project int, list string, milestones []string) []string {
	var errs []string
	seen := make(map[string]bool)
	for j, m := range milestones {
		if seen[m] {
			errs = append(errs, fmt.Sprintf("projects[%d].milestones.%s[%d]: duplicate milestone %q", project, list, j, m))
		}
		seen[m] = true
	}
	return errs
}
