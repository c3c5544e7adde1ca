package config

import (
	"bytes"
	"fmt"

	"github.com/spf13/viper"

	"github.com/keshon/gitlet/internal/fs"
	"github.com/keshon/gitlet/internal/util"
)

// Settings is the persisted per-repository configuration.
type Settings struct {
	Hash          string `mapstructure:"hash" json:"hash"`
	DefaultBranch string `mapstructure:"default_branch" json:"default_branch"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetDefault("hash", DefaultHash)
	v.SetDefault("default_branch", DefaultBranch)
	return v
}

// DefaultSettings returns the settings for a new repository: built-in defaults
// overridden by GITLET_HASH and GITLET_DEFAULT_BRANCH.
func DefaultSettings() (Settings, error) {
	v := newViper()
	v.SetEnvPrefix("GITLET")
	v.AutomaticEnv()
	return unmarshal(v)
}

// LoadSettings reads config.json of an existing repository. The environment is
// not consulted: objects already on disk were hashed with the persisted algorithm.
func LoadSettings(fsys fs.FS, cfg *RepoConfig) (Settings, error) {
	v := newViper()

	data, err := fsys.ReadFile(cfg.SettingsFile())
	switch {
	case err == nil:
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return Settings{}, fmt.Errorf("failed to parse %q: %w", cfg.SettingsFile(), err)
		}
	case fsys.IsNotExist(err):
		// repositories created without a settings file use the defaults
	default:
		return Settings{}, fmt.Errorf("failed to read %q: %w", cfg.SettingsFile(), err)
	}
	return unmarshal(v)
}

// SaveSettings writes config.json atomically.
func SaveSettings(fsys fs.FS, cfg *RepoConfig, s Settings) error {
	if err := util.WriteJSON(fsys, cfg.SettingsFile(), s); err != nil {
		return fmt.Errorf("failed to save %q: %w", cfg.SettingsFile(), err)
	}
	return nil
}

func unmarshal(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to decode settings: %w", err)
	}
	return s, nil
}
