package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	// ConfigPathEnv names the directory searched for a .outline config file.
	ConfigPathEnv = "OUTLINE_CONFIG_PATH"
	defaultPath   = "~/.outline.db"
)

type Config interface {
	BasePath() string
}

// LoadConfig reads .outline.yaml from OUTLINE_CONFIG_PATH or the working
// directory. OUTLINE_PATH overrides the configured storage path.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetConfigName(".outline") // .yaml is implicit
	v.SetEnvPrefix("OUTLINE")
	v.AutomaticEnv()

	if override := os.Getenv(ConfigPathEnv); override != "" {
		v.AddConfigPath(override)
	}

	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	return &fileConfig{Path: path, File: v.ConfigFileUsed()}, nil
}

type fileConfig struct {
	Path string `json:"path"`
	File string `json:"file,omitempty"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

// ConfigFile returns the config file that was read, or "" if defaults were used.
func (f *fileConfig) ConfigFile() string {
	return f.File
}

// StaticConfig is a Config with a fixed base path.
type StaticConfig string

func (s StaticConfig) BasePath() string {
	return string(s)
}
