package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"scripture-tui/internal/api"

	"github.com/pelletier/go-toml/v2"
)

type Settings struct {
	Theme     string             `toml:"theme"` // "dark" or "light"
	LastQuery string             `toml:"last_query"`
	Passage   api.PassageOptions `toml:"passage"`
}

// Default is used when no settings file exists yet.
func Default() Settings {
	return Settings{Theme: "dark"}
}

func configPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "scripture-tui", "settings.toml"), nil
}

func Load() (Settings, error) {
	path, err := configPath()
	if err != nil {
		return Default(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads settings from path. A missing file yields the defaults.
func LoadFrom(path string) (Settings, error) {
	s := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return s, err
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return Default(), err
	}
	return s, nil
}

func Save(s Settings) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return SaveTo(path, s)
}

func SaveTo(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(s)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
