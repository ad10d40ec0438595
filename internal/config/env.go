package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that provide flag defaults.
const (
	EnvDB         = "LABYRINTH_DB"
	EnvPlayer     = "LABYRINTH_PLAYER"
	EnvConfig     = "LABYRINTH_CONFIG"
	EnvDifficulty = "LABYRINTH_DIFFICULTY"
)

// Env holds settings read from the process environment.
type Env struct {
	DBPath     string
	Player     string
	ConfigPath string
	Difficulty string
}

// LoadEnv reads .env files (default ./.env) into the process environment
// without overriding variables that are already set, then collects the
// labyrinth settings. Missing files are not an error.
func LoadEnv(files ...string) (Env, error) {
	var loadErr error
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		loadErr = err
	}

	return Env{
		DBPath:     os.Getenv(EnvDB),
		Player:     os.Getenv(EnvPlayer),
		ConfigPath: os.Getenv(EnvConfig),
		Difficulty: os.Getenv(EnvDifficulty),
	}, loadErr
}

// Or returns value when set, otherwise fallback.
func Or(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
