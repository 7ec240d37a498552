package config

import (
	"errors"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/gymfitness/membership/internal/flagx"
	"github.com/joho/godotenv"
)

// parseEnv overlays GYM_* environment variables onto config. Variables from
// a dotenv file (-env-file, or ./.env when present) are loaded first and
// never override variables already set in the process environment.
// Unset variables leave the current value untouched. Malformed values panic.
func parseEnv(config *Config) {
	if err := loadEnvFile(flagx.EnvFileFlag()); err != nil {
		panic(err)
	}
	if err := env.Parse(config); err != nil {
		panic(err)
	}
}

func loadEnvFile(path string) error {
	if path != "" {
		return godotenv.Load(path)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
