package site

import (
	"fmt"

	"github.com/mtgqe/cardsearch/pkg/config"
)

// Config is read from the environment by config.Load.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"cardsearch"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`

	// FormsFile overrides the embedded form definitions.
	FormsFile string `env:"FORMS_FILE"`
	// Transliterate folds non-ASCII letters before sanitizing instead of
	// blanking them.
	Transliterate bool `env:"SANITIZE_TRANSLITERATE" envDefault:"false"`
	// MaxFormBytes limits POST submissions.
	MaxFormBytes int64 `env:"MAX_FORM_BYTES" envDefault:"1048576"`
}

// Environment parses AppEnv.
func (c Config) Environment() (config.Environment, error) {
	env, err := config.ParseEnvironment(c.AppEnv)
	if err != nil {
		return "", fmt.Errorf("APP_ENV: %w", err)
	}
	return env, nil
}
