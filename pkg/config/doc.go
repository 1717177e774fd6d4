// Package config loads process configuration from environment variables.
//
// Values come from the environment, optionally seeded from a `.env` file in
// the working directory (github.com/joho/godotenv), and are parsed into
// structs with `env` tags (github.com/caarlos0/env/v11). Each struct type is
// parsed once and cached for the lifetime of the process.
//
//	type SiteConfig struct {
//		FormsFile     string `env:"FORMS_FILE"`
//		Transliterate bool   `env:"SANITIZE_TRANSLITERATE" envDefault:"false"`
//	}
//
//	var cfg SiteConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// The package also names the deployment environments understood by the
// logger factory (see Environment and ParseEnvironment).
package config
