// Command server serves the card search site.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/mtgqe/cardsearch/internal/site"
	"github.com/mtgqe/cardsearch/pkg/config"
	"github.com/mtgqe/cardsearch/pkg/forms"
	"github.com/mtgqe/cardsearch/pkg/httpserver"
	"github.com/mtgqe/cardsearch/pkg/logger"
	"github.com/mtgqe/cardsearch/pkg/requestid"
	"github.com/mtgqe/cardsearch/pkg/sanitizer"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg site.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}
	var httpCfg httpserver.Config
	if err := config.Load(&httpCfg); err != nil {
		return err
	}

	env, err := cfg.Environment()
	if err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(env, cfg.AppName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	reg, err := forms.Load(cfg.FormsFile)
	if err != nil {
		return err
	}
	ids := make([]string, 0, reg.Len())
	for _, f := range reg.Forms() {
		ids = append(ids, f.ID)
	}
	log.Info("forms loaded", slog.Any("forms", ids), slog.String("file", cfg.FormsFile))

	sanitizerOpts := []sanitizer.Option{sanitizer.WithLogger(log.With(logger.Component("sanitizer")))}
	if cfg.Transliterate {
		sanitizerOpts = append(sanitizerOpts, sanitizer.WithTransliteration())
	}
	text := sanitizer.New(sanitizerOpts...)
	log.Info("sanitizer ready", slog.Bool("transliterate", text.Transliterates()))

	s, err := site.New(reg, text,
		site.WithLogger(log),
		site.WithMaxFormBytes(cfg.MaxFormBytes),
	)
	if err != nil {
		return err
	}

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, s.Router())
}
