// Package logger builds *slog.Logger instances for the card-search service.
//
// New takes functional options that pick the output format, minimum level,
// static attributes and ContextExtractor callbacks. Extractors run on every
// record, so request-scoped values such as the request ID show up without
// being passed explicitly:
//
//	log := logger.New(
//		logger.WithEnvironment(config.Production, "cardsearch"),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "form sanitized", logger.FormID("searchForm"), logger.Fields(1))
//
// Development uses text output at DEBUG level so the sanitizer's
// "Sanitized '...' to '...'" lines are visible; staging and production use
// JSON at INFO.
//
// Attribute helpers in attr.go keep key names consistent. Error and Errors
// return an empty slog.Attr for nil errors, which slog drops.
package logger
