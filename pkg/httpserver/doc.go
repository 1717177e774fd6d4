// Package httpserver runs an http.Handler with graceful shutdown.
//
// Run blocks until its context is cancelled, the process receives SIGINT or
// SIGTERM, or the listener fails. Shutdown drains in-flight requests within
// the configured timeout. Settings come from Config (environment variables
// HTTP_ADDR, HTTP_READ_TIMEOUT, ...) or from Option values:
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// HealthCheckHandler serves liveness and readiness checks.
package httpserver
