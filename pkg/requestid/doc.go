// Package requestid attaches a correlation ID to every HTTP request.
//
// Middleware reuses a well-formed X-Request-ID header from the client or
// generates a UUIDv4, stores the ID in the request context and echoes it in
// the response header. LoggerExtractor plugs the ID into pkg/logger so every
// record written with the request context carries a "request_id" attribute,
// including the sanitizer's per-field debug lines.
package requestid
