// Package http implements the HTTP transport layer of the job tracker.
//
// It exposes the /api/v1/auth routes, the version, health and metrics
// endpoints, and the middleware chain in front of them: request tracing,
// access logging and metrics, security headers and CORS, per-IP rate
// limiting and the access gate that turns a bearer token into a
// [models.Identity] on the request context.
package http
