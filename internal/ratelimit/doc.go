// Package ratelimit implements a fixed-window request limiter backed by
// Redis counters. A key is usually the client IP; every key gets Requests
// hits per Window, after which [Limiter.Allow] reports the request as
// limited until the window's key expires.
package ratelimit
