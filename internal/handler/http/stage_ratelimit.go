// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-secure-api/internal/logger"
	"github.com/MKhiriev/go-secure-api/internal/pipeline"
)

const (
	headerRetryAfter         = "Retry-After"
	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
)

// rateLimit counts requests under the configured prefix per client key.
// An exhausted client gets a plain-text 429 straight from the stage. A
// failing store lets the request through.
func (h *Handler) rateLimit(c *pipeline.Context) pipeline.Result {
	cfg := h.cfg.Security.RateLimit
	if !underPrefix(c.Request.URL.Path, cfg.Prefix) {
		return pipeline.Continue()
	}

	log := logger.FromRequest(c.Request)
	key := h.keyFunc(c.Request)

	decision, err := h.rateStore.Take(c.Request.Context(), key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("rate limit store failed, request allowed")
		return pipeline.Continue()
	}

	header := c.Writer.Header()
	header.Set(headerRateLimitLimit, strconv.Itoa(decision.Limit))
	header.Set(headerRateLimitRemaining, strconv.Itoa(decision.Remaining))
	header.Set(headerRateLimitReset, strconv.FormatInt(decision.ResetAt.Unix(), 10))

	if decision.Allowed {
		return pipeline.Continue()
	}

	log.Warn().Str("key", key).Dur("retry_after", decision.RetryAfter).Msg("rate limit exceeded")

	return pipeline.Respond(pipeline.Response{
		Status:      http.StatusTooManyRequests,
		ContentType: "text/plain; charset=utf-8",
		Header:      http.Header{headerRetryAfter: {strconv.Itoa(retryAfterSeconds(decision.RetryAfter))}},
		Body:        []byte(cfg.Message),
	})
}

// underPrefix reports whether path is prefix itself or lies below it.
func underPrefix(path, prefix string) bool {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return true
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// retryAfterSeconds rounds d up to whole seconds, at least one.
func retryAfterSeconds(d time.Duration) int {
	seconds := int((d + time.Second - 1) / time.Second)
	return max(seconds, 1)
}
