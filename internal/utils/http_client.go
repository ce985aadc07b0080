// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around resty.Client. It embeds *resty.Client so
// every resty method stays available to callers.
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOptions configures NewHTTPClient. Zero values leave the resty
// defaults in place.
type HTTPClientOptions struct {
	// BaseURL is prepended to relative request URLs.
	BaseURL string
	// Timeout bounds one request including reading the body.
	Timeout time.Duration
	// Token is sent as a bearer credential on every request.
	Token string
	// UserAgent overrides the resty default.
	UserAgent string
}

// NewHTTPClient returns an independent client with its own connection pool.
// Automatic retries stay disabled: a command submission must never be
// repeated behind the caller's back.
func NewHTTPClient(opts HTTPClientOptions) *HTTPClient {
	c := resty.New().SetRetryCount(0)

	if opts.BaseURL != "" {
		c.SetBaseURL(opts.BaseURL)
	}
	if opts.Timeout > 0 {
		c.SetTimeout(opts.Timeout)
	}
	if opts.Token != "" {
		c.SetAuthToken(opts.Token)
	}
	if opts.UserAgent != "" {
		c.SetHeader("User-Agent", opts.UserAgent)
	}

	return &HTTPClient{Client: c}
}
