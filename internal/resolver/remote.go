// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The Arbormail Authors

package resolver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Remote fetches content over HTTP(S). The boot manager uses it for
// `arbormailctl import <url>`; it is not registered for document macros
// unless the operator explicitly opts in.
type Remote struct {
	client *resty.Client
}

// NewRemote constructs a [Remote] resolver with the given request timeout.
func NewRemote(timeout time.Duration) *Remote {
	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(3))

	return &Remote{client: client}
}

// Resolve implements the resolver contract for http:// and https:// keys.
func (r *Remote) Resolve(ctx context.Context, url string) ([]byte, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return nil, fmt.Errorf("unsupported url %q: only http and https are fetched remotely", url)
	}

	resp, err := r.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return nil, fmt.Errorf("fetch %s: status 404: %w", url, ErrNotFound)
	case resp.IsError():
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode())
	}

	return resp.Body(), nil
}
