// SPDX-License-Identifier: GPL-3.0-or-later

package web

import (
	"context"
	"fmt"
	"io"
	"maps"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/willyd61/grafana-customTables-panel/pkg/buildinfo"
)

// RequestConfig is the configuration of the HTTP request.
type RequestConfig struct {
	// URL specifies the URL to access.
	URL string `yaml:"url" json:"url"`

	// Username and Password are used for basic authentication.
	Username string `yaml:"username,omitempty" json:"username"`
	Password string `yaml:"password,omitempty" json:"password"`

	// BearerTokenFile is a file holding a token sent as "Authorization: Bearer <token>".
	// It takes priority over basic authentication.
	BearerTokenFile string `yaml:"bearerTokenFile,omitempty" json:"bearerTokenFile"`

	// Method specifies the HTTP method. An empty string means GET.
	Method string `yaml:"method,omitempty" json:"method"`

	Headers map[string]string `yaml:"headers,omitempty" json:"headers"`

	Body string `yaml:"body,omitempty" json:"body"`
}

// Copy makes a full copy of the RequestConfig.
func (r RequestConfig) Copy() RequestConfig {
	if r.Headers != nil {
		r.Headers = maps.Clone(r.Headers)
	}
	return r
}

var userAgent = fmt.Sprintf("tablepanel/%s", buildinfo.Version)

// NewHTTPRequest returns a new *http.Request given a RequestConfig configuration and an error if any.
func NewHTTPRequest(ctx context.Context, cfg RequestConfig) (*http.Request, error) {
	var body io.Reader
	if cfg.Body != "" {
		body = strings.NewReader(cfg.Body)
	}

	method := cfg.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, cfg.URL, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", userAgent)

	if err := setAuthentication(req, cfg); err != nil {
		return nil, err
	}

	for k, v := range cfg.Headers {
		switch strings.ToLower(k) {
		case "host":
			req.Host = v
		default:
			req.Header.Set(k, v)
		}
	}

	return req, nil
}

// NewHTTPRequestWithQuery creates a new HTTP request with the query parameters added to the URL.
func NewHTTPRequestWithQuery(ctx context.Context, cfg RequestConfig, query url.Values) (*http.Request, error) {
	if len(query) == 0 {
		return NewHTTPRequest(ctx, cfg)
	}

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}

	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	cfg = cfg.Copy()
	cfg.URL = u.String()

	return NewHTTPRequest(ctx, cfg)
}

func setAuthentication(req *http.Request, cfg RequestConfig) error {
	switch {
	case cfg.BearerTokenFile != "":
		return setBearerTokenAuth(req, cfg.BearerTokenFile)
	case cfg.Username != "" || cfg.Password != "":
		req.SetBasicAuth(cfg.Username, cfg.Password)
	}
	return nil
}

func setBearerTokenAuth(req *http.Request, tokenFile string) error {
	tokenBs, err := os.ReadFile(tokenFile)
	if err != nil {
		return fmt.Errorf("bearer token file: %w", err)
	}

	token := strings.TrimSpace(string(tokenBs))
	if token == "" {
		return fmt.Errorf("bearer token file is empty")
	}

	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}
