// SPDX-License-Identifier: GPL-3.0-or-later

package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/willyd61/grafana-customTables-panel/pkg/confopt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestConfig_Copy(t *testing.T) {
	orig := RequestConfig{URL: "http://127.0.0.1/data", Headers: map[string]string{"X-Api-Key": "secret"}}

	cp := orig.Copy()
	cp.Headers["X-Other"] = "value"
	cp.URL = "http://changed"

	assert.Len(t, orig.Headers, 1)
	assert.Equal(t, "http://127.0.0.1/data", orig.URL)
	assert.Nil(t, RequestConfig{}.Copy().Headers)
}

func TestNewHTTPRequest(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenFile, []byte(" test-token\n"), 0o644))
	emptyTokenFile := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(emptyTokenFile, nil, 0o644))

	tests := map[string]struct {
		cfg      RequestConfig
		validate func(t *testing.T, req *http.Request)
		wantErr  bool
	}{
		"defaults": {
			cfg: RequestConfig{URL: "http://127.0.0.1/data"},
			validate: func(t *testing.T, req *http.Request) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Nil(t, req.Body)
				assert.Contains(t, req.Header.Get("User-Agent"), "tablepanel/")
			},
		},
		"full": {
			cfg: RequestConfig{
				URL:      "http://127.0.0.1/data",
				Method:   http.MethodPost,
				Body:     `{"query": 1}`,
				Username: "user",
				Password: "pass",
				Headers:  map[string]string{"Content-Type": "application/json", "Host": "example.com"},
			},
			validate: func(t *testing.T, req *http.Request) {
				assert.Equal(t, http.MethodPost, req.Method)
				body, err := io.ReadAll(req.Body)
				require.NoError(t, err)
				assert.Equal(t, `{"query": 1}`, string(body))
				user, pass, ok := req.BasicAuth()
				assert.True(t, ok)
				assert.Equal(t, "user", user)
				assert.Equal(t, "pass", pass)
				assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
				assert.Equal(t, "example.com", req.Host)
			},
		},
		"bearer token wins over basic auth": {
			cfg: RequestConfig{URL: "http://127.0.0.1/data", Username: "user", BearerTokenFile: tokenFile},
			validate: func(t *testing.T, req *http.Request) {
				assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
			},
		},
		"missing token file": {
			cfg:     RequestConfig{URL: "http://127.0.0.1/data", BearerTokenFile: filepath.Join(t.TempDir(), "missing")},
			wantErr: true,
		},
		"empty token file": {
			cfg:     RequestConfig{URL: "http://127.0.0.1/data", BearerTokenFile: emptyTokenFile},
			wantErr: true,
		},
		"invalid method": {
			cfg:     RequestConfig{URL: "http://127.0.0.1/data", Method: "BAD METHOD"},
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			req, err := NewHTTPRequest(context.Background(), test.cfg)

			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			test.validate(t, req)
		})
	}
}

func TestNewHTTPRequestWithQuery(t *testing.T) {
	tests := map[string]struct {
		url     string
		query   url.Values
		want    string
		wantErr bool
	}{
		"no query": {
			url:  "http://127.0.0.1/data?a=1",
			want: "http://127.0.0.1/data?a=1",
		},
		"merged": {
			url:   "http://127.0.0.1/data?a=1",
			query: url.Values{"from": {"now-1h"}, "to": {"now"}},
			want:  "http://127.0.0.1/data?a=1&from=now-1h&to=now",
		},
		"invalid url": {
			url:     "http://[::1",
			query:   url.Values{"from": {"now"}},
			wantErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			req, err := NewHTTPRequestWithQuery(context.Background(), RequestConfig{URL: test.url}, test.query)

			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, req.URL.String())
		})
	}
}

func TestNewHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusFound)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	tests := map[string]struct {
		cfg     ClientConfig
		wantErr bool
	}{
		"follows redirects":      {cfg: ClientConfig{Timeout: confopt.Duration(time.Second)}},
		"does not follow":        {cfg: ClientConfig{NotFollowRedirect: true}, wantErr: true},
		"invalid proxy is error": {cfg: ClientConfig{ProxyURL: "http://[::1"}, wantErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			client, err := NewHTTPClient(test.cfg)
			if err != nil {
				assert.True(t, test.wantErr)
				return
			}
			assert.Equal(t, test.cfg.Timeout.Duration(), client.Timeout)

			resp, err := client.Get(srv.URL + "/old")
			if test.wantErr {
				assert.ErrorIs(t, err, ErrRedirectAttempted)
				return
			}
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusOK, resp.StatusCode)
		})
	}
}
