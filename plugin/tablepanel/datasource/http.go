// SPDX-License-Identifier: GPL-3.0-or-later

package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/willyd61/grafana-customTables-panel/pkg/placeholder"
	"github.com/willyd61/grafana-customTables-panel/pkg/tabledata"
	"github.com/willyd61/grafana-customTables-panel/pkg/web"
)

// HTTP fetches datasets from an endpoint answering with dataset JSON.
// The time range, when known, is sent as the "from" and "to" query parameters.
type HTTP struct {
	web.HTTPConfig `yaml:",inline" json:""`

	TimeRange *placeholder.TimeRange `yaml:"-" json:"-"`

	client *http.Client
}

func NewHTTP(cfg web.HTTPConfig) (*HTTP, error) {
	if cfg.URL == "" {
		return nil, errors.New("url required")
	}
	client, err := web.NewHTTPClient(cfg.ClientConfig)
	if err != nil {
		return nil, err
	}
	return &HTTP{HTTPConfig: cfg, client: client}, nil
}

func (h *HTTP) Fetch(ctx context.Context) ([]*tabledata.Dataset, error) {
	var query url.Values
	if tr := h.TimeRange; tr != nil {
		query = url.Values{"from": {tr.From}, "to": {tr.To}}
	}

	req, err := web.NewHTTPRequestWithQuery(ctx, h.RequestConfig, query)
	if err != nil {
		return nil, fmt.Errorf("create request: %v", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("'%s' returned HTTP status code: %d", req.URL, resp.StatusCode)
	}

	bs, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return tabledata.Decode(bs)
}

func closeBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
}
