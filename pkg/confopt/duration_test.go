// SPDX-License-Identifier: GPL-3.0-or-later

package confopt

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestDuration_MarshalYAML(t *testing.T) {
	tests := map[string]struct {
		d    Duration
		want string
	}{
		"1 second":    {d: Duration(time.Second), want: "1"},
		"1.5 seconds": {d: Duration(time.Second + time.Millisecond*500), want: "1.5"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			bs, err := yaml.Marshal(&test.d)
			require.NoError(t, err)

			assert.Equal(t, test.want, strings.TrimSpace(string(bs)))
		})
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		"duration":       {input: "delay: 300ms", want: 300 * time.Millisecond},
		"int seconds":    {input: "delay: 2", want: 2 * time.Second},
		"float seconds":  {input: "delay: 1.5", want: 1500 * time.Millisecond},
		"garbage errors": {input: "delay: soon", wantErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var v struct {
				Delay Duration `yaml:"delay"`
			}
			err := yaml.Unmarshal([]byte(test.input), &v)

			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, v.Delay.Duration())
		})
	}
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := map[string]struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		"quoted duration": {input: `{"delay":"500ms"}`, want: 500 * time.Millisecond},
		"number seconds":  {input: `{"delay":3}`, want: 3 * time.Second},
		"float seconds":   {input: `{"delay":0.25}`, want: 250 * time.Millisecond},
		"null keeps zero": {input: `{"delay":null}`, want: 0},
		"garbage errors":  {input: `{"delay":"later"}`, wantErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var v struct {
				Delay Duration `json:"delay"`
			}
			err := json.Unmarshal([]byte(test.input), &v)

			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, v.Delay.Duration())
		})
	}
}

func TestDuration_MarshalJSON(t *testing.T) {
	bs, err := json.Marshal(Duration(time.Second + time.Millisecond*500))
	require.NoError(t, err)

	assert.Equal(t, "1.5", string(bs))
}
