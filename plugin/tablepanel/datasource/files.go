// SPDX-License-Identifier: GPL-3.0-or-later

package datasource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sourcegraph/conc/iter"

	"github.com/willyd61/grafana-customTables-panel/pkg/tabledata"
)

// Files reads datasets from the JSON files matching the patterns.
// Patterns support "**". Datasets without a refId are named after their file.
type Files struct {
	Patterns []string `yaml:"patterns" json:"patterns"`
	// MaxReaders limits the files decoded at once. Zero means no limit.
	MaxReaders int `yaml:"maxReaders,omitempty" json:"maxReaders"`
}

func (f Files) Fetch(ctx context.Context) ([]*tabledata.Dataset, error) {
	paths, err := f.Paths()
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	mapper := iter.Mapper[string, []*tabledata.Dataset]{MaxGoroutines: f.MaxReaders}
	results, err := mapper.MapErr(paths, func(path *string) ([]*tabledata.Dataset, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return readFile(*path)
	})
	if err != nil {
		return nil, err
	}

	var list []*tabledata.Dataset
	for _, res := range results {
		list = append(list, res...)
	}
	return list, nil
}

// Paths returns the sorted files matching the patterns. A file matched twice is listed once.
func (f Files) Paths() ([]string, error) {
	if len(f.Patterns) == 0 {
		return nil, errors.New("no dataset file patterns")
	}

	var paths []string
	for _, pattern := range f.Patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob '%s': %v", pattern, err)
		}
		paths = append(paths, matches...)
	}

	slices.Sort(paths)
	return slices.Compact(paths), nil
}

func readFile(path string) ([]*tabledata.Dataset, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	list, err := tabledata.Decode(bs)
	if err != nil {
		return nil, fmt.Errorf("decode '%s': %v", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i, ds := range list {
		if ds.RefID != "" {
			continue
		}
		ds.RefID = name
		if len(list) > 1 {
			ds.RefID = fmt.Sprintf("%s-%d", name, i+1)
		}
	}

	return list, nil
}
