// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// fileWriter replaces the file content on every Write, so each draw leaves a complete document.
type fileWriter string

func (f fileWriter) Write(p []byte) (int, error) {
	if err := os.WriteFile(string(f), p, 0o644); err != nil {
		return 0, err
	}
	return len(p), nil
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}

// lockOutput takes the "<output>.lock" file lock, so two instances never write the same output.
func lockOutput(output string) (*flock.Flock, error) {
	locker := flock.New(output + ".lock")

	ok, err := locker.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock output '%s': %v", output, err)
	}
	if !ok {
		_ = locker.Close()
		return nil, fmt.Errorf("output '%s' is written by another instance", output)
	}
	return locker, nil
}
