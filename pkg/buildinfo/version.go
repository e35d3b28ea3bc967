// SPDX-License-Identifier: GPL-3.0-or-later

package buildinfo

import "fmt"

// Version stores the plugin's version number. It's set during the build process using build flags.
var Version = "v0.0.0"

// Info returns a one-line description of the build.
func Info() string {
	return fmt.Sprintf("version: %s", Version)
}
