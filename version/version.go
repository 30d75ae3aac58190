// Copyright © 2025 RNano contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package version

// Name and Version identify the build in the title bar and --version
// output.
const (
	Name    = "rnano"
	Version = "0.4.0"
)

// Full returns the display string, e.g. "rnano v0.4.0".
func Full() string {
	return Name + " v" + Version
}
