// CLASSIFICATION: COMMUNITY
// Filename: bind_plan9.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-17
// License: SPDX-License-Identifier: MIT OR Apache-2.0

//go:build plan9

package devserver

import "strings"

// Plan 9 reports errors as strings only.
func isAddrInUse(err error) bool {
	return strings.Contains(err.Error(), "address in use")
}
