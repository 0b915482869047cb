// CLASSIFICATION: COMMUNITY
// Filename: bind_windows.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-17
// License: SPDX-License-Identifier: MIT OR Apache-2.0

//go:build windows

package devserver

import (
	"errors"
	"syscall"
)

// WSAEADDRINUSE
const errWSAAddrInUse = syscall.Errno(10048)

func isAddrInUse(err error) bool {
	return errors.Is(err, errWSAAddrInUse) || errors.Is(err, syscall.EADDRINUSE)
}
