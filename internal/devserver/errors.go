// CLASSIFICATION: COMMUNITY
// Filename: errors.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-17
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package devserver

import (
	"errors"
	"fmt"
)

var (
	// ErrAddrInUse is matched by errors.Is for a *BindError.
	ErrAddrInUse = errors.New("address already in use")
	// ErrInvalidPort signals a port outside 0-65535.
	ErrInvalidPort = errors.New("invalid port")
	// ErrNoRoot signals an empty Config.Root.
	ErrNoRoot = errors.New("root directory required")
	// ErrNotDir signals a Config.Root that is not a directory.
	ErrNotDir = errors.New("not a directory")
)

// MaxPort is the highest valid TCP port.
const MaxPort = 65535

// BindError reports that the listen port is already bound by another
// process.
type BindError struct {
	Addr string
	Port int
	Err  error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("port %d is already in use", e.Port)
}

func (e *BindError) Unwrap() error { return e.Err }

// Is reports whether target is ErrAddrInUse.
func (e *BindError) Is(target error) bool { return target == ErrAddrInUse }

// Suggest returns the port an operator should try next.
func (e *BindError) Suggest() int {
	if e.Port >= MaxPort {
		return e.Port - 1
	}
	return e.Port + 1
}
