// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package main

import "fmt"

// Exit codes.
const (
	exitRejected     = 1
	exitNoMatch      = 1
	exitNotAddressed = 2
	exitUsage        = 64
)

// exitError signals a non-zero exit code without printing an extra
// error message. The command has already written its own output.
type exitError struct {
	Code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *exitError) ExitCode() int {
	return e.Code
}
