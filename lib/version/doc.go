// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

// Package version identifies the structbot binary that is running.
//
// Release builds inject [Version], [GitCommit], [GitDirty] and
// [BuildTime] with -ldflags -X. Builds made with plain "go build" or
// "go install" leave them empty, and [Current] falls back to the VCS
// stamp and module version the go command embeds. The result is shown
// by "structbot --version" and logged once per run at debug level.
package version
