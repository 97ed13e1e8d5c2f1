// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags, for example:
//
//	go build -ldflags "-X github.com/YushiOMOTE/structbotopt/lib/version.Version=v0.3.0" ./cmd/structbot
var (
	Version   string
	GitCommit string
	GitDirty  string
	BuildTime string
)

const (
	develVersion = "devel"
	unknown      = "unknown"
	shortCommit  = 7
)

// Build describes one structbot binary.
type Build struct {
	Version string
	Commit  string
	Dirty   bool
	Time    string
	Go      string
}

// Current resolves the running binary's build.
func Current() Build {
	info, _ := debug.ReadBuildInfo()
	return resolve(info)
}

// resolve prefers linker-injected values and fills the rest from info,
// which may be nil.
func resolve(info *debug.BuildInfo) Build {
	build := Build{
		Version: Version,
		Commit:  GitCommit,
		Dirty:   GitDirty == "true",
		Time:    BuildTime,
		Go:      runtime.Version(),
	}

	if info != nil {
		if build.Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			build.Version = info.Main.Version
		}
		settings := make(map[string]string, len(info.Settings))
		for _, setting := range info.Settings {
			settings[setting.Key] = setting.Value
		}
		if build.Commit == "" {
			build.Commit = settings["vcs.revision"]
			if len(build.Commit) > shortCommit {
				build.Commit = build.Commit[:shortCommit]
			}
			// The modified flag only describes the stamped revision.
			build.Dirty = build.Dirty || settings["vcs.modified"] == "true"
		}
		if build.Time == "" {
			build.Time = settings["vcs.time"]
		}
	}

	if build.Version == "" {
		build.Version = develVersion
	}
	if build.Commit == "" {
		build.Commit = unknown
	}
	if build.Time == "" {
		build.Time = unknown
	}
	return build
}

// String is the --version form: "v0.3.0 (abc1234-dirty, 2026-10-19T00:00:00Z)".
func (build Build) String() string {
	dirty := ""
	if build.Dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", build.Version, build.Commit, dirty, build.Time)
}

// LogValue groups the build under one log attribute.
func (build Build) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("version", build.Version),
		slog.String("commit", build.Commit),
		slog.Bool("dirty", build.Dirty),
		slog.String("time", build.Time),
		slog.String("go", build.Go),
	)
}

// Info returns Current().String().
func Info() string {
	return Current().String()
}
