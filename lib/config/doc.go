// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for structbot.
//
// Configuration is loaded from a single file specified by either the
// STRUCTBOT_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There are no fallbacks and no automatic file
// search. Without a file, callers use [Default].
//
// Files ending in .json or .jsonc are parsed as JSON with comments and
// trailing commas; anything else is parsed as YAML.
//
// The file declares the chat commands the bot answers ([Config.Commands],
// see cmdschema.CommandDecl), logging, and terminal rendering options.
// Environment-specific sections (development, staging, production)
// override base values when [Config].Environment matches. Production
// defaults to JSON logs at warn level.
//
// Key exports:
//
//   - [Config] -- master struct with Log, Chat, and Commands
//   - [Default] -- returns a Config with development defaults and a demo command
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
