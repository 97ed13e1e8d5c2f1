// Copyright 2026 The structbotopt Authors
// SPDX-License-Identifier: Apache-2.0

// Package mdterm renders markdown replies as styled terminal text.
//
// [Render] walks a goldmark AST directly rather than going through
// goldmark's HTML renderer, covering what bot replies contain. Headings
// are bold, paragraphs are word-wrapped with ansi.Wrap so soft line
// breaks reflow at any width, code spans are faint, and fenced code is
// highlighted with chroma. Bullet items get "- " with a hanging indent.
// Indented code and HTML blocks are passed through faint.
//
// Output always uses the ANSI256 profile so previews look the same on
// a terminal and in tests. [Options].Plain strips every escape sequence
// for logs and pipes.
package mdterm
