// Copyright 2025 the decopy authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log carries the tool's user-facing console output: tagged
// [decopy] lines for run narration and a pterm-backed summary logger for
// the per-destination outcome. Both mirror everything to zerolog so
// --debug sessions keep a structured trail.
package log

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎯 Logger prints the tool's tagged console lines and mirrors them to
// zerolog at debug level. Safe for use from multiple goroutines.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

var tagStyle = color.New(color.FgMagenta)

// 🏭 New creates a logger writing tagged lines to console
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🏭 FromContext builds a logger on the context's zerolog logger
func FromContext(ctx context.Context, console io.Writer) *Logger {
	return New(console, *zerolog.Ctx(ctx))
}

// tag is the prefix every console line carries.
const tag = "[decopy]"

// 📝 Info prints one tagged line
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "%s %s\n", tagStyle.Sprint(tag), msg)
	l.zlog.Debug().Msg(msg)
}

// 📝 Infof prints one formatted tagged line
func (l *Logger) Infof(format string, args ...interface{}) {
	l.Info(fmt.Sprintf(format, args...))
}

// 📝 Dim prints one dimmed, indented line without the tag. Used for the
// pre-copy directory preview.
func (l *Logger) Dim(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "  %s\n", color.New(color.Faint).Sprint(msg))
	l.zlog.Debug().Msg(msg)
}

// 📝 Newline prints a blank console line
func (l *Logger) Newline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}
