/*
 * MIT License
 *
 * Copyright (c) 2026 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package netlog is the thin logging surface every node, the network
// controller, and the state-machine manager take at construction instead
// of reaching for a package-level global, mirroring how
// nabbar-golib/logger wraps a pluggable backend behind a small interface.
package netlog

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Logger is the minimal surface consumed across this module.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	// Named returns a child logger carrying name in every formatted line,
	// e.g. the node name or the state machine name.
	Named(name string) Logger
}

// logger wraps a *logrus.Entry.
type logger struct {
	entry *logrus.Entry
}

// spacedFormatter renders "time - name - level - message", the layout
// of every file New writes, such as ./log/network.log.
type spacedFormatter struct{}

func (spacedFormatter) Format(e *logrus.Entry) ([]byte, error) {
	name, _ := e.Data["name"].(string)
	if name == "" {
		name = "-"
	}
	line := e.Time.Format("2006-01-02T15:04:05.000Z07:00") + " - " + name + " - " + e.Level.String() + " - " + e.Message + "\n"
	return []byte(line), nil
}

// New builds a Logger writing to the log file at logFile (serve passes
// <log-dir>/network.log) and, in addition, to stderr
// so a developer running the simulator interactively still sees output.
// name seeds the "name" field on every entry and is what Named
// changes for child loggers.
func New(logFile, name string) (Logger, error) {
	l := logrus.New()
	l.SetFormatter(spacedFormatter{})
	l.SetLevel(logrus.DebugLevel)

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.SetOutput(io.MultiWriter(f, os.Stderr))
	}

	return &logger{entry: l.WithField("name", name)}, nil
}

func (l *logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *logger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }

func (l *logger) Named(name string) Logger {
	return &logger{entry: l.entry.WithField("name", name)}
}

// Noop returns a Logger that discards everything, useful in tests that do
// not want to touch the filesystem.
func Noop() Logger { return noop{} }

type noop struct{}

func (noop) Debugf(string, ...any)  {}
func (noop) Infof(string, ...any)   {}
func (noop) Warnf(string, ...any)   {}
func (noop) Errorf(string, ...any)  {}
func (noop) Named(string) Logger    { return noop{} }
