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

package config

import (
	"github.com/fsnotify/fsnotify"

	"github.com/sabouaram/netsim/netlog"
	"github.com/sabouaram/netsim/network"
)

// Watcher reloads the default and glitch payload files into the running
// Controller whenever either changes on disk.
type Watcher struct {
	fsw          *fsnotify.Watcher
	defaultsPath string
	glitchesPath string
	ctl          *network.Controller
	log          netlog.Logger
	done         chan struct{}
}

// NewWatcher builds a Watcher that applies future edits of defaultsPath and
// glitchesPath onto ctl. Call Start to begin watching, Stop to release the
// underlying OS watch.
func NewWatcher(defaultsPath, glitchesPath string, ctl *network.Controller, log netlog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = netlog.Noop()
	}
	return &Watcher{
		fsw:          fsw,
		defaultsPath: defaultsPath,
		glitchesPath: glitchesPath,
		ctl:          ctl,
		log:          log.Named("config"),
		done:         make(chan struct{}),
	}, nil
}

// Start adds both payload files to the watch set and spawns the reload
// loop. It is not idempotent: call it once.
func (w *Watcher) Start() error {
	if err := w.fsw.Add(w.defaultsPath); err != nil {
		return err
	}
	if err := w.fsw.Add(w.glitchesPath); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the underlying fsnotify watcher and waits for the reload
// loop to exit.
func (w *Watcher) Stop() error {
	err := w.fsw.Close()
	<-w.done
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.reload(ev.Name)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warnf("watch error: %v", err)
		}
	}
}

func (w *Watcher) reload(path string) {
	payloads, err := LoadPayloads(path)
	if err != nil {
		w.log.Warnf("reload %s: %v", path, err)
		return
	}

	glitch := path == w.glitchesPath
	if err := w.ctl.ReloadPayloads(payloads, glitch); err != nil {
		w.log.Warnf("apply %s: %v", path, err)
		return
	}
	w.log.Infof("reloaded %s", path)
}
