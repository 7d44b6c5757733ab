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

package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sabouaram/netsim/config"
	"github.com/sabouaram/netsim/netlog"
)

// serveCommand builds the configured network, starts every node, fires
// any message declared periodic in the topology, optionally watches the
// default/glitch payload files for live edits, and blocks until
// SIGINT/SIGTERM. A CloseNetworkRequest delivered over the control node
// stops the same way, without exiting the process.
func serveCommand(cfg func() Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the configured network until interrupted",
		Long:  "serve builds the network, starts every node, begins any periodic messages declared in the topology and blocks until interrupted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()

			log, err := netlog.New(filepath.Join(c.LogDir, "network.log"), "netsim")
			if err != nil {
				return fmt.Errorf("open log: %w", err)
			}

			rt, err := build(c, log)
			if err != nil {
				return err
			}

			if err := rt.ctl.Start(); err != nil {
				return fmt.Errorf("start network: %w", err)
			}
			defer func() { _ = rt.ctl.Stop() }()

			for _, p := range rt.built.AutoPeriodic {
				if err := rt.ctl.StartPeriodic(p.Message, p.Node, 0); err != nil {
					log.Warnf("start periodic %s/%s: %v", p.Node, p.Message, err)
				}
			}

			var watcher *config.Watcher
			if c.Watch {
				watcher, err = config.NewWatcher(c.Defaults, c.Glitches, rt.ctl, log)
				if err != nil {
					return fmt.Errorf("watch payloads: %w", err)
				}
				if err := watcher.Start(); err != nil {
					return fmt.Errorf("watch payloads: %w", err)
				}
				defer func() { _ = watcher.Stop() }()
			}

			fmt.Fprintf(cmd.OutOrStdout(), "netsim: %d node(s) running, press Ctrl-C to stop\n", len(rt.built.Nodes))

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			log.Infof("shutting down")
			return nil
		},
	}
}
