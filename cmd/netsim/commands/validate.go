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

	"github.com/spf13/cobra"

	"github.com/sabouaram/netsim/netlog"
)

// validateCommand loads and builds the configured network without
// starting anything, so a broken topology, descriptor or payload file
// fails fast instead of at serve time.
func validateCommand(cfg func() Config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configured network and report errors without starting it",
		Long:  "validate reads the network, descriptor and payload files, builds every node's message catalog and reports the first error encountered. Nothing is started.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			rt, err := build(c, netlog.Noop())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d node(s) configured", len(rt.built.Nodes))
			if rt.built.ControlNode != "" {
				fmt.Fprintf(cmd.OutOrStdout(), ", control node %q", rt.built.ControlNode)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}
}
