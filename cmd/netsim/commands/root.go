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

// Package commands builds the netsim command tree: a persistent set of
// config-file flags bound through viper, and the serve/validate
// subcommands that load a topology and either run it or just check it.
package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config collects the file paths every subcommand needs, bound to flags
// and environment variables through viper so NETSIM_NETWORK etc. work
// the same as --network.
type Config struct {
	Network    string
	Descriptor string
	Defaults   string
	Glitches   string
	LogDir     string
	Watch      bool
}

// Root builds the top-level "netsim" command with its persistent flags
// and both subcommands attached.
func Root(version string) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("netsim")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:     "netsim",
		Short:   "Run or validate a simulated node network",
		Long:    "netsim builds a network of simulated protocol nodes from a set of YAML files and either runs it or checks it without starting anything.",
		Version: version,
	}

	flags := root.PersistentFlags()
	flags.String("network", "network.yaml", "path to the network topology file")
	flags.String("descriptor", "control.yaml", "path to the control request descriptor file")
	flags.String("defaults", "defaults.yaml", "path to the default payload file")
	flags.String("glitches", "glitches.yaml", "path to the glitch payload file")
	flags.String("log-dir", "./log", "directory for network.log (statemachine.log is not written)")
	flags.Bool("watch", false, "reload default/glitch payloads on change")

	_ = v.BindPFlag("network", flags.Lookup("network"))
	_ = v.BindPFlag("descriptor", flags.Lookup("descriptor"))
	_ = v.BindPFlag("defaults", flags.Lookup("defaults"))
	_ = v.BindPFlag("glitches", flags.Lookup("glitches"))
	_ = v.BindPFlag("log-dir", flags.Lookup("log-dir"))
	_ = v.BindPFlag("watch", flags.Lookup("watch"))

	cfg := func() Config {
		return Config{
			Network:    v.GetString("network"),
			Descriptor: v.GetString("descriptor"),
			Defaults:   v.GetString("defaults"),
			Glitches:   v.GetString("glitches"),
			LogDir:     v.GetString("log-dir"),
			Watch:      v.GetBool("watch"),
		}
	}

	root.AddCommand(serveCommand(cfg))
	root.AddCommand(validateCommand(cfg))

	return root
}
