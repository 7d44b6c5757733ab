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

package commands_test

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/sabouaram/netsim/cmd/netsim/commands"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func writeFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
	return path
}

var _ = Describe("Root", func() {
	It("wires the serve and validate subcommands", func() {
		root := commands.Root("test")
		names := make([]string, 0)
		for _, c := range root.Commands() {
			names = append(names, c.Name())
		}
		Expect(names).To(ContainElements("serve", "validate"))
	})

	It("exposes the persistent config flags", func() {
		root := commands.Root("test")
		for _, name := range []string{"network", "descriptor", "defaults", "glitches", "log-dir", "watch"} {
			Expect(root.PersistentFlags().Lookup(name)).ToNot(BeNil())
		}
	})
})

var _ = Describe("validate", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		writeFile(dir, "network.yaml", `
A:
  protocol: spec_tcp
  role: server
  host: 127.0.0.1
  port: 9100
  messages:
    Ping:
      direction: in
ctl:
  protocol: zmq_rep
  role: bidirectional
  control: true
`)
		writeFile(dir, "control.yaml", `
SendMessageRequest:
  payload:
    required: [message]
    optional:
      node: ""
`)
		writeFile(dir, "defaults.yaml", "{}\n")
		writeFile(dir, "glitches.yaml", "{}\n")
	})

	It("reports success for a well-formed topology", func() {
		root := commands.Root("test")
		buf := &bytes.Buffer{}
		root.SetOut(buf)
		root.SetArgs([]string{
			"validate",
			"--network", filepath.Join(dir, "network.yaml"),
			"--descriptor", filepath.Join(dir, "control.yaml"),
			"--defaults", filepath.Join(dir, "defaults.yaml"),
			"--glitches", filepath.Join(dir, "glitches.yaml"),
		})
		Expect(root.Execute()).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("2 node(s) configured"))
		Expect(buf.String()).To(ContainSubstring(`control node "ctl"`))
	})

	It("fails when the network file is missing", func() {
		root := commands.Root("test")
		root.SetOut(&bytes.Buffer{})
		root.SetArgs([]string{
			"validate",
			"--network", filepath.Join(dir, "missing.yaml"),
			"--descriptor", filepath.Join(dir, "control.yaml"),
			"--defaults", filepath.Join(dir, "defaults.yaml"),
			"--glitches", filepath.Join(dir, "glitches.yaml"),
		})
		Expect(root.Execute()).To(HaveOccurred())
	})
})
