package config_test

import (
	"os"
	"path/filepath"

	"github.com/sabouaram/netsim/config"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func writeFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
	return path
}

var _ = Describe("loaders", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("decodes a network topology file", func() {
		path := writeFile(dir, "network.yaml", `
A:
  protocol: spec_tcp
  role: server
  host: 127.0.0.1
  port: 9000
  messages:
    Ping:
      direction: in
    Pong:
      direction: out
      periodic: true
      interval: 0.1
ctl:
  protocol: zmq_rep
  role: bidirectional
  control: true
`)
		spec, err := config.LoadNetwork(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(spec).To(HaveKey("A"))
		Expect(spec["A"].Protocol).To(Equal("spec_tcp"))
		Expect(spec["A"].Messages["Pong"].Periodic).To(BeTrue())
		Expect(spec["A"].Messages["Pong"].Interval).To(Equal(0.1))
		Expect(spec["ctl"].Control).To(BeTrue())
	})

	It("decodes a control descriptor file", func() {
		path := writeFile(dir, "descriptor.yaml", `
SendMessageRequest:
  payload:
    required: [message]
    optional:
      node: ""
UpdateGlobalVariable:
  payload:
    required: [name, value]
`)
		descriptor, err := config.LoadControlDescriptor(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(descriptor).To(HaveKey("SendMessageRequest"))
		Expect(descriptor["SendMessageRequest"].Required).To(ConsistOf("message"))
		Expect(descriptor["SendMessageRequest"].Optional).To(HaveKeyWithValue("node", ""))
		Expect(descriptor["UpdateGlobalVariable"].Required).To(ConsistOf("name", "value"))
	})

	It("decodes a default payload file", func() {
		path := writeFile(dir, "defaults.yaml", `
Pong:
  seq: 0
  nested:
    x: 1
`)
		payloads, err := config.LoadPayloads(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(payloads["Pong"]).To(HaveKeyWithValue("seq", 0))
	})
})
