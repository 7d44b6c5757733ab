package netlog_test

import (
	"os"
	"path/filepath"

	"github.com/sabouaram/netsim/netlog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Logger", func() {
	It("writes the time - name - level - message layout to the log file", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "network.log")

		l, err := netlog.New(path, "network")
		Expect(err).ToNot(HaveOccurred())

		l.Infof("node %s started", "A")

		data, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(" - network - info - node A started"))
	})

	It("threads a child name through Named", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "network.log")

		l, err := netlog.New(path, "network")
		Expect(err).ToNot(HaveOccurred())

		child := l.Named("node-A")
		child.Warnf("dropped message")

		data, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(data)).To(ContainSubstring(" - node-A - warning - dropped message"))
	})

	It("Noop logger discards everything without touching the filesystem", func() {
		l := netlog.Noop()
		Expect(func() { l.Infof("anything") }).ToNot(Panic())
	})
})
