package errtax_test

import (
	"errors"
	"fmt"

	"github.com/sabouaram/netsim/errtax"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Error", func() {
	It("renders the exact taxonomy names on the wire", func() {
		Expect(errtax.NotFound.String()).To(Equal("NOT_FOUND"))
		Expect(errtax.NotAList.String()).To(Equal("NOT_A_LIST"))
		Expect(errtax.IndexOutOfRange.String()).To(Equal("INDEX_OUT_OF_RANGE"))
		Expect(errtax.NodeNotFound.String()).To(Equal("NODE_NOT_FOUND"))
		Expect(errtax.MessageNotFound.String()).To(Equal("MESSAGE_NOT_FOUND"))
		Expect(errtax.MessageNotUnique.String()).To(Equal("MESSAGE_NOT_UNIQUE"))
		Expect(errtax.NotOutMessage.String()).To(Equal("NOT_OUT_MESSAGE"))
		Expect(errtax.Generic.String()).To(Equal("GENERIC"))
	})

	It("carries a detail message in Error()", func() {
		err := errtax.New(errtax.NotFound, "field 'seq' absent")
		Expect(err.Error()).To(Equal("NOT_FOUND: field 'seq' absent"))
		Expect(err.Kind()).To(Equal(errtax.NotFound))
	})

	It("unwraps to its parent error", func() {
		parent := fmt.Errorf("boom")
		err := errtax.Wrap(errtax.Generic, parent)

		Expect(errors.Unwrap(err)).To(Equal(parent))
	})

	It("matches errors.Is by kind, ignoring detail", func() {
		a := errtax.New(errtax.IndexOutOfRange, "index 9")
		b := errtax.New(errtax.IndexOutOfRange, "index 3")

		Expect(errors.Is(a, b)).To(BeTrue())
		Expect(errors.Is(a, errtax.New(errtax.NotFound, ""))).To(BeFalse())
	})
})
