package waveform

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const dump = `HEADER
"PSFversion" "1.00"
TYPE
"node" FLOAT DOUBLE PROP(
"key" "node"
)
VALUE
"time" 0
"CK" 0
"X.nRA0" 0.0
"time" 1e-09
"CK" 1.2
"X.nRA0" 0.3

"time" 2e-09
"CK" 1.2
"X.nRA0" 1.2
END
"time" 3e-09
"X.nRA0" 0.0
`

var _ = Describe("Parse", func() {
	It("should collect the requested traces", func() {
		w, err := Parse(strings.NewReader(dump), []string{"X.nRA0"})

		Expect(err).NotTo(HaveOccurred())
		tr, err := w.Trace("X.nRA0")
		Expect(err).NotTo(HaveOccurred())
		Expect(tr).To(Equal(Trace{{0, 0}, {1e-9, 0.3}, {2e-9, 1.2}}))
		Expect(w.Names()).To(ConsistOf("X.nRA0"))
	})

	It("should report a requested signal that is absent", func() {
		w, err := Parse(strings.NewReader(dump), []string{"X.nWD0"})
		Expect(err).NotTo(HaveOccurred())

		_, err = w.Trace("X.nWD0")

		var missing *SignalMissingError
		Expect(errors.As(err, &missing)).To(BeTrue())
		Expect(missing.Name).To(Equal("X.nWD0"))
	})

	It("should not expose signals that were not requested", func() {
		w, err := Parse(strings.NewReader(dump), []string{"X.nRA0"})
		Expect(err).NotTo(HaveOccurred())

		_, err = w.Trace("CK")

		Expect(err).To(HaveOccurred())
	})

	It("should reject a value before any time", func() {
		in := "VALUE\n\"CK\" 0\nEND\n"

		_, err := Parse(strings.NewReader(in), []string{"CK"})

		Expect(err).To(MatchError(ContainSubstring("precedes any time")))
	})

	It("should reject malformed values", func() {
		in := "VALUE\n\"time\" 0\n\"CK\" high\nEND\n"

		_, err := Parse(strings.NewReader(in), []string{"CK"})

		Expect(err).To(MatchError(ContainSubstring("line 3")))
	})

	It("should reject a dump without values", func() {
		in := "HEADER\n\"time\" 0\n"

		_, err := Parse(strings.NewReader(in), []string{"a"})

		Expect(err).To(MatchError(ContainSubstring("no VALUE section")))
	})

	It("should reject a dump cut off before END", func() {
		in := "HEADER\nVALUE\n\"time\" 0\n\"a\" 0\n\"time\" 1e-9\n\"a\" 1.2\n"

		_, err := Parse(strings.NewReader(in), []string{"a"})

		Expect(err).To(MatchError(ContainSubstring("truncated after line 6")))
	})
})
