package stimulus

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Interval", func() {
	intv := Interval{Lower: -2.5e-9, Upper: 2.5e-9}

	It("should include the bounds in inclusive mode", func() {
		stops := intv.Stops(5, true)

		Expect(stops).To(HaveLen(5))
		Expect(stops[0]).To(Equal(intv.Lower))
		Expect(stops[4]).To(Equal(intv.Upper))
		for i := 1; i < len(stops); i++ {
			Expect(stops[i] - stops[i-1]).
				To(BeNumerically("~", intv.Width()/4, 1e-18))
		}
	})

	It("should stay strictly inside the bounds in exclusive mode", func() {
		inclusive := intv.Stops(3, true)
		exclusive := intv.Stops(3, false)

		Expect(exclusive).To(HaveLen(3))
		Expect(exclusive[0]).To(BeNumerically(">", inclusive[0]))
		Expect(exclusive[2]).To(BeNumerically("<", inclusive[2]))
		Expect(exclusive[0]).To(BeNumerically("~", -1.25e-9, 1e-18))
		Expect(exclusive[1]).To(BeNumerically("~", 0, 1e-18))
		Expect(exclusive[2]).To(BeNumerically("~", 1.25e-9, 1e-18))
	})

	It("should sample a degenerate interval at a single point", func() {
		stops := Interval{Lower: 1e-9, Upper: 1e-9}.Stops(3, false)

		Expect(stops).To(ConsistOf(1e-9, 1e-9, 1e-9))
	})

	It("should reject fewer than two stops", func() {
		Expect(func() { intv.Stops(1, true) }).To(Panic())
	})

	It("should reject inverted bounds", func() {
		Expect(Interval{Lower: 1, Upper: 0}.Validate()).To(HaveOccurred())
		Expect(intv.Validate()).To(Succeed())
	})
})
