package markov_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/markovsim/internal/markov"
)

var _ = Describe("Categorical", func() {
	DescribeTable("maps a draw onto cumulative weights",
		func(weights []float64, draw float64, want int) {
			src := &fixedSource{draws: []float64{draw}}
			Expect(markov.Categorical(src, weights)).To(Equal(want))
		},
		Entry("first band", []float64{0.7, 0.2, 0.1}, 0.0, 0),
		Entry("upper edge of the first band", []float64{0.7, 0.2, 0.1}, 0.69, 0),
		Entry("last band", []float64{0.7, 0.2, 0.1}, 0.95, 2),
		Entry("skips zero weights", []float64{0, 1, 0}, 0.0, 1),
		Entry("draw just below one stays in range", []float64{0.7, 0.2, 0.1}, 0.9999999999999999, 2),
		Entry("draw just below one ignores trailing zero weight", []float64{0.5, 0.5, 0}, 0.9999999999999999, 1),
		// 0.9999 total: unnormalised bands would end at 0.3333 and 0.6666
		Entry("renormalises a row short by 1e-4", []float64{0.3333, 0.3333, 0.3333}, 0.6666, 1),
		Entry("renormalises a row short by 1e-4 near one", []float64{0.3333, 0.3333, 0.3333}, 0.99995, 2),
		// halved row: bands become 0.4, 0.8, 1.0
		Entry("renormalises an arbitrary total", []float64{0.2, 0.2, 0.1}, 0.35, 0),
		Entry("renormalises an arbitrary total, middle band", []float64{0.2, 0.2, 0.1}, 0.5, 1),
	)

	It("returns -1 when every weight is zero", func() {
		src := &fixedSource{draws: []float64{0.5}}
		Expect(markov.Categorical(src, []float64{0, 0, 0})).To(Equal(-1))
		Expect(src.i).To(BeZero())
	})

	It("does not modify the weights it renormalises", func() {
		weights := []float64{0.2, 0.2, 0.1}
		markov.Categorical(&fixedSource{draws: []float64{0.9}}, weights)
		Expect(weights).To(Equal([]float64{0.2, 0.2, 0.1}))
	})

	It("simulates from a validated row that is short by up to the tolerance", func() {
		engine := markov.NewEngine(markov.WithMatrix(mustValidate([][]float64{
			{0.33332, 0.33332, 0.33332},
			{0.33332, 0.33332, 0.33332},
			{0.33332, 0.33332, 0.33332},
		})))
		// unnormalised, 0.66665 would fall in the rainy band
		src := &fixedSource{draws: []float64{0.66665, 0.99998}}
		h, err := engine.Simulate(3, markov.Sunny, src)
		Expect(err).NotTo(HaveOccurred())
		Expect(h).To(Equal(markov.History{markov.Sunny, markov.Cloudy, markov.Rainy}))
	})
})
