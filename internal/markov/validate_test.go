package markov_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/markovsim/internal/markov"
)

var _ = Describe("Validate", func() {
	It("accepts the default matrix unchanged", func() {
		tm, err := markov.Validate(markov.Default().Rows())
		Expect(err).NotTo(HaveOccurred())
		Expect(tm.Matrix()).To(Equal(markov.Default()))
	})

	It("does not modify the candidate", func() {
		candidate := [][]float64{{0.5, 0.5, 0}, {0, 1, 0}, {0.2, 0.3, 0.5}}
		_, err := markov.Validate(candidate)
		Expect(err).NotTo(HaveOccurred())
		Expect(candidate).To(Equal([][]float64{{0.5, 0.5, 0}, {0, 1, 0}, {0.2, 0.3, 0.5}}))
	})

	DescribeTable("rejects wrong shapes",
		func(candidate [][]float64) {
			_, err := markov.Validate(candidate)
			var shapeErr *markov.ShapeError
			Expect(errors.As(err, &shapeErr)).To(BeTrue())
			Expect(err).To(MatchError(markov.ErrShape))
		},
		Entry("2x3", [][]float64{{0.5, 0.5, 0}, {0.5, 0.5, 0}}),
		Entry("3x2", [][]float64{{0.5, 0.5}, {0.5, 0.5}, {0.5, 0.5}}),
		Entry("ragged", [][]float64{{0.5, 0.5, 0}, {1}, {0.5, 0.5, 0}}),
		Entry("empty", [][]float64{}),
		Entry("4x4", [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}),
	)

	It("rejects out-of-range cells before checking sums", func() {
		_, err := markov.Validate([][]float64{{1.5, -0.5, 0}, {0.3, 0.4, 0.3}, {0.2, 0.4, 0.4}})
		var rangeErr *markov.RangeError
		Expect(errors.As(err, &rangeErr)).To(BeTrue())
		Expect(rangeErr.Row).To(Equal(0))
		Expect(rangeErr.Col).To(Equal(0))
		Expect(err).To(MatchError(markov.ErrRange))
	})

	It("treats NaN as out of range", func() {
		_, err := markov.Validate([][]float64{{math.NaN(), 0.5, 0.5}, {0.3, 0.4, 0.3}, {0.2, 0.4, 0.4}})
		Expect(err).To(MatchError(markov.ErrRange))
	})

	It("names the first row that does not sum to one", func() {
		_, err := markov.Validate([][]float64{{0.5, 0.5, 0.5}, {0.3, 0.4, 0.4}, {0.2, 0.4, 0.4}})
		var sumErr *markov.RowSumError
		Expect(errors.As(err, &sumErr)).To(BeTrue())
		Expect(sumErr.State).To(Equal(markov.Sunny))
		Expect(err.Error()).To(ContainSubstring("'Soleado'"))
		Expect(err.Error()).To(ContainSubstring("1.5000"))
	})

	It("tolerates row sums within 1e-4", func() {
		_, err := markov.Validate([][]float64{{0.33333, 0.33333, 0.33333}, {0.3, 0.4, 0.3}, {0.2, 0.4, 0.4}})
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects row sums just outside the tolerance", func() {
		_, err := markov.Validate([][]float64{{0.7, 0.2, 0.1}, {0.3, 0.4, 0.3}, {0.2, 0.4, 0.3998}})
		Expect(err).To(MatchError(markov.ErrRowSum))
		Expect(err.Error()).To(ContainSubstring("Lluvioso"))
		Expect(err.Error()).To(ContainSubstring("0.9998"))
	})
})
