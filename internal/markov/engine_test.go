package markov_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/markovsim/internal/markov"
)

func mustValidate(rows [][]float64) markov.TransitionMatrix {
	tm, err := markov.Validate(rows)
	Expect(err).NotTo(HaveOccurred())
	return tm
}

func expectMatrixClose(got, want markov.Matrix, tol float64) {
	for i := 0; i < markov.NumStates; i++ {
		for j := 0; j < markov.NumStates; j++ {
			ExpectWithOffset(1, got[i][j]).To(BeNumerically("~", want[i][j], tol), "cell (%d,%d)", i, j)
		}
	}
}

type fixedSource struct {
	draws []float64
	i     int
}

func (f *fixedSource) Float64() float64 {
	v := f.draws[f.i%len(f.draws)]
	f.i++
	return v
}

var _ = Describe("Engine", func() {
	var engine *markov.Engine

	BeforeEach(func() {
		engine = markov.NewEngine()
	})

	Describe("Power", func() {
		It("returns the identity for zero and negative steps", func() {
			Expect(engine.Power(0)).To(Equal(markov.Identity()))
			Expect(engine.Power(-3)).To(Equal(markov.Identity()))
		})

		It("returns P itself for one step", func() {
			Expect(engine.Power(1)).To(Equal(markov.Default()))
		})

		It("squares the default matrix", func() {
			expectMatrixClose(engine.Power(2), markov.Matrix{
				{0.57, 0.26, 0.17},
				{0.39, 0.34, 0.27},
				{0.34, 0.36, 0.30},
			}, 1e-12)
		})

		It("satisfies P^(n+1) = P^n · P", func() {
			p := engine.Matrix()
			for n := 1; n <= 20; n++ {
				expectMatrixClose(engine.Power(n+1), markov.Mul(engine.Power(n), p), 1e-12)
			}
		})

		It("keeps rows stochastic", func() {
			for _, n := range []int{0, 1, 5, 100} {
				pn := engine.Power(n)
				for i := 0; i < markov.NumStates; i++ {
					Expect(pn.RowSum(i)).To(BeNumerically("~", 1.0, 1e-6))
				}
			}
		})
	})

	Describe("Marginal", func() {
		It("selects the row of the initial state", func() {
			dist, err := engine.Marginal(engine.Power(1), markov.Sunny)
			Expect(err).NotTo(HaveOccurred())
			Expect(dist.Vector()).To(Equal([]float64{0.70, 0.20, 0.10}))
			Expect(dist[0].State).To(Equal(markov.Sunny))
			Expect(dist[2].State).To(Equal(markov.Rainy))
		})

		It("sums to one for every start and horizon", func() {
			for _, s := range markov.States() {
				for _, n := range []int{0, 1, 5, 100} {
					dist, err := engine.Marginal(engine.Power(n), s)
					Expect(err).NotTo(HaveOccurred())
					Expect(dist.Sum()).To(BeNumerically("~", 1.0, 1e-6))
				}
			}
		})

		It("rejects states outside the enumeration", func() {
			_, err := engine.Marginal(engine.Power(1), markov.State(7))
			Expect(err).To(MatchError(markov.ErrUnknownState))
		})
	})

	Describe("MostLikely", func() {
		It("is the initial state with certainty for zero steps", func() {
			s, p, err := engine.MostLikely(0, markov.Rainy)
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(Equal(markov.Rainy))
			Expect(p).To(Equal(1.0))
		})

		It("finds sunny at 70% after one day from sunny", func() {
			s, p, err := engine.MostLikely(1, markov.Sunny)
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(Equal(markov.Sunny))
			Expect(p).To(BeNumerically("~", 0.70, 1e-12))
		})

		It("breaks exact ties by enumeration order", func() {
			s, p, err := engine.MostLikely(1, markov.Rainy)
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(Equal(markov.Cloudy))
			Expect(p).To(BeNumerically("~", 0.40, 1e-12))
		})

		It("prefers the earliest state in a three-way tie", func() {
			third := 1.0 / 3.0
			engine.Replace(mustValidate([][]float64{
				{third, third, third},
				{third, third, third},
				{third, third, third},
			}))
			for _, start := range markov.States() {
				s, _, err := engine.MostLikely(4, start)
				Expect(err).NotTo(HaveOccurred())
				Expect(s).To(Equal(markov.Sunny))
			}
		})

		It("rejects unknown states even for zero steps", func() {
			_, _, err := engine.MostLikely(0, markov.State(-1))
			Expect(err).To(MatchError(markov.ErrUnknownState))
		})
	})

	Describe("Simulate", func() {
		It("returns n states starting with the initial state", func() {
			for _, n := range []int{1, 2, 10, 100} {
				h, err := engine.Simulate(n, markov.Cloudy, markov.NewSource(int64(n)))
				Expect(err).NotTo(HaveOccurred())
				Expect(h.Len()).To(Equal(n))
				Expect(h.At(0)).To(Equal(markov.Cloudy))
			}
		})

		It("returns an empty history for zero days", func() {
			h, err := engine.Simulate(0, markov.Sunny, markov.NewSource(1))
			Expect(err).NotTo(HaveOccurred())
			Expect(h).To(BeEmpty())
			Expect(h).NotTo(BeNil())
		})

		It("checks the state before the day count", func() {
			_, err := engine.Simulate(0, markov.State(3), markov.NewSource(1))
			Expect(err).To(MatchError(markov.ErrUnknownState))
		})

		It("is reproducible for a fixed seed", func() {
			a, err := engine.Simulate(50, markov.Sunny, markov.NewSource(42))
			Expect(err).NotTo(HaveOccurred())
			b, err := engine.Simulate(50, markov.Sunny, markov.NewSource(42))
			Expect(err).NotTo(HaveOccurred())
			Expect(a).To(Equal(b))
		})

		It("follows a deterministic cycle", func() {
			engine.Replace(mustValidate([][]float64{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}}))
			h, err := engine.Simulate(6, markov.Sunny, markov.NewSource(9))
			Expect(err).NotTo(HaveOccurred())
			Expect(h).To(Equal(markov.History{
				markov.Sunny, markov.Cloudy, markov.Rainy,
				markov.Sunny, markov.Cloudy, markov.Rainy,
			}))
		})

		It("maps uniform draws onto cumulative row weights", func() {
			src := &fixedSource{draws: []float64{0.69, 0.95, 0.05}}
			h, err := engine.Simulate(4, markov.Sunny, src)
			Expect(err).NotTo(HaveOccurred())
			// 0.69 < 0.70 stays sunny, 0.95 lands in sunny's rainy band,
			// 0.05 < 0.20 moves rainy to sunny
			Expect(h).To(Equal(markov.History{markov.Sunny, markov.Sunny, markov.Rainy, markov.Sunny}))
		})

		It("approaches the stationary frequencies over long runs", func() {
			h, err := engine.Simulate(50000, markov.Sunny, markov.NewSource(7))
			Expect(err).NotTo(HaveOccurred())
			counts := make([]float64, markov.NumStates)
			for _, s := range h {
				counts[s]++
			}
			Expect(counts[markov.Sunny] / 50000).To(BeNumerically("~", 6.0/13, 0.02))
			Expect(counts[markov.Cloudy] / 50000).To(BeNumerically("~", 4.0/13, 0.02))
			Expect(counts[markov.Rainy] / 50000).To(BeNumerically("~", 3.0/13, 0.02))
		})
	})

	Describe("Replace and Reset", func() {
		It("swaps the matrix wholesale and restores the default", func() {
			engine.Replace(mustValidate([][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}))
			Expect(engine.Matrix()).To(Equal(markov.Identity()))
			engine.Reset()
			Expect(engine.Matrix()).To(Equal(markov.Default()))
		})

		It("hands out snapshots that later replacements do not touch", func() {
			snap := engine.Matrix()
			engine.Replace(mustValidate([][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}))
			Expect(snap).To(Equal(markov.Default()))
		})
	})

	Describe("Stationary", func() {
		It("converges to the long-run distribution of the default chain", func() {
			dist, err := engine.Stationary(1e-12, 10000)
			Expect(err).NotTo(HaveOccurred())
			Expect(dist.Get(markov.Sunny)).To(BeNumerically("~", 6.0/13, 1e-9))
			Expect(dist.Get(markov.Cloudy)).To(BeNumerically("~", 4.0/13, 1e-9))
			Expect(dist.Get(markov.Rainy)).To(BeNumerically("~", 3.0/13, 1e-9))
			Expect(math.Abs(dist.Sum() - 1)).To(BeNumerically("<", 1e-9))
		})

		It("reports periodic chains", func() {
			engine.Replace(mustValidate([][]float64{{0, 1, 0}, {0.5, 0, 0.5}, {0, 1, 0}}))
			_, err := engine.Stationary(1e-9, 500)
			Expect(err).To(MatchError(markov.ErrNotConverged))
		})
	})
})
