package markov_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/markovsim/internal/markov"
)

var _ = Describe("State", func() {
	It("keeps the canonical order", func() {
		Expect(markov.Labels()).To(Equal([]string{"Soleado", "Nublado", "Lluvioso"}))
		Expect(markov.States()).To(Equal([]markov.State{markov.Sunny, markov.Cloudy, markov.Rainy}))
	})

	DescribeTable("parses labels",
		func(label string, want markov.State) {
			s, err := markov.ParseState(label)
			Expect(err).NotTo(HaveOccurred())
			Expect(s).To(Equal(want))
		},
		Entry("canonical", "Soleado", markov.Sunny),
		Entry("lower case", "nublado", markov.Cloudy),
		Entry("english", "Rainy", markov.Rainy),
		Entry("padded", "  cloudy ", markov.Cloudy),
	)

	It("rejects unknown labels", func() {
		_, err := markov.ParseState("Nevado")
		Expect(err).To(MatchError(markov.ErrUnknownState))
		Expect(err.Error()).To(ContainSubstring("Nevado"))
	})

	It("round-trips through JSON as its label", func() {
		raw, err := json.Marshal(markov.History{markov.Sunny, markov.Rainy})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(Equal(`["Soleado","Lluvioso"]`))

		var back markov.History
		Expect(json.Unmarshal(raw, &back)).To(Succeed())
		Expect(back).To(Equal(markov.History{markov.Sunny, markov.Rainy}))
	})

	It("refuses to encode an out-of-range state", func() {
		_, err := json.Marshal(markov.State(7))
		Expect(err).To(HaveOccurred())
	})
})
