package automaton_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/eca/internal/automaton"
)

func row(w *automaton.World) string {
	b := make([]byte, w.Size())
	for i, live := range w.State() {
		if live {
			b[i] = '#'
		} else {
			b[i] = '.'
		}
	}
	return string(b)
}

func seed(w *automaton.World, start string) {
	for i, c := range start {
		Expect(w.Set(i, c == '#')).To(Succeed())
	}
}

var _ = Describe("World", func() {
	var w *automaton.World

	Context("rule 90 from a single centre cell", func() {
		BeforeEach(func() {
			var err error
			w, err = automaton.New(90, 7, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Set(3, true)).To(Succeed())
		})

		It("draws the Sierpinski triangle", func() {
			var rows []string
			for i := 0; i < 3; i++ {
				w.Step()
				rows = append(rows, row(w))
			}
			Expect(rows).To(Equal([]string{
				"..#.#..",
				".#...#.",
				"#.#.#.#",
			}))
		})

		It("stays mirror symmetric", func() {
			for i := 0; i < 3; i++ {
				w.Step()
				s := w.State()
				for j := range s {
					Expect(s[j]).To(Equal(s[len(s)-1-j]))
				}
			}
		})
	})

	Context("without wrap", func() {
		It("treats cells off the edge as dead", func() {
			var err error
			w, err = automaton.New(0, 3, false)
			Expect(err).NotTo(HaveOccurred())
			seed(w, "#..")
			w.Step()
			Expect(row(w)).To(Equal("..."))
		})

		It("lets an isolated edge cell survive on its own bit", func() {
			w, _ = automaton.New(4, 3, false)
			seed(w, "#..")
			Expect(w.Neighborhood(0)).To(Equal(uint8(2)))
			w.Step()
			Expect(row(w)).To(Equal("#.."))
		})
	})

	Context("with wrap", func() {
		BeforeEach(func() {
			w, _ = automaton.New(90, 4, true)
			seed(w, "#...")
		})

		It("makes the first and last cells neighbours", func() {
			Expect(w.Neighborhood(0)).To(Equal(uint8(2)))
			Expect(w.Neighborhood(3)).To(Equal(uint8(1)))
			w.Step()
			Expect(row(w)).To(Equal(".#.#"))
		})

		It("conserves cars under rule 184", func() {
			w, _ = automaton.New(184, 12, true)
			seed(w, "##.#..###.#.")
			pop := w.Population()
			for i := 0; i < 20; i++ {
				w.Step()
				Expect(w.Population()).To(Equal(pop))
			}
		})
	})

	Describe("Set", func() {
		BeforeEach(func() {
			w, _ = automaton.New(90, 3, false)
		})

		DescribeTable("rejects out of range indices",
			func(idx int) {
				err := w.Set(idx, true)
				Expect(err).To(MatchError(automaton.ErrInvalidIndex))
				Expect(w.Population()).To(BeZero())
			},
			Entry("negative", -1),
			Entry("equal to size", 3),
			Entry("past size", 42),
		)
	})

	Describe("State", func() {
		It("returns identical results until the next step", func() {
			w, _ = automaton.New(30, 9, true)
			seed(w, "....#....")
			Expect(w.State()).To(Equal(w.State()))
			before := w.State()
			w.Step()
			Expect(w.State()).NotTo(Equal(before))
		})
	})

	It("rejects an empty world", func() {
		_, err := automaton.New(90, 0, false)
		Expect(err).To(MatchError(automaton.ErrInvalidSize))
	})
})
