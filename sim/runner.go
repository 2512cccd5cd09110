package sim

import (
	"context"
	"fmt"
	"math/rand"
	"slices"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"qgrover/circuit"
)

// DefaultShots is the trial count used when the caller has no preference.
const DefaultShots = 1024

// Runner executes a circuit a number of times and reports what was observed.
type Runner interface {
	Run(ctx context.Context, c *circuit.Circuit, shots int) (Histogram, error)
}

// Histogram maps an outcome label to the number of shots that produced it.
type Histogram map[string]int

// Outcome is one histogram entry.
type Outcome struct {
	Label string
	Count int
}

// Total returns the number of shots recorded.
func (h Histogram) Total() int {
	total := 0
	for _, n := range h {
		total += n
	}
	return total
}

// Sorted returns the outcomes, most frequent first, ties broken by label.
func (h Histogram) Sorted() []Outcome {
	out := make([]Outcome, 0, len(h))
	for label, n := range h {
		out = append(out, Outcome{Label: label, Count: n})
	}
	slices.SortFunc(out, func(a, b Outcome) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Label, b.Label)
	})
	return out
}

// Label formats a basis-state index over numQubits qubits, highest qubit first.
func Label(index, numQubits int) string {
	return fmt.Sprintf("%0*b", numQubits, index)
}

// Sampler simulates the circuit once and draws measurement outcomes from the
// final state. Shots are split across Workers goroutines, each with its own
// generator seeded from Seed, so a given Seed and Workers pair always yields
// the same histogram.
type Sampler struct {
	Seed    int64
	Workers int
	Logger  *zap.Logger
}

// NewSampler returns a sampler with one worker and a no-op logger.
func NewSampler(seed int64) *Sampler {
	return &Sampler{Seed: seed, Workers: 1, Logger: zap.NewNop()}
}

func (s *Sampler) Run(ctx context.Context, c *circuit.Circuit, shots int) (Histogram, error) {
	if shots <= 0 {
		return nil, errors.Wrapf(ErrInvalidShots, "%d shots", shots)
	}
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	state, err := Simulate(c, nil)
	if err != nil {
		return nil, errors.Wrap(err, "simulate")
	}
	cumulative := cumulate(state.Probabilities())

	workers := max(1, min(s.Workers, shots))
	logger.Debug("sampling",
		zap.Int("qubits", c.NumQubits()),
		zap.Int("gates", c.Len()),
		zap.Int("shots", shots),
		zap.Int("workers", workers),
	)

	partial := make([]map[int]int, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		quota := shots / workers
		if w < shots%workers {
			quota++
		}
		g.Go(func() error {
			rng := rand.New(rand.NewSource(s.Seed + int64(w)))
			counts := make(map[int]int)
			for i := 0; i < quota; i++ {
				if i%1024 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				counts[draw(cumulative, rng.Float64())]++
			}
			partial[w] = counts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "sampling")
	}

	hist := make(Histogram)
	for _, counts := range partial {
		for idx, n := range counts {
			hist[Label(idx, c.NumQubits())] += n
		}
	}
	logger.Debug("sampled", zap.Int("outcomes", len(hist)))
	return hist, nil
}

func cumulate(probs []float64) []float64 {
	out := make([]float64, len(probs))
	sum := 0.0
	for i, p := range probs {
		sum += p
		out[i] = sum
	}
	return out
}

// draw maps u in [0, 1) to the first index whose cumulative probability
// exceeds it. Basis states with zero probability are never chosen.
func draw(cumulative []float64, u float64) int {
	u *= cumulative[len(cumulative)-1]
	idx := sort.Search(len(cumulative), func(i int) bool { return cumulative[i] > u })
	if idx == len(cumulative) {
		idx = len(cumulative) - 1
		for idx > 0 && cumulative[idx] == cumulative[idx-1] {
			idx--
		}
	}
	return idx
}
