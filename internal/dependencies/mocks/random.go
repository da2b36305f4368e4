package mocks

import (
	"math/rand/v2"

	"github.com/mcoot/minesweeper/internal/dependencies/random"
	"github.com/mcoot/minesweeper/internal/model"
)

// MockRandom is a mock implementation of Random for testing.
// Queued values are returned first; once a queue runs dry, results come
// from a fixed-seed generator so rejection sampling still terminates.
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// StringResults is a queue of results to return from String
	StringResults []string
	stringIndex   int

	fallback *rand.Rand
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{fallback: rand.New(rand.NewPCG(1, 2))}
}

// Intn returns the next queued result, or a seeded value in [0, n)
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		if n <= 0 {
			return 0
		}
		return r.source().IntN(n)
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	return result
}

// String returns the next queued result, or a seeded string from the alphabet
func (r *MockRandom) String(length int, alphabet string) string {
	if r.stringIndex >= len(r.StringResults) {
		if length <= 0 || len(alphabet) == 0 {
			return ""
		}
		result := make([]byte, length)
		for i := range result {
			result[i] = alphabet[r.source().IntN(len(alphabet))]
		}
		return string(result)
	}
	result := r.StringResults[r.stringIndex]
	r.stringIndex++
	return result
}

func (r *MockRandom) source() *rand.Rand {
	if r.fallback == nil {
		r.fallback = rand.New(rand.NewPCG(1, 2))
	}
	return r.fallback
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueueMines queues the row/col draws that place mines at the given
// positions, in order
func (r *MockRandom) QueueMines(positions ...model.Position) {
	for _, pos := range positions {
		r.IntnResults = append(r.IntnResults, pos.Row, pos.Col)
	}
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.StringResults = append(r.StringResults, values...)
}
