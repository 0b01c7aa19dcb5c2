package invoice

import (
	"math/rand"

	"github.com/flexprice/invoicing/internal/types"
)

// NumberGenerator produces invoice numbers. Uniqueness is not checked here;
// the storage layer owns collisions.
type NumberGenerator interface {
	Next() int64
}

type randomNumberGenerator struct{}

// NewRandomNumberGenerator returns a generator of uniformly distributed
// 10 digit numbers in [InvoiceNumberMin, InvoiceNumberMax]
func NewRandomNumberGenerator() NumberGenerator {
	return randomNumberGenerator{}
}

func (randomNumberGenerator) Next() int64 {
	return types.InvoiceNumberMin + rand.Int63n(types.InvoiceNumberMax-types.InvoiceNumberMin+1)
}
