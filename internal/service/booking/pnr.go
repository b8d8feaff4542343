package booking

import "math/rand"

const (
	pnrAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	pnrLength   = 6
)

// PNRGenerator produces short booking reference codes. Codes are not
// guaranteed unique; the store's unique index plus a bounded retry in
// the engine handles collisions.
type PNRGenerator interface {
	Generate() string
}

type randomPNRGenerator struct{}

func NewPNRGenerator() PNRGenerator {
	return randomPNRGenerator{}
}

func (randomPNRGenerator) Generate() string {
	b := make([]byte, pnrLength)
	for i := range b {
		b[i] = pnrAlphabet[rand.Intn(len(pnrAlphabet))]
	}
	return string(b)
}
