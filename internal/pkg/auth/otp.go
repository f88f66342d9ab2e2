package auth

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const otpDigits = 6

// CodeGenerator produces one-time numeric codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// RandomCodeGenerator draws codes from a cryptographic source.
type RandomCodeGenerator struct {
	source io.Reader
	digits int
}

func NewRandomCodeGenerator() *RandomCodeGenerator {
	return &RandomCodeGenerator{source: rand.Reader, digits: otpDigits}
}

// Generate returns a zero padded decimal code.
func (g *RandomCodeGenerator) Generate() (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(g.digits)), nil)
	n, err := rand.Int(g.source, limit)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", g.digits, n.Int64()), nil
}
