// Package adapter holds stand-in implementations of external
// collaborator ports.
package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"

	"github.com/shopspring/decimal"

	"github.com/finncap/origination/internal/domain/port"
)

// StubCreditBureau derives a deterministic creditworthiness snapshot
// from the applicant's identity. The same email and phone always yield
// the same score, which keeps registration reproducible without a
// bureau integration.
type StubCreditBureau struct{}

// NewStubCreditBureau creates a StubCreditBureau.
func NewStubCreditBureau() *StubCreditBureau {
	return &StubCreditBureau{}
}

// FetchSnapshot returns the derived snapshot. Scores land in 650-899,
// the pre-approved limit in 100000-590000.
func (b *StubCreditBureau) FetchSnapshot(_ context.Context, email, phone string) (port.CreditSnapshot, error) {
	digest := sha256.Sum256([]byte(email + "|" + phone))

	score := 650 + int(binary.BigEndian.Uint32(digest[0:4])%250)
	limit := 100000 + int64(binary.BigEndian.Uint32(digest[4:8])%50)*10000

	return port.CreditSnapshot{
		CreditScore:      score,
		PreApprovedLimit: decimal.NewFromInt(limit),
	}, nil
}
