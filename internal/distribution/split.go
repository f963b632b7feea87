package distribution

import (
	"fmt"
	"math/big"

	"github.com/podiumlabs/podium/internal/prize"
	"github.com/podiumlabs/podium/models"
)

var oneHundred = big.NewInt(100)

// SplitEntryFees derives the discrete prize shares the entry-fee pool
// settles into: one per non-zero distribution position, plus the
// creator cuts when configured. All arithmetic is integer with floor
// division, matching the settlement layer's rounding exactly —
// identical inputs must always produce structurally identical shares
// because the output is later matched against the claim ledger.
//
// A nil fee, zero entries or a zero per-entry amount yields no shares.
func SplitEntryFees(fee *models.EntryFee, entryCount int) []prize.Share {
	if fee == nil || entryCount <= 0 {
		return nil
	}
	amount := fee.Amount()
	if amount == nil || amount.Sign() <= 0 {
		return nil
	}

	revenue := new(big.Int).Mul(amount, big.NewInt(int64(entryCount)))

	shares := make([]prize.Share, 0, len(fee.Distribution)+2)

	for i, pct := range fee.Distribution {
		if pct <= 0 {
			continue
		}
		shares = append(shares, prize.Share{
			Role:         prize.PositionRole(i + 1),
			TokenAddress: fee.TokenAddress,
			Kind:         prize.Fungible,
			Amount:       cut(revenue, pct),
		})
	}

	if fee.TournamentCreatorPct > 0 {
		shares = append(shares, prize.Share{
			Role:         prize.TournamentCreatorRole(),
			TokenAddress: fee.TokenAddress,
			Kind:         prize.Fungible,
			Amount:       cut(revenue, fee.TournamentCreatorPct),
		})
	}

	if fee.GameCreatorPct > 0 {
		shares = append(shares, prize.Share{
			Role:         prize.GameCreatorRole(),
			TokenAddress: fee.TokenAddress,
			Kind:         prize.Fungible,
			Amount:       cut(revenue, fee.GameCreatorPct),
		})
	}

	return shares
}

// cut is floor(revenue * pct / 100).
func cut(revenue *big.Int, pct int) *big.Int {
	share := new(big.Int).Mul(revenue, big.NewInt(int64(pct)))
	return share.Div(share, oneHundred)
}

// ValidateEntryFee checks the percentage invariant an enabled fee must
// hold: every percentage in [0,100] and distribution plus both creator
// cuts summing to exactly 100.
func ValidateEntryFee(fee *models.EntryFee) error {
	if fee == nil {
		return nil
	}
	if fee.Amount() == nil {
		return fmt.Errorf("amount per entry %q is not a base-10 integer", fee.AmountPerEntry)
	}
	if len(fee.Distribution) == 0 {
		return fmt.Errorf("distribution is empty")
	}

	sum := 0
	for i, pct := range fee.Distribution {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("position %d percentage %d out of range", i+1, pct)
		}
		sum += pct
	}
	for _, pct := range []int{fee.TournamentCreatorPct, fee.GameCreatorPct} {
		if pct < 0 || pct > 100 {
			return fmt.Errorf("creator percentage %d out of range", pct)
		}
	}

	if total := sum + fee.TournamentCreatorPct + fee.GameCreatorPct; total != 100 {
		return fmt.Errorf("percentages sum to %d, want 100", total)
	}
	return nil
}
