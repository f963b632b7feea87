package distribution

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podiumlabs/podium/internal/prize"
	"github.com/podiumlabs/podium/models"
)

const usdc = "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48"

func twoPositionFee() *models.EntryFee {
	return &models.EntryFee{
		TokenAddress:   usdc,
		AmountPerEntry: "10",
		Distribution:   []int{70, 30},
	}
}

func TestSplitEntryFeesWorkedExample(t *testing.T) {
	shares := SplitEntryFees(twoPositionFee(), 5)
	require.Len(t, shares, 2)

	// revenue = 10 * 5 = 50
	assert.Equal(t, prize.PositionRole(1), shares[0].Role)
	assert.Equal(t, big.NewInt(35), shares[0].Amount)
	assert.Equal(t, prize.PositionRole(2), shares[1].Role)
	assert.Equal(t, big.NewInt(15), shares[1].Amount)

	for _, s := range shares {
		assert.Equal(t, usdc, s.TokenAddress)
		assert.Equal(t, prize.Fungible, s.Kind)
	}
}

func TestSplitEntryFeesFloorsEachShare(t *testing.T) {
	fee := &models.EntryFee{
		TokenAddress:   usdc,
		AmountPerEntry: "1",
		Distribution:   []int{33, 33, 34},
	}

	shares := SplitEntryFees(fee, 7)
	require.Len(t, shares, 3)

	// revenue = 7: floor(7*33/100) = 2, floor(7*34/100) = 2
	assert.Equal(t, big.NewInt(2), shares[0].Amount)
	assert.Equal(t, big.NewInt(2), shares[1].Amount)
	assert.Equal(t, big.NewInt(2), shares[2].Amount)
}

func TestSplitEntryFeesCreatorShares(t *testing.T) {
	fee := &models.EntryFee{
		TokenAddress:         usdc,
		AmountPerEntry:       "100",
		Distribution:         []int{50, 30},
		TournamentCreatorPct: 15,
		GameCreatorPct:       5,
	}

	shares := SplitEntryFees(fee, 2)
	require.Len(t, shares, 4)

	assert.Equal(t, prize.TournamentCreatorRole(), shares[2].Role)
	assert.Equal(t, big.NewInt(30), shares[2].Amount)
	assert.Equal(t, prize.GameCreatorRole(), shares[3].Role)
	assert.Equal(t, big.NewInt(10), shares[3].Amount)
}

func TestSplitEntryFeesSkipsZeroPositions(t *testing.T) {
	fee := &models.EntryFee{
		TokenAddress:   usdc,
		AmountPerEntry: "10",
		Distribution:   []int{100, 0, 0},
	}

	shares := SplitEntryFees(fee, 3)
	require.Len(t, shares, 1)
	assert.Equal(t, prize.PositionRole(1), shares[0].Role)
}

func TestSplitEntryFeesEmptyOnDegenerateInput(t *testing.T) {
	assert.Nil(t, SplitEntryFees(nil, 5))
	assert.Nil(t, SplitEntryFees(twoPositionFee(), 0))
	assert.Nil(t, SplitEntryFees(twoPositionFee(), -1))

	zeroAmount := twoPositionFee()
	zeroAmount.AmountPerEntry = "0"
	assert.Nil(t, SplitEntryFees(zeroAmount, 5))

	garbage := twoPositionFee()
	garbage.AmountPerEntry = "not-a-number"
	assert.Nil(t, SplitEntryFees(garbage, 5))
}

// The output is matched against the claim ledger, so repeated calls
// with the same inputs must agree structurally.
func TestSplitEntryFeesIdempotent(t *testing.T) {
	fee := &models.EntryFee{
		TokenAddress:         usdc,
		AmountPerEntry:       "123456789",
		Distribution:         []int{40, 25, 15, 10},
		TournamentCreatorPct: 7,
		GameCreatorPct:       3,
	}

	first := SplitEntryFees(fee, 42)
	second := SplitEntryFees(fee, 42)
	assert.Equal(t, first, second)
}

func TestValidateEntryFee(t *testing.T) {
	assert.NoError(t, ValidateEntryFee(nil))
	assert.NoError(t, ValidateEntryFee(twoPositionFee()))

	withCreators := &models.EntryFee{
		TokenAddress:         usdc,
		AmountPerEntry:       "10",
		Distribution:         []int{60, 20},
		TournamentCreatorPct: 15,
		GameCreatorPct:       5,
	}
	assert.NoError(t, ValidateEntryFee(withCreators))

	short := twoPositionFee()
	short.Distribution = []int{70, 20}
	assert.Error(t, ValidateEntryFee(short))

	negative := twoPositionFee()
	negative.Distribution = []int{110, -10}
	assert.Error(t, ValidateEntryFee(negative))

	empty := twoPositionFee()
	empty.Distribution = nil
	assert.Error(t, ValidateEntryFee(empty))
}
