package models

import "math/big"

// EntryFee configures how the entry-fee pool splits between leaderboard
// positions and creator shares. Percentages are whole numbers;
// Distribution[0] is position 1. When the fee is enabled the
// distribution plus both creator shares must sum to exactly 100.
type EntryFee struct {
	TokenAddress         string `dynamodbav:"token_address" json:"tokenAddress"`
	AmountPerEntry       string `dynamodbav:"amount_per_entry" json:"amountPerEntry"`
	Distribution         []int  `dynamodbav:"distribution" json:"distribution"`
	TournamentCreatorPct int    `dynamodbav:"tournament_creator_pct" json:"tournamentCreatorPct"`
	GameCreatorPct       int    `dynamodbav:"game_creator_pct" json:"gameCreatorPct"`
}

// Amount parses the fixed-point per-entry amount. Returns nil when the
// field is missing or not a base-10 integer.
func (f *EntryFee) Amount() *big.Int {
	if f == nil || f.AmountPerEntry == "" {
		return nil
	}
	amount, ok := new(big.Int).SetString(f.AmountPerEntry, 10)
	if !ok {
		return nil
	}
	return amount
}

// ReservedPct is the portion of the pool not distributed by position.
func (f *EntryFee) ReservedPct() int {
	if f == nil {
		return 0
	}
	return f.TournamentCreatorPct + f.GameCreatorPct
}
