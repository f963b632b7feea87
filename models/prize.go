package models

import (
	"fmt"
	"math/big"
)

// SponsoredPrize is a prize added on top of the entry-fee pool by a
// third-party sponsor. Exactly one of Amount / TokenId is set: a
// fungible amount or a single non-fungible token id.
type SponsoredPrize struct {
	TournamentId string `dynamodbav:"tournament_id" json:"tournamentId"`
	SponsorId    uint64 `dynamodbav:"sponsor_id" json:"sponsorId"`
	Position     int    `dynamodbav:"position" json:"position"`
	TokenAddress string `dynamodbav:"token_address" json:"tokenAddress"`
	Amount       string `dynamodbav:"amount,omitempty" json:"amount,omitempty"`
	TokenId      string `dynamodbav:"token_id,omitempty" json:"tokenId,omitempty"`

	PK string `dynamodbav:"PK" json:"-"`
	SK string `dynamodbav:"SK" json:"-"`
}

func (p *SponsoredPrize) FungibleAmount() *big.Int {
	if p == nil || p.Amount == "" {
		return nil
	}
	amount, ok := new(big.Int).SetString(p.Amount, 10)
	if !ok {
		return nil
	}
	return amount
}

// Key handlers
func PrizeSK(sponsorId uint64) string {
	return fmt.Sprintf("PRIZE#%020d", sponsorId)
}

func PrizeSKPrefix() string {
	return "PRIZE#"
}
