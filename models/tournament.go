package models

import (
	"fmt"
	"time"
)

type Tournament struct {
	TournamentId       string           `dynamodbav:"tournament_id" json:"tournamentId"`
	Name               string           `dynamodbav:"name" json:"name"`
	GameId             string           `dynamodbav:"game_id" json:"gameId"`
	CreatorAddress     string           `dynamodbav:"creator_address" json:"creatorAddress"`
	GameCreatorAddress string           `dynamodbav:"game_creator_address" json:"gameCreatorAddress"`
	Schedule           Schedule         `dynamodbav:"schedule" json:"schedule"`
	EntryFee           *EntryFee        `dynamodbav:"entry_fee,omitempty" json:"entryFee,omitempty"`
	EntryCount         int              `dynamodbav:"entry_count" json:"entryCount"`
	Status             TournamentStatus `dynamodbav:"status" json:"status"`
	CreatedAt          time.Time        `dynamodbav:"created_at" json:"createdAt"`
	UpdatedAt          time.Time        `dynamodbav:"updated_at" json:"updatedAt"`

	PK string `dynamodbav:"PK" json:"-"`
	SK string `dynamodbav:"SK" json:"-"`

	GSI1PK string `dynamodbav:"GSI1PK" json:"-"`
	GSI1SK string `dynamodbav:"GSI1SK" json:"-"`
}

type TournamentStatus int

const (
	Open TournamentStatus = iota
	Settled
)

var tournamentStatusNames = map[TournamentStatus]string{
	Open:    "Open",
	Settled: "Settled",
}

func (s TournamentStatus) String() string {
	return tournamentStatusNames[s]
}

// Key handlers
func TournamentPK(tournamentID string) string {
	return fmt.Sprintf("TOURNAMENT#%s", tournamentID)
}

func MetaSK() string {
	return "META"
}

func TournamentGSI1PK(status string) string {
	return fmt.Sprintf("STATUS#%s", status)
}

func StartTimeGSI1SK(startTime string) string {
	return fmt.Sprintf("START#%s", startTime)
}

func ExtractTournamentID(pk string) (string, error) {
	if len(pk) < 12 || pk[:11] != "TOURNAMENT#" {
		return "", fmt.Errorf("invalid tournament PK format: %s", pk)
	}
	return pk[11:], nil
}
