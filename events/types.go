package events

const (
	// Streams
	TournamentEventsStream = "TOURNAMENT_EVENTS"
	ClaimEventsStream      = "CLAIM_EVENTS"

	// Events
	TournamentCreated      = "events.tournament.created"
	TournamentEntered      = "events.tournament.entered"
	TournamentPhaseChanged = "events.tournament.phaseChanged"
	TournamentClaimSeen    = "events.tournament.claimObserved"

	ClaimsIndexed = "events.claims.indexed"

	// Event Wildcards
	TournamentEventsWildcard = "events.tournament.*"
	ClaimEventsWildcard      = "events.claims.*"
)

type TournamentCreatedEvent struct {
	TournamentId   string `json:"tournamentId"`
	Name           string `json:"name"`
	CreatorAddress string `json:"creatorAddress"`
	GameStartsAt   int64  `json:"gameStartsAt"`
	Timestamp      int64  `json:"timestamp"`
}

type TournamentEnteredEvent struct {
	TournamentId   string `json:"tournamentId"`
	EntrantAddress string `json:"entrantAddress"`
	EntryCount     int    `json:"entryCount"`
	Timestamp      int64  `json:"timestamp"`
}

type TournamentPhaseChangedEvent struct {
	TournamentId string `json:"tournamentId"`
	From         string `json:"from"`
	To           string `json:"to"`
	Timestamp    int64  `json:"timestamp"`
}

// ClaimsIndexedEvent is emitted by the settlement indexer after it
// appends a batch of claim records to the ledger mirror.
type ClaimsIndexedEvent struct {
	TournamentId string `json:"tournamentId"`
	Records      int    `json:"records"`
	Timestamp    int64  `json:"timestamp"`
}

type TournamentClaimSeenEvent struct {
	TournamentId string `json:"tournamentId"`
	Records      int    `json:"records"`
	Timestamp    int64  `json:"timestamp"`
}
