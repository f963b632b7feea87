package models

import "fmt"

// ClaimRecord mirrors one entry of the append-only claim ledger the
// settlement indexer writes. Records arrive in one of two wire shapes:
// newer indexer versions emit a tagged-variant JSON document in Role;
// the v1 indexer emitted the flat RoleName/RoleValue pair. Both shapes
// are kept verbatim and normalized by the claims package.
type ClaimRecord struct {
	TournamentId string `dynamodbav:"tournament_id" json:"tournamentId"`
	Role         string `dynamodbav:"role,omitempty" json:"role,omitempty"`
	RoleName     string `dynamodbav:"role_name,omitempty" json:"roleName,omitempty"`
	RoleValue    string `dynamodbav:"role_value,omitempty" json:"roleValue,omitempty"`
	Claimed      bool   `dynamodbav:"claimed" json:"claimed"`

	PK string `dynamodbav:"PK" json:"-"`
	SK string `dynamodbav:"SK" json:"-"`
}

// Key handlers
func ClaimSK(seq int64) string {
	return fmt.Sprintf("CLAIM#%020d", seq)
}

func ClaimSKPrefix() string {
	return "CLAIM#"
}
