package claims

import "github.com/podiumlabs/podium/internal/prize"

// WireRole is the tagged-variant identifier the settlement layer's
// claim entrypoint takes. The discriminant names and nesting are a wire
// contract with the settlement contract's instruction decoder; do not
// rename fields without coordinating a settlement release.
type WireRole struct {
	Position          *WirePosition  `json:"position,omitempty"`
	TournamentCreator *struct{}      `json:"tournamentCreator,omitempty"`
	GameCreator       *struct{}      `json:"gameCreator,omitempty"`
	Sponsored         *WireSponsored `json:"sponsored,omitempty"`
}

type WirePosition struct {
	N int `json:"n"`
}

type WireSponsored struct {
	Id uint64 `json:"id"`
}

// WireRoleFor renders a derived share's role in the settlement wire
// shape.
func WireRoleFor(role prize.Role) WireRole {
	switch role.Kind {
	case prize.RoleTournamentCreator:
		return WireRole{TournamentCreator: &struct{}{}}
	case prize.RoleGameCreator:
		return WireRole{GameCreator: &struct{}{}}
	case prize.RoleSponsored:
		return WireRole{Sponsored: &WireSponsored{Id: role.SponsorId}}
	default:
		return WireRole{Position: &WirePosition{N: role.Position}}
	}
}
