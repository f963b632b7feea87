package prize

import (
	"math/big"

	"github.com/podiumlabs/podium/models"
)

// RoleKind says who a share belongs to: a leaderboard position, one of
// the two creator cuts, or a sponsor-funded prize.
type RoleKind int

const (
	RolePosition RoleKind = iota
	RoleTournamentCreator
	RoleGameCreator
	RoleSponsored
)

var roleKindNames = map[RoleKind]string{
	RolePosition:          "position",
	RoleTournamentCreator: "tournamentCreator",
	RoleGameCreator:       "gameCreator",
	RoleSponsored:         "sponsored",
}

func (k RoleKind) String() string {
	return roleKindNames[k]
}

type Role struct {
	Kind      RoleKind
	Position  int    // 1-based leaderboard target; 0 for the creator cuts
	SponsorId uint64 // RoleSponsored only
}

func PositionRole(n int) Role {
	return Role{Kind: RolePosition, Position: n}
}

func TournamentCreatorRole() Role {
	return Role{Kind: RoleTournamentCreator}
}

func GameCreatorRole() Role {
	return Role{Kind: RoleGameCreator}
}

func SponsoredRole(id uint64) Role {
	return Role{Kind: RoleSponsored, SponsorId: id}
}

// Kind distinguishes fungible token amounts from non-fungible ids. The
// two never aggregate together even on the same contract address.
type Kind int

const (
	Fungible Kind = iota
	NonFungible
)

// Share is one discrete allocation of a prize to a role. Shares are
// derived fresh on every call and never persisted; the claim ledger is
// matched against their roles, so derivation must be deterministic.
type Share struct {
	Role         Role
	TokenAddress string
	Kind         Kind
	Amount       *big.Int // Fungible only
	TokenId      string   // NonFungible only
}

// FromSponsored converts a stored sponsored prize into a share,
// preserving the leaderboard position the sponsor targeted. Returns
// false when the record carries neither a parseable amount nor an id.
func FromSponsored(p *models.SponsoredPrize) (Share, bool) {
	if p == nil {
		return Share{}, false
	}
	role := SponsoredRole(p.SponsorId)
	role.Position = p.Position
	share := Share{
		Role:         role,
		TokenAddress: p.TokenAddress,
	}
	if p.TokenId != "" {
		share.Kind = NonFungible
		share.TokenId = p.TokenId
		return share, true
	}
	amount := p.FungibleAmount()
	if amount == nil || amount.Sign() <= 0 {
		return Share{}, false
	}
	share.Kind = Fungible
	share.Amount = amount
	return share, true
}
