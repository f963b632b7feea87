package claims

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/podiumlabs/podium/internal/prize"
	"github.com/podiumlabs/podium/models"
)

// Category identifies which family of prize role a claim refers to.
type Category int

const (
	CategoryPosition Category = iota
	CategoryTournamentCreator
	CategoryGameCreator
	CategorySponsored
)

// Key is the canonical claim identity both ledger wire shapes and
// derived prize shares normalize into. Creator categories carry no
// payload, so matching them works on Category alone; positions carry
// the 1-based rank and sponsored claims the numeric sponsor id.
type Key struct {
	Category  Category
	Position  int
	SponsorId uint64
}

// KeyForRole maps a derived share's role onto its canonical claim key.
func KeyForRole(role prize.Role) Key {
	switch role.Kind {
	case prize.RoleTournamentCreator:
		return Key{Category: CategoryTournamentCreator}
	case prize.RoleGameCreator:
		return Key{Category: CategoryGameCreator}
	case prize.RoleSponsored:
		return Key{Category: CategorySponsored, SponsorId: role.SponsorId}
	default:
		return Key{Category: CategoryPosition, Position: role.Position}
	}
}

// taggedRole is the structured wire shape newer indexer versions emit:
// a single-variant object keyed by the role discriminant.
type taggedRole struct {
	Position          *taggedPosition  `json:"position"`
	TournamentCreator *struct{}        `json:"tournamentCreator"`
	GameCreator       *struct{}        `json:"gameCreator"`
	Sponsored         *taggedSponsored `json:"sponsored"`
}

type taggedPosition struct {
	N json.Number `json:"n"`
}

type taggedSponsored struct {
	Id json.RawMessage `json:"id"`
}

// Normalize parses either claim-record wire shape into the canonical
// key. The structured Role document wins when present; otherwise the
// flat RoleName/RoleValue pair from the v1 indexer is used.
func Normalize(rec models.ClaimRecord) (Key, error) {
	if strings.TrimSpace(rec.Role) != "" {
		return normalizeTagged([]byte(rec.Role))
	}
	if rec.RoleName != "" {
		return normalizeFlat(rec.RoleName, rec.RoleValue)
	}
	return Key{}, fmt.Errorf("claim record carries no role")
}

func normalizeTagged(raw []byte) (Key, error) {
	var role taggedRole
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(&role); err != nil {
		return Key{}, fmt.Errorf("tagged claim role: %w", err)
	}

	switch {
	case role.Position != nil:
		n, err := role.Position.N.Int64()
		if err != nil || n < 1 {
			return Key{}, fmt.Errorf("tagged claim position %q", role.Position.N)
		}
		return Key{Category: CategoryPosition, Position: int(n)}, nil
	case role.TournamentCreator != nil:
		return Key{Category: CategoryTournamentCreator}, nil
	case role.GameCreator != nil:
		return Key{Category: CategoryGameCreator}, nil
	case role.Sponsored != nil:
		id, err := parseSponsorId(role.Sponsored.Id)
		if err != nil {
			return Key{}, err
		}
		return Key{Category: CategorySponsored, SponsorId: id}, nil
	default:
		return Key{}, fmt.Errorf("tagged claim role has no known variant: %s", raw)
	}
}

func normalizeFlat(name, value string) (Key, error) {
	switch name {
	case "position":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n < 1 {
			return Key{}, fmt.Errorf("flat claim position %q", value)
		}
		return Key{Category: CategoryPosition, Position: n}, nil
	case "tournamentCreator":
		return Key{Category: CategoryTournamentCreator}, nil
	case "gameCreator":
		return Key{Category: CategoryGameCreator}, nil
	case "sponsored":
		id, err := parseUintFlexible(strings.TrimSpace(value))
		if err != nil {
			return Key{}, err
		}
		return Key{Category: CategorySponsored, SponsorId: id}, nil
	default:
		return Key{}, fmt.Errorf("flat claim role %q unknown", name)
	}
}

// parseSponsorId accepts the id as a JSON number or as a string holding
// either a hex (0x-prefixed) or decimal integer. Indexer versions have
// emitted all three over time.
func parseSponsorId(raw json.RawMessage) (uint64, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("sponsored claim has no id")
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return parseUintFlexible(strings.TrimSpace(asString))
	}

	var asNumber json.Number
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		id, err := strconv.ParseUint(asNumber.String(), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("sponsored claim id %q: %w", asNumber, err)
		}
		return id, nil
	}

	return 0, fmt.Errorf("sponsored claim id %s has unsupported encoding", raw)
}

func parseUintFlexible(s string) (uint64, error) {
	if s == "" {
		return 0, fmt.Errorf("sponsored claim id is empty")
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		id, err := strconv.ParseUint(s[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("sponsored claim id %q: %w", s, err)
		}
		return id, nil
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("sponsored claim id %q: %w", s, err)
	}
	return id, nil
}
