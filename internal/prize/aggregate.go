package prize

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/podiumlabs/podium/models"
)

// TokenDirectory resolves a token address to its display metadata.
type TokenDirectory interface {
	Token(address string) (models.TokenMetadata, bool)
}

// PriceSource is a best-effort price lookup. The second return value is
// false when no price is known; callers must never substitute zero.
type PriceSource interface {
	Price(symbol string) (decimal.Decimal, bool)
}

// Record is one prize row fed into aggregation: either a fee-derived
// share flattened onto its leaderboard position, or a sponsored prize.
// Position 0 groups the unpositioned creator cuts.
type Record struct {
	Position     int
	TokenAddress string
	Kind         Kind
	Amount       *big.Int
	TokenId      string
}

// RecordFromShare flattens a share onto its display position. Position
// shares and sponsored prizes keep their leaderboard target; the
// creator cuts group under 0.
func RecordFromShare(s Share) Record {
	position := 0
	switch s.Role.Kind {
	case RolePosition, RoleSponsored:
		position = s.Role.Position
	}
	return Record{
		Position:     position,
		TokenAddress: s.TokenAddress,
		Kind:         s.Kind,
		Amount:       s.Amount,
		TokenId:      s.TokenId,
	}
}

// Bucket accumulates prizes of one token/kind pair. Fungible buckets
// sum raw integer amounts; non-fungible buckets collect ids in
// encounter order without deduplication, since every id is a distinct
// prize unit even when two sponsors post the same one.
type Bucket struct {
	TokenAddress string   `json:"tokenAddress"`
	Kind         Kind     `json:"kind"`
	Amount       *big.Int `json:"amount,omitempty"`
	TokenIds     []string `json:"tokenIds,omitempty"`
}

func (b *Bucket) add(r Record) {
	if r.Kind == NonFungible {
		b.TokenIds = append(b.TokenIds, r.TokenId)
		return
	}
	if r.Amount == nil {
		return
	}
	if b.Amount == nil {
		b.Amount = new(big.Int)
	}
	b.Amount.Add(b.Amount, r.Amount)
}

type Summary struct {
	ByPosition map[int]map[string]*Bucket `json:"byPosition"`
	ByToken    map[string]*Bucket         `json:"byToken"`

	// TotalUSD covers only fungible buckets with known metadata and a
	// known price. PricedFully reports whether anything was left out.
	TotalUSD    decimal.Decimal `json:"totalUsd"`
	PricedFully bool            `json:"pricedFully"`
}

// TokenKey builds the grouping key. Address casing is normalized and
// the kind is folded in so a fungible amount and an nft on the same
// contract never collide.
func TokenKey(address string, kind Kind) string {
	suffix := "|ft"
	if kind == NonFungible {
		suffix = "|nft"
	}
	return strings.ToLower(address) + suffix
}

// Aggregate groups prize records by position and by token and values
// the fungible portion in USD. It tolerates nil lookups and empty input
// by returning an empty summary; it never panics on partial data.
func Aggregate(records []Record, tokens TokenDirectory, prices PriceSource) *Summary {
	summary := &Summary{
		ByPosition:  make(map[int]map[string]*Bucket),
		ByToken:     make(map[string]*Bucket),
		TotalUSD:    decimal.Zero,
		PricedFully: true,
	}

	for _, r := range records {
		if r.TokenAddress == "" {
			continue
		}
		if r.Kind == Fungible && (r.Amount == nil || r.Amount.Sign() <= 0) {
			continue
		}
		if r.Kind == NonFungible && r.TokenId == "" {
			continue
		}

		key := TokenKey(r.TokenAddress, r.Kind)

		perToken := summary.ByPosition[r.Position]
		if perToken == nil {
			perToken = make(map[string]*Bucket)
			summary.ByPosition[r.Position] = perToken
		}
		bucketFor(perToken, key, r).add(r)
		bucketFor(summary.ByToken, key, r).add(r)
	}

	valueFungible(summary, tokens, prices)

	return summary
}

func bucketFor(m map[string]*Bucket, key string, r Record) *Bucket {
	b := m[key]
	if b == nil {
		b = &Bucket{TokenAddress: r.TokenAddress, Kind: r.Kind}
		m[key] = b
	}
	return b
}

// valueFungible sums price * amount / 10^decimals over the flat token
// buckets. Unknown tokens or missing prices are excluded from the total
// rather than valued at zero, and flip PricedFully off.
func valueFungible(summary *Summary, tokens TokenDirectory, prices PriceSource) {
	if tokens == nil || prices == nil {
		for _, b := range summary.ByToken {
			if b.Kind == Fungible {
				summary.PricedFully = false
				return
			}
		}
		return
	}

	for _, b := range summary.ByToken {
		if b.Kind != Fungible {
			continue
		}
		meta, ok := tokens.Token(b.TokenAddress)
		if !ok {
			summary.PricedFully = false
			continue
		}
		price, ok := prices.Price(meta.Symbol)
		if !ok {
			summary.PricedFully = false
			continue
		}
		scaled := decimal.NewFromBigInt(b.Amount, -int32(meta.Decimals))
		summary.TotalUSD = summary.TotalUSD.Add(price.Mul(scaled))
	}
}
