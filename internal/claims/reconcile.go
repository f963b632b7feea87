package claims

import (
	"github.com/podiumlabs/podium/internal/prize"
	"github.com/podiumlabs/podium/logger"
	"github.com/podiumlabs/podium/models"
)

// Claimable pairs an unredeemed share with the identifier the
// settlement claim entrypoint expects for it.
type Claimable struct {
	Share   prize.Share `json:"share"`
	ClaimId WireRole    `json:"claimId"`
}

type Reconciler struct {
	logger *logger.Logger
}

func NewReconciler(logger *logger.Logger) *Reconciler {
	return &Reconciler{logger: logger}
}

// Unclaimed returns the shares whose canonical key does not appear in
// the claimed set of the ledger.
//
// The matching fails open: a ledger record that cannot be normalized
// never removes a share, so a parsing gap can surface an
// already-claimed prize but can never hide a real entitlement. The
// settlement layer rejects the duplicate attempt on its side.
func (r *Reconciler) Unclaimed(shares []prize.Share, ledger []models.ClaimRecord) []Claimable {
	claimed := make(map[Key]struct{}, len(ledger))
	for _, rec := range ledger {
		if !rec.Claimed {
			continue
		}
		key, err := Normalize(rec)
		if err != nil {
			if r.logger != nil {
				r.logger.Warn("skipping unparseable claim record",
					"tournamentId", rec.TournamentId,
					"error", err,
				)
			}
			continue
		}
		claimed[key] = struct{}{}
	}

	remaining := make([]Claimable, 0, len(shares))
	for _, share := range shares {
		if _, ok := claimed[KeyForRole(share.Role)]; ok {
			continue
		}
		remaining = append(remaining, Claimable{
			Share:   share,
			ClaimId: WireRoleFor(share.Role),
		})
	}

	return remaining
}
