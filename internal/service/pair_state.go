package service

import "ganboo/internal/models"

// pairState is the derived relationship between an ordered pair (a, b).
type pairState int

const (
	pairNone pairState = iota
	pairPendingFromA
	pairPendingFromB
	pairFriends
)

// derivePair computes the pair state from both records. An edge recorded on
// only one side still counts as existing; callers repair the missing half.
// Any combination of more than one edge kind is an invalid state.
func derivePair(a, b *models.User) (pairState, error) {
	friends := a.HasFriend(b.ID) || b.HasFriend(a.ID)
	fromA := a.HasOutgoingTo(b.ID) || b.HasIncomingFrom(a.ID)
	fromB := b.HasOutgoingTo(a.ID) || a.HasIncomingFrom(b.ID)

	n := 0
	for _, set := range []bool{friends, fromA, fromB} {
		if set {
			n++
		}
	}
	if n > 1 {
		return pairNone, models.NewInconsistentStateError(a.ID, b.ID)
	}

	switch {
	case friends:
		return pairFriends, nil
	case fromA:
		return pairPendingFromA, nil
	case fromB:
		return pairPendingFromB, nil
	default:
		return pairNone, nil
	}
}

// statusFor expresses the pair state from viewer a's point of view.
func (s pairState) statusFor() models.RelationshipStatus {
	switch s {
	case pairFriends:
		return models.RelationshipFriends
	case pairPendingFromA:
		return models.RelationshipPendingSent
	case pairPendingFromB:
		return models.RelationshipPendingReceived
	default:
		return models.RelationshipNone
	}
}

// clearPending removes every trace of a pending edge between a and b.
func clearPending(a, b *models.User) {
	a.RemoveOutgoing(b.ID)
	a.RemoveIncoming(b.ID)
	b.RemoveOutgoing(a.ID)
	b.RemoveIncoming(a.ID)
}
