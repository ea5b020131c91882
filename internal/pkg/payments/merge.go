package payments

// statusRank orders statuses by merge priority: completed > failed > pending.
// Anything outside the closed vocabulary ranks as pending.
func statusRank(s Status) int {
	switch s {
	case StatusCompleted:
		return 2
	case StatusFailed:
		return 1
	default:
		return 0
	}
}

// Merge combines a stored status with a newly observed one. The higher
// priority wins, which makes the operation commutative, associative and
// idempotent, and makes completed a sticky terminal state: notifications may
// arrive duplicated and in any order, yet every interleaving converges to
// the same result. A provider-side failed never revokes a local completed;
// that is the stated business policy, not an oversight.
func Merge(current, incoming Status) Status {
	a, b := normalizeMergeInput(current), normalizeMergeInput(incoming)
	if statusRank(b) > statusRank(a) {
		return b
	}
	return a
}

func normalizeMergeInput(s Status) Status {
	switch s {
	case StatusCompleted, StatusFailed:
		return s
	default:
		return StatusPending
	}
}
