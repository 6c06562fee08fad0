package domain

// ListName identifies one of a user's movie lists. Each list is stored
// as its own collection, so only the names below are addressable.
type ListName string

const (
	ListWatchlist ListName = "watchlist"
	ListWatched   ListName = "watched"
)

func (l ListName) String() string { return string(l) }

func (l ListName) IsValid() bool {
	switch l {
	case ListWatchlist, ListWatched:
		return true
	}
	return false
}

// RequestStatus is the state of a friend request.
// pending is the only non-terminal state.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusAccepted RequestStatus = "accepted"
	RequestStatusDeclined RequestStatus = "declined"
)

func (s RequestStatus) String() string { return string(s) }

func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusDeclined:
		return true
	}
	return false
}

// Outcome reports what a mutating operation did. Anything other than
// OutcomeApplied is a business no-op: the transaction committed without
// changing state.
type Outcome string

const (
	OutcomeApplied          Outcome = "applied"
	OutcomeAlreadyPresent   Outcome = "already_present"
	OutcomeAlreadyMember    Outcome = "already_member"
	OutcomeNotMember        Outcome = "not_member"
	OutcomeAlreadyMoved     Outcome = "already_moved"
	OutcomeAlreadyFriends   Outcome = "already_friends"
	OutcomeNotFriends       Outcome = "not_friends"
	OutcomeRequestPending   Outcome = "request_pending"
	OutcomeNoPendingRequest Outcome = "no_pending_request"
)

func (o Outcome) String() string { return string(o) }

func (o Outcome) Applied() bool { return o == OutcomeApplied }
