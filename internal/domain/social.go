package domain

// FriendRequest is the single row kept per ordered (requester, requestee) pair.
// Terminal rows stay as history until a fresh send replaces them.
type FriendRequest struct {
	RequesterID string
	RequesteeID string
	Status      RequestStatus
}

// IsPending reports whether the request can still be accepted or declined.
func (r FriendRequest) IsPending() bool {
	return r.Status == RequestStatusPending
}
