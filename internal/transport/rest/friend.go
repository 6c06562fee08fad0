package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

type friendshipService interface {
	AreFriends(ctx context.Context, userID, otherID string) (bool, error)
	RemoveMirroredEdge(ctx context.Context, a, b string) (domain.Outcome, error)
	ListFriends(ctx context.Context, userID string) ([]string, error)
}

type requestService interface {
	Send(ctx context.Context, requesterID, requesteeID string) (domain.Outcome, error)
	Accept(ctx context.Context, requesterID, requesteeID string) (domain.Outcome, error)
	Decline(ctx context.Context, requesterID, requesteeID string) (domain.Outcome, error)
	ListIncoming(ctx context.Context, userID string) ([]domain.FriendRequest, error)
	ListOutgoing(ctx context.Context, userID string) ([]domain.FriendRequest, error)
}

// FriendHandler serves the friend graph and the friend-request workflow.
// Friendships are only created by accepting a request.
type FriendHandler struct {
	friends  friendshipService
	requests requestService
	log      *slog.Logger
}

// NewFriendHandler creates a FriendHandler.
func NewFriendHandler(friends friendshipService, requests requestService, logger *slog.Logger) *FriendHandler {
	return &FriendHandler{
		friends:  friends,
		requests: requests,
		log:      logger.With("handler", "friend"),
	}
}

type sendRequestRequest struct {
	RequesteeID string `json:"requesteeId"`
}

type friendsResponse struct {
	Friends []string `json:"friends"`
}

type areFriendsResponse struct {
	Friends bool `json:"friends"`
}

type friendRequestResponse struct {
	RequesterID string `json:"requesterId"`
	RequesteeID string `json:"requesteeId"`
	Status      string `json:"status"`
}

// ListFriends handles GET /api/friends.
func (h *FriendHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	ids, err := h.friends.ListFriends(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, friendsResponse{Friends: ids})
}

// AreFriends handles GET /api/friends/{friendId}.
func (h *FriendHandler) AreFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	friends, err := h.friends.AreFriends(r.Context(), userID, r.PathValue("friendId"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, areFriendsResponse{Friends: friends})
}

// Unfriend handles DELETE /api/friends/{friendId}. Both directions of the
// edge are removed together.
func (h *FriendHandler) Unfriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	outcome, err := h.friends.RemoveMirroredEdge(r.Context(), userID, r.PathValue("friendId"))
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeOutcome(w, outcome)
}

// SendRequest handles POST /api/friend-requests.
func (h *FriendHandler) SendRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var req sendRequestRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	outcome, err := h.requests.Send(r.Context(), userID, req.RequesteeID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeOutcome(w, outcome)
}

// Incoming handles GET /api/friend-requests/incoming.
func (h *FriendHandler) Incoming(w http.ResponseWriter, r *http.Request) {
	h.listRequests(w, r, h.requests.ListIncoming)
}

// Outgoing handles GET /api/friend-requests/outgoing.
func (h *FriendHandler) Outgoing(w http.ResponseWriter, r *http.Request) {
	h.listRequests(w, r, h.requests.ListOutgoing)
}

// Accept handles POST /api/friend-requests/{requesterId}/accept.
// Only the requestee, the authenticated user, can answer a request.
func (h *FriendHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.requests.Accept)
}

// Decline handles POST /api/friend-requests/{requesterId}/decline.
func (h *FriendHandler) Decline(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, h.requests.Decline)
}

func (h *FriendHandler) respond(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, requesterID, requesteeID string) (domain.Outcome, error),
) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	outcome, err := fn(r.Context(), r.PathValue("requesterId"), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeOutcome(w, outcome)
}

func (h *FriendHandler) listRequests(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, userID string) ([]domain.FriendRequest, error),
) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	reqs, err := fn(r.Context(), userID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]friendRequestResponse, 0, len(reqs))
	for _, fr := range reqs {
		resp = append(resp, friendRequestResponse{
			RequesterID: fr.RequesterID,
			RequesteeID: fr.RequesteeID,
			Status:      fr.Status.String(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
