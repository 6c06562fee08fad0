package domain

import "testing"

func TestListName_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		list ListName
		want bool
	}{
		{ListWatchlist, true},
		{ListWatched, true},
		{ListName("favorites"), false},
		{ListName("users"), false},
		{ListName(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.list), func(t *testing.T) {
			t.Parallel()
			if got := tt.list.IsValid(); got != tt.want {
				t.Errorf("ListName(%q).IsValid() = %v, want %v", tt.list, got, tt.want)
			}
		})
	}
}

func TestRequestStatus_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status RequestStatus
		valid  bool
	}{
		{RequestStatusPending, true},
		{RequestStatusAccepted, true},
		{RequestStatusDeclined, true},
		{RequestStatus("PENDING"), false},
		{RequestStatus(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			if got := tt.status.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestOutcome_NoOp(t *testing.T) {
	t.Parallel()

	if !OutcomeApplied.Applied() {
		t.Error("applied must report Applied")
	}
	for _, o := range []Outcome{
		OutcomeAlreadyPresent, OutcomeAlreadyMember, OutcomeNotMember, OutcomeAlreadyMoved,
		OutcomeAlreadyFriends, OutcomeNotFriends, OutcomeRequestPending, OutcomeNoPendingRequest,
	} {
		if o.Applied() {
			t.Errorf("%s should be a no-op", o)
		}
	}
	if Outcome("").Applied() {
		t.Error("zero outcome is not applied")
	}
}
