package watchlist

import (
	"github.com/heartmarshall/moviedb-backend/internal/domain"
)

// MembershipInput addresses one movie in one of a user's lists.
type MembershipInput struct {
	UserID  string
	List    domain.ListName
	MovieID int
}

func (i MembershipInput) Validate() error {
	var errs []domain.FieldError
	errs = domain.CheckUserID(errs, "user_id", i.UserID)
	if !i.List.IsValid() {
		errs = append(errs, domain.FieldError{Field: "list", Message: "unknown list"})
	}
	if i.MovieID <= 0 {
		errs = append(errs, domain.FieldError{Field: "movie_id", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// MoveInput moves a movie from one list to another.
type MoveInput struct {
	UserID  string
	From    domain.ListName
	To      domain.ListName
	MovieID int
}

func (i MoveInput) Validate() error {
	var errs []domain.FieldError
	errs = domain.CheckUserID(errs, "user_id", i.UserID)
	if !i.From.IsValid() {
		errs = append(errs, domain.FieldError{Field: "from", Message: "unknown list"})
	}
	if !i.To.IsValid() {
		errs = append(errs, domain.FieldError{Field: "to", Message: "unknown list"})
	} else if i.From == i.To {
		errs = append(errs, domain.FieldError{Field: "to", Message: "must differ from source list"})
	}
	if i.MovieID <= 0 {
		errs = append(errs, domain.FieldError{Field: "movie_id", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func validateOwner(userID string, list domain.ListName) error {
	var errs []domain.FieldError
	errs = domain.CheckUserID(errs, "user_id", userID)
	if !list.IsValid() {
		errs = append(errs, domain.FieldError{Field: "list", Message: "unknown list"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
