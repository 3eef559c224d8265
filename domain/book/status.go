package book

import "errors"

// Status is the exchange lifecycle state of a book.
type Status string

const (
	StatusAvailable Status = "Available"
	StatusPending   Status = "Pending Exchange"
	StatusExchanged Status = "Exchanged"
)

// Genre classifies a listing.
type Genre string

const (
	GenreStudying  Genre = "Studying"
	GenreComic     Genre = "Comic"
	GenrePlayful   Genre = "Playful"
	GenreFiction   Genre = "Fiction"
	GenreClassic   Genre = "Classic"
	GenreBiography Genre = "Biography"
)

// Condition describes the physical state of a book.
type Condition string

const (
	ConditionNew  Condition = "New"
	ConditionGood Condition = "Good"
	ConditionFair Condition = "Fair"
	ConditionWorn Condition = "Worn"
)

// Sentinel errors for lifecycle validation.
var (
	// ErrUnknownStatus is returned for a status value outside the closed enum.
	ErrUnknownStatus = errors.New("unknown status")

	// ErrIllegalTransition is returned when the requested status change is not
	// a legal lifecycle transition from the book's current status.
	ErrIllegalTransition = errors.New("illegal status transition")
)

// ValidStatus reports whether s is a member of the status enum.
func ValidStatus(s Status) bool {
	switch s {
	case StatusAvailable, StatusPending, StatusExchanged:
		return true
	}
	return false
}

// ValidGenre reports whether g is a member of the genre enum.
func ValidGenre(g Genre) bool {
	switch g {
	case GenreStudying, GenreComic, GenrePlayful, GenreFiction, GenreClassic, GenreBiography:
		return true
	}
	return false
}

// ValidCondition reports whether c is a member of the condition enum.
func ValidCondition(c Condition) bool {
	switch c {
	case ConditionNew, ConditionGood, ConditionFair, ConditionWorn:
		return true
	}
	return false
}

// CheckTransition validates a status change against the lifecycle:
//
//	Available -> Pending Exchange -> Exchanged
//	                              -> Available (cancel)
//
// Exchanged is terminal. The zero-value transition (same status) is illegal;
// the store is never asked to re-apply the current state.
func CheckTransition(from, to Status) error {
	if !ValidStatus(to) {
		return ErrUnknownStatus
	}

	switch from {
	case StatusAvailable:
		if to == StatusPending {
			return nil
		}
	case StatusPending:
		if to == StatusExchanged || to == StatusAvailable {
			return nil
		}
	case StatusExchanged:
		// terminal
	}
	return ErrIllegalTransition
}
