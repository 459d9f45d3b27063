package errors

import (
	"errors"
)

var (
	NotFound               = errors.New("not found")
	PersistenceUnavailable = errors.New("persistence unavailable")
	CatalogUnavailable     = errors.New("catalog unavailable")
	AlreadyFavorited       = errors.New("already favorited")
	SelectionFull          = errors.New("selection full")
	SessionClosed          = errors.New("session closed")
)

// messages holds the text shown to end users. Order matters: the first match wins,
// so logical conflicts are listed before infrastructure faults.
var messages = []struct {
	err error
	msg string
}{
	{AlreadyFavorited, "This product is already in your favorites."},
	{SelectionFull, "You can compare at most 2 products. Remove one to pick another."},
	{SessionClosed, "Your session has ended. Please sign in again."},
	{NotFound, "The requested item could not be found."},
	{CatalogUnavailable, "Products could not be loaded right now. Please try again later."},
	{PersistenceUnavailable, "Your favorites could not be saved right now. Please try again."},
}

// UserMessage turns err into a human readable message. It never returns a raw fault.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	for _, m := range messages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}

	return "Something went wrong. Please try again."
}

// Expected reports whether err is a user-correctable condition rather than an infrastructure fault.
func Expected(err error) bool {
	return errors.Is(err, AlreadyFavorited) || errors.Is(err, SelectionFull)
}
