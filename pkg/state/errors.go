package state

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is recorded when the store has no remote to talk to. It blocks every
// remote call until the application is restarted with valid credentials.
var ErrNotConfigured = errors.New("please configure your database credentials in .env.local")

// NotFoundError is returned when an operation names an entity the store does not hold.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Kind, e.ID)
}

// PersistError reports the entities whose new positions could not be saved. Their local
// positions are kept, so local and remote order differ until the next fetch.
type PersistError struct {
	Kind string
	IDs  []int64
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("error saving position of %d %s(s) %v: %v", len(e.IDs), e.Kind, e.IDs, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
