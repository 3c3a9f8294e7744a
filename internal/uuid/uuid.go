package uuid

import (
	google_uuid "github.com/google/uuid"
)

// UUID wraps google/uuid so that empty query and URI parameters
// bind to the nil UUID instead of failing.
type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

func NewString() string {
	return google_uuid.NewString()
}

// UnmarshalParam implements gin's parameter binding for UUID.
// An empty parameter is valid and parses to the nil UUID.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return err
	}

	*u = UUID{parsed}
	return nil
}
