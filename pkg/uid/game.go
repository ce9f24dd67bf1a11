package uid

import "github.com/google/uuid"

// GenerateMatchID returns a random UUID for a new match.
func GenerateMatchID() string {
	return uuid.NewString()
}
