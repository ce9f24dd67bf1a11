package uid

import (
	"fmt"

	"github.com/google/uuid"
)

// GenerateConnectionID tags a WebSocket connection in logs.
func GenerateConnectionID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate connection ID: %w", err)
	}
	return id.String(), nil
}
