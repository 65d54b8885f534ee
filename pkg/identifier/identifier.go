package identifier

import (
	"fmt"

	"github.com/google/uuid"

	"benchpark/pkg/ports"
)

// New returns an identifier service backed by random UUIDs.
func New() ports.IDService {
	return &uuidIDService{}
}

type uuidIDService struct{}

func (s *uuidIDService) GenerateRandom() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generating uuid: %w", err)
	}

	return id.String(), nil
}
