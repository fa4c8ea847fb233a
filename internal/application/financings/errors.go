package financings

import (
	"errors"

	"realty-backend/internal/domain"
)

var (
	ErrTypeRequired     = errors.New("Financing type is required")
	ErrPropertyNotFound = domain.ErrPropertyNotFound
)
