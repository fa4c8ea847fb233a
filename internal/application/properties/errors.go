package properties

import (
	"errors"

	"realty-backend/internal/domain"
)

var (
	ErrAddressPriceRequired = errors.New("Address and price are required")
	ErrInvalidPrice         = errors.New("Price must be greater than 0")
	ErrPropertyNotFound     = domain.ErrPropertyNotFound
)
