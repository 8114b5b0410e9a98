package service

import (
	"errors"

	"gorm.io/gorm"
)

// isNotFound treats a missing row as a business outcome, per the
// repository contract (gorm.ErrRecordNotFound from GORM-backed repos,
// or anything wrapping it from in-memory test doubles).
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
