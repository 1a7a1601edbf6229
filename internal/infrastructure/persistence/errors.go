package persistence

import (
	"errors"

	"github.com/lib/pq"
	"github.com/openpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// translateError maps driver-level errors onto domain errors so callers
// never depend on gorm or postgres types.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
		return shared.NewDomainError(shared.CodeDuplicateIdentifier, "A record with the same identifier already exists")
	}
	return err
}
