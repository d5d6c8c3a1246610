package account

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
)

var (
	ErrNotFound  = apperr.Sentinel(apperr.KindNotFound, "account not found")
	ErrEmptyName = apperr.Sentinel(apperr.KindValidation, "account name is required")
	ErrEmptyCode = apperr.Sentinel(apperr.KindValidation, "account code is required")
	ErrLongCode  = apperr.Sentinel(apperr.KindValidation, "account code is too long")
)

// DuplicateCodeError is returned when a code is already used by the owner.
type DuplicateCodeError struct {
	OwnerID uuid.UUID
	Code    string
}

func (e *DuplicateCodeError) Error() string {
	return fmt.Sprintf("account code %q already exists for owner %s", e.Code, e.OwnerID)
}

func (e *DuplicateCodeError) Kind() apperr.Kind { return apperr.KindValidation }

// InvalidAccountTypeError is returned for a type outside the fixed set.
type InvalidAccountTypeError struct {
	Type Type
}

func (e *InvalidAccountTypeError) Error() string {
	return fmt.Sprintf("invalid account type %q", string(e.Type))
}

func (e *InvalidAccountTypeError) Kind() apperr.Kind { return apperr.KindValidation }
