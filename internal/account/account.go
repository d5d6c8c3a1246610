package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type is the accounting class of an account. It is fixed at creation.
type Type string

const (
	TypeAsset     Type = "asset"
	TypeLiability Type = "liability"
	TypeEquity    Type = "equity"
	TypeIncome    Type = "income"
	TypeExpense   Type = "expense"
)

// Types lists the account types in code-prefix order.
var Types = []Type{TypeAsset, TypeLiability, TypeEquity, TypeIncome, TypeExpense}

// OverflowPrefix is the code prefix for anything outside the fixed set.
const OverflowPrefix = "9"

var prefixes = map[Type]string{
	TypeAsset:     "1",
	TypeLiability: "2",
	TypeEquity:    "3",
	TypeIncome:    "4",
	TypeExpense:   "5",
}

func (t Type) Valid() bool {
	_, ok := prefixes[t]
	return ok
}

// Prefix returns the leading code digit for the type.
func (t Type) Prefix() string {
	if p, ok := prefixes[t]; ok {
		return p
	}

	return OverflowPrefix
}

// ParseType accepts a type name in any case.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", &InvalidAccountTypeError{Type: Type(s)}
	}

	return t, nil
}

// Account is one entry in an owner's chart of accounts.
type Account struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Code           string
	Name           string
	Type           Type
	OpeningBalance decimal.Decimal
	IsActive       bool
	CreatedAt      time.Time
}
