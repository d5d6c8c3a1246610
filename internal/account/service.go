package account

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/tally/internal/apperr"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	GetAccount(ctx context.Context, id uuid.UUID) (*Account, error)
	ListAccounts(ctx context.Context, filter ListFilter) ([]*Account, error)
	DeactivateAccount(ctx context.Context, id uuid.UUID) error

	// BeginOwner opens a unit of work that is serialized against every other
	// unit of work for the same owner.
	BeginOwner(ctx context.Context, ownerID uuid.UUID) (OwnerTx, error)
}

// OwnerTx is scoped to the owner it was opened for.
type OwnerTx interface {
	// FindActiveByName returns the first active account of typ, by code, whose
	// name contains hint case-insensitively, or nil when there is none.
	FindActiveByName(ctx context.Context, typ Type, hint string) (*Account, error)
	// HighestCode returns the greatest existing code starting with prefix, or
	// "" when there is none.
	HighestCode(ctx context.Context, prefix string) (string, error)
	// ReserveCode records and returns the next sequence value for prefix,
	// never lower than floor+1.
	ReserveCode(ctx context.Context, prefix string, floor int) (int, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	CreateAccount(ctx context.Context, a *Account) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	OwnerID        uuid.UUID
	Code           string
	Name           string
	Type           Type
	OpeningBalance decimal.Decimal
}

type ListFilter struct {
	OwnerID    uuid.UUID
	Type       *Type
	ActiveOnly bool
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Account, error) {
	return s.repo.GetAccount(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Account, error) {
	accounts, err := s.repo.ListAccounts(ctx, filter)
	if err != nil {
		return nil, apperr.Wrap("listing accounts", filter.OwnerID, err)
	}

	return accounts, nil
}

// Deactivate hides an account from new postings. History is kept.
func (s *Service) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeactivateAccount(ctx, id); err != nil {
		return apperr.Wrap("deactivating account", uuid.Nil, err)
	}

	return nil
}

// Create adds an account with a caller-chosen code.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Account, error) {
	if !params.Type.Valid() {
		return nil, &InvalidAccountTypeError{Type: params.Type}
	}

	code := strings.TrimSpace(params.Code)
	if code == "" {
		return nil, ErrEmptyCode
	}

	if len(code) > MaxCodeLen {
		return nil, ErrLongCode
	}

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	otx, err := s.repo.BeginOwner(ctx, params.OwnerID)
	if err != nil {
		return nil, apperr.Wrap("begin account tx", params.OwnerID, err)
	}
	defer otx.Rollback()

	exists, err := otx.CodeExists(ctx, code)
	if err != nil {
		return nil, apperr.Wrap("checking account code", params.OwnerID, err)
	}

	if exists {
		return nil, &DuplicateCodeError{OwnerID: params.OwnerID, Code: code}
	}

	acc := &Account{
		OwnerID:        params.OwnerID,
		Code:           code,
		Name:           name,
		Type:           params.Type,
		OpeningBalance: params.OpeningBalance.Round(2),
		IsActive:       true,
	}

	if err := otx.CreateAccount(ctx, acc); err != nil {
		return nil, apperr.Wrap("creating account", params.OwnerID, err)
	}

	if err := otx.Commit(); err != nil {
		return nil, apperr.Wrap("commit account", params.OwnerID, err)
	}

	return acc, nil
}

// GenerateCode reserves the next free code for typ. Codes handed out are
// never handed out again, even if no account is created with them.
func (s *Service) GenerateCode(ctx context.Context, ownerID uuid.UUID, typ Type) (string, error) {
	if !typ.Valid() {
		return "", &InvalidAccountTypeError{Type: typ}
	}

	otx, err := s.repo.BeginOwner(ctx, ownerID)
	if err != nil {
		return "", apperr.Wrap("begin account tx", ownerID, err)
	}
	defer otx.Rollback()

	code, err := nextCode(ctx, otx, typ)
	if err != nil {
		return "", apperr.Wrap("generating account code", ownerID, err)
	}

	if err := otx.Commit(); err != nil {
		return "", apperr.Wrap("commit account code", ownerID, err)
	}

	return code, nil
}

// FindOrCreate returns the first active account of typ whose name contains
// hint, ignoring case. When none matches, a new account named hint is
// created under a freshly generated code.
func (s *Service) FindOrCreate(ctx context.Context, ownerID uuid.UUID, typ Type, hint string) (*Account, error) {
	if !typ.Valid() {
		return nil, &InvalidAccountTypeError{Type: typ}
	}

	name := strings.TrimSpace(hint)
	if name == "" {
		return nil, ErrEmptyName
	}

	otx, err := s.repo.BeginOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Wrap("begin account tx", ownerID, err)
	}
	defer otx.Rollback()

	found, err := otx.FindActiveByName(ctx, typ, name)
	if err != nil {
		return nil, apperr.Wrap("finding account", ownerID, err)
	}

	if found != nil {
		return found, nil
	}

	code, err := nextCode(ctx, otx, typ)
	if err != nil {
		return nil, apperr.Wrap("generating account code", ownerID, err)
	}

	acc := &Account{
		OwnerID:        ownerID,
		Code:           code,
		Name:           name,
		Type:           typ,
		OpeningBalance: decimal.Zero,
		IsActive:       true,
	}

	if err := otx.CreateAccount(ctx, acc); err != nil {
		var dup *DuplicateCodeError
		if errors.As(err, &dup) {
			return nil, &apperr.SequenceConflictError{OwnerID: ownerID, Scope: "account code", Value: code}
		}

		return nil, apperr.Wrap("creating account", ownerID, err)
	}

	if err := otx.Commit(); err != nil {
		return nil, apperr.Wrap("commit account", ownerID, err)
	}

	return acc, nil
}

func nextCode(ctx context.Context, otx OwnerTx, typ Type) (string, error) {
	prefix := typ.Prefix()

	highest, err := otx.HighestCode(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("scanning codes: %w", err)
	}

	floor, err := CodeSuffix(prefix, highest)
	if err != nil {
		return "", err
	}

	n, err := otx.ReserveCode(ctx, prefix, floor)
	if err != nil {
		return "", fmt.Errorf("reserving code: %w", err)
	}

	return FormatCode(prefix, n), nil
}
