package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/tally/internal/account"
	"github.com/MrJamesThe3rd/tally/internal/apperr"
)

var owner = uuid.MustParse("7b0d4a2e-0c0e-4b8e-9a53-1f6d3c2b9e01")

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    account.CreateParams
		setupMock func(repo *account.MockRepository, otx *account.MockOwnerTx)
		checkErr  func(t *testing.T, err error)
	}

	tests := []testCase{
		{
			name: "Success",
			params: account.CreateParams{
				OwnerID:        owner,
				Code:           "1001",
				Name:           "Cash Account",
				Type:           account.TypeAsset,
				OpeningBalance: decimal.RequireFromString("1000.004"),
			},
			setupMock: func(repo *account.MockRepository, otx *account.MockOwnerTx) {
				repo.EXPECT().BeginOwner(gomock.Any(), owner).Return(otx, nil)
				otx.EXPECT().CodeExists(gomock.Any(), "1001").Return(false, nil)
				otx.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *account.Account) error {
						a.ID = uuid.New()
						return nil
					})
				otx.EXPECT().Commit().Return(nil)
				otx.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name: "DuplicateCode",
			params: account.CreateParams{
				OwnerID: owner,
				Code:    "5001",
				Name:    "Travel",
				Type:    account.TypeExpense,
			},
			setupMock: func(repo *account.MockRepository, otx *account.MockOwnerTx) {
				repo.EXPECT().BeginOwner(gomock.Any(), owner).Return(otx, nil)
				otx.EXPECT().CodeExists(gomock.Any(), "5001").Return(true, nil)
				otx.EXPECT().Rollback().Return(nil)
			},
			checkErr: func(t *testing.T, err error) {
				var dup *account.DuplicateCodeError
				require.ErrorAs(t, err, &dup)
				assert.Equal(t, "5001", dup.Code)
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			},
		},
		{
			name:   "InvalidType",
			params: account.CreateParams{OwnerID: owner, Code: "8001", Name: "Memo", Type: "memo"},
			checkErr: func(t *testing.T, err error) {
				var typeErr *account.InvalidAccountTypeError
				require.ErrorAs(t, err, &typeErr)
				assert.Equal(t, account.Type("memo"), typeErr.Type)
			},
		},
		{
			name:   "EmptyName",
			params: account.CreateParams{OwnerID: owner, Code: "1002", Name: "  ", Type: account.TypeAsset},
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, account.ErrEmptyName)
			},
		},
		{
			name:   "CodeTooLong",
			params: account.CreateParams{OwnerID: owner, Code: "1000000000000000000001", Name: "Vault", Type: account.TypeAsset},
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, account.ErrLongCode)
				assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
			},
		},
		{
			name:   "StorageError",
			params: account.CreateParams{OwnerID: owner, Code: "1003", Name: "Petty Cash", Type: account.TypeAsset},
			setupMock: func(repo *account.MockRepository, otx *account.MockOwnerTx) {
				repo.EXPECT().BeginOwner(gomock.Any(), owner).Return(nil, errors.New("db down"))
			},
			checkErr: func(t *testing.T, err error) {
				var opErr *apperr.OpError
				require.ErrorAs(t, err, &opErr)
				assert.Equal(t, owner, opErr.OwnerID)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			otx := account.NewMockOwnerTx(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, otx)
			}

			svc := account.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.checkErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)
				tt.checkErr(t, err)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.True(t, got.IsActive)
			assert.Equal(t, "1000.00", got.OpeningBalance.StringFixed(2))
		})
	}
}

func TestService_GenerateCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	otx := account.NewMockOwnerTx(ctrl)

	repo.EXPECT().BeginOwner(gomock.Any(), owner).Return(otx, nil)
	otx.EXPECT().HighestCode(gomock.Any(), "5").Return("5002", nil)
	otx.EXPECT().ReserveCode(gomock.Any(), "5", 2).Return(3, nil)
	otx.EXPECT().Commit().Return(nil)
	otx.EXPECT().Rollback().Return(nil)

	code, err := account.NewService(repo).GenerateCode(context.Background(), owner, account.TypeExpense)
	require.NoError(t, err)
	assert.Equal(t, "5003", code)
}

func TestService_FindOrCreate(t *testing.T) {
	existing := &account.Account{
		ID:       uuid.New(),
		OwnerID:  owner,
		Code:     "1002",
		Name:     "HDFC Bank Account",
		Type:     account.TypeAsset,
		IsActive: true,
	}

	type testCase struct {
		name      string
		typ       account.Type
		hint      string
		setupMock func(repo *account.MockRepository, otx *account.MockOwnerTx)
		want      func(t *testing.T, got *account.Account, err error)
	}

	tests := []testCase{
		{
			name: "MatchesExisting",
			typ:  account.TypeAsset,
			hint: "bank account",
			setupMock: func(repo *account.MockRepository, otx *account.MockOwnerTx) {
				repo.EXPECT().BeginOwner(gomock.Any(), owner).Return(otx, nil)
				otx.EXPECT().FindActiveByName(gomock.Any(), account.TypeAsset, "bank account").Return(existing, nil)
				otx.EXPECT().Rollback().Return(nil)
			},
			want: func(t *testing.T, got *account.Account, err error) {
				require.NoError(t, err)
				assert.Same(t, existing, got)
			},
		},
		{
			name: "CreatesWithNextCode",
			typ:  account.TypeExpense,
			hint: " Travel ",
			setupMock: func(repo *account.MockRepository, otx *account.MockOwnerTx) {
				repo.EXPECT().BeginOwner(gomock.Any(), owner).Return(otx, nil)
				otx.EXPECT().FindActiveByName(gomock.Any(), account.TypeExpense, "Travel").Return(nil, nil)
				otx.EXPECT().HighestCode(gomock.Any(), "5").Return("5002", nil)
				otx.EXPECT().ReserveCode(gomock.Any(), "5", 2).Return(3, nil)
				otx.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *account.Account) error {
						a.ID = uuid.New()
						return nil
					})
				otx.EXPECT().Commit().Return(nil)
				otx.EXPECT().Rollback().Return(nil)
			},
			want: func(t *testing.T, got *account.Account, err error) {
				require.NoError(t, err)
				assert.Equal(t, "5003", got.Code)
				assert.Equal(t, "Travel", got.Name)
				assert.Equal(t, account.TypeExpense, got.Type)
				assert.True(t, got.OpeningBalance.IsZero())
			},
		},
		{
			name: "CodeCollisionIsSequenceConflict",
			typ:  account.TypeLiability,
			hint: "TDS Payable",
			setupMock: func(repo *account.MockRepository, otx *account.MockOwnerTx) {
				repo.EXPECT().BeginOwner(gomock.Any(), owner).Return(otx, nil)
				otx.EXPECT().FindActiveByName(gomock.Any(), account.TypeLiability, "TDS Payable").Return(nil, nil)
				otx.EXPECT().HighestCode(gomock.Any(), "2").Return("", nil)
				otx.EXPECT().ReserveCode(gomock.Any(), "2", 0).Return(1, nil)
				otx.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					Return(&account.DuplicateCodeError{OwnerID: owner, Code: "2001"})
				otx.EXPECT().Rollback().Return(nil)
			},
			want: func(t *testing.T, got *account.Account, err error) {
				var conflict *apperr.SequenceConflictError
				require.ErrorAs(t, err, &conflict)
				assert.Equal(t, "2001", conflict.Value)
				assert.True(t, apperr.Retryable(err))
			},
		},
		{
			name: "EmptyHint",
			typ:  account.TypeAsset,
			hint: "",
			want: func(t *testing.T, got *account.Account, err error) {
				assert.ErrorIs(t, err, account.ErrEmptyName)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			otx := account.NewMockOwnerTx(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(repo, otx)
			}

			got, err := account.NewService(repo).FindOrCreate(context.Background(), owner, tt.typ, tt.hint)
			tt.want(t, got, err)
		})
	}
}

func TestService_Deactivate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().DeactivateAccount(gomock.Any(), id).Return(account.ErrNotFound)

	err := account.NewService(repo).Deactivate(context.Background(), id)
	assert.ErrorIs(t, err, account.ErrNotFound)
}
