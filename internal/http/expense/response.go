package expense

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/posting"
)

type expenseResponse struct {
	ID           uuid.UUID           `json:"id"`
	Date         string              `json:"date"`
	PayeeName    string              `json:"payee_name"`
	CategoryName string              `json:"category_name"`
	Description  string              `json:"description,omitempty"`
	GrossAmount  string              `json:"gross_amount"`
	TaxAmount    string              `json:"tax_amount"`
	TDSAmount    string              `json:"tds_amount"`
	TDSRuleID    *uuid.UUID          `json:"tds_rule_id,omitempty"`
	PaymentMode  posting.PaymentMode `json:"payment_mode"`
	Status       expense.Status      `json:"status"`
	JournalID    *uuid.UUID          `json:"journal_id,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    *time.Time          `json:"updated_at,omitempty"`
}

func toResponse(e *expense.Expense) expenseResponse {
	return expenseResponse{
		ID:           e.ID,
		Date:         e.Date.Format(time.DateOnly),
		PayeeName:    e.PayeeName,
		CategoryName: e.CategoryName,
		Description:  e.Description,
		GrossAmount:  money.Format(e.GrossAmount),
		TaxAmount:    money.Format(e.TaxAmount),
		TDSAmount:    money.Format(e.TDSAmount),
		TDSRuleID:    e.TDSRuleID,
		PaymentMode:  e.PaymentMode,
		Status:       e.Status,
		JournalID:    e.JournalID,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toResponseList(expenses []*expense.Expense) []expenseResponse {
	resp := make([]expenseResponse, len(expenses))
	for i, e := range expenses {
		resp[i] = toResponse(e)
	}

	return resp
}
