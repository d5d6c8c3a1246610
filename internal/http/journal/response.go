package journal

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/tally/internal/journal"
	"github.com/MrJamesThe3rd/tally/internal/money"
)

type lineResponse struct {
	ID        uuid.UUID `json:"id"`
	AccountID uuid.UUID `json:"account_id"`
	Debit     string    `json:"debit"`
	Credit    string    `json:"credit"`
	Narration string    `json:"narration,omitempty"`
}

type journalResponse struct {
	ID          uuid.UUID      `json:"id"`
	Number      string         `json:"number"`
	Date        string         `json:"date"`
	Narration   string         `json:"narration"`
	Status      journal.Status `json:"status"`
	TotalDebit  string         `json:"total_debit"`
	TotalCredit string         `json:"total_credit"`
	Lines       []lineResponse `json:"lines"`
	CreatedAt   time.Time      `json:"created_at"`
}

func toResponse(j *journal.Journal) journalResponse {
	debit, credit := j.Totals()

	resp := journalResponse{
		ID:          j.ID,
		Number:      j.Number,
		Date:        j.Date.Format(time.DateOnly),
		Narration:   j.Narration,
		Status:      j.Status,
		TotalDebit:  money.Format(debit),
		TotalCredit: money.Format(credit),
		Lines:       make([]lineResponse, len(j.Lines)),
		CreatedAt:   j.CreatedAt,
	}

	for i, l := range j.Lines {
		resp.Lines[i] = lineResponse{
			ID:        l.ID,
			AccountID: l.AccountID,
			Debit:     money.Format(l.DebitAmount()),
			Credit:    money.Format(l.CreditAmount()),
			Narration: l.Narration,
		}
	}

	return resp
}

func toResponseList(journals []*journal.Journal) []journalResponse {
	resp := make([]journalResponse, len(journals))
	for i, j := range journals {
		resp[i] = toResponse(j)
	}

	return resp
}
