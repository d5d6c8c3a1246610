package tax

import (
	"time"

	"github.com/MrJamesThe3rd/tally/internal/money"
	"github.com/MrJamesThe3rd/tally/internal/tax"
)

type amountsResponse struct {
	Taxable string `json:"taxable"`
	Tax     string `json:"tax"`
}

func toAmounts(a tax.Amounts) amountsResponse {
	return amountsResponse{Taxable: money.Format(a.Taxable), Tax: money.Format(a.Tax)}
}

type suppliesResponse struct {
	Documents amountsResponse `json:"documents"`
	Returns   amountsResponse `json:"returns"`
	Net       amountsResponse `json:"net"`
}

func toSupplies(s *tax.SupplyTotals) *suppliesResponse {
	if s == nil {
		return nil
	}

	return &suppliesResponse{
		Documents: toAmounts(s.Documents),
		Returns:   toAmounts(s.Returns),
		Net:       toAmounts(s.Net),
	}
}

type categoryResponse struct {
	Category          string `json:"category"`
	TransactionAmount string `json:"transaction_amount"`
	TDSAmount         string `json:"tds_amount"`
	Count             int    `json:"count"`
}

type tdsResponse struct {
	Categories        []categoryResponse `json:"categories"`
	TransactionAmount string             `json:"transaction_amount"`
	TDSAmount         string             `json:"tds_amount"`
	Count             int                `json:"count"`
}

type summaryResponse struct {
	Kind                 tax.Kind          `json:"kind"`
	From                 string            `json:"from"`
	To                   string            `json:"to"`
	Outward              *suppliesResponse `json:"outward,omitempty"`
	Inward               *suppliesResponse `json:"inward,omitempty"`
	NetPayable           *string           `json:"net_payable,omitempty"`
	CreditCarriedForward *string           `json:"credit_carried_forward,omitempty"`
	TDS                  *tdsResponse      `json:"tds,omitempty"`
}

func toResponse(s *tax.Summary) summaryResponse {
	resp := summaryResponse{
		Kind:    s.Kind,
		From:    s.Range.From.Format(time.DateOnly),
		To:      s.Range.To.Format(time.DateOnly),
		Outward: toSupplies(s.Outward),
		Inward:  toSupplies(s.Inward),
	}

	if s.Kind == tax.KindGSTR3B {
		resp.NetPayable = new(money.Format(s.NetPayable))
		resp.CreditCarriedForward = new(money.Format(s.CreditCarriedForward))
	}

	if s.TDS != nil {
		t := &tdsResponse{
			Categories:        make([]categoryResponse, len(s.TDS.Categories)),
			TransactionAmount: money.Format(s.TDS.TransactionAmount),
			TDSAmount:         money.Format(s.TDS.TDSAmount),
			Count:             s.TDS.Count,
		}

		for i, c := range s.TDS.Categories {
			t.Categories[i] = categoryResponse{
				Category:          c.Category,
				TransactionAmount: money.Format(c.TransactionAmount),
				TDSAmount:         money.Format(c.TDSAmount),
				Count:             c.Count,
			}
		}

		resp.TDS = t
	}

	return resp
}
