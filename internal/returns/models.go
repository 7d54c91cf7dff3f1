package returns

import (
	"strconv"

	"warehouse-dashboard/pkg/metadata"
	"warehouse-dashboard/pkg/models"

	"github.com/shopspring/decimal"
)

type LineItem struct {
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Total       decimal.Decimal `json:"total"`
}

type ReturnRequest struct {
	ReturnID              int                   `json:"return_id"`
	OriginalTransactionID int                   `json:"original_transaction_id"`
	Reason                string                `json:"reason"`
	LocationName          string                `json:"location_name"`
	TotalRefund           decimal.Decimal       `json:"total_refund"`
	Username              string                `json:"username"`
	CreatedAt             string                `json:"created_at"`
	Status                metadata.ReturnStatus `json:"status,omitempty"`
	Items                 []LineItem            `json:"items,omitempty"`
}

func (r ReturnRequest) CreateLogView() models.AuditLog {
	return models.AuditLog{
		ResourceID:   strconv.Itoa(r.ReturnID),
		ResourceType: "return_request",
	}
}

// PendingSummary is shown above the pending list.
type PendingSummary struct {
	Count       int             `json:"count"`
	TotalRefund decimal.Decimal `json:"totalRefund"`
}

func summarize(pending []ReturnRequest) PendingSummary {
	total := decimal.Zero
	for _, r := range pending {
		total = total.Add(r.TotalRefund)
	}
	return PendingSummary{Count: len(pending), TotalRefund: total}
}

// ItemsTotal sums the line totals of a detail fetch.
func ItemsTotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Total)
	}
	return total
}
