package dto

// Record inputs carry amounts as strings; they are parsed into exact
// decimals at the service boundary and malformed values are rejected there,
// never coerced to zero.

// PaymentInput is one payment taken during the session.
type PaymentInput struct {
	TypeCode    string `json:"typeCode"`
	Description string `json:"description"`
	Amount      string `json:"amount" binding:"required"`
}

// SupplyInput is one cash injection into the drawer.
type SupplyInput struct {
	Amount     string `json:"amount" binding:"required"`
	ReceivedAt string `json:"receivedAt" binding:"omitempty,datetime=15:04"`
	Note       string `json:"note"`
}

// WithdrawalInput is one cash removal (sangria).
type WithdrawalInput struct {
	Amount string `json:"amount" binding:"required"`
	PaidAt string `json:"paidAt" binding:"omitempty,datetime=15:04"`
	Note   string `json:"note"`
}

// InstallmentInput is one deferred-payment sale.
type InstallmentInput struct {
	Amount       string `json:"amount" binding:"required"`
	CustomerName string `json:"customerName"`
	ExitTime     string `json:"exitTime" binding:"omitempty,datetime=15:04"`
}

// BudgetInput is one budget still in progress.
type BudgetInput struct {
	Amount     string `json:"amount" binding:"required"`
	SellerName string `json:"sellerName"`
}

// DevolutionInput is one return/refund.
type DevolutionInput struct {
	TypeCode string `json:"typeCode"`
	Amount   string `json:"amount" binding:"required"`
	Reason   string `json:"reason"`
	ExitTime string `json:"exitTime" binding:"omitempty,datetime=15:04"`
}

// DiscountInput is one discount granted on a sale.
type DiscountInput struct {
	Amount     string `json:"amount" binding:"required"`
	ExitTime   string `json:"exitTime" binding:"omitempty,datetime=15:04"`
	SellerName string `json:"sellerName"`
}

// AppendRecordsRequest is a batch of records to append to an open session.
// Any combination of kinds may be present.
type AppendRecordsRequest struct {
	Payments     []PaymentInput     `json:"payments"`
	Supplies     []SupplyInput      `json:"supplies"`
	Withdrawals  []WithdrawalInput  `json:"withdrawals"`
	Installments []InstallmentInput `json:"installments"`
	Budgets      []BudgetInput      `json:"budgets"`
	Devolutions  []DevolutionInput  `json:"devolutions"`
	Discounts    []DiscountInput    `json:"discounts"`
}

// Count returns the total number of records in the batch.
func (r AppendRecordsRequest) Count() int {
	return len(r.Payments) + len(r.Supplies) + len(r.Withdrawals) +
		len(r.Installments) + len(r.Budgets) + len(r.Devolutions) + len(r.Discounts)
}

// AppendRecordsResponse reports how many records were persisted.
type AppendRecordsResponse struct {
	Appended int `json:"appended"`
}
