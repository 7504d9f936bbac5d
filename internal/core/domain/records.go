package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PaymentTypeCode is the short code identifying a payment method.
type PaymentTypeCode string

const (
	TypeCard    PaymentTypeCode = "card"
	TypePix     PaymentTypeCode = "pix"
	TypeCash    PaymentTypeCode = "cash"
	TypeVoucher PaymentTypeCode = "voucher"
	TypeCheck   PaymentTypeCode = "check"
)

// PaymentRecord is one recorded payment during the closing period.
// TypeCode may be empty when the point-of-sale system recorded the payment
// without a method; such records are excluded from grouping by policy.
type PaymentRecord struct {
	RecordID    string          `json:"recordID"`
	ClosingID   string          `json:"closingID"`
	TypeCode    PaymentTypeCode `json:"typeCode"`
	Description string          `json:"description"` // card brand, voucher issuer, etc.
	Amount      decimal.Decimal `json:"amount"`
	AuditFields
}

// SupplyRecord is a manual cash injection into the drawer ("suprimento").
type SupplyRecord struct {
	RecordID   string          `json:"recordID"`
	ClosingID  string          `json:"closingID"`
	Amount     decimal.Decimal `json:"amount"`
	ReceivedAt string          `json:"receivedAt"` // wall-clock time within the session
	Note       string          `json:"note"`
	AuditFields
}

// WithdrawalRecord is a manual cash removal from the drawer ("sangria").
type WithdrawalRecord struct {
	RecordID  string          `json:"recordID"`
	ClosingID string          `json:"closingID"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    string          `json:"paidAt"`
	Note      string          `json:"note"`
	AuditFields
}

// InstallmentSaleRecord is a sale settled via deferred payment, counted
// separately from the immediate payment-method groups.
type InstallmentSaleRecord struct {
	RecordID     string          `json:"recordID"`
	ClosingID    string          `json:"closingID"`
	Amount       decimal.Decimal `json:"amount"`
	CustomerName string          `json:"customerName"`
	ExitTime     string          `json:"exitTime"`
	AuditFields
}

// BudgetInProgressRecord is an order or quote still in draft status at
// period end. Informational only; never counted in any total.
type BudgetInProgressRecord struct {
	RecordID   string          `json:"recordID"`
	ClosingID  string          `json:"closingID"`
	Amount     decimal.Decimal `json:"amount"`
	SellerName string          `json:"sellerName"`
	AuditFields
}

// DevolutionRecord is a return/refund processed during the period. Only
// refunds paid out in cash (TypeCode == TypeCash) affect the drawer total.
type DevolutionRecord struct {
	RecordID  string          `json:"recordID"`
	ClosingID string          `json:"closingID"`
	TypeCode  PaymentTypeCode `json:"typeCode"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	ExitTime  string          `json:"exitTime"`
	AuditFields
}

// DiscountRecord is a discount applied to a sale during the period, shown
// as a negative informational line.
type DiscountRecord struct {
	RecordID   string          `json:"recordID"`
	ClosingID  string          `json:"closingID"`
	Amount     decimal.Decimal `json:"amount"`
	ExitTime   string          `json:"exitTime"`
	SellerName string          `json:"sellerName"`
	AuditFields
}

// RecordSet is the full record collection fetched for one closing window.
// It is read-only from this service's perspective once assembled.
type RecordSet struct {
	Payments     []PaymentRecord
	Supplies     []SupplyRecord
	Withdrawals  []WithdrawalRecord
	Installments []InstallmentSaleRecord
	Budgets      []BudgetInProgressRecord
	Devolutions  []DevolutionRecord
	Discounts    []DiscountRecord
}

// CollaboratorAggregates are the convenience sums the data collaborator
// computes alongside the raw records. The report service recomputes every
// total from raw records and treats these only as a cross-check.
type CollaboratorAggregates struct {
	PaymentsCashAmount   decimal.Decimal
	GroupedPaymentsTotal decimal.Decimal
	SupplyAmount         decimal.Decimal
	SangriaAmount        decimal.Decimal
	InstallmentsAmount   decimal.Decimal
	BudgetAmount         decimal.Decimal
	DevolutionAmount     decimal.Decimal
	DevolutionCashAmount decimal.Decimal
	DiscountAmount       decimal.Decimal
}

// ParseAmount converts a raw textual amount into a decimal, failing loudly on
// malformed or negative input instead of coercing to zero. Every record
// amount ingested at the service boundary goes through this.
func ParseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, fmt.Errorf("amount is empty: %w", ErrMalformedAmount)
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q is not numeric: %w", raw, ErrMalformedAmount)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %q is negative: %w", raw, ErrMalformedAmount)
	}
	return d, nil
}

// ErrMalformedAmount is wrapped by every ParseAmount failure.
var ErrMalformedAmount = errors.New("malformed amount")

// IsMalformedAmount reports whether err came from ParseAmount rejecting input.
func IsMalformedAmount(err error) bool {
	return errors.Is(err, ErrMalformedAmount)
}
