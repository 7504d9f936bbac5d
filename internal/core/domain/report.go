package domain

import "github.com/shopspring/decimal"

// PaymentGroup is the per-payment-method aggregation used by the closing
// report breakdown. Total always equals the exact sum of Members' amounts;
// it is recomputed fresh on every derivation, never maintained incrementally.
type PaymentGroup struct {
	TypeCode PaymentTypeCode `json:"typeCode"`
	Members  []PaymentRecord `json:"members"`
	Total    decimal.Decimal `json:"total"`
}

// ClosingReport is the derived view model for one closing period: grouped
// payment totals, the drawer reconciliation figure, and the period's sales
// grand total. It is a pure function of the fetched record set.
type ClosingReport struct {
	ClosingID string `json:"closingID"`
	CompanyID string `json:"companyID"`

	// Groups are ordered by the canonical presentation sequence
	// (card, pix, cash, voucher, check, then unrecognized codes).
	Groups []PaymentGroup `json:"groups"`

	SupplyTotal         decimal.Decimal `json:"supplyTotal"`
	WithdrawalTotal     decimal.Decimal `json:"withdrawalTotal"`
	DevolutionTotal     decimal.Decimal `json:"devolutionTotal"`
	CashDevolutionTotal decimal.Decimal `json:"cashDevolutionTotal"`
	InstallmentsTotal   decimal.Decimal `json:"installmentsTotal"`
	BudgetTotal         decimal.Decimal `json:"budgetTotal"`
	DiscountTotal       decimal.Decimal `json:"discountTotal"`

	// DrawerCashTotal = cash payments + supplies - withdrawals - cash
	// devolutions. May be negative; a negative value signals a real drawer
	// discrepancy and is never clamped.
	DrawerCashTotal decimal.Decimal `json:"drawerCashTotal"`

	// GrandTotal = sum of all group totals + installments. Budgets in
	// progress are never included.
	GrandTotal decimal.Decimal `json:"grandTotal"`

	Supplies     []SupplyRecord           `json:"supplies"`
	Withdrawals  []WithdrawalRecord       `json:"withdrawals"`
	Installments []InstallmentSaleRecord  `json:"installments"`
	Budgets      []BudgetInProgressRecord `json:"budgets"`
	Devolutions  []DevolutionRecord       `json:"devolutions"`
	Discounts    []DiscountRecord         `json:"discounts"`
}

// CashGroupTotal returns the cash group's total, or zero when no cash
// payments were recorded in the period.
func (r ClosingReport) CashGroupTotal() decimal.Decimal {
	for _, g := range r.Groups {
		if g.TypeCode == TypeCash {
			return g.Total
		}
	}
	return decimal.Zero
}
