// Package closingcalc holds the pure derivation core for point-of-sale
// closing reports: payment grouping, drawer reconciliation, and sales total
// aggregation. Every function is a pure, synchronous transformation over
// decimal values; re-running on the same input yields identical output.
package closingcalc

import (
	"sort"

	"github.com/caixafacil/pos_closing_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// descriptionCollator orders group members for display. Locale-aware so
// accented descriptions (card brands, voucher issuers) sort the way a
// Brazilian operator expects.
var descriptionCollator = collate.New(language.BrazilianPortuguese, collate.IgnoreCase)

// GroupPayments partitions payment records by type code and accumulates a
// running total per group. Records with an empty type code cannot be grouped
// and are skipped; this exclusion is an explicit policy, not an oversight.
//
// Within each group, members are sorted by description (locale-aware,
// ascending; record ID breaks ties) purely for stable display. The ordering
// has no effect on Total.
func GroupPayments(payments []domain.PaymentRecord) map[domain.PaymentTypeCode]domain.PaymentGroup {
	groups := make(map[domain.PaymentTypeCode]domain.PaymentGroup)
	for _, p := range payments {
		if p.TypeCode == "" {
			continue
		}
		g, ok := groups[p.TypeCode]
		if !ok {
			g = domain.PaymentGroup{TypeCode: p.TypeCode, Total: decimal.Zero}
		}
		g.Members = append(g.Members, p)
		g.Total = g.Total.Add(p.Amount)
		groups[p.TypeCode] = g
	}

	for code, g := range groups {
		sort.SliceStable(g.Members, func(i, j int) bool {
			cmp := descriptionCollator.CompareString(g.Members[i].Description, g.Members[j].Description)
			if cmp != 0 {
				return cmp < 0
			}
			return g.Members[i].RecordID < g.Members[j].RecordID
		})
		groups[code] = g
	}
	return groups
}

// DrawerCashTotal computes the cash-in-drawer figure:
//
//	cash payments + supplies - withdrawals - cash devolutions
//
// The result is signed and never clamped; a negative total reflects a real
// drawer discrepancy that must stay visible.
func DrawerCashTotal(cashPayments, supplyTotal, withdrawalTotal, cashDevolutionTotal decimal.Decimal) decimal.Decimal {
	return cashPayments.Add(supplyTotal).Sub(withdrawalTotal).Sub(cashDevolutionTotal)
}

// GrandTotal sums the already-computed group totals plus the installment
// total. Budgets in progress are never part of the grand total.
func GrandTotal(groups []domain.PaymentGroup, installmentsTotal decimal.Decimal) decimal.Decimal {
	total := installmentsTotal
	for _, g := range groups {
		total = total.Add(g.Total)
	}
	return total
}

// SumSupplies totals the cash injections of the period.
func SumSupplies(supplies []domain.SupplyRecord) decimal.Decimal {
	total := decimal.Zero
	for _, s := range supplies {
		total = total.Add(s.Amount)
	}
	return total
}

// SumWithdrawals totals the cash removals (sangrias) of the period.
func SumWithdrawals(withdrawals []domain.WithdrawalRecord) decimal.Decimal {
	total := decimal.Zero
	for _, w := range withdrawals {
		total = total.Add(w.Amount)
	}
	return total
}

// SumInstallments totals the deferred-payment sales of the period.
func SumInstallments(installments []domain.InstallmentSaleRecord) decimal.Decimal {
	total := decimal.Zero
	for _, i := range installments {
		total = total.Add(i.Amount)
	}
	return total
}

// SumBudgets totals the budgets still in progress. Informational only.
func SumBudgets(budgets []domain.BudgetInProgressRecord) decimal.Decimal {
	total := decimal.Zero
	for _, b := range budgets {
		total = total.Add(b.Amount)
	}
	return total
}

// SumDiscounts totals the discounts granted during the period.
func SumDiscounts(discounts []domain.DiscountRecord) decimal.Decimal {
	total := decimal.Zero
	for _, d := range discounts {
		total = total.Add(d.Amount)
	}
	return total
}

// SumDevolutions totals all devolutions of the period and, separately, the
// portion refunded in cash. Only the cash portion affects the drawer.
func SumDevolutions(devolutions []domain.DevolutionRecord) (total, cashPortion decimal.Decimal) {
	total = decimal.Zero
	cashPortion = decimal.Zero
	for _, d := range devolutions {
		total = total.Add(d.Amount)
		if d.TypeCode == domain.TypeCash {
			cashPortion = cashPortion.Add(d.Amount)
		}
	}
	return total, cashPortion
}

// DeriveReport reduces the full record set of a closing period into the
// report view model. It is recomputed fresh from the records on every call;
// nothing is accumulated across invocations.
func DeriveReport(closing domain.ClosingSession, records domain.RecordSet) domain.ClosingReport {
	grouped := GroupPayments(records.Payments)

	ordered := OrderTypeCodes(grouped)
	groups := make([]domain.PaymentGroup, 0, len(ordered))
	for _, code := range ordered {
		groups = append(groups, grouped[code])
	}

	supplyTotal := SumSupplies(records.Supplies)
	withdrawalTotal := SumWithdrawals(records.Withdrawals)
	installmentsTotal := SumInstallments(records.Installments)
	budgetTotal := SumBudgets(records.Budgets)
	discountTotal := SumDiscounts(records.Discounts)
	devolutionTotal, cashDevolutionTotal := SumDevolutions(records.Devolutions)

	cashPayments := decimal.Zero
	if g, ok := grouped[domain.TypeCash]; ok {
		cashPayments = g.Total
	}

	return domain.ClosingReport{
		ClosingID:           closing.ClosingID,
		CompanyID:           closing.CompanyID,
		Groups:              groups,
		SupplyTotal:         supplyTotal,
		WithdrawalTotal:     withdrawalTotal,
		DevolutionTotal:     devolutionTotal,
		CashDevolutionTotal: cashDevolutionTotal,
		InstallmentsTotal:   installmentsTotal,
		BudgetTotal:         budgetTotal,
		DiscountTotal:       discountTotal,
		DrawerCashTotal:     DrawerCashTotal(cashPayments, supplyTotal, withdrawalTotal, cashDevolutionTotal),
		GrandTotal:          GrandTotal(groups, installmentsTotal),
		Supplies:            records.Supplies,
		Withdrawals:         records.Withdrawals,
		Installments:        records.Installments,
		Budgets:             records.Budgets,
		Devolutions:         records.Devolutions,
		Discounts:           records.Discounts,
	}
}
