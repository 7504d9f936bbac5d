package dto

import (
	"github.com/caixafacil/pos_closing_app/internal/core/domain"
	"github.com/caixafacil/pos_closing_app/internal/utils"
	"github.com/shopspring/decimal"
)

// ReportLineItem is one expandable row inside a report section.
type ReportLineItem struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
	Time   string `json:"time,omitempty"`
}

// ReportSection is one block of the closing report display: a label, a
// category tag for iconography, the section amount (signed, formatted), and
// its line items.
type ReportSection struct {
	Label    string           `json:"label"`
	Category string           `json:"category"`
	Amount   string           `json:"amount"`
	Items    []ReportLineItem `json:"items,omitempty"`
}

// ClosingReportTotals carries every derived total as an exact decimal, with
// no display formatting applied. Negative drawer totals are reported as-is.
type ClosingReportTotals struct {
	GroupedPayments decimal.Decimal `json:"groupedPayments"`
	Supply          decimal.Decimal `json:"supply"`
	Withdrawal      decimal.Decimal `json:"withdrawal"`
	Devolution      decimal.Decimal `json:"devolution"`
	CashDevolution  decimal.Decimal `json:"cashDevolution"`
	Installments    decimal.Decimal `json:"installments"`
	Budget          decimal.Decimal `json:"budget"`
	Discount        decimal.Decimal `json:"discount"`
	DrawerCash      decimal.Decimal `json:"drawerCash"`
	GrandTotal      decimal.Decimal `json:"grandTotal"`
}

// ClosingReportResponse is the report payload: raw totals for programmatic
// consumers plus the ordered, formatted display sections.
type ClosingReportResponse struct {
	ClosingID string              `json:"closingID"`
	CompanyID string              `json:"companyID"`
	Totals    ClosingReportTotals `json:"totals"`
	Sections  []ReportSection     `json:"sections"`
}

// typeCodeLabels maps canonical payment type codes to display labels.
// Unrecognized codes fall back to the code itself so nothing is hidden.
var typeCodeLabels = map[domain.PaymentTypeCode]string{
	domain.TypeCard:    "Card",
	domain.TypePix:     "Pix",
	domain.TypeCash:    "Cash",
	domain.TypeVoucher: "Voucher",
	domain.TypeCheck:   "Check",
}

func typeCodeLabel(code domain.PaymentTypeCode) string {
	if label, ok := typeCodeLabels[code]; ok {
		return label
	}
	return string(code)
}

// ToClosingReportResponse converts the derived report into the display
// payload. Sections whose total is exactly zero are suppressed; the
// underlying totals remain available in Totals. Sign prefixes are applied
// here, at render time only.
func ToClosingReportResponse(report *domain.ClosingReport, f *utils.CurrencyFormatter) ClosingReportResponse {
	groupedTotal := decimal.Zero
	for _, g := range report.Groups {
		groupedTotal = groupedTotal.Add(g.Total)
	}

	resp := ClosingReportResponse{
		ClosingID: report.ClosingID,
		CompanyID: report.CompanyID,
		Totals: ClosingReportTotals{
			GroupedPayments: groupedTotal,
			Supply:          report.SupplyTotal,
			Withdrawal:      report.WithdrawalTotal,
			Devolution:      report.DevolutionTotal,
			CashDevolution:  report.CashDevolutionTotal,
			Installments:    report.InstallmentsTotal,
			Budget:          report.BudgetTotal,
			Discount:        report.DiscountTotal,
			DrawerCash:      report.DrawerCashTotal,
			GrandTotal:      report.GrandTotal,
		},
	}

	// Payment groups first, already in canonical presentation order.
	for _, g := range report.Groups {
		if g.Total.IsZero() {
			continue
		}
		section := ReportSection{
			Label:    typeCodeLabel(g.TypeCode),
			Category: "payment",
			Amount:   f.Format(g.Total),
		}
		for _, m := range g.Members {
			section.Items = append(section.Items, ReportLineItem{
				Label:  m.Description,
				Amount: f.Format(m.Amount),
			})
		}
		resp.Sections = append(resp.Sections, section)
	}

	if !report.InstallmentsTotal.IsZero() {
		section := ReportSection{
			Label:    "Installment sales",
			Category: "installments",
			Amount:   f.Format(report.InstallmentsTotal),
		}
		for _, i := range report.Installments {
			section.Items = append(section.Items, ReportLineItem{
				Label:  i.CustomerName,
				Amount: f.Format(i.Amount),
				Time:   i.ExitTime,
			})
		}
		resp.Sections = append(resp.Sections, section)
	}

	if !report.SupplyTotal.IsZero() {
		section := ReportSection{
			Label:    "Supply",
			Category: "supply",
			Amount:   f.FormatSigned(report.SupplyTotal),
		}
		for _, s := range report.Supplies {
			section.Items = append(section.Items, ReportLineItem{
				Label:  s.Note,
				Amount: f.FormatSigned(s.Amount),
				Time:   s.ReceivedAt,
			})
		}
		resp.Sections = append(resp.Sections, section)
	}

	if !report.WithdrawalTotal.IsZero() {
		section := ReportSection{
			Label:    "Sangria",
			Category: "withdrawal",
			Amount:   f.FormatSigned(report.WithdrawalTotal.Neg()),
		}
		for _, w := range report.Withdrawals {
			section.Items = append(section.Items, ReportLineItem{
				Label:  w.Note,
				Amount: f.FormatSigned(w.Amount.Neg()),
				Time:   w.PaidAt,
			})
		}
		resp.Sections = append(resp.Sections, section)
	}

	if !report.DevolutionTotal.IsZero() {
		section := ReportSection{
			Label:    "Devolutions",
			Category: "devolution",
			Amount:   f.FormatSigned(report.DevolutionTotal.Neg()),
		}
		for _, d := range report.Devolutions {
			section.Items = append(section.Items, ReportLineItem{
				Label:  d.Reason,
				Amount: f.FormatSigned(d.Amount.Neg()),
				Time:   d.ExitTime,
			})
		}
		resp.Sections = append(resp.Sections, section)
	}

	if !report.DiscountTotal.IsZero() {
		section := ReportSection{
			Label:    "Discounts",
			Category: "discount",
			Amount:   f.FormatSigned(report.DiscountTotal.Neg()),
		}
		for _, d := range report.Discounts {
			section.Items = append(section.Items, ReportLineItem{
				Label:  d.SellerName,
				Amount: f.FormatSigned(d.Amount.Neg()),
				Time:   d.ExitTime,
			})
		}
		resp.Sections = append(resp.Sections, section)
	}

	// Budgets in progress are informational and never counted in totals.
	if !report.BudgetTotal.IsZero() {
		section := ReportSection{
			Label:    "Budgets in progress",
			Category: "budget",
			Amount:   f.Format(report.BudgetTotal),
		}
		for _, b := range report.Budgets {
			section.Items = append(section.Items, ReportLineItem{
				Label:  b.SellerName,
				Amount: f.Format(b.Amount),
			})
		}
		resp.Sections = append(resp.Sections, section)
	}

	if !report.DrawerCashTotal.IsZero() {
		resp.Sections = append(resp.Sections, ReportSection{
			Label:    "Cash in drawer",
			Category: "reconciliation",
			Amount:   f.Format(report.DrawerCashTotal),
		})
	}

	if !report.GrandTotal.IsZero() {
		resp.Sections = append(resp.Sections, ReportSection{
			Label:    "Total sales",
			Category: "total",
			Amount:   f.Format(report.GrandTotal),
		})
	}

	return resp
}
