package closingcalc

import (
	"sort"

	"github.com/caixafacil/pos_closing_app/internal/core/domain"
)

// canonicalOrder is the fixed, domain-meaningful display sequence for
// payment-method groups. Display order never depends on map iteration.
var canonicalOrder = []domain.PaymentTypeCode{
	domain.TypeCard,
	domain.TypePix,
	domain.TypeCash,
	domain.TypeVoucher,
	domain.TypeCheck,
}

// OrderTypeCodes returns the type codes present in the grouped payments in
// canonical presentation order: card, pix, cash, voucher, check. Codes
// absent from the data are omitted. Codes present in the data but not in the
// canonical list are appended at the end, sorted ascending, so unexpected
// payment methods stay visible instead of being silently dropped.
func OrderTypeCodes(groups map[domain.PaymentTypeCode]domain.PaymentGroup) []domain.PaymentTypeCode {
	ordered := make([]domain.PaymentTypeCode, 0, len(groups))
	for _, code := range canonicalOrder {
		if _, ok := groups[code]; ok {
			ordered = append(ordered, code)
		}
	}

	var unknown []domain.PaymentTypeCode
	for code := range groups {
		if !isCanonical(code) {
			unknown = append(unknown, code)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })

	return append(ordered, unknown...)
}

func isCanonical(code domain.PaymentTypeCode) bool {
	for _, c := range canonicalOrder {
		if c == code {
			return true
		}
	}
	return false
}
