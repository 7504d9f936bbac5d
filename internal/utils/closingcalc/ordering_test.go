package closingcalc_test

import (
	"testing"

	"github.com/caixafacil/pos_closing_app/internal/core/domain"
	"github.com/caixafacil/pos_closing_app/internal/utils/closingcalc"
	"github.com/stretchr/testify/assert"
)

func groupsFor(codes ...domain.PaymentTypeCode) map[domain.PaymentTypeCode]domain.PaymentGroup {
	groups := make(map[domain.PaymentTypeCode]domain.PaymentGroup, len(codes))
	for _, c := range codes {
		groups[c] = domain.PaymentGroup{TypeCode: c}
	}
	return groups
}

func TestOrderTypeCodes_CanonicalSequence(t *testing.T) {
	// Input order pix, cash, card must come back as card, pix, cash.
	ordered := closingcalc.OrderTypeCodes(groupsFor(domain.TypePix, domain.TypeCash, domain.TypeCard))
	assert.Equal(t, []domain.PaymentTypeCode{domain.TypeCard, domain.TypePix, domain.TypeCash}, ordered)
}

func TestOrderTypeCodes_AbsentCodesOmitted(t *testing.T) {
	ordered := closingcalc.OrderTypeCodes(groupsFor(domain.TypeCheck, domain.TypeVoucher))
	assert.Equal(t, []domain.PaymentTypeCode{domain.TypeVoucher, domain.TypeCheck}, ordered)
}

func TestOrderTypeCodes_UnrecognizedAppendedAtEnd(t *testing.T) {
	ordered := closingcalc.OrderTypeCodes(groupsFor(domain.TypeCash, "storecredit", domain.TypeCard, "crypto"))
	assert.Equal(t, []domain.PaymentTypeCode{
		domain.TypeCard,
		domain.TypeCash,
		"crypto",      // unknown codes sorted ascending after canonical ones
		"storecredit",
	}, ordered)
}

func TestOrderTypeCodes_Empty(t *testing.T) {
	assert.Empty(t, closingcalc.OrderTypeCodes(nil))
}
