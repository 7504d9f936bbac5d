package pagination_test

import (
	"testing"
	"time"

	"github.com/caixafacil/pos_closing_app/internal/utils/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClosingCursor_RoundTrip(t *testing.T) {
	openedAt := time.Date(2025, 8, 14, 8, 30, 0, 123456789, time.UTC)
	token := pagination.EncodeClosingCursor(openedAt, "closing-42")

	gotTime, gotID, err := pagination.DecodeClosingCursor(token)
	require.NoError(t, err)
	assert.True(t, openedAt.Equal(gotTime))
	assert.Equal(t, "closing-42", gotID)
}

func TestDecodeClosingCursor_NotBase64(t *testing.T) {
	_, _, err := pagination.DecodeClosingCursor("!!not-base64!!")
	assert.Error(t, err)
}

func TestDecodeClosingCursor_MissingParts(t *testing.T) {
	// Valid base64, but no separator inside.
	_, _, err := pagination.DecodeClosingCursor("aGVsbG8=")
	assert.Error(t, err)
}

func TestDecodeClosingCursor_BadTimestamp(t *testing.T) {
	_, _, err := pagination.DecodeClosingCursor("bm90LWEtdGltZXxpZA==") // "not-a-time|id"
	assert.Error(t, err)
}
