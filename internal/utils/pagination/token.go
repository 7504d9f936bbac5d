// Package pagination implements the opaque cursor tokens used by list
// endpoints. A cursor encodes the sort key of the last row returned so the
// next page can resume after it without offset arithmetic.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeClosingCursor creates a token from a closing's opening timestamp and
// identifier. Closings are listed newest first; the pair uniquely positions
// the cursor even when two sessions opened at the same instant.
func EncodeClosingCursor(openedAt time.Time, closingID string) string {
	tokenStr := fmt.Sprintf("%s|%s", openedAt.Format(timeFormat), closingID)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeClosingCursor parses a token produced by EncodeClosingCursor.
func DecodeClosingCursor(token string) (time.Time, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	openedAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}

	return openedAt, parts[1], nil
}
