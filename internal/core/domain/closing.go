package domain

import "time"

// ClosingStatus indicates whether a closing session is still receiving
// records or has been finalized.
type ClosingStatus string

const (
	ClosingOpen   ClosingStatus = "OPEN"
	ClosingClosed ClosingStatus = "CLOSED"
)

// ClosingSession is one bounded point-of-sale cash-drawer session. Records
// are append-only while the session is OPEN and immutable once CLOSED.
//
// OpenTime and CloseTime are wall-clock times of day ("15:04") within
// OpenDate; the pair of date plus times defines the record window, matching
// how the point-of-sale collaborator scopes its queries.
type ClosingSession struct {
	ClosingID   string        `json:"closingID"`
	CompanyID   string        `json:"companyID"`
	Register    string        `json:"register"` // point-of-sale terminal identifier
	OpenDate    time.Time     `json:"openDate"`
	OpenTime    string        `json:"openTime"`
	CloseTime   *string       `json:"closeTime,omitempty"`
	OpeningNote string        `json:"openingNote"`
	Status      ClosingStatus `json:"status"`
	AuditFields
}

// IsOpen reports whether the session still accepts records.
func (c ClosingSession) IsOpen() bool {
	return c.Status == ClosingOpen
}

// ClosingQuery identifies the record window a closing report is built for.
// ClosingID, OpenDate and OpenTime are required; a query missing any of them
// must not be issued to the data collaborator.
type ClosingQuery struct {
	ClosingID string
	CompanyID string
	OpenDate  time.Time
	OpenTime  string
	CloseTime *string
}

// Complete reports whether the query carries every required parameter.
func (q ClosingQuery) Complete() bool {
	return q.ClosingID != "" && !q.OpenDate.IsZero() && q.OpenTime != ""
}
