package dto

import (
	"time"

	"github.com/caixafacil/pos_closing_app/internal/core/domain"
)

// OpenClosingRequest defines the payload for opening a closing session.
// OpenDate uses YYYY-MM-DD; OpenTime uses HH:MM (24h).
type OpenClosingRequest struct {
	Register    string `json:"register" binding:"required"`
	OpenDate    string `json:"openDate" binding:"required,datetime=2006-01-02"`
	OpenTime    string `json:"openTime" binding:"required,datetime=15:04"`
	OpeningNote string `json:"openingNote"`
}

// CloseClosingRequest defines the payload for finalizing a session.
type CloseClosingRequest struct {
	CloseTime string `json:"closeTime" binding:"required,datetime=15:04"`
}

// ClosingResponse defines the closing session representation returned by the API.
type ClosingResponse struct {
	ClosingID   string  `json:"closingID"`
	CompanyID   string  `json:"companyID"`
	Register    string  `json:"register"`
	OpenDate    string  `json:"openDate"`
	OpenTime    string  `json:"openTime"`
	CloseTime   *string `json:"closeTime,omitempty"`
	OpeningNote string  `json:"openingNote,omitempty"`
	Status      string  `json:"status"`
	CreatedAt   string  `json:"createdAt"`
}

// ListClosingsResponse wraps a page of closing sessions with the cursor for
// the next page. NextToken is empty on the last page.
type ListClosingsResponse struct {
	Closings  []ClosingResponse `json:"closings"`
	NextToken string            `json:"nextToken,omitempty"`
}

// ToClosingResponse converts a domain closing session to its API representation.
func ToClosingResponse(closing *domain.ClosingSession) ClosingResponse {
	return ClosingResponse{
		ClosingID:   closing.ClosingID,
		CompanyID:   closing.CompanyID,
		Register:    closing.Register,
		OpenDate:    closing.OpenDate.Format("2006-01-02"),
		OpenTime:    closing.OpenTime,
		CloseTime:   closing.CloseTime,
		OpeningNote: closing.OpeningNote,
		Status:      string(closing.Status),
		CreatedAt:   closing.CreatedAt.Format(time.RFC3339),
	}
}

// ToListClosingsResponse converts a page of domain sessions.
func ToListClosingsResponse(closings []domain.ClosingSession, nextToken string) ListClosingsResponse {
	resp := ListClosingsResponse{
		Closings:  make([]ClosingResponse, len(closings)),
		NextToken: nextToken,
	}
	for i := range closings {
		resp.Closings[i] = ToClosingResponse(&closings[i])
	}
	return resp
}
