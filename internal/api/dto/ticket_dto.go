package dto

import (
	"time"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CreateTicketRequest payload. Owner and status are not part of the
// request; they are forced server-side.
type CreateTicketRequest struct {
	Product     string `json:"product"`
	Description string `json:"description"`
}

// UpdateTicketRequest carries a partial update; absent fields are left
// untouched.
type UpdateTicketRequest struct {
	Product     *string              `json:"product"`
	Description *string              `json:"description"`
	Status      *domain.TicketStatus `json:"status"`
}

// TicketResponse response body.
type TicketResponse struct {
	ID          string              `json:"id"`
	Owner       string              `json:"owner"`
	Product     string              `json:"product"`
	Description string              `json:"description"`
	Status      domain.TicketStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// DeleteTicketResponse response body.
type DeleteTicketResponse struct {
	Success bool `json:"success"`
}

// TicketFromDomain maps the domain model to its response shape.
func TicketFromDomain(t *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          t.ID,
		Owner:       t.OwnerID,
		Product:     t.Product,
		Description: t.Description,
		Status:      t.Status,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
