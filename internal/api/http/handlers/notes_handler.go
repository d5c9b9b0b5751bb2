package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/service"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// NotesHandler manages the note thread nested under a ticket.
type NotesHandler struct {
	service *service.NoteService
}

// NewNotesHandler constructs handler.
func NewNotesHandler(noteService *service.NoteService) *NotesHandler {
	return &NotesHandler{service: noteService}
}

// ListNotes GET /tickets/:ticketId/notes.
func (h *NotesHandler) ListNotes(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	notes, err := h.service.ListNotes(c.Context(), caller.ID, c.Params("ticketId"))
	if err != nil {
		return err
	}
	items := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		items = append(items, dto.NoteFromDomain(&notes[i]))
	}
	return c.JSON(items)
}

// AddNote POST /tickets/:ticketId/notes. Returns 200, matching the public
// contract for this route.
func (h *NotesHandler) AddNote(c *fiber.Ctx) error {
	caller, ok := auth.CallerFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	note, err := h.service.AddNote(c.Context(), caller.ID, c.Params("ticketId"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(dto.NoteFromDomain(note))
}
