package service

import (
	"context"
	"fmt"

	"github.com/studyhive/collab-service/internal/audit"
	"github.com/studyhive/collab-service/internal/domain"
	"github.com/studyhive/collab-service/internal/gate"
	"github.com/studyhive/collab-service/internal/hub"
	"github.com/studyhive/collab-service/pkg/log"
)

type presenceService struct {
	hub      *hub.Hub
	sessions *gate.SessionStore
	docs     DocumentChecker
}

// NewPresenceService creates the presence protocol handler. docs may be nil
// when no document store is attached; joins then skip existence checks.
func NewPresenceService(h *hub.Hub, sessions *gate.SessionStore, docs DocumentChecker) PresenceService {
	return &presenceService{
		hub:      h,
		sessions: sessions,
		docs:     docs,
	}
}

func (s *presenceService) HandleJoin(ctx context.Context, c *hub.Client, documentID string) error {
	if documentID == "" {
		return c.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "documentId is required"))
	}

	// Join authorization re-reads the session record: the identity bound at
	// upgrade time must still be within the freshness window.
	if _, err := s.sessions.Authorize(c.UserID); err != nil {
		c.SendMessage(domain.NewErrorMessage(domain.ErrCodeUnauthorized, "session expired or unknown"))
		return fmt.Errorf("join rejected for user %s: %w", c.UserID, err)
	}

	if s.docs != nil {
		exists, err := s.docs.Exists(ctx, documentID)
		if err != nil {
			l := log.Ctx(ctx)
			l.Error().Err(err).Str(log.FieldDocumentID, documentID).Msg("document lookup failed")
			return c.SendMessage(domain.NewErrorMessage(domain.ErrCodeInternalError, "failed to resolve document"))
		}
		if !exists {
			return c.SendMessage(domain.NewErrorMessage(domain.ErrCodeNotFound, "document not found"))
		}
	}

	s.hub.Join(c, documentID)
	audit.LogWithDocument(ctx, audit.ActionDocumentJoin, c.UserID, documentID, "user joined document")
	return nil
}

func (s *presenceService) HandleLeave(ctx context.Context, c *hub.Client, documentID string) error {
	if documentID == "" {
		return c.SendMessage(domain.NewErrorMessage(domain.ErrCodeBadRequest, "documentId is required"))
	}

	s.hub.Leave(c, documentID)
	audit.LogWithDocument(ctx, audit.ActionDocumentLeave, c.UserID, documentID, "user left document")
	return nil
}

func (s *presenceService) HandleDisconnect(ctx context.Context, c *hub.Client) error {
	documentID := c.State.Document()
	s.hub.Disconnect(c)
	if documentID != "" {
		audit.LogWithDocument(ctx, audit.ActionDocumentLeave, c.UserID, documentID, "user disconnected from document")
	}
	return nil
}
