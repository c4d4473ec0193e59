package audit

import (
	"context"

	"github.com/studyhive/collab-service/pkg/log"
)

// Audit actions for collab-service.
const (
	ActionDocumentJoin  = "collab.join"
	ActionDocumentLeave = "collab.leave"
	ActionMindmapCreate = "mindmap.create"
	ActionMindmapDelete = "mindmap.delete"
)

// Field constants for audit entries.
const (
	FieldAction = "action"
	FieldDetail = "detail"
)

// Log emits a structured audit log entry via the context logger.
func Log(ctx context.Context, action string, userID string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Msg(msg)
}

// LogWithDocument emits an audit log bound to a document id.
func LogWithDocument(ctx context.Context, action string, userID string, documentID string, msg string) {
	l := log.Ctx(ctx)
	l.Info().
		Str(log.FieldLogType, log.LogTypeAudit).
		Str(FieldAction, action).
		Str(log.FieldUserID, userID).
		Str(log.FieldDocumentID, documentID).
		Msg(msg)
}
