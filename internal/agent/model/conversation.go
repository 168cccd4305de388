package model

import (
	"context"
)

// ConversationStore keeps the per-session state: a bounded FIFO history of
// query records, the merged preferences, and the dominant theme. Sessions
// are isolated from each other; an unknown session ID behaves like an empty
// session and is created on first write.
type ConversationStore interface {
	// Append commits a fully constructed record to the session's history,
	// assigning the next sequence number and evicting the oldest record when
	// the capacity is exceeded. This is the sole commit point for a query.
	Append(ctx context.Context, sessionID string, rec QueryRecord) (QueryRecord, error)

	// Recent returns the last n records, most-recent last. Unknown sessions
	// yield an empty slice, never an error.
	Recent(ctx context.Context, sessionID string, n int) ([]QueryRecord, error)

	// EntitiesInWindow returns the union of extracted entities across the
	// last n records, in first-seen order.
	EntitiesInWindow(ctx context.Context, sessionID string, n int) ([]string, error)

	// Preferences returns a snapshot of the session's merged preferences.
	Preferences(ctx context.Context, sessionID string) (Preferences, error)

	// MergePreferences applies a delta to the session's preferences and
	// returns the merged snapshot.
	MergePreferences(ctx context.Context, sessionID string, delta PreferenceDelta) (Preferences, error)

	// Theme returns the session's dominant theme, QueryGeneral when unset.
	Theme(ctx context.Context, sessionID string) (QueryType, error)

	// SetTheme records the recomputed dominant theme.
	SetTheme(ctx context.Context, sessionID string, theme QueryType) error

	// AttachToolUsage sets the tool names on the most recent record, once.
	AttachToolUsage(ctx context.Context, sessionID string, toolNames []string) error

	// QueryCount returns the total number of queries ever appended to the
	// session, including evicted ones.
	QueryCount(ctx context.Context, sessionID string) (int64, error)
}
