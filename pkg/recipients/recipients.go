package recipients

import "context"

// Target is one (compact, jurisdiction) pair configured for report delivery.
type Target struct {
	Compact      string
	Jurisdiction string
}

// Source answers recipient-configuration queries keyed by compact and
// jurisdiction. A missing entry yields an empty list, not an error - deciding
// whether empty recipients are fatal belongs to the notification layer.
type Source interface {
	// Targets enumerates every configured (compact, jurisdiction) pair.
	Targets(ctx context.Context) ([]Target, error)
	// JurisdictionRecipients returns the operations recipients for one
	// jurisdiction within a compact.
	JurisdictionRecipients(ctx context.Context, compact, jurisdiction string) ([]string, error)
	// CompactRecipients returns the compact-level recipients used for
	// escalations.
	CompactRecipients(ctx context.Context, compact string) ([]string, error)
}
