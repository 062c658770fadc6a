package analyses

import (
	"context"
	"time"

	"github.com/i32sevit/analiza-tu-pc/internal/domain/hardware"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/scoring"
)

// Repository port (persistence of analysis records).
//
// ReserveID must be atomic per owner: two concurrent reservations for
// the same owner never observe the same value. Reservations are
// gap-tolerant; a reserved id whose pipeline later fails is simply
// never inserted.
type Repository interface {
	ReserveID(ctx context.Context, owner string) (AnalysisID, error)
	Save(ctx context.Context, a *Analysis) error
	Get(ctx context.Context, owner string, id AnalysisID) (*Analysis, error)
	// List returns records newest-first plus the owner's total count.
	List(ctx context.Context, owner string, offset, limit int) ([]*Analysis, int64, error)
	Delete(ctx context.Context, owner string, id AnalysisID) (bool, error)
	// Stats aggregates live; owner == "" means global scope.
	Stats(ctx context.Context, owner string) (*Stats, error)
}

// LinkOutcome reports how a share link was obtained, instead of
// string-matching "already exists" error text.
type LinkOutcome int

const (
	LinkCreated LinkOutcome = iota
	LinkReused
	LinkFailed
)

// ArtifactStore port (external durable storage for report artifacts).
// Upload has overwrite semantics: re-uploading under the same key
// replaces prior content.
type ArtifactStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	ShareLink(ctx context.Context, key string) (string, LinkOutcome, error)
}

// Artifacts are the two co-produced report blobs. They share one
// logical identity: a failure to produce either is total failure.
type Artifacts struct {
	PDF  []byte
	JSON []byte
}

// Synthesizer port (report generation). The generation timestamp is
// injected so synthesis stays deterministic under test.
type Synthesizer interface {
	Synthesize(hw hardware.Description, res scoring.Result, id AnalysisID, generatedAt time.Time, advice string) (Artifacts, error)
}
