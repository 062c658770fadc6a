package analyses

import (
	"time"

	"github.com/i32sevit/analiza-tu-pc/internal/domain/hardware"
)

// AnalysisID is unique within one owner's scope, not globally. Two
// owners may both hold an analysis 1.
type AnalysisID int64

// Analysis is the durable projection of one completed analysis for a
// registered owner. Write-once: created after artifact publication,
// never updated, deleted only by the owner.
type Analysis struct {
	ID          AnalysisID           `json:"analysis_id"`
	Owner       string               `json:"owner"`
	Hardware    hardware.Description `json:"hardware"`
	MainProfile string               `json:"main_profile"`
	MainScore   float64              `json:"main_score"`
	PDFURL      *string              `json:"pdf_url"`
	JSONURL     *string              `json:"json_url"`
	CreatedAt   time.Time            `json:"created_at"`
}

// Stats is a live aggregate over an owner's records (or all records
// when the owner scope is empty).
type Stats struct {
	Count               int64            `json:"count"`
	MeanScore           float64          `json:"mean_score"`
	ProfileDistribution map[string]int64 `json:"profile_distribution"`
}
