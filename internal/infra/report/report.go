package report

import (
	"time"

	"github.com/i32sevit/analiza-tu-pc/internal/domain/analyses"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/hardware"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/scoring"
)

// Synthesizer produces the two report artifacts for one analysis: a
// PDF document for people and a JSON summary for machines. Both embed
// the same identifier, hardware description and score result; neither
// is ever published without the other.
type Synthesizer struct{}

func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

func (s *Synthesizer) Synthesize(hw hardware.Description, res scoring.Result, id analyses.AnalysisID, generatedAt time.Time, advice string) (analyses.Artifacts, error) {
	pdfBytes, err := buildPDF(hw, res, id, generatedAt, advice)
	if err != nil {
		return analyses.Artifacts{}, err
	}
	jsonBytes, err := buildSummary(hw, res, id, generatedAt, advice)
	if err != nil {
		return analyses.Artifacts{}, err
	}
	return analyses.Artifacts{PDF: pdfBytes, JSON: jsonBytes}, nil
}
