package report

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/i32sevit/analiza-tu-pc/internal/domain/analyses"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/hardware"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/scoring"
)

// Summary is the machine-readable artifact. It carries the full
// hardware description and the full score distribution, not just the
// winning profile.
type Summary struct {
	AnalysisID  analyses.AnalysisID  `json:"analysis_id"`
	GeneratedAt string               `json:"generated_at"`
	SysInfo     hardware.Description `json:"sysinfo"`
	Result      scoring.Result       `json:"result"`
	Advice      string               `json:"advice,omitempty"`
}

func buildSummary(hw hardware.Description, res scoring.Result, id analyses.AnalysisID, generatedAt time.Time, advice string) ([]byte, error) {
	s := Summary{
		AnalysisID:  id,
		GeneratedAt: generatedAt.UTC().Format(time.RFC3339),
		SysInfo:     hw,
		Result:      res,
		Advice:      advice,
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}
	return data, nil
}
