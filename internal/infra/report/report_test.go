package report

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i32sevit/analiza-tu-pc/internal/domain/hardware"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/scoring"
)

func sampleInputs() (hardware.Description, scoring.Result) {
	hw := hardware.Description{
		CPUModel:   "Ryzen 5 5600",
		CPUSpeedGH: 3.5,
		Cores:      6,
		RAMGB:      16,
		DiskType:   "ssd",
		GPUModel:   "RTX 3060",
		GPUVRAMGB:  6,
	}
	res := scoring.NewEngine(scoring.DefaultConfig()).Score(hw)
	return hw, res
}

func TestSynthesizeProducesBothArtifacts(t *testing.T) {
	hw, res := sampleInputs()
	at := time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)

	arts, err := NewSynthesizer().Synthesize(hw, res, 42, at, "add more RAM")
	require.NoError(t, err)

	require.NotEmpty(t, arts.PDF)
	require.NotEmpty(t, arts.JSON)
	// a real PDF starts with its magic marker
	assert.Equal(t, "%PDF", string(arts.PDF[:4]))
}

func TestSummaryFields(t *testing.T) {
	hw, res := sampleInputs()
	at := time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC)

	data, err := buildSummary(hw, res, 7, at, "advice text")
	require.NoError(t, err)

	var s Summary
	require.NoError(t, json.Unmarshal(data, &s))

	assert.EqualValues(t, 7, s.AnalysisID)
	assert.Equal(t, "2025-03-10T12:30:00Z", s.GeneratedAt)
	assert.Equal(t, hw, s.SysInfo)
	assert.Equal(t, res.MainProfile, s.Result.MainProfile)
	assert.Equal(t, res.MainScore, s.Result.MainScore)
	assert.Len(t, s.Result.Scores, len(res.Scores))
	assert.Equal(t, "advice text", s.Advice)
}

func TestSummaryOmitsEmptyAdvice(t *testing.T) {
	hw, res := sampleInputs()

	data, err := buildSummary(hw, res, 1, time.Now(), "")
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.NotContains(t, raw, "advice")
}

func TestSummaryTimestampNormalizedToUTC(t *testing.T) {
	hw, res := sampleInputs()
	loc := time.FixedZone("CET", 3600)
	at := time.Date(2025, 3, 10, 13, 30, 0, 0, loc)

	data, err := buildSummary(hw, res, 1, at, "")
	require.NoError(t, err)

	var s Summary
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, "2025-03-10T12:30:00Z", s.GeneratedAt)
}

func TestBuildPDFWithoutAdvice(t *testing.T) {
	hw, res := sampleInputs()

	data, err := buildPDF(hw, res, 3, time.Now(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}
