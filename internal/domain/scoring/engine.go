package scoring

import (
	"math"
	"strings"

	"github.com/i32sevit/analiza-tu-pc/internal/domain/hardware"
)

// Weights is one profile's weight tuple. The four weights sum to 1.0.
type Weights struct {
	CPU     float64
	GPU     float64
	RAM     float64
	Storage float64
}

// Profile couples a profile name with its weights. Declaration order in
// Config.Profiles is the tie-break order: on an exact score tie the
// earlier profile wins.
type Profile struct {
	Name    string
	Weights Weights
}

// Config holds the scoring tables. It is injected into the engine at
// construction so tests can swap weight sets without global state.
type Config struct {
	CPUCeiling float64
	RAMCeiling float64
	GPUCeiling float64

	NVMeTier float64
	SSDTier  float64
	BaseTier float64

	Profiles []Profile
}

// DefaultConfig returns the production weight tables.
func DefaultConfig() Config {
	return Config{
		CPUCeiling: 8.0,
		RAMCeiling: 32.0,
		GPUCeiling: 8.0,

		NVMeTier: 1.0,
		SSDTier:  0.6,
		BaseTier: 0.2,

		Profiles: []Profile{
			{Name: "Office", Weights: Weights{CPU: 0.4, RAM: 0.4, Storage: 0.2}},
			{Name: "Gaming", Weights: Weights{CPU: 0.25, GPU: 0.4, RAM: 0.2, Storage: 0.15}},
			{Name: "Video Editing", Weights: Weights{CPU: 0.3, GPU: 0.3, RAM: 0.3, Storage: 0.1}},
			{Name: "Virtualization", Weights: Weights{CPU: 0.45, RAM: 0.45, Storage: 0.1}},
			{Name: "Light ML", Weights: Weights{CPU: 0.2, GPU: 0.6, RAM: 0.2}},
		},
	}
}

// Result is the normalized scoring outcome. Scores holds every
// profile's value in [0,1]; MainScore is the winning value as a
// percentage with one decimal.
type Result struct {
	Scores      map[string]float64 `json:"scores"`
	MainProfile string             `json:"main_profile"`
	MainScore   float64            `json:"main_score"`
}

// Engine maps a hardware description to per-profile suitability scores.
// Pure and safe for unlimited concurrent use.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Score computes the per-profile suitability values and selects the
// dominant profile. Total for every description that passed boundary
// validation; zero-valued fields are fine, all formulas are linear.
func (e *Engine) Score(hw hardware.Description) Result {
	cpu := clamp01(hw.CPUSpeedGH * float64(hw.Cores) / e.cfg.CPUCeiling)
	ram := clamp01(hw.RAMGB / e.cfg.RAMCeiling)
	gpu := clamp01(hw.GPUVRAMGB / e.cfg.GPUCeiling)
	disk := e.diskTier(hw.DiskType)

	scores := make(map[string]float64, len(e.cfg.Profiles))
	best := -1.0
	main := ""
	for _, p := range e.cfg.Profiles {
		v := p.Weights.CPU*cpu + p.Weights.GPU*gpu + p.Weights.RAM*ram + p.Weights.Storage*disk
		scores[p.Name] = v
		// strict > keeps the first-declared profile on exact ties
		if v > best {
			best = v
			main = p.Name
		}
	}

	return Result{
		Scores:      scores,
		MainProfile: main,
		MainScore:   round1(best * 100),
	}
}

func (e *Engine) diskTier(tag string) float64 {
	t := hardware.NormalizeDiskType(tag)
	switch {
	case t == hardware.DiskNVMe:
		return e.cfg.NVMeTier
	case strings.Contains(t, hardware.DiskSSD):
		return e.cfg.SSDTier
	default:
		return e.cfg.BaseTier
	}
}

func clamp01(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
