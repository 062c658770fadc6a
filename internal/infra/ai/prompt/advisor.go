package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/i32sevit/analiza-tu-pc/internal/domain/hardware"
	"github.com/i32sevit/analiza-tu-pc/internal/domain/scoring"
)

// GetSystemPrompt keeps the model on plain prose: the text goes
// straight into the PDF report.
func GetSystemPrompt() string {
	return `You are a PC hardware advisor. Given a machine's specification and its suitability scores per usage profile, write a short upgrade recommendation (3-5 sentences, plain text, no markdown, no lists). Focus on the one or two components that most limit the weakest relevant profiles. Be concrete (e.g. "add 16 GB RAM", "move the system drive to an NVMe SSD"). Do not restate the full specification.`
}

// GetUserPrompt renders the hardware description and full score
// distribution into a compact user message.
func GetUserPrompt(hw hardware.Description, res scoring.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CPU: %s (%d cores @ %.2f GHz)\n", hw.CPUModel, hw.Cores, hw.CPUSpeedGH)
	fmt.Fprintf(&b, "RAM: %.1f GB\n", hw.RAMGB)
	fmt.Fprintf(&b, "GPU: %s (%.1f GB VRAM)\n", hw.GPUModel, hw.GPUVRAMGB)
	fmt.Fprintf(&b, "Disk: %s\n", hw.DiskType)
	fmt.Fprintf(&b, "Best profile: %s (%.1f%%)\n", res.MainProfile, res.MainScore)

	names := make([]string, 0, len(res.Scores))
	for name := range res.Scores {
		names = append(names, name)
	}
	sort.Strings(names)
	b.WriteString("Scores:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "- %s: %.1f%%\n", name, res.Scores[name]*100)
	}
	return b.String()
}
