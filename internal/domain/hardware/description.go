package hardware

import (
	"fmt"
	"strings"
)

// Disk type tags recognized by the scoring tiers. Anything else
// degrades to the lowest tier instead of being rejected.
const (
	DiskHDD  = "hdd"
	DiskSSD  = "ssd"
	DiskNVMe = "nvme"
)

// Description is the validated hardware description the pipeline works on.
type Description struct {
	CPUModel   string  `json:"cpu_model"`
	CPUSpeedGH float64 `json:"cpu_speed_ghz"`
	Cores      int     `json:"cores"`
	RAMGB      float64 `json:"ram_gb"`
	DiskType   string  `json:"disk_type"`
	GPUModel   string  `json:"gpu_model"`
	GPUVRAMGB  float64 `json:"gpu_vram_gb"`
}

// Input is the boundary DTO. Numeric fields are pointers so that an
// absent field can be told apart from an explicit zero: absent fields
// fall back to a neutral baseline, explicit zeros are kept.
type Input struct {
	CPUModel   string   `json:"cpu_model"`
	CPUSpeedGH *float64 `json:"cpu_speed_ghz"`
	Cores      *int     `json:"cores"`
	RAMGB      *float64 `json:"ram_gb"`
	DiskType   string   `json:"disk_type"`
	GPUModel   string   `json:"gpu_model"`
	GPUVRAMGB  *float64 `json:"gpu_vram_gb"`
}

// Validate rejects inputs the core must never see: negative numerics
// and a core count below one. Absent fields are fine.
func (in Input) Validate() error {
	if in.CPUSpeedGH != nil && *in.CPUSpeedGH < 0 {
		return fmt.Errorf("cpu_speed_ghz must be >= 0, got %v", *in.CPUSpeedGH)
	}
	if in.Cores != nil && *in.Cores < 1 {
		return fmt.Errorf("cores must be >= 1, got %d", *in.Cores)
	}
	if in.RAMGB != nil && *in.RAMGB < 0 {
		return fmt.Errorf("ram_gb must be >= 0, got %v", *in.RAMGB)
	}
	if in.GPUVRAMGB != nil && *in.GPUVRAMGB < 0 {
		return fmt.Errorf("gpu_vram_gb must be >= 0, got %v", *in.GPUVRAMGB)
	}
	return nil
}

// Normalize applies the neutral baselines for absent fields and
// canonicalizes the disk tag.
func (in Input) Normalize() Description {
	d := Description{
		CPUModel:   strings.TrimSpace(in.CPUModel),
		CPUSpeedGH: 1.0,
		Cores:      1,
		RAMGB:      1.0,
		DiskType:   NormalizeDiskType(in.DiskType),
		GPUModel:   strings.TrimSpace(in.GPUModel),
		GPUVRAMGB:  1.0,
	}
	if in.CPUSpeedGH != nil {
		d.CPUSpeedGH = *in.CPUSpeedGH
	}
	if in.Cores != nil {
		d.Cores = *in.Cores
	}
	if in.RAMGB != nil {
		d.RAMGB = *in.RAMGB
	}
	if in.GPUVRAMGB != nil {
		d.GPUVRAMGB = *in.GPUVRAMGB
	}
	return d
}

// NormalizeDiskType lowercases and trims the storage tag. Unknown tags
// are returned as-is; the scoring tiers treat them as the lowest tier.
func NormalizeDiskType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
