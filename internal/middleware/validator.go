package middleware

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/i32sevit/analiza-tu-pc/internal/domain/hardware"
)

// Boundary validation for hardware submissions. The pipeline core
// never sees an input that fails these checks.

const maxModelNameLen = 255

// ValidateHardwareInput rejects malformed hardware descriptions:
// negative numerics, a core count below one, oversized free-text
// fields. Absent numeric fields are fine (the core applies baselines);
// unknown disk tags are fine (they degrade to the lowest tier).
func ValidateHardwareInput(in hardware.Input) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if len(in.CPUModel) > maxModelNameLen {
		return fmt.Errorf("cpu_model too long (max %d chars)", maxModelNameLen)
	}
	if len(in.GPUModel) > maxModelNameLen {
		return fmt.Errorf("gpu_model too long (max %d chars)", maxModelNameLen)
	}
	if len(in.DiskType) > 32 {
		return fmt.Errorf("disk_type too long (max 32 chars)")
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateOwnerID validates owner ID format
func ValidateOwnerID(owner string) error {
	if owner == "" {
		return fmt.Errorf("owner ID cannot be empty")
	}

	// Allow alphanumeric, dash, underscore (max 64 chars)
	pattern := `^[a-zA-Z0-9_-]{1,64}$`
	matched, _ := regexp.MatchString(pattern, owner)
	if !matched {
		return fmt.Errorf("invalid owner ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}

	return nil
}

// ValidatePageSize clamps pagination page size
func ValidatePageSize(size int) int {
	if size <= 0 {
		return 20 // default
	}
	if size > 100 {
		return 100 // max
	}
	return size
}
