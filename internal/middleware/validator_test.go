package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/i32sevit/analiza-tu-pc/internal/domain/hardware"
)

func TestValidateHardwareInput(t *testing.T) {
	speed := 3.5
	negSpeed := -1.0
	cores := 6

	tests := []struct {
		name    string
		in      hardware.Input
		wantErr bool
	}{
		{name: "empty input", in: hardware.Input{}, wantErr: false},
		{name: "valid input", in: hardware.Input{CPUModel: "i7", CPUSpeedGH: &speed, Cores: &cores, DiskType: "nvme"}, wantErr: false},
		{name: "negative speed", in: hardware.Input{CPUSpeedGH: &negSpeed}, wantErr: true},
		{name: "cpu model too long", in: hardware.Input{CPUModel: strings.Repeat("x", 256)}, wantErr: true},
		{name: "gpu model too long", in: hardware.Input{GPUModel: strings.Repeat("x", 256)}, wantErr: true},
		{name: "disk type too long", in: hardware.Input{DiskType: strings.Repeat("x", 33)}, wantErr: true},
		{name: "unknown disk tag accepted", in: hardware.Input{DiskType: "floppy"}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHardwareInput(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "clean string", input: "hello world", expected: "hello world"},
		{name: "null bytes", input: "hello\x00world", expected: "helloworld"},
		{name: "control characters", input: "hello\x01\x02world", expected: "helloworld"},
		{name: "keeps tabs and newlines", input: "hello\tworld\n", expected: "hello\tworld"},
		{name: "trims whitespace", input: "  hello  ", expected: "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeString(tt.input))
		})
	}
}

func TestValidateOwnerID(t *testing.T) {
	tests := []struct {
		name    string
		owner   string
		wantErr bool
	}{
		{name: "simple", owner: "alice", wantErr: false},
		{name: "with dash and underscore", owner: "team-a_01", wantErr: false},
		{name: "empty", owner: "", wantErr: true},
		{name: "spaces", owner: "alice smith", wantErr: true},
		{name: "path traversal", owner: "../etc", wantErr: true},
		{name: "too long", owner: strings.Repeat("a", 65), wantErr: true},
		{name: "max length", owner: strings.Repeat("a", 64), wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOwnerID(tt.owner)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePageSize(t *testing.T) {
	assert.Equal(t, 20, ValidatePageSize(0))
	assert.Equal(t, 20, ValidatePageSize(-3))
	assert.Equal(t, 50, ValidatePageSize(50))
	assert.Equal(t, 100, ValidatePageSize(100))
	assert.Equal(t, 100, ValidatePageSize(500))
}
