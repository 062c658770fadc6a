package hardware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }
func n(v int) *int         { return &v }

func TestInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		wantErr string
	}{
		{name: "empty input is valid", in: Input{}},
		{
			name: "full valid input",
			in:   Input{CPUModel: "i5", CPUSpeedGH: f(3.5), Cores: n(6), RAMGB: f(16), DiskType: "ssd", GPUVRAMGB: f(4)},
		},
		{name: "explicit zero speed", in: Input{CPUSpeedGH: f(0)}},
		{name: "explicit zero vram", in: Input{GPUVRAMGB: f(0)}},
		{name: "negative speed", in: Input{CPUSpeedGH: f(-1)}, wantErr: "cpu_speed_ghz"},
		{name: "zero cores", in: Input{Cores: n(0)}, wantErr: "cores"},
		{name: "negative cores", in: Input{Cores: n(-2)}, wantErr: "cores"},
		{name: "negative ram", in: Input{RAMGB: f(-0.5)}, wantErr: "ram_gb"},
		{name: "negative vram", in: Input{GPUVRAMGB: f(-4)}, wantErr: "gpu_vram_gb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInputNormalizeBaselines(t *testing.T) {
	d := Input{}.Normalize()

	assert.Equal(t, 1.0, d.CPUSpeedGH)
	assert.Equal(t, 1, d.Cores)
	assert.Equal(t, 1.0, d.RAMGB)
	assert.Equal(t, 1.0, d.GPUVRAMGB)
	assert.Equal(t, "", d.DiskType)
}

func TestInputNormalizeKeepsExplicitZero(t *testing.T) {
	// an explicit zero must not be mistaken for an absent field
	d := Input{GPUVRAMGB: f(0)}.Normalize()
	assert.Equal(t, 0.0, d.GPUVRAMGB)

	d = Input{CPUSpeedGH: f(0), RAMGB: f(0)}.Normalize()
	assert.Equal(t, 0.0, d.CPUSpeedGH)
	assert.Equal(t, 0.0, d.RAMGB)
}

func TestInputNormalizeTrimsAndLowercases(t *testing.T) {
	d := Input{
		CPUModel: "  Ryzen 5 5600  ",
		GPUModel: " RTX 3060 ",
		DiskType: "  NVMe ",
	}.Normalize()

	assert.Equal(t, "Ryzen 5 5600", d.CPUModel)
	assert.Equal(t, "RTX 3060", d.GPUModel)
	assert.Equal(t, DiskNVMe, d.DiskType)
}

func TestNormalizeDiskType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"NVMe", "nvme"},
		{" SSD ", "ssd"},
		{"hdd", "hdd"},
		{"", ""},
		{"SATA SSD", "sata ssd"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeDiskType(tt.in))
	}
}
