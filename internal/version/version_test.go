package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildID(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{name: "epoch date", date: "2026-01-01", expected: 0},
		{name: "next day after epoch", date: "2026-01-02", expected: 1},
		{name: "one year later", date: "2027-01-01", expected: 365},
		{name: "leap year included", date: "2029-01-01", expected: 1096},
		{name: "invalid format", date: "invalid", wantError: true},
		{name: "empty date", date: "", wantError: true},
		{name: "before epoch", date: "2025-12-31", wantError: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := buildID(tt.date)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestInfo_Unset(t *testing.T) {
	old := BuildDate
	defer func() { BuildDate = old }()
	BuildDate = ""

	info := Info()
	assert.False(t, info.Calculated)
	assert.NotEmpty(t, info.Error)
	assert.Contains(t, String(), "unknown")
	assert.Equal(t, "local", info.Fields()["ci"])
}
