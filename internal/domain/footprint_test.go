package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFootprintValue(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr string
	}{
		{raw: "150", want: 150},
		{raw: " 12.5 ", want: 12.5},
		{raw: "0", want: 0},
		{raw: "1e3", want: 1000},
		{raw: "", wantErr: "is required"},
		{raw: "abc", wantErr: "must be a number"},
		{raw: "12kg", wantErr: "must be a number"},
		{raw: "NaN", wantErr: "must be finite"},
		{raw: "Inf", wantErr: "must be finite"},
		{raw: "1e400", wantErr: "must be finite"},
		{raw: "-3", wantErr: "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseFootprintValue(tt.raw)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}
			var ive *InvalidValueError
			require.ErrorAs(t, err, &ive)
			assert.Equal(t, tt.raw, ive.Value)
			assert.Equal(t, tt.wantErr, ive.Reason)
		})
	}
}

func TestCheckFootprintValue(t *testing.T) {
	assert.NoError(t, CheckFootprintValue(42))
	assert.Error(t, CheckFootprintValue(math.NaN()))
	assert.Error(t, CheckFootprintValue(math.Inf(-1)))
	assert.Error(t, CheckFootprintValue(-0.5))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, Average(nil))
	assert.Equal(t, 0.0, Average([]FootprintEntry{}))

	entries := []FootprintEntry{}
	for _, v := range []float64{20, 203, 7, 67, 60, 10} {
		entries = append(entries, FootprintEntry{Value: v})
	}
	assert.InDelta(t, 367.0/6.0, Average(entries), 1e-9)
}

func TestNotFoundErrorIs(t *testing.T) {
	err := error(&NotFoundError{Entity: "user", ID: "42"})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "user 42 not found", err.Error())
}
