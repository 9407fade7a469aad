package animreview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDurationToken(t *testing.T) {
	tests := []struct {
		tok     string
		want    float64
		wantErr bool
	}{
		{"5s", 5, false},
		{"1.5s", 1.5, false},
		{"90s", 90, false},
		{"5", 5, false},
		{"0.25", 0.25, false},
		{"1500ms", 1.5, false},
		{"250ms", 0.25, false},
		{"1:30", 90, false},
		{"0:05", 5, false},
		{"1:02:03", 3723, false},
		{"0:01:30.5", 90.5, false},
		{"abc", 0, true},
		{"", 0, true},
		{"-5s", 0, true},
		{"1:90", 0, true},
		{"1:2:3:4", 0, true},
		{"5m", 0, true},
		{"1.5:30", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			got, err := parseDurationToken(tt.tok)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestResolveTimeRange_Full(t *testing.T) {
	r, err := ResolveTimeRange("", "", 10)
	require.NoError(t, err)
	assert.True(t, r.IsFull())
	assert.Equal(t, "full", r.String())
}

func TestResolveTimeRange_BothBounds(t *testing.T) {
	r, err := ResolveTimeRange("2s", "5s", 10)
	require.NoError(t, err)
	require.NotNil(t, r.Start)
	require.NotNil(t, r.End)
	assert.Equal(t, 2.0, *r.Start)
	assert.Equal(t, 5.0, *r.End)
}

func TestResolveTimeRange_Idempotent(t *testing.T) {
	a, err := ResolveTimeRange("1:05", "1500ms", 0)
	assert.Error(t, err) // 1.5s end before 65s start

	a, err = ResolveTimeRange("1500ms", "1:05", 0)
	require.NoError(t, err)
	b, err := ResolveTimeRange("1500ms", "1:05", 0)
	require.NoError(t, err)
	assert.Equal(t, *a.Start, *b.Start)
	assert.Equal(t, *a.End, *b.End)
}

func TestResolveTimeRange_SingleBound(t *testing.T) {
	// Known duration: the missing bound defaults to the opposite extreme.
	r, err := ResolveTimeRange("2s", "", 10)
	require.NoError(t, err)
	require.NotNil(t, r.End)
	assert.Equal(t, 10.0, *r.End)

	r, err = ResolveTimeRange("", "5s", 10)
	require.NoError(t, err)
	require.NotNil(t, r.Start)
	assert.Equal(t, 0.0, *r.Start)

	// Unknown duration: the end stays open for server-side resolution.
	r, err = ResolveTimeRange("2s", "", 0)
	require.NoError(t, err)
	assert.Nil(t, r.End)
	require.NotNil(t, r.Start)
	assert.Equal(t, 2.0, *r.Start)
	assert.False(t, r.IsFull())
}

func TestResolveTimeRange_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		duration   float64
	}{
		{"end before start", "5s", "2s", 0},
		{"end equals start", "2s", "2s", 0},
		{"unparseable start", "abc", "5s", 0},
		{"unparseable end", "2s", "xyz", 0},
		{"start beyond duration", "12s", "", 10},
		{"end beyond duration", "2s", "11s", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveTimeRange(tt.start, tt.end, tt.duration)
			assert.ErrorIs(t, err, ErrInvalidRange)
		})
	}
}
