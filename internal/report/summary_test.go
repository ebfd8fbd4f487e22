package report

import (
	"bytes"
	"testing"

	"casebench/internal/benchmark"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	table := benchmark.Table{
		{Size: 8, Align: 16, Alpha: 0, TimeSerial: 2, TimeSIMD: 1},  // 2x
		{Size: 64, Align: 16, Alpha: 0, TimeSerial: 8, TimeSIMD: 1}, // 8x
		{Size: 8, Align: 32, Alpha: 0, TimeSerial: 1, TimeSIMD: 1},  // 1x
		{Size: 8, Align: 16, Alpha: 10, TimeSerial: 3, TimeSIMD: 1}, // 3x
	}

	got := Summarize(table)
	require.Len(t, got, 3)

	assert.Equal(t, 0, got[0].Alpha)
	assert.Equal(t, 16, got[0].Align)
	assert.Equal(t, 2, got[0].Points)
	assert.InDelta(t, 4.0, got[0].GeoMeanSpeedup, 1e-9)
	assert.InDelta(t, 8.0, got[0].BestSpeedup, 1e-9)
	assert.Equal(t, 64, got[0].BestSize)

	assert.Equal(t, 32, got[1].Align)
	assert.InDelta(t, 1.0, got[1].GeoMeanSpeedup, 1e-9)

	assert.Equal(t, 10, got[2].Alpha)
	assert.InDelta(t, 3.0, got[2].GeoMeanSpeedup, 1e-9)
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSummary(&buf, []AlignSummary{
		{Alpha: 30, Align: 16, Points: 25, GeoMeanSpeedup: 4.5, BestSpeedup: 12.25, BestSize: 4096},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "GEOMEAN SPEEDUP")
	assert.Contains(t, out, "30%")
	assert.Contains(t, out, "4.50x")
	assert.Contains(t, out, "12.25x")
	assert.Contains(t, out, "4096")
}
