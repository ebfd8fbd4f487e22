package benchmark

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "results.csv")

	store, err := CreateCSVStore(path)
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())

	records := []Record{
		{Size: 8, Align: 16, Alpha: 0, TimeSerial: 0.000125, TimeSIMD: 0.0000625},
		{Size: 4096, Align: 32, Alpha: 90, TimeSerial: 1.5, TimeSIMD: 0.1},
	}
	for _, r := range records {
		require.NoError(t, store.Append(r))
	}
	require.NoError(t, store.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "size,align,alpha,time_serial,time_simd", lines[0])

	table, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, Table(records), table)
}

func TestCSVStore_AppendIsFlushed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	store, err := CreateCSVStore(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Append(Record{Size: 8, Align: 16, TimeSerial: 1, TimeSIMD: 1}))

	// Visible before Close.
	table, err := ReadTable(path)
	require.NoError(t, err)
	assert.Len(t, table, 1)
}

func TestCreateCSVStore_StartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, []byte("size,align,alpha,time_serial,time_simd\n1,2,3,4,5\n"), 0644))

	for i := 0; i < 2; i++ {
		store, err := CreateCSVStore(path)
		require.NoError(t, err)
		require.NoError(t, store.Append(Record{Size: 64, Align: 32, Alpha: 10, TimeSerial: 2, TimeSIMD: 1}))
		require.NoError(t, store.Close())
	}

	table, err := ReadTable(path)
	require.NoError(t, err)
	assert.Equal(t, Table{{Size: 64, Align: 32, Alpha: 10, TimeSerial: 2, TimeSIMD: 1}}, table)
}

func TestParseTable_ColumnOrder(t *testing.T) {
	in := "time_simd,alpha,size,time_serial,align\n0.5,20,128,1.0,16\n"

	table, err := ParseTable(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, Table{{Size: 128, Align: 16, Alpha: 20, TimeSerial: 1.0, TimeSIMD: 0.5}}, table)
}

func TestParseTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"empty", "", "missing header"},
		{"missing column", "size,align,alpha,time_serial\n", `missing column "time_simd"`},
		{"bad int", "size,align,alpha,time_serial,time_simd\nbig,16,0,1,1\n", "line 2: invalid size"},
		{"bad float", "size,align,alpha,time_serial,time_simd\n8,16,0,1,1\n8,16,0,fast,1\n", "line 3: invalid time_serial"},
		{"short row", "size,align,alpha,time_serial,time_simd\n8,16,0\n", "wrong number of fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTable(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadTable_MissingFile(t *testing.T) {
	_, err := ReadTable(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTable_Selectors(t *testing.T) {
	table := Table{
		{Size: 64, Align: 32, Alpha: 10},
		{Size: 8, Align: 16, Alpha: 0},
		{Size: 64, Align: 16, Alpha: 0},
		{Size: 8, Align: 32, Alpha: 10},
	}

	assert.Equal(t, []int{0, 10}, table.Alphas())
	assert.Equal(t, []int{16, 32}, table.Aligns())
	assert.Equal(t, []int{8, 64}, table.Sizes())

	assert.Len(t, table.WithAlpha(10), 2)
	assert.Empty(t, table.WithAlpha(50))
	assert.Len(t, table.WithAlpha(0).WithAlign(16), 2)

	sorted := table.WithAlign(32).SortedBySize()
	assert.Equal(t, 8, sorted[0].Size)
	assert.Equal(t, 64, sorted[1].Size)
	// The receiver is untouched.
	assert.Equal(t, 64, table[0].Size)
}

type memRecorder struct {
	records []Record
	closed  bool
	err     error
}

func (m *memRecorder) Append(rec Record) error {
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *memRecorder) Close() error {
	m.closed = true
	return nil
}

func TestMultiRecorder(t *testing.T) {
	a, b := &memRecorder{}, &memRecorder{}
	multi := MultiRecorder{a, b}

	rec := Record{Size: 8, Align: 16, TimeSerial: 1, TimeSIMD: 0.5}
	require.NoError(t, multi.Append(rec))
	require.NoError(t, multi.Close())

	assert.Equal(t, []Record{rec}, a.records)
	assert.Equal(t, []Record{rec}, b.records)
	assert.True(t, a.closed)
	assert.True(t, b.closed)

	b.err = assert.AnError
	assert.ErrorIs(t, multi.Append(rec), assert.AnError)
}
