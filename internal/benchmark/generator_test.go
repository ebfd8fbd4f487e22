package benchmark

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecGenerator_Arguments(t *testing.T) {
	fake := useFakeExec(t)
	out := t.TempDir() + "/in.bin"

	err := NewExecGenerator("gen").Generate(context.Background(), Params{Size: 512, Align: 32, Alpha: 70}, out)
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		{"gen", "--size", "512", "--align", "32", "--alpha", "70", "--out", out},
	}, fake.Calls())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "512", string(data))
}

func TestExecGenerator_Failure(t *testing.T) {
	useFakeExec(t)

	err := NewExecGenerator("gen-fail").Generate(context.Background(), Params{Size: 8, Align: 16}, t.TempDir()+"/x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generator gen-fail failed")
	assert.Contains(t, err.Error(), "cannot allocate buffer")
}

func TestAcquireInput(t *testing.T) {
	useFakeExec(t)
	dir := t.TempDir()
	p := Params{Size: 64, Align: 16, Alpha: 10}

	in, err := AcquireInput(context.Background(), NewExecGenerator("gen"), dir, p)
	require.NoError(t, err)
	assert.Equal(t, p, in.Params)
	assert.FileExists(t, in.Path)

	require.NoError(t, in.Release())
	assert.NoFileExists(t, in.Path)
	assert.NoError(t, in.Release(), "second release is a no-op")
}

func TestAcquireInput_FailureLeavesNothing(t *testing.T) {
	useFakeExec(t)
	dir := t.TempDir()

	_, err := AcquireInput(context.Background(), NewExecGenerator("gen-fail"), dir, Params{Size: 8, Align: 16})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate input for size=8 align=16 alpha=0")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAcquireInput_DistinctFiles(t *testing.T) {
	useFakeExec(t)
	dir := t.TempDir()
	gen := NewExecGenerator("gen")

	a, err := AcquireInput(context.Background(), gen, dir, Params{Size: 8, Align: 16})
	require.NoError(t, err)
	defer a.Release()
	b, err := AcquireInput(context.Background(), gen, dir, Params{Size: 8, Align: 16})
	require.NoError(t, err)
	defer b.Release()

	assert.NotEqual(t, a.Path, b.Path)
}
