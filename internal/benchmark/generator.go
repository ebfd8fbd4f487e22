package benchmark

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// Generator writes a test input for p to the file at out.
type Generator interface {
	Generate(ctx context.Context, p Params, out string) error
}

// ExecGenerator shells out to the external string generator.
type ExecGenerator struct {
	Path string
}

func NewExecGenerator(path string) *ExecGenerator {
	return &ExecGenerator{Path: path}
}

func (g *ExecGenerator) Generate(ctx context.Context, p Params, out string) error {
	cmd := execCommand(ctx, g.Path,
		"--size", strconv.Itoa(p.Size),
		"--align", strconv.Itoa(p.Align),
		"--alpha", strconv.Itoa(p.Alpha),
		"--out", out)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("generator %s failed: %w: %s", g.Path, err, msg)
		}
		return fmt.Errorf("generator %s failed: %w", g.Path, err)
	}
	return nil
}

// Input is a generated test file owned by the caller until Release.
type Input struct {
	Path   string
	Params Params
}

// AcquireInput creates a fresh file in dir (the system temp dir when empty)
// and has gen fill it for p. On failure nothing is left on disk.
func AcquireInput(ctx context.Context, gen Generator, dir string, p Params) (*Input, error) {
	f, err := os.CreateTemp(dir, "casebench-*.bin")
	if err != nil {
		return nil, fmt.Errorf("failed to create input file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to create input file: %w", err)
	}

	if err := gen.Generate(ctx, p, path); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("generate input for %s: %w", p, err)
	}
	return &Input{Path: path, Params: p}, nil
}

// Release removes the input file. Releasing twice is harmless.
func (in *Input) Release() error {
	if err := os.Remove(in.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove input %s: %w", in.Path, err)
	}
	return nil
}
