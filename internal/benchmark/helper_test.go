package benchmark

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"testing"
)

// TestHelperProcess stands in for the generator and the converters.
// The program name picks the behaviour:
//
//	gen          writes the size into the --out file
//	gen-fail     exits 1
//	conv         prints a timing line with $HELPER_TIME (default 1.0)
//	conv-fail    exits 1
//	conv-nosize  exits 1 when the input file holds $HELPER_FAIL_SIZE
//	conv-silent  prints output without a timing line
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "no command")
		os.Exit(2)
	}
	name, rest := args[1], args[2:]
	flags := make(map[string]string)
	for i := 0; i+1 < len(rest); i += 2 {
		flags[rest[i]] = rest[i+1]
	}

	elapsed := os.Getenv("HELPER_TIME")
	if elapsed == "" {
		elapsed = "1.0"
	}

	switch name {
	case "gen":
		if err := os.WriteFile(flags["--out"], []byte(flags["--size"]), 0644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "gen-fail":
		fmt.Fprintln(os.Stderr, "cannot allocate buffer")
		os.Exit(1)
	case "conv":
		fmt.Println("Modo: upper")
		fmt.Printf("Tiempo de ejecucion: %s s\n", elapsed)
	case "conv-fail":
		fmt.Fprintln(os.Stderr, "segmentation fault")
		os.Exit(1)
	case "conv-nosize":
		data, _ := os.ReadFile(flags["-i"])
		if strings.TrimSpace(string(data)) == os.Getenv("HELPER_FAIL_SIZE") {
			os.Exit(1)
		}
		fmt.Printf("Tiempo: %s\n", elapsed)
	case "conv-silent":
		fmt.Println("converted 128 bytes")
	default:
		fmt.Fprintf(os.Stderr, "unknown helper %q\n", name)
		os.Exit(2)
	}
}

// fakeExec routes execCommand to TestHelperProcess and records every call.
type fakeExec struct {
	mu    sync.Mutex
	env   []string
	calls [][]string
}

func useFakeExec(t *testing.T, env ...string) *fakeExec {
	t.Helper()
	f := &fakeExec{env: env}

	orig := execCommand
	t.Cleanup(func() { execCommand = orig })

	execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		f.mu.Lock()
		f.calls = append(f.calls, append([]string{name}, args...))
		f.mu.Unlock()

		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1")
		cmd.Env = append(cmd.Env, f.env...)
		return cmd
	}
	return f
}

func (f *fakeExec) Calls() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.calls...)
}

func (f *fakeExec) CallsTo(name string) int {
	n := 0
	for _, c := range f.Calls() {
		if c[0] == name {
			n++
		}
	}
	return n
}
