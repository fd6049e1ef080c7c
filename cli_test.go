package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const wantUsage = `usage:
testlist help
testlist list [source-files...]
testlist header header-file [source-files...]
testlist source source-file [source-files...]
`

type result struct {
	err    error
	stdout string
	stderr string
}

func runTestlist(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(append([]string{"testlist"}, args...), noEnv, strings.NewReader(stdin), &stdout, &stderr)
	return result{err: err, stdout: stdout.String(), stderr: stderr.String()}
}

func wantExitCode(t *testing.T, err error, code int) *exitError {
	t.Helper()
	var exitErr *exitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("run() error = %v, want *exitError", err)
	}
	if exitErr.Code != code {
		t.Fatalf("exit code = %d, want %d", exitErr.Code, code)
	}
	return exitErr
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"no command", nil, ""},
		{"help", []string{"help"}, ""},
		{"help with args", []string{"help", "list"}, ""},
		{"unknown command", []string{"foo"}, "error: unknown command 'foo'\n"},
		{"flag as command", []string{"-h"}, "error: unknown command '-h'\n"},
		{"header without output", []string{"header"}, "error: output filename missing\n"},
		{"source without output", []string{"source"}, "error: output filename missing\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runTestlist(t, "", tt.args...)
			exitErr := wantExitCode(t, res.err, 1)
			if exitErr.Err != nil {
				t.Errorf("exitError.Err = %v, want nil", exitErr.Err)
			}
			if diff := cmp.Diff(tt.message+wantUsage, res.stderr); diff != "" {
				t.Errorf("stderr mismatch (-want +got):\n%s", diff)
			}
			if res.stdout != "" {
				t.Errorf("stdout = %q, want empty", res.stdout)
			}
		})
	}
}

func TestUnknownCommandQuoting(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"foo", `'foo'`},
		{"it's", `"it's"`},
		{`say "hi"`, `'say "hi"'`},
		{`it's "x"`, `'it\'s "x"'`},
		{`a\b`, `'a\\b'`},
		{"tab\there\n", `'tab\there\n'`},
		{"\x1b[0m\x7f", `'\x1b[0m\x7f'`},
		{"héllo", `'héllo'`},
		{"nb\u00a0sp", `'nb\xa0sp'`},
		{"zw\u200bsp", `'zw\u200bsp'`},
		{"bad\xffbyte", `'bad\udcffbyte'`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runTestlist(t, "", tt.name)
			wantExitCode(t, res.err, 1)
			want := "error: unknown command " + tt.want + "\n" + wantUsage
			if diff := cmp.Diff(want, res.stderr); diff != "" {
				t.Errorf("stderr mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMissingOutputCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	res := runTestlist(t, "Test(A)\n", "source")
	wantExitCode(t, res.err, 1)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("directory has %d entries after a usage error, want 0", len(entries))
	}
}

func TestListFromStdin(t *testing.T) {
	res := runTestlist(t, "Test(Beta)\nallcallsCase(Alpha, 1)\n", "list")
	if res.err != nil {
		t.Fatalf("run() error = %v", res.err)
	}
	want := "TestBeta\nTestCallBeforeInitIsProgrammerError_Alpha\nTestCallOnWrongThreadIsProgrammerError_Alpha\n"
	if diff := cmp.Diff(want, res.stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
	if res.stderr != "" {
		t.Errorf("stderr = %q, want empty", res.stderr)
	}
}

func TestListCRLFFile(t *testing.T) {
	in := filepath.Join(t.TempDir(), "crlf.c")
	writeFile(t, in, "Test(Alpha)\r\nTestNoInit(Beta)\r\nTest(Old)\rTest(Mac)\r")

	res := runTestlist(t, "", "list", in)
	if res.err != nil {
		t.Fatalf("run() error = %v", res.err)
	}
	if diff := cmp.Diff("TestAlpha\nTestBeta\nTestMac\nTestOld\n", res.stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
}

func TestDashReadsStdin(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.c")
	writeFile(t, in, "Test(FromFile)\n")
	out := filepath.Join(dir, "out.h")

	res := runTestlist(t, "TestNoInit(FromStdin)\n", "header", out, in, "-")
	if res.err != nil {
		t.Fatalf("run() error = %v", res.err)
	}

	want := "extern void testingprivScaffoldName(TestFromFile)(void);\n" +
		"extern void testingprivScaffoldName(TestFromStdin)(void);\n"
	if got := readFile(t, out); !strings.HasSuffix(got, want) {
		t.Errorf("header does not end with %q:\n%s", want, got)
	}
}

func TestListMatchesSource(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.c")
	writeFile(t, in, "Test(C)\nallcallsCase(B,0)\nTestNoInit(A)\n")
	out := filepath.Join(dir, "out.c")

	list := runTestlist(t, "", "list", in)
	if list.err != nil {
		t.Fatalf("list: run() error = %v", list.err)
	}
	src := runTestlist(t, "", "source", out, in)
	if src.err != nil {
		t.Fatalf("source: run() error = %v", src.err)
	}

	data := readFile(t, out)
	var fromSource []string
	for _, line := range strings.Split(data, "\n") {
		if name, ok := strings.CutPrefix(line, "\t{ \""); ok {
			fromSource = append(fromSource, name[:strings.Index(name, "\"")])
		}
	}
	if diff := cmp.Diff(strings.Fields(list.stdout), fromSource); diff != "" {
		t.Errorf("source entries differ from list (-list +source):\n%s", diff)
	}
	if !strings.Contains(data, "const size_t testingprivNumCases = 4;\n") {
		t.Errorf("source has the wrong case count:\n%s", data)
	}
}

func TestUnreadableInputLeavesNoOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.c")

	res := runTestlist(t, "", "source", out, filepath.Join(dir, "missing.c"))
	exitErr := wantExitCode(t, res.err, 1)
	if !errors.Is(exitErr.Err, os.ErrNotExist) {
		t.Errorf("exitError.Err = %v, want %v", exitErr.Err, os.ErrNotExist)
	}
	if strings.Contains(res.stderr, "usage:") {
		t.Errorf("stderr has usage for an I/O error:\n%s", res.stderr)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("output file exists after an input error: %v", err)
	}
}

func TestUnwritableOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "no-such-dir", "out.h")

	res := runTestlist(t, "Test(A)\n", "header", out)
	exitErr := wantExitCode(t, res.err, 1)
	if !errors.Is(exitErr.Err, os.ErrNotExist) {
		t.Errorf("exitError.Err = %v, want %v", exitErr.Err, os.ErrNotExist)
	}
}

func TestOutputIsOverwritten(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.c")
	writeFile(t, out, strings.Repeat("stale\n", 100))

	res := runTestlist(t, "", "source", out)
	if res.err != nil {
		t.Fatalf("run() error = %v", res.err)
	}

	got := readFile(t, out)
	if strings.Contains(got, "stale") {
		t.Errorf("output still holds old content:\n%s", got)
	}
	if !strings.HasSuffix(got, "const size_t testingprivNumCases = 0;\n") {
		t.Errorf("output has the wrong footer:\n%s", got)
	}
}
