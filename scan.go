package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"regexp"
	"slices"

	"golang.org/x/term"
)

// stdinName is the input filename that selects standard input.
const stdinName = "-"

var (
	testRE     = regexp.MustCompile(`^(?:Test|TestNoInit)\(([A-Za-z0-9_]+)\)$`)
	allcallsRE = regexp.MustCompile(`^allcallsCase\(([A-Za-z0-9_]+),`)
)

// allcallsPrefixes are prepended to the name captured from an allcallsCase line.
var allcallsPrefixes = []string{
	"CallBeforeInitIsProgrammerError_",
	"CallOnWrongThreadIsProgrammerError_",
}

// scanner reads case declarations from a list of input files.
type scanner struct {
	stdin  io.Reader
	logger *slog.Logger

	// isTerminal reports whether stdin is interactive; nil uses term.IsTerminal.
	isTerminal func(*os.File) bool
}

// input is one opened source of lines.
type input struct {
	r     io.Reader
	split bufio.SplitFunc
	close func()
}

// lines yields every line of files in order, each file fully before the next.
// No files means standard input. Named files end lines at "\r\n", "\r" or
// "\n"; standard input ends them at "\n" only and keeps any "\r". An open
// or read error is yielded once and ends the sequence.
func (s *scanner) lines(files []string) iter.Seq2[string, error] {
	if len(files) == 0 {
		files = []string{stdinName}
	}
	return func(yield func(string, error) bool) {
		for _, name := range files {
			in, err := s.open(name)
			if err != nil {
				yield("", err)
				return
			}
			ok := s.readLines(name, in, yield)
			in.close()
			if !ok {
				return
			}
		}
	}
}

func (s *scanner) open(name string) (*input, error) {
	if name == stdinName {
		if f, ok := s.stdin.(*os.File); ok && s.interactive(f) {
			s.logger.Warn("reading case declarations from a terminal; end input with EOF")
		}
		return &input{r: s.stdin, split: splitNewline, close: func() {}}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return &input{r: f, split: splitUniversal, close: func() { f.Close() }}, nil
}

func (s *scanner) interactive(f *os.File) bool {
	if s.isTerminal != nil {
		return s.isTerminal(f)
	}
	return term.IsTerminal(int(f.Fd()))
}

// readLines reports whether iteration should continue.
func (s *scanner) readLines(name string, in *input, yield func(string, error) bool) bool {
	s.logger.Debug("scanning input", "file", name)
	sc := bufio.NewScanner(in.r)
	sc.Buffer(make([]byte, 64*1024), 10*1024*1024) // 10MB max line
	sc.Split(in.split)
	for sc.Scan() {
		if !yield(sc.Text(), nil) {
			return false
		}
	}
	if err := sc.Err(); err != nil {
		yield("", fmt.Errorf("reading %s: %w", name, err))
		return false
	}
	return true
}

// splitNewline is bufio.ScanLines without the carriage return handling.
func splitNewline(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// splitUniversal ends a line at "\r\n", a lone "\r" or "\n".
func splitUniversal(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		// A "\r" at the end of the buffer may be the first half of "\r\n".
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// matchLine returns the case names declared by a single line. Both patterns
// are checked on every line.
func matchLine(line string) []string {
	var names []string
	if m := testRE.FindStringSubmatch(line); m != nil {
		names = append(names, m[1])
	}
	if m := allcallsRE.FindStringSubmatch(line); m != nil {
		for _, prefix := range allcallsPrefixes {
			names = append(names, prefix+m[1])
		}
	}
	return names
}

// collect scans files and returns the sorted case names found in them.
// Duplicates are kept.
func (s *scanner) collect(files []string) ([]string, error) {
	var names []string
	for line, err := range s.lines(files) {
		if err != nil {
			return nil, err
		}
		names = append(names, matchLine(line)...)
	}
	slices.Sort(names)
	s.logger.Debug("collected cases", "count", len(names))
	return names, nil
}
