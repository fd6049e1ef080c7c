package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// errUsage asks for the usage text without an accompanying message.
	errUsage = errors.New("usage requested")

	errMissingOutput = errors.New("output filename missing")
)

// UnknownCommandError is returned when the first argument names no command.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return "unknown command " + quoteName(e.Name)
}

// quoteName quotes s the way Python's repr() quotes a str: single quotes
// unless s contains a single quote and no double quote. Bytes that are not
// valid UTF-8 print as the surrogate escapes Python decodes them to.
func quoteName(s string) string {
	q := byte('\'')
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		q = '"'
	}
	var b strings.Builder
	b.WriteByte(q)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			fmt.Fprintf(&b, "\\udc%02x", s[i])
		case r == rune(q) || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < ' ' || r == 0x7f:
			fmt.Fprintf(&b, "\\x%02x", r)
		case r < utf8.RuneSelf || unicode.IsPrint(r):
			b.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&b, "\\x%02x", r)
		case r <= 0xffff:
			fmt.Fprintf(&b, "\\u%04x", r)
		default:
			fmt.Fprintf(&b, "\\U%08x", r)
		}
		i += size
	}
	b.WriteByte(q)
	return b.String()
}

// command is one of the generator's subcommands.
type command interface {
	Name() string
	// Usage is the argument synopsis shown after the program name.
	Usage() string
	// processArgs consumes the command's own leading arguments and returns
	// the input filenames.
	processArgs(args []string) ([]string, error)
	run(cases []string) error
}

// listCommand prints every case name to standard output.
type listCommand struct {
	out io.Writer
	gen *generator
}

func (c *listCommand) Name() string  { return "list" }
func (c *listCommand) Usage() string { return "list [source-files...]" }

func (c *listCommand) processArgs(args []string) ([]string, error) {
	return args, nil
}

func (c *listCommand) run(cases []string) error {
	return c.gen.render(c.out, listTemplate, cases)
}

// fileCommand writes a template into the output file named by its first argument.
type fileCommand struct {
	name     string
	synopsis string
	template string
	gen      *generator

	filename string
}

func (c *fileCommand) Name() string  { return c.name }
func (c *fileCommand) Usage() string { return c.name + " " + c.synopsis }

func (c *fileCommand) processArgs(args []string) ([]string, error) {
	if len(args) < 1 {
		return nil, errMissingOutput
	}
	c.filename = args[0]
	return args[1:], nil
}

func (c *fileCommand) run(cases []string) error {
	return c.gen.renderFile(c.filename, c.template, cases)
}

func newHeaderCommand(gen *generator) *fileCommand {
	return &fileCommand{
		name:     "header",
		synopsis: "header-file [source-files...]",
		template: headerTemplate,
		gen:      gen,
	}
}

func newSourceCommand(gen *generator) *fileCommand {
	return &fileCommand{
		name:     "source",
		synopsis: "source-file [source-files...]",
		template: sourceTemplate,
		gen:      gen,
	}
}

// newCommands returns the command table in usage order.
func newCommands(out io.Writer, gen *generator) []command {
	return []command{
		&listCommand{out: out, gen: gen},
		newHeaderCommand(gen),
		newSourceCommand(gen),
	}
}

// lookupCommand returns the command named name, or nil.
func lookupCommand(commands []command, name string) command {
	for _, c := range commands {
		if c.Name() == name {
			return c
		}
	}
	return nil
}
