package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"unicode"
)

var errUnterminatedQuote = errors.New("unterminated quote")

var errInvalidRowId = errors.New("invalid id")

type ConsoleInputInterface interface {
	ReadLine() (string, bool)
}

type ConsoleInput struct {
	reader io.Reader
	lines  chan string
	once   sync.Once
}

func NewConsoleInput(reader io.Reader) *ConsoleInput {
	return &ConsoleInput{
		reader: reader,
		lines:  make(chan string),
	}
}

func (input *ConsoleInput) Lines() <-chan string {
	input.once.Do(func() {
		go input.scan()
	})

	return input.lines
}

func (input *ConsoleInput) ReadLine() (string, bool) {
	line, ok := <-input.Lines()
	return line, ok
}

func (input *ConsoleInput) scan() {
	scanner := bufio.NewScanner(input.reader)
	for scanner.Scan() {
		input.lines <- scanner.Text()
	}
	close(input.lines)
}

// escapeTerminal neutralizes control characters in text coming from the backend,
// so names and usernames cannot move the cursor, recolor or rewrite the screen.
func escapeTerminal(text string) string {
	var builder strings.Builder
	builder.Grow(len(text))

	for _, char := range text {
		switch {
		case char == '\n' || char == '\r' || char == '\t':
			builder.WriteByte(' ')
		case char == unicode.ReplacementChar:
			builder.WriteRune(char)
		case unicode.IsControl(char) || isBidiControl(char):
			builder.WriteString(strings.Trim(strconv.QuoteRuneToASCII(char), "'"))
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}

func isBidiControl(char rune) bool {
	return (char >= '\u202a' && char <= '\u202e') || (char >= '\u2066' && char <= '\u2069')
}

// splitCommandLine splits on spaces, keeping double-quoted arguments (including empty ones) whole.
func splitCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	inQuotes := false
	hasArg := false

	for _, char := range line {
		switch {
		case char == '"':
			inQuotes = !inQuotes
			hasArg = true
		case unicode.IsSpace(char) && !inQuotes:
			if hasArg {
				args = append(args, current.String())
				current.Reset()
				hasArg = false
			}
		default:
			current.WriteRune(char)
			hasArg = true
		}
	}

	if inQuotes {
		return nil, fmt.Errorf("%w in %q", errUnterminatedQuote, line)
	}
	if hasArg {
		args = append(args, current.String())
	}

	return args, nil
}

func parseRowId(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w %q", errInvalidRowId, arg)
	}

	return id, nil
}
