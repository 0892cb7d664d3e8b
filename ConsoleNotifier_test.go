package main

import (
	"bytes"
	"errors"
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

func TestConsoleNotifier_Alert(t *testing.T) {
	out := &bytes.Buffer{}
	mirror := NewMockNoticeMirrorInterface(t)
	mirror.On("Mirror", NoticeAlert, "Grades for student ID 5:\n\nMath: 91\n").Return(nil)

	notifier := &ConsoleNotifier{out: out}
	notifier.AddMirror(mirror)
	notifier.Alert("Grades for student ID 5:\n\nMath: 91\n")

	assert.Equal(t, "[!] Grades for student ID 5:\n    \n    Math: 91\n", out.String())
}

func TestConsoleNotifier_Info(t *testing.T) {
	t.Run("escapes backend text", func(t *testing.T) {
		out := &bytes.Buffer{}
		notifier := &ConsoleNotifier{out: out}

		notifier.Info("Saved \x1b[2J")

		assert.Equal(t, "[i] Saved \\x1b[2J\n", out.String())
	})

	t.Run("mirror failure is reported", func(t *testing.T) {
		out := &bytes.Buffer{}
		mirror := NewMockNoticeMirrorInterface(t)
		mirror.On("Mirror", NoticeInfo, "Student added successfully!").Return(errors.New("telegram: offline"))

		notifier := &ConsoleNotifier{out: out}
		notifier.AddMirror(mirror)
		notifier.Info("Student added successfully!")

		assert.Contains(t, out.String(), "[i] Student added successfully!\n")
		assert.Contains(t, out.String(), "Failed to mirror info notice")
		assert.Contains(t, out.String(), "telegram: offline")
	})
}

func TestConsoleNotifier_Confirm(t *testing.T) {
	testCases := map[string]bool{
		"y\n":     true,
		" YES \n": true,
		"n\n":     false,
		"\n":      false,
		"maybe\n": false,
		"":        false,
	}

	for input, expected := range testCases {
		out := &bytes.Buffer{}
		notifier := &ConsoleNotifier{
			out:   out,
			input: NewConsoleInput(strings.NewReader(input)),
		}

		assert.Equalf(t, expected, notifier.Confirm("Delete?"), "answer %q", input)
		assert.Equal(t, "Delete? [y/N]: ", out.String())
	}

	t.Run("without input", func(t *testing.T) {
		notifier := &ConsoleNotifier{out: &bytes.Buffer{}}

		assert.False(t, notifier.Confirm("Delete?"))
	})
}
