package main

import (
	"fmt"
	"io"
	"strings"
)

const alertPrefix = "[!] "

const infoPrefix = "[i] "

type ConsoleNotifier struct {
	out     io.Writer
	input   ConsoleInputInterface
	mirrors []NoticeMirrorInterface
}

func (notifier *ConsoleNotifier) Alert(message string) {
	notifier.print(alertPrefix, message)
	notifier.mirror(NoticeAlert, message)
}

func (notifier *ConsoleNotifier) Info(message string) {
	notifier.print(infoPrefix, message)
	notifier.mirror(NoticeInfo, message)
}

func (notifier *ConsoleNotifier) Confirm(question string) bool {
	if notifier.input == nil {
		return false
	}

	_, _ = fmt.Fprintf(notifier.out, "%s [y/N]: ", escapeTerminal(question))
	answer, ok := notifier.input.ReadLine()
	if !ok {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))

	return answer == "y" || answer == "yes"
}

// print keeps the line structure of multi-line notices, every line is escaped on its own.
func (notifier *ConsoleNotifier) print(prefix string, message string) {
	lines := strings.Split(strings.TrimRight(message, "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			prefix = strings.Repeat(" ", len(prefix))
		}
		_, _ = fmt.Fprintln(notifier.out, prefix+escapeTerminal(line))
	}
}

func (notifier *ConsoleNotifier) AddMirror(mirror NoticeMirrorInterface) {
	notifier.mirrors = append(notifier.mirrors, mirror)
}

func (notifier *ConsoleNotifier) mirror(kind NoticeKind, message string) {
	for _, mirror := range notifier.mirrors {
		if err := mirror.Mirror(kind, message); err != nil {
			_, _ = fmt.Fprintf(notifier.out, "Failed to mirror %s notice with %T: %v\n", kind, mirror, err)
		}
	}
}
