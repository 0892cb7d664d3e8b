package main

import (
	"fmt"
	"io"
	"time"
)

type DebugLogger struct {
	out     io.Writer
	enabled bool
}

func (logger *DebugLogger) Log(format string, args ...any) {
	if logger == nil || !logger.enabled {
		return
	}

	_, _ = fmt.Fprintf(logger.out, time.Now().Format(time.DateTime)+" [debug] "+format+"\n", args...)
}
