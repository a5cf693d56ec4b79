package main

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Logger is a small leveled wrapper around an io.Writer, modeled on
// qq-farm-bot/internal/bot/logger.go's Logger — the only pack repo that
// bothers to wrap log output at all. Unlike that bot logger this one has
// no subscriber fan-out; spectator.go owns broadcasting world snapshots
// separately. The simulation core never logs — only session.go and cli.go
// hold a *Logger; systems never call fmt.Println directly.
type Logger struct {
	out io.Writer
	tag string
}

// NewLogger writes to w, tagging every line with tag (e.g. "session").
func NewLogger(w io.Writer, tag string) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{out: w, tag: tag}
}

func (l *Logger) emit(level, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(l.out, "[%s] [%s] [%s] %s\n", time.Now().Format("15:04:05"), l.tag, level, msg)
}

func (l *Logger) Infof(format string, args ...any) {
	l.emit("info", format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.emit("warn", format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.emit("error", format, args...)
}
