// Package observability carries the rewriter's ambient logging and
// tracing, grounded on analyzer.Analyzer: a logrus logger
// with a pushable debug-context stack, plus opentracing spans around the
// top-level entrypoint.
package observability

import (
	"fmt"
	"strings"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
)

// Logger wraps logrus with a debug-context stack the way
// analyzer.Analyzer.Log does: every message is prefixed with the
// slash-joined stack of PushDebugContext calls currently in effect, so a
// nested rule/stage/candidate trio reads as one line instead of three.
type Logger struct {
	entry *logrus.Entry
	Debug bool
	Verbose bool
	ctxPath []string
}

// NewLogger builds a Logger around logrus's standard logger. debug gates
// Log; verbose gates LogPlan.
func NewLogger(debug, verbose bool) *Logger {
	return &Logger{entry: logrus.NewEntry(logrus.StandardLogger()), Debug: debug, Verbose: verbose}
}

// PushDebugContext pushes msg onto the context stack.
func (l *Logger) PushDebugContext(msg string) {
	if l != nil {
		l.ctxPath = append(l.ctxPath, msg)
	}
}

// PopDebugContext pops the most recently pushed context.
func (l *Logger) PopDebugContext() {
	if l != nil && len(l.ctxPath) > 0 {
		l.ctxPath = l.ctxPath[:len(l.ctxPath)-1]
	}
}

// Log writes msg at Info level if Debug is enabled, prefixed with the
// current context path.
func (l *Logger) Log(msg string, args ...interface{}) {
	if l == nil || !l.Debug {
		return
	}
	if len(l.ctxPath) > 0 {
		l.entry.Infof(strings.Join(l.ctxPath, "/")+": "+msg, args...)
		return
	}
	l.entry.Infof(msg, args...)
}

// LogPlan writes a plan's String() at Info level if Verbose is enabled.
func (l *Logger) LogPlan(label string, stringer fmt.Stringer) {
	if l == nil || !l.Verbose || stringer == nil {
		return
	}
	l.entry.Infof("%s:\n%s", label, stringer.String())
}

// StartSpan begins an opentracing span named op, returning it alongside a
// finish func the caller should defer.
func StartSpan(op string, tags opentracing.Tags) (opentracing.Span, func()) {
	span := opentracing.StartSpan(op, tags)
	return span, span.Finish
}
