package logger

import (
	"fmt"
	"strings"
	"sync"
)

// Entry is a single message captured by a Recorder.
type Entry struct {
	Level   string
	Message string
}

// Recorder is a Logger that keeps every message in memory.
type Recorder struct {
	lock    sync.Mutex
	entries []Entry
}

var _ Logger = (*Recorder)(nil)

func (r *Recorder) record(level string, message string) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: message})
}

// Entries returns the captured messages, optionally filtered to the given level.
func (r *Recorder) Entries(level ...string) []Entry {
	r.lock.Lock()
	defer r.lock.Unlock()
	var out []Entry
	for _, e := range r.entries {
		if len(level) == 0 || e.Level == level[0] {
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether a message at the given level contains the substring.
func (r *Recorder) Contains(level, substr string) bool {
	for _, e := range r.Entries(level) {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func (r *Recorder) Errorf(format string, args ...interface{}) {
	r.record("error", fmt.Sprintf(format, args...))
}

func (r *Recorder) Error(args ...interface{}) {
	r.record("error", fmt.Sprint(args...))
}

func (r *Recorder) Warnf(format string, args ...interface{}) {
	r.record("warn", fmt.Sprintf(format, args...))
}

func (r *Recorder) Warn(args ...interface{}) {
	r.record("warn", fmt.Sprint(args...))
}

func (r *Recorder) Infof(format string, args ...interface{}) {
	r.record("info", fmt.Sprintf(format, args...))
}

func (r *Recorder) Info(args ...interface{}) {
	r.record("info", fmt.Sprint(args...))
}

func (r *Recorder) Debugf(format string, args ...interface{}) {
	r.record("debug", fmt.Sprintf(format, args...))
}

func (r *Recorder) Debug(args ...interface{}) {
	r.record("debug", fmt.Sprint(args...))
}
