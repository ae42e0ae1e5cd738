package logging

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// Entry is one captured log record, flattened for display.
type Entry struct {
	Time    time.Time
	Level   zapcore.Level
	Message string
	Fields  string
}

// Ring is a zapcore.Core that keeps the most recent log entries in a fixed
// circular buffer. The UI renders its contents as the activity overlay, so
// users can see what the app reported without leaving the terminal.
type Ring struct {
	mu      sync.Mutex
	level   zapcore.Level
	entries []Entry
	next    int
	full    bool
	with    []zapcore.Field
}

// Ensure Ring satisfies zapcore.Core at compile time.
var _ zapcore.Core = (*Ring)(nil)

// NewRing returns a ring that keeps up to capacity entries at or above level.
func NewRing(capacity int, level zapcore.Level) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{
		level:   level,
		entries: make([]Entry, capacity),
	}
}

// Enabled implements zapcore.Core.
func (r *Ring) Enabled(level zapcore.Level) bool {
	return level >= r.level
}

// With implements zapcore.Core. The child shares the parent's buffer so all
// entries land in one place.
func (r *Ring) With(fields []zapcore.Field) zapcore.Core {
	if len(fields) == 0 {
		return r
	}
	child := &ringChild{ring: r, with: append(append([]zapcore.Field{}, r.with...), fields...)}
	return child
}

// Check implements zapcore.Core.
func (r *Ring) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if r.Enabled(ent.Level) {
		return ce.AddCore(ent, r)
	}
	return ce
}

// Write implements zapcore.Core.
func (r *Ring) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	r.append(ent, r.with, fields)
	return nil
}

// Sync implements zapcore.Core.
func (r *Ring) Sync() error { return nil }

func (r *Ring) append(ent zapcore.Entry, with, fields []zapcore.Field) {
	entry := Entry{
		Time:    ent.Time,
		Level:   ent.Level,
		Message: ent.Message,
		Fields:  flattenFields(with, fields),
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[r.next] = entry
	r.next++
	if r.next == len(r.entries) {
		r.next = 0
		r.full = true
	}
}

// Len reports how many entries the ring currently holds.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.full {
		return len(r.entries)
	}
	return r.next
}

// Entries returns the captured entries oldest first. The slice is a copy.
func (r *Ring) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.full {
		out := make([]Entry, r.next)
		copy(out, r.entries[:r.next])
		return out
	}
	out := make([]Entry, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	out = append(out, r.entries[:r.next]...)
	return out
}

// ringChild carries the fields accumulated by With while writing into the
// parent's buffer.
type ringChild struct {
	ring *Ring
	with []zapcore.Field
}

var _ zapcore.Core = (*ringChild)(nil)

func (c *ringChild) Enabled(level zapcore.Level) bool { return c.ring.Enabled(level) }

func (c *ringChild) With(fields []zapcore.Field) zapcore.Core {
	return &ringChild{ring: c.ring, with: append(append([]zapcore.Field{}, c.with...), fields...)}
}

func (c *ringChild) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *ringChild) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	c.ring.append(ent, c.with, fields)
	return nil
}

func (c *ringChild) Sync() error { return nil }

func flattenFields(with, fields []zapcore.Field) string {
	if len(with) == 0 && len(fields) == 0 {
		return ""
	}
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range with {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, enc.Fields[k]))
	}
	return strings.Join(parts, " ")
}
