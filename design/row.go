package design

import (
	"strings"
	"time"
)

// DataRow maps column names to the values of one record. Ordering is
// irrelevant; lookup is case-insensitive with exact-match priority.
type DataRow map[string]string

// Lookup resolves a column by name. An exact match wins; otherwise the first
// case-insensitive match is used. Missing columns report ok=false rather than
// an error.
func (r DataRow) Lookup(name string) (string, bool) {
	if v, ok := r[name]; ok {
		return v, true
	}
	for k, v := range r {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return "", false
}

// RenderContext carries the per-invocation state consumed by time and
// sequence functions. Now is captured once per render call so every function
// within one label sees the same instant.
type RenderContext struct {
	RowIndex  int // 0-based position of the row within the batch
	BatchSize int
	Now       time.Time
}

// NewRenderContext builds a context for a single row. A zero now is replaced
// with the current time; batchSize is clamped to at least 1.
func NewRenderContext(rowIndex, batchSize int, now time.Time) RenderContext {
	if rowIndex < 0 {
		rowIndex = 0
	}
	if batchSize < 1 {
		batchSize = 1
	}
	if now.IsZero() {
		now = time.Now()
	}
	return RenderContext{RowIndex: rowIndex, BatchSize: batchSize, Now: now}
}
