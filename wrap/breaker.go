// Package wrap breaks text into lines that fit a maximum rendered width.
//
// Breaking is greedy and happens at spaces, after a dash that is not followed
// by another dash, and at explicit newlines. A token with no break opportunity
// is emitted whole even when it is wider than the limit. Leading and trailing
// spaces of the buffer never belong to a line.
package wrap

import (
	"iter"

	"github.com/ByLCY/linefit/metrics"
)

// Span is a half-open [Start, End) range of code-unit offsets into the
// caller's buffer: bytes for strings, uint16 units for UTF-16 buffers.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of code units covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Breaker drives the line scanner over one metrics table.
// A Breaker is safe for concurrent use.
type Breaker struct {
	table *metrics.Table
}

// New returns a Breaker measuring with t.
func New(t *metrics.Table) *Breaker { return &Breaker{table: t} }

// Table returns the metrics table the breaker measures with.
func (b *Breaker) Table() *metrics.Table { return b.table }

// Each 依次对每一行调用 yield(start, end)；yield 返回 false 时立即停止扫描。
func (b *Breaker) Each(text string, maxWidth float64, yield func(start, end int) bool) {
	scan(b.table, utf8Source(text), maxWidth, yield)
}

// EachUTF16 与 Each 相同，但偏移以 UTF-16 码元计。
func (b *Breaker) EachUTF16(text []uint16, maxWidth float64, yield func(start, end int) bool) {
	scan(b.table, utf16Source(text), maxWidth, yield)
}

// Lines returns a lazy iterator over the [start, end) offsets of each line.
// Breaking out of the range loop stops the scan.
func (b *Breaker) Lines(text string, maxWidth float64) iter.Seq2[int, int] {
	return func(yield func(start, end int) bool) {
		b.Each(text, maxWidth, yield)
	}
}

// Spans 收集最多 limit 行的区间；limit <= 0 表示不限制。
func (b *Breaker) Spans(text string, maxWidth float64, limit int) []Span {
	var out []Span
	b.Each(text, maxWidth, func(start, end int) bool {
		out = append(out, Span{Start: start, End: end})
		return limit <= 0 || len(out) < limit
	})
	return out
}
