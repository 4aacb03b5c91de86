package wrap

// Split 返回每一行的文本，收集到 limit 行后停止；limit <= 0 表示不限制。
func (b *Breaker) Split(text string, maxWidth float64, limit int) []string {
	var out []string
	b.Each(text, maxWidth, func(start, end int) bool {
		out = append(out, text[start:end])
		return limit <= 0 || len(out) < limit
	})
	return out
}

// SplitUTF16 is Split for UTF-16 buffers. The returned slices alias text.
func (b *Breaker) SplitUTF16(text []uint16, maxWidth float64, limit int) [][]uint16 {
	var out [][]uint16
	b.EachUTF16(text, maxWidth, func(start, end int) bool {
		out = append(out, text[start:end:end])
		return limit <= 0 || len(out) < limit
	})
	return out
}

// Count 返回文本折行后的行数。
func (b *Breaker) Count(text string, maxWidth float64) int {
	n := 0
	b.Each(text, maxWidth, func(int, int) bool {
		n++
		return true
	})
	return n
}

// CountUTF16 is Count for UTF-16 buffers.
func (b *Breaker) CountUTF16(text []uint16, maxWidth float64) int {
	n := 0
	b.EachUTF16(text, maxWidth, func(int, int) bool {
		n++
		return true
	})
	return n
}

// Test reports whether text wraps onto more than one line.
// The scan stops as soon as a second line is found.
func (b *Breaker) Test(text string, maxWidth float64) bool {
	n := 0
	b.Each(text, maxWidth, func(int, int) bool {
		n++
		return n < 2
	})
	return n >= 2
}
