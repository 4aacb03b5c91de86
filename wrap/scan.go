package wrap

import (
	"math"

	"github.com/ByLCY/linefit/metrics"
)

const (
	space   = ' '
	newline = '\n'
	dash    = '-'
)

// scanState 是单次扫描的可变状态，按值在循环内传递。
type scanState struct {
	headIdx int     // 当前行起点
	headEnd int     // 最近一次确认的断点
	headWid float64 // [headIdx, headEnd) 的宽度加上未确认的尾部宽度
	tailIdx int     // 最近记录的断行机会，-1 表示无
	tailWid float64 // 自 tailIdx 起累计的宽度
	inWS    bool    // 正处于空格串中
}

func resetAt(i int) scanState {
	return scanState{headIdx: i, headEnd: i, tailIdx: -1}
}

// trim 去掉整个缓冲区首尾的空格串，返回 [from, to)。
func trim[S source](src S) (from, to int) {
	to = src.length()
	for from < to && src.unit(from) == space {
		from++
	}
	for to > from && src.unit(to-1) == space {
		to--
	}
	return from, to
}

func normalizeWidth(w float64) float64 {
	if math.IsNaN(w) {
		return 0
	}
	return w
}

// scan is the single-pass greedy line breaker shared by every entry point.
// yield receives [start, end) offsets; returning false stops the scan at once.
func scan[S source](tbl *metrics.Table, src S, maxWidth float64, yield func(start, end int) bool) {
	from, to := trim(src)
	if from >= to {
		return
	}
	maxWidth = normalizeWidth(maxWidth)
	n := src.length()

	st := resetAt(from)
	r, size := src.decode(from)
	for i := from; i < to; {
		next, nextSize := rune(-1), 0
		if j := i + size; j < n {
			next, nextSize = src.decode(j)
		}

		switch r {
		case newline:
			if !yield(st.headIdx, i) {
				return
			}
			st = resetAt(i + 1)

		case space:
			if next != space {
				st.tailIdx = i + 1
				st.tailWid = 0
			}
			if !st.inWS && st.headWid > 0 {
				st.headWid += tbl.Width(space)
				st.headEnd = i
			}
			st.inWS = true

		default:
			w := tbl.Advance(r, next)
			if st.headEnd > st.headIdx && st.headWid+w > maxWidth {
				if !yield(st.headIdx, st.headEnd) {
					return
				}
				restart := st.tailIdx
				if restart < 0 {
					restart = i
				}
				st.headWid = st.tailWid + w
				st.headIdx, st.headEnd = restart, restart
				st.tailIdx, st.tailWid = -1, 0
			} else {
				if r == dash && next != dash {
					st.tailIdx = i + 1
					st.headEnd = i + 1
					st.tailWid = 0
				}
				st.headWid += w
				st.tailWid += w
			}
			st.inWS = false
		}

		i += size
		r, size = next, nextSize
	}
	yield(st.headIdx, to)
}
