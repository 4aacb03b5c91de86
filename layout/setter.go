package layout

import (
	"fmt"
	"math"

	"github.com/ByLCY/linefit/wrap"
)

// Setter implements Typesetter on top of a wrap.Breaker.
type Setter struct {
	breaker    *wrap.Breaker
	textHeight float64
}

var _ Typesetter = (*Setter)(nil)

// NewSetter 创建排版器。textHeight 为字体自身的行高，<=0 时使用调用方给出的 lineHeight。
func NewSetter(b *wrap.Breaker, textHeight float64) *Setter {
	return &Setter{breaker: b, textHeight: textHeight}
}

// NewSetterFor uses the oracle's natural line height when it reports one.
func NewSetterFor(b *wrap.Breaker, oracle any) *Setter {
	var textHeight float64
	if lm, ok := oracle.(LineMetrics); ok {
		textHeight = lm.LineHeight()
	}
	return NewSetter(b, textHeight)
}

// LayoutLines 实现 Typesetter 接口，使用贪心换行算法。
// 首行 GapBefore 为 0，其余行为 max(lineHeight-textHeight, 0)。
func (s *Setter) LayoutLines(content string, width float64, lineHeight float64) ([]TextLine, error) {
	if s == nil || s.breaker == nil {
		return nil, fmt.Errorf("layout: 缺少换行器")
	}
	if math.IsNaN(lineHeight) || lineHeight < 0 {
		return nil, fmt.Errorf("layout: 非法行高 %g", lineHeight)
	}
	textHeight := s.textHeight
	if textHeight <= 0 {
		textHeight = lineHeight
	}
	leading := math.Max(lineHeight-textHeight, 0)

	tbl := s.breaker.Table()
	var lines []TextLine
	s.breaker.Each(content, width, func(start, end int) bool {
		str := content[start:end]
		lines = append(lines, TextLine{
			Content: str,
			Start:   start,
			End:     end,
			Width:   tbl.TextWidth(str),
			Height:  textHeight,
		})
		return true
	})
	if len(lines) == 0 {
		lines = []TextLine{{Content: "", Width: 0, Height: textHeight}}
	}
	for i := range lines {
		if i == 0 {
			lines[i].GapBefore = 0
		} else {
			lines[i].GapBefore = leading
		}
	}
	return lines, nil
}

// Layout 排版一段文本并汇总段落尺寸。
func (s *Setter) Layout(content string, width float64, lineHeight float64) (*Paragraph, error) {
	lines, err := s.LayoutLines(content, width, lineHeight)
	if err != nil {
		return nil, err
	}
	p := &Paragraph{MaxWidth: width, LineHeight: lineHeight, Lines: lines}
	for _, ln := range lines {
		p.Width = math.Max(p.Width, ln.Width)
		p.Height += ln.GapBefore + ln.Height
	}
	return p, nil
}
