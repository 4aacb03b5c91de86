package layout

// Typesetter 负责根据宽度约束将文本拆成可绘制的行。
type Typesetter interface {
	LayoutLines(content string, width float64, lineHeight float64) ([]TextLine, error)
}

// LineMetrics is implemented by measurement backends that know the natural
// height of a line of text for their font.
type LineMetrics interface {
	LineHeight() float64
}
