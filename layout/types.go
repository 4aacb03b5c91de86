package layout

// 该文件定义段落排版结果，供排版计算与调试 JSON 共用。
// 所有宽度、高度均与测量后端使用同一单位（内置后端均为 pt）。

// TextLine 表示排版后的一行文本内容及其宽高。
type TextLine struct {
	Content   string  `json:"content"`
	Start     int     `json:"start"` // 在原文中的字节偏移
	End       int     `json:"end"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	GapBefore float64 `json:"gapBefore,omitempty"`
}

// Paragraph 记录一段文本在给定宽度约束下的排版结果。
type Paragraph struct {
	MaxWidth   float64    `json:"maxWidth"`
	LineHeight float64    `json:"lineHeight"`
	Lines      []TextLine `json:"lines"`
	Width      float64    `json:"width"`  // 最宽一行的宽度
	Height     float64    `json:"height"` // 所有行高与行间距之和
}
