package metrics

import "unicode/utf8"

// Alphabet 描述构建时需要预先测量的字符集合。
// Upper 中的每个字符还会与 Chars() 中的所有字符组合测量字偶宽度。
type Alphabet struct {
	Upper   string
	Lower   string
	Digits  string
	Symbols string
}

// DefaultAlphabet covers ASCII letters, digits, common punctuation and space.
var DefaultAlphabet = Alphabet{
	Upper:   "ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	Lower:   "abcdefghijklmnopqrstuvwxyz",
	Digits:  "1234567890",
	Symbols: "`~!@#$%^&*()_+-=[]\\{}|;':\",./<>? \t",
}

// Chars 返回完整的基础字符表（大写、小写、数字、符号）。
func (a Alphabet) Chars() string {
	return a.Upper + a.Lower + a.Digits + a.Symbols
}

// Len 返回基础字符表中的码点数量。
func (a Alphabet) Len() int {
	return utf8.RuneCountInString(a.Chars())
}
