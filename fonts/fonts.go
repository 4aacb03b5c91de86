// Package fonts resolves font sources to raw font bytes.
//
// A source is either a built-in name ("builtin:goregular", "built-in:gomono",
// "embed:lmroman10") or a file path resolved against a base directory.
package fonts

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Fallback is the built-in font used when a configured font cannot be loaded.
const Fallback = "goregular"

var builtins = map[string][]byte{
	"goregular": goregular.TTF,
	"gomono":    gomono.TTF,
	"lmroman10": lmroman10regular.TTF,
}

var prefixes = []string{"builtin:", "built-in:", "embed:"}

// Builtin 返回内置字体的字节数据。
func Builtin(name string) ([]byte, error) {
	data, ok := builtins[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("找不到内置字体资源 built-in:%s", name)
	}
	return data, nil
}

// Names lists the built-in font names in sorted order.
func Names() []string {
	out := make([]string, 0, len(builtins))
	for name := range builtins {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// IsBuiltin reports whether src names a built-in font.
func IsBuiltin(src string) bool {
	_, ok := trimPrefix(src)
	return ok
}

// Load 返回 src 对应的字体字节。路径相对于 baseDir 解析；
// 未指定 baseDir 时只允许绝对路径。
func Load(src, baseDir string) ([]byte, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, fmt.Errorf("字体缺少 src")
	}
	if name, ok := trimPrefix(src); ok {
		return Builtin(name)
	}
	path := src
	if baseDir == "" && !filepath.IsAbs(path) {
		return nil, fmt.Errorf("未指定资源目录时不允许直接使用字体路径：%s（请改用 built-in: 或 embed:）", src)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取字体 %s 失败: %w", src, err)
	}
	return data, nil
}

func trimPrefix(src string) (string, bool) {
	for _, p := range prefixes {
		if strings.HasPrefix(src, p) {
			return strings.TrimPrefix(src, p), true
		}
	}
	return "", false
}
