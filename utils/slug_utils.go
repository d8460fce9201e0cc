package utils

import (
	"strings"
	"unicode"
)

// Slugify 将名称转换为URL友好的slug
// slug仅用于URL美观，查找始终使用主键
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true // 避免slug以连字符开头

	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}

	return strings.TrimRight(b.String(), "-")
}
