package instagram

import (
	"net/url"
	"strings"
)

// ExtractShortcode 从帖子链接中解析出 shortcode。
// 兼容 /p/<code>/ 与 /reel/<code>/ 两种链接形态，解析失败返回空串。
func ExtractShortcode(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i, part := range parts {
		if (part == "p" || part == "reel") && i+1 < len(parts) && parts[i+1] != "" {
			return parts[i+1]
		}
	}

	return ""
}
