package storage

import (
	"Anatome/internal/pkg/consts"
	"strings"
)

// resolveObjectKey 从历史写入的各种地址形态中反解对象键。
// 支持三种形态：虚拟主机风格 (bucket.endpoint/key)、路径风格 (endpoint/bucket/key)
// 以及原生 s3://bucket/key。均不匹配时返回 false。
func (s *minioStorage) resolveObjectKey(fileURL string) (string, bool) {
	if key, ok := cutPrefixAny(fileURL, "s3://"+s.bucket+"/"); ok {
		return key, key != ""
	}

	rest := fileURL
	for _, scheme := range []string{"https://", "http://"} {
		if r, ok := cutPrefixAny(fileURL, scheme); ok {
			rest = r
			break
		}
	}

	// 虚拟主机风格：bucket.endpoint/key
	if key, ok := cutPrefixAny(rest, s.bucket+"."+s.endpoint+"/"); ok {
		return key, key != ""
	}

	// 路径风格：endpoint/bucket/key
	if key, ok := cutPrefixAny(rest, s.endpoint+"/"+s.bucket+"/"); ok {
		return key, key != ""
	}

	return "", false
}

func cutPrefixAny(v string, prefix string) (string, bool) {
	if strings.HasPrefix(v, prefix) {
		return v[len(prefix):], true
	}
	return "", false
}

// imageContentType 按扩展名推断封面图的内容类型，默认 jpeg
func imageContentType(localPath string) string {
	lower := strings.ToLower(localPath)
	switch {
	case strings.HasSuffix(lower, ".png"):
		return consts.MimeImagePng
	case strings.HasSuffix(lower, ".webp"):
		return consts.MimeImageWebp
	default:
		return consts.MimeImageJpeg
	}
}
