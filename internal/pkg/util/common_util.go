package util

import (
	"regexp"
	"strings"
)

var (
	nonWordRegex = regexp.MustCompile(`[^\w ]+`)
	spaceRegex   = regexp.MustCompile(` +`)
)

// Slugify 小写，去掉非单词字符，连续空格折叠为一个 '-'，首尾不留 '-'
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = strings.TrimSpace(nonWordRegex.ReplaceAllString(slug, ""))
	return spaceRegex.ReplaceAllString(slug, "-")
}

// Truncate 按 rune 截取前 n 个字符
func Truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// CleanTags 去掉空白标签并去重，保持原有顺序
func CleanTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
