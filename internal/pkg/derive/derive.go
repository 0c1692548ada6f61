/*
 * @Description: 文章派生字段的纯函数计算（slug、摘要、阅读时长）
 * @Author: 安知鱼
 * @Date: 2025-05-18 16:30:42
 * @LastEditTime: 2025-08-21 14:26:30
 * @LastEditors: 安知鱼
 */
package derive

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/anzhiyu-c/soloblog/internal/pkg/parser"
)

// ExcerptMaxLen 是自动摘要的最大长度（不含省略号）。
const ExcerptMaxLen = 200

// wordsPerMinute 是阅读时长估算的每分钟词数。
const wordsPerMinute = 200

var nonSlugChars = regexp.MustCompile(`[^a-z0-9\s]+`)

// Slugify 把名称转换为 URL 安全的 slug：小写、去掉字母数字和空白以外的
// 字符、空白折叠为单个连字符、去掉首尾连字符。结果可能为空串，
// 依赖唯一名称约束的分类/标签直接使用该结果。
func Slugify(name string) string {
	s := strings.ToLower(name)
	s = nonSlugChars.ReplaceAllString(s, "")
	fields := strings.Fields(s)
	return strings.Join(fields, "-")
}

// Slug 计算文章 slug。已有 slug 非空时原样保留；否则按 Slugify 规则
// 转换标题并追加毫秒时间戳后缀保证全局唯一，无需回查存储。
// 标题全部为非法字符时退化为仅后缀，结果始终匹配 ^[a-z0-9-]+$ 且非空。
func Slug(title, existing string) string {
	if strings.TrimSpace(existing) != "" {
		return existing
	}

	suffix := strconv.FormatInt(time.Now().UnixMilli(), 10)
	base := Slugify(title)
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

// Excerpt 从富文本内容生成纯文本摘要：剥离标签、折叠空白，
// 超过 maxLen 时在 maxLen 以内最后一个词边界截断并追加省略号；
// 找不到词边界时硬截断。
func Excerpt(content string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = ExcerptMaxLen
	}

	text := strings.Join(strings.Fields(parser.StripHTML(content)), " ")
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	cut := maxLen
	for i := maxLen; i > 0; i-- {
		if runes[i] == ' ' {
			cut = i
			break
		}
	}
	return strings.TrimRight(string(runes[:cut]), " ") + "..."
}

// ReadTime 估算阅读时长（分钟）：剥离标签后按空白切词，
// 每 200 词一分钟向上取整；内容非空时至少 1 分钟，空白内容为 0。
func ReadTime(content string) int {
	words := len(strings.Fields(parser.StripHTML(content)))
	if words == 0 {
		if strings.TrimSpace(content) == "" {
			return 0
		}
		return 1
	}
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
