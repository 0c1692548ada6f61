/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-05-18 16:22:10
 * @LastEditTime: 2025-05-18 16:22:31
 * @LastEditors: 安知鱼
 */
package parser

import "github.com/microcosm-cc/bluemonday"

var stripTagsPolicy *bluemonday.Policy

func init() {
	// StripTagsPolicy 会移除所有的HTML标签，只保留文本内容
	stripTagsPolicy = bluemonday.StripTagsPolicy()
}

// StripHTML 接受一个HTML字符串，返回一个去除了所有标签的纯文本字符串。
func StripHTML(htmlContent string) string {
	return stripTagsPolicy.Sanitize(htmlContent)
}
