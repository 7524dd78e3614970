package font

import "strings"

// 名称统一转小写用于匹配，无效名称返回空串
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "undefined" {
		return ""
	}
	return name
}
