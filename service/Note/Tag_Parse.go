package Note

import "strings"

// 标签最大长度（按字符计，不是字节）
const maxTagLen = 32

// NormalizeTags 归一化标签：去空格、转小写、去重、超长截断
// 全角逗号当作分隔符处理，归一化后为空的标签直接丢弃
func NormalizeTags(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		item = strings.ReplaceAll(item, "，", ",")
		for _, t := range strings.Split(item, ",") {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" {
				continue
			}
			if r := []rune(t); len(r) > maxTagLen {
				t = string(r[:maxTagLen])
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// ParseTags 解析逗号分隔的标签输入串
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	return NormalizeTags([]string{raw})
}
