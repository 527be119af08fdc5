package Note

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		raw  []string
		want []string
	}{
		{
			name: "去空格并转小写",
			raw:  []string{"Home", " Shopping "},
			want: []string{"home", "shopping"},
		},
		{
			name: "大小写重复只保留一个",
			raw:  []string{"Home", "home", " Shopping "},
			want: []string{"home", "shopping"},
		},
		{
			name: "空标签被丢弃",
			raw:  []string{"", "   ", "work"},
			want: []string{"work"},
		},
		{
			name: "全角逗号按分隔符处理",
			raw:  []string{"工作，生活"},
			want: []string{"工作", "生活"},
		},
		{
			name: "半角逗号拆分",
			raw:  []string{"a,b, c"},
			want: []string{"a", "b", "c"},
		},
		{
			name: "超长标签截断到32个字符",
			raw:  []string{strings.Repeat("x", 40)},
			want: []string{strings.Repeat("x", 32)},
		},
		{
			name: "保持首次出现的顺序",
			raw:  []string{"b", "a", "B"},
			want: []string{"b", "a"},
		},
		{
			name: "空输入返回空列表",
			raw:  nil,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTags(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeTags(%v) = %v, 期望 %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "逗号分隔的输入串",
			raw:  "Home, home , Shopping",
			want: []string{"home", "shopping"},
		},
		{
			name: "空串返回空列表",
			raw:  "",
			want: []string{},
		},
		{
			name: "只有空白返回空列表",
			raw:  "   ",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTags(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTags(%q) = %v, 期望 %v", tt.raw, got, tt.want)
			}
		})
	}
}
