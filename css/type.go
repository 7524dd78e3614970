package css

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// Unicode 标量值的上界，超出即为非法码点
const MaxCodepoint rune = 0x10FFFF

type CodepointSet map[rune]struct{}

var (
	ErrEmptyCoverage = errors.New("empty coverage set") // 空覆盖集，调用方应先行跳过
)

// 非法码点错误，携带越界的码点值
type ErrInvalidCodepoint rune

func NewErrInvalidCodepoint(r rune) *ErrInvalidCodepoint {
	e := ErrInvalidCodepoint(r)
	return &e
}

func (e ErrInvalidCodepoint) Error() string {
	return fmt.Sprintf("invalid codepoint: %d (out of [0, 0x10FFFF])", rune(e))
}

// unicode-range 词法错误，携带无法解析的 token
type ErrInvalidRangeToken string

func NewErrInvalidRangeToken(s string) *ErrInvalidRangeToken {
	e := ErrInvalidRangeToken(s)
	return &e
}

func (e ErrInvalidRangeToken) Error() string {
	return fmt.Sprintf(`invalid unicode-range token: "%s"`, string(e))
}

var _ error = (*ErrInvalidCodepoint)(nil)
var _ error = (*ErrInvalidRangeToken)(nil)

// 根据传入的码点创建覆盖集（重复的码点会被合并）
func NewCodepointSet(runes ...rune) CodepointSet {
	s := make(CodepointSet, len(runes))
	for _, r := range runes {
		s[r] = struct{}{}
	}
	return s
}

func (s CodepointSet) Add(r rune) {
	s[r] = struct{}{}
}

func (s CodepointSet) Contains(r rune) bool {
	_, ok := s[r]
	return ok
}

func (s CodepointSet) IsEmpty() bool {
	return len(s) == 0
}

// 计算 s 与 base 的差集，返回新的覆盖集
// 即 s 中有而 base 中没有的码点，s 与 base 均不会被修改
// 差集为空表示该字体没有独有覆盖，调用方应跳过该字体
func (s CodepointSet) Difference(base CodepointSet) CodepointSet {
	result := make(CodepointSet, len(s))
	for r := range s {
		if _, ok := base[r]; !ok {
			result[r] = struct{}{}
		}
	}
	return result
}

// 转换为 unicode.RangeTable，便于与 unicode.Is / unicode.In 配合使用
func (s CodepointSet) RangeTable() *unicode.RangeTable {
	runes := make([]rune, 0, len(s))
	for r := range s {
		runes = append(runes, r)
	}
	return rangetable.New(runes...)
}

// 序列化为紧凑的 unicode-range 描述串，空集序列化为 ""
func (s CodepointSet) MarshalJSON() ([]byte, error) {
	if s.IsEmpty() {
		return []byte(`""`), nil
	}
	descriptor, err := UnicodeRange(s)
	if err != nil {
		return nil, err
	}
	return []byte(`"` + descriptor + `"`), nil
}

func (s *CodepointSet) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return NewErrInvalidRangeToken(string(data))
	}
	raw := string(data[1 : len(data)-1])
	if raw == "" {
		*s = make(CodepointSet)
		return nil
	}
	set, err := ParseUnicodeRange(raw)
	if err != nil {
		return err
	}
	*s = set
	return nil
}
