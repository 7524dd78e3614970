package css

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// RangeToken 表示覆盖集中一段极大连续的码点闭区间 [Low, High]
type RangeToken struct {
	Low  rune `json:"low"`
	High rune `json:"high"`
}

// 按照 CSS unicode-range 文法渲染单个区间
// 单码点渲染为 U+XXXX，区间渲染为 U+XXXX-YYYY（大写十六进制，无前导零）
func (t RangeToken) String() string {
	if t.Low == t.High {
		return fmt.Sprintf("U+%X", t.Low)
	}
	return fmt.Sprintf("U+%X-%X", t.Low, t.High)
}

// 将覆盖集压缩为最少数量的区间 token 列表（升序）
// 输出的 token 互不重叠且互不相邻：任意相邻两个 token 满足 l2 > h1+1
// 空覆盖集返回 ErrEmptyCoverage，越界码点返回 ErrInvalidCodepoint
func Compact(set CodepointSet) ([]RangeToken, error) {
	if set.IsEmpty() {
		return nil, ErrEmptyCoverage
	}

	runes := make([]rune, 0, len(set))
	for r := range set {
		if r < 0 || r > MaxCodepoint {
			return nil, NewErrInvalidCodepoint(r)
		}
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	tokens := make([]RangeToken, 0, 8)
	current := RangeToken{Low: runes[0], High: runes[0]}
	for _, r := range runes[1:] {
		if r == current.High+1 { // 连续，扩展当前区间
			current.High = r
			continue
		}
		// 出现空隙，结束当前区间并另起新区间
		tokens = append(tokens, current)
		current = RangeToken{Low: r, High: r}
	}
	tokens = append(tokens, current)
	return tokens, nil
}

// 将区间 token 列表渲染为完整的 unicode-range 描述串（逗号加空格连接）
func Render(tokens []RangeToken) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		parts = append(parts, t.String())
	}
	return strings.Join(parts, ", ")
}

// 将覆盖集压缩并渲染为 unicode-range 描述串
func UnicodeRange(set CodepointSet) (string, error) {
	tokens, err := Compact(set)
	if err != nil {
		return "", err
	}
	return Render(tokens), nil
}

// 将 token 列表展开回覆盖集，是 Compact 的逆操作
func Expand(tokens []RangeToken) CodepointSet {
	set := make(CodepointSet)
	for _, t := range tokens {
		for r := t.Low; r <= t.High; r++ {
			set[r] = struct{}{}
		}
	}
	return set
}

// 解析 unicode-range 描述串，返回对应的覆盖集
// 接受 "U+41-43, U+5A" 形式，U+ 前缀不区分大小写
func ParseUnicodeRange(descriptor string) (CodepointSet, error) {
	set := make(CodepointSet)
	for _, raw := range strings.Split(descriptor, ",") {
		token, err := parseRangeToken(raw)
		if err != nil {
			return nil, err
		}
		for r := token.Low; r <= token.High; r++ {
			set[r] = struct{}{}
		}
	}
	if set.IsEmpty() {
		return nil, ErrEmptyCoverage
	}
	return set, nil
}

// 解析单个 token（U+XXXX 或 U+XXXX-YYYY）
func parseRangeToken(raw string) (RangeToken, error) {
	token := strings.TrimSpace(raw)
	body, ok := strings.CutPrefix(token, "U+")
	if !ok {
		body, ok = strings.CutPrefix(token, "u+")
	}
	if !ok || body == "" {
		return RangeToken{}, NewErrInvalidRangeToken(raw)
	}

	lowStr, highStr, isRange := strings.Cut(body, "-")
	low, err := parseHexCodepoint(lowStr)
	if err != nil {
		return RangeToken{}, NewErrInvalidRangeToken(raw)
	}
	high := low
	if isRange {
		high, err = parseHexCodepoint(highStr)
		if err != nil || high < low {
			return RangeToken{}, NewErrInvalidRangeToken(raw)
		}
	}
	return RangeToken{Low: low, High: high}, nil
}

func parseHexCodepoint(s string) (rune, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	if v > uint64(MaxCodepoint) {
		return 0, NewErrInvalidCodepoint(rune(v))
	}
	return rune(v), nil
}
