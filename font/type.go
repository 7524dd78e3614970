package font

import (
	"time"

	"github.com/AkimioJR/fontrange-go/css"
)

type FontFaceLocation struct {
	Path  string `json:"path"`  // 字体文件路径
	Index uint   `json:"index"` // 字体集合中的索引位置
}

// 判断两个 face 是否为同一来源（路径与索引均相同）
func (l FontFaceLocation) Same(other FontFaceLocation) bool {
	return l.Path == other.Path && l.Index == other.Index
}

type FontFaceInfo struct {
	Source   FontFaceLocation `json:"source"`   // 字体来源信息
	Family   string           `json:"family"`   // 字体家族名称（小写）
	FullName string           `json:"fullname"` // 字体完整名称（小写）
	PSName   string           `json:"psname"`   // PostScript 名称（小写）
	Coverage css.CodepointSet `json:"coverage"` // 该 face 支持的码点覆盖集
	Modified time.Time        `json:"modified"` // 字体文件最后修改时间
}

// 单个 face 的 unicode-range 生成结果
type FontRange struct {
	Source FontFaceLocation // 字体来源信息
	Family string           // 字体家族名称
	Range  string           // unicode-range 描述串
}
