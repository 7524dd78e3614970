package font

import (
	"bytes"
	"os"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/sfnt"

	"github.com/AkimioJR/fontrange-go/css"
)

// 解析字体文件并提取每个 face 的元数据与覆盖集
func ParseFont(fontPath string) ([]FontFaceInfo, error) {
	fileInfo, err := os.Stat(fontPath)
	if err != nil {
		return nil, NewErrFontParse(fontPath, err)
	}

	fontData, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, NewErrFontParse(fontPath, err)
	}

	infos, err := ParseFontData(fontData)
	if err != nil {
		return nil, NewErrFontParse(fontPath, err)
	}
	for i := range infos {
		infos[i].Source.Path = fontPath        // 设置字体文件路径
		infos[i].Modified = fileInfo.ModTime() // 设置最后写入时间
	}
	return infos, nil
}

// 解析内存中的字体数据（ttf/otf 单字体或 ttc/otc 字体集合）
func ParseFontData(fontData []byte) ([]FontFaceInfo, error) {
	faces, err := parseFaces(fontData)
	if err != nil {
		return nil, err
	}
	if len(faces) == 0 {
		return nil, ErrNoValidFontFace
	}

	// 名称表交给 x/image 的 sfnt 解析
	// ParseCollection 对单字体数据同样适用（视为只含一个字体的集合）
	// 名称表解析失败不影响覆盖集提取，对应名称留空
	collection, err := sfnt.ParseCollection(fontData)
	if err != nil {
		collection = nil
	}

	infos := make([]FontFaceInfo, 0, len(faces))
	for idx, face := range faces {
		info := FontFaceInfo{
			Source:   FontFaceLocation{Index: uint(idx)},
			Coverage: extractCoverage(face.Font.Cmap),
		}
		if collection != nil && idx < collection.NumFonts() {
			if f, err := collection.Font(idx); err == nil {
				fillNames(&info, f)
			}
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// 字体集合文件以 'ttcf' 标签开头
func isCollection(fontData []byte) bool {
	return len(fontData) >= 4 && string(fontData[:4]) == "ttcf"
}

func parseFaces(fontData []byte) ([]*gotext.Face, error) {
	if isCollection(fontData) {
		return gotext.ParseTTC(bytes.NewReader(fontData))
	}
	face, err := gotext.ParseTTF(bytes.NewReader(fontData))
	if err != nil {
		return nil, err
	}
	return []*gotext.Face{face}, nil
}

// 遍历 cmap 的全部字符映射，收集拥有真实字形的码点
// 字形索引 0 是约定的缺字占位符（.notdef）
// 字体可以声明指向 0 号字形的 cmap 条目，这类码点并不被真正支持，不计入覆盖集
func extractCoverage(cmap gotext.Cmap) css.CodepointSet {
	set := make(css.CodepointSet)
	iter := cmap.Iter()
	for iter.Next() {
		r, gid := iter.Char()
		if gid == 0 {
			continue
		}
		set.Add(r)
	}
	return set
}

// 从名称表读取家族名称、完整名称与 PostScript 名称
// 缺失的名称条目留空，不视为错误
func fillNames(info *FontFaceInfo, f *sfnt.Font) {
	var buf sfnt.Buffer
	if name, err := f.Name(&buf, sfnt.NameIDFamily); err == nil {
		info.Family = normalizeName(name)
	}
	if name, err := f.Name(&buf, sfnt.NameIDFull); err == nil {
		info.FullName = normalizeName(name)
	}
	if name, err := f.Name(&buf, sfnt.NameIDPostScript); err == nil {
		info.PSName = normalizeName(name)
	}
}
