package font

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/AkimioJR/fontrange-go/css"
)

type FontDataBase struct {
	data map[string][]FontFaceInfo // path -> []FontFaceInfo
}

// 创建一个新的 FontDataBase 对象
func NewFontDataBase() *FontDataBase {
	return &FontDataBase{
		data: make(map[string][]FontFaceInfo),
	}
}

// BuildDB 逐一解析给定的字体文件并写入数据库
// 单个字体解析失败只会通过 fn 提示，不影响批次中其他字体
func (db *FontDataBase) BuildDB(fontPaths []string, fn CheckErrFn) error {
	if len(fontPaths) == 0 {
		return ErrNoFontFileGiven
	}

	for _, fontPath := range fontPaths {
		infos, err := ParseFont(fontPath)
		if err != nil {
			if fn != nil { // 仅提示错误，不终止程序
				fn(NewWarningMsg("failed to parse font %s: %s", fontPath, err))
			}
			continue
		}
		db.data[fontPath] = infos
	}
	return nil
}

// AddFaces 直接写入已解析的 face 信息
// 便于调用方自行解析字体后复用数据库的差集与 unicode-range 生成逻辑
func (db *FontDataBase) AddFaces(infos ...FontFaceInfo) {
	for _, info := range infos {
		db.data[info.Source.Path] = append(db.data[info.Source.Path], info)
	}
}

func (db *FontDataBase) SaveDB(dbPath string) error {
	data, err := json.MarshalIndent(db.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal font data: %w", err)
	}
	if err := os.WriteFile(dbPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write font database to %s: %w", dbPath, err)
	}
	return nil
}

// LoadDB 加载字体数据库
func (db *FontDataBase) LoadDB(dbPath string) error {
	data, err := os.ReadFile(dbPath)
	if err != nil {
		return fmt.Errorf(`cannot read fonts database: "%s"`, dbPath)
	}

	if err := json.Unmarshal(data, &db.data); err != nil {
		return fmt.Errorf(`cannot load fonts database: "%s"`, dbPath)
	}
	return nil
}

// Faces 返回数据库中全部 face，按路径与索引排序以保证输出确定性
func (db *FontDataBase) Faces() []FontFaceInfo {
	faces := make([]FontFaceInfo, 0, len(db.data))
	for _, infos := range db.data {
		faces = append(faces, infos...)
	}
	sort.Slice(faces, func(i, j int) bool {
		if faces[i].Source.Path != faces[j].Source.Path {
			return faces[i].Source.Path < faces[j].Source.Path
		}
		return faces[i].Source.Index < faces[j].Source.Index
	})
	return faces
}

// FindFace 按名称查找 face，依次匹配家族名称、完整名称与 PostScript 名称
// 多个 face 同名时返回路径与索引最小的那个，保证结果确定
func (db *FontDataBase) FindFace(name string) (*FontFaceInfo, error) {
	target := normalizeName(name)
	if target == "" {
		return nil, fmt.Errorf(`no face found for name "%s": %w`, name, ErrFaceNotFound)
	}
	faces := db.Faces()
	for i := range faces {
		info := &faces[i]
		if info.Family == target || info.FullName == target || info.PSName == target {
			return info, nil
		}
	}
	return nil, fmt.Errorf(`no face found for name "%s": %w`, name, ErrFaceNotFound)
}

// UnicodeRanges 为数据库中每个 face 生成 unicode-range 描述串
// 指定基准 face 后，其余 face 只声明相对基准的独有覆盖，基准自身不参与差集
// 差集为空的 face 没有独有覆盖，通过 fn 以 InfoMsg 提示后跳过
func (db *FontDataBase) UnicodeRanges(opts ...RangeOption) ([]FontRange, error) {
	var cfg rangeConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var baseline *FontFaceInfo
	if cfg.baseline != "" {
		b, err := db.FindFace(cfg.baseline)
		if err != nil {
			return nil, fmt.Errorf(`invalid baseline "%s": %w`, cfg.baseline, err)
		}
		baseline = b
	}

	faces := db.Faces()
	var (
		results []FontRange
		err     error
	)
	if cfg.concurrent {
		results, err = rangesConcurrent(faces, baseline, cfg.fn)
	} else {
		results, err = ranges(faces, baseline, cfg.fn)
	}
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrEmptyRangeResult
	}
	return results, nil
}

func ranges(faces []FontFaceInfo, baseline *FontFaceInfo, fn CheckErrFn) ([]FontRange, error) {
	results := make([]FontRange, 0, len(faces))
	for i := range faces {
		fr, ok, err := rangeForFace(&faces[i], baseline)
		if err != nil {
			if fn != nil && fn(err) {
				continue
			}
			return nil, err
		}
		if !ok {
			if fn != nil {
				fn(NewInfoMsg(`"%s"[%d] contributes no unique coverage, skipped`, faces[i].Source.Path, faces[i].Source.Index))
			}
			continue
		}
		results = append(results, fr)
	}
	return results, nil
}

// 并发版本：核心计算是纯函数且只读共享数据，除结果槽位外无需同步
func rangesConcurrent(faces []FontFaceInfo, baseline *FontFaceInfo, fn CheckErrFn) ([]FontRange, error) {
	type slot struct {
		fr  FontRange
		ok  bool
		err error
	}
	slots := make([]slot, len(faces))

	var wg sync.WaitGroup
	wg.Add(len(faces))
	for i := range faces {
		go func() {
			defer wg.Done()
			slots[i].fr, slots[i].ok, slots[i].err = rangeForFace(&faces[i], baseline)
		}()
	}
	wg.Wait()

	// 按 face 顺序收集结果，顺序与串行版本一致
	results := make([]FontRange, 0, len(faces))
	for i, s := range slots {
		if s.err != nil {
			if fn != nil && fn(s.err) {
				continue
			}
			return nil, s.err
		}
		if !s.ok {
			if fn != nil {
				fn(NewInfoMsg(`"%s"[%d] contributes no unique coverage, skipped`, faces[i].Source.Path, faces[i].Source.Index))
			}
			continue
		}
		results = append(results, s.fr)
	}
	return results, nil
}

// 计算单个 face 的 unicode-range
// 返回的布尔值表示该 face 是否有独有覆盖，false 表示应跳过（不是错误）
func rangeForFace(face *FontFaceInfo, baseline *FontFaceInfo) (FontRange, bool, error) {
	coverage := face.Coverage
	if baseline != nil && !face.Source.Same(baseline.Source) {
		coverage = coverage.Difference(baseline.Coverage)
	}
	if coverage.IsEmpty() {
		return FontRange{}, false, nil
	}

	descriptor, err := css.UnicodeRange(coverage)
	if err != nil {
		return FontRange{}, false, fmt.Errorf(`failed to generate unicode-range for "%s"[%d]: %w`, face.Source.Path, face.Source.Index, err)
	}
	return FontRange{
		Source: face.Source,
		Family: face.Family,
		Range:  descriptor,
	}, true, nil
}
