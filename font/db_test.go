package font_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/AkimioJR/fontrange-go/css"
	"github.com/AkimioJR/fontrange-go/font"
)

func rangeOf(lo, hi rune) css.CodepointSet {
	set := make(css.CodepointSet, hi-lo+1)
	for r := lo; r <= hi; r++ {
		set.Add(r)
	}
	return set
}

func merge(sets ...css.CodepointSet) css.CodepointSet {
	result := make(css.CodepointSet)
	for _, set := range sets {
		for r := range set {
			result.Add(r)
		}
	}
	return result
}

// 构造测试数据库：
//   - sans regular: 基本拉丁区（基准）
//   - sans bold:    基本拉丁区加一个独有的连字符码点
//   - cjk:          基本拉丁区加 CJK 区段
//   - latin subset: 基本拉丁区的子集，相对基准无独有覆盖
func newTestDB() *font.FontDataBase {
	modified := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	db := font.NewFontDataBase()
	db.AddFaces(
		font.FontFaceInfo{
			Source:   font.FontFaceLocation{Path: "a-sans.ttf", Index: 0},
			Family:   "test sans",
			FullName: "test sans regular",
			PSName:   "testsans-regular",
			Coverage: rangeOf(0x20, 0x7E),
			Modified: modified,
		},
		font.FontFaceInfo{
			Source:   font.FontFaceLocation{Path: "b-sans-bold.ttf", Index: 0},
			Family:   "test sans",
			FullName: "test sans bold",
			PSName:   "testsans-bold",
			Coverage: merge(rangeOf(0x20, 0x7E), css.NewCodepointSet(0x2010)),
			Modified: modified,
		},
		font.FontFaceInfo{
			Source:   font.FontFaceLocation{Path: "c-cjk.ttf", Index: 0},
			Family:   "test cjk",
			FullName: "test cjk regular",
			PSName:   "testcjk-regular",
			Coverage: merge(rangeOf(0x20, 0x7E), rangeOf(0x4E00, 0x4E0F)),
			Modified: modified,
		},
		font.FontFaceInfo{
			Source:   font.FontFaceLocation{Path: "d-latin-subset.ttf", Index: 0},
			Family:   "test latin subset",
			FullName: "test latin subset regular",
			PSName:   "testlatinsubset-regular",
			Coverage: rangeOf(0x41, 0x5A),
			Modified: modified,
		},
	)
	return db
}

func TestUnicodeRangesWithBaseline(t *testing.T) {
	db := newTestDB()

	var skipped []string
	logger := func(err error) bool {
		if _, ok := err.(*font.InfoMsg); ok {
			skipped = append(skipped, err.Error())
		}
		return true
	}

	fontRanges, err := db.UnicodeRanges(font.WithBaseline("test sans regular"), font.WithCheckErr(logger))
	if err != nil {
		t.Fatalf("UnicodeRanges 失败: %v", err)
	}

	expected := []font.FontRange{
		{
			Source: font.FontFaceLocation{Path: "a-sans.ttf", Index: 0},
			Family: "test sans",
			Range:  "U+20-7E", // 基准自身不参与差集，保留完整覆盖
		},
		{
			Source: font.FontFaceLocation{Path: "b-sans-bold.ttf", Index: 0},
			Family: "test sans",
			Range:  "U+2010", // 只声明相对基准的独有覆盖
		},
		{
			Source: font.FontFaceLocation{Path: "c-cjk.ttf", Index: 0},
			Family: "test cjk",
			Range:  "U+4E00-4E0F",
		},
		// d-latin-subset 被基准完全覆盖，应被跳过
	}
	if diff := cmp.Diff(expected, fontRanges); diff != "" {
		t.Errorf("生成结果不匹配 (-期望 +实际):\n%s", diff)
	}

	if len(skipped) != 1 {
		t.Fatalf("应有且仅有一个 face 被跳过, 实际: %v", skipped)
	}
}

func TestUnicodeRangesWithoutBaseline(t *testing.T) {
	db := newTestDB()

	fontRanges, err := db.UnicodeRanges()
	if err != nil {
		t.Fatalf("UnicodeRanges 失败: %v", err)
	}

	// 不指定基准时每个 face 都声明完整覆盖，无一跳过
	if len(fontRanges) != 4 {
		t.Fatalf("face 数量不匹配: 期望 4, 实际 %d", len(fontRanges))
	}
	if fontRanges[0].Range != "U+20-7E" {
		t.Errorf("描述串不匹配: 期望 'U+20-7E', 实际 '%s'", fontRanges[0].Range)
	}
	if fontRanges[1].Range != "U+20-7E, U+2010" {
		t.Errorf("描述串不匹配: 期望 'U+20-7E, U+2010', 实际 '%s'", fontRanges[1].Range)
	}
}

// 串行与并发路径必须产生完全一致的结果
func TestUnicodeRangesConcurrent(t *testing.T) {
	db := newTestDB()

	sequential, err := db.UnicodeRanges(font.WithBaseline("test sans"))
	if err != nil {
		t.Fatalf("串行 UnicodeRanges 失败: %v", err)
	}
	concurrent, err := db.UnicodeRanges(font.WithBaseline("test sans"), font.WithConcurrent())
	if err != nil {
		t.Fatalf("并发 UnicodeRanges 失败: %v", err)
	}

	if diff := cmp.Diff(sequential, concurrent); diff != "" {
		t.Errorf("并发结果与串行结果不一致 (-串行 +并发):\n%s", diff)
	}
}

func TestUnicodeRangesBaselineNotFound(t *testing.T) {
	db := newTestDB()

	_, err := db.UnicodeRanges(font.WithBaseline("no such font"))
	if !errors.Is(err, font.ErrFaceNotFound) {
		t.Errorf("不存在的基准应返回 ErrFaceNotFound, 实际: %v", err)
	}
}

func TestUnicodeRangesEmptyResult(t *testing.T) {
	db := font.NewFontDataBase()
	db.AddFaces(font.FontFaceInfo{
		Source:   font.FontFaceLocation{Path: "empty.ttf", Index: 0},
		Family:   "test empty",
		Coverage: css.NewCodepointSet(), // 空覆盖集只触发跳过，不触发崩溃
	})

	_, err := db.UnicodeRanges()
	if !errors.Is(err, font.ErrEmptyRangeResult) {
		t.Errorf("全部 face 被跳过时应返回 ErrEmptyRangeResult, 实际: %v", err)
	}
}

func TestFindFace(t *testing.T) {
	db := newTestDB()

	testCases := []struct {
		name     string
		query    string
		expected string // 期望命中的 face 路径
		wantErr  bool
	}{
		{name: "按家族名称查找", query: "test cjk", expected: "c-cjk.ttf"},
		{name: "按完整名称查找", query: "Test Sans Bold", expected: "b-sans-bold.ttf"},
		{name: "按 PostScript 名称查找", query: "TestSans-Regular", expected: "a-sans.ttf"},
		{name: "不存在的名称", query: "missing", wantErr: true},
		{name: "空名称", query: "", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			info, err := db.FindFace(tc.query)
			if tc.wantErr {
				if !errors.Is(err, font.ErrFaceNotFound) {
					t.Errorf("应返回 ErrFaceNotFound, 实际: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("FindFace 失败: %v", err)
			}
			if info.Source.Path != tc.expected {
				t.Errorf("命中的 face 不匹配: 期望 '%s', 实际 '%s'", tc.expected, info.Source.Path)
			}
		})
	}
}

func TestSaveLoadDB(t *testing.T) {
	db := newTestDB()
	dbPath := filepath.Join(t.TempDir(), "fonts.json")

	if err := db.SaveDB(dbPath); err != nil {
		t.Fatalf("SaveDB 失败: %v", err)
	}

	loaded := font.NewFontDataBase()
	if err := loaded.LoadDB(dbPath); err != nil {
		t.Fatalf("LoadDB 失败: %v", err)
	}

	if diff := cmp.Diff(db.Faces(), loaded.Faces()); diff != "" {
		t.Errorf("数据库往返结果不一致 (-保存 +加载):\n%s", diff)
	}
}

func TestBuildDBNoFontFile(t *testing.T) {
	db := font.NewFontDataBase()
	if err := db.BuildDB(nil, nil); !errors.Is(err, font.ErrNoFontFileGiven) {
		t.Errorf("空文件列表应返回 ErrNoFontFileGiven, 实际: %v", err)
	}
}

// 坏字体文件只触发警告回调，不中断整个批次
func TestBuildDBSkipsBrokenFont(t *testing.T) {
	db := font.NewFontDataBase()

	var warnings []string
	logger := func(err error) bool {
		if _, ok := err.(*font.WarningMsg); ok {
			warnings = append(warnings, err.Error())
		}
		return true
	}

	if err := db.BuildDB([]string{"no-such-file.ttf"}, logger); err != nil {
		t.Fatalf("BuildDB 不应因单个字体失败而出错: %v", err)
	}
	if len(warnings) != 1 {
		t.Errorf("应有且仅有一条警告, 实际: %v", warnings)
	}
	if len(db.Faces()) != 0 {
		t.Errorf("坏字体不应写入数据库, 实际: %v", db.Faces())
	}
}
