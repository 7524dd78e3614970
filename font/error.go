package font

import (
	"errors"
	"fmt"
)

var (
	ErrNoValidFontFace  = errors.New("no valid font face found")
	ErrNoFontFileGiven  = errors.New("no font files given")
	ErrFaceNotFound     = errors.New("font face not found in database")
	ErrEmptyRangeResult = errors.New("no unicode-range generated for any face")
)

// 字体解析失败错误，仅中止该字体的处理，不影响批次中其他字体
type ErrFontParse struct {
	path string
	err  error
}

func NewErrFontParse(path string, err error) *ErrFontParse {
	return &ErrFontParse{
		path: path,
		err:  err,
	}
}

func (e *ErrFontParse) Error() string {
	return fmt.Sprintf(`failed to parse font "%s": %s`, e.path, e.err)
}

func (e *ErrFontParse) Unwrap() error {
	return e.err
}

type InfoMsg string

func NewInfoMsg(format string, a ...any) *InfoMsg {
	i := InfoMsg(fmt.Sprintf(format, a...))
	return &i
}

func (i InfoMsg) Error() string {
	return string(i)
}

type WarningMsg string

func NewWarningMsg(format string, a ...any) *WarningMsg {
	w := WarningMsg(fmt.Sprintf(format, a...))
	return &w
}

func (w WarningMsg) Error() string {
	return string(w)
}

var _ error = (*ErrFontParse)(nil)
var _ error = (*InfoMsg)(nil)
var _ error = (*WarningMsg)(nil)
