package font

type CheckErrFn func(error) bool

type RangeOption func(*rangeConfig)

type rangeConfig struct {
	baseline   string
	concurrent bool
	fn         CheckErrFn
}

// WithBaseline 指定基准 face 的名称（家族名称、完整名称或 PostScript 名称）
// 其余 face 的覆盖集会先减去基准的覆盖集再生成 unicode-range
func WithBaseline(name string) RangeOption {
	return func(c *rangeConfig) {
		c.baseline = name
	}
}

func WithConcurrent() RangeOption {
	return func(c *rangeConfig) {
		c.concurrent = true
	}
}

func WithCheckErr(fn CheckErrFn) RangeOption {
	return func(c *rangeConfig) {
		c.fn = fn
	}
}
