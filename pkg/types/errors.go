package types

import "github.com/pkg/errors"

// 错误种类（sentinel）。调用方用 errors.Is 判断，不要做字符串匹配。
var (
	// ErrInvalidValue 构造期约束违反：负数量、精度超过 9、非法 TIF 等
	ErrInvalidValue = errors.New("invalid value")

	// ErrCurrencyMismatch 不同币种之间做 Money 运算
	ErrCurrencyMismatch = errors.New("currency mismatch")
)
