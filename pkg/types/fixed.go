package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// 定点数公共定义。
//
// 所有金额/价格/数量都用 raw + precision 的缩放整数表示：
//   语义值 = raw / 10^precision
// precision 最大为 9（FixedScalar = 10^9），内部运算全部走 int64/uint64，
// 不允许 float64 进入记账路径（AsF64 仅用于展示/对外转换）。
const (
	// FixedPrecision 最大小数位数
	FixedPrecision uint8 = 9
	// FixedScalar 最大精度对应的缩放因子（10^9）
	FixedScalar int64 = 1_000_000_000
)

// pow10 预计算的 10 的幂（索引 0..9）
var pow10 = [10]int64{
	1,
	10,
	100,
	1_000,
	10_000,
	100_000,
	1_000_000,
	10_000_000,
	100_000_000,
	1_000_000_000,
}

// checkPrecision 校验精度是否在 [0, 9] 范围内
func checkPrecision(precision uint8) error {
	if precision > FixedPrecision {
		return errors.Wrapf(ErrInvalidValue, "precision %d exceeds maximum %d", precision, FixedPrecision)
	}
	return nil
}

// checkRawRange 校验 raw 在该精度下仍可无损提升到最大精度。
//
// 全部构造入口都做此校验，保证库内任何 rescaleRaw（含跨精度运算与
// 订单簿 price key 规范化）都不会溢出；可表示范围为
// [MinInt64/10^(9-p), MaxInt64/10^(9-p)]。
func checkRawRange(raw int64, precision uint8) error {
	scale := pow10[FixedPrecision-precision]
	if raw > math.MaxInt64/scale || raw < math.MinInt64/scale {
		return errors.Wrapf(ErrInvalidValue,
			"raw %d at precision %d not representable at precision %d", raw, precision, FixedPrecision)
	}
	return nil
}

// checkRawRangeU 无符号版本的 checkRawRange
func checkRawRangeU(raw uint64, precision uint8) error {
	if raw > math.MaxUint64/uint64(pow10[FixedPrecision-precision]) {
		return errors.Wrapf(ErrInvalidValue,
			"raw %d at precision %d not representable at precision %d", raw, precision, FixedPrecision)
	}
	return nil
}

// rawFromF64 把人类可读小数转换为 raw。
//
// 取整策略（全库统一）：round-half-away-from-zero，即 0.5 远离零舍入。
// 例如 precision=2 时 2.345 -> 235，-2.345 -> -235。
// 经由 shopspring/decimal 完成，避免 float64 十进制表示误差。
func rawFromF64(value float64, precision uint8) int64 {
	d := decimal.NewFromFloat(value).Round(int32(precision))
	return d.Shift(int32(precision)).IntPart()
}

// rawFromString 从十进制字面量解析 raw，取整策略与 rawFromF64 一致
func rawFromString(s string, precision uint8) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidValue, "invalid decimal literal %q", s)
	}
	return d.Round(int32(precision)).Shift(int32(precision)).IntPart(), nil
}

// rescaleRaw 把 raw 从 from 精度提升到 to 精度（要求 to >= from；
// 构造期的 checkRawRange 保证乘法不会溢出）
func rescaleRaw(raw int64, from, to uint8) int64 {
	if to == from {
		return raw
	}
	return raw * pow10[to-from]
}

// maxPrecision 返回两个精度中较大的一个
func maxPrecision(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

// formatRaw 按精度格式化 raw（不走 float，保证无损显示）。
// 幅值用无符号取负计算，math.MinInt64 也能得到正确结果。
func formatRaw(raw int64, precision uint8) string {
	mag := uint64(raw)
	if raw < 0 {
		mag = -mag
		return "-" + formatRawU(mag, precision)
	}
	return formatRawU(mag, precision)
}

// formatRawU 无符号版本的 formatRaw
func formatRawU(raw uint64, precision uint8) string {
	if precision == 0 {
		return strconv.FormatUint(raw, 10)
	}
	scale := uint64(pow10[precision])
	intPart := raw / scale
	fracPart := raw % scale
	frac := strconv.FormatUint(fracPart, 10)
	return fmt.Sprintf("%d.%s%s", intPart, strings.Repeat("0", int(precision)-len(frac)), frac)
}
