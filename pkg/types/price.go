package types

import (
	"github.com/shopspring/decimal"
)

// Price 价格值对象（缩放整数定点数）。
//
// 语义值 = Raw / 10^Precision。Raw 允许为负（支持价差/负利率类标的）。
// 构造后不可变：Add/Sub 返回新值，AddAssign/SubAssign 只修改调用方自有的副本。
type Price struct {
	Raw       int64
	Precision uint8
}

// NewPrice 从人类可读小数构造价格，按声明精度 round-half-away-from-zero 取整
func NewPrice(value float64, precision uint8) (Price, error) {
	if err := checkPrecision(precision); err != nil {
		return Price{}, err
	}
	raw := rawFromF64(value, precision)
	if err := checkRawRange(raw, precision); err != nil {
		return Price{}, err
	}
	return Price{Raw: raw, Precision: precision}, nil
}

// PriceFromRaw 从 raw + precision 精确构造；精度非法或 raw 超出可提升到
// 最大精度的范围时返回 ErrInvalidValue
func PriceFromRaw(raw int64, precision uint8) (Price, error) {
	if err := checkPrecision(precision); err != nil {
		return Price{}, err
	}
	if err := checkRawRange(raw, precision); err != nil {
		return Price{}, err
	}
	return Price{Raw: raw, Precision: precision}, nil
}

// PriceFromString 从十进制字面量构造价格
func PriceFromString(s string, precision uint8) (Price, error) {
	if err := checkPrecision(precision); err != nil {
		return Price{}, err
	}
	raw, err := rawFromString(s, precision)
	if err != nil {
		return Price{}, err
	}
	if err := checkRawRange(raw, precision); err != nil {
		return Price{}, err
	}
	return Price{Raw: raw, Precision: precision}, nil
}

// MustPrice 测试/常量场景使用，构造失败直接 panic
func MustPrice(value float64, precision uint8) Price {
	p, err := NewPrice(value, precision)
	if err != nil {
		panic(err)
	}
	return p
}

// rescaledPair 把两个价格提升到共同精度（取较大者）
func rescaledPair(a, b Price) (int64, int64, uint8) {
	prec := maxPrecision(a.Precision, b.Precision)
	return rescaleRaw(a.Raw, a.Precision, prec), rescaleRaw(b.Raw, b.Precision, prec), prec
}

// Add 价格相加，结果保留较大精度
func (p Price) Add(other Price) Price {
	ra, rb, prec := rescaledPair(p, other)
	return Price{Raw: ra + rb, Precision: prec}
}

// Sub 价格相减，结果保留较大精度
func (p Price) Sub(other Price) Price {
	ra, rb, prec := rescaledPair(p, other)
	return Price{Raw: ra - rb, Precision: prec}
}

// AddAssign 原地相加（只允许用于调用方独占的副本）
func (p *Price) AddAssign(other Price) {
	*p = p.Add(other)
}

// SubAssign 原地相减
func (p *Price) SubAssign(other Price) {
	*p = p.Sub(other)
}

// Neg 取负
func (p Price) Neg() Price {
	return Price{Raw: -p.Raw, Precision: p.Precision}
}

// Cmp 按共同精度比较：-1 小于，0 等于，1 大于
func (p Price) Cmp(other Price) int {
	ra, rb, _ := rescaledPair(p, other)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}

func (p Price) Equal(other Price) bool       { return p.Cmp(other) == 0 }
func (p Price) LessThan(other Price) bool    { return p.Cmp(other) < 0 }
func (p Price) GreaterThan(other Price) bool { return p.Cmp(other) > 0 }

// Rescale 返回提升到指定精度的副本（precision 不得低于当前精度）
func (p Price) Rescale(precision uint8) Price {
	if precision <= p.Precision {
		return p
	}
	return Price{Raw: rescaleRaw(p.Raw, p.Precision, precision), Precision: precision}
}

// IsZero 是否为零值价格
func (p Price) IsZero() bool { return p.Raw == 0 }

// IsPositive 是否严格大于零
func (p Price) IsPositive() bool { return p.Raw > 0 }

// AsF64 有损转换，仅用于展示/对外接口，禁止进入记账逻辑
func (p Price) AsF64() float64 {
	return float64(p.Raw) / float64(pow10[p.Precision])
}

// AsDecimal 无损转换为 decimal（用于高精度中间计算）
func (p Price) AsDecimal() decimal.Decimal {
	return decimal.New(p.Raw, -int32(p.Precision))
}

func (p Price) String() string {
	return formatRaw(p.Raw, p.Precision)
}
