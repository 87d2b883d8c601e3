package types

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Quantity 数量值对象（非负缩放整数定点数）。
//
// Raw 为 uint64，任何会导致负数的构造/运算都返回 ErrInvalidValue。
type Quantity struct {
	Raw       uint64
	Precision uint8
}

// NewQuantity 从人类可读小数构造数量，负数返回 ErrInvalidValue
func NewQuantity(value float64, precision uint8) (Quantity, error) {
	if err := checkPrecision(precision); err != nil {
		return Quantity{}, err
	}
	if value < 0 {
		return Quantity{}, errors.Wrapf(ErrInvalidValue, "quantity cannot be negative, was %f", value)
	}
	raw := uint64(rawFromF64(value, precision))
	if err := checkRawRangeU(raw, precision); err != nil {
		return Quantity{}, err
	}
	return Quantity{Raw: raw, Precision: precision}, nil
}

// QuantityFromRaw 从 raw + precision 精确构造；精度非法或 raw 超出可提升到
// 最大精度的范围时返回 ErrInvalidValue
func QuantityFromRaw(raw uint64, precision uint8) (Quantity, error) {
	if err := checkPrecision(precision); err != nil {
		return Quantity{}, err
	}
	if err := checkRawRangeU(raw, precision); err != nil {
		return Quantity{}, err
	}
	return Quantity{Raw: raw, Precision: precision}, nil
}

// QuantityFromString 从十进制字面量构造数量
func QuantityFromString(s string, precision uint8) (Quantity, error) {
	if err := checkPrecision(precision); err != nil {
		return Quantity{}, err
	}
	raw, err := rawFromString(s, precision)
	if err != nil {
		return Quantity{}, err
	}
	if raw < 0 {
		return Quantity{}, errors.Wrapf(ErrInvalidValue, "quantity cannot be negative, was %s", s)
	}
	if err := checkRawRangeU(uint64(raw), precision); err != nil {
		return Quantity{}, err
	}
	return Quantity{Raw: uint64(raw), Precision: precision}, nil
}

// MustQuantity 测试/常量场景使用，构造失败直接 panic
func MustQuantity(value float64, precision uint8) Quantity {
	q, err := NewQuantity(value, precision)
	if err != nil {
		panic(err)
	}
	return q
}

// rescaledPairU 把两个数量提升到共同精度（取较大者；构造期的
// checkRawRangeU 保证乘法不会溢出）
func rescaledPairU(a, b Quantity) (uint64, uint64, uint8) {
	prec := maxPrecision(a.Precision, b.Precision)
	ra := a.Raw * uint64(pow10[prec-a.Precision])
	rb := b.Raw * uint64(pow10[prec-b.Precision])
	return ra, rb, prec
}

// Add 数量相加，结果保留较大精度
func (q Quantity) Add(other Quantity) Quantity {
	ra, rb, prec := rescaledPairU(q, other)
	return Quantity{Raw: ra + rb, Precision: prec}
}

// Sub 数量相减；结果为负时返回 ErrInvalidValue，原值不变
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	ra, rb, prec := rescaledPairU(q, other)
	if rb > ra {
		return Quantity{}, errors.Wrapf(ErrInvalidValue,
			"quantity subtraction underflow: %s - %s", q, other)
	}
	return Quantity{Raw: ra - rb, Precision: prec}, nil
}

// AddAssign 原地相加（只允许用于调用方独占的副本）
func (q *Quantity) AddAssign(other Quantity) {
	*q = q.Add(other)
}

// SubAssign 原地相减，下溢时返回错误且不修改
func (q *Quantity) SubAssign(other Quantity) error {
	res, err := q.Sub(other)
	if err != nil {
		return err
	}
	*q = res
	return nil
}

// Cmp 按共同精度比较
func (q Quantity) Cmp(other Quantity) int {
	ra, rb, _ := rescaledPairU(q, other)
	switch {
	case ra < rb:
		return -1
	case ra > rb:
		return 1
	default:
		return 0
	}
}

func (q Quantity) Equal(other Quantity) bool    { return q.Cmp(other) == 0 }
func (q Quantity) LessThan(other Quantity) bool { return q.Cmp(other) < 0 }

// IsZero 是否为零数量
func (q Quantity) IsZero() bool { return q.Raw == 0 }

// IsPositive 是否严格大于零
func (q Quantity) IsPositive() bool { return q.Raw > 0 }

// AsF64 有损转换，仅用于展示/对外接口
func (q Quantity) AsF64() float64 {
	return float64(q.Raw) / float64(pow10[q.Precision])
}

// AsDecimal 无损转换为 decimal（用于高精度中间计算）
func (q Quantity) AsDecimal() decimal.Decimal {
	return decimal.New(int64(q.Raw), -int32(q.Precision))
}

func (q Quantity) String() string {
	return formatRawU(q.Raw, q.Precision)
}
