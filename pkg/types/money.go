package types

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Money 金额值对象。
//
// 精度固定取自币种（Currency.Precision），Raw 允许为负（亏损/负余额）。
// 跨币种运算一律返回 ErrCurrencyMismatch。
type Money struct {
	Raw      int64
	Currency *Currency
}

// NewMoney 从人类可读金额构造，按币种精度取整（round-half-away-from-zero）
func NewMoney(amount float64, currency *Currency) (Money, error) {
	if currency == nil {
		return Money{}, errors.Wrap(ErrInvalidValue, "currency cannot be nil")
	}
	return Money{Raw: rawFromF64(amount, currency.Precision), Currency: currency}, nil
}

// MoneyFromRaw 从 raw 精确构造
func MoneyFromRaw(raw int64, currency *Currency) (Money, error) {
	if currency == nil {
		return Money{}, errors.Wrap(ErrInvalidValue, "currency cannot be nil")
	}
	return Money{Raw: raw, Currency: currency}, nil
}

// MoneyFromString 从十进制字面量构造
func MoneyFromString(s string, currency *Currency) (Money, error) {
	if currency == nil {
		return Money{}, errors.Wrap(ErrInvalidValue, "currency cannot be nil")
	}
	raw, err := rawFromString(s, currency.Precision)
	if err != nil {
		return Money{}, err
	}
	return Money{Raw: raw, Currency: currency}, nil
}

// checkCurrency 校验两个金额币种一致
func (m Money) checkCurrency(other Money) error {
	if m.Currency == nil || other.Currency == nil || m.Currency.Code != other.Currency.Code {
		return errors.Wrapf(ErrCurrencyMismatch, "%s vs %s",
			currencyCode(m.Currency), currencyCode(other.Currency))
	}
	return nil
}

func currencyCode(c *Currency) string {
	if c == nil {
		return "<nil>"
	}
	return c.Code
}

// Add 金额相加，币种不一致返回 ErrCurrencyMismatch
func (m Money) Add(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Raw: m.Raw + other.Raw, Currency: m.Currency}, nil
}

// Sub 金额相减
func (m Money) Sub(other Money) (Money, error) {
	if err := m.checkCurrency(other); err != nil {
		return Money{}, err
	}
	return Money{Raw: m.Raw - other.Raw, Currency: m.Currency}, nil
}

// AddAssign 原地相加（只允许用于调用方独占的副本），失败不修改
func (m *Money) AddAssign(other Money) error {
	res, err := m.Add(other)
	if err != nil {
		return err
	}
	*m = res
	return nil
}

// SubAssign 原地相减，失败不修改
func (m *Money) SubAssign(other Money) error {
	res, err := m.Sub(other)
	if err != nil {
		return err
	}
	*m = res
	return nil
}

// Cmp 同币种比较，币种不一致返回错误
func (m Money) Cmp(other Money) (int, error) {
	if err := m.checkCurrency(other); err != nil {
		return 0, err
	}
	switch {
	case m.Raw < other.Raw:
		return -1, nil
	case m.Raw > other.Raw:
		return 1, nil
	default:
		return 0, nil
	}
}

// IsZero 是否为零金额
func (m Money) IsZero() bool { return m.Raw == 0 }

// AsF64 有损转换，仅用于展示/对外接口
func (m Money) AsF64() float64 {
	return float64(m.Raw) / float64(pow10[m.Currency.Precision])
}

// AsDecimal 无损转换为 decimal
func (m Money) AsDecimal() decimal.Decimal {
	return decimal.New(m.Raw, -int32(m.Currency.Precision))
}

// String 格式如 "100.60 USD"
func (m Money) String() string {
	return fmt.Sprintf("%s %s", formatRaw(m.Raw, m.Currency.Precision), m.Currency.Code)
}
