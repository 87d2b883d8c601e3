package types

import (
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// Currency 货币元数据。
//
// 注册后不可变，Money 按引用共享同一个 *Currency 实例。
type Currency struct {
	Code      string
	Precision uint8
	ISO4217   uint16
	Name      string
	Type      CurrencyType
}

// currencyRegistry 进程级货币注册表。
//
// 只增不改：已发布的条目不会被修改，读方永远不会看到半写状态。
var currencyRegistry sync.Map // code -> *Currency

// RegisterCurrency 注册货币并返回共享实例。
//
// 重复注册同一 code 返回已发布的实例（不覆盖）。
func RegisterCurrency(code string, precision uint8, iso4217 uint16, name string, typ CurrencyType) (*Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, errors.Wrap(ErrInvalidValue, "currency code cannot be empty")
	}
	if err := checkPrecision(precision); err != nil {
		return nil, err
	}
	c := &Currency{
		Code:      code,
		Precision: precision,
		ISO4217:   iso4217,
		Name:      name,
		Type:      typ,
	}
	actual, _ := currencyRegistry.LoadOrStore(code, c)
	return actual.(*Currency), nil
}

// CurrencyFromCode 按代码查找已注册货币
func CurrencyFromCode(code string) (*Currency, bool) {
	v, ok := currencyRegistry.Load(strings.ToUpper(strings.TrimSpace(code)))
	if !ok {
		return nil, false
	}
	return v.(*Currency), true
}

// mustRegister 内置货币表初始化用
func mustRegister(code string, precision uint8, iso4217 uint16, name string, typ CurrencyType) *Currency {
	c, err := RegisterCurrency(code, precision, iso4217, name, typ)
	if err != nil {
		panic(err)
	}
	return c
}

// 内置常用货币（ISO 4217 数字代码；加密货币无 ISO 代码填 0）
var (
	USD = mustRegister("USD", 2, 840, "United States dollar", CurrencyTypeFiat)
	EUR = mustRegister("EUR", 2, 978, "Euro", CurrencyTypeFiat)
	GBP = mustRegister("GBP", 2, 826, "British pound", CurrencyTypeFiat)
	JPY = mustRegister("JPY", 0, 392, "Japanese yen", CurrencyTypeFiat)
	AUD = mustRegister("AUD", 2, 36, "Australian dollar", CurrencyTypeFiat)
	CHF = mustRegister("CHF", 2, 756, "Swiss franc", CurrencyTypeFiat)
	CNY = mustRegister("CNY", 2, 156, "Chinese yuan", CurrencyTypeFiat)

	BTC  = mustRegister("BTC", 8, 0, "Bitcoin", CurrencyTypeCrypto)
	ETH  = mustRegister("ETH", 8, 0, "Ether", CurrencyTypeCrypto)
	USDT = mustRegister("USDT", 6, 0, "Tether", CurrencyTypeCrypto)
	USDC = mustRegister("USDC", 6, 0, "USD Coin", CurrencyTypeCrypto)
)
