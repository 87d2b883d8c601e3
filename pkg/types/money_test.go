package types

import (
	"testing"

	"github.com/pkg/errors"
)

func TestMoneyString(t *testing.T) {
	m, err := NewMoney(100.60, USD)
	if err != nil {
		t.Fatal(err)
	}
	if m.String() != "100.60 USD" {
		t.Errorf("String() = %q, want %q", m.String(), "100.60 USD")
	}
	if m.Raw != 10060 {
		t.Errorf("Raw = %d, want 10060", m.Raw)
	}

	jpy, _ := NewMoney(500, JPY)
	if jpy.String() != "500 JPY" {
		t.Errorf("String() = %q, want %q", jpy.String(), "500 JPY")
	}
}

func TestMoneyNegativeAllowed(t *testing.T) {
	m, err := NewMoney(-25.50, USD)
	if err != nil {
		t.Fatal(err)
	}
	if m.Raw != -2550 {
		t.Errorf("Raw = %d, want -2550", m.Raw)
	}
	if m.String() != "-25.50 USD" {
		t.Errorf("String() = %q", m.String())
	}
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	usd, _ := NewMoney(10, USD)
	eur, _ := NewMoney(10, EUR)

	if _, err := usd.Add(eur); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("USD + EUR should fail with ErrCurrencyMismatch, got %v", err)
	}
	if _, err := usd.Sub(eur); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("USD - EUR should fail with ErrCurrencyMismatch, got %v", err)
	}
	if _, err := usd.Cmp(eur); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("Cmp across currencies should fail, got %v", err)
	}

	// 失败时原地运算不得修改接收方
	before := usd
	if err := usd.AddAssign(eur); !errors.Is(err, ErrCurrencyMismatch) {
		t.Fatalf("AddAssign should fail, got %v", err)
	}
	if usd != before {
		t.Errorf("AddAssign modified receiver on failure")
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a, _ := NewMoney(100.25, USD)
	b, _ := NewMoney(0.75, USD)

	sum, err := a.Add(b)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Raw != 10100 {
		t.Errorf("100.25 + 0.75 raw = %d, want 10100", sum.Raw)
	}

	diff, err := a.Sub(b)
	if err != nil {
		t.Fatal(err)
	}
	if diff.String() != "99.50 USD" {
		t.Errorf("diff = %q, want %q", diff.String(), "99.50 USD")
	}
}

func TestMoneyNilCurrency(t *testing.T) {
	if _, err := NewMoney(1, nil); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("nil currency should fail, got %v", err)
	}
}

func TestRegisterCurrencyIdempotent(t *testing.T) {
	a, err := RegisterCurrency("ZZZ", 4, 0, "Test coin", CurrencyTypeCrypto)
	if err != nil {
		t.Fatal(err)
	}
	// 重复注册返回首次发布的实例，不覆盖
	b, err := RegisterCurrency("zzz", 8, 999, "Other", CurrencyTypeFiat)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("duplicate registration should return the first instance")
	}
	if b.Precision != 4 {
		t.Errorf("Precision = %d, want original 4", b.Precision)
	}
}

func TestCurrencyFromCode(t *testing.T) {
	c, ok := CurrencyFromCode("usd")
	if !ok {
		t.Fatal("USD should be registered")
	}
	if c != USD {
		t.Error("lookup should return the shared instance")
	}
	if _, ok := CurrencyFromCode("NOPE"); ok {
		t.Error("unknown code should not resolve")
	}
	if USD.ISO4217 != 840 || USD.Type != CurrencyTypeFiat {
		t.Error("USD metadata wrong")
	}
}

func TestRegisterCurrencyInvalid(t *testing.T) {
	if _, err := RegisterCurrency("", 2, 0, "Empty", CurrencyTypeFiat); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("empty code should fail, got %v", err)
	}
	if _, err := RegisterCurrency("BAD", 11, 0, "Bad", CurrencyTypeFiat); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("precision 11 should fail, got %v", err)
	}
}
