package types

import (
	"math"
	"testing"
	"testing/quick"

	"github.com/pkg/errors"
)

func TestPriceRounding(t *testing.T) {
	// 0.5 远离零舍入
	cases := []struct {
		value     float64
		precision uint8
		wantRaw   int64
	}{
		{2.345, 2, 235},
		{-2.345, 2, -235},
		{2.344, 2, 234},
		{1.005, 2, 101},
		{100.60, 2, 10060},
		{0, 0, 0},
		{10.05, 2, 1005},
	}
	for _, c := range cases {
		p, err := NewPrice(c.value, c.precision)
		if err != nil {
			t.Fatalf("NewPrice(%v, %d): %v", c.value, c.precision, err)
		}
		if p.Raw != c.wantRaw {
			t.Errorf("NewPrice(%v, %d).Raw = %d, want %d", c.value, c.precision, p.Raw, c.wantRaw)
		}
	}
}

func TestPricePrecisionTooLarge(t *testing.T) {
	if _, err := NewPrice(1.0, 10); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("precision 10 should fail with ErrInvalidValue, got %v", err)
	}
	if _, err := PriceFromRaw(1, 12); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("precision 12 should fail with ErrInvalidValue, got %v", err)
	}
}

// TestPriceRawRoundTrip 范围内的 raw 构造后原样保留，范围外的一律拒绝
func TestPriceRawRoundTrip(t *testing.T) {
	f := func(raw int64, prec uint8) bool {
		prec %= 10
		scale := pow10[FixedPrecision-prec]
		inRange := raw <= math.MaxInt64/scale && raw >= math.MinInt64/scale
		p, err := PriceFromRaw(raw, prec)
		if !inRange {
			return errors.Is(err, ErrInvalidValue)
		}
		if err != nil {
			return false
		}
		return p.Raw == raw && p.Precision == prec
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

// TestRawRangeBounds 可表示范围以"能否无损提升到最大精度"为界
func TestRawRangeBounds(t *testing.T) {
	// 精度 9 无需提升，全部 int64 合法
	if _, err := PriceFromRaw(math.MaxInt64, FixedPrecision); err != nil {
		t.Errorf("MaxInt64 at precision 9 should pass: %v", err)
	}
	if _, err := PriceFromRaw(math.MinInt64, FixedPrecision); err != nil {
		t.Errorf("MinInt64 at precision 9 should pass: %v", err)
	}

	// 精度 2 下 raw 超过 MaxInt64/10^7 会在提升时溢出，必须拒绝
	limit := math.MaxInt64 / pow10[FixedPrecision-2]
	if _, err := PriceFromRaw(limit, 2); err != nil {
		t.Errorf("raw at the limit should pass: %v", err)
	}
	if _, err := PriceFromRaw(limit+1, 2); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("raw beyond the limit should fail with ErrInvalidValue, got %v", err)
	}
	if _, err := PriceFromRaw(math.MinInt64/pow10[FixedPrecision-2]-1, 2); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("raw below the negative limit should fail, got %v", err)
	}

	// 无符号侧同理
	if _, err := QuantityFromRaw(math.MaxUint64, FixedPrecision); err != nil {
		t.Errorf("MaxUint64 at precision 9 should pass: %v", err)
	}
	uLimit := math.MaxUint64 / uint64(pow10[FixedPrecision-2])
	if _, err := QuantityFromRaw(uLimit+1, 2); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("quantity raw beyond the limit should fail, got %v", err)
	}
}

// TestRescaleSafeAfterConstruction 任何构造成功的价格都能安全提升到最大
// 精度（订单簿 price key 规范化路径）
func TestRescaleSafeAfterConstruction(t *testing.T) {
	p, err := PriceFromRaw(math.MaxInt64/pow10[FixedPrecision-2], 2)
	if err != nil {
		t.Fatal(err)
	}
	r := p.Rescale(FixedPrecision)
	if r.Raw < 0 {
		t.Errorf("rescale overflowed: %d", r.Raw)
	}
	if r.Raw != p.Raw*pow10[FixedPrecision-2] {
		t.Errorf("rescale raw = %d, want exact multiple", r.Raw)
	}
}

func TestFormatRawMinInt64(t *testing.T) {
	if got := formatRaw(math.MinInt64, 0); got != "-9223372036854775808" {
		t.Errorf("formatRaw(MinInt64, 0) = %q", got)
	}
	if got := formatRaw(math.MinInt64, 2); got != "-92233720368547758.08" {
		t.Errorf("formatRaw(MinInt64, 2) = %q", got)
	}
	if got := formatRaw(math.MinInt64, 9); got != "-9223372036.854775808" {
		t.Errorf("formatRaw(MinInt64, 9) = %q", got)
	}
	if got := formatRaw(math.MaxInt64, 9); got != "9223372036.854775807" {
		t.Errorf("formatRaw(MaxInt64, 9) = %q", got)
	}
}

func TestPriceStringExact(t *testing.T) {
	cases := []struct {
		raw       int64
		precision uint8
		want      string
	}{
		{10060, 2, "100.60"},
		{-10060, 2, "-100.60"},
		{5, 3, "0.005"},
		{-5, 3, "-0.005"},
		{42, 0, "42"},
		{1_000_000_001, 9, "1.000000001"},
	}
	for _, c := range cases {
		p, _ := PriceFromRaw(c.raw, c.precision)
		if got := p.String(); got != c.want {
			t.Errorf("Price{%d,%d}.String() = %q, want %q", c.raw, c.precision, got, c.want)
		}
	}
}

func TestPriceArithmeticRescales(t *testing.T) {
	a := MustPrice(1.5, 1)
	b := MustPrice(0.25, 2)

	sum := a.Add(b)
	if sum.Precision != 2 || sum.Raw != 175 {
		t.Errorf("1.5 + 0.25 = {%d,%d}, want {175,2}", sum.Raw, sum.Precision)
	}
	diff := a.Sub(b)
	if diff.Precision != 2 || diff.Raw != 125 {
		t.Errorf("1.5 - 0.25 = {%d,%d}, want {125,2}", diff.Raw, diff.Precision)
	}
	if !a.GreaterThan(b) || b.GreaterThan(a) {
		t.Error("cross-precision comparison broken")
	}
	if !MustPrice(1.50, 2).Equal(a) {
		t.Error("1.50(p2) should equal 1.5(p1)")
	}
}

func TestPriceFromString(t *testing.T) {
	p, err := PriceFromString("100.60", 2)
	if err != nil {
		t.Fatal(err)
	}
	if p.Raw != 10060 {
		t.Errorf("Raw = %d, want 10060", p.Raw)
	}
	if _, err := PriceFromString("not-a-number", 2); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("garbage literal should fail with ErrInvalidValue, got %v", err)
	}
}

func TestQuantityNegativeRejected(t *testing.T) {
	if _, err := NewQuantity(-1, 0); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("negative quantity should fail with ErrInvalidValue, got %v", err)
	}
	if _, err := QuantityFromString("-0.5", 2); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("negative literal should fail with ErrInvalidValue, got %v", err)
	}
}

func TestQuantitySubUnderflow(t *testing.T) {
	a := MustQuantity(3, 0)
	b := MustQuantity(5, 0)

	if _, err := a.Sub(b); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("3 - 5 should underflow, got %v", err)
	}
	// SubAssign 失败时不得修改原值
	before := a
	if err := a.SubAssign(b); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("SubAssign underflow, got %v", err)
	}
	if a != before {
		t.Errorf("SubAssign modified receiver on failure: %v -> %v", before, a)
	}

	res, err := b.Sub(a)
	if err != nil {
		t.Fatal(err)
	}
	if res.Raw != 2 {
		t.Errorf("5 - 3 = %d, want 2", res.Raw)
	}
}

// TestQuantityAddSubRoundTrip (a + b) - b == a（共同精度下）
func TestQuantityAddSubRoundTrip(t *testing.T) {
	f := func(ra, rb uint32, pa, pb uint8) bool {
		pa, pb = pa%10, pb%10
		a, _ := QuantityFromRaw(uint64(ra), pa)
		b, _ := QuantityFromRaw(uint64(rb), pb)
		res, err := a.Add(b).Sub(b)
		if err != nil {
			return false
		}
		return res.Equal(a)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestQuantityString(t *testing.T) {
	q := MustQuantity(0.5, 1)
	if q.String() != "0.5" {
		t.Errorf("String() = %q, want 0.5", q.String())
	}
	whole := MustQuantity(100, 0)
	if whole.String() != "100" {
		t.Errorf("String() = %q, want 100", whole.String())
	}
}
