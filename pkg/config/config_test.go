package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/betbot/tradecore/pkg/types"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Sim.Instrument != "BTCUSDT.BINANCE" {
		t.Errorf("default instrument = %q", cfg.Sim.Instrument)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("default log level = %q", cfg.Log.Level)
	}
	if cfg.Sim.LogQueueSize != 1024 {
		t.Errorf("default log queue = %d", cfg.Sim.LogQueueSize)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "core.yaml")
	data := `
log:
  level: debug
  file: /tmp/core.log
sim:
  instrument: ETHUSDT.BYBIT
  book_level: 3
  price_prec: 4
currencies:
  - code: DOGE
    precision: 8
    name: Dogecoin
    type: crypto
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Sim.Instrument != "ETHUSDT.BYBIT" {
		t.Errorf("instrument = %q", cfg.Sim.Instrument)
	}
	if cfg.Sim.BookLevel != 3 || cfg.Sim.PricePrec != 4 {
		t.Errorf("sim section = %+v", cfg.Sim)
	}
	// 未出现的字段保留缺省值
	if cfg.Sim.LogQueueSize != 1024 {
		t.Errorf("log queue = %d, want default 1024", cfg.Sim.LogQueueSize)
	}

	if err := cfg.RegisterCurrencies(); err != nil {
		t.Fatal(err)
	}
	doge, ok := types.CurrencyFromCode("DOGE")
	if !ok {
		t.Fatal("DOGE should be registered")
	}
	if doge.Precision != 8 || doge.Type != types.CurrencyTypeCrypto {
		t.Errorf("DOGE metadata = %+v", doge)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/core.yaml"); err == nil {
		t.Fatal("missing file should fail")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("log: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed yaml should fail")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("SIM_INSTRUMENT", "SOLUSDT.OKX")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("level = %q, want env override warn", cfg.Log.Level)
	}
	if cfg.Sim.Instrument != "SOLUSDT.OKX" {
		t.Errorf("instrument = %q, want env override", cfg.Sim.Instrument)
	}
}
