package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validSettingsYAML = `
signals:
  STRONG_BUY:
    conditions:
      congress_buy: true
      wsb_sentiment_min: 0.6
    position_size: 0.10
    stop_loss: 0.15
    take_profit: 0.30
  MOMENTUM_BUY:
    conditions:
      wsb_mentions_growth: 1.0
    position_size: 0.075
    stop_loss: 0.20
    take_profit: 0.40
risk:
  max_position_size: 0.10
  max_portfolio_risk: 0.40
  stop_loss:
    default: 0.15
  take_profit:
    default: 0.30
  max_open_positions: 5
  min_liquidity: 1000000
schedule:
  market_open: "09:30"
  market_close: "16:00"
  signal_refresh_interval: 300
  min_time_between_trades: 900
data:
  wsb_sentiment_window: 24
  congress_trade_window: 7
  insider_trade_window: 30
  min_wsb_mentions: 10
  min_congress_trade_value: 50000
backtest:
  initial_capital: 10000
  commission_rate: 0.001
  slippage_rate: 0.001
  test_start_date: "2023-01-01"
  test_end_date: "2023-12-31"
`

func writeSettings(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write settings file: %v", err)
	}
	return path
}

func TestLoadValidYAML(t *testing.T) {
	s, err := Load(writeSettings(t, "settings.yaml", validSettingsYAML))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if len(s.Signals) != 2 {
		t.Fatalf("expected 2 signal rules, got %d", len(s.Signals))
	}
	strong, ok := s.Signals["STRONG_BUY"]
	if !ok {
		t.Fatal("expected STRONG_BUY rule")
	}
	if strong.PositionSize != 0.10 || strong.TakeProfit != 0.30 {
		t.Errorf("unexpected STRONG_BUY sizing: %+v", strong)
	}
	if strong.Conditions["congress_buy"] != true {
		t.Errorf("expected congress_buy condition, got %v", strong.Conditions)
	}
	if s.Risk.MaxOpenPositions != 5 {
		t.Errorf("expected 5 max open positions, got %d", s.Risk.MaxOpenPositions)
	}
	if s.Risk.StopLoss["default"] != 0.15 {
		t.Errorf("expected default stop loss 0.15, got %v", s.Risk.StopLoss)
	}
	if s.Schedule.MarketOpen != "09:30" {
		t.Errorf("expected market open 09:30, got %q", s.Schedule.MarketOpen)
	}
	if s.Data.CongressTradeDays != 7 {
		t.Errorf("expected 7-day congress window, got %d", s.Data.CongressTradeDays)
	}
	if s.Backtest.InitialCapital != 10000 {
		t.Errorf("expected initial capital 10000, got %v", s.Backtest.InitialCapital)
	}
}

func TestLoadValidJSON(t *testing.T) {
	contents := `{
		"signals": {"STRONG_BUY": {"conditions": {}, "position_size": 0.05, "stop_loss": 0.1, "take_profit": 0.2}},
		"risk": {"max_position_size": 0.10, "max_portfolio_risk": 0.40},
		"schedule": {"market_open": "09:30", "market_close": "16:00"}
	}`
	s, err := Load(writeSettings(t, "settings.json", contents))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if s.Signals["STRONG_BUY"].PositionSize != 0.05 {
		t.Errorf("unexpected position size: %+v", s.Signals["STRONG_BUY"])
	}
}

func TestLoadRejectsOversizedPosition(t *testing.T) {
	contents := strings.Replace(validSettingsYAML, "max_position_size: 0.10", "max_position_size: 0.25", 1)
	contents = strings.Replace(contents, "position_size: 0.10", "position_size: 0.22", 1)
	_, err := Load(writeSettings(t, "settings.yaml", contents))
	if err == nil || !strings.Contains(err.Error(), "max_position_size") {
		t.Fatalf("expected max_position_size error, got %v", err)
	}
}

func TestLoadRejectsOversizedPortfolioRisk(t *testing.T) {
	contents := strings.Replace(validSettingsYAML, "max_portfolio_risk: 0.40", "max_portfolio_risk: 0.60", 1)
	_, err := Load(writeSettings(t, "settings.yaml", contents))
	if err == nil || !strings.Contains(err.Error(), "max_portfolio_risk") {
		t.Fatalf("expected max_portfolio_risk error, got %v", err)
	}
}

func TestLoadRejectsSignalAbovePositionCap(t *testing.T) {
	contents := strings.Replace(validSettingsYAML, "position_size: 0.075", "position_size: 0.15", 1)
	_, err := Load(writeSettings(t, "settings.yaml", contents))
	if err == nil || !strings.Contains(err.Error(), "MOMENTUM_BUY") {
		t.Fatalf("expected MOMENTUM_BUY sizing error, got %v", err)
	}
}

func TestLoadRejectsBadScheduleTime(t *testing.T) {
	contents := strings.Replace(validSettingsYAML, `market_close: "16:00"`, `market_close: "4pm"`, 1)
	_, err := Load(writeSettings(t, "settings.yaml", contents))
	if err == nil || !strings.Contains(err.Error(), "market_close") {
		t.Fatalf("expected market_close error, got %v", err)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	_, err := Load(writeSettings(t, "settings.toml", validSettingsYAML))
	if err == nil {
		t.Fatal("expected error for unknown settings format")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing settings file")
	}
}
