// Package settings loads the static trade-sizing and risk rules. The values
// are inert configuration for a downstream signal consumer; nothing in this
// repository evaluates them beyond the range checks applied at load time.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	maxAllowedPositionSize  = 0.20
	maxAllowedPortfolioRisk = 0.50
)

// SignalRule describes one strategy's entry conditions and sizing.
type SignalRule struct {
	Conditions   map[string]any `json:"conditions" yaml:"conditions"`
	PositionSize float64        `json:"position_size" yaml:"position_size"`
	StopLoss     float64        `json:"stop_loss" yaml:"stop_loss"`
	TakeProfit   float64        `json:"take_profit" yaml:"take_profit"`
}

// RiskLimits caps exposure across the portfolio.
type RiskLimits struct {
	MaxPositionSize  float64            `json:"max_position_size" yaml:"max_position_size"`
	MaxPortfolioRisk float64            `json:"max_portfolio_risk" yaml:"max_portfolio_risk"`
	StopLoss         map[string]float64 `json:"stop_loss" yaml:"stop_loss"`
	TakeProfit       map[string]float64 `json:"take_profit" yaml:"take_profit"`
	MaxOpenPositions int                `json:"max_open_positions" yaml:"max_open_positions"`
	MinLiquidity     float64            `json:"min_liquidity" yaml:"min_liquidity"`
}

// Schedule holds market-hours and pacing values (times are EST, HH:MM).
type Schedule struct {
	MarketOpen              string `json:"market_open" yaml:"market_open"`
	MarketClose             string `json:"market_close" yaml:"market_close"`
	SignalRefreshSeconds    int64  `json:"signal_refresh_interval" yaml:"signal_refresh_interval"`
	MinSecondsBetweenTrades int64  `json:"min_time_between_trades" yaml:"min_time_between_trades"`
}

// DataWindows bounds how far back each dataset is considered.
type DataWindows struct {
	WSBSentimentHours     int     `json:"wsb_sentiment_window" yaml:"wsb_sentiment_window"`
	CongressTradeDays     int     `json:"congress_trade_window" yaml:"congress_trade_window"`
	InsiderTradeDays      int     `json:"insider_trade_window" yaml:"insider_trade_window"`
	MinWSBMentions        int     `json:"min_wsb_mentions" yaml:"min_wsb_mentions"`
	MinCongressTradeValue float64 `json:"min_congress_trade_value" yaml:"min_congress_trade_value"`
}

// Backtest holds parameters for offline strategy evaluation.
type Backtest struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	CommissionRate float64 `json:"commission_rate" yaml:"commission_rate"`
	SlippageRate   float64 `json:"slippage_rate" yaml:"slippage_rate"`
	TestStartDate  string  `json:"test_start_date" yaml:"test_start_date"`
	TestEndDate    string  `json:"test_end_date" yaml:"test_end_date"`
}

// Settings is the full strategy configuration file.
type Settings struct {
	Signals  map[string]SignalRule `json:"signals" yaml:"signals"`
	Risk     RiskLimits            `json:"risk" yaml:"risk"`
	Schedule Schedule              `json:"schedule" yaml:"schedule"`
	Data     DataWindows           `json:"data" yaml:"data"`
	Backtest Backtest              `json:"backtest" yaml:"backtest"`
}

// Load reads and validates the settings file (YAML or JSON by extension).
func Load(path string) (*Settings, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("settings file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open settings file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	s, err := parse(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func parse(data []byte, ext string) (*Settings, error) {
	var s Settings
	switch strings.ToLower(strings.TrimSpace(ext)) {
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decode yaml settings: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("decode json settings: %w", err)
		}
	default:
		return nil, errors.New("settings file format not recognized (expected YAML or JSON)")
	}
	return &s, nil
}

// Validate applies the one-time range checks the rules carry.
func (s *Settings) Validate() error {
	if s == nil {
		return errors.New("settings are nil")
	}

	if s.Risk.MaxPositionSize > maxAllowedPositionSize {
		return fmt.Errorf("max_position_size %.2f exceeds cap %.2f", s.Risk.MaxPositionSize, maxAllowedPositionSize)
	}
	if s.Risk.MaxPortfolioRisk > maxAllowedPortfolioRisk {
		return fmt.Errorf("max_portfolio_risk %.2f exceeds cap %.2f", s.Risk.MaxPortfolioRisk, maxAllowedPortfolioRisk)
	}

	for name, rule := range s.Signals {
		if rule.PositionSize <= 0 {
			return fmt.Errorf("signal %q: position_size must be positive", name)
		}
		if s.Risk.MaxPositionSize > 0 && rule.PositionSize > s.Risk.MaxPositionSize {
			return fmt.Errorf("signal %q: position_size %.3f exceeds max_position_size %.2f",
				name, rule.PositionSize, s.Risk.MaxPositionSize)
		}
	}

	for field, value := range map[string]string{
		"market_open":  s.Schedule.MarketOpen,
		"market_close": s.Schedule.MarketClose,
	} {
		if _, err := time.Parse("15:04", value); err != nil {
			return fmt.Errorf("invalid %s %q (expected HH:MM): %w", field, value, err)
		}
	}

	return nil
}
