package model

import (
	"time"
)

// TradeDirection indicates whether a trade was long or short
type TradeDirection string

const (
	DirectionBuy  TradeDirection = "Buy"
	DirectionSell TradeDirection = "Sell"
)

// TradeResult classifies a closed trade's outcome
type TradeResult string

const (
	ResultWin       TradeResult = "Win"
	ResultLoss      TradeResult = "Loss"
	ResultBreakeven TradeResult = "Breakeven"
)

// ClosedTrade represents a trade with a recorded result and exit date.
// Only closed trades participate in analytics; open positions never reach
// this service.
type ClosedTrade struct {
	ID              int            `json:"id" db:"id"`
	AccountID       int            `json:"account_id" db:"account_id"`
	PlaybookID      int            `json:"playbook_id" db:"playbook_id"`
	PlaybookSetupID *int           `json:"playbook_setup_id,omitempty" db:"playbook_setup_id"`
	Asset           string         `json:"asset" db:"asset"`
	Direction       TradeDirection `json:"direction" db:"direction"`
	EntryPrice      float64        `json:"entry_price" db:"entry_price"`
	ExitPrice       float64        `json:"exit_price" db:"exit_price"`
	EntryDate       time.Time      `json:"entry_date" db:"entry_date"`
	ExitDate        time.Time      `json:"exit_date" db:"exit_date"`
	ProfitLoss      float64        `json:"profit_loss" db:"profit_loss"`
	Commission      float64        `json:"commission" db:"commission"`
	Swap            float64        `json:"swap" db:"swap"`
	Result          TradeResult    `json:"result" db:"result"`
}

// AssetSpec describes how to normalize price deltas for an instrument
type AssetSpec struct {
	Symbol        string  `json:"symbol" db:"symbol"`
	PipSize       float64 `json:"pip_size" db:"pip_size"`
	LotSize       float64 `json:"lot_size" db:"lot_size"`
	ValuePerPoint float64 `json:"value_per_point" db:"value_per_point"`
}
