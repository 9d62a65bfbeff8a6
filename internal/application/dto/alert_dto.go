package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AlertResponse alerta con severidad calculada para presentación.
type AlertResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	ProductCode  string          `json:"product_code,omitempty"`
	ProductName  string          `json:"product_name,omitempty"`
	AreaID       string          `json:"area_id,omitempty"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	Percentage   decimal.Decimal `json:"percentage"`
	Critical     bool            `json:"critical"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	ResolvedAt   *time.Time      `json:"resolved_at,omitempty"`
	ResolvedBy   string          `json:"resolved_by,omitempty"`
}

// CloseAlertRequest body para resolver o ignorar una alerta.
type CloseAlertRequest struct {
	Notes string `json:"notes,omitempty"`
}
