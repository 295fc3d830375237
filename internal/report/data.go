package report

import (
	"encoding/xml"
	"time"

	"fjacquet/expense-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Data is everything a rendered report shows.
type Data struct {
	XMLName        xml.Name                 `json:"-" xml:"expense_report"`
	ReportID       string                   `json:"report_id" xml:"report_id,attr"`
	GeneratedAt    time.Time                `json:"generated_at" xml:"generated_at"`
	Source         string                   `json:"source,omitempty" xml:"source,omitempty"`
	CurrencySymbol string                   `json:"currency_symbol" xml:"currency_symbol"`
	Threshold      decimal.Decimal          `json:"threshold" xml:"threshold"`
	TopN           int                      `json:"top_n" xml:"top_n"`
	Overview       models.Overview          `json:"overview" xml:"overview"`
	Categories     []models.CategorySummary `json:"category_summary" xml:"category_summary>category"`
	Monthly        []models.MonthlyTotal    `json:"monthly_breakdown" xml:"monthly_breakdown>month"`
	TopExpenses    []models.Record          `json:"top_expenses" xml:"top_expenses>expense"`
	Unusual        []models.UnusualExpense  `json:"unusual_expenses" xml:"unusual_expenses>expense"`
}

// NewData returns an empty report with a fresh ID and timestamp.
func NewData() *Data {
	return &Data{
		ReportID:       uuid.New().String(),
		GeneratedAt:    time.Now(),
		CurrencySymbol: "$",
		Threshold:      decimal.NewFromInt(2),
		TopN:           10,
		Categories:     []models.CategorySummary{},
		Monthly:        []models.MonthlyTotal{},
		TopExpenses:    []models.Record{},
		Unusual:        []models.UnusualExpense{},
	}
}
