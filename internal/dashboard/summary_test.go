package dashboard

import (
	"testing"

	"validapro-backend/internal/stock"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	rows := []stock.StockRow{
		{Quantity: 14, DaysRemaining: 30}, // só estoque baixo
		{Quantity: 15, DaysRemaining: 9},  // só vencendo em breve
		{Quantity: 100, DaysRemaining: 10},
		{Quantity: 5, DaysRemaining: -2}, // vencido conta como "vencendo"
	}

	s := Summarize(rows)
	assert.Equal(t, 4, s.TotalEntries)
	assert.Equal(t, 2, s.LowStock)
	assert.Equal(t, 2, s.ExpiringSoon)
}

func TestSummarizeBoundaries(t *testing.T) {
	// os limites são estritos: 15 unidades não é baixo, 10 dias não é breve
	s := Summarize([]stock.StockRow{{Quantity: LowStockThreshold, DaysRemaining: ExpiringSoonDays}})
	assert.Equal(t, 1, s.TotalEntries)
	assert.Zero(t, s.LowStock)
	assert.Zero(t, s.ExpiringSoon)

	s = Summarize([]stock.StockRow{{Quantity: LowStockThreshold - 1, DaysRemaining: ExpiringSoonDays - 1}})
	assert.Equal(t, 1, s.LowStock)
	assert.Equal(t, 1, s.ExpiringSoon)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalEntries)
	assert.Zero(t, s.LowStock)
	assert.Zero(t, s.ExpiringSoon)
}
