package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventory-ledger-api/internal/application/report"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/repository"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "999,90", formatMoney(decimal.RequireFromString("999.9")))
	assert.Equal(t, "1.000,00", formatMoney(decimal.NewFromInt(1000)))
	assert.Equal(t, "1.234.567,50", formatMoney(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "-25.000,00", formatMoney(decimal.NewFromInt(-25000)))
}

func TestRenderInventoryReport_GeneraPDF(t *testing.T) {
	g := NewMarotoPDFGenerator("Bodega Central")
	r := &report.InventoryReport{
		Lines: []repository.InventoryLine{{
			ProductID: 1, Name: "Tornillo", Quantity: 3,
			Price: decimal.RequireFromString("10.5"), Value: decimal.RequireFromString("31.5"),
		}},
		Total:       decimal.RequireFromString("31.5"),
		GeneratedAt: time.Now(),
	}

	out, err := g.RenderInventoryReport(context.Background(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderInventoryReport_Nil(t *testing.T) {
	_, err := NewMarotoPDFGenerator("").RenderInventoryReport(context.Background(), nil)
	require.Error(t, err)
}
