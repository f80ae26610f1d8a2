package orderio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piwi3910/palletopt/internal/model"
)

func sampleResult() model.OrderResult {
	return model.OrderResult{
		OrderID:      "order-1",
		ItemCount:    2,
		ProductTypes: 1,
		Entropy:      0,
		Complexity:   model.ComplexityTrivial,
		Pallets: []model.PalletResult{
			{
				PalletID: 1,
				Dims:     model.DefaultPalletDimensions(),
				Items: []model.Item{
					{ProductID: "A", ItemID: 0, L: 100, W: 80, H: 150, Weight: 1, X: 0, Y: 0, Z: 0},
					{ProductID: "A", ItemID: 1, L: 100, W: 80, H: 150, Weight: 1, X: 100, Y: 0, Z: 0},
				},
			},
		},
		Heterogeneity: 1.0,
		Compactness:   0.5,
	}
}

func TestWriteSummaryFormatsRow(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSummary(&buf, "nsga2", []model.OrderResult{sampleResult()}, true)
	require.NoError(t, err)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "OrderId,Algorithm,"))
	require.Contains(t, out, "order-1,nsga2,2,1,0.0000,Trivial,1,2,0,")
}

func TestWriteDetailIncludesProductSummary(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDetail(&buf, []model.OrderResult{sampleResult()}, true)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "A(2)")
}

func TestWritePlacementsWithColor(t *testing.T) {
	var buf bytes.Buffer
	err := WritePlacements(&buf, []model.OrderResult{sampleResult()}, true, true)
	require.NoError(t, err)
	out := buf.String()
	require.Contains(t, out, "Color")
	require.Contains(t, out, "#")
}

func TestProductColorIsStable(t *testing.T) {
	a := ProductColor("widget-42")
	b := ProductColor("widget-42")
	require.Equal(t, a, b)
	require.Len(t, a, 7)
}

func TestProductColorVariesByID(t *testing.T) {
	a := ProductColor("widget-1")
	b := ProductColor("widget-2")
	require.NotEqual(t, a, b)
}
