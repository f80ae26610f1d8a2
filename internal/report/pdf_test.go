package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piwi3910/palletopt/internal/model"
)

func TestWritePDFProducesNonEmptyFile(t *testing.T) {
	result := model.OrderResult{
		OrderID:      "order-1",
		ItemCount:    1,
		ProductTypes: 1,
		Pallets: []model.PalletResult{
			{
				PalletID: 1,
				Dims:     model.DefaultPalletDimensions(),
				Items: []model.Item{
					{ProductID: "A", ItemID: 0, L: 100, W: 80, H: 150, Weight: 1},
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "order-1.pdf")
	err := WritePDF(path, result)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestWritePDFRejectsEmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	err := WritePDF(path, model.OrderResult{OrderID: "empty"})
	require.Error(t, err)
}
