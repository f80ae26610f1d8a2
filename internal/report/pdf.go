// Package report renders a one-page-per-pallet PDF packing summary for an
// order result. It is deliberately a tabular summary, not the 3D
// visualizer: rendering a navigable 3D scene of placed boxes is out of
// scope (§1).
package report

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/palletopt/internal/engine"
	"github.com/piwi3910/palletopt/internal/model"
)

// Page layout constants (A4 portrait, mm).
const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	headerHeight = 10.0
	lineHeight   = 6.0
)

// WritePDF renders result as a multi-page PDF at path: a cover page with
// order-level stats, then one page per used pallet listing its items.
func WritePDF(path string, result model.OrderResult) error {
	if len(result.Pallets) == 0 {
		return fmt.Errorf("report: order %s has no pallets to render", result.OrderID)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginTop)

	pdf.AddPage()
	renderCoverPage(pdf, result)

	for _, p := range result.Pallets {
		pdf.AddPage()
		renderPalletPage(pdf, result.OrderID, p)
	}

	return pdf.OutputFileAndClose(path)
}

func renderCoverPage(pdf *fpdf.Fpdf, result model.OrderResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, fmt.Sprintf("Order %s", result.OrderID), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Items: %d placed / %d unplaced (%.1f%% placement rate)", result.ItemsPlaced(), result.ItemsUnplaced(), result.PlacementRate()),
		fmt.Sprintf("Product types: %d   Complexity: %s   Entropy: %.4f", result.ProductTypes, result.Complexity, result.Entropy),
		fmt.Sprintf("Pallets used: %d", len(result.Pallets)),
		fmt.Sprintf("Avg volume utilization: %.1f%%   Avg height utilization: %.1f%%", result.AvgVolumeUtilization()*100, result.AvgHeightUtilization()*100),
		fmt.Sprintf("Heterogeneity: %.4f   Compactness: %.4f", result.Heterogeneity, result.Compactness),
		fmt.Sprintf("Total weight: %.2f kg   Execution time: %.2f ms", result.TotalWeight(), result.ExecutionMs),
	}
	pdf.SetXY(marginLeft, marginTop+headerHeight+4)
	for _, line := range lines {
		pdf.CellFormat(pageWidth-marginLeft-marginRight, lineHeight, line, "", 1, "L", false, 0, "")
		pdf.SetX(marginLeft)
	}
}

func renderPalletPage(pdf *fpdf.Fpdf, orderID string, p model.PalletResult) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s — Pallet %d (%.0f x %.0f x %.0f mm)", orderID, p.PalletID, p.Dims.Length, p.Dims.Width, p.Dims.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	stats := fmt.Sprintf("Items: %d | Volume util: %.1f%% | Height util: %.1f%% | Weight: %.2f kg | Compactness: %.4f",
		len(p.Items), p.VolumeUtilization()*100, p.HeightUtilization()*100, p.Weight(), engine.ItemsCompactness(p.Items))
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, lineHeight, stats, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	y := marginTop + headerHeight + lineHeight + 4
	pdf.SetXY(marginLeft, y)
	headers := []string{"Item", "Product", "X", "Y", "Z", "L", "W", "H", "Rot"}
	widths := []float64{15, 35, 20, 20, 20, 20, 20, 20, 15}
	for i, h := range headers {
		pdf.CellFormat(widths[i], lineHeight, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, it := range p.Items {
		cl, cw, ch := it.CurrentExtents()
		row := []string{
			fmt.Sprintf("%d", it.ItemID),
			it.ProductID,
			fmt.Sprintf("%.0f", it.X),
			fmt.Sprintf("%.0f", it.Y),
			fmt.Sprintf("%.0f", it.Z),
			fmt.Sprintf("%.0f", cl),
			fmt.Sprintf("%.0f", cw),
			fmt.Sprintf("%.0f", ch),
			fmt.Sprintf("%v", it.Rotated),
		}
		pdf.SetX(marginLeft)
		for i, v := range row {
			pdf.CellFormat(widths[i], lineHeight, v, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
