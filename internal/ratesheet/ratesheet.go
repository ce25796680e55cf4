// Package ratesheet renders the printable price list of a season.
package ratesheet

import (
	"fmt"
	"io"

	"github.com/signintech/gopdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// A4 layout, millimetres.
const (
	pageWidth  = 210.0
	pageHeight = 297.0
	marginX    = 18.0
	marginTop  = 20.0
	pageBottom = pageHeight - 20.0
	rowHeight  = 8.0
	tableWidth = pageWidth - 2*marginX
)

var columnWidths = [...]float64{78, 30, 30, tableWidth - 138}

const (
	fontRegular = "go"
	fontBold    = "go-bold"
)

// Row is one week of the table, already formatted for display.
type Row struct {
	Period   string
	Price    string
	Status   string
	Holidays string
}

// Sheet is the document content.
type Sheet struct {
	Brand    string
	Title    string
	Subtitle string
	Headers  [4]string
	Rows     []Row
	Empty    string // shown when Rows is empty
	Footer   string
}

type writer struct {
	pdf *gopdf.GoPdf
	y   float64
}

// Render writes sheet as an A4 PDF to w.
func Render(w io.Writer, sheet Sheet) error {
	p := &gopdf.GoPdf{}
	p.Start(gopdf.Config{
		PageSize: gopdf.Rect{W: pageWidth, H: pageHeight},
		Unit:     gopdf.UnitMM,
	})
	if err := p.AddTTFFontData(fontRegular, goregular.TTF); err != nil {
		return fmt.Errorf("ratesheet: load font: %w", err)
	}
	if err := p.AddTTFFontData(fontBold, gobold.TTF); err != nil {
		return fmt.Errorf("ratesheet: load font: %w", err)
	}

	wr := &writer{pdf: p}
	if err := wr.header(sheet); err != nil {
		return err
	}
	if len(sheet.Rows) == 0 {
		if err := wr.text(fontRegular, 11, marginX, sheet.Empty); err != nil {
			return err
		}
		wr.y += rowHeight
	}
	for i, row := range sheet.Rows {
		if wr.y+rowHeight > pageBottom {
			if err := wr.header(sheet); err != nil {
				return err
			}
		}
		if i%2 == 1 {
			p.SetFillColor(241, 245, 249)
			if err := p.Rectangle(marginX, wr.y, marginX+tableWidth, wr.y+rowHeight, "F", 0, 0); err != nil {
				return fmt.Errorf("ratesheet: draw row: %w", err)
			}
		}
		if err := wr.cells(fontRegular, [4]string{row.Period, row.Price, row.Status, row.Holidays}); err != nil {
			return err
		}
	}
	if sheet.Footer != "" {
		wr.y += rowHeight
		p.SetTextColor(100, 116, 139)
		if err := wr.text(fontRegular, 9, marginX, sheet.Footer); err != nil {
			return err
		}
	}
	if _, err := p.WriteTo(w); err != nil {
		return fmt.Errorf("ratesheet: write pdf: %w", err)
	}
	return nil
}

// header starts a page with the title block and column headers.
func (w *writer) header(sheet Sheet) error {
	w.pdf.AddPage()
	w.y = marginTop
	w.pdf.SetTextColor(15, 23, 42)
	if err := w.text(fontBold, 20, marginX, sheet.Brand); err != nil {
		return err
	}
	w.y += 10
	if err := w.text(fontBold, 14, marginX, sheet.Title); err != nil {
		return err
	}
	w.y += 7
	if sheet.Subtitle != "" {
		w.pdf.SetTextColor(71, 85, 105)
		if err := w.text(fontRegular, 10, marginX, sheet.Subtitle); err != nil {
			return err
		}
		w.y += 6
	}
	w.y += 4
	w.pdf.SetTextColor(15, 23, 42)
	if err := w.cells(fontBold, sheet.Headers); err != nil {
		return err
	}
	w.pdf.SetLineWidth(0.3)
	w.pdf.SetStrokeColor(148, 163, 184)
	w.pdf.Line(marginX, w.y, marginX+tableWidth, w.y)
	return nil
}

func (w *writer) cells(font string, values [4]string) error {
	x := marginX
	for i, v := range values {
		if err := w.pdf.SetFont(font, "", 10); err != nil {
			return fmt.Errorf("ratesheet: set font: %w", err)
		}
		w.pdf.SetXY(x+2, w.y+2)
		if err := w.pdf.CellWithOption(&gopdf.Rect{W: columnWidths[i] - 4, H: rowHeight - 2}, v, gopdf.CellOption{Align: gopdf.Left | gopdf.Top}); err != nil {
			return fmt.Errorf("ratesheet: write cell: %w", err)
		}
		x += columnWidths[i]
	}
	w.y += rowHeight
	return nil
}

func (w *writer) text(font string, size int, x float64, s string) error {
	if err := w.pdf.SetFont(font, "", size); err != nil {
		return fmt.Errorf("ratesheet: set font: %w", err)
	}
	w.pdf.SetXY(x, w.y)
	if err := w.pdf.Cell(nil, s); err != nil {
		return fmt.Errorf("ratesheet: write text: %w", err)
	}
	return nil
}
