// Package excel genera la hoja de receta en xlsx.
package excel

import (
	"fmt"
	"io"

	"clinic-medications/internal/domain/dosage"
	"clinic-medications/internal/domain/prescriptions"

	"github.com/xuri/excelize/v2"
)

const SheetName = "処方"

// Columnas: A nombre, B..G grilla de administración (6 franjas o 2),
// H resumen de dosis, I días, J efectos, K precauciones.
const (
	colName      = 1
	colGridFirst = 2
	gridWidth    = 6
	colSummary   = colGridFirst + gridWidth
	colDays      = colSummary + 1
	colEffects   = colDays + 1
	colNotes     = colEffects + 1
	lastCol      = colNotes
)

type Writer struct{}

func NewWriter() *Writer { return &Writer{} }

// WriteSheet escribe la hoja completa: título, tabla, fecha, aviso y clínica.
func (Writer) WriteSheet(w io.Writer, s prescriptions.Sheet) error {
	f := excelize.NewFile()
	defer f.Close()

	b, err := newBook(f)
	if err != nil {
		return err
	}

	b.set(1, colName, s.Title, b.bold)
	b.merge(1, colName, 1, lastCol)

	columns := s.Columns
	if len(columns) != len(prescriptions.Columns) {
		columns = prescriptions.Columns
	}

	row := 3
	headers := []struct {
		col  int
		span int
		text string
	}{
		{colName, 1, columns[0]},
		{colGridFirst, gridWidth, columns[1]},
		{colSummary, 1, columns[2]},
		{colDays, 1, columns[3]},
		{colEffects, 1, columns[4]},
		{colNotes, 1, columns[5]},
	}
	for _, h := range headers {
		style := b.header
		if h.col == colNotes {
			style = b.warnHeader
		}
		b.set(row, h.col, h.text, style)
		if h.span > 1 {
			b.merge(row, h.col, row, h.col+h.span-1)
		}
	}
	row++

	for _, r := range s.Rows {
		b.medicationRows(row, r.Medication.Name, r.Layout, r.Medication.Effects, r.Medication.Precautions)
		row += 2
	}

	row++
	b.set(row, colName, prescriptions.PrescribedLabel, 0)
	b.set(row, colGridFirst, s.PrescribedDate(), 0)
	row++
	b.set(row, colName, prescriptions.NoticeLabel, 0)
	row++
	b.set(row, colName, s.Clinic.Notice, b.warn)
	b.merge(row, colName, row, lastCol)

	row += 2
	for _, line := range []string{s.Clinic.Name, s.Clinic.Address, s.Clinic.Phone} {
		b.set(row, lastCol, line, b.right)
		row++
	}

	return b.write(w)
}

// WriteLayouts vuelca solo las tablas de administración (CLI render).
func (Writer) WriteLayouts(w io.Writer, layouts []dosage.TableLayout) error {
	f := excelize.NewFile()
	defer f.Close()

	b, err := newBook(f)
	if err != nil {
		return err
	}

	row := 1
	for _, l := range layouts {
		b.medicationRows(row, l.MedicationID, l, "", "")
		row += 2
	}
	return b.write(w)
}

type book struct {
	f *excelize.File

	bold, header, warnHeader, warn, right, wrap, gridValue int
	// estilo de encabezado de la grilla por combinación de bordes
	gridHeader map[dosage.Borders]int
}

func newBook(f *excelize.File) (*book, error) {
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, err
	}

	b := &book{f: f, gridHeader: map[dosage.Borders]int{}}
	styles := []struct {
		dst *int
		st  *excelize.Style
	}{
		{&b.bold, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}},
		{&b.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 9},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Border:    box(),
		}},
		{&b.warnHeader, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 9, Color: "EF4444"},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
			Border:    box(),
		}},
		{&b.warn, &excelize.Style{Font: &excelize.Font{Bold: true, Color: "EF4444"}}},
		{&b.right, &excelize.Style{Alignment: &excelize.Alignment{Horizontal: "right"}}},
		{&b.gridValue, &excelize.Style{
			Font:      &excelize.Font{Size: 9},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		}},
		{&b.wrap, &excelize.Style{
			Font:      &excelize.Font{Size: 9},
			Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
			Border:    box(),
		}},
	}
	for _, s := range styles {
		id, err := f.NewStyle(s.st)
		if err != nil {
			return nil, fmt.Errorf("excel style: %w", err)
		}
		*s.dst = id
	}

	widths := map[int]float64{colName: 18, colSummary: 14, colDays: 8, colEffects: 22, colNotes: 26}
	for i := 0; i < gridWidth; i++ {
		widths[colGridFirst+i] = 6
	}
	for col, width := range widths {
		name, _ := excelize.ColumnNumberToName(col)
		if err := f.SetColWidth(SheetName, name, name, width); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// medicationRows ocupa dos filas: encabezados de franja arriba y dosis abajo.
// El resto de las columnas se combina verticalmente.
func (b *book) medicationRows(row int, name string, l dosage.TableLayout, effects, notes string) {
	b.set(row, colName, name, b.wrap)
	b.merge(row, colName, row+1, colName)

	for i, c := range l.Columns {
		col := colGridFirst + i
		b.set(row, col, c.Header.Text, b.gridHeaderStyle(c.Header.Borders))
		b.set(row+1, col, c.Value.Text, b.gridValue)
	}

	summary := l.DosageSummary
	if l.TimingText != "" {
		summary += "\n" + l.TimingText
	}
	for _, c := range []struct {
		col  int
		text string
	}{
		{colSummary, summary},
		{colDays, l.DaysText},
		{colEffects, effects},
		{colNotes, notes},
	} {
		b.set(row, c.col, c.text, b.wrap)
		b.merge(row, c.col, row+1, c.col)
	}
}

func (b *book) gridHeaderStyle(br dosage.Borders) int {
	if id, ok := b.gridHeader[br]; ok {
		return id
	}
	var borders []excelize.Border
	if br.Right {
		borders = append(borders, excelize.Border{Type: "right", Color: "000000", Style: 1})
	}
	if br.Bottom {
		borders = append(borders, excelize.Border{Type: "bottom", Color: "000000", Style: 1})
	}
	id, err := b.f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 8},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		Border:    borders,
	})
	if err != nil {
		id = 0
	}
	b.gridHeader[br] = id
	return id
}

func (b *book) set(row, col int, v string, style int) {
	cell, _ := excelize.CoordinatesToCellName(col, row)
	_ = b.f.SetCellValue(SheetName, cell, v)
	if style != 0 {
		_ = b.f.SetCellStyle(SheetName, cell, cell, style)
	}
}

func (b *book) merge(r1, c1, r2, c2 int) {
	from, _ := excelize.CoordinatesToCellName(c1, r1)
	to, _ := excelize.CoordinatesToCellName(c2, r2)
	_ = b.f.MergeCell(SheetName, from, to)
}

func (b *book) write(w io.Writer) error {
	if err := b.f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

func box() []excelize.Border {
	sides := []string{"left", "top", "right", "bottom"}
	out := make([]excelize.Border, 0, len(sides))
	for _, s := range sides {
		out = append(out, excelize.Border{Type: s, Color: "000000", Style: 1})
	}
	return out
}
