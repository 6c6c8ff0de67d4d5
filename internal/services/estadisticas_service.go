package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"smartrent_backend/internal/repositories"
	"smartrent_backend/pkg/apperrors"
)

// ResumenArriendos is the platform-wide rental summary.
type ResumenArriendos struct {
	Published    int64 `json:"published"`
	Drafts       int64 `json:"drafts"`
	Paused       int64 `json:"paused"`
	Archived     int64 `json:"archived"`
	Reservations int64 `json:"reservations"`
	Views        int64 `json:"views"`
}

// rows returns the summary as ordered label/value pairs, shared by the
// PDF and the Excel export.
func (r *ResumenArriendos) rows() [][2]string {
	return [][2]string{
		{"published", fmt.Sprintf("%d", r.Published)},
		{"drafts", fmt.Sprintf("%d", r.Drafts)},
		{"paused", fmt.Sprintf("%d", r.Paused)},
		{"archived", fmt.Sprintf("%d", r.Archived)},
		{"reservations", fmt.Sprintf("%d", r.Reservations)},
		{"views", fmt.Sprintf("%d", r.Views)},
	}
}

type EstadisticasService interface {
	Resumen(ctx context.Context) (*ResumenArriendos, error)
	ExportPDF(ctx context.Context) ([]byte, error)
	ExportExcel(ctx context.Context) ([]byte, error)
}

type EstadisticasServiceImpl struct {
	properties   repositories.PropertyRepository
	reservations repositories.ReservationRepository
}

func NewEstadisticasService(
	properties repositories.PropertyRepository,
	reservations repositories.ReservationRepository,
) EstadisticasService {
	return &EstadisticasServiceImpl{properties: properties, reservations: reservations}
}

func (s *EstadisticasServiceImpl) Resumen(ctx context.Context) (*ResumenArriendos, error) {
	metrics, err := s.properties.GlobalMetrics()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	reservations, err := s.reservations.CountAll()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &ResumenArriendos{
		Published:    metrics.Published,
		Drafts:       metrics.Draft,
		Paused:       metrics.Paused,
		Archived:     metrics.Archived,
		Reservations: reservations,
		Views:        metrics.Visitas,
	}, nil
}

func (s *EstadisticasServiceImpl) ExportPDF(ctx context.Context) ([]byte, error) {
	resumen, err := s.Resumen(ctx)
	if err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252, so accented strings go through the
	// translator.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr("Reporte de Estadísticas - SmartRent+"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 14)
	for _, row := range resumen.rows() {
		pdf.CellFormat(0, 9, fmt.Sprintf("%s: %s", row[0], row[1]), "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8,
		tr(fmt.Sprintf("Generado automáticamente · %s", time.Now().Format("02-01-2006 15:04:05"))),
		"", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buf.Bytes(), nil
}

func (s *EstadisticasServiceImpl) ExportExcel(ctx context.Context) ([]byte, error) {
	resumen, err := s.Resumen(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Estadísticas"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(sheet, "A1", "Indicador")
	f.SetCellValue(sheet, "B1", "Valor")
	f.SetColWidth(sheet, "A", "A", 25)
	f.SetColWidth(sheet, "B", "B", 15)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err == nil {
		f.SetCellStyle(sheet, "A1", "B1", headerStyle)
	}

	for i, row := range resumen.rows() {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+2), row[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+2), row[1])
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return buf.Bytes(), nil
}
