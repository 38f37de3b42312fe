// README: Export service, renders a user's rides as an xlsx workbook.
package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"getdriven/internal/modules/ride"
)

const sheetName = "Ritten"

// RideSource lists rides for a user, optionally restricted to a month prefix.
type RideSource interface {
	List(ctx context.Context, userID, monthPrefix string) ([]ride.Ride, error)
}

type Service struct {
	rides RideSource
}

func NewService(rides RideSource) *Service {
	return &Service{rides: rides}
}

var headers = []string{
	"Datum", "Klant", "Merk", "Model", "Start", "Eind",
	"Uren", "Normaal", "Overuren", "Nachturen",
	"Bruto", "WWV", "Sociale lasten", "Extra kosten", "Bruto totaal", "Netto",
	"Notities",
}

// Workbook builds an xlsx export of the user's rides, newest first, and
// returns the file name and the serialized workbook.
func (s *Service) Workbook(ctx context.Context, userID, monthPrefix string) (string, *bytes.Buffer, error) {
	rides, err := s.rides.List(ctx, userID, monthPrefix)
	if err != nil {
		return "", nil, fmt.Errorf("export: list rides: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", nil, fmt.Errorf("export: new sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for row, r := range rides {
		values := []any{
			r.Date, r.ClientName, r.CarBrand, r.CarModel, r.StartTime, r.EndTime,
			r.TotalHours, r.NormalHours, r.OvertimeHours, r.NightHours,
			r.GrossPay, r.WWVAmount, r.SocialContribution, r.ExtraCosts, r.GrossTotal, r.NetPay,
			r.Notes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", nil, fmt.Errorf("export: write workbook: %w", err)
	}

	name := fmt.Sprintf("ritten_%s.xlsx", time.Now().Format("20060102_150405"))
	if monthPrefix != "" {
		name = fmt.Sprintf("ritten_%s.xlsx", monthPrefix)
	}
	return name, buf, nil
}
