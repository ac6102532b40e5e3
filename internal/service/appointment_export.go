package service

import (
	"bytes"
	"fmt"

	"github.com/RayuduBharani/meetocure-hs/internal/domain/entity"

	"github.com/xuri/excelize/v2"
)

const AppointmentSheet = "Appointments"

var AppointmentExportHeader = []string{
	"Appointment ID",
	"Date",
	"Time",
	"Status",
	"Type",
	"Patient",
	"Patient Phone",
	"Doctor",
	"Specialization",
	"Reason",
	"Amount",
	"Currency",
	"Payment Status",
}

var appointmentColumnWidths = []float64{38, 12, 8, 12, 10, 24, 16, 24, 20, 30, 10, 9, 15}

// ExportAppointments renders appointments as an xlsx workbook with one row per appointment.
func ExportAppointments(appointments []entity.Appointment) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(AppointmentSheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range AppointmentExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetCellValue(AppointmentSheet, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(AppointmentSheet, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetColWidth(AppointmentSheet, name, name, appointmentColumnWidths[col]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, a := range appointments {
		row := i + 2
		for col, value := range appointmentRow(&a) {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				f.Close()
				return nil, err
			}
			if err := f.SetCellValue(AppointmentSheet, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(AppointmentSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func appointmentRow(a *entity.Appointment) []interface{} {
	info := a.PatientInfo.Data()

	patientName, patientPhone := info.Name, info.Phone
	if a.Patient != nil {
		if patientName == "" {
			patientName = a.Patient.Name
		}
		if patientPhone == "" {
			patientPhone = a.Patient.Phone
		}
	}

	var doctorName, specialization string
	if a.Doctor != nil && a.Doctor.Verification != nil {
		doctorName = a.Doctor.Verification.Name
		specialization = a.Doctor.Verification.Specialization
	}

	return []interface{}{
		a.ID.String(),
		a.AppointmentDate.Format(entity.DateLayout),
		a.AppointmentTime,
		string(a.Status),
		a.AppointmentType,
		patientName,
		patientPhone,
		doctorName,
		specialization,
		a.Reason,
		a.Payment.Amount.InexactFloat64(),
		a.Payment.Currency,
		string(a.Payment.Status),
	}
}
