package main

import (
	"fmt"
	"github.com/xuri/excelize/v2"
)

const reportCardSheet = "Report Card"

type ReportCardExporterInterface interface {
	Export(path string, student Student, reportCard ReportCard) error
}

type ReportCardExporter struct{}

func (exporter ReportCardExporter) Export(path string, student Student, reportCard ReportCard) (err error) {
	file := excelize.NewFile()
	defer func() {
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
	}()

	if err = file.SetSheetName("Sheet1", reportCardSheet); err != nil {
		return err
	}

	stats := makeGradeStats(&reportCard)
	rows := [][]interface{}{
		{"Student", student.Name},
		{"Section", student.Section},
		{},
		{"Subject", "Grade", "Status", "Date Assigned"},
	}
	for _, grade := range reportCard.Grades {
		rows = append(rows, []interface{}{
			grade.Subject.Name, grade.GradeValue, gradeStatus(grade), orDefault(grade.DateAssigned, "N/A"),
		})
	}
	rows = append(
		rows,
		[]interface{}{},
		[]interface{}{"Average Grade", reportCard.AverageGrade},
		[]interface{}{"Subjects Passed", fmt.Sprintf("%d/%d", stats.PassedGrades, stats.TotalGrades)},
		[]interface{}{"Pass Rate", fmt.Sprintf("%d%%", stats.PassPercentage)},
		[]interface{}{"Overall Status", stats.OverallStatus},
	)

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}

		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}

		if err = file.SetSheetRow(reportCardSheet, cell, &row); err != nil {
			return err
		}
	}

	return file.SaveAs(path)
}
