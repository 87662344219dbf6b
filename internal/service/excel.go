package service

import (
	"fmt"
	"mime/multipart"
	"os"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// StudentRow is one line of the bulk-import/export sheet.
type StudentRow struct {
	Login        string
	Password     string
	FullName     string
	Department   string
	DepartmentID int
	GroupName    string
	Phone        string
	Email        string
}

var studentHeaders = []string{"Login", "Password", "Full Name", "Department ID", "Group", "Phone", "Email"}

// ReadStudentsFromExcel parses an uploaded workbook. The first row is the
// header and is skipped.
func ReadStudentsFromExcel(file *multipart.FileHeader) ([]StudentRow, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}

	var students []StudentRow

	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) == 0 || row[0] == "" {
			continue
		}

		var s StudentRow
		s.Login = cell(row, 0)
		s.Password = cell(row, 1)
		s.FullName = cell(row, 2)
		if id, err := strconv.Atoi(cell(row, 3)); err == nil {
			s.DepartmentID = id
		}
		s.GroupName = cell(row, 4)
		s.Phone = cell(row, 5)
		s.Email = cell(row, 6)

		students = append(students, s)
	}

	return students, nil
}

// WriteStudentsToExcel writes the student list into fileName under the
// statics directory, replacing any previous export.
func WriteStudentsToExcel(students []StudentRow, fileName string) error {
	if err := os.MkdirAll(baseDir, os.ModePerm); err != nil {
		return err
	}

	f := excelize.NewFile()
	sheet := "Students"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Login", "Full Name", "Department", "Group", "Phone", "Email"}
	for i, header := range headers {
		cellName := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cellName, header)
	}

	for i, s := range students {
		rowNum := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), s.Login)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), s.FullName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), s.Department)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), s.GroupName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), s.Phone)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), s.Email)
	}

	if err := f.SaveAs(fmt.Sprintf("%s/%s", baseDir, fileName)); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// ImportTemplate writes an empty sheet with the expected import headers.
func ImportTemplate(fileName string) error {
	if err := os.MkdirAll(baseDir, os.ModePerm); err != nil {
		return err
	}

	f := excelize.NewFile()
	sheet := "Students"
	f.SetSheetName("Sheet1", sheet)

	for i, header := range studentHeaders {
		cellName := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheet, cellName, header)
	}

	if err := f.SaveAs(fmt.Sprintf("%s/%s", baseDir, fileName)); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
