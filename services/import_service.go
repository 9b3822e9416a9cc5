package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"classtrack_go/database"
	"classtrack_go/models"
	"classtrack_go/utils"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// fixed leading columns; every remaining header is a subject name with a
// 1/0 enrollment flag
var importHeaders = []string{"Full Name", "Parent Phone", "Student Phone", "Batch Year"}

// ImportService bulk-creates students from CSV or Excel uploads
type ImportService struct{}

func NewImportService() *ImportService {
	return &ImportService{}
}

type importRow struct {
	line         int
	fullName     string
	parentPhone  string
	studentPhone string
	batchYear    int
	subjectNames []string
}

// ImportStudents parses the uploaded file and creates one student per valid
// row. Bad rows are collected as errors; good rows are still imported.
func (s *ImportService) ImportStudents(file *multipart.FileHeader) (*utils.ImportResultDto, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".csv":
		rows, err = readCSV(file)
	case ".xlsx":
		rows, err = readXLSX(file)
	default:
		return nil, validationf("unsupported file type %q, expected .csv or .xlsx", filepath.Ext(file.Filename))
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, validationf("file is empty")
	}

	subjectColumns, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	result := &utils.ImportResultDto{
		Errors:           []string{},
		ImportedStudents: []utils.StudentDto{},
	}

	for i, row := range rows[1:] {
		line := i + 2 // 1-based, after the header
		result.TotalRows++

		parsed, err := parseRow(line, row, subjectColumns)
		if err != nil {
			result.FailedImports++
			result.Errors = append(result.Errors, importErrorMessage(err))
			continue
		}

		dto, err := s.createFromRow(parsed)
		if err != nil {
			result.FailedImports++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", line, importErrorMessage(err)))
			continue
		}

		result.SuccessfulImports++
		result.ImportedStudents = append(result.ImportedStudents, *dto)
	}

	return result, nil
}

func readCSV(file *multipart.FileHeader) ([][]string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, validationf("malformed CSV: %v", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

func readXLSX(file *multipart.FileHeader) ([][]string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	workbook, err := excelize.OpenReader(src)
	if err != nil {
		return nil, validationf("malformed Excel file: %v", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, validationf("Excel file has no sheets")
	}
	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// parseHeader validates the fixed columns and returns subject column names in
// file order.
func parseHeader(header []string) ([]string, error) {
	if len(header) < len(importHeaders) {
		return nil, validationf("header must start with %s", strings.Join(importHeaders, ", "))
	}
	for i, want := range importHeaders {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return nil, validationf("header column %d must be %q, got %q", i+1, want, strings.TrimSpace(header[i]))
		}
	}

	subjects := make([]string, 0, len(header)-len(importHeaders))
	for _, cell := range header[len(importHeaders):] {
		name := strings.TrimSpace(cell)
		if name == "" {
			continue
		}
		subjects = append(subjects, name)
	}
	if len(subjects) == 0 {
		return nil, validationf("header has no subject columns")
	}
	return subjects, nil
}

func parseRow(line int, row []string, subjectColumns []string) (*importRow, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	fullName := cell(0)
	if fullName == "" {
		return nil, validationf("Row %d: full name is required", line)
	}

	parentPhone := utils.StripNonDigits(cell(1))
	if !utils.IsValidPhoneNumber(parentPhone) {
		return nil, validationf("Row %d: invalid parent phone number %q", line, cell(1))
	}
	studentPhone := utils.StripNonDigits(cell(2))
	if studentPhone != "" && !utils.IsValidPhoneNumber(studentPhone) {
		return nil, validationf("Row %d: invalid student phone number %q", line, cell(2))
	}

	batchYear, err := parseIntCell(cell(3))
	if err != nil {
		return nil, validationf("Row %d: invalid batch year %q", line, cell(3))
	}

	var subjectNames []string
	for i, name := range subjectColumns {
		enrolled, err := parseFlagCell(cell(len(importHeaders) + i))
		if err != nil {
			return nil, validationf("Row %d: invalid value %q for subject %s, expected 1 or 0",
				line, cell(len(importHeaders)+i), name)
		}
		if enrolled {
			subjectNames = append(subjectNames, name)
		}
	}
	if len(subjectNames) == 0 {
		return nil, validationf("Row %d: student must be enrolled in at least one subject", line)
	}

	return &importRow{
		line:         line,
		fullName:     fullName,
		parentPhone:  parentPhone,
		studentPhone: studentPhone,
		batchYear:    batchYear,
		subjectNames: subjectNames,
	}, nil
}

// parseIntCell tolerates the "2024.0" shape numeric Excel cells come in as
func parseIntCell(value string) (int, error) {
	if n, err := strconv.Atoi(value); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer: %q", value)
	}
	return int(f), nil
}

func parseFlagCell(value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	n, err := parseIntCell(value)
	if err != nil || (n != 0 && n != 1) {
		return false, fmt.Errorf("not a 0/1 flag: %q", value)
	}
	return n == 1, nil
}

func (s *ImportService) createFromRow(row *importRow) (*utils.StudentDto, error) {
	var created models.Student
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var batch models.Batch
		err := tx.Where("batch_year = ?", row.batchYear).First(&batch).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("batch %d not found", row.batchYear)
		}
		if err != nil {
			return err
		}

		var subjects []models.Subject
		if err := tx.Where("name IN ?", row.subjectNames).Find(&subjects).Error; err != nil {
			return err
		}
		if len(subjects) != len(row.subjectNames) {
			found := make(map[string]struct{}, len(subjects))
			for _, sub := range subjects {
				found[sub.Name] = struct{}{}
			}
			for _, name := range row.subjectNames {
				if _, ok := found[name]; !ok {
					return notFoundf("subject %q not found", name)
				}
			}
		}

		code, index, err := generateStudentCodes(tx)
		if err != nil {
			return err
		}

		created = models.Student{
			StudentIDCode: code,
			IndexNumber:   index,
			FullName:      row.fullName,
			ParentPhone:   row.parentPhone,
			StudentPhone:  row.studentPhone,
			Active:        true,
			BatchID:       batch.ID,
			Subjects:      subjects,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	var loaded models.Student
	err = database.DB.Preload("Batch").Preload("Subjects").
		First(&loaded, "id = ?", created.ID).Error
	if err != nil {
		return nil, err
	}
	dto := utils.ToStudentDto(loaded)
	return &dto, nil
}

// importErrorMessage strips the sentinel suffix for row-level error strings
func importErrorMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{ErrNotFound, ErrDuplicate, ErrInvalidState, ErrValidation} {
		msg = strings.TrimSuffix(msg, ": "+sentinel.Error())
	}
	return msg
}

// GenerateCsvTemplate builds a downloadable CSV with the expected headers,
// one column per existing subject, and a few sample rows.
func (s *ImportService) GenerateCsvTemplate() ([]byte, error) {
	header, samples, err := templateRows()
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(header); err != nil {
		return nil, err
	}
	for _, row := range samples {
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GenerateExcelTemplate is the same template as an .xlsx workbook
func (s *ImportService) GenerateExcelTemplate() ([]byte, error) {
	header, samples, err := templateRows()
	if err != nil {
		return nil, err
	}

	workbook := excelize.NewFile()
	defer workbook.Close()

	const sheet = "Student Import"
	index, err := workbook.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	workbook.SetActiveSheet(index)
	if err := workbook.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := workbook.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}

	for col, value := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := workbook.SetCellValue(sheet, cell, value); err != nil {
			return nil, err
		}
	}
	endCell, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, err
	}
	if err := workbook.SetCellStyle(sheet, "A1", endCell, headerStyle); err != nil {
		return nil, err
	}

	for r, row := range samples {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := workbook.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := workbook.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// templateRows assembles the header (fixed columns plus the current subject
// list) and sample rows demonstrating the enrollment flags.
func templateRows() ([]string, [][]string, error) {
	var subjects []models.Subject
	if err := database.DB.Order("name").Find(&subjects).Error; err != nil {
		return nil, nil, err
	}

	header := append([]string{}, importHeaders...)
	for _, subject := range subjects {
		header = append(header, subject.Name)
	}

	flags := func(enrolled ...string) []string {
		set := make(map[string]struct{}, len(enrolled))
		for _, name := range enrolled {
			set[name] = struct{}{}
		}
		out := make([]string, 0, len(subjects))
		for _, subject := range subjects {
			if _, ok := set[subject.Name]; ok {
				out = append(out, "1")
			} else {
				out = append(out, "0")
			}
		}
		return out
	}

	samples := [][]string{
		append([]string{"John Doe", "0771234567", "0712345678", "2024"}, flags("Mathematics", "Physics")...),
		append([]string{"Jane Smith", "0773456789", "", "2024"}, flags("Chemistry")...),
		append([]string{"Bob Johnson", "0114567890", "0779876543", "2025"}, flags("Mathematics", "Chemistry", "Physics")...),
	}
	return header, samples, nil
}
