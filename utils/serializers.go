package utils

import (
	"time"

	"classtrack_go/models"
)

// Compact representations used across APIs

type BatchDto struct {
	ID        uint `json:"id"`
	BatchYear int  `json:"batchYear"`
}

type SubjectDto struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type StudentDto struct {
	ID            string       `json:"id"`
	StudentIDCode string       `json:"studentIdCode"`
	IndexNumber   string       `json:"indexNumber"`
	FullName      string       `json:"fullName"`
	ParentPhone   string       `json:"parentPhone"`
	StudentPhone  string       `json:"studentPhone,omitempty"`
	Active        bool         `json:"active"`
	Batch         BatchDto     `json:"batch"`
	Subjects      []SubjectDto `json:"subjects"`
}

type PresentStudentDto struct {
	ID            string    `json:"id"`
	StudentIDCode string    `json:"studentIdCode"`
	FullName      string    `json:"fullName"`
	CheckInTime   time.Time `json:"checkInTime"`
}

type AttendanceReportDto struct {
	PresentStudents []PresentStudentDto `json:"presentStudents"`
	AbsentStudents  []StudentDto        `json:"absentStudents"`
}

type AttendanceSessionDto struct {
	ID          uint      `json:"id"`
	BatchID     uint      `json:"batchId"`
	BatchYear   int       `json:"batchYear"`
	SubjectID   uint      `json:"subjectId"`
	SubjectName string    `json:"subjectName"`
	SessionDate string    `json:"sessionDate"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

type FeeRecordDto struct {
	ID          uint    `json:"id"`
	StudentID   string  `json:"studentId"`
	StudentName string  `json:"studentName"`
	AmountDue   float64 `json:"amountDue"`
	AmountPaid  float64 `json:"amountPaid"`
	DueDate     string  `json:"dueDate"`
	Status      string  `json:"status"`
	Description string  `json:"description,omitempty"`
}

type ImportResultDto struct {
	TotalRows         int          `json:"totalRows"`
	SuccessfulImports int          `json:"successfulImports"`
	FailedImports     int          `json:"failedImports"`
	Errors            []string     `json:"errors"`
	ImportedStudents  []StudentDto `json:"importedStudents"`
}

func ToBatchDto(b models.Batch) BatchDto {
	return BatchDto{ID: b.ID, BatchYear: b.BatchYear}
}

func ToSubjectDto(s models.Subject) SubjectDto {
	return SubjectDto{ID: s.ID, Name: s.Name}
}

// ToStudentDto maps a student with preloaded Batch and Subjects
func ToStudentDto(s models.Student) StudentDto {
	subjects := make([]SubjectDto, 0, len(s.Subjects))
	for _, sub := range s.Subjects {
		subjects = append(subjects, ToSubjectDto(sub))
	}
	return StudentDto{
		ID:            s.ID,
		StudentIDCode: s.StudentIDCode,
		IndexNumber:   s.IndexNumber,
		FullName:      s.FullName,
		ParentPhone:   s.ParentPhone,
		StudentPhone:  s.StudentPhone,
		Active:        s.Active,
		Batch:         ToBatchDto(s.Batch),
		Subjects:      subjects,
	}
}

func ToStudentDtos(students []models.Student) []StudentDto {
	dtos := make([]StudentDto, 0, len(students))
	for _, s := range students {
		dtos = append(dtos, ToStudentDto(s))
	}
	return dtos
}

// ToSessionDto maps a session with preloaded Batch and Subject
func ToSessionDto(s models.AttendanceSession) AttendanceSessionDto {
	return AttendanceSessionDto{
		ID:          s.ID,
		BatchID:     s.BatchID,
		BatchYear:   s.Batch.BatchYear,
		SubjectID:   s.SubjectID,
		SubjectName: s.Subject.Name,
		SessionDate: s.SessionDate.Format("2006-01-02"),
		Active:      s.Active,
		CreatedAt:   s.CreatedAt,
	}
}

// ToFeeRecordDto maps a fee record with preloaded Student
func ToFeeRecordDto(f models.FeeRecord) FeeRecordDto {
	return FeeRecordDto{
		ID:          f.ID,
		StudentID:   f.StudentID,
		StudentName: f.Student.FullName,
		AmountDue:   f.AmountDue,
		AmountPaid:  f.AmountPaid,
		DueDate:     f.DueDate.Format("2006-01-02"),
		Status:      f.Status,
		Description: f.Description,
	}
}
