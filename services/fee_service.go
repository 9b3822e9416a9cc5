package services

import (
	"errors"
	"time"

	"classtrack_go/database"
	"classtrack_go/models"
	"classtrack_go/utils"

	"gorm.io/gorm"
)

// FeeService manages fee records and payment status transitions
type FeeService struct{}

func NewFeeService() *FeeService {
	return &FeeService{}
}

type CreateFeeRecordRequest struct {
	StudentID   string  `json:"studentId" validate:"required"`
	Description string  `json:"description" validate:"required,max=255"`
	AmountDue   float64 `json:"amountDue" validate:"required,gt=0"`
	DueDate     string  `json:"dueDate" validate:"required,datetime=2006-01-02"`
}

type UpdatePaymentRequest struct {
	AmountPaid float64 `json:"amountPaid" validate:"gte=0"`
}

// PaymentStatus derives the status from the amounts alone. The overdue
// promotion is time-dependent and lives in the reminder sweep instead.
func PaymentStatus(amountDue, amountPaid float64) string {
	switch {
	case amountPaid <= 0:
		return models.FeeStatusDue
	case amountPaid < amountDue:
		return models.FeeStatusPartiallyPaid
	default:
		return models.FeeStatusPaid
	}
}

// CreateFeeRecord opens a new fee for a student with nothing paid yet
func (s *FeeService) CreateFeeRecord(req CreateFeeRecordRequest) (*utils.FeeRecordDto, error) {
	dueDate, err := time.ParseInLocation("2006-01-02", req.DueDate, time.UTC)
	if err != nil {
		return nil, validationf("invalid due date %q, expected YYYY-MM-DD", req.DueDate)
	}

	var student models.Student
	if err := database.DB.First(&student, "id = ?", req.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("student not found with ID %s", req.StudentID)
		}
		return nil, err
	}

	record := models.FeeRecord{
		StudentID:   student.ID,
		Description: req.Description,
		AmountDue:   req.AmountDue,
		AmountPaid:  0,
		DueDate:     dueDate,
		Status:      models.FeeStatusDue,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		return nil, err
	}
	record.Student = student
	dto := utils.ToFeeRecordDto(record)
	return &dto, nil
}

// UpdatePayment overwrites the paid amount and recomputes the status. The
// amount is a replacement, not an increment; callers send the new total.
func (s *FeeService) UpdatePayment(feeID uint, req UpdatePaymentRequest) (*utils.FeeRecordDto, error) {
	var record models.FeeRecord
	if err := database.DB.Preload("Student").First(&record, feeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("fee record not found with ID %d", feeID)
		}
		return nil, err
	}
	record.AmountPaid = req.AmountPaid
	record.Status = PaymentStatus(record.AmountDue, record.AmountPaid)
	if err := database.DB.Save(&record).Error; err != nil {
		return nil, err
	}
	dto := utils.ToFeeRecordDto(record)
	return &dto, nil
}

// GetFeesForStudent lists all fee records for a student, newest due first
func (s *FeeService) GetFeesForStudent(studentID string) ([]utils.FeeRecordDto, error) {
	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("student not found with ID %s", studentID)
		}
		return nil, err
	}

	var records []models.FeeRecord
	err := database.DB.Preload("Student").Where("student_id = ?", studentID).
		Order("due_date DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	dtos := make([]utils.FeeRecordDto, 0, len(records))
	for _, record := range records {
		dtos = append(dtos, utils.ToFeeRecordDto(record))
	}
	return dtos, nil
}

// FindOverdueFeeRecords returns unpaid records whose due date has passed,
// with the owning student preloaded for reminder messaging.
func (s *FeeService) FindOverdueFeeRecords() ([]models.FeeRecord, error) {
	today := utils.UTCDate(time.Now())
	var records []models.FeeRecord
	err := database.DB.Preload("Student").
		Where("status IN ? AND due_date < ?",
			[]string{models.FeeStatusDue, models.FeeStatusPartiallyPaid, models.FeeStatusOverdue},
			today).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
