package services

import (
	"errors"
	"fmt"

	"classtrack_go/database"
	"classtrack_go/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MessagingService sends operator-initiated SMS to parents
type MessagingService struct {
	sms  SmsSender
	fees *FeeService
}

func NewMessagingService(sms SmsSender, fees *FeeService) *MessagingService {
	return &MessagingService{sms: sms, fees: fees}
}

type BroadcastRequest struct {
	BatchID   *uint  `json:"batchId" validate:"required"`
	SubjectID *uint  `json:"subjectId"`
	Message   string `json:"message" validate:"required,min=1,max=1000"`
}

// SendBroadcastMessage sends the message to the parents of every active
// student in the batch, optionally narrowed to one subject. Returns the number of
// messages handed to the SMS sender; individual failures are logged and
// do not stop the broadcast.
func (s *MessagingService) SendBroadcastMessage(req BroadcastRequest) (int, error) {
	if req.BatchID != nil {
		var batch models.Batch
		if err := database.DB.First(&batch, *req.BatchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, notFoundf("batch not found with ID %d", *req.BatchID)
			}
			return 0, err
		}
	}
	if req.SubjectID != nil {
		var subject models.Subject
		if err := database.DB.First(&subject, *req.SubjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, notFoundf("subject not found with ID %d", *req.SubjectID)
			}
			return 0, err
		}
	}

	query := database.DB.Model(&models.Student{}).
		Where("students.active = ?", true)
	if req.BatchID != nil {
		query = query.Where("students.batch_id = ?", *req.BatchID)
	}
	if req.SubjectID != nil {
		query = query.
			Joins("JOIN student_subjects ON student_subjects.student_id = students.id").
			Where("student_subjects.subject_id = ?", *req.SubjectID)
	}

	var students []models.Student
	if err := query.Find(&students).Error; err != nil {
		return 0, err
	}

	sent := 0
	for _, student := range students {
		if err := s.sms.SendSms(student.ParentPhone, req.Message); err != nil {
			logrus.WithFields(logrus.Fields{
				"student_id_code": student.StudentIDCode,
				"error":           err.Error(),
			}).Error("Failed to send broadcast SMS")
			continue
		}
		sent++
	}
	return sent, nil
}

// SendFeeReminders sends one reminder per unpaid past-due fee record and
// promotes unpaid DUE records to OVERDUE. Returns the reminder count.
func (s *MessagingService) SendFeeReminders() (int, error) {
	records, err := s.fees.FindOverdueFeeRecords()
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, record := range records {
		outstanding := record.AmountDue - record.AmountPaid
		message := fmt.Sprintf(
			"Dear Parent, this is a friendly reminder that a fee payment of $%.2f for %s is overdue. Please settle it at your earliest convenience.",
			outstanding, record.Student.FullName)
		if err := s.sms.SendSms(record.Student.ParentPhone, message); err != nil {
			logrus.WithFields(logrus.Fields{
				"fee_record_id": record.ID,
				"error":         err.Error(),
			}).Error("Failed to send fee reminder SMS")
		} else {
			sent++
		}

		if record.Status == models.FeeStatusDue {
			err := database.DB.Model(&models.FeeRecord{}).
				Where("id = ?", record.ID).
				Update("status", models.FeeStatusOverdue).Error
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"fee_record_id": record.ID,
					"error":         err.Error(),
				}).Error("Failed to mark fee record overdue")
			}
		}
	}

	logrus.WithField("count", sent).Info("Fee reminder sweep completed")
	return sent, nil
}
