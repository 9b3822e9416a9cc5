package services

import (
	"errors"
	"fmt"
	"time"

	"classtrack_go/database"
	"classtrack_go/models"
	"classtrack_go/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AttendanceService handles kiosk check-ins and attendance reporting
type AttendanceService struct {
	sms SmsSender
}

func NewAttendanceService(sms SmsSender) *AttendanceService {
	return &AttendanceService{sms: sms}
}

type MarkAttendanceRequest struct {
	StudentIDCode string `json:"studentIdCode" validate:"required"`
	SubjectID     uint   `json:"subjectId" validate:"required"`
	BatchID       uint   `json:"batchId" validate:"required"`
}

type MarkAttendanceByIndexRequest struct {
	IndexNumber string `json:"indexNumber" validate:"required"`
	SessionID   uint   `json:"sessionId" validate:"required"`
}

// MarkAttendance records a kiosk check-in for a student and notifies the
// parent by SMS. A student can check in once per UTC day per subject.
func (s *AttendanceService) MarkAttendance(req MarkAttendanceRequest) (string, error) {
	var student models.Student
	err := database.DB.Preload("Subjects").
		Where("student_id_code = ?", req.StudentIDCode).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", notFoundf("student not found with ID code %s", req.StudentIDCode)
		}
		return "", err
	}

	var subject models.Subject
	if err := database.DB.First(&subject, req.SubjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", notFoundf("subject not found with ID %d", req.SubjectID)
		}
		return "", err
	}

	return s.checkIn(&student, &subject, req.BatchID)
}

// MarkAttendanceByIndex is the session-mode kiosk flow: the kiosk holds an
// active session and students type their short index number.
func (s *AttendanceService) MarkAttendanceByIndex(req MarkAttendanceByIndexRequest) (string, error) {
	var session models.AttendanceSession
	err := database.DB.Where("id = ? AND active = ?", req.SessionID, true).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", notFoundf("active session not found with ID %d", req.SessionID)
		}
		return "", err
	}

	var student models.Student
	err = database.DB.Preload("Subjects").
		Where("index_number = ?", req.IndexNumber).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", notFoundf("student not found with index number %s", req.IndexNumber)
		}
		return "", err
	}

	var subject models.Subject
	if err := database.DB.First(&subject, session.SubjectID).Error; err != nil {
		return "", err
	}

	return s.checkIn(&student, &subject, session.BatchID)
}

func (s *AttendanceService) checkIn(student *models.Student, subject *models.Subject, batchID uint) (string, error) {
	if !student.Active {
		return "", invalidStatef("student %s is inactive", student.StudentIDCode)
	}
	if student.BatchID != batchID {
		return "", invalidStatef("student %s does not belong to batch %d", student.StudentIDCode, batchID)
	}
	enrolled := false
	for _, sub := range student.Subjects {
		if sub.ID == subject.ID {
			enrolled = true
			break
		}
	}
	if !enrolled {
		return "", invalidStatef("student %s is not enrolled in %s", student.StudentIDCode, subject.Name)
	}

	now := time.Now().UTC()
	day := utils.UTCDate(now)

	var existing int64
	err := database.DB.Model(&models.AttendanceRecord{}).
		Where("student_id = ? AND subject_id = ? AND attendance_date = ?", student.ID, subject.ID, day).
		Count(&existing).Error
	if err != nil {
		return "", err
	}
	if existing > 0 {
		return "", duplicatef("attendance already marked today for %s in %s", student.StudentIDCode, subject.Name)
	}

	record := models.AttendanceRecord{
		StudentID:           student.ID,
		SubjectID:           subject.ID,
		AttendanceDate:      day,
		AttendanceTimestamp: now,
	}
	if err := database.DB.Create(&record).Error; err != nil {
		return "", err
	}

	// a failed SMS never rolls back the check-in
	message := fmt.Sprintf("Dear Parent, %s has checked in for the %s class at %s.",
		student.FullName, subject.Name, now.Format("03:04 PM"))
	if err := s.sms.SendSms(student.ParentPhone, message); err != nil {
		logrus.WithFields(logrus.Fields{
			"student_id_code": student.StudentIDCode,
			"parent_phone":    student.ParentPhone,
			"error":           err.Error(),
		}).Error("Failed to send check-in SMS")
	}

	return fmt.Sprintf("Attendance marked for %s", student.FullName), nil
}

// GetAttendanceReport partitions a batch/subject roster into present and
// absent students for a given day.
func (s *AttendanceService) GetAttendanceReport(date time.Time, batchID, subjectID uint) (*utils.AttendanceReportDto, error) {
	var subject models.Subject
	if err := database.DB.First(&subject, subjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("subject not found with ID %d", subjectID)
		}
		return nil, err
	}
	var batch models.Batch
	if err := database.DB.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("batch not found with ID %d", batchID)
		}
		return nil, err
	}

	var roster []models.Student
	err := database.DB.Model(&models.Student{}).
		Preload("Batch").Preload("Subjects").
		Joins("JOIN student_subjects ON student_subjects.student_id = students.id").
		Where("student_subjects.subject_id = ? AND students.batch_id = ? AND students.active = ?",
			subjectID, batchID, true).
		Find(&roster).Error
	if err != nil {
		return nil, err
	}

	day := utils.UTCDate(date)
	var records []models.AttendanceRecord
	err = database.DB.
		Where("subject_id = ? AND attendance_date = ?", subjectID, day).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	report := PartitionAttendance(roster, records)
	return &report, nil
}

// PartitionAttendance splits the roster into students with a check-in record
// and those without. Records for students outside the roster are ignored.
func PartitionAttendance(roster []models.Student, records []models.AttendanceRecord) utils.AttendanceReportDto {
	checkIns := make(map[string]time.Time, len(records))
	for _, r := range records {
		checkIns[r.StudentID] = r.AttendanceTimestamp
	}

	report := utils.AttendanceReportDto{
		PresentStudents: []utils.PresentStudentDto{},
		AbsentStudents:  []utils.StudentDto{},
	}
	for _, student := range roster {
		if ts, ok := checkIns[student.ID]; ok {
			report.PresentStudents = append(report.PresentStudents, utils.PresentStudentDto{
				ID:            student.ID,
				StudentIDCode: student.StudentIDCode,
				FullName:      student.FullName,
				CheckInTime:   ts,
			})
		} else {
			report.AbsentStudents = append(report.AbsentStudents, utils.ToStudentDto(student))
		}
	}
	return report
}
