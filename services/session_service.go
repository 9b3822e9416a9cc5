package services

import (
	"errors"
	"time"

	"classtrack_go/database"
	"classtrack_go/models"
	"classtrack_go/utils"

	"gorm.io/gorm"
)

// SessionService manages attendance sessions for the index-number kiosk flow
type SessionService struct{}

func NewSessionService() *SessionService {
	return &SessionService{}
}

type CreateSessionRequest struct {
	BatchID     uint   `json:"batchId" validate:"required"`
	SubjectID   uint   `json:"subjectId" validate:"required"`
	SessionDate string `json:"sessionDate" validate:"required,datetime=2006-01-02"`
}

// CreateSession opens a session for a (batch, subject, date) triple. At most
// one session exists per triple, active or not.
func (s *SessionService) CreateSession(req CreateSessionRequest, createdByID uint) (*utils.AttendanceSessionDto, error) {
	date, err := time.ParseInLocation("2006-01-02", req.SessionDate, time.UTC)
	if err != nil {
		return nil, validationf("invalid session date %q, expected YYYY-MM-DD", req.SessionDate)
	}

	var batch models.Batch
	if err := database.DB.First(&batch, req.BatchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("batch not found with ID %d", req.BatchID)
		}
		return nil, err
	}
	var subject models.Subject
	if err := database.DB.First(&subject, req.SubjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("subject not found with ID %d", req.SubjectID)
		}
		return nil, err
	}

	var count int64
	err = database.DB.Model(&models.AttendanceSession{}).
		Where("batch_id = ? AND subject_id = ? AND session_date = ?", req.BatchID, req.SubjectID, date).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, duplicatef("session already exists for batch %d, subject %d on %s",
			req.BatchID, req.SubjectID, req.SessionDate)
	}

	session := models.AttendanceSession{
		BatchID:     req.BatchID,
		SubjectID:   req.SubjectID,
		SessionDate: date,
		CreatedByID: createdByID,
		Active:      true,
	}
	if err := database.DB.Create(&session).Error; err != nil {
		return nil, err
	}
	return s.loadSessionDto(session.ID)
}

// GetActiveSessions lists every active session, newest first
func (s *SessionService) GetActiveSessions() ([]utils.AttendanceSessionDto, error) {
	return s.listActive(nil)
}

// GetTodaysActiveSessions lists active sessions dated today (UTC)
func (s *SessionService) GetTodaysActiveSessions() ([]utils.AttendanceSessionDto, error) {
	today := utils.UTCDate(time.Now())
	return s.listActive(&today)
}

func (s *SessionService) listActive(date *time.Time) ([]utils.AttendanceSessionDto, error) {
	query := database.DB.Preload("Batch").Preload("Subject").
		Where("active = ?", true).Order("created_at DESC")
	if date != nil {
		query = query.Where("session_date = ?", *date)
	}

	var sessions []models.AttendanceSession
	if err := query.Find(&sessions).Error; err != nil {
		return nil, err
	}
	dtos := make([]utils.AttendanceSessionDto, 0, len(sessions))
	for _, session := range sessions {
		dtos = append(dtos, utils.ToSessionDto(session))
	}
	return dtos, nil
}

// GetActiveSessionByID resolves a session only while it is active
func (s *SessionService) GetActiveSessionByID(sessionID uint) (*utils.AttendanceSessionDto, error) {
	var session models.AttendanceSession
	err := database.DB.Preload("Batch").Preload("Subject").
		Where("id = ? AND active = ?", sessionID, true).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("active session not found with ID %d", sessionID)
		}
		return nil, err
	}
	dto := utils.ToSessionDto(session)
	return &dto, nil
}

// DeactivateSession closes a session. Deactivation is one-way; already
// inactive sessions are left untouched.
func (s *SessionService) DeactivateSession(sessionID uint) error {
	var session models.AttendanceSession
	if err := database.DB.First(&session, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("session not found with ID %d", sessionID)
		}
		return err
	}
	if !session.Active {
		return nil
	}
	return database.DB.Model(&session).Update("active", false).Error
}

func (s *SessionService) loadSessionDto(sessionID uint) (*utils.AttendanceSessionDto, error) {
	var session models.AttendanceSession
	err := database.DB.Preload("Batch").Preload("Subject").
		First(&session, sessionID).Error
	if err != nil {
		return nil, err
	}
	dto := utils.ToSessionDto(session)
	return &dto, nil
}
