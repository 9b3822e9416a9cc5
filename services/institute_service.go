package services

import (
	"errors"

	"classtrack_go/database"
	"classtrack_go/models"
	"classtrack_go/utils"

	"gorm.io/gorm"
)

// InstituteService manages the Batch and Subject reference data
type InstituteService struct{}

func NewInstituteService() *InstituteService {
	return &InstituteService{}
}

// --- Batch methods ---

func (s *InstituteService) CreateBatch(batchYear int) (*utils.BatchDto, error) {
	var existing models.Batch
	if err := database.DB.Where("batch_year = ?", batchYear).First(&existing).Error; err == nil {
		return nil, duplicatef("batch with year %d already exists", batchYear)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	batch := models.Batch{BatchYear: batchYear}
	if err := database.DB.Create(&batch).Error; err != nil {
		return nil, err
	}

	dto := utils.ToBatchDto(batch)
	return &dto, nil
}

func (s *InstituteService) GetAllBatches() ([]utils.BatchDto, error) {
	var batches []models.Batch
	if err := database.DB.Find(&batches).Error; err != nil {
		return nil, err
	}

	dtos := make([]utils.BatchDto, 0, len(batches))
	for _, b := range batches {
		dtos = append(dtos, utils.ToBatchDto(b))
	}
	return dtos, nil
}

func (s *InstituteService) UpdateBatch(id uint, batchYear int) (*utils.BatchDto, error) {
	var batch models.Batch
	if err := database.DB.First(&batch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("batch not found with ID %d", id)
		}
		return nil, err
	}

	var other models.Batch
	if err := database.DB.Where("batch_year = ? AND id <> ?", batchYear, id).First(&other).Error; err == nil {
		return nil, duplicatef("batch with year %d already exists", batchYear)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	batch.BatchYear = batchYear
	if err := database.DB.Save(&batch).Error; err != nil {
		return nil, err
	}

	dto := utils.ToBatchDto(batch)
	return &dto, nil
}

// DeleteBatch removes a batch. Deletion is refused while students still
// reference it so attendance history cannot be orphaned.
func (s *InstituteService) DeleteBatch(id uint) error {
	var batch models.Batch
	if err := database.DB.First(&batch, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("batch not found with ID %d", id)
		}
		return err
	}

	var studentCount int64
	if err := database.DB.Model(&models.Student{}).Where("batch_id = ?", id).Count(&studentCount).Error; err != nil {
		return err
	}
	if studentCount > 0 {
		return invalidStatef("batch %d is still assigned to %d student(s)", batch.BatchYear, studentCount)
	}

	return database.DB.Delete(&batch).Error
}

// --- Subject methods ---

func (s *InstituteService) CreateSubject(name string) (*utils.SubjectDto, error) {
	var existing models.Subject
	if err := database.DB.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, duplicatef("subject with name '%s' already exists", name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subject := models.Subject{Name: name}
	if err := database.DB.Create(&subject).Error; err != nil {
		return nil, err
	}

	dto := utils.ToSubjectDto(subject)
	return &dto, nil
}

func (s *InstituteService) GetAllSubjects() ([]utils.SubjectDto, error) {
	var subjects []models.Subject
	if err := database.DB.Find(&subjects).Error; err != nil {
		return nil, err
	}

	dtos := make([]utils.SubjectDto, 0, len(subjects))
	for _, sub := range subjects {
		dtos = append(dtos, utils.ToSubjectDto(sub))
	}
	return dtos, nil
}

func (s *InstituteService) UpdateSubject(id uint, name string) (*utils.SubjectDto, error) {
	var subject models.Subject
	if err := database.DB.First(&subject, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("subject not found with ID %d", id)
		}
		return nil, err
	}

	var other models.Subject
	if err := database.DB.Where("name = ? AND id <> ?", name, id).First(&other).Error; err == nil {
		return nil, duplicatef("subject with name '%s' already exists", name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	subject.Name = name
	if err := database.DB.Save(&subject).Error; err != nil {
		return nil, err
	}

	dto := utils.ToSubjectDto(subject)
	return &dto, nil
}

// DeleteSubject removes a subject unless students are still enrolled in it
func (s *InstituteService) DeleteSubject(id uint) error {
	var subject models.Subject
	if err := database.DB.First(&subject, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("subject not found with ID %d", id)
		}
		return err
	}

	var enrollmentCount int64
	if err := database.DB.Table("student_subjects").Where("subject_id = ?", id).Count(&enrollmentCount).Error; err != nil {
		return err
	}
	if enrollmentCount > 0 {
		return invalidStatef("subject '%s' still has %d enrollment(s)", subject.Name, enrollmentCount)
	}

	return database.DB.Delete(&subject).Error
}
