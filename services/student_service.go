package services

import (
	"errors"
	"fmt"

	"classtrack_go/database"
	"classtrack_go/models"
	"classtrack_go/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StudentService manages student records and their generated identifiers
type StudentService struct{}

func NewStudentService() *StudentService {
	return &StudentService{}
}

type CreateStudentRequest struct {
	FullName     string `json:"fullName" validate:"required,min=2,max=255"`
	ParentPhone  string `json:"parentPhone" validate:"required"`
	StudentPhone string `json:"studentPhone"`
	BatchID      uint   `json:"batchId" validate:"required"`
	SubjectIDs   []uint `json:"subjectIds" validate:"required,min=1"`
}

type UpdateStudentRequest struct {
	FullName     string `json:"fullName" validate:"required,min=2,max=255"`
	ParentPhone  string `json:"parentPhone" validate:"required"`
	StudentPhone string `json:"studentPhone"`
	BatchID      uint   `json:"batchId" validate:"required"`
	SubjectIDs   []uint `json:"subjectIds" validate:"required,min=1"`
}

// nextSequence claims the next numeric suffix for a code prefix. The counter
// row is locked for the duration of the transaction, so two concurrent
// creations serialize here instead of racing a max-scan. On first use the
// counter is seeded from the highest suffix already present in the column.
func nextSequence(tx *gorm.DB, prefix, column string) (int, error) {
	var counter models.SequenceCounter
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("prefix = ?", prefix).First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var codes []string
		if err := tx.Model(&models.Student{}).Pluck(column, &codes).Error; err != nil {
			return 0, err
		}
		counter = models.SequenceCounter{
			Prefix:    prefix,
			NextValue: utils.MaxNumericSuffix(codes, prefix) + 1,
		}
		if err := tx.Create(&counter).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}

	claimed := counter.NextValue
	if err := tx.Model(&models.SequenceCounter{}).
		Where("prefix = ?", prefix).
		Update("next_value", claimed+1).Error; err != nil {
		return 0, err
	}
	return claimed, nil
}

// generateStudentCodes claims the next student ID code and index number
// inside the given transaction.
func generateStudentCodes(tx *gorm.DB) (code string, index string, err error) {
	n, err := nextSequence(tx, utils.StudentCodePrefix, "student_id_code")
	if err != nil {
		return "", "", err
	}
	m, err := nextSequence(tx, utils.IndexNumberPrefix, "index_number")
	if err != nil {
		return "", "", err
	}
	return utils.FormatCode(utils.StudentCodePrefix, n), utils.FormatCode(utils.IndexNumberPrefix, m), nil
}

// resolveSubjects loads the full subject set, failing if any ID is unknown
func resolveSubjects(tx *gorm.DB, subjectIDs []uint) ([]models.Subject, error) {
	var subjects []models.Subject
	if err := tx.Where("id IN ?", subjectIDs).Find(&subjects).Error; err != nil {
		return nil, err
	}
	if len(subjects) != len(uniqueIDs(subjectIDs)) {
		return nil, notFoundf("one or more subjects not found")
	}
	return subjects, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// CreateStudent persists a new active student with generated codes
func (s *StudentService) CreateStudent(req CreateStudentRequest) (*utils.StudentDto, error) {
	parentPhone := utils.StripNonDigits(req.ParentPhone)
	if !utils.IsValidPhoneNumber(parentPhone) {
		return nil, validationf("invalid parent phone number format (e.g. 0771234567)")
	}
	studentPhone := utils.StripNonDigits(req.StudentPhone)
	if studentPhone != "" && !utils.IsValidPhoneNumber(studentPhone) {
		return nil, validationf("invalid student phone number format (e.g. 0771234567)")
	}

	var created models.Student
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var batch models.Batch
		if err := tx.First(&batch, req.BatchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("batch not found with ID %d", req.BatchID)
			}
			return err
		}

		subjects, err := resolveSubjects(tx, req.SubjectIDs)
		if err != nil {
			return err
		}

		code, index, err := generateStudentCodes(tx)
		if err != nil {
			return err
		}

		created = models.Student{
			StudentIDCode: code,
			IndexNumber:   index,
			FullName:      req.FullName,
			ParentPhone:   parentPhone,
			StudentPhone:  studentPhone,
			Active:        true,
			BatchID:       batch.ID,
			Subjects:      subjects,
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}

	return s.loadStudentDto(created.ID)
}

// GetStudentByID returns the student regardless of active flag
func (s *StudentService) GetStudentByID(studentID string) (*utils.StudentDto, error) {
	return s.loadStudentDto(studentID)
}

// GetFilteredStudents returns active students, optionally restricted to a
// batch and/or a subject enrollment. Nil filters mean "all".
func (s *StudentService) GetFilteredStudents(batchID, subjectID *uint) ([]utils.StudentDto, error) {
	query := database.DB.Model(&models.Student{}).
		Preload("Batch").Preload("Subjects").
		Where("students.active = ?", true)

	if batchID != nil {
		query = query.Where("students.batch_id = ?", *batchID)
	}
	if subjectID != nil {
		query = query.
			Joins("JOIN student_subjects ON student_subjects.student_id = students.id").
			Where("student_subjects.subject_id = ?", *subjectID)
	}

	var students []models.Student
	if err := query.Find(&students).Error; err != nil {
		return nil, err
	}
	return utils.ToStudentDtos(students), nil
}

// UpdateStudent overwrites the mutable fields. ID, student code and index
// number never change after creation.
func (s *StudentService) UpdateStudent(studentID string, req UpdateStudentRequest) (*utils.StudentDto, error) {
	parentPhone := utils.StripNonDigits(req.ParentPhone)
	if !utils.IsValidPhoneNumber(parentPhone) {
		return nil, validationf("invalid parent phone number format (e.g. 0771234567)")
	}
	studentPhone := utils.StripNonDigits(req.StudentPhone)
	if studentPhone != "" && !utils.IsValidPhoneNumber(studentPhone) {
		return nil, validationf("invalid student phone number format (e.g. 0771234567)")
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var student models.Student
		if err := tx.First(&student, "id = ?", studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("student not found with ID %s", studentID)
			}
			return err
		}

		var batch models.Batch
		if err := tx.First(&batch, req.BatchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("batch not found with ID %d", req.BatchID)
			}
			return err
		}

		subjects, err := resolveSubjects(tx, req.SubjectIDs)
		if err != nil {
			return err
		}

		student.FullName = req.FullName
		student.ParentPhone = parentPhone
		student.StudentPhone = studentPhone
		student.BatchID = batch.ID
		if err := tx.Save(&student).Error; err != nil {
			return err
		}
		return tx.Model(&student).Association("Subjects").Replace(subjects)
	})
	if err != nil {
		return nil, err
	}

	return s.loadStudentDto(studentID)
}

// DeactivateStudent soft-deletes via the active flag
func (s *StudentService) DeactivateStudent(studentID string) error {
	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("student not found with ID %s", studentID)
		}
		return err
	}
	return database.DB.Model(&student).Update("active", false).Error
}

// DeleteStudent removes the row and its subject enrollments
func (s *StudentService) DeleteStudent(studentID string) error {
	var student models.Student
	if err := database.DB.First(&student, "id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundf("student not found with ID %s", studentID)
		}
		return err
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&student).Association("Subjects").Clear(); err != nil {
			return err
		}
		return tx.Delete(&student).Error
	})
}

// GetNextStudentIDCode previews the code the next creation would get. The
// value is not reserved; a creation between preview and submit wins the code.
func (s *StudentService) GetNextStudentIDCode() (string, error) {
	var counter models.SequenceCounter
	err := database.DB.Where("prefix = ?", utils.StudentCodePrefix).First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var codes []string
		if err := database.DB.Model(&models.Student{}).Pluck("student_id_code", &codes).Error; err != nil {
			return "", err
		}
		return utils.FormatCode(utils.StudentCodePrefix, utils.MaxNumericSuffix(codes, utils.StudentCodePrefix)+1), nil
	}
	if err != nil {
		return "", err
	}
	return utils.FormatCode(utils.StudentCodePrefix, counter.NextValue), nil
}

func (s *StudentService) loadStudentDto(studentID string) (*utils.StudentDto, error) {
	var student models.Student
	err := database.DB.Preload("Batch").Preload("Subjects").
		First(&student, "id = ?", studentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundf("student not found with ID %s", studentID)
		}
		return nil, fmt.Errorf("load student %s: %w", studentID, err)
	}
	dto := utils.ToStudentDto(student)
	return &dto, nil
}
