package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields. Entities here are hard-deleted, so no
// soft-delete column; the Student active flag is explicit domain state.
type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSON field type for GORM
type JSON []byte

func (j JSON) Value() (driver.Value, error) {
	if j.IsNull() {
		return nil, nil
	}
	return string(j), nil
}

func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	s, ok := value.([]byte)
	if !ok {
		return nil
	}
	*j = append((*j)[0:0], s...)
	return nil
}

func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

func (j *JSON) UnmarshalJSON(data []byte) error {
	if j == nil {
		return nil
	}
	*j = append((*j)[0:0], data...)
	return nil
}

func (j JSON) IsNull() bool {
	return len(j) == 0 || string(j) == "null"
}

// Role names
const (
	RoleSuperAdmin = "ROLE_SUPER_ADMIN"
	RoleStaff      = "ROLE_STAFF"
)

// Role model
type Role struct {
	BaseModel
	Name string `json:"name" gorm:"size:50;not null;uniqueIndex"`
}

// Admin model. Password is always the bcrypt hash, never the plaintext.
type Admin struct {
	BaseModel
	Username string `json:"username" gorm:"size:50;not null;uniqueIndex"`
	Password string `json:"-" gorm:"size:255;not null"`
	RoleID   uint   `json:"role_id" gorm:"not null"`

	Role Role `json:"role,omitempty" gorm:"foreignKey:RoleID"`
}

// Batch model: a yearly student cohort
type Batch struct {
	BaseModel
	BatchYear int `json:"batch_year" gorm:"not null;uniqueIndex"`
}

// Subject model
type Subject struct {
	BaseModel
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}

// Student model. Associations are resolved through explicit queries on the
// foreign keys; Batch and Subject carry no back-references.
type Student struct {
	ID            string    `json:"id" gorm:"type:char(36);primaryKey"`
	StudentIDCode string    `json:"student_id_code" gorm:"size:50;not null;uniqueIndex"`
	IndexNumber   string    `json:"index_number" gorm:"size:50;not null;uniqueIndex"`
	FullName      string    `json:"full_name" gorm:"size:255;not null"`
	ParentPhone   string    `json:"parent_phone" gorm:"size:20;not null"`
	StudentPhone  string    `json:"student_phone" gorm:"size:20"`
	Active        bool      `json:"active" gorm:"not null;default:true"`
	BatchID       uint      `json:"batch_id" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Batch    Batch     `json:"batch,omitempty" gorm:"foreignKey:BatchID"`
	Subjects []Subject `json:"subjects,omitempty" gorm:"many2many:student_subjects"`
}

// BeforeCreate assigns a UUID primary key
func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// AttendanceRecord model. AttendanceDate is the UTC calendar day of the
// check-in; the unique index is the storage-level backstop against two
// concurrent markings slipping past the existence check.
type AttendanceRecord struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	StudentID           string    `json:"student_id" gorm:"type:char(36);not null;uniqueIndex:idx_attendance_once_per_day"`
	SubjectID           uint      `json:"subject_id" gorm:"not null;uniqueIndex:idx_attendance_once_per_day"`
	AttendanceTimestamp time.Time `json:"attendance_timestamp" gorm:"not null"`
	AttendanceDate      time.Time `json:"attendance_date" gorm:"type:date;not null;uniqueIndex:idx_attendance_once_per_day"`

	Student Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Subject Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
}

// AttendanceSession model: an admin-declared (batch, subject, date) window
// during which students check in by index number. Deactivation is one-way.
type AttendanceSession struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	BatchID     uint      `json:"batch_id" gorm:"not null;uniqueIndex:idx_session_triple"`
	SubjectID   uint      `json:"subject_id" gorm:"not null;uniqueIndex:idx_session_triple"`
	SessionDate time.Time `json:"session_date" gorm:"type:date;not null;uniqueIndex:idx_session_triple"`
	CreatedByID uint      `json:"created_by_id" gorm:"not null"`
	Active      bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt   time.Time `json:"created_at"`

	Batch     Batch   `json:"batch,omitempty" gorm:"foreignKey:BatchID"`
	Subject   Subject `json:"subject,omitempty" gorm:"foreignKey:SubjectID"`
	CreatedBy Admin   `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

// Fee statuses
const (
	FeeStatusDue           = "DUE"
	FeeStatusPartiallyPaid = "PARTIALLY_PAID"
	FeeStatusPaid          = "PAID"
	FeeStatusOverdue       = "OVERDUE"
)

// FeeRecord model. Status is derived: recomputed on every payment update and
// promoted to OVERDUE by the reminder sweep, never settable on its own.
type FeeRecord struct {
	BaseModel
	StudentID   string    `json:"student_id" gorm:"type:char(36);not null;index"`
	AmountDue   float64   `json:"amount_due" gorm:"type:decimal(10,2);not null"`
	AmountPaid  float64   `json:"amount_paid" gorm:"type:decimal(10,2);not null;default:0"`
	DueDate     time.Time `json:"due_date" gorm:"type:date;not null"`
	Status      string    `json:"status" gorm:"size:20;not null;default:'DUE';type:enum('DUE','PARTIALLY_PAID','PAID','OVERDUE')"`
	Description string    `json:"description" gorm:"size:255"`

	Student Student `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

// SequenceCounter holds the next numeric suffix per code prefix (STU, IDX).
// Incremented with a row lock inside the creating transaction so concurrent
// creations cannot race to the same generated code.
type SequenceCounter struct {
	Prefix    string `json:"prefix" gorm:"size:10;primaryKey"`
	NextValue int    `json:"next_value" gorm:"not null"`
}

// ActivityLog model for admin action auditing
type ActivityLog struct {
	BaseModel
	AdminID    uint   `json:"admin_id"`
	Action     string `json:"action" gorm:"size:100;not null"`
	Resource   string `json:"resource" gorm:"size:100;not null"`
	ResourceID string `json:"resource_id" gorm:"size:100"`
	Details    JSON   `json:"details" gorm:"type:json"`
	IPAddress  string `json:"ip_address" gorm:"size:45"`
	UserAgent  string `json:"user_agent" gorm:"size:500"`
}
