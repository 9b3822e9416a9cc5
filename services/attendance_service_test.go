package services

import (
	"testing"
	"time"

	"classtrack_go/models"
)

func rosterStudent(id, code, name string) models.Student {
	return models.Student{
		ID:            id,
		StudentIDCode: code,
		FullName:      name,
		Active:        true,
	}
}

func TestPartitionAttendance(t *testing.T) {
	checkIn := time.Date(2026, 5, 10, 9, 15, 0, 0, time.UTC)

	alice := rosterStudent("student-a", "STU001", "Alice")
	bob := rosterStudent("student-b", "STU002", "Bob")
	carol := rosterStudent("student-c", "STU003", "Carol")

	roster := []models.Student{alice, bob, carol}
	records := []models.AttendanceRecord{
		{StudentID: "student-b", SubjectID: 1, AttendanceTimestamp: checkIn},
		{StudentID: "student-x", SubjectID: 1, AttendanceTimestamp: checkIn}, // not on roster
	}

	report := PartitionAttendance(roster, records)

	if len(report.PresentStudents) != 1 {
		t.Fatalf("present = %d, want 1", len(report.PresentStudents))
	}
	if report.PresentStudents[0].StudentIDCode != "STU002" {
		t.Fatalf("present student = %q, want STU002", report.PresentStudents[0].StudentIDCode)
	}
	if !report.PresentStudents[0].CheckInTime.Equal(checkIn) {
		t.Fatalf("check-in time = %v, want %v", report.PresentStudents[0].CheckInTime, checkIn)
	}

	if len(report.AbsentStudents) != 2 {
		t.Fatalf("absent = %d, want 2", len(report.AbsentStudents))
	}
	if report.PresentStudents[0].ID == report.AbsentStudents[0].ID ||
		report.PresentStudents[0].ID == report.AbsentStudents[1].ID {
		t.Fatalf("student appears in both partitions")
	}
	if len(report.PresentStudents)+len(report.AbsentStudents) != len(roster) {
		t.Fatalf("partitions do not cover the roster")
	}
}

func TestPartitionAttendanceEmptyRoster(t *testing.T) {
	report := PartitionAttendance(nil, nil)
	if report.PresentStudents == nil || report.AbsentStudents == nil {
		t.Fatalf("partitions must be non-nil empty slices for JSON rendering")
	}
	if len(report.PresentStudents) != 0 || len(report.AbsentStudents) != 0 {
		t.Fatalf("expected empty partitions")
	}
}

func TestPartitionAttendanceAllPresent(t *testing.T) {
	now := time.Now().UTC()
	alice := rosterStudent("student-a", "STU001", "Alice")

	report := PartitionAttendance(
		[]models.Student{alice},
		[]models.AttendanceRecord{{StudentID: "student-a", AttendanceTimestamp: now}},
	)
	if len(report.PresentStudents) != 1 || len(report.AbsentStudents) != 0 {
		t.Fatalf("present = %d absent = %d, want 1/0", len(report.PresentStudents), len(report.AbsentStudents))
	}
}
