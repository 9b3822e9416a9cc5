package controllers

import (
	"testing"

	"classtrack_go/utils"
)

func TestSubjectRequestValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   SubjectRequest
		valid bool
	}{
		{name: "normal name", req: SubjectRequest{Name: "Mathematics"}, valid: true},
		{name: "two chars is the minimum", req: SubjectRequest{Name: "IT"}, valid: true},
		{name: "single char rejected", req: SubjectRequest{Name: "X"}, valid: false},
		{name: "empty rejected", req: SubjectRequest{Name: ""}, valid: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			errs := utils.ValidateStruct(tc.req)
			if tc.valid && errs != nil {
				t.Fatalf("expected valid, got %v", errs)
			}
			if !tc.valid && errs == nil {
				t.Fatalf("expected validation errors for %q", tc.req.Name)
			}
		})
	}
}

func TestBatchRequestValidation(t *testing.T) {
	if errs := utils.ValidateStruct(BatchRequest{BatchYear: 2024}); errs != nil {
		t.Fatalf("expected valid, got %v", errs)
	}
	if errs := utils.ValidateStruct(BatchRequest{BatchYear: 1999}); errs == nil {
		t.Fatalf("expected validation errors for out-of-range year")
	}
}
