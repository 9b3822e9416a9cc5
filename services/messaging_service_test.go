package services

import (
	"testing"

	"classtrack_go/utils"
)

func uintPtr(v uint) *uint { return &v }

func TestBroadcastRequestValidation(t *testing.T) {
	tests := []struct {
		name  string
		req   BroadcastRequest
		valid bool
	}{
		{
			name:  "batch only",
			req:   BroadcastRequest{BatchID: uintPtr(1), Message: "Class cancelled tomorrow"},
			valid: true,
		},
		{
			name:  "batch and subject",
			req:   BroadcastRequest{BatchID: uintPtr(1), SubjectID: uintPtr(2), Message: "Extra class on Saturday"},
			valid: true,
		},
		{
			name: "missing batch rejected",
			req:  BroadcastRequest{Message: "hello"},
		},
		{
			name: "subject without batch rejected",
			req:  BroadcastRequest{SubjectID: uintPtr(2), Message: "hello"},
		},
		{
			name: "missing message rejected",
			req:  BroadcastRequest{BatchID: uintPtr(1)},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			errs := utils.ValidateStruct(tc.req)
			if tc.valid && errs != nil {
				t.Fatalf("expected valid, got %v", errs)
			}
			if !tc.valid && errs == nil {
				t.Fatalf("expected validation errors for %+v", tc.req)
			}
		})
	}
}
