package validator

import (
	"errors"
	"testing"

	validators "github.com/go-playground/validator/v10"
)

type sample struct {
	ParticipantID string `json:"participant_id" validate:"required,notblank"`
	Status        string `json:"status" validate:"omitempty,oneof=active paused"`
}

func TestValidateStruct(t *testing.T) {
	v := New()

	if err := v.ValidateStruct(sample{ParticipantID: "alice", Status: "paused"}); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	tests := []struct {
		name  string
		input sample
		field string
	}{
		{"missing participant", sample{}, "participant_id"},
		{"blank participant", sample{ParticipantID: "   "}, "participant_id"},
		{"unknown status", sample{ParticipantID: "alice", Status: "done"}, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.input)
			var verrs validators.ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("expected validation errors, got %v", err)
			}
			if verrs[0].Field() != tt.field {
				t.Errorf("expected field %s, got %s", tt.field, verrs[0].Field())
			}
		})
	}
}
