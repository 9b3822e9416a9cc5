package utils

import "testing"

func TestValidateStruct(t *testing.T) {
	type loginForm struct {
		Username string `validate:"required,min=3"`
		Password string `validate:"required,min=6"`
	}

	if errs := ValidateStruct(loginForm{Username: "admin", Password: "admin123"}); errs != nil {
		t.Fatalf("valid struct reported errors: %v", errs)
	}

	errs := ValidateStruct(loginForm{Username: "ab"})
	if len(errs) != 2 {
		t.Fatalf("got %d field errors, want 2: %v", len(errs), errs)
	}
	fields := map[string]bool{}
	for _, fe := range errs {
		fields[fe.Field] = true
	}
	if !fields["username"] || !fields["password"] {
		t.Fatalf("missing expected fields in %v", errs)
	}
}
