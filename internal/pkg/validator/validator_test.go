package validator

import (
	"errors"
	"testing"

	"github.com/dayflow-hr/dayflow-backend-go/internal/pkg/apperror"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@.com", "test@com", "test@domain", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2024-01-01", "2024-02-29", "1999-12-31"}
	invalid := []string{"2023-02-29", "2024-13-01", "01-01-2024", "2024/01/01", ""}
	for _, d := range valid {
		if _, ok := IsValidDate(d); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidEmployeeCode(t *testing.T) {
	valid := []string{"EMP001", "emp-042", "A1"}
	invalid := []string{"", "-EMP", "E", "EMP 01", "EMP#1"}
	for _, code := range valid {
		if !IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = false, want true", code)
		}
	}
	for _, code := range invalid {
		if IsValidEmployeeCode(code) {
			t.Errorf("IsValidEmployeeCode(%q) = true, want false", code)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"PAID", "SICK", "UNPAID"}
	if !IsInSlice("SICK", slice) {
		t.Errorf("IsInSlice(SICK) = false, want true")
	}
	if IsInSlice("sick", slice) {
		t.Errorf("IsInSlice(sick) = true, want false")
	}
}

type sampleRequest struct {
	Name     string `json:"name" validate:"required,max=5"`
	Kind     string `json:"kind" validate:"required,oneof=PAID SICK"`
	FromDate string `json:"fromDate" validate:"required,date"`
}

func TestStruct(t *testing.T) {
	errs := Struct(&sampleRequest{Name: "Asha", Kind: "PAID", FromDate: "2024-01-02"})
	if errs != nil {
		t.Fatalf("Struct(valid) = %v, want nil", errs)
	}

	errs = Struct(&sampleRequest{Name: "too long", Kind: "OTHER", FromDate: "02-01-2024"})
	got := errs.ToMap()
	for _, field := range []string{"name", "kind", "fromDate"} {
		if _, ok := got[field]; !ok {
			t.Errorf("Struct(invalid) missing error for %q, got %v", field, got)
		}
	}
}

func TestValidationErrors_IsValidationKind(t *testing.T) {
	var err error = ValidationErrors{{Field: "x", Message: "bad"}}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("errors.Is(ValidationErrors, ErrValidation) = false, want true")
	}
}
