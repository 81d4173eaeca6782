package validation

import (
	"errors"
	"strings"
	"testing"
)

type samplePatient struct {
	FirstName string `validate:"required"`
	Age       int    `validate:"min=0,max=150"`
	Sex       string `validate:"required,sex"`
}

func TestValidator_Passes(t *testing.T) {
	v := New()
	err := v.Validate(samplePatient{FirstName: "Maria", Age: 34, Sex: "Female"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidator_RequiredField(t *testing.T) {
	v := New()
	err := v.Validate(samplePatient{Age: 34, Sex: "Female"})
	if err == nil {
		t.Fatal("expected error for missing first name")
	}
	if !strings.Contains(err.Error(), "FirstName is required") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestValidator_SexTag(t *testing.T) {
	v := New()
	err := v.Validate(samplePatient{FirstName: "Maria", Age: 34, Sex: "F"})
	if err == nil {
		t.Fatal("expected error for invalid sex value")
	}
	if !strings.Contains(err.Error(), "must be Male or Female") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestValidator_RangeTags(t *testing.T) {
	v := New()
	err := v.Validate(samplePatient{FirstName: "Maria", Age: 200, Sex: "Female"})
	if err == nil {
		t.Fatal("expected error for out-of-range age")
	}
	if !strings.Contains(err.Error(), "Age must be at most 150") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestValidator_JoinsMultipleErrors(t *testing.T) {
	v := New()
	err := v.Validate(samplePatient{Age: -1, Sex: ""})
	if err == nil {
		t.Fatal("expected errors")
	}
	if !strings.Contains(err.Error(), ";") {
		t.Errorf("expected joined messages, got: %v", err)
	}
}

func TestErrorf_MarksValidationFailures(t *testing.T) {
	err := Errorf("age must be between %d and %d", 0, 150)
	if !IsError(err) {
		t.Error("Errorf should produce a validation error")
	}
	if err.Error() != "age must be between 0 and 150" {
		t.Errorf("unexpected message: %v", err)
	}
	if IsError(errors.New("connection refused")) {
		t.Error("plain errors must not read as validation failures")
	}
}

func TestValidator_ReturnsTypedError(t *testing.T) {
	v := New()
	err := v.Validate(samplePatient{Age: 34, Sex: "Female"})
	if !IsError(err) {
		t.Errorf("tag failures should be validation errors, got %T", err)
	}
}
