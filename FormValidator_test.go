package main

import (
	"errors"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestFormValidator_Validate(t *testing.T) {
	formValidator := NewFormValidator()

	t.Run("valid forms", func(t *testing.T) {
		assert.NoError(t, formValidator.Validate(AssignTeacherForm{TeacherId: "4", ClassName: "10-A"}))
		assert.NoError(t, formValidator.Validate(AddStudentForm{Name: "Ann", Section: "10-A"}))
		assert.NoError(t, formValidator.Validate(AssignGradeForm{StudentId: "5", SubjectId: "1", GradeValue: "0"}))
		assert.NoError(t, formValidator.Validate(AssignGradeForm{StudentId: "5", SubjectId: "1", GradeValue: "100"}))
		assert.NoError(t, formValidator.Validate(AssignGradeForm{StudentId: "5", SubjectId: "1", GradeValue: " 59.5 "}))
	})

	testCases := []struct {
		name    string
		form    any
		message string
		field   string
	}{
		{"blank name", AddStudentForm{Name: " ", Section: "10-A"}, fillAllFieldsMessage, "studentName"},
		{"blank class", AssignTeacherForm{TeacherId: "4"}, fillAllFieldsMessage, "className"},
		{"grade below range", AssignGradeForm{StudentId: "5", SubjectId: "1", GradeValue: "-1"}, gradeRangeMessage, "gradeValue"},
		{"grade above range", AssignGradeForm{StudentId: "5", SubjectId: "1", GradeValue: "101"}, gradeRangeMessage, "gradeValue"},
		{"empty grade", AssignGradeForm{StudentId: "5", SubjectId: "1"}, fillAllFieldsMessage, "gradeValue"},
		{"placeholder option", AssignGradeForm{StudentId: "Choose student...", SubjectId: "1", GradeValue: "70"}, invalidOptionMessage, "studentId"},
		{"blank wins over range", AssignGradeForm{SubjectId: "1", GradeValue: "500"}, fillAllFieldsMessage, "studentId"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := formValidator.Validate(testCase.form)

			validationError := &ValidationError{}
			assert.True(t, errors.As(err, &validationError))
			assert.Equal(t, testCase.message, validationError.Message)
			assert.Contains(t, err.Error(), testCase.field+": ")
		})
	}
}
