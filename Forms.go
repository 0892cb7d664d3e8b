package main

type AssignTeacherForm struct {
	TeacherId string `json:"teacherId" validate:"notblank,number"`
	ClassName string `json:"className" validate:"notblank"`
}

type AddStudentForm struct {
	Name    string `json:"studentName" validate:"notblank"`
	Section string `json:"studentSection" validate:"notblank"`
}

type AssignGradeForm struct {
	StudentId  string `json:"studentId" validate:"notblank,number"`
	SubjectId  string `json:"subjectId" validate:"notblank,number"`
	GradeValue string `json:"gradeValue" validate:"notblank,grade"`
}
