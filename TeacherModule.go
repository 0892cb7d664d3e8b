package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const dateAssignedLayout = "2006-01-02"

type TeacherModule struct {
	out       io.Writer
	gateway   ApiGatewayInterface
	document  *Document
	notifier  NotifierInterface
	validator FormValidatorInterface
	loads     *LoadCoalescer
	now       func() time.Time
}

func (module *TeacherModule) LoadStudents(ctx context.Context) {
	module.loads.Run(ctx, StudentsTable, module.loadStudents)
}

func (module *TeacherModule) LoadSubjects(ctx context.Context) {
	module.loads.Run(ctx, SubjectSelect, module.loadSubjects)
}

func (module *TeacherModule) AddStudent(ctx context.Context, form AddStudentForm) error {
	if err := module.validator.Validate(form); err != nil {
		return rejectForm(module.notifier, err)
	}

	ok, err := mutate(ctx, module.gateway, http.MethodPost, "/students", addStudentBody{
		Name:    strings.TrimSpace(form.Name),
		Section: strings.TrimSpace(form.Section),
	})
	if err != nil {
		_, _ = fmt.Fprintf(module.out, "Error adding student: %v\n", err)
		module.notifier.Alert("Failed to add student")
		return err
	}

	if ok {
		module.notifier.Info("Student added successfully!")
		module.LoadStudents(ctx)
	}

	return nil
}

func (module *TeacherModule) AssignGrade(ctx context.Context, form AssignGradeForm) error {
	if err := module.validator.Validate(form); err != nil {
		return rejectForm(module.notifier, err)
	}

	studentId, _ := strconv.ParseInt(form.StudentId, 10, 64)
	subjectId, _ := strconv.ParseInt(form.SubjectId, 10, 64)
	gradeValue, _ := parseGradeValue(form.GradeValue)

	ok, err := mutate(ctx, module.gateway, http.MethodPost, "/grades", assignGradeBody{
		Student:      entityReference{Id: studentId},
		Subject:      entityReference{Id: subjectId},
		GradeValue:   gradeValue,
		DateAssigned: module.today(),
	})
	if err != nil {
		_, _ = fmt.Fprintf(module.out, "Error assigning grade: %v\n", err)
		module.notifier.Alert("Failed to assign grade")
		return err
	}

	if ok {
		module.notifier.Info("Grade assigned successfully!")
	}

	return nil
}

func (module *TeacherModule) ViewStudentGrades(ctx context.Context, studentId int64) error {
	var grades []Grade
	ok, err := fetchJSON(ctx, module.gateway, fmt.Sprintf("/grades/student/%d", studentId), nil, &grades)
	if err != nil {
		_, _ = fmt.Fprintf(module.out, "Error loading student grades: %v\n", err)
		module.notifier.Alert("Failed to load student grades")
		return err
	}

	if !ok {
		return nil
	}

	var message strings.Builder
	_, _ = fmt.Fprintf(&message, "Grades for student ID %d:\n\n", studentId)
	for _, grade := range grades {
		_, _ = fmt.Fprintf(&message, "%s: %s\n", escapeTerminal(grade.Subject.Name), formatNumber(grade.GradeValue))
	}
	module.notifier.Alert(message.String())

	return nil
}

func (module *TeacherModule) loadStudents(ctx context.Context) {
	loadTotalCounter(StudentsTable).Inc()
	module.document.ShowLoading(StudentsTable)

	var students []Student
	ok, err := fetchJSON(ctx, module.gateway, "/students", nil, &students)
	if isCancelled(ctx, err) {
		return
	}

	if err != nil {
		loadErrorCounter(StudentsTable).Inc()
		_, _ = fmt.Fprintf(module.out, "Error loading students: %v\n", err)
		module.document.ShowError(StudentsTable, "Failed to load students")
		return
	}

	if !ok {
		module.document.SetRows(StudentsTable, nil)
		return
	}

	rows := make([]TableRow, len(students))
	options := make([]SelectOption, len(students))
	for i, student := range students {
		rows[i] = TableRow{
			Cells: []string{formatId(student.Id), student.Name, student.Section},
			Actions: []RowAction{
				{Command: viewGradesCommand, Label: "View Grades", RowId: student.Id},
			},
		}
		options[i] = SelectOption{
			Value: formatId(student.Id),
			Label: student.Name,
		}
	}

	module.document.SetRows(StudentsTable, rows)
	module.document.SetOptions(StudentSelect, "Choose student...", options)
}

func (module *TeacherModule) loadSubjects(ctx context.Context) {
	loadTotalCounter(SubjectSelect).Inc()

	var subjects []Subject
	ok, err := fetchJSON(ctx, module.gateway, "/subjects", nil, &subjects)
	if isCancelled(ctx, err) {
		return
	}

	if err != nil {
		loadErrorCounter(SubjectSelect).Inc()
		_, _ = fmt.Fprintf(module.out, "Error loading subjects: %v\n", err)
		return
	}

	if !ok {
		return
	}

	options := make([]SelectOption, len(subjects))
	for i, subject := range subjects {
		options[i] = SelectOption{Value: formatId(subject.Id), Label: subject.Name}
	}

	module.document.SetOptions(SubjectSelect, "Choose subject...", options)
}

func (module *TeacherModule) today() string {
	now := time.Now
	if module.now != nil {
		now = module.now
	}

	return now().UTC().Format(dateAssignedLayout)
}
