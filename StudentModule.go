package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"sync"
)

const (
	pleaseLogInMessage     = "Please log in first"
	studentOnlyMessage     = "Access denied. Only students can view this page."
	userNotFoundMessage    = "User record not found"
	studentNotFoundMessage = "Student record not found"
	reportNotFoundMessage  = "Report card not found"
	noGradesMessage        = "No grades available"
	gradesErrorMessage     = "Error loading grades"
)

var ErrNoReportCard = errors.New("no report card loaded")

type StudentModule struct {
	out       io.Writer
	gateway   ApiGatewayInterface
	session   SessionStoreInterface
	inspector TokenInspectorInterface
	router    ViewRouterInterface
	document  *Document
	notifier  NotifierInterface
	exporter  ReportCardExporterInterface
	loads     *LoadCoalescer

	mutex      sync.Mutex
	student    *Student
	reportCard *ReportCard
}

// LoadMyGrades resolves the signed-in user to a student record and renders the report card.
func (module *StudentModule) LoadMyGrades(ctx context.Context) {
	module.loads.Run(ctx, GradesTable, module.loadMyGrades)
}

func (module *StudentModule) ExportReportCard(path string) error {
	module.mutex.Lock()
	student, reportCard := module.student, module.reportCard
	module.mutex.Unlock()

	if student == nil || reportCard == nil {
		module.notifier.Alert("Load your grades before exporting")
		return ErrNoReportCard
	}

	err := module.exporter.Export(path, *student, *reportCard)
	if err != nil {
		_, _ = fmt.Fprintf(module.out, "Error exporting report card: %v\n", err)
		module.notifier.Alert("Failed to export report card")
		return err
	}

	module.notifier.Info("Report card saved to " + path)

	return nil
}

func (module *StudentModule) loadMyGrades(ctx context.Context) {
	loadTotalCounter(GradesTable).Inc()
	module.document.ShowLoading(GradesTable)
	module.remember(nil, nil)

	session := module.session.Read()
	if session.Token == "" {
		module.document.SetRows(GradesTable, nil)
		module.notifier.Alert(pleaseLogInMessage)
		_ = module.router.ShowSection(LoginSection)
		return
	}

	username, _ := module.inspector.ExtractSubject(session.Token)

	var user *User
	ok, err := fetchJSON(ctx, module.gateway, "/users/current", url.Values{"username": {username}}, &user)
	if !module.proceed(ctx, ok, err, user == nil, userNotFoundMessage) {
		return
	}

	if user.Role != RoleStudent {
		module.document.SetRows(GradesTable, nil)
		module.notifier.Alert(studentOnlyMessage)
		_ = module.router.ShowSection(LoginSection)
		return
	}

	var student *Student
	ok, err = fetchJSON(ctx, module.gateway, fmt.Sprintf("/students/user/%d", user.Id), nil, &student)
	if !module.proceed(ctx, ok, err, student == nil, studentNotFoundMessage) {
		return
	}

	var reportCard *ReportCard
	ok, err = fetchJSON(ctx, module.gateway, fmt.Sprintf("/grades/student/%d/report", student.Id), nil, &reportCard)
	if !module.proceed(ctx, ok, err, reportCard == nil, reportNotFoundMessage) {
		return
	}

	module.remember(student, reportCard)
	module.document.SetStats(makeGradeStats(reportCard))

	if len(reportCard.Grades) == 0 {
		module.document.ShowMessage(GradesTable, noGradesMessage)
		return
	}

	rows := make([]TableRow, len(reportCard.Grades))
	for i, grade := range reportCard.Grades {
		rows[i] = TableRow{
			Cells: []string{
				grade.Subject.Name,
				formatNumber(grade.GradeValue),
				gradeStatus(grade),
				orDefault(grade.DateAssigned, "N/A"),
			},
		}
	}
	module.document.SetRows(GradesTable, rows)
}

// proceed renders the outcome of one lookup stage and reports whether the next stage may run.
func (module *StudentModule) proceed(ctx context.Context, ok bool, err error, missing bool, notFoundMessage string) bool {
	switch {
	case isCancelled(ctx, err):
		return false

	case isNotFound(err) || (err == nil && ok && missing):
		module.document.ShowMessage(GradesTable, notFoundMessage)
		module.document.SetStats(nil)
		return false

	case err != nil:
		loadErrorCounter(GradesTable).Inc()
		_, _ = fmt.Fprintf(module.out, "Error loading grades: %v\n", err)
		module.document.ShowError(GradesTable, gradesErrorMessage)
		return false

	case !ok:
		module.document.SetRows(GradesTable, nil)
		return false
	}

	return true
}

func (module *StudentModule) remember(student *Student, reportCard *ReportCard) {
	module.mutex.Lock()
	defer module.mutex.Unlock()

	module.student, module.reportCard = student, reportCard
}

func makeGradeStats(reportCard *ReportCard) *GradeStatsView {
	stats := &GradeStatsView{
		AverageGrade:  formatNumber(reportCard.AverageGrade),
		PassedGrades:  reportCard.PassedGrades,
		TotalGrades:   reportCard.TotalGrades,
		OverallStatus: orDefault(reportCard.OverallStatus, "N/A"),
	}

	if reportCard.TotalGrades > 0 {
		stats.PassPercentage = int(math.Round(float64(reportCard.PassedGrades) / float64(reportCard.TotalGrades) * 100))
	}

	return stats
}

func gradeStatus(grade Grade) string {
	if grade.IsPassed() {
		return "Pass"
	}

	return "Fail"
}
