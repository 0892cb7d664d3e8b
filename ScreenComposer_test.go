package main

import (
	"bytes"
	"github.com/stretchr/testify/assert"
	"strings"
	"testing"
)

func TestScreenComposer_Compose(t *testing.T) {
	t.Run("admin dashboard", func(t *testing.T) {
		router := NewViewRouter()
		document := NewDocument()
		composer := NewScreenComposer(&bytes.Buffer{}, router, document)

		document.SetRows(TeachersTable, []TableRow{
			{Cells: []string{"4", "John Smith", "jsmith", "Active", "10-A"}},
		})
		document.SetRows(RequestsTable, []TableRow{
			{
				Cells:   []string{"7", "newbie", "STUDENT", "Nora\x1b[31m Newbie"},
				Actions: []RowAction{{Command: approveCommand, RowId: 7}, {Command: deleteCommand, RowId: 7}},
			},
		})
		document.SetOptions(TeacherSelect, "Choose a teacher...", []SelectOption{{Value: "4", Label: "John Smith"}})

		err, screen := composer.Compose(AdminSection)

		assert.NoError(t, err)
		assert.Contains(t, screen, "== Admin Dashboard ==")
		assert.Regexp(t, `4\s+John Smith\s+jsmith\s+Active\s+10-A`, screen)
		assert.Contains(t, screen, `Nora\x1b[31m Newbie`)
		assert.Contains(t, screen, "[approve 7] [delete 7]")
		assert.NotContains(t, screen, "\x1b")
		assert.Contains(t, screen, "toggle assignTeacherForm")
		assert.NotContains(t, screen, "Choose a teacher...")

		_, _ = router.ToggleSection(AssignTeacherPanel)
		err, screen = composer.Compose(AdminSection)

		assert.NoError(t, err)
		assert.Contains(t, screen, "Assign Teacher: assign <teacherId> <className>")
		assert.Contains(t, screen, "Choose a teacher...\n  4 = John Smith\n")
	})

	t.Run("placeholder rows", func(t *testing.T) {
		document := NewDocument()
		composer := NewScreenComposer(&bytes.Buffer{}, NewViewRouter(), document)

		document.ShowLoading(StudentsTable)
		err, screen := composer.Compose(TeacherSection)
		assert.NoError(t, err)
		assert.Contains(t, screen, "\n"+loadingMessage+"\n")

		document.ShowError(StudentsTable, "Failed to load students")
		_, screen = composer.Compose(TeacherSection)
		assert.Contains(t, screen, "! Failed to load students\n")

		document.SetRows(StudentsTable, nil)
		_, screen = composer.Compose(TeacherSection)
		assert.Contains(t, screen, emptyTableMessage)
	})

	t.Run("student stats", func(t *testing.T) {
		document := NewDocument()
		composer := NewScreenComposer(&bytes.Buffer{}, NewViewRouter(), document)

		document.SetStats(&GradeStatsView{AverageGrade: "70.5", PassedGrades: 2, TotalGrades: 3, PassPercentage: 67, OverallStatus: "PASSED"})
		err, screen := composer.Compose(StudentSection)

		assert.NoError(t, err)
		assert.Contains(t, screen, "Average Grade: 70.5\n")
		assert.Contains(t, screen, "Subjects Passed: 2/3 (67% pass rate)\n")
		assert.Contains(t, screen, "Overall Status: PASSED\n")
	})

	t.Run("login error message", func(t *testing.T) {
		document := NewDocument()
		composer := NewScreenComposer(&bytes.Buffer{}, NewViewRouter(), document)
		document.SetText(ErrorMessageElement, invalidCredentialsMessage)

		err, screen := composer.Compose(LoginSection)

		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(screen, "== Grade Portal | Login ==\n! "+invalidCredentialsMessage+"\n"))
	})

	t.Run("every section has a template", func(t *testing.T) {
		composer := NewScreenComposer(&bytes.Buffer{}, NewViewRouter(), NewDocument())

		for _, section := range allSections {
			err, screen := composer.Compose(section)

			assert.NoErrorf(t, err, "section %s", section)
			assert.NotEmpty(t, screen)
		}
	})
}

func TestScreenComposer_RenderIfChanged(t *testing.T) {
	out := &bytes.Buffer{}
	router := NewViewRouter()
	document := NewDocument()
	composer := NewScreenComposer(out, router, document)

	assert.NoError(t, composer.RenderIfChanged())
	first := out.Len()
	assert.NotZero(t, first)

	assert.NoError(t, composer.RenderIfChanged())
	assert.Equal(t, first, out.Len())

	document.SetText(ErrorMessageElement, loginFailedMessage)
	assert.NoError(t, composer.RenderIfChanged())
	assert.Greater(t, out.Len(), first)

	written := out.Len()
	assert.NoError(t, composer.Render())
	assert.Greater(t, out.Len(), written)
}

func TestTemplateFunctionMap(t *testing.T) {
	names := make([]string, 0, len(TemplateFunctionMap))
	for name := range TemplateFunctionMap {
		names = append(names, name)
	}

	assert.ElementsMatch(t, []string{"escape", "renderTable", "renderSelect"}, names)
}
