package main

import (
	"context"
	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
	"testing"
)

var sampleTeachers = []map[string]any{
	{"id": 4, "username": "jsmith", "firstName": "John", "lastName": "Smith", "role": "TEACHER", "assignedClass": "10-A"},
	{"id": 5, "username": "mlee", "firstName": "Mia", "lastName": "Lee", "role": "TEACHER", "status": "Pending"},
}

var samplePendingRequests = []map[string]any{
	{"id": 7, "username": "newbie", "firstName": "Nora", "lastName": "Newbie", "role": "STUDENT"},
}

func TestAdminModule_LoadTeachers(t *testing.T) {
	t.Run("renders teachers and fills the select", func(t *testing.T) {
		defer gock.Off()
		portal := newTestPortal(t)
		portal.signIn(t, "token-1", RoleAdmin)

		gock.New(testApiBase).Get("/users/teachers").Reply(200).JSON(sampleTeachers)

		portal.admin.LoadTeachers(context.Background())

		assert.Equal(t, []TableRow{
			{Cells: []string{"4", "John Smith", "jsmith", "Active", "10-A"}},
			{Cells: []string{"5", "Mia Lee", "mlee", "Pending", "Not Assigned"}},
		}, portal.document.Table(TeachersTable).Rows)

		assert.Equal(t, Select{
			Placeholder: "Choose a teacher...",
			Options: []SelectOption{
				{Value: "4", Label: "John Smith"},
				{Value: "5", Label: "Mia Lee"},
			},
		}, portal.document.Select(TeacherSelect))
		assert.True(t, gock.IsDone())
	})

	t.Run("failure renders an error row", func(t *testing.T) {
		defer gock.Off()
		portal := newTestPortal(t)
		portal.signIn(t, "token-1", RoleAdmin)

		gock.New(testApiBase).Get("/users/teachers").Reply(500)

		portal.admin.LoadTeachers(context.Background())

		assert.Equal(t, []TableRow{{Message: "Failed to load teachers", IsError: true}}, portal.document.Table(TeachersTable).Rows)
		assert.Contains(t, portal.out.String(), "Error loading teachers: HTTP error! status: 500")
	})

	t.Run("lost session empties the table", func(t *testing.T) {
		defer gock.Off()
		portal := newTestPortal(t)
		portal.signIn(t, "token-1", RoleAdmin)
		portal.expectSessionExpired()

		gock.New(testApiBase).Get("/users/teachers").Reply(401)

		portal.admin.LoadTeachers(context.Background())

		assert.Empty(t, portal.document.Table(TeachersTable).Rows)
		assert.Equal(t, LoginSection, portal.router.ActiveSection())
	})
}

func TestAdminModule_LoadRequests(t *testing.T) {
	defer gock.Off()
	portal := newTestPortal(t)
	portal.signIn(t, "token-1", RoleAdmin)

	gock.New(testApiBase).Get("/users/pending").Reply(200).JSON(samplePendingRequests)

	portal.admin.LoadRequests(context.Background())

	assert.Equal(t, []TableRow{
		{
			Cells: []string{"7", "newbie", "STUDENT", "Nora Newbie"},
			Actions: []RowAction{
				{Command: approveCommand, Label: "Approve", RowId: 7},
				{Command: declineCommand, Label: "Decline", RowId: 7},
				{Command: deleteCommand, Label: "Delete", RowId: 7},
			},
		},
	}, portal.document.Table(RequestsTable).Rows)
}

func TestAdminModule_ApproveRequest(t *testing.T) {
	t.Run("approve reloads requests and teachers", func(t *testing.T) {
		defer gock.Off()
		portal := newTestPortal(t)
		portal.signIn(t, "token-1", RoleAdmin)
		portal.notifier.On("Info", "Request approved successfully!").Once()

		gock.New(testApiBase).Put("/users/7/approve").Reply(200).BodyString("approved")
		gock.New(testApiBase).Get("/users/pending").Reply(200).JSON([]any{})
		gock.New(testApiBase).Get("/users/teachers").Reply(200).JSON(sampleTeachers[:1])

		err := portal.admin.ApproveRequest(context.Background(), 7)

		assert.NoError(t, err)
		assert.Empty(t, portal.document.Table(RequestsTable).Rows)
		assert.Len(t, portal.document.Table(TeachersTable).Rows, 1)
		assert.True(t, gock.IsDone())
	})

	t.Run("lost session skips notice and reload", func(t *testing.T) {
		defer gock.Off()
		portal := newTestPortal(t)
		portal.signIn(t, "token-1", RoleAdmin)
		portal.expectSessionExpired()

		gock.New(testApiBase).Put("/users/7/approve").Reply(401)

		err := portal.admin.ApproveRequest(context.Background(), 7)

		assert.NoError(t, err)
		assert.True(t, gock.IsDone())
		assert.False(t, portal.session.Read().IsPresent())
	})
}

func TestAdminModule_DeclineRequest(t *testing.T) {
	defer gock.Off()
	portal := newTestPortal(t)
	portal.signIn(t, "token-1", RoleAdmin)
	portal.notifier.On("Alert", "Failed to decline request").Once()

	gock.New(testApiBase).Put("/users/7/decline").Reply(500).BodyString("boom")

	err := portal.admin.DeclineRequest(context.Background(), 7)

	assert.EqualError(t, err, "boom")
	assert.Contains(t, portal.out.String(), "Error declining request: boom")
}

func TestAdminModule_DeleteRequest(t *testing.T) {
	t.Run("cancelled confirmation sends nothing", func(t *testing.T) {
		defer gock.Off()
		portal := newTestPortal(t)
		portal.signIn(t, "token-1", RoleAdmin)
		portal.notifier.On("Confirm", deleteRequestQuestion).Return(false).Once()

		err := portal.admin.DeleteRequest(context.Background(), 7)

		assert.NoError(t, err)
		assert.False(t, gock.HasUnmatchedRequest())
	})

	t.Run("confirmed delete reloads requests", func(t *testing.T) {
		defer gock.Off()
		portal := newTestPortal(t)
		portal.signIn(t, "token-1", RoleAdmin)
		portal.notifier.On("Confirm", deleteRequestQuestion).Return(true).Once()
		portal.notifier.On("Info", "Request deleted successfully!").Once()

		gock.New(testApiBase).Delete("/users/7").Reply(204)
		gock.New(testApiBase).Get("/users/pending").Reply(200).JSON(samplePendingRequests)

		err := portal.admin.DeleteRequest(context.Background(), 7)

		assert.NoError(t, err)
		assert.Len(t, portal.document.Table(RequestsTable).Rows, 1)
		assert.True(t, gock.IsDone())
	})
}

func TestAdminModule_AssignTeacher(t *testing.T) {
	t.Run("blank class name is rejected before any request", func(t *testing.T) {
		defer gock.Off()
		portal := newTestPortal(t)
		portal.signIn(t, "token-1", RoleAdmin)
		portal.notifier.On("Alert", fillAllFieldsMessage).Once()

		err := portal.admin.AssignTeacher(context.Background(), AssignTeacherForm{TeacherId: "4", ClassName: "  "})

		assert.Error(t, err)
		assert.False(t, gock.HasUnmatchedRequest())
	})

	t.Run("placeholder teacher is rejected", func(t *testing.T) {
		defer gock.Off()
		portal := newTestPortal(t)
		portal.signIn(t, "token-1", RoleAdmin)
		portal.notifier.On("Alert", invalidOptionMessage).Once()

		err := portal.admin.AssignTeacher(context.Background(), AssignTeacherForm{TeacherId: "Choose a teacher...", ClassName: "10-A"})

		assert.Error(t, err)
	})

	t.Run("success reloads teachers", func(t *testing.T) {
		defer gock.Off()
		portal := newTestPortal(t)
		portal.signIn(t, "token-1", RoleAdmin)
		portal.notifier.On("Info", "Teacher assigned successfully!").Once()

		gock.New(testApiBase).
			Put("/users/4/assign").
			JSON(map[string]string{"className": "10-A"}).
			Reply(200)
		gock.New(testApiBase).Get("/users/teachers").Reply(200).JSON(sampleTeachers)

		err := portal.admin.AssignTeacher(context.Background(), AssignTeacherForm{TeacherId: "4", ClassName: "10-A"})

		assert.NoError(t, err)
		assert.True(t, gock.IsDone())
	})
}
