package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const deleteRequestQuestion = "Are you sure you want to delete this request?"

type AdminModule struct {
	out       io.Writer
	gateway   ApiGatewayInterface
	document  *Document
	notifier  NotifierInterface
	validator FormValidatorInterface
	loads     *LoadCoalescer
}

func (module *AdminModule) LoadTeachers(ctx context.Context) {
	module.loads.Run(ctx, TeachersTable, module.loadTeachers)
}

func (module *AdminModule) LoadRequests(ctx context.Context) {
	module.loads.Run(ctx, RequestsTable, module.loadRequests)
}

func (module *AdminModule) ApproveRequest(ctx context.Context, id int64) error {
	ok, err := mutate(ctx, module.gateway, http.MethodPut, fmt.Sprintf("/users/%d/approve", id), nil)
	if err != nil {
		return module.fail("Error approving request", "Failed to approve request", err)
	}

	if ok {
		module.notifier.Info("Request approved successfully!")
		module.LoadRequests(ctx)
		module.LoadTeachers(ctx)
	}

	return nil
}

func (module *AdminModule) DeclineRequest(ctx context.Context, id int64) error {
	ok, err := mutate(ctx, module.gateway, http.MethodPut, fmt.Sprintf("/users/%d/decline", id), nil)
	if err != nil {
		return module.fail("Error declining request", "Failed to decline request", err)
	}

	if ok {
		module.notifier.Info("Request declined successfully!")
		module.LoadRequests(ctx)
	}

	return nil
}

func (module *AdminModule) DeleteRequest(ctx context.Context, id int64) error {
	if !module.notifier.Confirm(deleteRequestQuestion) {
		return nil
	}

	ok, err := mutate(ctx, module.gateway, http.MethodDelete, fmt.Sprintf("/users/%d", id), nil)
	if err != nil {
		return module.fail("Error deleting request", "Failed to delete request", err)
	}

	if ok {
		module.notifier.Info("Request deleted successfully!")
		module.LoadRequests(ctx)
	}

	return nil
}

func (module *AdminModule) AssignTeacher(ctx context.Context, form AssignTeacherForm) error {
	if err := module.validator.Validate(form); err != nil {
		return rejectForm(module.notifier, err)
	}

	ok, err := mutate(
		ctx, module.gateway, http.MethodPut,
		fmt.Sprintf("/users/%s/assign", form.TeacherId),
		assignTeacherBody{ClassName: form.ClassName},
	)
	if err != nil {
		return module.fail("Error assigning teacher", "Failed to assign teacher", err)
	}

	if ok {
		module.notifier.Info("Teacher assigned successfully!")
		module.LoadTeachers(ctx)
	}

	return nil
}

func (module *AdminModule) loadTeachers(ctx context.Context) {
	loadTotalCounter(TeachersTable).Inc()
	module.document.ShowLoading(TeachersTable)

	var teachers []User
	ok, err := fetchJSON(ctx, module.gateway, "/users/teachers", nil, &teachers)
	if isCancelled(ctx, err) {
		return
	}

	if err != nil {
		loadErrorCounter(TeachersTable).Inc()
		_, _ = fmt.Fprintf(module.out, "Error loading teachers: %v\n", err)
		module.document.ShowError(TeachersTable, "Failed to load teachers")
		return
	}

	if !ok {
		module.document.SetRows(TeachersTable, nil)
		return
	}

	rows := make([]TableRow, len(teachers))
	options := make([]SelectOption, len(teachers))
	for i, teacher := range teachers {
		rows[i] = TableRow{
			Cells: []string{
				formatId(teacher.Id),
				teacher.FullName(),
				teacher.Username,
				orDefault(teacher.Status, "Active"),
				orDefault(teacher.AssignedClass, "Not Assigned"),
			},
		}
		options[i] = SelectOption{Value: formatId(teacher.Id), Label: teacher.FullName()}
	}

	module.document.SetRows(TeachersTable, rows)
	module.document.SetOptions(TeacherSelect, "Choose a teacher...", options)
}

func (module *AdminModule) loadRequests(ctx context.Context) {
	loadTotalCounter(RequestsTable).Inc()
	module.document.ShowLoading(RequestsTable)

	var requests []User
	ok, err := fetchJSON(ctx, module.gateway, "/users/pending", nil, &requests)
	if isCancelled(ctx, err) {
		return
	}

	if err != nil {
		loadErrorCounter(RequestsTable).Inc()
		_, _ = fmt.Fprintf(module.out, "Error loading requests: %v\n", err)
		module.document.ShowError(RequestsTable, "Failed to load requests")
		return
	}

	if !ok {
		module.document.SetRows(RequestsTable, nil)
		return
	}

	rows := make([]TableRow, len(requests))
	for i, request := range requests {
		rows[i] = TableRow{
			Cells: []string{
				formatId(request.Id),
				request.Username,
				string(request.Role),
				request.FullName(),
			},
			Actions: []RowAction{
				{Command: approveCommand, Label: "Approve", RowId: request.Id},
				{Command: declineCommand, Label: "Decline", RowId: request.Id},
				{Command: deleteCommand, Label: "Delete", RowId: request.Id},
			},
		}
	}

	module.document.SetRows(RequestsTable, rows)
}

func (module *AdminModule) fail(logPrefix string, alert string, err error) error {
	_, _ = fmt.Fprintf(module.out, "%s: %v\n", logPrefix, err)
	module.notifier.Alert(alert)

	return err
}

func rejectForm(notifier NotifierInterface, err error) error {
	validationError := &ValidationError{}
	if errors.As(err, &validationError) {
		notifier.Alert(validationError.Message)
	} else {
		notifier.Alert(err.Error())
	}

	return err
}
