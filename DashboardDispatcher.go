package main

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var errAccessDenied = errors.New("access denied")

var roleSections = map[Role]string{
	RoleAdmin:   AdminSection,
	RoleTeacher: TeacherSection,
	RoleStudent: StudentSection,
}

type SectionRefresherInterface interface {
	// Refresh reloads the data behind the section and reports whether anything was reloaded.
	Refresh(ctx context.Context, section string) bool
}

type DashboardDispatcher struct {
	out     io.Writer
	session SessionStoreInterface
	router  ViewRouterInterface
	admin   *AdminModule
	teacher *TeacherModule
	student *StudentModule
}

func (dispatcher *DashboardDispatcher) ShowDashboard(ctx context.Context, role Role) error {
	section, known := roleSections[role]
	if !known {
		return fmt.Errorf("%w: no dashboard for role %q", ErrUnknownSection, role)
	}

	if err := dispatcher.router.ShowSection(section); err != nil {
		return err
	}

	switch role {
	case RoleAdmin:
		dispatcher.admin.LoadTeachers(ctx)
		dispatcher.admin.LoadRequests(ctx)

	case RoleTeacher:
		dispatcher.teacher.LoadStudents(ctx)
		dispatcher.teacher.LoadSubjects(ctx)

	case RoleStudent:
		dispatcher.student.LoadMyGrades(ctx)
	}

	return nil
}

// Restore picks the screen for whatever session survived the previous run.
func (dispatcher *DashboardDispatcher) Restore(ctx context.Context) error {
	session := dispatcher.session.Read()
	if session.IsPresent() && session.Role.IsKnown() {
		return dispatcher.ShowDashboard(ctx, session.Role)
	}

	if session.IsPresent() {
		_, _ = fmt.Fprintf(dispatcher.out, "Discarding session with unknown role %q\n", session.Role)
		if err := dispatcher.session.Clear(); err != nil {
			_, _ = fmt.Fprintf(dispatcher.out, "Failed to clear session: %v\n", err)
		}
	}

	return dispatcher.router.ShowSection(LoginSection)
}

// ShowRoleSection opens a dashboard only for the role of the stored session.
func (dispatcher *DashboardDispatcher) ShowRoleSection(ctx context.Context, section string) error {
	role := dispatcher.session.Read().Role
	if roleSections[role] != section {
		return fmt.Errorf("%w: %s requires a %s session", errAccessDenied, section, sectionRole(section))
	}

	return dispatcher.ShowDashboard(ctx, role)
}

func (dispatcher *DashboardDispatcher) Refresh(ctx context.Context, section string) bool {
	switch section {
	case AdminSection:
		dispatcher.admin.LoadTeachers(ctx)
		dispatcher.admin.LoadRequests(ctx)

	case TeacherSection:
		dispatcher.teacher.LoadStudents(ctx)

	default:
		return false
	}

	return true
}

func sectionRole(section string) Role {
	for role, roleSection := range roleSections {
		if roleSection == section {
			return role
		}
	}

	return ""
}
