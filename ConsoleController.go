package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/VictoriaMetrics/metrics"
	"io"
	"sort"
	"strings"
	"sync"
)

const (
	loginCommand         = "login"
	signupCommand        = "signup"
	logoutCommand        = "logout"
	showCommand          = "show"
	toggleCommand        = "toggle"
	renderCommand        = "render"
	teachersCommand      = "teachers"
	requestsCommand      = "requests"
	approveCommand       = "approve"
	declineCommand       = "decline"
	deleteCommand        = "delete"
	assignCommand        = "assign"
	studentsCommand      = "students"
	subjectsCommand      = "subjects"
	addStudentCommand    = "add-student"
	assignGradeCommand   = "grade"
	viewGradesCommand    = "grades"
	myGradesCommand      = "my-grades"
	exportCommand        = "export"
	metricsCommand       = "metrics"
	helpCommand          = "help"
	quitCommand          = "quit"
	ConsoleStartedPrompt = "Grade portal console started. Type \"help\" for the list of commands.\n"
)

type consoleCommand struct {
	usage   string
	handler CommandHandler
}

type ConsoleController struct {
	out         io.Writer
	debugLogger *DebugLogger
	input       *ConsoleInput
	composer    ScreenRendererInterface
	router      ViewRouterInterface
	dashboards  *DashboardDispatcher
	auth        *AuthModule
	admin       *AdminModule
	teacher     *TeacherModule
	student     *StudentModule

	commands map[string]consoleCommand
}

func (controller *ConsoleController) Init() {
	controller.commands = make(map[string]consoleCommand)
	controller.setupRoutes()
}

func (controller *ConsoleController) Execute(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()
	controller.Init()

	if err := controller.dashboards.Restore(ctx); err != nil {
		_, _ = fmt.Fprintf(controller.out, "Failed to restore session: %v\n", err)
	}
	_, _ = fmt.Fprint(controller.out, ConsoleStartedPrompt)
	controller.render(true)

	lines := controller.input.Lines()
	for {
		select {
		case <-ctx.Done():
			return

		case line, ok := <-lines:
			if !ok || !controller.HandleLine(ctx, line) {
				return
			}
		}
	}
}

// HandleLine runs one command and reports whether the console should keep reading.
func (controller *ConsoleController) HandleLine(ctx context.Context, line string) bool {
	args, err := splitCommandLine(line)
	if err != nil {
		_, _ = fmt.Fprintf(controller.out, "%v\n", err)
		return true
	}

	if len(args) == 0 {
		return true
	}

	name := strings.ToLower(args[0])
	if name == quitCommand || name == "exit" {
		return false
	}

	command, exists := controller.commands[name]
	if !exists {
		_, _ = fmt.Fprintf(controller.out, "Unknown command %q. Type \"help\" for the list of commands.\n", args[0])
		return true
	}

	controller.debugLogger.Log("Handle command %s with %d arguments", name, len(args)-1)
	err = command.handler(ctx, args[1:])
	switch {
	case errors.Is(err, errUsage), errors.Is(err, errCommandUnavailable), errors.Is(err, errAccessDenied),
		errors.Is(err, ErrUnknownSection), errors.Is(err, ErrUnknownPanel), errors.Is(err, errInvalidRowId):
		_, _ = fmt.Fprintf(controller.out, "%s\n", escapeTerminal(err.Error()))

	case err != nil:
		controller.debugLogger.Log("Command %s failed: %v", name, err)
	}

	controller.render(name == renderCommand)

	return true
}

func (controller *ConsoleController) Handle(name string, usage string, handler CommandHandler, middlewares ...MiddlewareFunc) {
	middlewares = append([]MiddlewareFunc{countCommandMiddleware()}, middlewares...)
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	controller.commands[name] = consoleCommand{usage: usage, handler: handler}
}

func (controller *ConsoleController) setupRoutes() {
	admin := onlySectionMiddleware(controller.router, AdminSection)
	teacher := onlySectionMiddleware(controller.router, TeacherSection)
	student := onlySectionMiddleware(controller.router, StudentSection)

	controller.Handle(helpCommand, "help", controller.HelpAction)
	controller.Handle(renderCommand, "render", func(context.Context, []string) error { return nil })
	controller.Handle(metricsCommand, "metrics", controller.MetricsAction)
	controller.Handle(showCommand, "show <section>", controller.ShowAction, argumentsMiddleware(1, "show <section>"))
	controller.Handle(toggleCommand, "toggle <panel>", controller.ToggleAction, argumentsMiddleware(1, "toggle <panel>"))

	controller.Handle(
		loginCommand, "login <username> <password>", controller.LoginAction,
		argumentsMiddleware(2, "login <username> <password>"),
	)
	signupUsage := "signup <username> <password> <firstName> <lastName> <TEACHER|STUDENT>"
	controller.Handle(signupCommand, signupUsage, controller.SignupAction, argumentsMiddleware(5, signupUsage))
	controller.Handle(logoutCommand, "logout", controller.LogoutAction)

	controller.Handle(teachersCommand, "teachers", controller.TeachersAction, admin)
	controller.Handle(requestsCommand, "requests", controller.RequestsAction, admin)
	controller.Handle(approveCommand, "approve <id>", controller.rowAction(controller.admin.ApproveRequest), admin, argumentsMiddleware(1, "approve <id>"))
	controller.Handle(declineCommand, "decline <id>", controller.rowAction(controller.admin.DeclineRequest), admin, argumentsMiddleware(1, "decline <id>"))
	controller.Handle(deleteCommand, "delete <id>", controller.rowAction(controller.admin.DeleteRequest), admin, argumentsMiddleware(1, "delete <id>"))
	controller.Handle(
		assignCommand, "assign <teacherId> <className>", controller.AssignTeacherAction,
		admin, argumentsMiddleware(2, "assign <teacherId> <className>"),
	)

	controller.Handle(studentsCommand, "students", controller.StudentsAction, teacher)
	controller.Handle(subjectsCommand, "subjects", controller.SubjectsAction, teacher)
	controller.Handle(
		addStudentCommand, "add-student <name> <section>", controller.AddStudentAction,
		teacher, argumentsMiddleware(2, "add-student <name> <section>"),
	)
	controller.Handle(
		assignGradeCommand, "grade <studentId> <subjectId> <value>", controller.AssignGradeAction,
		teacher, argumentsMiddleware(3, "grade <studentId> <subjectId> <value>"),
	)
	controller.Handle(viewGradesCommand, "grades <studentId>", controller.rowAction(controller.teacher.ViewStudentGrades), teacher, argumentsMiddleware(1, "grades <studentId>"))

	controller.Handle(myGradesCommand, "my-grades", controller.MyGradesAction, student)
	controller.Handle(exportCommand, "export <file.xlsx>", controller.ExportAction, student, argumentsMiddleware(1, "export <file.xlsx>"))
}

func (controller *ConsoleController) HelpAction(context.Context, []string) error {
	usages := make([]string, 0, len(controller.commands)+1)
	for _, command := range controller.commands {
		usages = append(usages, command.usage)
	}
	usages = append(usages, quitCommand)
	sort.Strings(usages)

	_, _ = fmt.Fprintf(controller.out, "Commands:\n  %s\n", strings.Join(usages, "\n  "))

	return nil
}

func (controller *ConsoleController) MetricsAction(context.Context, []string) error {
	metrics.WritePrometheus(controller.out, false)

	return nil
}

func (controller *ConsoleController) ShowAction(ctx context.Context, args []string) error {
	section := args[0]
	if sectionRole(section) != "" {
		return controller.dashboards.ShowRoleSection(ctx, section)
	}

	return controller.router.ShowSection(section)
}

func (controller *ConsoleController) ToggleAction(_ context.Context, args []string) error {
	_, err := controller.router.ToggleSection(args[0])

	return err
}

func (controller *ConsoleController) LoginAction(ctx context.Context, args []string) error {
	return controller.auth.Login(ctx, args[0], args[1])
}

func (controller *ConsoleController) SignupAction(ctx context.Context, args []string) error {
	return controller.auth.Signup(ctx, SignupRequest{
		Username:  args[0],
		Password:  args[1],
		FirstName: args[2],
		LastName:  args[3],
		Role:      Role(args[4]),
	})
}

func (controller *ConsoleController) LogoutAction(context.Context, []string) error {
	return controller.auth.Logout()
}

func (controller *ConsoleController) TeachersAction(ctx context.Context, _ []string) error {
	controller.admin.LoadTeachers(ctx)

	return nil
}

func (controller *ConsoleController) RequestsAction(ctx context.Context, _ []string) error {
	controller.admin.LoadRequests(ctx)

	return nil
}

func (controller *ConsoleController) AssignTeacherAction(ctx context.Context, args []string) error {
	return controller.admin.AssignTeacher(ctx, AssignTeacherForm{TeacherId: args[0], ClassName: args[1]})
}

func (controller *ConsoleController) StudentsAction(ctx context.Context, _ []string) error {
	controller.teacher.LoadStudents(ctx)

	return nil
}

func (controller *ConsoleController) SubjectsAction(ctx context.Context, _ []string) error {
	controller.teacher.LoadSubjects(ctx)

	return nil
}

func (controller *ConsoleController) AddStudentAction(ctx context.Context, args []string) error {
	return controller.teacher.AddStudent(ctx, AddStudentForm{Name: args[0], Section: args[1]})
}

func (controller *ConsoleController) AssignGradeAction(ctx context.Context, args []string) error {
	return controller.teacher.AssignGrade(ctx, AssignGradeForm{StudentId: args[0], SubjectId: args[1], GradeValue: args[2]})
}

func (controller *ConsoleController) MyGradesAction(ctx context.Context, _ []string) error {
	controller.student.LoadMyGrades(ctx)

	return nil
}

func (controller *ConsoleController) ExportAction(_ context.Context, args []string) error {
	return controller.student.ExportReportCard(args[0])
}

func (controller *ConsoleController) rowAction(action func(ctx context.Context, id int64) error) CommandHandler {
	return func(ctx context.Context, args []string) error {
		id, err := parseRowId(args[0])
		if err != nil {
			return err
		}

		return action(ctx, id)
	}
}

func (controller *ConsoleController) render(force bool) {
	var err error
	if force {
		err = controller.composer.Render()
	} else {
		err = controller.composer.RenderIfChanged()
	}

	if err != nil {
		_, _ = fmt.Fprintf(controller.out, "Failed to render screen: %v\n", err)
	}
}
