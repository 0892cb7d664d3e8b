package main

// Element identifiers of the rendered surface. They match the ids of the web front end
// so screens and tables can be addressed the same way from both clients.
const (
	LoginSection   = "loginSection"
	SignupSection  = "signupSection"
	AdminSection   = "adminSection"
	TeacherSection = "teacherSection"
	StudentSection = "studentSection"
)

const (
	AssignTeacherPanel = "assignTeacherForm"
	AddStudentPanel    = "addStudentForm"
	AssignGradePanel   = "assignGradeForm"
)

const (
	TeachersTable = "teachersTable"
	RequestsTable = "requestsTable"
	StudentsTable = "studentsTable"
	GradesTable   = "gradesTable"
	GradeStats    = "gradeStats"
)

const (
	TeacherSelect = "teacherId"
	StudentSelect = "studentId"
	SubjectSelect = "subjectId"
)

const (
	MessageElement      = "message"
	ErrorMessageElement = "errorMsg"
)

var allSections = []string{LoginSection, SignupSection, AdminSection, TeacherSection, StudentSection}

var allPanels = []string{AssignTeacherPanel, AddStudentPanel, AssignGradePanel}
