package main

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"sync"
	"text/template"
)

//go:embed templates/*.tmpl
var screenTemplates embed.FS

type ScreenRendererInterface interface {
	Render() error
	// RenderIfChanged skips the write when the screen is identical to the last one written.
	RenderIfChanged() error
}

type ScreenData struct {
	Section  string
	Tables   map[string]Table
	Selects  map[string]Select
	Texts    map[string]string
	Expanded map[string]bool
	Stats    *GradeStatsView
}

type ScreenComposer struct {
	out       io.Writer
	router    ViewRouterInterface
	document  *Document
	templates *template.Template

	mutex      sync.Mutex
	lastScreen string
}

func NewScreenComposer(out io.Writer, router ViewRouterInterface, document *Document) *ScreenComposer {
	return &ScreenComposer{
		out:      out,
		router:   router,
		document: document,
		templates: template.Must(
			template.New("").
				Funcs(TemplateFunctionMap).
				ParseFS(screenTemplates, "templates/*.tmpl"),
		),
	}
}

func (composer *ScreenComposer) Compose(section string) (error, string) {
	data := ScreenData{
		Section:  section,
		Tables:   make(map[string]Table, len(tableColumns)),
		Selects:  make(map[string]Select),
		Texts:    make(map[string]string),
		Expanded: make(map[string]bool, len(allPanels)),
		Stats:    composer.document.Stats(),
	}

	for tableId := range tableColumns {
		data.Tables[tableId] = composer.document.Table(tableId)
	}
	for _, selectId := range []string{TeacherSelect, StudentSelect, SubjectSelect} {
		data.Selects[selectId] = composer.document.Select(selectId)
	}
	for _, elementId := range []string{MessageElement, ErrorMessageElement} {
		data.Texts[elementId] = composer.document.Text(elementId)
	}
	for _, panel := range allPanels {
		data.Expanded[panel] = composer.router.IsExpanded(panel)
	}

	output := bytes.Buffer{}
	err := composer.templates.ExecuteTemplate(&output, section+".tmpl", data)

	return err, output.String()
}

func (composer *ScreenComposer) Render() error {
	return composer.render(true)
}

func (composer *ScreenComposer) RenderIfChanged() error {
	return composer.render(false)
}

func (composer *ScreenComposer) render(force bool) error {
	err, screen := composer.Compose(composer.router.ActiveSection())
	if err != nil {
		return err
	}

	composer.mutex.Lock()
	defer composer.mutex.Unlock()

	if !force && screen == composer.lastScreen {
		return nil
	}
	composer.lastScreen = screen

	_, err = fmt.Fprint(composer.out, screen)

	return err
}
