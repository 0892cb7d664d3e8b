package main

import (
	"sync"
)

const loadingMessage = "Loading..."

// RowAction is a command offered on a table row; RowId is passed to the handler registered for Command.
type RowAction struct {
	Command string
	Label   string
	RowId   int64
}

type TableRow struct {
	Cells   []string
	Actions []RowAction
	// Message spans the whole row; used for loading, error and "not found" placeholders.
	Message string
	IsError bool
}

type Table struct {
	Columns []string
	Rows    []TableRow
}

type SelectOption struct {
	Value string
	Label string
}

type Select struct {
	Placeholder string
	Options     []SelectOption
}

type GradeStatsView struct {
	AverageGrade   string
	PassedGrades   int
	TotalGrades    int
	PassPercentage int
	OverallStatus  string
}

var tableColumns = map[string][]string{
	TeachersTable: {"ID", "Name", "Username", "Status", "Assigned Class"},
	RequestsTable: {"ID", "Username", "Role", "Name", "Actions"},
	StudentsTable: {"ID", "Name", "Section", "Actions"},
	GradesTable:   {"Subject", "Grade", "Status", "Date Assigned"},
}

type Document struct {
	mutex   sync.RWMutex
	tables  map[string]Table
	selects map[string]Select
	texts   map[string]string
	stats   *GradeStatsView
	version uint64
}

func NewDocument() *Document {
	document := &Document{}
	document.Reset()

	return document
}

func (document *Document) Reset() {
	document.mutex.Lock()
	defer document.mutex.Unlock()

	document.tables = make(map[string]Table, len(tableColumns))
	for id, columns := range tableColumns {
		document.tables[id] = Table{Columns: columns}
	}
	document.selects = make(map[string]Select)
	document.texts = make(map[string]string)
	document.stats = nil
	document.version++
}

func (document *Document) SetRows(tableId string, rows []TableRow) {
	document.mutex.Lock()
	defer document.mutex.Unlock()

	table := document.tables[tableId]
	table.Rows = rows
	document.tables[tableId] = table
	document.version++
}

func (document *Document) ShowLoading(tableId string) {
	document.SetRows(tableId, []TableRow{{Message: loadingMessage}})
}

func (document *Document) ShowMessage(tableId string, message string) {
	document.SetRows(tableId, []TableRow{{Message: message}})
}

func (document *Document) ShowError(tableId string, message string) {
	document.SetRows(tableId, []TableRow{{Message: message, IsError: true}})
}

func (document *Document) Table(tableId string) Table {
	document.mutex.RLock()
	defer document.mutex.RUnlock()

	table := document.tables[tableId]
	table.Rows = append([]TableRow(nil), table.Rows...)

	return table
}

func (document *Document) SetOptions(selectId string, placeholder string, options []SelectOption) {
	document.mutex.Lock()
	defer document.mutex.Unlock()

	document.selects[selectId] = Select{Placeholder: placeholder, Options: options}
	document.version++
}

func (document *Document) Select(selectId string) Select {
	document.mutex.RLock()
	defer document.mutex.RUnlock()

	return document.selects[selectId]
}

func (document *Document) SetStats(stats *GradeStatsView) {
	document.mutex.Lock()
	defer document.mutex.Unlock()

	document.stats = stats
	document.version++
}

func (document *Document) Stats() *GradeStatsView {
	document.mutex.RLock()
	defer document.mutex.RUnlock()

	if document.stats == nil {
		return nil
	}
	stats := *document.stats

	return &stats
}

func (document *Document) SetText(elementId string, text string) {
	document.mutex.Lock()
	defer document.mutex.Unlock()

	document.texts[elementId] = text
	document.version++
}

func (document *Document) Text(elementId string) string {
	document.mutex.RLock()
	defer document.mutex.RUnlock()

	return document.texts[elementId]
}

func (document *Document) Version() uint64 {
	document.mutex.RLock()
	defer document.mutex.RUnlock()

	return document.version
}
