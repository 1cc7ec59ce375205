package app

import "fmt"

// View identifies the screen the session is currently on.
type View string

const (
	ViewDashboard         View = "dashboard"
	ViewCreateSyllabus    View = "create-syllabus"
	ViewSyllabus          View = "view-syllabus"
	ViewGeneratingContent View = "generating-content"
	ViewContentViewer     View = "content-viewer"
)

// Tab is the active sub-tab of the content viewer.
type Tab string

const (
	TabLecture   Tab = "lecture"
	TabCase      Tab = "case"
	TabKazus     Tab = "kazus"
	TabQuestions Tab = "questions"
	TabTests     Tab = "tests"
)

// ParseTab converts a string to a Tab.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabLecture, TabCase, TabKazus, TabQuestions, TabTests:
		return Tab(s), nil
	}
	return "", fmt.Errorf("unknown tab: %q", s)
}

// ExportKind is a tagged export action. Holding the kind instead of a
// deferred closure keeps the confirmation step free of arbitrary callbacks.
type ExportKind string

const (
	ExportSyllabusPDF   ExportKind = "syllabus-pdf"
	ExportSyllabusDOCX  ExportKind = "syllabus-docx"
	ExportMaterialsPDF  ExportKind = "materials-pdf"
	ExportMaterialsDOCX ExportKind = "materials-docx"
	ExportTestBankXLSX  ExportKind = "testbank-xlsx"
)

// ParseExportKind converts a string to an ExportKind.
func ParseExportKind(s string) (ExportKind, error) {
	switch ExportKind(s) {
	case ExportSyllabusPDF, ExportSyllabusDOCX, ExportMaterialsPDF, ExportMaterialsDOCX, ExportTestBankXLSX:
		return ExportKind(s), nil
	}
	return "", fmt.Errorf("unknown export kind: %q", s)
}

// forSyllabus reports whether the kind exports the active syllabus
// (available from the syllabus view) as opposed to the active materials
// (available from the content viewer).
func (k ExportKind) forSyllabus() bool {
	return k == ExportSyllabusPDF || k == ExportSyllabusDOCX
}

// PendingExport is the export awaiting user confirmation.
type PendingExport struct {
	Kind    ExportKind `json:"kind"`
	Message string     `json:"message"`
}
