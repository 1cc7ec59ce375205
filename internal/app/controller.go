// Package app owns the per-session application state and drives the view
// transitions. The Controller is the only mutator; rendering layers receive
// read-only snapshots.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ustoz-pro/ustoz/internal/course"
	"github.com/ustoz-pro/ustoz/internal/export"
	"github.com/ustoz-pro/ustoz/internal/generator"
	"github.com/ustoz-pro/ustoz/internal/i18n"
)

var (
	// ErrBusy is returned while a generation request is outstanding.
	// Only one request is permitted at a time; callers disable the
	// triggering control rather than queue.
	ErrBusy = errors.New("a generation request is already in flight")
	// ErrSubjectRequired is the precondition guard for syllabus
	// generation; the operation is simply not invoked.
	ErrSubjectRequired = errors.New("subject must not be empty")
	// ErrInvalidState is returned when an action is not available from
	// the current view.
	ErrInvalidState = errors.New("action not available in current view")
	// ErrNoPendingExport is returned when confirming or declining with
	// nothing pending.
	ErrNoPendingExport = errors.New("no export awaiting confirmation")
)

// Generator is the content generation client the controller depends on.
type Generator interface {
	GenerateSyllabus(ctx context.Context, req generator.SyllabusRequest) (*course.Syllabus, error)
	GenerateMaterials(ctx context.Context, req generator.MaterialsRequest) (*course.GeneratedContent, error)
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	View           View                     `json:"view"`
	Loading        bool                     `json:"loading"`
	Language       i18n.Language            `json:"language"`
	Syllabus       *course.Syllabus         `json:"syllabus,omitempty"`
	FilteredTopics []course.Topic           `json:"filteredTopics,omitempty"`
	SelectedTopic  *course.Topic            `json:"selectedTopic,omitempty"`
	Content        *course.GeneratedContent `json:"content,omitempty"`
	Tab            Tab                      `json:"tab"`
	SearchQuery    string                   `json:"searchQuery"`
	Pending        *PendingExport           `json:"pendingExport,omitempty"`
	LastError      string                   `json:"lastError,omitempty"`
}

// Controller is the state container for one session.
type Controller struct {
	gen     Generator
	catalog *i18n.Catalog

	mu            sync.Mutex
	lang          i18n.Language
	view          View
	loading       bool
	syllabus      *course.Syllabus
	selectedTopic *course.Topic
	content       *course.GeneratedContent
	tab           Tab
	searchQuery   string
	pending       *PendingExport
	lastError     string
	subscribers   []chan Snapshot
}

// NewController creates a controller in the initial Dashboard view.
func NewController(gen Generator, catalog *i18n.Catalog, lang i18n.Language) *Controller {
	return &Controller{
		gen:     gen,
		catalog: catalog,
		lang:    lang,
		view:    ViewDashboard,
		tab:     TabLecture,
	}
}

// Snapshot returns a read-only copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		View:        c.view,
		Loading:     c.loading,
		Language:    c.lang,
		Tab:         c.tab,
		SearchQuery: c.searchQuery,
		LastError:   c.lastError,
	}
	if c.syllabus != nil {
		s := *c.syllabus
		s.Topics = append([]course.Topic(nil), c.syllabus.Topics...)
		s.Sources = append([]course.Source(nil), c.syllabus.Sources...)
		snap.Syllabus = &s
		snap.FilteredTopics = s.FilterTopics(c.searchQuery)
	}
	if c.selectedTopic != nil {
		t := *c.selectedTopic
		snap.SelectedTopic = &t
	}
	if c.content != nil {
		cc := *c.content
		cc.Questions = append([]string(nil), c.content.Questions...)
		cc.Tests = append([]course.TestItem(nil), c.content.Tests...)
		snap.Content = &cc
	}
	if c.pending != nil {
		p := *c.pending
		snap.Pending = &p
	}
	return snap
}

// Subscribe registers a listener that receives a snapshot after every
// mutation. The returned function cancels the subscription.
func (c *Controller) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 8)
	c.mu.Lock()
	c.subscribers = append(c.subscribers, ch)
	c.mu.Unlock()

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, sub := range c.subscribers {
			if sub == ch {
				c.subscribers = append(c.subscribers[:i], c.subscribers[i+1:]...)
				close(ch)
				return
			}
		}
	}
	return ch, cancel
}

// notifyLocked pushes the current snapshot to all subscribers. Slow
// subscribers are skipped rather than blocked on.
func (c *Controller) notifyLocked() {
	snap := c.snapshotLocked()
	for _, ch := range c.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
}

// SetLanguage switches the interface language. Stored data is unaffected.
func (c *Controller) SetLanguage(lang i18n.Language) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lang = lang
	c.notifyLocked()
}

// OpenDashboard navigates to the dashboard. Available from any view.
// Navigating away dismisses any export awaiting confirmation.
func (c *Controller) OpenDashboard() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = ViewDashboard
	c.pending = nil
	c.notifyLocked()
}

// OpenCreateSyllabus navigates to the syllabus creation form.
func (c *Controller) OpenCreateSyllabus() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view = ViewCreateSyllabus
	c.pending = nil
	c.notifyLocked()
}

// Back navigates one level up: content viewer returns to the syllabus,
// the syllabus returns to the creation form.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.view {
	case ViewContentViewer:
		c.view = ViewSyllabus
	case ViewSyllabus:
		c.view = ViewCreateSyllabus
	default:
		return ErrInvalidState
	}
	c.pending = nil
	c.notifyLocked()
	return nil
}

// SubmitSyllabus validates the form, invokes syllabus generation and on
// success replaces the active syllabus and enters the syllabus view. Only
// available from the creation form. The transition to the loading state
// happens before the backend call; the backend call runs without the state
// lock held.
func (c *Controller) SubmitSyllabus(ctx context.Context, subject string, topicCount int, difficulty course.Difficulty) error {
	c.mu.Lock()
	if c.view != ViewCreateSyllabus {
		c.mu.Unlock()
		return ErrInvalidState
	}
	if strings.TrimSpace(subject) == "" {
		c.mu.Unlock()
		return ErrSubjectRequired
	}
	if c.loading {
		c.mu.Unlock()
		return ErrBusy
	}
	c.loading = true
	c.lastError = ""
	c.searchQuery = ""
	c.pending = nil
	lang := c.lang
	c.notifyLocked()
	c.mu.Unlock()

	syllabus, err := c.gen.GenerateSyllabus(ctx, generator.SyllabusRequest{
		Subject:    subject,
		TopicCount: topicCount,
		Difficulty: difficulty,
		Language:   lang,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		// The syllabus path distinguishes parse failures from call
		// failures in its user-facing message.
		key := "error.syllabusCall"
		if generator.IsParse(err) {
			key = "error.syllabusParse"
		}
		c.lastError = c.catalog.T(c.lang, key)
		c.notifyLocked()
		return err
	}
	c.syllabus = syllabus
	c.selectedTopic = nil
	c.content = nil
	c.view = ViewSyllabus
	c.notifyLocked()
	return nil
}

// GenerateTopicMaterials opens a topic of the active syllabus for detailed
// content generation. The view transitions to GeneratingContent
// synchronously, before the backend responds; ContentViewer is only entered
// on success.
func (c *Controller) GenerateTopicMaterials(ctx context.Context, topicID string) error {
	c.mu.Lock()
	if c.view != ViewSyllabus || c.syllabus == nil {
		c.mu.Unlock()
		return ErrInvalidState
	}
	if c.loading {
		c.mu.Unlock()
		return ErrBusy
	}
	topic, ok := c.syllabus.TopicByID(topicID)
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("topic not found: %s", topicID)
	}
	c.selectedTopic = &topic
	c.view = ViewGeneratingContent
	c.loading = true
	c.lastError = ""
	c.pending = nil
	req := generator.MaterialsRequest{
		TopicTitle: topic.Title,
		Subject:    c.syllabus.Subject,
		Difficulty: c.syllabus.Difficulty,
		Language:   c.lang,
	}
	c.notifyLocked()
	c.mu.Unlock()

	content, err := c.gen.GenerateMaterials(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		// Discard partial state and fall back to the syllabus view.
		c.selectedTopic = nil
		c.content = nil
		c.view = ViewSyllabus
		c.lastError = c.catalog.T(c.lang, "error.content")
		c.notifyLocked()
		return err
	}
	c.content = content
	c.view = ViewContentViewer
	c.tab = TabLecture
	c.notifyLocked()
	return nil
}

// SetSearch updates the topic search filter in the syllabus view.
func (c *Controller) SetSearch(query string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != ViewSyllabus {
		return ErrInvalidState
	}
	c.searchQuery = query
	c.notifyLocked()
	return nil
}

// MoveTopic reorders the active syllabus's topics (drag-and-drop). Week
// numbers are untouched and no regeneration is triggered.
func (c *Controller) MoveTopic(from, to int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != ViewSyllabus || c.syllabus == nil {
		return ErrInvalidState
	}
	if err := c.syllabus.MoveTopic(from, to); err != nil {
		return err
	}
	c.notifyLocked()
	return nil
}

// SetTab switches the content viewer sub-tab.
func (c *Controller) SetTab(tab Tab) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view != ViewContentViewer {
		return ErrInvalidState
	}
	c.tab = tab
	c.notifyLocked()
	return nil
}

// RequestExport stages an export behind the confirmation gate. Syllabus
// exports are available from the syllabus view, materials exports from the
// content viewer.
func (c *Controller) RequestExport(kind ExportKind) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var subjectLabel, msgKey string
	if kind.forSyllabus() {
		if c.view != ViewSyllabus || c.syllabus == nil {
			return ErrInvalidState
		}
		subjectLabel = c.syllabus.Subject
	} else {
		if c.view != ViewContentViewer || c.content == nil || c.selectedTopic == nil {
			return ErrInvalidState
		}
		subjectLabel = c.selectedTopic.Title
	}
	switch kind {
	case ExportSyllabusPDF, ExportMaterialsPDF:
		msgKey = "confirm.pdf"
	case ExportSyllabusDOCX, ExportMaterialsDOCX:
		msgKey = "confirm.docx"
	case ExportTestBankXLSX:
		msgKey = "confirm.xlsx"
	default:
		return fmt.Errorf("unknown export kind: %q", kind)
	}

	c.pending = &PendingExport{
		Kind:    kind,
		Message: c.catalog.Tf(c.lang, msgKey, subjectLabel),
	}
	c.notifyLocked()
	return nil
}

// ConfirmExport runs the pending export and returns the rendered artifact.
// The pending action is cleared whether rendering succeeds or fails;
// renderer errors are surfaced, never swallowed.
func (c *Controller) ConfirmExport() (*export.Artifact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return nil, ErrNoPendingExport
	}
	kind := c.pending.Kind
	c.pending = nil
	defer c.notifyLocked()

	// The staged kind must still have its backing state.
	if kind.forSyllabus() {
		if c.syllabus == nil {
			return nil, ErrInvalidState
		}
	} else if c.selectedTopic == nil || c.content == nil {
		return nil, ErrInvalidState
	}

	appName := c.catalog.T(c.lang, "appName")

	var (
		artifact *export.Artifact
		err      error
	)
	switch kind {
	case ExportSyllabusPDF:
		title, sections := export.SyllabusPDFDocument(c.syllabus, c.catalog, c.lang)
		artifact, err = renderPDF(appName, title, sections)
	case ExportSyllabusDOCX:
		title, sections := export.SyllabusDOCXDocument(c.syllabus, c.catalog, c.lang)
		artifact, err = renderDOCX(title, sections)
	case ExportMaterialsPDF:
		title, sections := export.MaterialsPDFDocument(c.selectedTopic.Title, c.content)
		artifact, err = renderPDF(appName, title, sections)
	case ExportMaterialsDOCX:
		title, sections := export.MaterialsDOCXDocument(c.selectedTopic.Title, c.content, c.catalog, c.lang)
		artifact, err = renderDOCX(title, sections)
	case ExportTestBankXLSX:
		artifact, err = renderXLSX(c.selectedTopic.Title, c.content.Tests)
	default:
		err = fmt.Errorf("unknown export kind: %q", kind)
	}
	if err != nil {
		slog.Error("export failed", "kind", kind, "error", err)
		return nil, err
	}
	slog.Info("export rendered", "kind", kind, "filename", artifact.Filename, "bytes", len(artifact.Data))
	return artifact, nil
}

// DeclineExport discards the pending export with no side effect.
func (c *Controller) DeclineExport() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return ErrNoPendingExport
	}
	c.pending = nil
	c.notifyLocked()
	return nil
}

func renderPDF(appName, title string, sections []export.Section) (*export.Artifact, error) {
	data, err := export.RenderPDF(appName, title, sections)
	if err != nil {
		return nil, err
	}
	return &export.Artifact{Filename: export.Filename(title, ".pdf"), MIME: export.MIMEPDF, Data: data}, nil
}

func renderDOCX(title string, sections []export.Section) (*export.Artifact, error) {
	data, err := export.RenderDOCX(title, sections)
	if err != nil {
		return nil, err
	}
	return &export.Artifact{Filename: export.Filename(title, ".docx"), MIME: export.MIMEDOCX, Data: data}, nil
}

func renderXLSX(topicTitle string, tests []course.TestItem) (*export.Artifact, error) {
	data, err := export.RenderTestBankXLSX(topicTitle, tests)
	if err != nil {
		return nil, err
	}
	title := topicTitle + " Test Bank"
	return &export.Artifact{Filename: export.Filename(title, ".xlsx"), MIME: export.MIMEXLSX, Data: data}, nil
}
