package client

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinedex/internal/media"
	"cinedex/internal/production"
)

// Mode is the state of the production form.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	default:
		return "create"
	}
}

// Auto-fill notices shown to the user. They are warnings, not errors.
const (
	WarningEmptyTitle = "Digite o título para buscar."
	WarningNoMatches  = "Nenhum filme ou série encontrado"
)

// ErrNotFound is returned by BeginEdit when the id is not in the catalog.
var ErrNotFound = errors.New("production not found")

// Backend is the subset of the API the form drives.
type Backend interface {
	ListAll(ctx context.Context) ([]production.Production, error)
	Create(ctx context.Context, p production.Production) (production.Production, error)
	Update(ctx context.Context, id int64, p production.Production) (production.Production, error)
}

// MediaSearcher looks up auto-fill candidates.
type MediaSearcher interface {
	SearchMedia(ctx context.Context, query, language string) ([]media.Result, error)
}

// Form holds the create/edit state for a single production.
//
// The form starts in create-mode. BeginEdit switches to edit-mode; a
// successful Submit or Reset always returns to create-mode with empty fields.
type Form struct {
	backend   Backend
	mode      Mode
	editingID int64
	fields    production.Production

	candidates []media.Result
}

// NewForm returns an empty form in create-mode.
func NewForm(backend Backend) *Form {
	return &Form{backend: backend}
}

// Mode reports the current state.
func (f *Form) Mode() Mode { return f.mode }

// EditingID is the id being edited, or zero in create-mode.
func (f *Form) EditingID() int64 { return f.editingID }

// Fields returns a copy of the form values.
func (f *Form) Fields() production.Production { return f.fields.Clone() }

// Set replaces the form values. The id is managed by the form and ignored.
func (f *Form) Set(p production.Production) {
	p = p.Clone()
	p.ID = 0
	f.fields = p
}

// Update applies fn to the form values.
func (f *Form) Update(fn func(*production.Production)) {
	if fn == nil {
		return
	}
	fn(&f.fields)
	f.fields.ID = 0
}

// Reset clears the fields and any pending candidates and returns to create-mode.
func (f *Form) Reset() {
	f.mode = ModeCreate
	f.editingID = 0
	f.fields = production.Production{}
	f.candidates = nil
}

// BeginEdit loads the record with id from the full list and enters edit-mode.
// On failure the form is left unchanged.
func (f *Form) BeginEdit(ctx context.Context, id int64) error {
	list, err := f.backend.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load productions: %w", err)
	}
	for _, p := range list {
		if p.ID != id {
			continue
		}
		f.mode = ModeEdit
		f.editingID = id
		f.candidates = nil
		f.Set(p)
		return nil
	}
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}

// Submit posts the form in create-mode or puts it in edit-mode. On success
// the form resets to create-mode; on failure state is kept so the user can retry.
func (f *Form) Submit(ctx context.Context) (production.Production, error) {
	var (
		saved production.Production
		err   error
	)
	switch f.mode {
	case ModeEdit:
		saved, err = f.backend.Update(ctx, f.editingID, f.fields.Clone())
	default:
		saved, err = f.backend.Create(ctx, f.fields.Clone())
	}
	if err != nil {
		return production.Production{}, err
	}
	f.Reset()
	return saved, nil
}

// AutoFillResult describes what an auto-fill lookup did to the form.
type AutoFillResult struct {
	// Warning is set when nothing was filled.
	Warning string
	// Filled is true when a single match populated the form.
	Filled bool
	// Candidates lists matches awaiting Choose when there is more than one.
	Candidates []media.Result
}

// AutoFill searches media for title. Zero matches yield a warning, one match
// fills the form directly and several are kept for Choose.
func (f *Form) AutoFill(ctx context.Context, searcher MediaSearcher, title, language string) (AutoFillResult, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return AutoFillResult{Warning: WarningEmptyTitle}, nil
	}
	if searcher == nil {
		return AutoFillResult{}, errors.New("media search unavailable")
	}
	results, err := searcher.SearchMedia(ctx, title, language)
	if err != nil {
		return AutoFillResult{}, err
	}
	switch len(results) {
	case 0:
		f.candidates = nil
		return AutoFillResult{Warning: WarningNoMatches}, nil
	case 1:
		f.candidates = nil
		f.fill(results[0])
		return AutoFillResult{Filled: true}, nil
	default:
		f.candidates = append([]media.Result(nil), results...)
		return AutoFillResult{Candidates: append([]media.Result(nil), results...)}, nil
	}
}

// Candidates returns the matches awaiting a choice.
func (f *Form) Candidates() []media.Result {
	return append([]media.Result(nil), f.candidates...)
}

// Choose fills the form from candidate i and dismisses the selection.
func (f *Form) Choose(i int) error {
	if len(f.candidates) == 0 {
		return errors.New("no candidates to choose from")
	}
	if i < 0 || i >= len(f.candidates) {
		return fmt.Errorf("choice %d out of range 1-%d", i+1, len(f.candidates))
	}
	f.fill(f.candidates[i])
	f.candidates = nil
	return nil
}

// fill copies candidate values into the form, keeping non-canonical extras.
func (f *Form) fill(r media.Result) {
	filled := r.Production()
	filled.Extras = f.fields.Extras
	f.fields = filled
}
