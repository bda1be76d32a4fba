// Package store holds the single mutable resume document plus UI selection
// state, with wholesale snapshot persistence after every mutation.
//
// The store is an explicit, constructed instance injected into the server
// and CLI layers. Every mutation replaces the relevant subtree, marks the
// document dirty and synchronously writes a snapshot; a trailing-edge
// debounce timer clears the dirty flag after roughly a second of
// inactivity. Persistence is last-write-wins with no cross-process
// coordination.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-studio/internal/normalize"
	"resume-studio/internal/types"
)

// DefaultCleanDelay is the debounce interval before a dirty document is
// marked clean again.
const DefaultCleanDelay = time.Second

// NotFoundError indicates a section or item id that is not in the document.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// snapshot is the persisted shape: the resume plus the selected template,
// nothing else. There is no versioning guarding this against schema drift;
// loads go through the normalizer instead.
type snapshot struct {
	ResumeData         json.RawMessage `json:"resumeData"`
	SelectedTemplateID string          `json:"selectedTemplateId"`
}

// Store is the single source of truth for the in-progress resume.
type Store struct {
	mu           sync.Mutex
	resume       types.ResumeData
	templateID   string
	previewMode  bool
	dirty        bool
	snapshotPath string
	cleanDelay   time.Duration
	cleanTimer   *time.Timer
}

// Options configure a Store.
type Options struct {
	// SnapshotPath is the file the snapshot is written to. Empty disables
	// persistence (useful in tests).
	SnapshotPath string
	// CleanDelay overrides the debounce interval. Zero means DefaultCleanDelay.
	CleanDelay time.Duration
}

// New creates a store, restoring state from the snapshot file when one
// exists. A missing or unreadable snapshot yields the default resume;
// snapshot contents pass through the normalizer so legacy shapes load.
func New(opts Options) *Store {
	s := &Store{
		resume:       types.DefaultResume(),
		templateID:   types.DefaultTemplate,
		snapshotPath: opts.SnapshotPath,
		cleanDelay:   opts.CleanDelay,
	}
	if s.cleanDelay == 0 {
		s.cleanDelay = DefaultCleanDelay
	}

	if opts.SnapshotPath != "" {
		if data, err := os.ReadFile(opts.SnapshotPath); err == nil {
			var snap snapshot
			if err := json.Unmarshal(data, &snap); err == nil {
				if len(snap.ResumeData) > 0 {
					s.resume = normalize.ResumeJSON(snap.ResumeData)
				}
				if snap.SelectedTemplateID != "" {
					s.templateID = snap.SelectedTemplateID
				}
			} else {
				log.Printf("[store] ignoring unreadable snapshot %s: %v", opts.SnapshotPath, err)
			}
		}
	}

	return s
}

// Close stops the debounce timer.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cleanTimer != nil {
		s.cleanTimer.Stop()
		s.cleanTimer = nil
	}
}

// Resume returns a deep copy of the current resume.
func (s *Store) Resume() types.ResumeData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resume.Clone()
}

// SelectedTemplateID returns the currently selected template.
func (s *Store) SelectedTemplateID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.templateID
}

// PreviewMode reports whether preview mode is active.
func (s *Store) PreviewMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previewMode
}

// Dirty reports whether there are changes newer than the last debounce tick.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// UpdateBasics replaces the basics block.
func (s *Store) UpdateBasics(basics types.ResumeBasics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resume.Basics = basics
	s.resume.Basics.Socials = append([]types.SocialLink(nil), basics.Socials...)
	s.afterMutationLocked()
}

// UpdateMetadata replaces the presentation metadata.
func (s *Store) UpdateMetadata(meta types.ResumeMetadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resume.Metadata = meta
	s.afterMutationLocked()
}

// AddSection appends a new empty section of the given type and returns it.
func (s *Store) AddSection(sectionType types.SectionType) types.ResumeSection {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !types.KnownSectionType(sectionType) {
		sectionType = types.SectionCustom
	}
	order := 0
	for _, section := range s.resume.Sections {
		if section.Order >= order {
			order = section.Order + 1
		}
	}
	section := types.ResumeSection{
		ID:      uuid.NewString(),
		Type:    sectionType,
		Title:   types.DefaultSectionTitle(sectionType),
		Visible: true,
		Items:   []types.ResumeItem{},
		Order:   order,
	}
	s.resume.Sections = append(s.resume.Sections, section)
	s.afterMutationLocked()
	return section.Clone()
}

// UpdateSection replaces a section wholesale, matched by id.
func (s *Store) UpdateSection(section types.ResumeSection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.resume.Sections {
		if s.resume.Sections[i].ID == section.ID {
			s.resume.Sections[i] = section.Clone()
			s.afterMutationLocked()
			return nil
		}
	}
	return &NotFoundError{Kind: "section", ID: section.ID}
}

// RemoveSection deletes a section by id.
func (s *Store) RemoveSection(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.resume.Sections {
		if s.resume.Sections[i].ID == id {
			s.resume.Sections = append(s.resume.Sections[:i], s.resume.Sections[i+1:]...)
			s.afterMutationLocked()
			return nil
		}
	}
	return &NotFoundError{Kind: "section", ID: id}
}

// ReorderSection moves a section to the given position and reassigns
// contiguous order values across the list.
func (s *Store) ReorderSection(id string, toIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := -1
	for i := range s.resume.Sections {
		if s.resume.Sections[i].ID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return &NotFoundError{Kind: "section", ID: id}
	}

	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex >= len(s.resume.Sections) {
		toIndex = len(s.resume.Sections) - 1
	}

	section := s.resume.Sections[from]
	s.resume.Sections = append(s.resume.Sections[:from], s.resume.Sections[from+1:]...)
	s.resume.Sections = append(s.resume.Sections[:toIndex],
		append([]types.ResumeSection{section}, s.resume.Sections[toIndex:]...)...)
	for i := range s.resume.Sections {
		s.resume.Sections[i].Order = i
	}

	s.afterMutationLocked()
	return nil
}

// AddItem appends a new empty item to a section and returns it.
func (s *Store) AddItem(sectionID string) (types.ResumeItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.resume.Sections {
		if s.resume.Sections[i].ID == sectionID {
			item := types.ResumeItem{
				ID:                 uuid.NewString(),
				DescriptionBullets: []string{},
				TechStack:          []string{},
				Tags:               []string{},
			}
			s.resume.Sections[i].Items = append(s.resume.Sections[i].Items, item)
			s.afterMutationLocked()
			return item.Clone(), nil
		}
	}
	return types.ResumeItem{}, &NotFoundError{Kind: "section", ID: sectionID}
}

// UpdateItem replaces an item wholesale, matched by id within its section.
func (s *Store) UpdateItem(sectionID string, item types.ResumeItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	section := s.sectionLocked(sectionID)
	if section == nil {
		return &NotFoundError{Kind: "section", ID: sectionID}
	}
	for i := range section.Items {
		if section.Items[i].ID == item.ID {
			section.Items[i] = item.Clone()
			s.afterMutationLocked()
			return nil
		}
	}
	return &NotFoundError{Kind: "item", ID: item.ID}
}

// RemoveItem deletes an item by id from a section.
func (s *Store) RemoveItem(sectionID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	section := s.sectionLocked(sectionID)
	if section == nil {
		return &NotFoundError{Kind: "section", ID: sectionID}
	}
	for i := range section.Items {
		if section.Items[i].ID == itemID {
			section.Items = append(section.Items[:i], section.Items[i+1:]...)
			s.afterMutationLocked()
			return nil
		}
	}
	return &NotFoundError{Kind: "item", ID: itemID}
}

// ReorderItem moves an item to the given position within its section.
func (s *Store) ReorderItem(sectionID, itemID string, toIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	section := s.sectionLocked(sectionID)
	if section == nil {
		return &NotFoundError{Kind: "section", ID: sectionID}
	}

	from := -1
	for i := range section.Items {
		if section.Items[i].ID == itemID {
			from = i
			break
		}
	}
	if from == -1 {
		return &NotFoundError{Kind: "item", ID: itemID}
	}

	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex >= len(section.Items) {
		toIndex = len(section.Items) - 1
	}

	item := section.Items[from]
	section.Items = append(section.Items[:from], section.Items[from+1:]...)
	section.Items = append(section.Items[:toIndex],
		append([]types.ResumeItem{item}, section.Items[toIndex:]...)...)

	s.afterMutationLocked()
	return nil
}

// SetTemplate selects a template.
func (s *Store) SetTemplate(templateID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templateID = templateID
	s.afterMutationLocked()
}

// SetPreviewMode toggles preview mode. Preview mode is UI state only and is
// not persisted.
func (s *Store) SetPreviewMode(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.previewMode = on
}

// LoadResume replaces the entire aggregate and clears the dirty flag.
func (s *Store) LoadResume(resume types.ResumeData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resume = resume.Clone()
	s.dirty = false
	s.persistLocked()
}

// ResetResume restores the hardcoded default aggregate and clears the dirty
// flag.
func (s *Store) ResetResume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resume = types.DefaultResume()
	s.templateID = types.DefaultTemplate
	s.dirty = false
	s.persistLocked()
}

func (s *Store) sectionLocked(id string) *types.ResumeSection {
	for i := range s.resume.Sections {
		if s.resume.Sections[i].ID == id {
			return &s.resume.Sections[i]
		}
	}
	return nil
}

// afterMutationLocked marks the document dirty, re-arms the trailing-edge
// debounce timer and persists the snapshot.
func (s *Store) afterMutationLocked() {
	s.dirty = true
	if s.cleanTimer != nil {
		s.cleanTimer.Stop()
	}
	s.cleanTimer = time.AfterFunc(s.cleanDelay, s.markClean)
	s.persistLocked()
}

func (s *Store) markClean() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dirty {
		s.dirty = false
	}
}

// persistLocked writes the snapshot. Failures are logged, never surfaced:
// persistence is fire-and-forget by contract.
func (s *Store) persistLocked() {
	if s.snapshotPath == "" {
		return
	}

	raw, err := json.Marshal(s.resume)
	if err != nil {
		log.Printf("[store] failed to encode resume snapshot: %v", err)
		return
	}
	data, err := json.Marshal(snapshot{
		ResumeData:         raw,
		SelectedTemplateID: s.templateID,
	})
	if err != nil {
		log.Printf("[store] failed to encode snapshot: %v", err)
		return
	}

	if dir := filepath.Dir(s.snapshotPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("[store] failed to create snapshot dir: %v", err)
			return
		}
	}
	if err := os.WriteFile(s.snapshotPath, data, 0o644); err != nil {
		log.Printf("[store] failed to write snapshot %s: %v", s.snapshotPath, err)
	}
}
