package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(Options{})
	t.Cleanup(s.Close)
	return s
}

func TestNew_Defaults(t *testing.T) {
	s := newTestStore(t)

	resume := s.Resume()
	assert.Equal(t, types.PlaceholderFullName, resume.Basics.FullName)
	assert.Len(t, resume.Sections, 4)
	assert.Equal(t, types.DefaultTemplate, s.SelectedTemplateID())
	assert.False(t, s.Dirty())
	assert.False(t, s.PreviewMode())
}

func TestResume_ReturnsDeepCopy(t *testing.T) {
	s := newTestStore(t)

	copy1 := s.Resume()
	copy1.Basics.FullName = "Mutated"
	copy1.Sections[0].Title = "Mutated"

	copy2 := s.Resume()
	assert.Equal(t, types.PlaceholderFullName, copy2.Basics.FullName)
	assert.NotEqual(t, "Mutated", copy2.Sections[0].Title)
}

func TestUpdateBasics_MarksDirty(t *testing.T) {
	s := newTestStore(t)

	s.UpdateBasics(types.ResumeBasics{FullName: "Ada Lovelace"})

	assert.True(t, s.Dirty())
	assert.Equal(t, "Ada Lovelace", s.Resume().Basics.FullName)
}

func TestDirty_ClearsAfterDebounce(t *testing.T) {
	s := New(Options{CleanDelay: 20 * time.Millisecond})
	t.Cleanup(s.Close)

	s.UpdateBasics(types.ResumeBasics{FullName: "Ada"})
	require.True(t, s.Dirty())

	assert.Eventually(t, func() bool { return !s.Dirty() }, time.Second, 5*time.Millisecond)
}

func TestDirty_DebounceIsTrailingEdge(t *testing.T) {
	s := New(Options{CleanDelay: 50 * time.Millisecond})
	t.Cleanup(s.Close)

	s.UpdateBasics(types.ResumeBasics{FullName: "Ada"})
	time.Sleep(30 * time.Millisecond)
	s.UpdateBasics(types.ResumeBasics{FullName: "Ada L."})
	time.Sleep(30 * time.Millisecond)

	// Second mutation re-armed the timer, so the flag is still set
	assert.True(t, s.Dirty())
}

func TestAddSection(t *testing.T) {
	s := newTestStore(t)

	section := s.AddSection(types.SectionLanguages)

	assert.NotEmpty(t, section.ID)
	assert.Equal(t, types.SectionLanguages, section.Type)
	assert.Equal(t, "Languages", section.Title)
	assert.True(t, section.Visible)
	assert.Equal(t, 4, section.Order, "should go after the four default sections")

	resume := s.Resume()
	assert.Len(t, resume.Sections, 5)
}

func TestAddSection_UnknownTypeBecomesCustom(t *testing.T) {
	s := newTestStore(t)
	section := s.AddSection(types.SectionType("nonsense"))
	assert.Equal(t, types.SectionCustom, section.Type)
}

func TestUpdateSection(t *testing.T) {
	s := newTestStore(t)
	resume := s.Resume()
	section := resume.Sections[0]
	section.TitleOverride = "My Work"
	section.Visible = false

	require.NoError(t, s.UpdateSection(section))

	got := s.Resume().Sections[0]
	assert.Equal(t, "My Work", got.TitleOverride)
	assert.False(t, got.Visible)
}

func TestUpdateSection_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateSection(types.ResumeSection{ID: "missing"})

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "section", notFound.Kind)
	assert.Equal(t, "missing", notFound.ID)
}

func TestRemoveSection(t *testing.T) {
	s := newTestStore(t)
	id := s.Resume().Sections[0].ID

	require.NoError(t, s.RemoveSection(id))
	assert.Len(t, s.Resume().Sections, 3)

	err := s.RemoveSection(id)
	assert.Error(t, err)
}

func TestReorderSection(t *testing.T) {
	s := newTestStore(t)
	before := s.Resume().Sections
	last := before[len(before)-1]

	require.NoError(t, s.ReorderSection(last.ID, 0))

	after := s.Resume().Sections
	assert.Equal(t, last.ID, after[0].ID)
	for i, section := range after {
		assert.Equal(t, i, section.Order, "order values must be contiguous")
	}
}

func TestReorderSection_ClampsIndex(t *testing.T) {
	s := newTestStore(t)
	first := s.Resume().Sections[0]

	require.NoError(t, s.ReorderSection(first.ID, 99))
	after := s.Resume().Sections
	assert.Equal(t, first.ID, after[len(after)-1].ID)

	require.NoError(t, s.ReorderSection(first.ID, -5))
	assert.Equal(t, first.ID, s.Resume().Sections[0].ID)
}

func TestItemLifecycle(t *testing.T) {
	s := newTestStore(t)
	sectionID := s.Resume().Sections[0].ID

	item, err := s.AddItem(sectionID)
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)

	item.Heading = "Engineer"
	item.DescriptionBullets = []string{"Shipped"}
	require.NoError(t, s.UpdateItem(sectionID, item))

	got := s.Resume().Sections[0].Items
	require.Len(t, got, 1)
	assert.Equal(t, "Engineer", got[0].Heading)

	require.NoError(t, s.RemoveItem(sectionID, item.ID))
	assert.Empty(t, s.Resume().Sections[0].Items)
}

func TestItem_NotFound(t *testing.T) {
	s := newTestStore(t)
	sectionID := s.Resume().Sections[0].ID

	_, err := s.AddItem("missing-section")
	assert.Error(t, err)

	err = s.UpdateItem(sectionID, types.ResumeItem{ID: "missing-item"})
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "item", notFound.Kind)
}

func TestReorderItem(t *testing.T) {
	s := newTestStore(t)
	sectionID := s.Resume().Sections[0].ID

	first, err := s.AddItem(sectionID)
	require.NoError(t, err)
	second, err := s.AddItem(sectionID)
	require.NoError(t, err)

	require.NoError(t, s.ReorderItem(sectionID, second.ID, 0))

	items := s.Resume().Sections[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestSetPreviewMode_DoesNotMarkDirty(t *testing.T) {
	s := newTestStore(t)

	s.SetPreviewMode(true)

	assert.True(t, s.PreviewMode())
	assert.False(t, s.Dirty())
}

func TestLoadResume_ClearsDirty(t *testing.T) {
	s := newTestStore(t)
	s.UpdateBasics(types.ResumeBasics{FullName: "Ada"})
	require.True(t, s.Dirty())

	replacement := types.DefaultResume()
	replacement.Basics.FullName = "Grace Hopper"
	s.LoadResume(replacement)

	assert.False(t, s.Dirty())
	assert.Equal(t, "Grace Hopper", s.Resume().Basics.FullName)
}

func TestResetResume(t *testing.T) {
	s := newTestStore(t)
	s.UpdateBasics(types.ResumeBasics{FullName: "Ada"})
	s.SetTemplate("modern-forest")

	s.ResetResume()

	assert.False(t, s.Dirty())
	assert.Equal(t, types.PlaceholderFullName, s.Resume().Basics.FullName)
	assert.Equal(t, types.DefaultTemplate, s.SelectedTemplateID())
}

func TestPersistence_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "snapshot.json")

	s := New(Options{SnapshotPath: path})
	s.UpdateBasics(types.ResumeBasics{FullName: "Ada Lovelace"})
	s.SetTemplate("minimal-slate")
	s.Close()

	_, err := os.Stat(path)
	require.NoError(t, err, "snapshot file should exist after mutation")

	reloaded := New(Options{SnapshotPath: path})
	t.Cleanup(reloaded.Close)

	assert.Equal(t, "Ada Lovelace", reloaded.Resume().Basics.FullName)
	assert.Equal(t, "minimal-slate", reloaded.SelectedTemplateID())
	assert.False(t, reloaded.Dirty(), "a freshly loaded store is clean")
}

func TestPersistence_ExplicitCurrentFalseSurvivesReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")

	s := New(Options{SnapshotPath: path})
	sectionID := s.Resume().Sections[0].ID
	item, err := s.AddItem(sectionID)
	require.NoError(t, err)

	// An engagement recorded as ended even though the end date text says
	// otherwise. The explicit flag must win across the reload, not be
	// re-inferred from the text.
	item.Heading = "Engineer"
	item.EndDate = "Present"
	item.Current = false
	require.NoError(t, s.UpdateItem(sectionID, item))
	s.Close()

	reloaded := New(Options{SnapshotPath: path})
	t.Cleanup(reloaded.Close)

	items := reloaded.Resume().Sections[0].Items
	require.Len(t, items, 1)
	assert.Equal(t, "Present", items[0].EndDate)
	require.False(t, items[0].Current, "explicit current=false must survive the snapshot round-trip")
}

func TestPersistence_CorruptSnapshotIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{ not json"), 0o644))

	s := New(Options{SnapshotPath: path})
	t.Cleanup(s.Close)

	assert.Equal(t, types.PlaceholderFullName, s.Resume().Basics.FullName)
}

func TestPersistence_LegacySnapshotNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	legacy := `{"resumeData": {"basics": {"name": "Old Format", "objective": "Legacy"}}, "selectedTemplateId": "classic"}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	s := New(Options{SnapshotPath: path})
	t.Cleanup(s.Close)

	resume := s.Resume()
	assert.Equal(t, "Old Format", resume.Basics.FullName)
	assert.Equal(t, "Legacy", resume.Basics.Summary)
}
