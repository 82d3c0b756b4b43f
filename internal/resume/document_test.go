package resume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSectionKey(t *testing.T) {
	for _, key := range AllSections {
		parsed, err := ParseSectionKey(string(key))
		require.NoError(t, err)
		assert.Equal(t, key, parsed)
	}

	_, err := ParseSectionKey("hobbies")
	var sectionErr *SectionError
	require.ErrorAs(t, err, &sectionErr)
	assert.Equal(t, "hobbies", sectionErr.Section)
}

func TestSectionKey_IsList(t *testing.T) {
	assert.False(t, SectionSummary.IsList())
	assert.True(t, SectionExperience.IsList())
	assert.True(t, SectionEducation.IsList())
	assert.True(t, SectionProjects.IsList())
	assert.True(t, SectionSkills.IsList())
}

func TestValidateSectionOrder(t *testing.T) {
	tests := []struct {
		name    string
		order   []SectionKey
		wantErr bool
	}{
		{name: "default", order: DefaultSectionOrder()},
		{name: "reversed", order: []SectionKey{SectionSkills, SectionProjects, SectionEducation, SectionExperience, SectionSummary}},
		{name: "missing key", order: []SectionKey{SectionSummary, SectionExperience, SectionEducation, SectionProjects}, wantErr: true},
		{name: "duplicate key", order: []SectionKey{SectionSummary, SectionSummary, SectionEducation, SectionProjects, SectionSkills}, wantErr: true},
		{name: "unknown key", order: []SectionKey{SectionSummary, "hobbies", SectionEducation, SectionProjects, SectionSkills}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSectionOrder(tt.order)
			if tt.wantErr {
				var orderErr *OrderError
				assert.ErrorAs(t, err, &orderErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultSectionOrder_ReturnsCopy(t *testing.T) {
	order := DefaultSectionOrder()
	order[0] = SectionSkills
	assert.Equal(t, SectionSummary, DefaultSectionOrder()[0])
	assert.Equal(t, SectionSummary, AllSections[0])
}

func TestPlaceholder_IsFullyPopulated(t *testing.T) {
	doc := Placeholder()

	assert.NotEmpty(t, doc.Contact.Name)
	assert.NotEmpty(t, doc.Summary)
	assert.Len(t, doc.Experience, 1)
	assert.Len(t, doc.Education, 1)
	assert.Len(t, doc.Projects, 1)
	assert.Len(t, doc.Skills, 3)
	require.NoError(t, ValidateSectionOrder(doc.SectionOrder))
	assert.Equal(t, []string{"skill1", "skill2", "skill3"}, doc.ItemIDs(SectionSkills))
}

func TestClone_IsDeep(t *testing.T) {
	doc := Placeholder()
	clone := doc.Clone()

	clone.Experience[0].Description[0] = "changed"
	clone.Skills[0].Items = "changed"
	clone.SectionOrder[0] = SectionSkills

	assert.NotEqual(t, "changed", doc.Experience[0].Description[0])
	assert.NotEqual(t, "changed", doc.Skills[0].Items)
	assert.Equal(t, SectionSummary, doc.SectionOrder[0])
}

func TestClone_PreservesNilLists(t *testing.T) {
	clone := Document{}.Clone()
	assert.Nil(t, clone.Experience)
	assert.Nil(t, clone.Projects)
	assert.Nil(t, clone.SectionOrder)
}

func TestIndexOfAndIDAt(t *testing.T) {
	doc := Placeholder()

	assert.Equal(t, 1, doc.IndexOf(SectionSkills, "skill2"))
	assert.Equal(t, -1, doc.IndexOf(SectionSkills, "missing"))
	assert.Equal(t, -1, doc.IndexOf(SectionSummary, "skill2"))

	id, ok := doc.IDAt(SectionSkills, 2)
	assert.True(t, ok)
	assert.Equal(t, "skill3", id)

	_, ok = doc.IDAt(SectionSkills, 3)
	assert.False(t, ok)
	_, ok = doc.IDAt(SectionSkills, -1)
	assert.False(t, ok)
}
