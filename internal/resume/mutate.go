package resume

import (
	"strings"

	"github.com/google/uuid"
)

// DescriptionField is the one multi-line list field. Its value is split on line
// breaks into the ordered bullet sequence.
const DescriptionField = "description"

// ContactFields lists the editable contact field names.
var ContactFields = []string{"name", "email", "phone", "location", "linkedin", "github", "website"}

// NewID mints a fresh opaque item id.
func NewID() string {
	return uuid.NewString()
}

// SplitLines converts multi-line input into bullets, one per line.
func SplitLines(value string) []string {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	return strings.Split(value, "\n")
}

// UpdateContactField sets one contact attribute.
func (d Document) UpdateContactField(field, value string) (Document, error) {
	out := d.Clone()
	switch field {
	case "name":
		out.Contact.Name = value
	case "email":
		out.Contact.Email = value
	case "phone":
		out.Contact.Phone = value
	case "location":
		out.Contact.Location = value
	case "linkedin":
		out.Contact.LinkedIn = value
	case "github":
		out.Contact.GitHub = value
	case "website":
		out.Contact.Website = value
	default:
		return d, &FieldError{Section: "contact", Field: field}
	}
	return out, nil
}

// UpdateSummary replaces the summary text.
func (d Document) UpdateSummary(value string) Document {
	out := d.Clone()
	out.Summary = value
	return out
}

// UpdateListItemField sets one field on the item with the given id. An id that
// matches nothing leaves the document unchanged and is not an error.
func (d Document) UpdateListItemField(section SectionKey, id, field, value string) (Document, error) {
	if err := checkField(section, field); err != nil {
		return d, err
	}

	out := d.Clone()
	switch section {
	case SectionExperience:
		for i := range out.Experience {
			if out.Experience[i].ID == id {
				return out, setExperienceField(&out.Experience[i], field, value)
			}
		}
	case SectionEducation:
		for i := range out.Education {
			if out.Education[i].ID == id {
				return out, setEducationField(&out.Education[i], field, value)
			}
		}
	case SectionProjects:
		for i := range out.Projects {
			if out.Projects[i].ID == id {
				return out, setProjectField(&out.Projects[i], field, value)
			}
		}
	case SectionSkills:
		for i := range out.Skills {
			if out.Skills[i].ID == id {
				return out, setSkillField(&out.Skills[i], field, value)
			}
		}
	}
	return d, nil
}

// AddListItem appends a new item built from fields to the end of the section's list.
// The item always receives a freshly minted id; an "id" entry in fields is ignored.
func (d Document) AddListItem(section SectionKey, fields map[string]string) (Document, string, error) {
	if !section.IsList() {
		return d, "", &SectionError{Section: string(section), Message: "not a list section"}
	}
	for field := range fields {
		if field == "id" {
			continue
		}
		if err := checkField(section, field); err != nil {
			return d, "", err
		}
	}

	id := NewID()
	out := d.Clone()
	switch section {
	case SectionExperience:
		item := Experience{ID: id, Description: []string{}}
		for field, value := range fields {
			_ = setExperienceField(&item, field, value)
		}
		out.Experience = append(out.Experience, item)
	case SectionEducation:
		item := Education{ID: id}
		for field, value := range fields {
			_ = setEducationField(&item, field, value)
		}
		out.Education = append(out.Education, item)
	case SectionProjects:
		item := Project{ID: id}
		for field, value := range fields {
			_ = setProjectField(&item, field, value)
		}
		out.Projects = append(out.Projects, item)
	case SectionSkills:
		item := SkillGroup{ID: id}
		for field, value := range fields {
			_ = setSkillField(&item, field, value)
		}
		out.Skills = append(out.Skills, item)
	}
	return out, id, nil
}

// RemoveListItem deletes the item with the given id. Absent ids are a no-op.
func (d Document) RemoveListItem(section SectionKey, id string) (Document, error) {
	if !section.IsList() {
		return d, &SectionError{Section: string(section), Message: "not a list section"}
	}
	idx := d.IndexOf(section, id)
	if idx < 0 {
		return d, nil
	}

	out := d.Clone()
	switch section {
	case SectionExperience:
		out.Experience = append(out.Experience[:idx], out.Experience[idx+1:]...)
	case SectionEducation:
		out.Education = append(out.Education[:idx], out.Education[idx+1:]...)
	case SectionProjects:
		out.Projects = append(out.Projects[:idx], out.Projects[idx+1:]...)
	case SectionSkills:
		out.Skills = append(out.Skills[:idx], out.Skills[idx+1:]...)
	}
	return out, nil
}

// WithSectionOrder returns a copy using order, which must be a valid permutation.
func (d Document) WithSectionOrder(order []SectionKey) (Document, error) {
	if err := ValidateSectionOrder(order); err != nil {
		return d, err
	}
	out := d.Clone()
	out.SectionOrder = append([]SectionKey(nil), order...)
	return out, nil
}

// ListFields returns the editable field names of a list section.
func ListFields(section SectionKey) []string {
	switch section {
	case SectionExperience:
		return []string{"company", "title", "startDate", "endDate", "location", DescriptionField}
	case SectionEducation:
		return []string{"institution", "degree", "startDate", "endDate", "location"}
	case SectionProjects:
		return []string{"name", "description", "link"}
	case SectionSkills:
		return []string{"category", "items"}
	default:
		return nil
	}
}

func checkField(section SectionKey, field string) error {
	if !section.IsList() {
		return &SectionError{Section: string(section), Message: "not a list section"}
	}
	for _, f := range ListFields(section) {
		if f == field {
			return nil
		}
	}
	return &FieldError{Section: string(section), Field: field}
}

func setExperienceField(item *Experience, field, value string) error {
	switch field {
	case "company":
		item.Company = value
	case "title":
		item.Title = value
	case "startDate":
		item.StartDate = value
	case "endDate":
		item.EndDate = value
	case "location":
		item.Location = value
	case DescriptionField:
		item.Description = SplitLines(value)
	default:
		return &FieldError{Section: string(SectionExperience), Field: field}
	}
	return nil
}

func setEducationField(item *Education, field, value string) error {
	switch field {
	case "institution":
		item.Institution = value
	case "degree":
		item.Degree = value
	case "startDate":
		item.StartDate = value
	case "endDate":
		item.EndDate = value
	case "location":
		item.Location = value
	default:
		return &FieldError{Section: string(SectionEducation), Field: field}
	}
	return nil
}

func setProjectField(item *Project, field, value string) error {
	switch field {
	case "name":
		item.Name = value
	case "description":
		item.Description = value
	case "link":
		item.Link = value
	default:
		return &FieldError{Section: string(SectionProjects), Field: field}
	}
	return nil
}

func setSkillField(item *SkillGroup, field, value string) error {
	switch field {
	case "category":
		item.Category = value
	case "items":
		item.Items = value
	default:
		return &FieldError{Section: string(SectionSkills), Field: field}
	}
	return nil
}
