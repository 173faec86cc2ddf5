package domain

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// SectionKey identifies one of the six fixed text sections of a use case.
// There are no dynamic keys: every record has exactly these six.
type SectionKey string

const (
	SectionPurpose      SectionKey = "purpose"
	SectionInstructions SectionKey = "instructions"
	SectionPrompts      SectionKey = "prompts"
	SectionVariations   SectionKey = "variations"
	SectionNotes        SectionKey = "notes"
	SectionLinks        SectionKey = "links"
)

// SectionOrder is the fixed rendering order of the six sections.
var SectionOrder = []SectionKey{
	SectionPurpose,
	SectionInstructions,
	SectionPrompts,
	SectionVariations,
	SectionNotes,
	SectionLinks,
}

// SectionHeading returns the display heading for a section.
func SectionHeading(key SectionKey) string {
	switch key {
	case SectionPurpose:
		return "Purpose"
	case SectionInstructions:
		return "Instructions"
	case SectionPrompts:
		return "Prompts"
	case SectionVariations:
		return "Variations"
	case SectionNotes:
		return "Notes"
	case SectionLinks:
		return "Links / Video"
	default:
		return string(key)
	}
}

// SectionPlaceholder returns the fixed placeholder text substituted at render
// time when a section body is empty.
func SectionPlaceholder(key SectionKey) string {
	switch key {
	case SectionPurpose:
		return "Purpose of the activity"
	case SectionInstructions:
		return "Detailed instructions for setting it up."
	case SectionPrompts:
		return "All the prompts that need to be entered."
	case SectionVariations:
		return "What can be changed to meet different needs."
	case SectionNotes:
		return "Warnings, tips for effective use."
	case SectionLinks:
		return "Link to video demonstration: [to be added]\nLink to public demo:"
	default:
		return ""
	}
}

// Sections holds the six fixed free-text sections of a use case.
type Sections struct {
	Purpose      string
	Instructions string
	Prompts      string
	Variations   string
	Notes        string
	Links        string
}

// Get returns the body for the given section key.
func (s Sections) Get(key SectionKey) string {
	switch key {
	case SectionPurpose:
		return s.Purpose
	case SectionInstructions:
		return s.Instructions
	case SectionPrompts:
		return s.Prompts
	case SectionVariations:
		return s.Variations
	case SectionNotes:
		return s.Notes
	case SectionLinks:
		return s.Links
	default:
		return ""
	}
}

// BodyOrPlaceholder returns the section body, or the fixed placeholder and
// true when the body is blank.
func (s Sections) BodyOrPlaceholder(key SectionKey) (string, bool) {
	body := strings.TrimSpace(s.Get(key))
	if body == "" {
		return SectionPlaceholder(key), true
	}
	return s.Get(key), false
}

// ScreenshotSlot names one of the two optional screenshot asset slots.
type ScreenshotSlot string

const (
	SlotSetup ScreenshotSlot = "setup"
	SlotUse   ScreenshotSlot = "use"
)

// Screenshots holds the retrievable URLs of the two optional screenshots.
// Empty string means no asset in that slot.
type Screenshots struct {
	Setup string
	Use   string
}

// Get returns the URL for the given slot.
func (s Screenshots) Get(slot ScreenshotSlot) string {
	if slot == SlotUse {
		return s.Use
	}
	return s.Setup
}

// UseCase is one catalog entry: a described AI use case.
type UseCase struct {
	ID          uuid.UUID
	Title       string
	AITool      string
	Audiences   []string
	Sections    Sections
	Screenshots Screenshots
	SubmittedBy string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ToolName maps an AI tool code to its display name.
// Unknown codes display verbatim.
func ToolName(code string) string {
	switch code {
	case "GEM":
		return "Gemini Gem"
	case "NLM":
		return "Notebook LM"
	case "WEBAPP":
		return "Web Apps"
	default:
		return code
	}
}

// NormalizeAudiences normalizes a raw audience list: trims labels, drops
// blanks, and never returns an empty slice ("General" is the fallback).
// Historical records stored a single string; the JSON codec hands it in as a
// one-element list, so no shape branch is needed past this point.
func NormalizeAudiences(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, a := range raw {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return []string{"General"}
	}
	return out
}

// DisplayAudiences joins audience labels for display.
func (u UseCase) DisplayAudiences() string {
	return strings.Join(NormalizeAudiences(u.Audiences), ", ")
}

// SortTime returns the timestamp used for recency ordering:
// UpdatedAt, falling back to CreatedAt, falling back to the zero time.
func (u UseCase) SortTime() time.Time {
	if !u.UpdatedAt.IsZero() {
		return u.UpdatedAt
	}
	return u.CreatedAt
}

// Summary returns the purpose body truncated for card display.
func (u UseCase) Summary(limit int) string {
	return Truncate(u.Sections.Purpose, limit)
}

// Truncate shortens text to at most limit runes, appending an ellipsis.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

// TitleSlug reduces a title to its alphanumeric characters, for use as a
// generated report filename. Returns "" for titles with no alphanumerics.
func TitleSlug(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Validate checks the record's required fields.
func (u UseCase) Validate() error {
	var errs []FieldError
	if strings.TrimSpace(u.Title) == "" {
		errs = append(errs, FieldError{Field: "title", Message: "required"})
	}
	if len(NormalizeAudiencesStrict(u.Audiences)) == 0 {
		errs = append(errs, FieldError{Field: "for_use_by", Message: "select at least one audience"})
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// NormalizeAudiencesStrict is NormalizeAudiences without the "General"
// fallback; used by validation, which must reject an empty set.
func NormalizeAudiencesStrict(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, a := range raw {
		if strings.TrimSpace(a) != "" {
			out = append(out, strings.TrimSpace(a))
		}
	}
	return out
}
