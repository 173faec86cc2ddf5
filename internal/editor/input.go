package editor

import (
	"strings"

	"github.com/google/uuid"

	"github.com/aiusecase/catalog-backend/internal/domain"
)

// Attachment is a screenshot upload submitted with the form.
type Attachment struct {
	Data        []byte
	ContentType string
}

// SubmitInput is the full editor form. A zero ID means a new record.
// Attachments replace the slot's current asset; Remove clears it. A slot
// that appears in neither keeps whatever asset it already has.
type SubmitInput struct {
	ID          uuid.UUID
	Title       string
	AITool      string
	Audiences   []string
	Sections    domain.Sections
	SubmittedBy string
	Attachments map[domain.ScreenshotSlot]Attachment
	Remove      map[domain.ScreenshotSlot]bool
}

// IsNew reports whether the input creates a record rather than editing one.
func (in SubmitInput) IsNew() bool {
	return in.ID == uuid.Nil
}

// Validate checks the form's required fields.
func (in SubmitInput) Validate() error {
	var errs []domain.FieldError
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if len(domain.NormalizeAudiencesStrict(in.Audiences)) == 0 {
		errs = append(errs, domain.FieldError{Field: "for_use_by", Message: "select at least one audience"})
	}
	for slot, att := range in.Attachments {
		if len(att.Data) == 0 {
			errs = append(errs, domain.FieldError{Field: "screenshot_" + string(slot), Message: "empty upload"})
		}
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// record builds the domain record from the trimmed form fields. Screenshot
// URLs are resolved separately by Submit.
func (in SubmitInput) record() domain.UseCase {
	return domain.UseCase{
		ID:          in.ID,
		Title:       strings.TrimSpace(in.Title),
		AITool:      strings.TrimSpace(in.AITool),
		Audiences:   domain.NormalizeAudiencesStrict(in.Audiences),
		Sections:    in.Sections,
		SubmittedBy: strings.TrimSpace(in.SubmittedBy),
	}
}
