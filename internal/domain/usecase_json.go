package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// The wire shape of a use case record, kept bit-compatible with the hosted
// document store the catalog was originally exported from. Screenshots live
// inside "sections" alongside the six text keys, and "for_use_by" accepts
// either a single string (historical records) or a list.

// AudienceList unmarshals from either a JSON string or a JSON array of
// strings. It always marshals as an array.
type AudienceList []string

func (a *AudienceList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*a = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*a = nil
		} else {
			*a = []string{single}
		}
		return nil
	}
	return fmt.Errorf("for_use_by: expected string or list")
}

type sectionsJSON struct {
	Purpose         string `json:"purpose"`
	Instructions    string `json:"instructions"`
	Prompts         string `json:"prompts"`
	Variations      string `json:"variations"`
	Notes           string `json:"notes"`
	Links           string `json:"links"`
	ScreenshotSetup string `json:"screenshot_setup"`
	ScreenshotUse   string `json:"screenshot_use"`
}

// RecordJSON is the persisted JSON shape of a use case.
type RecordJSON struct {
	ID          string       `json:"id,omitempty"`
	Title       string       `json:"title"`
	AITool      string       `json:"ai_tool"`
	ForUseBy    AudienceList `json:"for_use_by"`
	Sections    sectionsJSON `json:"sections"`
	SubmittedBy string       `json:"submitted_by,omitempty"`
	CreatedAt   *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time   `json:"updatedAt,omitempty"`
}

// EncodeRecord converts a UseCase to its wire shape.
func EncodeRecord(u UseCase) RecordJSON {
	rec := RecordJSON{
		Title:    u.Title,
		AITool:   u.AITool,
		ForUseBy: AudienceList(NormalizeAudiences(u.Audiences)),
		Sections: sectionsJSON{
			Purpose:         u.Sections.Purpose,
			Instructions:    u.Sections.Instructions,
			Prompts:         u.Sections.Prompts,
			Variations:      u.Sections.Variations,
			Notes:           u.Sections.Notes,
			Links:           u.Sections.Links,
			ScreenshotSetup: u.Screenshots.Setup,
			ScreenshotUse:   u.Screenshots.Use,
		},
		SubmittedBy: u.SubmittedBy,
	}
	if u.ID != uuid.Nil {
		rec.ID = u.ID.String()
	}
	if !u.CreatedAt.IsZero() {
		t := u.CreatedAt
		rec.CreatedAt = &t
	}
	if !u.UpdatedAt.IsZero() {
		t := u.UpdatedAt
		rec.UpdatedAt = &t
	}
	return rec
}

// DecodeRecord converts a wire record to a normalized UseCase.
// Audiences are normalized here, at the store boundary — downstream code
// never branches on the string-or-list shape. A non-UUID id (legacy export
// ids like "use-case-1") decodes to a nil UUID and the caller assigns a
// fresh one on insert.
func DecodeRecord(rec RecordJSON) UseCase {
	u := UseCase{
		Title:     rec.Title,
		AITool:    rec.AITool,
		Audiences: NormalizeAudiences(rec.ForUseBy),
		Sections: Sections{
			Purpose:      rec.Sections.Purpose,
			Instructions: rec.Sections.Instructions,
			Prompts:      rec.Sections.Prompts,
			Variations:   rec.Sections.Variations,
			Notes:        rec.Sections.Notes,
			Links:        rec.Sections.Links,
		},
		Screenshots: Screenshots{
			Setup: rec.Sections.ScreenshotSetup,
			Use:   rec.Sections.ScreenshotUse,
		},
		SubmittedBy: rec.SubmittedBy,
	}
	if id, err := uuid.Parse(rec.ID); err == nil {
		u.ID = id
	}
	if rec.CreatedAt != nil {
		u.CreatedAt = *rec.CreatedAt
	}
	if rec.UpdatedAt != nil {
		u.UpdatedAt = *rec.UpdatedAt
	}
	return u
}
