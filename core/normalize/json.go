package normalize

import (
	"encoding/json"

	"github.com/FocuswithJustin/Scriptura/core/bible"
	"github.com/FocuswithJustin/Scriptura/core/errors"
)

// jsonPayload is the JSON translation payload shape pushed by the content
// delivery collaborator.
type jsonPayload struct {
	Meta struct {
		Code        string `json:"code"`
		DisplayName string `json:"display_name"`
		ShortCode   string `json:"short_code,omitempty"`
		Language    string `json:"language,omitempty"`
		Year        int    `json:"year,omitempty"`
		Publisher   string `json:"publisher,omitempty"`
	} `json:"meta"`
	Verses []struct {
		Book    string `json:"book"`
		Chapter int    `json:"chapter"`
		Verse   int    `json:"verse"`
		Text    string `json:"text"`
	} `json:"verses"`
}

// ParseJSON parses a JSON translation payload into raw form.
func ParseJSON(data []byte) (*RawBible, error) {
	var payload jsonPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, errors.Wrap(err, "parsing JSON payload")
	}
	if len(payload.Verses) == 0 {
		return nil, errors.Wrap(errors.ErrInvalidReference, "payload contains no verses")
	}

	raw := &RawBible{
		Meta: bible.Metadata{
			Code:        payload.Meta.Code,
			DisplayName: payload.Meta.DisplayName,
			ShortCode:   payload.Meta.ShortCode,
			Language:    payload.Meta.Language,
			Year:        payload.Meta.Year,
			Publisher:   payload.Meta.Publisher,
		},
		Verses: make([]RawVerse, len(payload.Verses)),
	}
	for i, v := range payload.Verses {
		raw.Verses[i] = RawVerse{Book: v.Book, Chapter: v.Chapter, Verse: v.Verse, Text: v.Text}
	}
	return raw, nil
}
