package linkedin

import "encoding/json"

// TextValue decodes provider text fields that arrive either as a plain
// string or as an object carrying the display text ({"text": ...} or
// {"value": ...}). The shape is resolved once here; downstream code only
// ever sees a flat string.
type TextValue string

// UnmarshalJSON implements json.Unmarshaler.
func (t *TextValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = TextValue(s)
		return nil
	}

	var obj struct {
		Text  string `json:"text"`
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		if obj.Text != "" {
			*t = TextValue(obj.Text)
		} else {
			*t = TextValue(obj.Value)
		}
		return nil
	}

	// Null or an unexpected shape: decode to empty rather than failing the
	// whole search response.
	*t = ""
	return nil
}

// String returns the resolved display text.
func (t TextValue) String() string { return string(t) }

// Person is one people-search hit. MemberIdentity is the public profile
// handle.
type Person struct {
	MemberIdentity string    `json:"memberIdentity"`
	FirstName      TextValue `json:"firstName"`
	LastName       TextValue `json:"lastName"`
	Headline       TextValue `json:"headline"`
	Subline        TextValue `json:"subline"`
}
