package cart

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/inkthread/backend/internal/domain/shared"
)

// TextPosition is the placement of custom print text on a garment
type TextPosition string

const (
	TextPositionFront       TextPosition = "front"
	TextPositionBack        TextPosition = "back"
	TextPositionLeftSleeve  TextPosition = "left_sleeve"
	TextPositionRightSleeve TextPosition = "right_sleeve"
)

// IsValid checks if the position is part of the closed enumeration
func (p TextPosition) IsValid() bool {
	switch p {
	case TextPositionFront, TextPositionBack, TextPositionLeftSleeve, TextPositionRightSleeve:
		return true
	}
	return false
}

// Customization describes the print customization of a line item.
// It is a value type: two customizations are equal iff their canonical
// serialized forms are byte-identical. Cart merge correctness depends
// on that determinism, so the shape is a closed record, not a free-form
// map.
type Customization struct {
	HasCustomization  bool         `json:"has_customization"`
	Text              string       `json:"text,omitempty"`
	TextColor         string       `json:"text_color,omitempty"`
	TextFont          string       `json:"text_font,omitempty"`
	TextPosition      TextPosition `json:"text_position,omitempty"`
	UploadedImageRef  string       `json:"uploaded_image_ref,omitempty"`
	SelectedDesignRef string       `json:"selected_design_ref,omitempty"`
	Notes             string       `json:"notes,omitempty"`
}

// NoCustomization returns the zero customization (plain garment)
func NoCustomization() Customization {
	return Customization{}
}

// Validate checks internal consistency of the customization
func (c Customization) Validate() error {
	if !c.HasCustomization {
		if c.Text != "" || c.UploadedImageRef != "" || c.SelectedDesignRef != "" {
			return shared.NewDomainError("INVALID_CUSTOMIZATION", "Customization content set but has_customization is false")
		}
		return nil
	}
	if c.Text == "" && c.UploadedImageRef == "" && c.SelectedDesignRef == "" {
		return shared.NewDomainError("INVALID_CUSTOMIZATION", "Customization requires text, an uploaded image, or a selected design")
	}
	if c.Text != "" && c.TextPosition != "" && !c.TextPosition.IsValid() {
		return shared.NewDomainError("INVALID_CUSTOMIZATION", fmt.Sprintf("Unknown text position %q", c.TextPosition))
	}
	return nil
}

// Canonical returns the deterministic serialized form used for
// equality and fingerprinting. encoding/json emits struct fields in
// declaration order, so equal values always serialize identically.
func (c Customization) Canonical() []byte {
	data, err := json.Marshal(c)
	if err != nil {
		// a closed record of scalar fields cannot fail to marshal
		panic(err)
	}
	return data
}

// Equals returns true when the canonical forms are byte-identical
func (c Customization) Equals(other Customization) bool {
	return bytes.Equal(c.Canonical(), other.Canonical())
}
