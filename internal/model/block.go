package model

import (
	"github.com/google/uuid"
)

// BlockKind is the fixed set of content block kinds. A block's kind is set at
// creation and never changes.
type BlockKind string

const (
	KindText        BlockKind = "text"
	KindImage       BlockKind = "image"
	KindProject     BlockKind = "project"
	KindSkill       BlockKind = "skill"
	KindContact     BlockKind = "contact"
	KindEducation   BlockKind = "education"
	KindExperience  BlockKind = "experience"
	KindTestimonial BlockKind = "testimonial"
	KindCertificate BlockKind = "certificate"
)

// Kinds lists every defined block kind in display order.
var Kinds = []BlockKind{
	KindText, KindImage, KindProject, KindSkill, KindContact,
	KindEducation, KindExperience, KindTestimonial, KindCertificate,
}

// ContentBlock is one addressable, typed unit of portfolio content. Content
// keys depend on Kind; Style is opaque presentation hints passed through
// unchanged. Order is a soft position among siblings, unique but not required
// to be contiguous.
type ContentBlock struct {
	ID      uuid.UUID              `json:"id"`
	Kind    BlockKind              `json:"kind"`
	Content map[string]interface{} `json:"content"`
	Style   map[string]interface{} `json:"style,omitempty"`
	Order   int                    `json:"order"`
}

// ArrayFields returns the names of the array-valued content fields for a kind.
func ArrayFields(kind BlockKind) []string {
	switch kind {
	case KindProject:
		return []string{"tech", "features"}
	case KindContact:
		return []string{"methods"}
	case KindEducation:
		return []string{"honors"}
	case KindExperience:
		return []string{"achievements"}
	default:
		return nil
	}
}
