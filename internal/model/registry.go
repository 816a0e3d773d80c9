package model

import "errors"

// ErrUnknownKind signals a programmer error: asking the registry for a block
// kind that is not defined. Correct callers never hit it.
var ErrUnknownKind = errors.New("unknown block kind")

// DefaultContent returns the default content mapping for a kind. It is
// consulted exactly once, when a block is created; later edits never re-invoke
// it. The returned map is freshly allocated on every call so callers can
// mutate it freely.
func DefaultContent(kind BlockKind) (map[string]interface{}, error) {
	switch kind {
	case KindText:
		return map[string]interface{}{
			"text":  "Enter your text here",
			"size":  "medium",
			"align": "left",
			"style": "paragraph",
		}, nil
	case KindImage:
		return map[string]interface{}{
			"src":     "",
			"alt":     "Image description",
			"width":   "100%",
			"caption": "",
		}, nil
	case KindProject:
		return map[string]interface{}{
			"title":       "Project Title",
			"description": "Project description goes here",
			"tech":        []string{},
			"link":        "",
			"demo":        "",
			"github":      "",
			"features":    []string{},
		}, nil
	case KindSkill:
		return map[string]interface{}{
			"skill":       "Skill Name",
			"level":       80,
			"description": "",
		}, nil
	case KindContact:
		return map[string]interface{}{
			"title":   "Get In Touch",
			"methods": []string{},
		}, nil
	case KindEducation:
		return map[string]interface{}{
			"degree":     "Degree Name",
			"field":      "Field of Study",
			"university": "University Name",
			"year":       "",
			"gpa":        "",
			"honors":     []string{},
		}, nil
	case KindExperience:
		return map[string]interface{}{
			"title":        "Job Title",
			"company":      "Company Name",
			"duration":     "",
			"description":  "",
			"achievements": []string{},
		}, nil
	case KindTestimonial:
		return map[string]interface{}{
			"quote":    "Testimonial quote goes here",
			"author":   "Author Name",
			"position": "",
			"avatar":   "",
		}, nil
	case KindCertificate:
		return map[string]interface{}{
			"name":         "Certificate Name",
			"issuer":       "Issuing Organization",
			"date":         "",
			"credentialId": "",
			"verifyUrl":    "",
		}, nil
	default:
		return nil, ErrUnknownKind
	}
}
