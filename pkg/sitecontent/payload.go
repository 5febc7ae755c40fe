package sitecontent

import "fmt"

// Payload validation.
//
// The content payload is a tagged union keyed by ContentType: each type has
// its own expected document shape. Validation is intentionally shallow — it
// checks that well-known sections, when present, have the right kind (map,
// list, or string), and leaves unknown keys alone. The store itself stays
// schema-free; this runs only at the service boundary.

type fieldKind int

const (
	kindString fieldKind = iota
	kindMap
	kindList
)

var payloadShapes = map[ContentType]map[string]fieldKind{
	ContentTypePage: {
		"hero":     kindMap,
		"sections": kindList,
		"seo":      kindMap,
	},
	ContentTypePost: {
		"excerpt": kindString,
		"body":    kindString,
		"author":  kindString,
		"tags":    kindList,
		"cover":   kindMap,
	},
	ContentTypeProject: {
		"hero":         kindMap,
		"overview":     kindString,
		"technologies": kindList,
		"features":     kindList,
		"results":      kindMap,
		"gallery":      kindList,
	},
	ContentTypeService: {
		"summary":  kindString,
		"offering": kindList,
		"pricing":  kindMap,
	},
	ContentTypeTeamMember: {
		"role":    kindString,
		"bio":     kindString,
		"photo":   kindMap,
		"socials": kindList,
	},
}

// ValidatePayload checks a content payload against the expected shape for the
// given content type. A nil payload is always valid.
func ValidatePayload(contentType ContentType, payload map[string]interface{}) error {
	if payload == nil {
		return nil
	}
	shape, ok := payloadShapes[contentType]
	if !ok {
		return ErrInvalidContentType
	}

	for key, kind := range shape {
		value, present := payload[key]
		if !present || value == nil {
			continue
		}
		if err := checkKind(key, kind, value); err != nil {
			return err
		}
	}
	return nil
}

func checkKind(key string, kind fieldKind, value interface{}) error {
	switch kind {
	case kindString:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%w: field %q must be a string", ErrInvalidPayload, key)
		}
	case kindMap:
		if _, ok := value.(map[string]interface{}); !ok {
			return fmt.Errorf("%w: field %q must be an object", ErrInvalidPayload, key)
		}
	case kindList:
		if _, ok := value.([]interface{}); !ok {
			return fmt.Errorf("%w: field %q must be a list", ErrInvalidPayload, key)
		}
	}
	return nil
}
