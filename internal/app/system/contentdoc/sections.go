package contentdoc

import (
	"fmt"

	"github.com/dalemusser/stratascout/internal/domain/models"
)

// Sections names the object sections in document order.
var Sections = []string{"hero", "about", "leader", "contact"}

func sectionFields(doc *models.ContentDocument, section string) ([]field, error) {
	switch section {
	case "hero":
		return heroFields(&doc.Hero), nil
	case "about":
		return aboutFields(&doc.About), nil
	case "leader":
		return leaderFields(&doc.Leader), nil
	case "contact":
		return contactFields(&doc.Contact), nil
	}
	return nil, fmt.Errorf("contentdoc: unknown section %q", section)
}

// SectionKeys returns the wire keys of section in form order.
func SectionKeys(section string) ([]string, error) {
	var doc models.ContentDocument
	fields, err := sectionFields(&doc, section)
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key
	}
	return keys, nil
}

// SectionValues returns section's current values keyed by wire key.
func SectionValues(doc models.ContentDocument, section string) (map[string]string, error) {
	fields, err := sectionFields(&doc, section)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		out[f.key] = *f.dst
	}
	return out, nil
}

// SetSection overwrites every field of section with get(key).
func SetSection(doc *models.ContentDocument, section string, get func(key string) string) error {
	fields, err := sectionFields(doc, section)
	if err != nil {
		return err
	}
	for _, f := range fields {
		*f.dst = get(f.key)
	}
	return nil
}
