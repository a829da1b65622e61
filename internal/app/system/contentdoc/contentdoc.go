// internal/app/system/contentdoc/contentdoc.go
// Package contentdoc decodes, validates and repairs content documents.
//
// Decoding is a single deterministic pass over the raw JSON: every section
// starts from the default document, stored keys overwrite default keys, list
// sections are taken wholesale when present, and anything that cannot be used
// is repaired and reported as an Issue instead of failing the whole load.
package contentdoc

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dalemusser/stratascout/internal/domain/models"
)

var (
	// ErrEmpty is returned when there is no document to decode.
	ErrEmpty = errors.New("contentdoc: empty document")
	// ErrMalformed is returned when the input is not a JSON object.
	ErrMalformed = errors.New("contentdoc: document is not a JSON object")
)

// Issue describes one repair made while decoding.
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	return i.Path + ": " + i.Message
}

// Decode merges raw against the built-in default document.
func Decode(raw []byte) (models.ContentDocument, []Issue, error) {
	return Merge(raw, models.DefaultContent())
}

// Merge decodes raw and fills every missing key from defaults.
//
// Object sections (hero, about, leader, contact) are merged key by key with
// stored keys preferred. List sections replace the default list wholesale
// when present. On error the returned document is a copy of defaults.
func Merge(raw []byte, defaults models.ContentDocument) (models.ContentDocument, []Issue, error) {
	out := defaults.Clone()
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return out, nil, ErrEmpty
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return out, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	d := decoder{}
	d.object("hero", top["hero"], heroFields(&out.Hero))
	d.object("about", top["about"], aboutFields(&out.About))
	d.object("leader", top["leader"], leaderFields(&out.Leader))
	d.object("contact", top["contact"], contactFields(&out.Contact))

	if items, ok := d.list("achievements", top["achievements"]); ok {
		out.Achievements = decodeItems(&d, "achievements", items, achievementFields)
	}
	if items, ok := d.list("participation", top["participation"]); ok {
		out.Participation = decodeItems(&d, "participation", items, participationFields)
	}
	if items, ok := d.list("videos", top["videos"]); ok {
		out.Videos = decodeItems(&d, "videos", items, videoFields)
	}

	return out, d.issues, nil
}

// Normalize applies the list repairs of Decode to an already typed document.
// Nil lists are treated as absent. A typed document cannot distinguish a
// missing object key from an empty one, so object sections are left as they
// are; use Backfill when the storage can answer that.
func Normalize(doc models.ContentDocument) (models.ContentDocument, []Issue) {
	def := models.DefaultContent()
	out := doc.Clone()
	var issues []Issue

	if out.Achievements == nil {
		out.Achievements = def.Achievements
		issues = append(issues, Issue{Path: "achievements", Message: "missing, using defaults"})
	}
	if out.Participation == nil {
		out.Participation = def.Participation
		issues = append(issues, Issue{Path: "participation", Message: "missing, using defaults"})
	}
	if out.Videos == nil {
		out.Videos = def.Videos
		issues = append(issues, Issue{Path: "videos", Message: "missing, using defaults"})
	}

	issues = append(issues, repairIDs("achievements", out.Achievements, achievementID)...)
	issues = append(issues, repairIDs("participation", out.Participation, participationID)...)
	issues = append(issues, repairIDs("videos", out.Videos, videoID)...)
	return out, issues
}

// Present reports whether a stored document carries section.key with a
// non-null value.
type Present func(section, key string) bool

// Backfill is Normalize for documents whose storage can tell a missing key
// from an empty one. Object-section keys that present reports as missing take
// the default value; keys stored as empty strings are kept.
func Backfill(doc models.ContentDocument, present Present) (models.ContentDocument, []Issue) {
	def := models.DefaultContent()
	out := doc.Clone()
	var issues []Issue

	for _, sec := range []struct {
		name     string
		dst, src []field
	}{
		{"hero", heroFields(&out.Hero), heroFields(&def.Hero)},
		{"about", aboutFields(&out.About), aboutFields(&def.About)},
		{"leader", leaderFields(&out.Leader), leaderFields(&def.Leader)},
		{"contact", contactFields(&out.Contact), contactFields(&def.Contact)},
	} {
		for i, f := range sec.dst {
			if present(sec.name, f.key) {
				continue
			}
			*f.dst = *sec.src[i].dst
			issues = append(issues, Issue{Path: sec.name + "." + f.key, Message: "missing, using default"})
		}
	}

	out, more := Normalize(out)
	return out, append(issues, more...)
}

// Encode returns the canonical JSON form of doc. Nil lists are written as
// empty arrays so the document round-trips through Decode unchanged.
func Encode(doc models.ContentDocument) ([]byte, error) {
	if doc.Achievements == nil {
		doc.Achievements = []models.Achievement{}
	}
	if doc.Participation == nil {
		doc.Participation = []models.Participation{}
	}
	if doc.Videos == nil {
		doc.Videos = []models.Video{}
	}
	return json.Marshal(doc)
}

// Fingerprint returns a stable hash of doc's canonical encoding.
func Fingerprint(doc models.ContentDocument) string {
	b, err := Encode(doc)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
