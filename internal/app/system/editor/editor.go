// Package editor applies admin edits to a content document: adding,
// editing and deleting list items and overwriting whole sections.
//
// All functions work on the caller's copy of the document. Persisting the
// result is the caller's job.
package editor

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/stratascout/internal/app/system/contentdoc"
	"github.com/dalemusser/stratascout/internal/app/system/i18n"
	"github.com/dalemusser/stratascout/internal/domain/models"
)

// List names one of the document's item lists.
type List string

const (
	Achievements  List = "achievements"
	Participation List = "participation"
	Videos        List = "videos"
)

// Lists is every list in admin tab order.
var Lists = []List{Achievements, Participation, Videos}

// ParseList accepts a list name from a URL segment.
func ParseList(s string) (List, bool) {
	for _, l := range Lists {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// ErrNotFound is returned by Edit when no item has the given id.
var ErrNotFound = errors.New("editor: item not found")

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message i18n.Message
}

func (e *ValidationError) Error() string { return e.Message.String() }

// Item is the admin form for any list item. Fields a list does not use are ignored.
type Item struct {
	Year      string
	Icon      string
	TitleAr   string
	TitleEn   string
	DescAr    string
	DescEn    string
	StatsAr   string
	StatsEn   string
	URL       string
	Thumbnail string
}

func (in Item) trimmed() Item {
	return Item{
		Year:      strings.TrimSpace(in.Year),
		Icon:      strings.TrimSpace(in.Icon),
		TitleAr:   strings.TrimSpace(in.TitleAr),
		TitleEn:   strings.TrimSpace(in.TitleEn),
		DescAr:    strings.TrimSpace(in.DescAr),
		DescEn:    strings.TrimSpace(in.DescEn),
		StatsAr:   strings.TrimSpace(in.StatsAr),
		StatsEn:   strings.TrimSpace(in.StatsEn),
		URL:       strings.TrimSpace(in.URL),
		Thumbnail: strings.TrimSpace(in.Thumbnail),
	}
}

// Validate checks the fields every list requires.
func (in Item) Validate() error {
	if strings.TrimSpace(in.TitleAr) == "" {
		return &ValidationError{Field: "titleAr", Message: i18n.ArabicTitleRequired}
	}
	return nil
}

// Add validates in, fills the fallbacks and appends the new item with id
// max+1. It returns the new id.
func Add(doc *models.ContentDocument, list List, in Item, now time.Time) (int, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	in = in.trimmed()

	switch list {
	case Achievements:
		id := contentdoc.NextID(doc.Achievements)
		doc.Achievements = append(doc.Achievements, achievement(id, in, now))
		return id, nil
	case Participation:
		id := contentdoc.NextID(doc.Participation)
		doc.Participation = append(doc.Participation, participation(id, in))
		return id, nil
	case Videos:
		id := contentdoc.NextID(doc.Videos)
		doc.Videos = append(doc.Videos, video(id, in))
		return id, nil
	}
	return 0, errUnknownList(list)
}

// Edit replaces the item with id in place, keeping list order.
func Edit(doc *models.ContentDocument, list List, id int, in Item, now time.Time) error {
	if err := in.Validate(); err != nil {
		return err
	}
	in = in.trimmed()

	switch list {
	case Achievements:
		i := contentdoc.IndexOf(doc.Achievements, id)
		if i < 0 {
			return ErrNotFound
		}
		doc.Achievements[i] = achievement(id, in, now)
	case Participation:
		i := contentdoc.IndexOf(doc.Participation, id)
		if i < 0 {
			return ErrNotFound
		}
		doc.Participation[i] = participation(id, in)
	case Videos:
		i := contentdoc.IndexOf(doc.Videos, id)
		if i < 0 {
			return ErrNotFound
		}
		doc.Videos[i] = video(id, in)
	default:
		return errUnknownList(list)
	}
	return nil
}

// Delete removes the item with id. It reports whether anything was removed;
// deleting a missing id leaves the list unchanged.
func Delete(doc *models.ContentDocument, list List, id int) bool {
	switch list {
	case Achievements:
		return remove(&doc.Achievements, id)
	case Participation:
		return remove(&doc.Participation, id)
	case Videos:
		return remove(&doc.Videos, id)
	}
	return false
}

// Lookup returns the item with id as form input.
func Lookup(doc models.ContentDocument, list List, id int) (Item, bool) {
	switch list {
	case Achievements:
		if i := contentdoc.IndexOf(doc.Achievements, id); i >= 0 {
			a := doc.Achievements[i]
			return Item{Year: a.Year, Icon: a.Icon, TitleAr: a.TitleAr, TitleEn: a.TitleEn, DescAr: a.DescAr, DescEn: a.DescEn}, true
		}
	case Participation:
		if i := contentdoc.IndexOf(doc.Participation, id); i >= 0 {
			p := doc.Participation[i]
			return Item{Icon: p.Icon, TitleAr: p.TitleAr, TitleEn: p.TitleEn, DescAr: p.DescAr, DescEn: p.DescEn, StatsAr: p.StatsAr, StatsEn: p.StatsEn}, true
		}
	case Videos:
		if i := contentdoc.IndexOf(doc.Videos, id); i >= 0 {
			v := doc.Videos[i]
			return Item{TitleAr: v.TitleAr, TitleEn: v.TitleEn, URL: v.URL, Thumbnail: v.Thumbnail}, true
		}
	}
	return Item{}, false
}

// SetSection overwrites a whole object section with trimmed values from get.
func SetSection(doc *models.ContentDocument, section string, get func(key string) string) error {
	return contentdoc.SetSection(doc, section, func(k string) string {
		return strings.TrimSpace(get(k))
	})
}

func achievement(id int, in Item, now time.Time) models.Achievement {
	return models.Achievement{
		ID:      id,
		Year:    or(in.Year, strconv.Itoa(now.Year())),
		Icon:    or(in.Icon, models.DefaultAchievementIcon),
		TitleAr: in.TitleAr,
		TitleEn: or(in.TitleEn, in.TitleAr),
		DescAr:  in.DescAr,
		DescEn:  or(in.DescEn, in.DescAr),
	}
}

func participation(id int, in Item) models.Participation {
	return models.Participation{
		ID:      id,
		Icon:    or(in.Icon, models.DefaultParticipationIcon),
		TitleAr: in.TitleAr,
		TitleEn: or(in.TitleEn, in.TitleAr),
		DescAr:  in.DescAr,
		DescEn:  or(in.DescEn, in.DescAr),
		StatsAr: or(in.StatsAr, models.DefaultStats),
		StatsEn: or(in.StatsEn, in.StatsAr, models.DefaultStats),
	}
}

func video(id int, in Item) models.Video {
	return models.Video{
		ID:        id,
		TitleAr:   in.TitleAr,
		TitleEn:   or(in.TitleEn, in.TitleAr),
		URL:       in.URL,
		Thumbnail: or(in.Thumbnail, models.PlaceholderThumbnail),
	}
}

func remove[T contentdoc.Identified](items *[]T, id int) bool {
	i := contentdoc.IndexOf(*items, id)
	if i < 0 {
		return false
	}
	out := make([]T, 0, len(*items)-1)
	out = append(out, (*items)[:i]...)
	*items = append(out, (*items)[i+1:]...)
	return true
}

// or returns the first non-empty value.
func or(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

type unknownListError List

func (e unknownListError) Error() string { return "editor: unknown list " + strconv.Quote(string(e)) }

func errUnknownList(l List) error { return unknownListError(l) }
