// Package render projects the content document onto the view model the
// public site templates draw.
//
// Render is pure: the same document, language and year always produce the
// same Page. Each bilingual field carries both language values so the
// browser can switch language without asking the server again.
package render

import (
	"regexp"
	"strings"

	"github.com/dalemusser/stratascout/internal/app/system/i18n"
	"github.com/dalemusser/stratascout/internal/domain/models"
)

// Text is a bilingual field with the value for the selected language.
type Text struct {
	Ar    string
	En    string
	Value string
}

func text(lang i18n.Lang, ar, en string) Text {
	t := Text{Ar: ar, En: en, Value: ar}
	if lang == i18n.English {
		t.Value = en
	}
	return t
}

// Message returns m as a Text for lang. Templates use it for fixed labels.
func Message(lang i18n.Lang, m i18n.Message) Text {
	return text(lang, m.Ar, m.En)
}

// withFallback is text with per-language fallbacks for empty values.
func withFallback(lang i18n.Lang, ar, en, fallbackAr, fallbackEn string) Text {
	if ar == "" {
		ar = fallbackAr
	}
	if en == "" {
		en = fallbackEn
	}
	return text(lang, ar, en)
}

// Page is everything the public templates need.
type Page struct {
	Lang i18n.Lang
	Dir  string
	Year int

	Hero    HeroView
	About   AboutView
	Leader  LeaderView
	Contact ContactView

	Achievements       []AchievementCard
	AchievementsEmpty  bool
	Participation      []ParticipationCard
	ParticipationEmpty bool
	Videos             []VideoCard
	VideosEmpty        bool
}

type HeroView struct {
	Title    Text
	Subtitle Text
}

type AboutView struct {
	Mission         Text
	Values          Text
	MemberCount     string
	EstablishedYear string
}

type LeaderView struct {
	Name       Text
	Bio        Text
	Experience Text
	Desc       Text
}

type ContactView struct {
	Email     string
	EmailHref string
	Phone     string
	PhoneHref string
	Address   Text
}

type AchievementCard struct {
	ID    int
	Year  string
	Icon  string
	Title Text
	Desc  Text
}

type ParticipationCard struct {
	ID    int
	Icon  string
	Title Text
	Desc  Text
	Stats Text
}

type VideoCard struct {
	ID        int
	Title     Text
	URL       string
	Thumbnail string
	PlayLabel Text
}

var playLabel = i18n.Message{Ar: "تشغيل الفيديو", En: "Play video"}

// Render builds the Page for doc in lang. year is shown in the footer.
func Render(doc models.ContentDocument, lang i18n.Lang, year int) Page {
	if _, ok := i18n.Parse(string(lang)); !ok {
		lang = i18n.Default
	}

	p := Page{
		Lang: lang,
		Dir:  lang.Dir(),
		Year: year,
		Hero: HeroView{
			Title:    text(lang, doc.Hero.TitleAr, doc.Hero.TitleEn),
			Subtitle: text(lang, doc.Hero.SubtitleAr, doc.Hero.SubtitleEn),
		},
		About: AboutView{
			Mission:         text(lang, doc.About.MissionAr, doc.About.MissionEn),
			Values:          text(lang, doc.About.ValuesAr, doc.About.ValuesEn),
			MemberCount:     orDefault(doc.About.MemberCount, models.DefaultMemberCount),
			EstablishedYear: orDefault(doc.About.EstablishedYear, models.DefaultEstablishedYear),
		},
		Leader: LeaderView{
			Name:       withFallback(lang, doc.Leader.NameAr, doc.Leader.NameEn, models.DefaultLeaderNameAr, models.DefaultLeaderNameEn),
			Bio:        text(lang, doc.Leader.BioAr, doc.Leader.BioEn),
			Experience: text(lang, doc.Leader.ExperienceAr, doc.Leader.ExperienceEn),
			Desc:       text(lang, doc.Leader.DescAr, doc.Leader.DescEn),
		},
		Contact: ContactView{
			Email:     doc.Contact.Email,
			EmailHref: "mailto:" + doc.Contact.Email,
			Phone:     doc.Contact.Phone,
			PhoneHref: "tel:" + stripSpace(doc.Contact.Phone),
			Address:   text(lang, doc.Contact.AddressAr, doc.Contact.AddressEn),
		},
	}

	for _, a := range doc.Achievements {
		p.Achievements = append(p.Achievements, AchievementCard{
			ID:    a.ID,
			Year:  a.Year,
			Icon:  orDefault(a.Icon, models.DefaultAchievementIcon),
			Title: text(lang, a.TitleAr, a.TitleEn),
			Desc:  text(lang, a.DescAr, a.DescEn),
		})
	}
	p.AchievementsEmpty = len(p.Achievements) == 0

	for _, it := range doc.Participation {
		p.Participation = append(p.Participation, ParticipationCard{
			ID:    it.ID,
			Icon:  orDefault(it.Icon, models.DefaultParticipationIcon),
			Title: text(lang, it.TitleAr, it.TitleEn),
			Desc:  text(lang, it.DescAr, it.DescEn),
			Stats: text(lang, it.StatsAr, it.StatsEn),
		})
	}
	p.ParticipationEmpty = len(p.Participation) == 0

	for _, v := range doc.Videos {
		url := v.URL
		if url == "" {
			url = "#"
		}
		p.Videos = append(p.Videos, VideoCard{
			ID:        v.ID,
			Title:     text(lang, v.TitleAr, v.TitleEn),
			URL:       url,
			Thumbnail: Thumbnail(v),
			PlayLabel: text(lang, playLabel.Ar, playLabel.En),
		})
	}
	p.VideosEmpty = len(p.Videos) == 0

	return p
}

var youtubeID = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&\n?#]+)`)

// YouTubeID extracts the video id from a YouTube watch or short link.
func YouTubeID(url string) (string, bool) {
	m := youtubeID.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Thumbnail picks the image for v: the YouTube still when the URL is a
// YouTube link, then the stored thumbnail, then the placeholder.
func Thumbnail(v models.Video) string {
	if id, ok := YouTubeID(v.URL); ok {
		return "https://img.youtube.com/vi/" + id + "/maxresdefault.jpg"
	}
	if v.Thumbnail != "" {
		return v.Thumbnail
	}
	return models.PlaceholderThumbnail
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
