package render

import (
	"reflect"
	"testing"

	"github.com/dalemusser/stratascout/internal/app/system/i18n"
	"github.com/dalemusser/stratascout/internal/domain/models"
)

func TestRender_LanguageRoundTrip(t *testing.T) {
	doc := models.DefaultContent()

	first := Render(doc, i18n.Arabic, 2026)
	_ = Render(doc, i18n.English, 2026)
	again := Render(doc, i18n.Arabic, 2026)

	if !reflect.DeepEqual(first, again) {
		t.Fatal("rendering ar -> en -> ar should give the same page")
	}
}

func TestRender_SelectsLanguage(t *testing.T) {
	doc := models.DefaultContent()

	ar := Render(doc, i18n.Arabic, 2026)
	en := Render(doc, i18n.English, 2026)

	if ar.Dir != "rtl" || en.Dir != "ltr" {
		t.Errorf("Dir = %q / %q", ar.Dir, en.Dir)
	}
	if ar.Hero.Title.Value != doc.Hero.TitleAr || en.Hero.Title.Value != doc.Hero.TitleEn {
		t.Errorf("hero title values = %q / %q", ar.Hero.Title.Value, en.Hero.Title.Value)
	}
	if ar.Hero.Title.En != doc.Hero.TitleEn || en.Hero.Title.Ar != doc.Hero.TitleAr {
		t.Error("both raw values must be carried in every language")
	}
	if ar.Year != 2026 {
		t.Errorf("Year = %d", ar.Year)
	}
}

func TestRender_UnknownLanguageFallsBack(t *testing.T) {
	p := Render(models.DefaultContent(), i18n.Lang("fr"), 2026)
	if p.Lang != i18n.Arabic || p.Dir != "rtl" {
		t.Errorf("Render(fr) = %q/%q, want ar/rtl", p.Lang, p.Dir)
	}
}

func TestRender_EmptyStates(t *testing.T) {
	p := Render(models.ContentDocument{}, i18n.English, 2026)

	if !p.AchievementsEmpty || !p.ParticipationEmpty || !p.VideosEmpty {
		t.Error("empty lists should set the empty-state flags")
	}
	if len(p.Achievements) != 0 {
		t.Error("no cards expected for an empty list")
	}
	if p.Hero.Title.Value != "" || p.Contact.EmailHref != "mailto:" || p.Contact.PhoneHref != "tel:" {
		t.Errorf("missing fields should be empty strings: %+v", p.Contact)
	}
}

func TestRender_Fallbacks(t *testing.T) {
	doc := models.ContentDocument{
		Achievements:  []models.Achievement{{ID: 1, TitleAr: "أ"}},
		Participation: []models.Participation{{ID: 1, TitleAr: "م"}},
		Contact:       models.Contact{Phone: "+966 50 123 4567"},
	}

	ar := Render(doc, i18n.Arabic, 2026)
	en := Render(doc, i18n.English, 2026)

	if ar.Leader.Name.Value != models.DefaultLeaderNameAr || en.Leader.Name.Value != models.DefaultLeaderNameEn {
		t.Errorf("leader name fallbacks = %q / %q", ar.Leader.Name.Value, en.Leader.Name.Value)
	}
	if ar.About.MemberCount != "150+" || ar.About.EstablishedYear != "2015" {
		t.Errorf("about fallbacks = %q / %q", ar.About.MemberCount, ar.About.EstablishedYear)
	}
	if ar.Achievements[0].Icon != models.DefaultAchievementIcon {
		t.Errorf("achievement icon = %q", ar.Achievements[0].Icon)
	}
	if ar.Participation[0].Icon != models.DefaultParticipationIcon {
		t.Errorf("participation icon = %q", ar.Participation[0].Icon)
	}
	if ar.Contact.PhoneHref != "tel:+966501234567" {
		t.Errorf("PhoneHref = %q", ar.Contact.PhoneHref)
	}
}

func TestThumbnail(t *testing.T) {
	tests := []struct {
		name  string
		video models.Video
		want  string
	}{
		{
			"watch url",
			models.Video{URL: "https://www.youtube.com/watch?v=abc123&t=10", Thumbnail: "https://example.com/t.jpg"},
			"https://img.youtube.com/vi/abc123/maxresdefault.jpg",
		},
		{
			"short link",
			models.Video{URL: "https://youtu.be/XyZ_9?si=share"},
			"https://img.youtube.com/vi/XyZ_9/maxresdefault.jpg",
		},
		{
			"explicit thumbnail",
			models.Video{URL: "https://vimeo.com/123", Thumbnail: "https://example.com/t.jpg"},
			"https://example.com/t.jpg",
		},
		{
			"placeholder",
			models.Video{URL: "https://vimeo.com/123"},
			models.PlaceholderThumbnail,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Thumbnail(tt.video); got != tt.want {
				t.Errorf("Thumbnail() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRender_VideoCards(t *testing.T) {
	doc := models.ContentDocument{Videos: []models.Video{{ID: 4, TitleAr: "ف", TitleEn: "V"}}}
	p := Render(doc, i18n.English, 2026)

	card := p.Videos[0]
	if card.URL != "#" {
		t.Errorf("URL = %q, want #", card.URL)
	}
	if card.PlayLabel.Value != "Play video" {
		t.Errorf("PlayLabel = %q", card.PlayLabel.Value)
	}
	if card.Thumbnail != models.PlaceholderThumbnail {
		t.Errorf("Thumbnail = %q", card.Thumbnail)
	}
}
