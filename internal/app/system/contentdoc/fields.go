// internal/app/system/contentdoc/fields.go
package contentdoc

import "github.com/dalemusser/stratascout/internal/domain/models"

// field binds a wire key to the string it decodes into.
type field struct {
	key string
	dst *string
}

func heroFields(h *models.Hero) []field {
	return []field{
		{"titleAr", &h.TitleAr},
		{"titleEn", &h.TitleEn},
		{"subtitleAr", &h.SubtitleAr},
		{"subtitleEn", &h.SubtitleEn},
	}
}

func aboutFields(a *models.About) []field {
	return []field{
		{"missionAr", &a.MissionAr},
		{"missionEn", &a.MissionEn},
		{"valuesAr", &a.ValuesAr},
		{"valuesEn", &a.ValuesEn},
		{"memberCount", &a.MemberCount},
		{"establishedYear", &a.EstablishedYear},
	}
}

func leaderFields(l *models.Leader) []field {
	return []field{
		{"nameAr", &l.NameAr},
		{"nameEn", &l.NameEn},
		{"bioAr", &l.BioAr},
		{"bioEn", &l.BioEn},
		{"experienceAr", &l.ExperienceAr},
		{"experienceEn", &l.ExperienceEn},
		{"descAr", &l.DescAr},
		{"descEn", &l.DescEn},
	}
}

func contactFields(c *models.Contact) []field {
	return []field{
		{"email", &c.Email},
		{"phone", &c.Phone},
		{"addressAr", &c.AddressAr},
		{"addressEn", &c.AddressEn},
	}
}

func achievementFields(a *models.Achievement) (*int, []field) {
	return &a.ID, []field{
		{"year", &a.Year},
		{"icon", &a.Icon},
		{"titleAr", &a.TitleAr},
		{"titleEn", &a.TitleEn},
		{"descAr", &a.DescAr},
		{"descEn", &a.DescEn},
	}
}

func participationFields(p *models.Participation) (*int, []field) {
	return &p.ID, []field{
		{"icon", &p.Icon},
		{"titleAr", &p.TitleAr},
		{"titleEn", &p.TitleEn},
		{"descAr", &p.DescAr},
		{"descEn", &p.DescEn},
		{"statsAr", &p.StatsAr},
		{"statsEn", &p.StatsEn},
	}
}

func videoFields(v *models.Video) (*int, []field) {
	return &v.ID, []field{
		{"titleAr", &v.TitleAr},
		{"titleEn", &v.TitleEn},
		{"url", &v.URL},
		{"thumbnail", &v.Thumbnail},
	}
}

func achievementID(a *models.Achievement) *int     { return &a.ID }
func participationID(p *models.Participation) *int { return &p.ID }
func videoID(v *models.Video) *int                 { return &v.ID }
