// internal/domain/models/content.go
package models

// ContentDocument is the single editable document behind the public site.
// Field names on the wire match the camelCase keys the site has always used,
// so documents written by older deployments decode unchanged.
type ContentDocument struct {
	Hero          Hero            `bson:"hero" json:"hero" yaml:"hero"`
	About         About           `bson:"about" json:"about" yaml:"about"`
	Leader        Leader          `bson:"leader" json:"leader" yaml:"leader"`
	Contact       Contact         `bson:"contact" json:"contact" yaml:"contact"`
	Achievements  []Achievement   `bson:"achievements" json:"achievements" yaml:"achievements"`
	Participation []Participation `bson:"participation" json:"participation" yaml:"participation"`
	Videos        []Video         `bson:"videos" json:"videos" yaml:"videos"`
}

// Hero is the banner at the top of the home page.
type Hero struct {
	TitleAr    string `bson:"titleAr" json:"titleAr" yaml:"titleAr"`
	TitleEn    string `bson:"titleEn" json:"titleEn" yaml:"titleEn"`
	SubtitleAr string `bson:"subtitleAr" json:"subtitleAr" yaml:"subtitleAr"`
	SubtitleEn string `bson:"subtitleEn" json:"subtitleEn" yaml:"subtitleEn"`
}

// About holds the mission statement, values and headline counters.
type About struct {
	MissionAr       string `bson:"missionAr" json:"missionAr" yaml:"missionAr"`
	MissionEn       string `bson:"missionEn" json:"missionEn" yaml:"missionEn"`
	ValuesAr        string `bson:"valuesAr" json:"valuesAr" yaml:"valuesAr"`
	ValuesEn        string `bson:"valuesEn" json:"valuesEn" yaml:"valuesEn"`
	MemberCount     string `bson:"memberCount" json:"memberCount" yaml:"memberCount"`
	EstablishedYear string `bson:"establishedYear" json:"establishedYear" yaml:"establishedYear"`
}

// Leader describes the group leader.
type Leader struct {
	NameAr       string `bson:"nameAr" json:"nameAr" yaml:"nameAr"`
	NameEn       string `bson:"nameEn" json:"nameEn" yaml:"nameEn"`
	BioAr        string `bson:"bioAr" json:"bioAr" yaml:"bioAr"`
	BioEn        string `bson:"bioEn" json:"bioEn" yaml:"bioEn"`
	ExperienceAr string `bson:"experienceAr" json:"experienceAr" yaml:"experienceAr"`
	ExperienceEn string `bson:"experienceEn" json:"experienceEn" yaml:"experienceEn"`
	DescAr       string `bson:"descAr" json:"descAr" yaml:"descAr"`
	DescEn       string `bson:"descEn" json:"descEn" yaml:"descEn"`
}

// Contact holds the public contact details.
type Contact struct {
	Email     string `bson:"email" json:"email" yaml:"email"`
	Phone     string `bson:"phone" json:"phone" yaml:"phone"`
	AddressAr string `bson:"addressAr" json:"addressAr" yaml:"addressAr"`
	AddressEn string `bson:"addressEn" json:"addressEn" yaml:"addressEn"`
}

// Achievement is one card in the achievements grid.
type Achievement struct {
	ID      int    `bson:"id" json:"id" yaml:"id"`
	Year    string `bson:"year" json:"year" yaml:"year"`
	Icon    string `bson:"icon" json:"icon" yaml:"icon"`
	TitleAr string `bson:"titleAr" json:"titleAr" yaml:"titleAr"`
	TitleEn string `bson:"titleEn" json:"titleEn" yaml:"titleEn"`
	DescAr  string `bson:"descAr" json:"descAr" yaml:"descAr"`
	DescEn  string `bson:"descEn" json:"descEn" yaml:"descEn"`
}

// Participation is one community-service highlight.
type Participation struct {
	ID      int    `bson:"id" json:"id" yaml:"id"`
	Icon    string `bson:"icon" json:"icon" yaml:"icon"`
	TitleAr string `bson:"titleAr" json:"titleAr" yaml:"titleAr"`
	TitleEn string `bson:"titleEn" json:"titleEn" yaml:"titleEn"`
	DescAr  string `bson:"descAr" json:"descAr" yaml:"descAr"`
	DescEn  string `bson:"descEn" json:"descEn" yaml:"descEn"`
	StatsAr string `bson:"statsAr" json:"statsAr" yaml:"statsAr"`
	StatsEn string `bson:"statsEn" json:"statsEn" yaml:"statsEn"`
}

// Video is one entry in the video gallery.
type Video struct {
	ID        int    `bson:"id" json:"id" yaml:"id"`
	TitleAr   string `bson:"titleAr" json:"titleAr" yaml:"titleAr"`
	TitleEn   string `bson:"titleEn" json:"titleEn" yaml:"titleEn"`
	URL       string `bson:"url" json:"url" yaml:"url"`
	Thumbnail string `bson:"thumbnail" json:"thumbnail" yaml:"thumbnail"`
}

// ItemID implementations let list helpers work across the three item kinds.
func (a Achievement) ItemID() int   { return a.ID }
func (p Participation) ItemID() int { return p.ID }
func (v Video) ItemID() int         { return v.ID }

// Clone returns a deep copy so callers can mutate lists without aliasing.
func (d ContentDocument) Clone() ContentDocument {
	out := d
	if d.Achievements != nil {
		out.Achievements = append([]Achievement(nil), d.Achievements...)
	}
	if d.Participation != nil {
		out.Participation = append([]Participation(nil), d.Participation...)
	}
	if d.Videos != nil {
		out.Videos = append([]Video(nil), d.Videos...)
	}
	return out
}

// Item defaults used by the editor and renderer.
const (
	DefaultAchievementIcon   = "fas fa-trophy"
	DefaultParticipationIcon = "fas fa-handshake"
	DefaultStats             = "0"
	PlaceholderThumbnail     = "https://images.unsplash.com/photo-1504280390367-361c6d9f38f4?w=600&h=340&fit=crop"

	DefaultLeaderNameAr    = "القائد الكشفي"
	DefaultLeaderNameEn    = "Scout Leader"
	DefaultMemberCount     = "150+"
	DefaultEstablishedYear = "2015"
)

// IconOption is one choice in the admin icon picker.
type IconOption struct {
	Value   string
	LabelAr string
	LabelEn string
}

// IconOptions lists the Font Awesome icons offered for achievements and participation.
var IconOptions = []IconOption{
	{Value: "fas fa-trophy", LabelAr: "🏆 كأس", LabelEn: "Trophy"},
	{Value: "fas fa-medal", LabelAr: "🥇 ميدالية", LabelEn: "Medal"},
	{Value: "fas fa-award", LabelAr: "🎖️ جائزة", LabelEn: "Award"},
	{Value: "fas fa-star", LabelAr: "⭐ نجمة", LabelEn: "Star"},
	{Value: "fas fa-heart", LabelAr: "❤️ قلب", LabelEn: "Heart"},
	{Value: "fas fa-users", LabelAr: "👥 مجموعة", LabelEn: "Group"},
	{Value: "fas fa-tree", LabelAr: "🌳 شجرة", LabelEn: "Tree"},
	{Value: "fas fa-handshake", LabelAr: "🤝 مصافحة", LabelEn: "Handshake"},
	{Value: "fas fa-hands-helping", LabelAr: "🙌 مساعدة", LabelEn: "Helping"},
	{Value: "fas fa-globe", LabelAr: "🌍 كوكب", LabelEn: "Globe"},
}

// IsKnownIcon reports whether v is one of IconOptions.
func IsKnownIcon(v string) bool {
	for _, o := range IconOptions {
		if o.Value == v {
			return true
		}
	}
	return false
}
