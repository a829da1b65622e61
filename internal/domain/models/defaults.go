// internal/domain/models/defaults.go
package models

// DefaultContent returns the canonical seed document. Each call returns a
// fresh value so callers may mutate the result freely.
func DefaultContent() ContentDocument {
	return ContentDocument{
		Hero: Hero{
			TitleAr:    "فرقة عبدالرحمن بن القاسم الكشفية",
			TitleEn:    "Abdulrahman bin Al-Qasim Scout Group",
			SubtitleAr: "نسعى لتطوير الشباب وتعزيز قيم القيادة والمسؤولية المجتمعية من خلال برامج كشفية متميزة",
			SubtitleEn: "We aim to develop youth and promote values of leadership and community responsibility through outstanding scout programs",
		},
		About: About{
			MissionAr:       "تطوير الشباب من خلال برامج كشفية متميزة وتعزيز قيم القيادة والمسؤولية المجتمعية",
			MissionEn:       "Developing youth through outstanding scout programs and promoting leadership values and community responsibility",
			ValuesAr:        "الشرف والأمانة والشجاعة والتعاون والعطاء والمسؤولية",
			ValuesEn:        "Honor, integrity, courage, cooperation, generosity, and responsibility",
			MemberCount:     DefaultMemberCount,
			EstablishedYear: DefaultEstablishedYear,
		},
		Leader: Leader{
			NameAr:       "عبدالرحمن الرميح",
			NameEn:       "Abdulrahman Al-Rumaih",
			BioAr:        "يُعدّ القائد الكشفي عبدالرحمن الرميح نموذجًا للقائد التربوي الذي يجمع بين الانضباط الكشفي، والوعي المجتمعي، والقدرة على بناء الإنسان قبل النشاط.",
			BioEn:        "Scout Leader Abdulrahman Al-Rumaih is a model of an educational leader who combines scouting discipline, community awareness, and the ability to build human beings before activities.",
			ExperienceAr: "+15 سنة من القيادة الكشفية والتطوير",
			ExperienceEn: "15+ Years of scout leadership and development",
			DescAr:       "خبرة واسعة في القيادة الكشفية وتطوير البرامج الشبابية",
			DescEn:       "Extensive experience in scout leadership and youth program development",
		},
		Contact: Contact{
			Email:     "scout@example.com",
			Phone:     "+966 XX XXX XXXX",
			AddressAr: "المملكة العربية السعودية",
			AddressEn: "Saudi Arabia",
		},
		Achievements: []Achievement{
			{
				ID: 1, Year: "2024", Icon: "fas fa-trophy",
				TitleAr: "جائزة التميز الكشفي",
				TitleEn: "Scout Excellence Award",
				DescAr:  "حصلت الفرقة على جائزة التميز الكشفي على مستوى المملكة",
				DescEn:  "The group received the Scout Excellence Award at the national level",
			},
			{
				ID: 2, Year: "2023", Icon: "fas fa-medal",
				TitleAr: "المركز الأول في المسابقات",
				TitleEn: "First Place in Competitions",
				DescAr:  "تحقيق المركز الأول في المسابقات الكشفية الإقليمية",
				DescEn:  "Achieved first place in regional scout competitions",
			},
			{
				ID: 3, Year: "2022", Icon: "fas fa-award",
				TitleAr: "شهادة التميز المجتمعي",
				TitleEn: "Community Excellence Certificate",
				DescAr:  "تكريم الفرقة لدورها البارز في خدمة المجتمع",
				DescEn:  "Recognition for outstanding community service",
			},
			{
				ID: 4, Year: "2021", Icon: "fas fa-star",
				TitleAr: "جائزة القيادة الشبابية",
				TitleEn: "Youth Leadership Award",
				DescAr:  "تكريم قائد الفرقة لجهوده في تطوير الشباب",
				DescEn:  "Leader honored for youth development efforts",
			},
		},
		Participation: []Participation{
			{
				ID: 1, Icon: "fas fa-heart",
				TitleAr: "حملة التبرع بالدم",
				TitleEn: "Blood Donation Campaign",
				DescAr:  "تنظيم حملات دورية للتبرع بالدم بالتعاون مع المستشفيات",
				DescEn:  "Organizing regular blood donation campaigns with hospitals",
				StatsAr: "+500 متبرع",
				StatsEn: "500+ Donors",
			},
			{
				ID: 2, Icon: "fas fa-users",
				TitleAr: "خدمة الحجاج والمعتمرين",
				TitleEn: "Pilgrims Service",
				DescAr:  "المشاركة في خدمة ضيوف الرحمن",
				DescEn:  "Serving pilgrims and visitors",
				StatsAr: "3 مواسم",
				StatsEn: "3 Seasons",
			},
			{
				ID: 3, Icon: "fas fa-tree",
				TitleAr: "حملة التشجير",
				TitleEn: "Tree Planting Campaign",
				DescAr:  "غرس الأشجار والمحافظة على البيئة",
				DescEn:  "Planting trees and environmental conservation",
				StatsAr: "+1000 شجرة",
				StatsEn: "1000+ Trees",
			},
			{
				ID: 4, Icon: "fas fa-handshake",
				TitleAr: "مساعدة المحتاجين",
				TitleEn: "Helping Those in Need",
				DescAr:  "توزيع المساعدات على الأسر المحتاجة",
				DescEn:  "Distributing aid to families in need",
				StatsAr: "+200 أسرة",
				StatsEn: "200+ Families",
			},
		},
		Videos: []Video{
			{ID: 1, TitleAr: "المخيم الكشفي السنوي", TitleEn: "Annual Scout Camp", URL: "https://www.youtube.com/watch?v=GuJLfqTFfIw"},
			{ID: 2, TitleAr: "فعاليات اليوم الوطني", TitleEn: "National Day Events", URL: "https://www.youtube.com/watch?v=H-uYcDbFFE0"},
			{ID: 3, TitleAr: "رحلة الكشافة البيئية", TitleEn: "Environmental Scout Trip", URL: "https://www.youtube.com/watch?v=J4pFd1F_R8o"},
		},
	}
}
