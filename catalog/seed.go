package catalog

import "animebharat/models"

// Seed returns the built-in catalog. There is no metadata backend; the
// catalog ships with the application and is identical for every user.
func Seed() []models.Anime {
	subDub := []models.AudioLang{models.AudioJapanese, models.AudioEnglish, models.AudioHindi}
	subOnly := []models.AudioLang{models.AudioJapanese}

	return []models.Anime{
		{
			ID:       "1",
			Slug:     "attack-on-titan",
			TitleEN:  "Attack on Titan",
			TitleJP:  "進撃の巨人",
			Synopsis: "Humanity fights for survival behind three concentric walls.",
			Poster:   "https://picsum.photos/seed/aot/300/450",
			Banner:   "https://picsum.photos/seed/aot-banner/1200/400",
			Genres:   []string{"Action", "Drama", "Fantasy"},
			Year:     2013, Status: models.StatusCompleted, Type: models.TypeTVSeries,
			AvailableAudios: subDub, Popularity: 98,
			Episodes: []models.Episode{
				{ID: "aot-ep-1", Number: 1, Title: "To You, in 2000 Years", Slug: "episode-1", DurationSec: 1440, AvailableAudios: subDub},
				{ID: "aot-ep-2", Number: 2, Title: "That Day", Slug: "episode-2", DurationSec: 1440, AvailableAudios: subDub},
				{ID: "aot-ep-3", Number: 3, Title: "A Dim Light Amid Despair", Slug: "episode-3", DurationSec: 1440, AvailableAudios: subOnly},
			},
		},
		{
			ID:       "2",
			Slug:     "demon-slayer",
			TitleEN:  "Demon Slayer",
			TitleJP:  "鬼滅の刃",
			Synopsis: "A kind-hearted boy becomes a demon slayer to save his sister.",
			Poster:   "https://picsum.photos/seed/ds/300/450",
			Genres:   []string{"Action", "Supernatural"},
			Year:     2019, Status: models.StatusOngoing, Type: models.TypeTVSeries,
			AvailableAudios: subDub, Popularity: 95,
			Episodes: []models.Episode{
				{ID: "ds-ep-1", Number: 1, Title: "Cruelty", Slug: "episode-1", DurationSec: 1420, AvailableAudios: subDub},
				{ID: "ds-ep-2", Number: 2, Title: "Trainer Sakonji Urokodaki", Slug: "episode-2", DurationSec: 1420, AvailableAudios: subDub},
			},
		},
		{
			ID:       "3",
			Slug:     "your-name",
			TitleEN:  "Your Name",
			TitleJP:  "君の名は。",
			Synopsis: "Two strangers find themselves linked in a bizarre way.",
			Poster:   "https://picsum.photos/seed/yn/300/450",
			Genres:   []string{"Romance", "Drama", "Supernatural"},
			Year:     2016, Status: models.StatusCompleted, Type: models.TypeMovie,
			AvailableAudios: subDub, Popularity: 92,
			Episodes: []models.Episode{
				{ID: "yn-ep-1", Number: 1, Slug: "movie", DurationSec: 6420, AvailableAudios: subDub},
			},
		},
		{
			ID:       "4",
			Slug:     "jujutsu-kaisen",
			TitleEN:  "Jujutsu Kaisen",
			TitleJP:  "呪術廻戦",
			Synopsis: "A boy swallows a cursed talisman and enrolls in jujutsu school.",
			Poster:   "https://picsum.photos/seed/jjk/300/450",
			Genres:   []string{"Action", "Supernatural", "School"},
			Year:     2020, Status: models.StatusOngoing, Type: models.TypeTVSeries,
			AvailableAudios: subDub, Popularity: 94,
			Episodes: []models.Episode{
				{ID: "jjk-ep-1", Number: 1, Title: "Ryomen Sukuna", Slug: "episode-1", DurationSec: 1430, AvailableAudios: subDub},
				{ID: "jjk-ep-2", Number: 2, Title: "For Myself", Slug: "episode-2", DurationSec: 1430, AvailableAudios: subOnly},
			},
		},
		{
			ID:       "5",
			Slug:     "spirited-away",
			TitleEN:  "Spirited Away",
			TitleJP:  "千と千尋の神隠し",
			Synopsis: "A girl wanders into a world ruled by gods and spirits.",
			Poster:   "https://picsum.photos/seed/sa/300/450",
			Genres:   []string{"Adventure", "Fantasy"},
			Year:     2001, Status: models.StatusCompleted, Type: models.TypeMovie,
			AvailableAudios: subDub, Popularity: 90,
			Episodes: []models.Episode{
				{ID: "sa-ep-1", Number: 1, Slug: "movie", DurationSec: 7500, AvailableAudios: subDub},
			},
		},
		{
			ID:       "6",
			Slug:     "mob-psycho-100",
			TitleEN:  "Mob Psycho 100",
			TitleJP:  "モブサイコ100",
			Synopsis: "A powerful esper tries to live an ordinary middle-school life.",
			Poster:   "https://picsum.photos/seed/mob/300/450",
			Genres:   []string{"Action", "Comedy", "Supernatural"},
			Year:     2016, Status: models.StatusCompleted, Type: models.TypeTVSeries,
			AvailableAudios: subOnly, Popularity: 85,
			Episodes: []models.Episode{
				{ID: "mob-ep-1", Number: 1, Title: "Self-Proclaimed Psychic", Slug: "episode-1", DurationSec: 1440, AvailableAudios: subOnly},
			},
		},
		{
			ID:       "7",
			Slug:     "violet-evergarden-special",
			TitleEN:  "Violet Evergarden: Extra Episode",
			Synopsis: "An Auto Memory Doll writes a letter that takes years to deliver.",
			Poster:   "https://picsum.photos/seed/ve/300/450",
			Genres:   []string{"Drama", "Fantasy"},
			Status:          models.StatusCompleted, // year intentionally unset
			Type:            models.TypeSpecial,
			AvailableAudios: subOnly, Popularity: 70,
			Episodes: []models.Episode{
				{ID: "ve-sp-1", Number: 1, Slug: "special", DurationSec: 2040, AvailableAudios: subOnly},
			},
		},
		{
			ID:       "8",
			Slug:     "cyber-city-ona",
			TitleEN:  "Cyber City",
			Synopsis: "A web-original series set in a neon megalopolis.",
			Poster:   "https://picsum.photos/seed/cc/300/450",
			Genres:   []string{"Action", "Sci-Fi"},
			Year:     2023, Status: models.StatusOngoing, Type: models.TypeONA,
			AvailableAudios: []models.AudioLang{models.AudioJapanese, models.AudioEnglish},
			Popularity:      60,
			Episodes: []models.Episode{
				{ID: "cc-ep-1", Number: 1, Title: "Neon Rain", Slug: "episode-1", DurationSec: 1200, AvailableAudios: []models.AudioLang{models.AudioJapanese, models.AudioEnglish}},
				{ID: "cc-ep-2", Number: 2, Title: "Packet Loss", Slug: "episode-2", DurationSec: 1200, AvailableAudios: subOnly},
			},
		},
	}
}
