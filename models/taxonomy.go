package models

import "fmt"

// GenreGroup is one category of the fixed two-level genre taxonomy.
type GenreGroup struct {
	Category string   `json:"category"`
	Options  []string `json:"options"`
}

// GenreTaxonomy is the full taxonomy users pick genres from, both during
// onboarding and when requesting generation.
var GenreTaxonomy = []GenreGroup{
	{
		Category: "Tech & Innovation",
		Options: []string{
			"Artificial Intelligence (AI)",
			"Software Development / Programming",
			"Gadgets & Product Reviews",
			"Startups & Entrepreneurship",
			"Cybersecurity",
			"Web3 / Blockchain / Crypto",
			"Fintech",
		},
	},
	{
		Category: "Health & Wellness",
		Options: []string{
			"Fitness / Gym / Bodybuilding",
			"Mental Health & Self-care",
			"Nutrition & Diet",
			"Yoga / Meditation",
			"Personal Development",
		},
	},
	{
		Category: "Entertainment",
		Options: []string{
			"Gaming",
			"Movies & TV Shows",
			"Memes & Comedy",
			"Anime",
			"Celebrity Gossip",
			"Streaming (Twitch/YouTube)",
		},
	},
	{
		Category: "Creative & Arts",
		Options: []string{
			"Photography",
			"Graphic Design / UI/UX",
			"Music / Singing / Instruments",
			"Drawing / Painting / Digital Art",
			"Fashion Design",
		},
	},
	{
		Category: "Food & Lifestyle",
		Options: []string{
			"Cooking / Recipes",
			"Food Reviews",
			"Lifestyle Vlogs",
			"Travel & Adventure",
			"Home Decor / DIY",
			"Minimalism / Aesthetic Living",
		},
	},
	{
		Category: "Education & Knowledge",
		Options: []string{
			"Edutainment (Educational + Fun)",
			"Science & Space",
			"History",
			"Language Learning",
			"Study Tips / Productivity",
		},
	},
	{
		Category: "Sports",
		Options: []string{
			"Football (Soccer)",
			"Basketball",
			"MMA / UFC / Boxing",
			"Tennis / Cricket / Others",
			"Sports News / Commentary",
		},
	},
	{
		Category: "Career & Business",
		Options: []string{
			"Personal Finance",
			"Investing / Stocks / Crypto",
			"Remote Work / Freelancing",
			"Resume & Interview Tips",
			"Small Business Tips / E-commerce",
			"Leadership & Management",
		},
	},
	{
		Category: "Motivation & Mindset",
		Options: []string{
			"Life Advice",
			"Quotes & Affirmations",
			"Time Management",
			"Goal Setting / Vision Boards",
		},
	},
	{
		Category: "Influencer / Creator Genres",
		Options: []string{
			"Beauty & Skincare",
			"Fashion / Outfit Inspo",
			"Mom/Dad Life",
			"Pet Content",
			"Relationship Advice",
			"BookTok / Book Reviews",
		},
	},
}

var genreSet = buildGenreSet()

func buildGenreSet() map[string]struct{} {
	set := make(map[string]struct{})
	for _, group := range GenreTaxonomy {
		for _, opt := range group.Options {
			set[opt] = struct{}{}
		}
	}
	return set
}

// ValidGenre reports whether g is a leaf genre of the taxonomy.
func ValidGenre(g string) bool {
	_, ok := genreSet[g]
	return ok
}

// ValidateGenres checks a genre selection: non-empty and every entry a leaf
// of the taxonomy.
func ValidateGenres(genres []string) error {
	if len(genres) == 0 {
		return fmt.Errorf("select at least one genre")
	}
	for _, g := range genres {
		if !ValidGenre(g) {
			return fmt.Errorf("unknown genre: %q", g)
		}
	}
	return nil
}
