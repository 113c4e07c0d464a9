package seed

import (
	"github.com/flagsapp/flags-backend/pkg/enums"
)

type statementSeed struct {
	Text       string
	Categories []enums.Category
	IsInitial  bool
}

type questionSeed struct {
	Text     string
	Type     enums.QuestionType
	Category enums.Category
	Options  []string
	Weight   float64
	Order    int
}

// statementSeeds is the curated launch set. The initial batch is served first
// in the feed so new users always have something to respond to.
var statementSeeds = []statementSeed{
	{
		Text:       "Pineapple belongs on pizza.",
		Categories: []enums.Category{enums.CategoryFood},
		IsInitial:  true,
	},
	{
		Text:       "Splitting the bill on a first date is non-negotiable.",
		Categories: []enums.Category{enums.CategoryRelationships},
		IsInitial:  true,
	},
	{
		Text:       "Having kids is essential for a fulfilling life.",
		Categories: []enums.Category{enums.CategoryRelationships, enums.CategoryEthical},
		IsInitial:  true,
	},
	{
		Text:       "It is fine to stay friends with your exes.",
		Categories: []enums.Category{enums.CategoryRelationships},
		IsInitial:  true,
	},
	{
		Text:       "Voting in every election is a moral obligation.",
		Categories: []enums.Category{enums.CategorySocial, enums.CategoryEthical},
		IsInitial:  true,
	},
	{
		Text:       "Astrology has real insight into people's personalities.",
		Categories: []enums.Category{enums.CategoryLifestyle},
		IsInitial:  true,
	},
	{
		Text:       "Working more than 40 hours a week is a red flag, not a flex.",
		Categories: []enums.Category{enums.CategoryCareer},
		IsInitial:  true,
	},
	{
		Text:       "Travelling without an itinerary beats planning every day.",
		Categories: []enums.Category{enums.CategoryTravel},
	},
	{
		Text:       "Rewatching a comfort show beats starting something new.",
		Categories: []enums.Category{enums.CategoryCultural},
	},
	{
		Text:       "Eating meat is impossible to justify ethically anymore.",
		Categories: []enums.Category{enums.CategoryEthical, enums.CategoryFood},
	},
	{
		Text:       "A messy bedroom says a lot about how someone runs their life.",
		Categories: []enums.Category{enums.CategoryLifestyle},
	},
	{
		Text:       "Going to the gym together early in a relationship is a great sign.",
		Categories: []enums.Category{enums.CategoryLifestyle, enums.CategoryRelationships},
	},
	{
		Text:       "Moving cities for a partner before marriage is a mistake.",
		Categories: []enums.Category{enums.CategoryRelationships, enums.CategoryCareer},
	},
	{
		Text:       "Cats make better apartment pets than dogs.",
		Categories: []enums.Category{enums.CategoryLifestyle},
	},
	{
		Text:       "Karaoke is the best possible group date activity.",
		Categories: []enums.Category{enums.CategoryCultural, enums.CategoryLocal},
	},
}

// questionSeeds covers every question type at least once.
var questionSeeds = []questionSeed{
	{
		Text:     "Do you want children someday?",
		Type:     enums.QuestionTypeBoolean,
		Category: enums.CategoryRelationships,
		Weight:   2,
		Order:    1,
	},
	{
		Text:     "How important is religion in your life, 1 to 10?",
		Type:     enums.QuestionTypeNumber,
		Category: enums.CategoryEthical,
		Weight:   2,
		Order:    2,
	},
	{
		Text:     "How do you recharge after a long week?",
		Type:     enums.QuestionTypeMultipleChoice,
		Category: enums.CategoryLifestyle,
		Options:  []string{"A night out", "A night in", "Outdoors", "Seeing family"},
		Weight:   1,
		Order:    3,
	},
	{
		Text:     "Night owl or early bird? 0 is strictly mornings, 100 is strictly nights.",
		Type:     enums.QuestionTypeSlider,
		Category: enums.CategoryLifestyle,
		Weight:   1,
		Order:    4,
	},
	{
		Text:     "How often do you drink alcohol?",
		Type:     enums.QuestionTypeMultipleChoice,
		Category: enums.CategoryLifestyle,
		Options:  []string{"Never", "Rarely", "Socially", "Most days"},
		Weight:   1.5,
		Order:    5,
	},
	{
		Text:     "Would you relocate abroad for the right opportunity?",
		Type:     enums.QuestionTypeBoolean,
		Category: enums.CategoryTravel,
		Weight:   1,
		Order:    6,
	},
	{
		Text:     "Describe your ideal Sunday.",
		Type:     enums.QuestionTypeText,
		Category: enums.CategoryLifestyle,
		Weight:   0.5,
		Order:    7,
	},
	{
		Text:     "How spicy do you like your food, 0 to 100?",
		Type:     enums.QuestionTypeSlider,
		Category: enums.CategoryFood,
		Weight:   0.5,
		Order:    8,
	},
}
