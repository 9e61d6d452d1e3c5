package models

func text(s string) SentencePart { return SentencePart{Text: s} }

func gap(id, correct, explanation string) SentencePart {
	return SentencePart{Gap: &Gap{ID: id, Correct: correct, Explanation: explanation}}
}

var dragGapsContent = DragGapsContent{
	Sentences: []GapSentence{
		{
			ID: 1,
			Parts: []SentencePart{
				text("Yesterday I "),
				gap("g1", "went", "Use past tense 'went' for 'yesterday'."),
				text(" to the market and "),
				gap("g2", "bought", "Use past tense 'bought' to match the sentence timeframe."),
				text(" some fruit."),
			},
			Words: []string{"went", "goes", "buy", "bought"},
		},
		{
			ID: 2,
			Parts: []SentencePart{
				text("She "),
				gap("g3", "plays", "Third person singular requires 's' (plays)."),
				text(" tennis every Sunday, but she "),
				gap("g4", "doesn't", "Negative present simple for she is 'doesn't'."),
				text(" like football."),
			},
			Words: []string{"play", "plays", "don't", "doesn't"},
		},
		{
			ID: 3,
			Parts: []SentencePart{
				text("I am "),
				gap("g5", "interested", "Adjective describing a feeling uses -ed."),
				text(" in learning how to "),
				gap("g6", "cook", "After 'to' use the infinitive verb."),
				text(" Italian food."),
			},
			Words: []string{"interesting", "interested", "cooking", "cook"},
		},
		{
			ID: 4,
			Parts: []SentencePart{
				text("The cat is "),
				gap("g7", "sleeping", "Present continuous: is + verb-ing."),
				text(" on the "),
				gap("g8", "sofa", "A piece of furniture to sleep on."),
				text(" right now."),
			},
			Words: []string{"sleeps", "sleeping", "sofa", "fridge"},
		},
	},
}

var multipleChoiceContent = MultipleChoiceContent{
	Sets: []QuestionSet{
		{
			ID:   "A",
			Name: "Test A: Articles",
			Questions: []Question{
				{ID: "q1", Text: "Choose the correct article: ___ apple", Options: []string{"a", "an", "the"}, Correct: "an", Explanation: "Use 'an' before words starting with a vowel sound."},
				{ID: "q2", Text: "I saw ___ elephant at the zoo.", Options: []string{"a", "an", "the"}, Correct: "an", Explanation: "Elephant starts with a vowel sound."},
				{ID: "q3", Text: "She is ___ doctor.", Options: []string{"a", "an", "the"}, Correct: "a", Explanation: "Use 'a' for professions starting with a consonant."},
			},
		},
		{
			ID:   "B",
			Name: "Test B: Verb Tenses",
			Questions: []Question{
				{ID: "q4", Text: "She ___ to school yesterday.", Options: []string{"go", "went", "gone"}, Correct: "went", Explanation: "Past simple of 'go' is 'went'."},
				{ID: "q5", Text: "They have ___ their homework.", Options: []string{"finish", "finished", "finishing"}, Correct: "finished", Explanation: "Present perfect uses 'have' + past participle."},
				{ID: "q6", Text: "He is ___ right now.", Options: []string{"run", "ran", "running"}, Correct: "running", Explanation: "Present continuous uses verb+ing."},
			},
		},
		{
			ID:   "C",
			Name: "Test C: Vocabulary",
			Questions: []Question{
				{ID: "q7", Text: "Opposite of 'Hot'", Options: []string{"Cold", "Warm", "Fire"}, Correct: "Cold", Explanation: "The direct antonym of hot is cold."},
				{ID: "q8", Text: "A place where you buy books.", Options: []string{"Library", "Bookstore", "Gym"}, Correct: "Bookstore", Explanation: "You buy books at a bookstore; you borrow them from a library."},
				{ID: "q9", Text: "Synonym for 'Happy'", Options: []string{"Sad", "Angry", "Joyful"}, Correct: "Joyful", Explanation: "Joyful means full of happiness."},
			},
		},
	},
}

var imageMatchContent = ImageMatchContent{
	Items: []MatchItem{
		{ID: "apple", Word: "Apple", ImageURL: "https://picsum.photos/seed/apple/300/300", Explanation: "This is a red fruit."},
		{ID: "cat", Word: "Cat", ImageURL: "https://picsum.photos/seed/cat/300/300", Explanation: "A small feline pet."},
		{ID: "bus", Word: "Bus", ImageURL: "https://picsum.photos/seed/bus/300/300", Explanation: "Large public transport vehicle."},
		{ID: "tree", Word: "Tree", ImageURL: "https://picsum.photos/seed/tree/300/300", Explanation: "A large plant with a trunk."},
	},
}

var sentenceContent = SentenceContent{
	Words:       []string{"Yesterday", "The", "Train", "Arrived", "Late"},
	Correct:     "The train arrived late yesterday",
	Explanation: "Standard English sentence structure: Subject (The train) + Verb (arrived) + Adverb (late) + Time (yesterday).",
}

var wordContent = WordContent{
	Letters:     []string{"R", "E", "S", "T", "A"},
	Target:      "stare",
	Explanation: "To look at someone or something for a long time with eyes wide open.",
}

var columnsContent = ColumnsContent{
	Categories: []Category{
		{ID: "food", Name: "Food", Color: "orange"},
		{ID: "transport", Name: "Transport", Color: "blue"},
		{ID: "furniture", Name: "Furniture", Color: "purple"},
	},
	Items: []SortItem{
		{ID: "i1", Text: "Apple", CategoryID: "food", Explanation: "An apple is a fruit you eat."},
		{ID: "i2", Text: "Train", CategoryID: "transport", Explanation: "A train is a vehicle for moving people."},
		{ID: "i3", Text: "Sofa", CategoryID: "furniture", Explanation: "A sofa is a seat found in living rooms."},
		{ID: "i4", Text: "Bread", CategoryID: "food", Explanation: "Bread is a staple food."},
		{ID: "i5", Text: "Bus", CategoryID: "transport", Explanation: "A bus drives on roads carrying passengers."},
		{ID: "i6", Text: "Chair", CategoryID: "furniture", Explanation: "A chair is used for sitting."},
	},
}

// Content bundles the static definitions of every playable exercise.
type Content struct {
	DragGaps        DragGapsContent       `json:"drag_gaps" yaml:"drag_gaps" validate:"required"`
	MultipleChoice  MultipleChoiceContent `json:"multiple_choice" yaml:"multiple_choice" validate:"required"`
	ImageMatch      ImageMatchContent     `json:"image_match" yaml:"image_match" validate:"required"`
	SentenceBuilder SentenceContent       `json:"sentence_builder" yaml:"sentence_builder" validate:"required"`
	WordBuilder     WordContent           `json:"word_builder" yaml:"word_builder" validate:"required"`
	Columns         ColumnsContent        `json:"columns" yaml:"columns" validate:"required"`
}

// DefaultContent returns the built-in exercise definitions.
func DefaultContent() *Content {
	return &Content{
		DragGaps:        dragGapsContent,
		MultipleChoice:  multipleChoiceContent,
		ImageMatch:      imageMatchContent,
		SentenceBuilder: sentenceContent,
		WordBuilder:     wordContent,
		Columns:         columnsContent,
	}
}
