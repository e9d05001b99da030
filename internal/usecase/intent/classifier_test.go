package intent

import (
	"reflect"
	"testing"

	domintent "github.com/reelchat/reelchat/internal/domain/intent"
)

type stubCategories struct {
	cats []string
}

func (s *stubCategories) Categories() []string { return s.cats }

func newTestClassifier() *Classifier {
	return New(&stubCategories{cats: []string{"Sci-Fi", "Romance", "Horror", "Animation"}})
}

func TestClassify_RuleTable(t *testing.T) {
	c := newTestClassifier()

	cases := []struct {
		name      string
		utterance string
		wantKind  domintent.Kind
		wantTitle string
		wantCat   string
		wantMoods []string
	}{
		{
			name:      "greeting",
			utterance: "Hello",
			wantKind:  domintent.Greeting,
		},
		{
			name:      "rating with contraction",
			utterance: "What's the rating of Inception?",
			wantKind:  domintent.Rating,
			wantTitle: "inception",
		},
		{
			name:      "rating how good",
			utterance: "How good is The Matrix?",
			wantKind:  domintent.Rating,
			wantTitle: "the matrix",
		},
		{
			name:      "recommend known category",
			utterance: "Recommend top Sci-Fi movies",
			wantKind:  domintent.Recommend,
			wantCat:   "Sci-Fi",
		},
		{
			name:      "recommend unknown category kept as candidate",
			utterance: "Recommend top Noir movies",
			wantKind:  domintent.Recommend,
			wantCat:   "noir",
		},
		{
			name:      "recommend without category",
			utterance: "suggest something to watch",
			wantKind:  domintent.Recommend,
		},
		{
			name:      "recommend with count keeps no candidate",
			utterance: "suggest top 5 movies",
			wantKind:  domintent.Recommend,
		},
		{
			name:      "recommend with filler adjective keeps no candidate",
			utterance: "Recommend some good movies",
			wantKind:  domintent.Recommend,
		},
		{
			name:      "mood",
			utterance: "I feel happy today",
			wantKind:  domintent.Mood,
			wantMoods: []string{"happy"},
		},
		{
			name:      "genre list",
			utterance: "What genres do you have?",
			wantKind:  domintent.GenreList,
		},
		{
			name:      "comparison",
			utterance: "Compare Inception vs Titanic",
			wantKind:  domintent.Comparison,
			wantTitle: "compare inception vs titanic",
		},
		{
			name:      "detail with typo",
			utterance: "Tell me about Inceptoin",
			wantKind:  domintent.Detail,
			wantTitle: "inceptoin",
		},
		{
			name:      "quote",
			utterance: "Give me a quote from Inception",
			wantKind:  domintent.Quote,
			wantTitle: "give me a quote from inception",
		},
		{
			name:      "search fallback",
			utterance: "purple space monkeys",
			wantKind:  domintent.Search,
			wantTitle: "purple space monkeys",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it := c.Classify(tc.utterance)
			if it.Kind() != tc.wantKind {
				t.Fatalf("kind = %q, want %q", it.Kind(), tc.wantKind)
			}
			if it.Title() != tc.wantTitle {
				t.Errorf("title = %q, want %q", it.Title(), tc.wantTitle)
			}
			if it.Category() != tc.wantCat {
				t.Errorf("category = %q, want %q", it.Category(), tc.wantCat)
			}
			if !reflect.DeepEqual(it.Moods(), tc.wantMoods) {
				t.Errorf("moods = %v, want %v", it.Moods(), tc.wantMoods)
			}
		})
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	c := newTestClassifier()

	for _, utterance := range []string{"", "   ", "\t\n"} {
		it := c.Classify(utterance)
		if it.Kind() != domintent.Unknown {
			t.Errorf("Classify(%q) kind = %q, want unknown", utterance, it.Kind())
		}
		if it.Confidence() != 0 {
			t.Errorf("Classify(%q) confidence = %v, want 0", utterance, it.Confidence())
		}
	}
}

func TestClassify_Confidences(t *testing.T) {
	c := newTestClassifier()

	if got := c.Classify("hello").Confidence(); got != ConfidenceGreeting {
		t.Errorf("greeting confidence = %v, want %v", got, ConfidenceGreeting)
	}
	if got := c.Classify("what is the rating of inception").Confidence(); got != ConfidenceKeyword {
		t.Errorf("rating confidence = %v, want %v", got, ConfidenceKeyword)
	}
	if got := c.Classify("purple monkeys").Confidence(); got != ConfidenceFallback {
		t.Errorf("fallback confidence = %v, want %v", got, ConfidenceFallback)
	}
}

func TestClassify_PriorityRatingBeatsDetail(t *testing.T) {
	c := newTestClassifier()

	// Contains both "about" (detail) and "rating" (rating); rating wins.
	it := c.Classify("what about the rating of Titanic")
	if it.Kind() != domintent.Rating {
		t.Errorf("kind = %q, want rating", it.Kind())
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"What's UP?!", "what is up"},
		{"  Sci-Fi   movies  ", "scifi movies"},
		{"I can't stop", "i cannot stop"},
		{"", ""},
		{"Hello.", "hello"},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSentiment(t *testing.T) {
	c := newTestClassifier()

	cases := []struct {
		utterance string
		want      domintent.Sentiment
	}{
		{"I love this, thanks!", domintent.Positive},
		{"this is terrible and boring", domintent.Negative},
		{"what is the rating of inception", domintent.Neutral},
		{"", domintent.Neutral},
		{"good but boring", domintent.Neutral}, // tie resolves neutral
	}

	for _, tc := range cases {
		if got := c.Sentiment(tc.utterance); got != tc.want {
			t.Errorf("Sentiment(%q) = %q, want %q", tc.utterance, got, tc.want)
		}
	}
}

func TestMoodKeywords_ReturnsCopy(t *testing.T) {
	kws := MoodKeywords()
	if len(kws) == 0 {
		t.Fatal("expected non-empty mood vocabulary")
	}
	kws[0] = "mutated"
	if MoodKeywords()[0] == "mutated" {
		t.Error("MoodKeywords must return a defensive copy")
	}
}
