package sentiment

// PositiveWords is the default positive lexicon.
var PositiveWords = []string{
	"love", "great", "awesome", "helpful", "fast", "easy", "intuitive", "friendly", "clear", "smooth",
	"reliable", "fantastic", "excellent", "amazing", "responsive", "like", "happy", "satisfied", "recommend", "best",
}

// NegativeWords is the default negative lexicon.
var NegativeWords = []string{
	"bug", "slow", "confusing", "difficult", "hate", "bad", "issue", "error", "broken", "unhelpful",
	"unclear", "crash", "complicated", "annoying", "frustrated", "lag", "problem", "hard", "wait",
}

// punctuation is trimmed from both ends of every token.
const punctuation = ".,!?;:"

type wordSet map[string]struct{}

func newWordSet(words []string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) has(w string) bool {
	_, ok := s[w]
	return ok
}
