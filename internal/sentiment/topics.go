package sentiment

// TopicOther is returned when no topic keyword matches.
const TopicOther = "Other"

// Topic is a named keyword bucket.
type Topic struct {
	Name     string
	Keywords []string
}

// DefaultTopics are checked in this order; earlier topics win ties.
var DefaultTopics = []Topic{
	{Name: "Onboarding", Keywords: []string{"onboarding", "setup", "signup", "install", "installation", "tutorial", "welcome", "walkthrough", "registration", "activate"}},
	{Name: "Billing", Keywords: []string{"billing", "bill", "invoice", "refund", "charge", "charged", "payment", "pricing", "subscription", "card"}},
	{Name: "UI/UX", Keywords: []string{"interface", "ui", "ux", "design", "layout", "navigation", "button", "menu", "intuitive", "confusing", "screen"}},
	{Name: "Performance", Keywords: []string{"slow", "fast", "lag", "crash", "speed", "performance", "loading", "timeout", "freeze", "bug"}},
	{Name: "Support", Keywords: []string{"support", "service", "agent", "help", "helpful", "respond", "response", "ticket", "chat"}},
}

// TopicTagger assigns a single topic to free text by keyword hits.
type TopicTagger struct {
	names []string
	sets  []wordSet
}

// NewTopicTagger builds a tagger; topic order decides ties.
func NewTopicTagger(topics []Topic) *TopicTagger {
	t := &TopicTagger{
		names: make([]string, len(topics)),
		sets:  make([]wordSet, len(topics)),
	}
	for i, tp := range topics {
		t.names[i] = tp.Name
		t.sets[i] = newWordSet(normalizeAll(tp.Keywords))
	}
	return t
}

// DefaultTopicTagger returns a tagger over DefaultTopics.
func DefaultTopicTagger() *TopicTagger {
	return NewTopicTagger(DefaultTopics)
}

// Tag returns the topic with the most keyword hits, or TopicOther.
func (t *TopicTagger) Tag(text string) string {
	toks := Tokenize(text)
	best, bestHits := TopicOther, 0
	for i, set := range t.sets {
		hits := 0
		for _, tok := range toks {
			if set.has(tok) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = t.names[i], hits
		}
	}
	return best
}
