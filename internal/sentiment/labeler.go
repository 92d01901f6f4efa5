package sentiment

import (
	"strings"

	"InsightDesk/internal/model"
)

// Labeler assigns a SentimentLabel to free text by lexicon lookup.
// A Labeler is immutable and safe for concurrent use.
type Labeler struct {
	positive wordSet
	negative wordSet
}

// NewLabeler builds a Labeler from explicit lexicons. Words are matched
// after the same normalization applied to input tokens.
func NewLabeler(positive, negative []string) *Labeler {
	return &Labeler{
		positive: newWordSet(normalizeAll(positive)),
		negative: newWordSet(normalizeAll(negative)),
	}
}

// DefaultLabeler returns a Labeler using PositiveWords and NegativeWords.
func DefaultLabeler() *Labeler {
	return NewLabeler(PositiveWords, NegativeWords)
}

// Tokenize splits text on whitespace, trims surrounding punctuation and lower-cases.
// Tokens that are pure punctuation come back as empty strings and match nothing.
func Tokenize(text string) []string {
	fields := strings.Fields(text)
	toks := make([]string, len(fields))
	for i, f := range fields {
		toks[i] = normalize(f)
	}
	return toks
}

func normalize(tok string) string {
	return strings.ToLower(strings.Trim(tok, punctuation))
}

func normalizeAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = normalize(w)
	}
	return out
}

// Score returns positive hits minus negative hits.
// Negation is not handled: "not good" still counts "good".
func (l *Labeler) Score(text string) int {
	score := 0
	for _, t := range Tokenize(text) {
		if l.positive.has(t) {
			score++
		}
		if l.negative.has(t) {
			score--
		}
	}
	return score
}

// Label maps the net score to Positive, Negative or Neutral.
func (l *Labeler) Label(text string) model.SentimentLabel {
	switch score := l.Score(text); {
	case score > 0:
		return model.Positive
	case score < 0:
		return model.Negative
	default:
		return model.Neutral
	}
}

// LabelBatch labels every record of t independently. The input is not modified.
// When topics is non-nil each record is also tagged with a topic.
func (l *Labeler) LabelBatch(t model.FeedbackTable, topics *TopicTagger) model.LabeledTable {
	out := model.LabeledTable{
		Header:    append([]string(nil), t.Header...),
		WithTopic: topics != nil,
		Records:   make([]model.LabeledRecord, len(t.Records)),
	}
	for i, rec := range t.Records {
		lr := model.LabeledRecord{
			FeedbackRecord: model.FeedbackRecord{
				CommentText: rec.CommentText,
				Cells:       append([]string(nil), rec.Cells...),
			},
			Sentiment: l.Label(rec.CommentText),
		}
		if topics != nil {
			lr.Topic = topics.Tag(rec.CommentText)
		}
		out.Records[i] = lr
	}
	return out
}

// Distribution counts the labels of a labeled table.
func Distribution(t model.LabeledTable) model.SentimentDistribution {
	var d model.SentimentDistribution
	for _, r := range t.Records {
		switch r.Sentiment {
		case model.Positive:
			d.Positive++
		case model.Negative:
			d.Negative++
		default:
			d.Neutral++
		}
	}
	return d
}
