package model

// CommentColumn is the only column a feedback file must carry.
const CommentColumn = "comment_text"

// SentimentColumn is appended to every labeled table.
const SentimentColumn = "sentiment"

// TopicColumn is appended after SentimentColumn when topic tagging is requested.
const TopicColumn = "topic"

// SentimentLabel is the polarity assigned to one comment.
type SentimentLabel string

const (
	Positive SentimentLabel = "Positive"
	Negative SentimentLabel = "Negative"
	Neutral  SentimentLabel = "Neutral"
)

// Labels lists every SentimentLabel in display order.
var Labels = []SentimentLabel{Positive, Negative, Neutral}

// FeedbackRecord is one row of an uploaded feedback file.
// Cells holds every column of the row in header order, comment_text included.
type FeedbackRecord struct {
	CommentText string
	Cells       []string
}

// FeedbackTable is a schema-checked feedback file.
type FeedbackTable struct {
	Header       []string
	CommentIndex int
	Records      []FeedbackRecord
}

// LabeledRecord pairs a feedback row with its derived columns.
type LabeledRecord struct {
	FeedbackRecord
	Sentiment SentimentLabel
	Topic     string
}

// LabeledTable is a FeedbackTable with a sentiment (and optionally topic) column.
// A derived column already present in Header is overwritten in place;
// otherwise it is appended.
type LabeledTable struct {
	Header    []string
	WithTopic bool
	Records   []LabeledRecord
}

// Columns returns the output header: original columns first, then any derived
// column the input did not already carry.
func (t LabeledTable) Columns() []string {
	cols := make([]string, 0, len(t.Header)+2)
	cols = append(cols, t.Header...)
	if t.columnIndex(SentimentColumn) < 0 {
		cols = append(cols, SentimentColumn)
	}
	if t.WithTopic && t.columnIndex(TopicColumn) < 0 {
		cols = append(cols, TopicColumn)
	}
	return cols
}

// Row returns r's cells in Columns order.
func (t LabeledTable) Row(r LabeledRecord) []string {
	row := make([]string, 0, len(r.Cells)+2)
	row = append(row, r.Cells...)
	row = setOrAppend(row, t.columnIndex(SentimentColumn), string(r.Sentiment))
	if t.WithTopic {
		row = setOrAppend(row, t.columnIndex(TopicColumn), r.Topic)
	}
	return row
}

func (t LabeledTable) columnIndex(name string) int {
	for i, c := range t.Header {
		if c == name {
			return i
		}
	}
	return -1
}

func setOrAppend(row []string, idx int, v string) []string {
	if idx < 0 {
		return append(row, v)
	}
	row[idx] = v
	return row
}

// SentimentDistribution counts labels across a labeled table.
type SentimentDistribution struct {
	Positive int `json:"Positive"`
	Negative int `json:"Negative"`
	Neutral  int `json:"Neutral"`
}

// Total returns the number of counted records.
func (d SentimentDistribution) Total() int {
	return d.Positive + d.Negative + d.Neutral
}

// Count returns the count for a single label.
func (d SentimentDistribution) Count(l SentimentLabel) int {
	switch l {
	case Positive:
		return d.Positive
	case Negative:
		return d.Negative
	default:
		return d.Neutral
	}
}
