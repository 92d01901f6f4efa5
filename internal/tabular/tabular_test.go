package tabular

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InsightDesk/internal/model"
)

func TestReadFeedback(t *testing.T) {
	in := "id,comment_text,channel\n1,\"Great, fast help\",email\n2,slow app,chat\n"

	tbl, err := ReadFeedback(strings.NewReader(in))

	require.NoError(t, err)
	assert.Equal(t, []string{"id", "comment_text", "channel"}, tbl.Header)
	assert.Equal(t, 1, tbl.CommentIndex)
	require.Len(t, tbl.Records, 2)
	assert.Equal(t, "Great, fast help", tbl.Records[0].CommentText)
	assert.Equal(t, []string{"2", "slow app", "chat"}, tbl.Records[1].Cells)
}

func TestReadFeedback_BOMHeader(t *testing.T) {
	tbl, err := ReadFeedback(strings.NewReader("\ufeffcomment_text\nhello\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.CommentIndex)
}

func TestReadFeedback_MissingColumn(t *testing.T) {
	tbl, err := ReadFeedback(strings.NewReader("id,comment\n1,hello\n"))

	var mc *MissingColumnError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, "comment_text", mc.Column)
	assert.Contains(t, err.Error(), "comment_text")
	assert.Empty(t, tbl.Records)
}

func TestReadFeedback_Empty(t *testing.T) {
	_, err := ReadFeedback(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestReadFeedback_RaggedRowRejected(t *testing.T) {
	tbl, err := ReadFeedback(strings.NewReader("id,comment_text\n1,ok\n2,too,many\n"))
	require.Error(t, err)
	assert.Empty(t, tbl.Records)
}

func TestWriteLabeled(t *testing.T) {
	tbl := model.LabeledTable{
		Header: []string{"id", "comment_text"},
		Records: []model.LabeledRecord{
			{FeedbackRecord: model.FeedbackRecord{CommentText: "love it, truly", Cells: []string{"1", "love it, truly"}}, Sentiment: model.Positive},
			{FeedbackRecord: model.FeedbackRecord{CommentText: "meh", Cells: []string{"2", "meh"}}, Sentiment: model.Neutral},
		},
	}
	var buf bytes.Buffer

	require.NoError(t, WriteLabeled(&buf, tbl))
	assert.Equal(t, "id,comment_text,sentiment\n1,\"love it, truly\",Positive\n2,meh,Neutral\n", buf.String())

	tbl.WithTopic = true
	tbl.Records[0].Topic = "Other"
	tbl.Records[1].Topic = "Billing"
	buf.Reset()
	require.NoError(t, WriteLabeled(&buf, tbl))
	assert.Equal(t, "id,comment_text,sentiment,topic\n1,\"love it, truly\",Positive,Other\n2,meh,Neutral,Billing\n", buf.String())
}

func TestWriteLabeled_ExistingColumnsOverwritten(t *testing.T) {
	tbl := model.LabeledTable{
		Header:    []string{"sentiment", "comment_text", "topic"},
		WithTopic: true,
		Records: []model.LabeledRecord{
			{FeedbackRecord: model.FeedbackRecord{CommentText: "so slow", Cells: []string{"Positive", "so slow", "UI/UX"}}, Sentiment: model.Negative, Topic: "Performance"},
		},
	}
	var buf bytes.Buffer

	require.NoError(t, WriteLabeled(&buf, tbl))
	assert.Equal(t, "sentiment,comment_text,topic\nNegative,so slow,Performance\n", buf.String())
	assert.Equal(t, []string{"Positive", "so slow", "UI/UX"}, tbl.Records[0].Cells)

	// an untagged table leaves an existing topic column alone
	tbl.WithTopic = false
	buf.Reset()
	require.NoError(t, WriteLabeled(&buf, tbl))
	assert.Equal(t, "sentiment,comment_text,topic\nNegative,so slow,UI/UX\n", buf.String())
}

func TestWriteScenarios(t *testing.T) {
	tbl := model.ScenarioTable{Rows: []model.ScenarioRow{
		{DiscountRatePct: 0, ConversionRate: 0.025, Orders: 2500, AverageOrderValue: 104, Revenue: 260000, ContributionMargin: 156000, RevenuePerSession: 2.6, CMPerSession: 1.56},
		{DiscountRatePct: 40, ConversionRate: 0.043, Orders: 4300, AverageOrderValue: 62.4, Revenue: 268320, ContributionMargin: 89440, RevenuePerSession: 2.68, CMPerSession: 0.89},
	}}
	var buf bytes.Buffer

	require.NoError(t, WriteScenarios(&buf, tbl))

	want := "discount_rate_%,conversion_rate,orders,AOV,revenue,contribution_margin,revenue_per_session,cm_per_session\n" +
		"0.0,0.0250,2500,104.00,260000.00,156000.00,2.60,1.56\n" +
		"40.0,0.0430,4300,62.40,268320.00,89440.00,2.68,0.89\n"
	assert.Equal(t, want, buf.String())
}

func TestSummarizeTransactions(t *testing.T) {
	in := "date,qty\n2024-01-01,3\n2024-01-02,4.5\n2024-01-03,\n"

	s, err := SummarizeTransactions(strings.NewReader(in))

	require.NoError(t, err)
	assert.Equal(t, 3, s.Rows)
	assert.True(t, s.HasQty)
	assert.Equal(t, int64(7), s.TotalUnits)
	assert.Equal(t, []string{"date", "qty"}, s.Columns)
	assert.Len(t, s.Preview, 3)
}

func TestSummarizeTransactions_NoQty(t *testing.T) {
	var b strings.Builder
	b.WriteString("date,sku\n")
	for i := 0; i < 30; i++ {
		b.WriteString("2024-01-01,A\n")
	}

	s, err := SummarizeTransactions(strings.NewReader(b.String()))

	require.NoError(t, err)
	assert.False(t, s.HasQty)
	assert.Equal(t, 30, s.Rows)
	assert.Len(t, s.Preview, PreviewRows)
}

func TestSummarizeTransactions_Unparseable(t *testing.T) {
	_, err := SummarizeTransactions(strings.NewReader("date,qty\n2024-01-01,lots\n"))
	assert.Error(t, err)

	_, err = SummarizeTransactions(strings.NewReader("a,\"b\n"))
	assert.Error(t, err)
}
