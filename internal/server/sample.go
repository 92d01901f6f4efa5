package server

import "InsightDesk/internal/model"

var sampleComments = []string{
	"I love how easy the setup was, super intuitive onboarding.",
	"Support was incredibly helpful and fast to respond.",
	"The app is slow and the interface feels confusing.",
	"I had a billing issue and the refund took too long.",
	"Amazing customer service and smooth experience.",
}

// sampleFeedback is shown on the sentiment page until a file is uploaded.
func sampleFeedback() model.FeedbackTable {
	tbl := model.FeedbackTable{Header: []string{model.CommentColumn}}
	for _, c := range sampleComments {
		tbl.Records = append(tbl.Records, model.FeedbackRecord{CommentText: c, Cells: []string{c}})
	}
	return tbl
}
