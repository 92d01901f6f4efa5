package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"InsightDesk/internal/apperrors"
)

const feedbackCSV = "id,comment_text\n1,I love it\n2,so slow\n3,ok\n"

func TestSentimentPage_Sample(t *testing.T) {
	srv := newTestServer(t)
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/sentiment", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Using a small sample dataset")
	assert.Contains(t, body, "Support was incredibly helpful and fast to respond.")
	assert.Contains(t, body, "<td>Negative</td>")
	assert.Contains(t, body, "3 (60.0%)")
	assert.Contains(t, body, "data:text/csv;base64,")
}

func TestSentimentPage_NoSample(t *testing.T) {
	srv := newTestServer(t, withoutSampleData())
	rec := serve(srv, httptest.NewRequest(http.MethodGet, "/sentiment", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Labeled Preview")
}

func TestSentimentUpload(t *testing.T) {
	srv := newTestServer(t)
	req := multipartRequest(t, "/sentiment", "file", "feedback.csv",
		"comment_text\nThe refund was slow\n", map[string]string{"topics": "on"})

	rec := serve(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "feedback.csv")
	assert.Contains(t, body, "<th>topic</th>")
	assert.Contains(t, body, "<td>Billing</td>")
	assert.NotContains(t, body, "Using a small sample dataset")
}

func TestSentimentUpload_MissingColumn(t *testing.T) {
	srv := newTestServer(t)
	req := multipartRequest(t, "/sentiment", "file", "feedback.csv", "text\nhello\n", nil)

	rec := serve(srv, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "missing required column")
	assert.Contains(t, body, "comment_text")
	assert.NotContains(t, body, "Labeled Preview")
}

func TestSentimentUpload_NoFile(t *testing.T) {
	srv := newTestServer(t)
	req := multipartRequest(t, "/sentiment", "", "", "", map[string]string{"topics": "on"})

	rec := serve(srv, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Choose a CSV file")
}

func TestLabelAPI_Multipart(t *testing.T) {
	srv := newTestServer(t)
	req := multipartRequest(t, "/api/sentiment/label", "file", "feedback.csv", feedbackCSV, nil)

	rec := serve(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "sentiment_results.csv")
	assert.Equal(t, "id,comment_text,sentiment\n1,I love it,Positive\n2,so slow,Negative\n3,ok,Neutral\n", rec.Body.String())

	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.FeedbackLabeled.WithLabelValues("Positive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.FeedbackLabeled.WithLabelValues("Negative")))
	assert.Equal(t, 1.0, testutil.ToFloat64(srv.metrics.FeedbackLabeled.WithLabelValues("Neutral")))
}

func TestLabelAPI_RawBodyJSONWithTopics(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/sentiment/label?topics=1&format=json",
		strings.NewReader("comment_text\nThe refund was slow\nGreat onboarding\n"))
	req.Header.Set(echo.HeaderContentType, "text/csv")

	rec := serve(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp labelResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"comment_text", "sentiment", "topic"}, resp.Columns)
	assert.Equal(t, [][]string{
		{"The refund was slow", "Negative", "Billing"},
		{"Great onboarding", "Positive", "Onboarding"},
	}, resp.Rows)
	assert.Equal(t, 1, resp.Distribution.Positive)
	assert.Equal(t, 1, resp.Distribution.Negative)
	assert.Equal(t, 0, resp.Distribution.Neutral)
}

func TestLabelAPI_RelabelsExistingSentimentColumn(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/sentiment/label",
		strings.NewReader("comment_text,sentiment\nso slow,Positive\n"))
	req.Header.Set(echo.HeaderContentType, "text/csv")

	rec := serve(srv, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "comment_text,sentiment\nso slow,Negative\n", rec.Body.String())
}

func TestLabelAPI_Errors(t *testing.T) {
	tests := []struct {
		name      string
		req       func(t *testing.T) *http.Request
		wantKey   string
		wantValue any
	}{
		{
			name: "missing column",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/sentiment/label", "file", "f.csv", "text\nhello\n", nil)
			},
			wantKey:   "column",
			wantValue: "comment_text",
		},
		{
			name: "no file",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/sentiment/label", "", "", "", map[string]string{"x": "y"})
			},
			wantKey:   "field",
			wantValue: "file",
		},
		{
			name: "ragged rows",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/sentiment/label", "file", "f.csv", "id,comment_text\n1,fine\n2\n", nil)
			},
			wantKey:   "line",
			wantValue: float64(3),
		},
		{
			name: "empty file",
			req: func(t *testing.T) *http.Request {
				return multipartRequest(t, "/api/sentiment/label", "file", "f.csv", "", nil)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			rec := serve(srv, tt.req(t))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, apperrors.TypeValidation, resp.Type)
			if tt.wantKey != "" {
				assert.Equal(t, tt.wantValue, resp.Context[tt.wantKey])
			}
		})
	}
}
