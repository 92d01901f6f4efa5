package server

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"InsightDesk/internal/apperrors"
	"InsightDesk/internal/branding"
	"InsightDesk/internal/model"
	"InsightDesk/internal/sentiment"
	"InsightDesk/internal/tabular"
)

const (
	labeledFileName = "sentiment_results.csv"
	uploadField     = "file"
	previewLimit    = 200
)

type distributionBar struct {
	Label   model.SentimentLabel
	Count   int
	Percent float64
	Color   string
}

type sentimentView struct {
	page
	Sample   bool
	FileName string
	Topics   bool
	Columns  []string
	Rows     [][]string
	Total    int
	Bars     []distributionBar
	Download template.URL
	Error    string
}

type labelResponse struct {
	Columns      []string                    `json:"columns"`
	Rows         [][]string                  `json:"rows"`
	Distribution model.SentimentDistribution `json:"distribution"`
}

func (s *Server) handleSentimentPage(c echo.Context) error {
	view := sentimentView{page: s.newPage(branding.SentimentBanner, branding.SentimentIntro)}
	if s.config.Server.ShowSampleData {
		view.Sample = true
		s.fillSentimentView(&view, s.label(sampleFeedback(), false))
	}
	return s.renderTemplate(c, http.StatusOK, "sentiment.html", view)
}

func (s *Server) handleSentimentUpload(c echo.Context) error {
	view := sentimentView{page: s.newPage(branding.SentimentBanner, branding.SentimentIntro)}
	view.Topics = wantTopics(c)

	fh, err := c.FormFile(uploadField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		view.Error = "Choose a CSV file with a comment_text column."
		return s.renderTemplate(c, http.StatusBadRequest, "sentiment.html", view)
	}
	if err != nil {
		return s.renderUploadError(c, view, err)
	}
	view.FileName = fh.Filename

	f, err := fh.Open()
	if err != nil {
		return s.renderUploadError(c, view, err)
	}
	defer f.Close()

	tbl, err := tabular.ReadFeedback(f)
	if err != nil {
		return s.renderUploadError(c, view, err)
	}
	s.fillSentimentView(&view, s.label(tbl, view.Topics))
	return s.renderTemplate(c, http.StatusOK, "sentiment.html", view)
}

// handleLabelAPI accepts a multipart upload or a raw text/csv body.
func (s *Server) handleLabelAPI(c echo.Context) error {
	tbl, err := s.readFeedbackRequest(c)
	if err != nil {
		return err
	}
	labeled := s.label(tbl, wantTopics(c))

	if c.QueryParam("format") == "json" {
		resp := labelResponse{
			Columns:      labeled.Columns(),
			Rows:         make([][]string, 0, len(labeled.Records)),
			Distribution: sentiment.Distribution(labeled),
		}
		for _, r := range labeled.Records {
			resp.Rows = append(resp.Rows, labeled.Row(r))
		}
		return c.JSON(http.StatusOK, resp)
	}

	var buf bytes.Buffer
	if err := tabular.WriteLabeled(&buf, labeled); err != nil {
		return apperrors.Internal("failed to write labeled csv", err)
	}
	return csvAttachment(c, labeledFileName, buf.Bytes())
}

func (s *Server) readFeedbackRequest(c echo.Context) (model.FeedbackTable, error) {
	req := c.Request()
	if strings.HasPrefix(req.Header.Get(echo.HeaderContentType), "text/csv") {
		return tabular.ReadFeedback(req.Body)
	}

	fh, err := c.FormFile(uploadField)
	if err != nil {
		return model.FeedbackTable{}, apperrors.Validation("a CSV upload is required in the \"file\" field", err).
			WithContext("field", uploadField)
	}
	f, err := fh.Open()
	if err != nil {
		return model.FeedbackTable{}, apperrors.Internal("failed to open upload", err)
	}
	defer f.Close()
	return tabular.ReadFeedback(f)
}

// label runs the labeler and counts the result.
func (s *Server) label(tbl model.FeedbackTable, topics bool) model.LabeledTable {
	var tagger *sentiment.TopicTagger
	if topics {
		tagger = s.topics
	}
	labeled := s.labeler.LabelBatch(tbl, tagger)

	dist := sentiment.Distribution(labeled)
	for _, l := range model.Labels {
		if n := dist.Count(l); n > 0 {
			s.metrics.FeedbackLabeled.WithLabelValues(string(l)).Add(float64(n))
		}
	}
	return labeled
}

func (s *Server) fillSentimentView(view *sentimentView, labeled model.LabeledTable) {
	view.Columns = labeled.Columns()
	view.Total = len(labeled.Records)
	for i, r := range labeled.Records {
		if i == previewLimit {
			break
		}
		view.Rows = append(view.Rows, labeled.Row(r))
	}

	dist := sentiment.Distribution(labeled)
	for i, l := range model.Labels {
		bar := distributionBar{Label: l, Count: dist.Count(l), Color: s.theme.SeriesColor(i)}
		if total := dist.Total(); total > 0 {
			bar.Percent = float64(bar.Count) / float64(total) * 100
		}
		view.Bars = append(view.Bars, bar)
	}

	var buf bytes.Buffer
	if err := tabular.WriteLabeled(&buf, labeled); err != nil {
		slog.Warn("failed to build labeled download", "error", err)
		return
	}
	view.Download = template.URL("data:text/csv;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()))
}

func (s *Server) renderUploadError(c echo.Context, view sentimentView, err error) error {
	status, msg := uploadErrorMessage(err)
	slog.Warn("feedback upload rejected", "file", view.FileName, "error", err)
	view.Error = msg
	return s.renderTemplate(c, status, "sentiment.html", view)
}

// uploadErrorMessage maps an upload failure to a status and a user-facing line.
func uploadErrorMessage(err error) (int, string) {
	appErr := apperrors.From(err)
	if appErr.Type != apperrors.TypeInternal {
		return appErr.HTTPStatus(), appErr.Message
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, fmt.Sprintf("Upload rejected: %v", httpErr.Message)
	}
	return appErr.HTTPStatus(), "Could not read the uploaded file."
}

func wantTopics(c echo.Context) bool {
	v := c.QueryParam("topics")
	if v == "" {
		v = c.FormValue("topics")
	}
	b, _ := strconv.ParseBool(v)
	return b || v == "on"
}

func csvAttachment(c echo.Context, name string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", data)
}
