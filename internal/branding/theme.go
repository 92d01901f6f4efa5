// Package branding holds the shared look of both dashboards.
package branding

import (
	"html/template"
	"strings"

	"github.com/russross/blackfriday/v2"
)

// Palette is the set of brand colors.
type Palette struct {
	Background string
	Card       string
	Text       string
	Muted      string
	Accent     string
	Success    string
	Danger     string
}

// Banner is the header block at the top of a dashboard.
type Banner struct {
	Title    string
	Subtitle string
	Emoji    string
}

// Theme is passed to the renderer at startup; nothing about it is global.
type Theme struct {
	Name     string
	Palette  Palette
	Category []string
	MaxWidth string
}

// Default returns the standard InsightDesk theme.
func Default() Theme {
	p := Palette{
		Background: "#0F172A",
		Card:       "#111827",
		Text:       "#E5E7EB",
		Muted:      "#94A3B8",
		Accent:     "#38BDF8",
		Success:    "#34D399",
		Danger:     "#F87171",
	}
	return Theme{
		Name:     "ms_insight",
		Palette:  p,
		Category: []string{p.Accent, p.Success, p.Muted, "#F59E0B", "#A78BFA"},
		MaxWidth: "1200px",
	}
}

// SeriesColor returns the i-th category color, cycling.
func (t Theme) SeriesColor(i int) string {
	if len(t.Category) == 0 {
		return t.Palette.Accent
	}
	return t.Category[i%len(t.Category)]
}

// SentimentBanner is the header of the feedback dashboard.
var SentimentBanner = Banner{
	Title:    "CX Sentiment Analyzer — Voice of Customer",
	Subtitle: "Upload customer feedback, classify sentiment, and explore insights.",
	Emoji:    "💬",
}

// ForecastBanner is the header of the promotion dashboard.
var ForecastBanner = Banner{
	Title:    "Promo Impact Forecaster",
	Subtitle: "Forecast revenue, conversion, and contribution margin under different discount scenarios.",
	Emoji:    "📈",
}

// SentimentIntro is the markdown shown under the sentiment banner.
const SentimentIntro = `Upload a CSV of customer feedback (or use the sample). The app will:

1. Label **sentiment** (Positive / Negative / Neutral)
2. Optionally tag **topics** (Onboarding, Billing, UI/UX, Performance, Support)
3. Produce a quick **distribution** and a downloadable **labeled CSV**
`

// ForecastIntro is the markdown shown under the forecast banner.
const ForecastIntro = `Model how discount depth impacts **conversion, AOV, revenue, and contribution margin**.

- Adjust the assumptions
- Review the scenario table
- Download the CSV for planning decks
`

// ForecastTip closes the forecast page.
const ForecastTip = "Tip: tune elasticity and caps based on historical test results by category/segment."

// Markdown renders trusted, compile-time copy to HTML.
func Markdown(src string) template.HTML {
	out := blackfriday.Run([]byte(strings.TrimSpace(src)), blackfriday.WithExtensions(blackfriday.CommonExtensions))
	return template.HTML(out)
}
