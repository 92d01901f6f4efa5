package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"InsightDesk/internal/notifier"
	"InsightDesk/internal/sentiment"
	"InsightDesk/internal/tabular"
)

var (
	labelIn     string
	labelOut    string
	labelTopics bool
)

var labelCmd = &cobra.Command{
	Use:   "label",
	Short: "Label a feedback CSV by sentiment",
	Long: `Reads a CSV with a comment_text column and writes it back with a
sentiment column appended (and a topic column with --topics).

Examples:
  insightdesk label --in feedback.csv --out sentiment_results.csv
  cat feedback.csv | insightdesk label --in - --topics`,
	Args: cobra.NoArgs,
	RunE: runLabel,
}

func init() {
	labelCmd.Flags().StringVar(&labelIn, "in", "", "Feedback CSV to read (- for stdin)")
	labelCmd.Flags().StringVar(&labelOut, "out", "", "Labeled CSV to write (default stdout)")
	labelCmd.Flags().BoolVar(&labelTopics, "topics", false, "Also tag each comment with a topic")
	_ = labelCmd.MarkFlagRequired("in")
}

func runLabel(cmd *cobra.Command, _ []string) error {
	in, closeIn, err := openInput(labelIn)
	if err != nil {
		return err
	}
	defer closeIn()

	tbl, err := tabular.ReadFeedback(in)
	if err != nil {
		return fmt.Errorf("read %s: %w", labelIn, err)
	}

	var tagger *sentiment.TopicTagger
	if labelTopics {
		tagger = sentiment.DefaultTopicTagger()
	}
	labeled := sentiment.DefaultLabeler().LabelBatch(tbl, tagger)

	out, closeOut, err := openOutput(labelOut, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer closeOut()

	if err := tabular.WriteLabeled(out, labeled); err != nil {
		return fmt.Errorf("write labeled csv: %w", err)
	}

	slog.Info("feedback labeled", "rows", len(labeled.Records), "out", outputName(labelOut))
	fmt.Fprint(cmd.ErrOrStderr(), notifier.FormatDistribution(sentiment.Distribution(labeled)))
	return nil
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			slog.Error("close output", "path", path, "error", err)
		}
	}, nil
}

func outputName(path string) string {
	if path == "" || path == "-" {
		return "stdout"
	}
	return path
}
