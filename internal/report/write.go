package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/markdown"

	"scout/internal/core"
	"scout/internal/logger"
)

// timestampLayout qualifies artifact file names so runs never collide.
const timestampLayout = "20060102_150405"

// Artifacts lists the files written for one report.
type Artifacts struct {
	TextPath     string // plain-text report
	MarkdownPath string // markdown rendition with linked sources
	DataPath     string // structured JSON for reprocessing
}

// Writer persists reports to the output directory.
type Writer struct {
	outputDir string
}

// NewWriter creates a writer targeting outputDir (created on first write).
func NewWriter(outputDir string) *Writer {
	if outputDir == "" {
		outputDir = "reports"
	}
	return &Writer{outputDir: outputDir}
}

// WriteAll saves the plain-text report, the markdown rendition, and the
// structured data file.
func (w *Writer) WriteAll(report core.Report) (Artifacts, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return Artifacts{}, fmt.Errorf("failed to create output directory %s: %w", w.outputDir, err)
	}

	timestamp := report.GeneratedAt.Format(timestampLayout)
	artifacts := Artifacts{
		TextPath:     filepath.Join(w.outputDir, fmt.Sprintf("research_report_%s.txt", timestamp)),
		MarkdownPath: filepath.Join(w.outputDir, fmt.Sprintf("research_report_%s.md", timestamp)),
		DataPath:     filepath.Join(w.outputDir, fmt.Sprintf("research_data_%s.json", timestamp)),
	}

	if err := os.WriteFile(artifacts.TextPath, []byte(report.Text), 0644); err != nil {
		return Artifacts{}, fmt.Errorf("failed to write report file %s: %w", artifacts.TextPath, err)
	}
	logger.Info("report saved", "path", artifacts.TextPath)

	if err := w.writeMarkdown(report, artifacts.MarkdownPath); err != nil {
		return Artifacts{}, err
	}
	logger.Info("markdown report saved", "path", artifacts.MarkdownPath)

	if err := w.writeData(report, artifacts.DataPath); err != nil {
		return Artifacts{}, err
	}
	logger.Info("research data saved", "path", artifacts.DataPath)

	return artifacts, nil
}

// writeMarkdown renders the report as markdown: title heading, metadata
// block, the full report body, and a linked source list.
func (w *Writer) writeMarkdown(report core.Report, path string) error {
	var b strings.Builder
	md := markdown.NewMarkdown(&b)

	md.H1("Research Report: " + report.Query)
	md.PlainText("")
	md.PlainTextf("**Generated:** %s", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	md.PlainTextf("**Sources Analyzed:** %d", len(report.Sources))
	md.PlainText("")
	md.HorizontalRule()
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightText, report.Text)
	md.PlainText("")
	md.HorizontalRule()
	md.PlainText("")
	md.H2("Source Links")
	md.PlainText("")
	if len(report.Sources) == 0 {
		md.PlainText("No sources were analyzed.")
	}
	for i, source := range report.Sources {
		md.PlainTextf("%d. [%s](%s)", i+1, source.Title, source.URL)
	}
	md.PlainText("")
	md.HorizontalRule()
	md.PlainText("*Report generated by scout*")

	if err := md.Build(); err != nil {
		return fmt.Errorf("failed to render markdown report: %w", err)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write markdown report %s: %w", path, err)
	}
	return nil
}

// writeData saves the structured run data for later reprocessing.
func (w *Writer) writeData(report core.Report, path string) error {
	payload := struct {
		Query     string              `json:"query"`
		Timestamp string              `json:"timestamp"`
		Sources   []core.SourceRecord `json:"sources"`
		Report    string              `json:"report"`
	}{
		Query:     report.Query,
		Timestamp: report.GeneratedAt.Format(timestampLayout),
		Sources:   report.Sources,
		Report:    report.Text,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode research data: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write research data %s: %w", path, err)
	}
	return nil
}
