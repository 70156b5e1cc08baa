package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// formatBatchResults formats the batch results in the specified format.
func formatBatchResults(files []FileResult, format string) (string, error) {
	switch format {
	case "json":
		return formatJSON(files)
	case "csv":
		return formatCSV(files)
	default: // text
		return formatText(files)
	}
}

// formatJSON formats results as JSON.
func formatJSON(files []FileResult) (string, error) {
	batchResult := struct {
		Documents []FileResult `json:"documents"`
	}{Documents: files}

	bts, err := json.MarshalIndent(batchResult, "", "  ")
	return string(bts), err
}

// formatCSV formats results as CSV, one row per document.
func formatCSV(files []FileResult) (string, error) {
	csvData := [][]string{
		{"file", "overlaps", "filtered_watermarks", "trimmed_boxes", "dropped_glyphs", "marked_path", "json_path", "error"},
	}

	for _, fr := range files {
		if fr.Error != "" {
			csvData = append(csvData, []string{fr.Path, "0", "0", "0", "0", "", "", fr.Error})
			continue
		}
		res := fr.Result
		csvData = append(csvData, []string{
			fr.Path,
			strconv.Itoa(res.Overlaps),
			strconv.Itoa(res.Filtered),
			strconv.Itoa(res.Trimmed),
			strconv.Itoa(res.Dropped),
			res.MarkedPath,
			res.JSONPath,
			"",
		})
	}

	var output strings.Builder
	writer := csv.NewWriter(&output)
	for _, row := range csvData {
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	return output.String(), writer.Error()
}

// formatText formats results as plain text, one block per document.
func formatText(files []FileResult) (string, error) {
	var output strings.Builder

	for _, fr := range files {
		if fr.Error != "" {
			fmt.Fprintf(&output, "%s: FAILED (%s)\n", fr.Path, fr.Error)
			continue
		}

		res := fr.Result
		fmt.Fprintf(&output, "%s: %d overlap(s)", fr.Path, res.Overlaps)
		if res.Filtered > 0 {
			fmt.Fprintf(&output, " (filtered %d watermark glyphs)", res.Filtered)
		}
		if res.Trimmed > 0 {
			fmt.Fprintf(&output, " (trimmed %d glyph boxes)", res.Trimmed)
		}
		output.WriteString("\n")

		if res.MarkedPath != "" {
			fmt.Fprintf(&output, "  marked: %s\n", res.MarkedPath)
		}
		if res.JSONPath != "" {
			fmt.Fprintf(&output, "  report: %s\n", res.JSONPath)
		}
		writeTopCharacters(&output, fr)
	}

	return output.String(), nil
}

// writeTopCharacters appends the most frequently overlapping characters
// for one document.
func writeTopCharacters(output *strings.Builder, fr FileResult) {
	const topN = 5

	report := fr.Result.Report
	if report == nil || len(report.CharacterStats) == 0 {
		return
	}

	output.WriteString("  top characters:")
	for i, stat := range report.CharacterStats {
		if i == topN {
			break
		}
		ch := stat.Character
		if ch == " " {
			ch = "<space>"
		}
		fmt.Fprintf(output, " %q=%d (%.2f%%)", ch, stat.OverlapCount, stat.Percentage)
	}
	output.WriteString("\n")
}
