package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"pcrimport/detection"
	"pcrimport/extractors"
	"pcrimport/formats"
	"pcrimport/internal/application/pipeline"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	return table
}

func renderDetection(w io.Writer, r *detection.Result) {
	fmt.Fprintf(w, "sheet: %s\n", r.Raw.SheetName)
	if len(r.Skipped) > 0 {
		fmt.Fprintf(w, "skipped for this sheet: %s\n", strings.Join(r.Skipped, ", "))
	}

	table := newTable(w, "FORMAT", "SCORE", "HEADERS", "ROLES", "DATA START", "CHECKS")
	appendCandidate := func(id string, b detection.Breakdown) {
		table.Append([]string{
			id,
			formatScore(b.Total),
			formatScore(b.Headers),
			formatScore(b.Roles),
			formatScore(b.DataStart),
			fmt.Sprintf("%d/%d", b.ValidationsPassed, b.ValidationsTotal),
		})
	}
	if r.Best != "" {
		appendCandidate(r.Best, r.Breakdown)
	}
	for _, alt := range r.Alternatives {
		appendCandidate(alt.ID, alt.Breakdown)
	}
	table.Render()
}

func renderReportHeader(w io.Writer, r *pipeline.Report) {
	fmt.Fprintf(w, "file: %s\nsheet: %s\nformat: %s\n", r.FileName, r.Sheet, r.Format)
	if r.Detection != nil {
		fmt.Fprintf(w, "score: %s\n", formatScore(r.Detection.Score))
	}
	for _, warning := range r.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	fmt.Fprintln(w)
}

func renderRows(w io.Writer, rows []extractors.NormalizedRow) {
	table := newTable(w, "WELL", "SAMPLE", "TARGET", "CT")
	for _, row := range rows {
		table.Append([]string{row.Well, row.Sample, row.Target, formatCT(row.CT)})
	}
	table.Render()
	fmt.Fprintf(w, "\n%d row(s)\n", len(rows))
}

func renderPairs(w io.Writer, r *pipeline.Report) {
	s := r.Summary
	fmt.Fprintf(w, "plate: %s  date: %s  run valid: %t  invalid samples: %d\n\n",
		s.PlateID, s.Date, s.Valid, s.InvalidSamples)

	header := append([]string{"WELLS", "SAMPLE", "CONTROL", "VALIDATION"}, s.Targets...)
	table := newTable(w, append(header, "SELECTED")...)
	for _, p := range r.Pairs {
		row := []string{p.Wells[0] + "/" + p.Wells[1], p.Sample, controlCell(p.ControlCT), string(p.Validation)}
		for _, target := range s.Targets {
			res := p.Results[target]
			cell := string(res.Classification)
			if res.Display != "" {
				cell += " " + res.Display
			}
			row = append(row, cell)
		}
		table.Append(append(row, strconv.FormatBool(p.Selected)))
	}
	table.Render()

	targets := make([]string, 0, len(s.DetectableCounts))
	for target := range s.DetectableCounts {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	fmt.Fprintln(w)
	for _, target := range targets {
		fmt.Fprintf(w, "%s detectable: %d\n", target, s.DetectableCounts[target])
	}
}

func renderFormats(w io.Writer, descriptors []formats.Descriptor) {
	table := newTable(w, "ID", "VENDOR", "MODEL", "EXTRACTOR", "START ROW")
	for _, d := range descriptors {
		table.Append([]string{d.ID, d.Vendor, d.Model, string(d.Extractor), strconv.Itoa(d.Layout.StartRow)})
	}
	table.Render()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatCT(ct *float64) string {
	if ct == nil {
		return "-"
	}
	return strconv.FormatFloat(*ct, 'f', 2, 64)
}

func controlCell(values []float64) string {
	if len(values) == 0 {
		return "-"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', 2, 64)
	}
	return strings.Join(parts, ", ")
}
