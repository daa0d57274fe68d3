package main

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"cinedex/internal/media"
	"cinedex/internal/production"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

var (
	productionHeaders = []string{"ID", "Title", "Type", "Genre", "Year", "Rating"}
	productionAligns  = []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight}
	mediaHeaders      = []string{"#", "Title", "Original title", "Type", "Genre", "Year", "Rating"}
	mediaAligns       = []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight}
)

func renderProductions(items []production.Production) string {
	rows := make([][]string, 0, len(items))
	for _, p := range items {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			typeLabel(p.Type),
			p.Genre,
			formatYear(p.Year),
			formatRating(p.Rating),
		})
	}
	return renderTable(productionHeaders, rows, productionAligns)
}

func renderMediaResults(items []media.Result) string {
	rows := make([][]string, 0, len(items))
	for i, r := range items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.Title,
			r.OriginalTitle,
			typeLabel(r.Type),
			r.Genre,
			formatYear(r.Year),
			formatRating(r.Rating),
		})
	}
	return renderTable(mediaHeaders, rows, mediaAligns)
}

func typeLabel(value string) string {
	switch value {
	case production.TypeMovie:
		return "Filme"
	case production.TypeSeries:
		return "Série"
	default:
		return value
	}
}

func formatYear(year int) string {
	if year <= 0 {
		return "-"
	}
	return strconv.Itoa(year)
}

func formatRating(rating *float64) string {
	if rating == nil {
		return "-"
	}
	return strconv.FormatFloat(*rating, 'f', 1, 64)
}
