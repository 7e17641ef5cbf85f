package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	mutedColor  = &props.Color{Red: 80, Green: 80, Blue: 80}
	headerBg    = &props.Color{Red: 33, Green: 37, Blue: 41}
	summaryBg   = &props.Color{Red: 240, Green: 240, Blue: 240}
	whiteColour = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// GenerateJobQuotePDF renders a single job quote and returns the PDF bytes.
func GenerateJobQuotePDF(data QuoteData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(12).
		WithTopMargin(12).
		WithRightMargin(12).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuoteHeader(m, data)
	addQuoteCustomer(m, data)
	addQuoteLines(m, data.Lines)
	addQuoteSummary(m, data.Draft)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addQuoteHeader(m core.Maroto, data QuoteData) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New("Ramp Rental Quote", props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
		row.New(8).Add(
			col.New(6).Add(
				text.New("Quote: "+data.Reference, props.Text{Size: 9, Color: mutedColor}),
			),
			col.New(6).Add(
				text.New("Date: "+data.CreatedDate, props.Text{Size: 9, Align: align.Right, Color: mutedColor}),
			),
		),
		row.New(4),
	)
}

func addQuoteCustomer(m core.Maroto, data QuoteData) {
	label := props.Text{Size: 9, Style: fontstyle.Bold}
	value := props.Text{Size: 9}

	lines := [][2]string{
		{"Customer", data.CustomerName},
		{"Email", data.CustomerEmail},
		{"Phone", data.CustomerPhone},
		{"Install address", data.InstallAddress},
	}
	if data.ScheduledDate != "" {
		lines = append(lines, [2]string{"Scheduled", data.ScheduledDate})
	}
	for _, l := range lines {
		m.AddRows(row.New(6).Add(
			col.New(3).Add(text.New(l[0], label)),
			col.New(9).Add(text.New(l[1], value)),
		))
	}
	m.AddRows(row.New(4))
}

func addQuoteLines(m core.Maroto, lines []QuoteLine) {
	head := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Center, Color: whiteColour}
	headLeft := head
	headLeft.Align = align.Left
	cell := &props.Cell{BackgroundColor: headerBg}

	m.AddRows(row.New(8).Add(
		col.New(1).Add(text.New("#", head)).WithStyle(cell),
		col.New(7).Add(text.New("Component", headLeft)).WithStyle(cell),
		col.New(2).Add(text.New("Qty", head)).WithStyle(cell),
		col.New(2).Add(text.New("Length (ft)", head)).WithStyle(cell),
	))

	body := props.Text{Size: 8, Align: align.Center}
	bodyLeft := body
	bodyLeft.Align = align.Left
	for i, l := range lines {
		length := "-"
		if l.Length > 0 {
			length = fmt.Sprintf("%d", l.Length)
		}
		m.AddRows(row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", i+1), body)),
			col.New(7).Add(text.New(l.Description, bodyLeft)),
			col.New(2).Add(text.New(formatQty(float64(l.Quantity)), body)),
			col.New(2).Add(text.New(length, body)),
		))
	}
}

func addQuoteSummary(m core.Maroto, d JobDraft) {
	m.AddRows(row.New(6))

	cell := &props.Cell{BackgroundColor: summaryBg}
	label := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}
	value := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right}

	summary := [][2]string{
		{"Total ramp length", fmt.Sprintf("%d ft", d.TotalRampLength)},
		{"Landings", fmt.Sprintf("%d", d.TotalLandings)},
		{"Distance from warehouse", FormatMiles(d.DistanceFromWarehouse)},
		{"Delivery fee", FormatUSD(d.DeliveryFee)},
		{"Installation fee", FormatUSD(d.InstallFee)},
		{"Monthly rental rate", FormatUSD(d.RentalRate)},
		{"Total", FormatUSD(d.TotalCost)},
	}
	for _, s := range summary {
		m.AddRows(row.New(7).Add(
			col.New(8).Add(text.New(s[0], label)).WithStyle(cell),
			col.New(4).Add(text.New(s[1], value)).WithStyle(cell),
		))
	}

	if d.OverridePricing {
		m.AddRows(row.New(6).Add(
			col.New(12).Add(text.New("Pricing adjusted manually.", props.Text{Size: 7, Color: mutedColor})),
		))
	}
}
