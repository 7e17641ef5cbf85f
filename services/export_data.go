package services

// JobExportRow is one job line in the jobs workbook.
type JobExportRow struct {
	CustomerName   string
	InstallAddress string
	Status         string
	ScheduledDate  string
	Components     string
	RampLength     int
	Landings       int
	Distance       float64
	DeliveryFee    float64
	InstallFee     float64
	RentalRate     float64
	TotalCost      float64
}

// JobsExportData holds everything the jobs workbook needs.
type JobsExportData struct {
	Title       string
	CreatedDate string
	Rows        []JobExportRow
	TotalCost   float64
}

// QuoteLine is a component line on a quote.
type QuoteLine struct {
	Description string
	Quantity    int
	Length      int
}

// QuoteData holds everything the job quote PDF needs.
type QuoteData struct {
	Reference      string
	CreatedDate    string
	CustomerName   string
	CustomerEmail  string
	CustomerPhone  string
	InstallAddress string
	ScheduledDate  string
	Lines          []QuoteLine
	Draft          JobDraft
}

// NewQuoteLines expands a component list into quote lines.
func NewQuoteLines(components []RampComponent) []QuoteLine {
	lines := make([]QuoteLine, 0, len(components))
	for _, c := range components {
		lines = append(lines, QuoteLine{
			Description: c.Type.Description(),
			Quantity:    c.Quantity,
			Length:      c.Length(),
		})
	}
	return lines
}

// SummarizeComponents renders a component list as "RS5 x2, L45 x1".
func SummarizeComponents(components []RampComponent) string {
	s := ""
	for i, c := range components {
		if i > 0 {
			s += ", "
		}
		s += c.String()
	}
	return s
}
