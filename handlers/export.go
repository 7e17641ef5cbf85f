package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"rampcrm/services"
)

// buildJobsExportData loads jobs (optionally for one customer) with their
// customer names.
func buildJobsExportData(app *pocketbase.PocketBase, customerID string, now time.Time) (services.JobsExportData, error) {
	filter := "id != ''"
	params := map[string]any{}
	if customerID != "" {
		filter = "customer = {:customerId}"
		params["customerId"] = customerID
	}

	jobs, err := app.FindRecordsByFilter("jobs", filter, "-created", 0, 0, params)
	if err != nil {
		return services.JobsExportData{}, fmt.Errorf("query jobs: %w", err)
	}
	if errs := app.ExpandRecords(jobs, []string{"customer"}, nil); len(errs) > 0 {
		log.Printf("export: expand customers: %v", errs)
	}

	data := services.JobsExportData{
		Title:       "Ramp Rental Jobs",
		CreatedDate: now.Format("02 Jan 2006"),
	}
	for _, j := range jobs {
		resp, err := jobToResponse(j)
		if err != nil {
			log.Printf("export: %v", err)
			continue
		}
		data.Rows = append(data.Rows, services.JobExportRow{
			CustomerName:   resp.CustomerName,
			InstallAddress: resp.InstallAddress,
			Status:         resp.Status,
			ScheduledDate:  resp.ScheduledDate,
			Components:     services.SummarizeComponents(resp.Components),
			RampLength:     resp.TotalRampLength,
			Landings:       resp.TotalLandings,
			Distance:       resp.DistanceFromWarehouse,
			DeliveryFee:    resp.DeliveryFee,
			InstallFee:     resp.InstallFee,
			RentalRate:     resp.RentalRate,
			TotalCost:      resp.TotalCost,
		})
		data.TotalCost += resp.TotalCost
	}
	return data, nil
}

// buildQuoteData loads one job and its customer for the quote PDF.
func buildQuoteData(app *pocketbase.PocketBase, jobID string, now time.Time) (services.QuoteData, error) {
	job, err := app.FindRecordById("jobs", jobID)
	if err != nil {
		return services.QuoteData{}, fmt.Errorf("job not found: %w", err)
	}
	draft, err := services.DraftFromRecord(job)
	if err != nil {
		return services.QuoteData{}, err
	}

	q := services.QuoteData{
		Reference:      job.Id,
		CreatedDate:    now.Format("02 Jan 2006"),
		InstallAddress: job.GetString("install_address"),
		ScheduledDate:  job.GetString("scheduled_date"),
		Lines:          services.NewQuoteLines(draft.Components),
		Draft:          draft,
	}
	if cust, err := app.FindRecordById("customers", job.GetString("customer")); err == nil {
		q.CustomerName = strings.TrimSpace(cust.GetString("first_name") + " " + cust.GetString("last_name"))
		q.CustomerEmail = cust.GetString("email")
		q.CustomerPhone = cust.GetString("phone")
	}
	return q, nil
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, `"`, "")
	return s
}

// HandleJobsExportExcel downloads the jobs list as a workbook.
func HandleJobsExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		now := time.Now()
		data, err := buildJobsExportData(app, e.Request.URL.Query().Get("customerId"), now)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to load jobs")
		}

		xlsxBytes, err := services.GenerateJobsExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Jobs_%s.xlsx", now.Format("2006-01-02"))

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleJobQuotePDF downloads a quote for one job.
func HandleJobQuotePDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		data, err := buildQuoteData(app, e.Request.PathValue("id"), time.Now())
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return jsonError(e, http.StatusNotFound, "Job not found")
		}

		pdfBytes, err := services.GenerateJobQuotePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return jsonError(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Quote_%s_%s.pdf", sanitizeFilename(data.CustomerName), data.Reference)

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
