package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"rampcrm/services"
)

func render(t *testing.T, v RentalRequestView) string {
	t.Helper()
	var buf bytes.Buffer
	if err := RentalRequestPage(v).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	return buf.String()
}

func TestRentalRequestPage_Page1(t *testing.T) {
	req := services.NewRentalRequest()
	req.FirstName = `<script>alert(1)</script>`
	req.InstallAddress = "9 Pine St"

	html := render(t, RentalRequestView{
		Page:    1,
		Pages:   2,
		Request: req,
		Errors:  map[string]string{"email": "Email is required"},
	})

	for _, want := range []string{
		`Step 1 of 2`,
		`name="firstName"`,
		`&lt;script&gt;`,
		`Email is required`,
		`<input type="hidden" name="installAddress" value="9 Pine St">`,
		`value="next"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page 1 missing %q", want)
		}
	}
	if strings.Contains(html, "<script>alert") {
		t.Error("first name was not escaped")
	}
	if strings.Contains(html, `value="back"`) {
		t.Error("page 1 should not offer Back")
	}
}

func TestRentalRequestPage_Page2(t *testing.T) {
	req := services.NewRentalRequest()
	req.FirstName = "Jane"
	req.MobilityAids = []string{"Walker/cane"}
	req.InstallationTimeframe = "Within a week"

	html := render(t, RentalRequestView{Page: 2, Pages: 2, Request: req})

	for _, want := range []string{
		`<input type="hidden" name="firstName" value="Jane">`,
		`value="Walker/cane" checked`,
		`<option value="Within a week" selected>`,
		`value="back"`,
		`value="submit"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page 2 missing %q", want)
		}
	}
}

func TestRentalRequestThanks(t *testing.T) {
	var buf bytes.Buffer
	if err := RentalRequestThanks("Jane").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "Thank you, Jane!") {
		t.Errorf("unexpected body: %s", buf.String())
	}
}

func TestRentalRequestPage_Page2ChoicesAndErrors(t *testing.T) {
	req := services.NewRentalRequest()
	req.KnowRampLength = "yes"
	req.KnowRentalDuration = "no"

	html := render(t, RentalRequestView{
		Page:    2,
		Pages:   2,
		Request: req,
		Errors:  map[string]string{"mobilityAids": "Unknown mobility aid"},
	})

	for _, want := range []string{
		`<input type="radio" id="knowRampLength-yes" name="knowRampLength" value="yes" checked>`,
		`<input type="radio" id="knowRampLength-no" name="knowRampLength" value="no">`,
		`<input type="radio" id="knowRentalDuration-no" name="knowRentalDuration" value="no" checked>`,
		`<option value="">Select...</option>`,
		`<div class="error" id="mobilityAids-error">Unknown mobility aid</div>`,
		`<title>Ramp Rental Request</title>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page 2 missing %q", want)
		}
	}
	if strings.Contains(html, `selected>`) {
		t.Error("no timeframe should be selected")
	}
}

func TestRentalRequestPage_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := RentalRequestPage(RentalRequestView{Page: 1, Pages: 2}).Render(ctx, &buf)
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
