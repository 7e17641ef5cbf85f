package services

import (
	"errors"
	"testing"
)

var testRates = PricingRates{DeliveryFeePerMile: 2.5, InstallFeePerComponent: 15, RentalRatePerFoot: 3}

func TestJobEditor_RecalculatesOnEveryMutation(t *testing.T) {
	ed := NewJobEditor(JobDraft{}, testRates)

	ed.AddComponent(RampComponent{ComponentRS5, 2})
	if d := ed.Draft(); d.RentalRate != 30 || d.InstallFee != 30 || d.TotalCost != 60 {
		t.Errorf("after RS5x2: %+v", d)
	}

	ed.AddComponent(RampComponent{ComponentL45, 1})
	if d := ed.Draft(); d.InstallFee != 45 || d.TotalCost != 75 {
		t.Errorf("after L45x1: %+v", d)
	}

	ed.SetDistance(10)
	if d := ed.Draft(); d.DeliveryFee != 25 || d.TotalCost != 100 {
		t.Errorf("after distance 10: %+v", d)
	}

	ed.SetRates(PricingRates{DeliveryFeePerMile: 1, InstallFeePerComponent: 1, RentalRatePerFoot: 1})
	if d := ed.Draft(); d.TotalCost != 10+3+10 {
		t.Errorf("after rates change: TotalCost = %v, want 23", d.TotalCost)
	}
}

func TestJobEditor_SeedRebuildsAggregates(t *testing.T) {
	seed := JobDraft{
		Components:            []RampComponent{{ComponentRS5, 2}, {ComponentL45, 1}},
		TotalRampLength:       3,
		DistanceFromWarehouse: 10,
		TotalCost:             1,
	}
	ed := NewJobEditor(seed, testRates)
	d := ed.Draft()

	if d.TotalRampLength != 10 || d.TotalLandings != 1 {
		t.Errorf("aggregates = %d/%d, want 10/1", d.TotalRampLength, d.TotalLandings)
	}
	if d.TotalCost != 100 {
		t.Errorf("TotalCost = %v, want 100", d.TotalCost)
	}
}

func TestJobEditor_OverrideManualDeliveryFee(t *testing.T) {
	ed := NewJobEditor(JobDraft{DistanceFromWarehouse: 10}, testRates)
	ed.AddComponent(RampComponent{ComponentRS5, 2})
	ed.AddComponent(RampComponent{ComponentL45, 1})

	ed.SetOverride(true)
	before := ed.Draft()
	if before.TotalCost != 100 {
		t.Fatalf("TotalCost before edit = %v, want 100", before.TotalCost)
	}

	if !ed.SetFees(40, before.InstallFee, before.RentalRate) {
		t.Fatal("SetFees rejected while override is on")
	}
	after := ed.Draft()
	if after.DeliveryFee != 40 {
		t.Errorf("DeliveryFee = %v, want 40", after.DeliveryFee)
	}
	if after.InstallFee != 45 || after.RentalRate != 30 {
		t.Errorf("other fees changed: install %v rental %v", after.InstallFee, after.RentalRate)
	}
	if after.TotalCost != 115 {
		t.Errorf("TotalCost = %v, want 115", after.TotalCost)
	}
}

func TestJobEditor_OverrideFreezesFeesAgainstInputs(t *testing.T) {
	ed := NewJobEditor(JobDraft{DistanceFromWarehouse: 10}, testRates)
	ed.SetOverride(true)
	ed.SetFees(1, 2, 3)

	ed.AddComponent(RampComponent{ComponentRS8, 1})
	ed.SetDistance(100)

	d := ed.Draft()
	if d.DeliveryFee != 1 || d.InstallFee != 2 || d.RentalRate != 3 || d.TotalCost != 6 {
		t.Errorf("override fees not frozen: %+v", d)
	}
	if d.TotalRampLength != 8 {
		t.Errorf("aggregates must still track components, got length %d", d.TotalRampLength)
	}
}

func TestJobEditor_OverrideOffResyncs(t *testing.T) {
	ed := NewJobEditor(JobDraft{DistanceFromWarehouse: 10}, testRates)
	ed.AddComponent(RampComponent{ComponentRS5, 2})
	ed.AddComponent(RampComponent{ComponentL45, 1})

	ed.SetOverride(true)
	ed.SetFees(999, 999, 999)
	ed.SetOverride(false)

	d := ed.Draft()
	if d.DeliveryFee != 25 || d.InstallFee != 45 || d.RentalRate != 30 || d.TotalCost != 100 {
		t.Errorf("fees not recomputed after override off: %+v", d)
	}
}

func TestJobEditor_SetFeesIgnoredWithoutOverride(t *testing.T) {
	ed := NewJobEditor(JobDraft{DistanceFromWarehouse: 10}, testRates)
	if ed.SetFees(1, 1, 1) {
		t.Error("SetFees accepted while override is off")
	}
	if d := ed.Draft(); d.DeliveryFee != 25 {
		t.Errorf("DeliveryFee = %v, want 25", d.DeliveryFee)
	}
}

func TestJobEditor_RemoveOutOfRange(t *testing.T) {
	ed := NewJobEditor(JobDraft{}, testRates)
	ed.AddComponent(RampComponent{ComponentRS4, 1})

	if _, err := ed.RemoveComponent(3); !errors.Is(err, ErrComponentIndex) {
		t.Errorf("RemoveComponent(3) err = %v, want ErrComponentIndex", err)
	}
	if d := ed.Draft(); len(d.Components) != 1 || d.RentalRate != 12 {
		t.Errorf("draft changed by failed removal: %+v", d)
	}
}

func TestJobEditor_DraftIsCopy(t *testing.T) {
	ed := NewJobEditor(JobDraft{}, testRates)
	ed.AddComponent(RampComponent{ComponentRS4, 1})

	d := ed.Draft()
	d.Components[0].Quantity = 50

	if got := ed.Draft().Components[0].Quantity; got != 1 {
		t.Errorf("editor state mutated through Draft(): quantity %d", got)
	}
}
