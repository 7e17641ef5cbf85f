package services

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestComponentContributions(t *testing.T) {
	tests := []struct {
		name         string
		comp         RampComponent
		wantLength   int
		wantLandings int
	}{
		{"RS4 single", RampComponent{ComponentRS4, 1}, 4, 0},
		{"RS5 pair", RampComponent{ComponentRS5, 2}, 10, 0},
		{"RS8 triple", RampComponent{ComponentRS8, 3}, 24, 0},
		{"L45 landing", RampComponent{ComponentL45, 1}, 0, 1},
		{"L85 landings", RampComponent{ComponentL85, 4}, 0, 4},
		{"L55 landings", RampComponent{ComponentL55, 2}, 0, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.comp.Length(); got != tt.wantLength {
				t.Errorf("Length() = %d, want %d", got, tt.wantLength)
			}
			if got := tt.comp.Landings(); got != tt.wantLandings {
				t.Errorf("Landings() = %d, want %d", got, tt.wantLandings)
			}
		})
	}
}

func TestRecalculate_ComputedPricing(t *testing.T) {
	var d JobDraft
	AddComponent(&d, RampComponent{ComponentRS5, 2})
	AddComponent(&d, RampComponent{ComponentL45, 1})
	d.DistanceFromWarehouse = 10

	rates := PricingRates{DeliveryFeePerMile: 2.5, InstallFeePerComponent: 15, RentalRatePerFoot: 3}
	got := Recalculate(d, rates)

	if got.TotalRampLength != 10 {
		t.Errorf("TotalRampLength = %d, want 10", got.TotalRampLength)
	}
	if got.TotalLandings != 1 {
		t.Errorf("TotalLandings = %d, want 1", got.TotalLandings)
	}
	if got.DeliveryFee != 25 {
		t.Errorf("DeliveryFee = %v, want 25", got.DeliveryFee)
	}
	if got.InstallFee != 45 {
		t.Errorf("InstallFee = %v, want 45", got.InstallFee)
	}
	if got.RentalRate != 30 {
		t.Errorf("RentalRate = %v, want 30", got.RentalRate)
	}
	if got.TotalCost != 100 {
		t.Errorf("TotalCost = %v, want 100", got.TotalCost)
	}
}

func TestRecalculate_EmptyDraft(t *testing.T) {
	rates := PricingRates{DeliveryFeePerMile: 2.5, InstallFeePerComponent: 15, RentalRatePerFoot: 3}
	got := Recalculate(JobDraft{}, rates)

	if got.TotalRampLength != 0 || got.TotalLandings != 0 {
		t.Errorf("aggregates = %d/%d, want 0/0", got.TotalRampLength, got.TotalLandings)
	}
	if got.DeliveryFee != 0 || got.InstallFee != 0 || got.RentalRate != 0 || got.TotalCost != 0 {
		t.Errorf("fees = %+v, want all zero", got)
	}
}

func TestRecalculate_DistanceWithoutComponents(t *testing.T) {
	d := JobDraft{DistanceFromWarehouse: 12}
	got := Recalculate(d, PricingRates{DeliveryFeePerMile: 2, InstallFeePerComponent: 15, RentalRatePerFoot: 3})

	if got.DeliveryFee != 24 {
		t.Errorf("DeliveryFee = %v, want 24", got.DeliveryFee)
	}
	if got.RentalRate != 0 {
		t.Errorf("RentalRate = %v, want 0", got.RentalRate)
	}
	if got.TotalCost != 24 {
		t.Errorf("TotalCost = %v, want 24", got.TotalCost)
	}
}

func TestRecalculate_OverrideKeepsFees(t *testing.T) {
	var d JobDraft
	AddComponent(&d, RampComponent{ComponentRS6, 2})
	d.DistanceFromWarehouse = 40
	SetOverride(&d, true)
	d.DeliveryFee = 50
	d.InstallFee = 20
	d.RentalRate = 75

	got := Recalculate(d, PricingRates{DeliveryFeePerMile: 9, InstallFeePerComponent: 9, RentalRatePerFoot: 9})

	if got.DeliveryFee != 50 || got.InstallFee != 20 || got.RentalRate != 75 {
		t.Errorf("override fees changed: %+v", got)
	}
	if got.TotalCost != 145 {
		t.Errorf("TotalCost = %v, want 145", got.TotalCost)
	}
}

func TestSetOverride_DoesNotClearFees(t *testing.T) {
	d := JobDraft{DeliveryFee: 10, InstallFee: 20, RentalRate: 30, TotalCost: 60}
	SetOverride(&d, true)
	if !d.OverridePricing {
		t.Fatal("expected override enabled")
	}
	if d.DeliveryFee != 10 || d.InstallFee != 20 || d.RentalRate != 30 || d.TotalCost != 60 {
		t.Errorf("fees changed by SetOverride: %+v", d)
	}
}

func TestRemoveComponent_OutOfRange(t *testing.T) {
	var d JobDraft
	AddComponent(&d, RampComponent{ComponentRS4, 1})

	for _, idx := range []int{-1, 1, 5} {
		_, err := RemoveComponent(&d, idx)
		if !errors.Is(err, ErrComponentIndex) {
			t.Errorf("RemoveComponent(%d) err = %v, want ErrComponentIndex", idx, err)
		}
	}
	if len(d.Components) != 1 || d.TotalRampLength != 4 {
		t.Errorf("draft modified by failed removal: %+v", d)
	}
}

func TestRemoveComponent_MiddleKeepsOrder(t *testing.T) {
	var d JobDraft
	AddComponent(&d, RampComponent{ComponentRS4, 1})
	AddComponent(&d, RampComponent{ComponentL55, 1})
	AddComponent(&d, RampComponent{ComponentRS8, 1})

	removed, err := RemoveComponent(&d, 1)
	if err != nil {
		t.Fatalf("RemoveComponent() error = %v", err)
	}
	if removed.Type != ComponentL55 {
		t.Errorf("removed %v, want L55", removed.Type)
	}
	if len(d.Components) != 2 || d.Components[0].Type != ComponentRS4 || d.Components[1].Type != ComponentRS8 {
		t.Errorf("unexpected components after removal: %v", d.Components)
	}
	if d.TotalLandings != 0 || d.TotalRampLength != 12 {
		t.Errorf("aggregates = %d/%d, want 12/0", d.TotalRampLength, d.TotalLandings)
	}
}

func TestRemoveComponent_InverseOfAdd(t *testing.T) {
	var d JobDraft
	AddComponent(&d, RampComponent{ComponentRS7, 2})
	AddComponent(&d, RampComponent{ComponentL85, 1})
	beforeLength, beforeLandings := d.TotalRampLength, d.TotalLandings

	for _, c := range []RampComponent{{ComponentRS5, 3}, {ComponentL45, 2}} {
		AddComponent(&d, c)
		if _, err := RemoveComponent(&d, len(d.Components)-1); err != nil {
			t.Fatalf("RemoveComponent() error = %v", err)
		}
		if d.TotalRampLength != beforeLength || d.TotalLandings != beforeLandings {
			t.Errorf("after add/remove %v: aggregates = %d/%d, want %d/%d",
				c, d.TotalRampLength, d.TotalLandings, beforeLength, beforeLandings)
		}
	}
}

func TestAggregatesMatchComponents_RandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		var d JobDraft
		for step := 0; step < 40; step++ {
			if len(d.Components) > 0 && rng.Intn(3) == 0 {
				if _, err := RemoveComponent(&d, rng.Intn(len(d.Components))); err != nil {
					t.Fatalf("RemoveComponent() error = %v", err)
				}
			} else {
				typ := ComponentTypeOptions[rng.Intn(len(ComponentTypeOptions))]
				AddComponent(&d, RampComponent{Type: typ, Quantity: rng.Intn(5) + 1})
			}

			var wantLength, wantLandings int
			for _, c := range d.Components {
				wantLength += c.Length()
				wantLandings += c.Landings()
			}
			if d.TotalRampLength != wantLength || d.TotalLandings != wantLandings {
				t.Fatalf("run %d step %d: aggregates = %d/%d, want %d/%d",
					run, step, d.TotalRampLength, d.TotalLandings, wantLength, wantLandings)
			}
		}
	}
}

func TestRebuildAggregates(t *testing.T) {
	d := JobDraft{
		Components:      []RampComponent{{ComponentRS6, 2}, {ComponentL45, 3}},
		TotalRampLength: 999,
		TotalLandings:   -4,
	}
	RebuildAggregates(&d)
	if d.TotalRampLength != 12 || d.TotalLandings != 3 {
		t.Errorf("aggregates = %d/%d, want 12/3", d.TotalRampLength, d.TotalLandings)
	}
}

func TestParseComponent(t *testing.T) {
	tests := []struct {
		name    string
		rawType string
		qty     int
		want    RampComponent
		wantErr bool
	}{
		{"valid upper", "RS5", 2, RampComponent{ComponentRS5, 2}, false},
		{"valid lower with spaces", " l85 ", 1, RampComponent{ComponentL85, 1}, false},
		{"unknown type", "RS9", 1, RampComponent{}, true},
		{"zero quantity", "RS4", 0, RampComponent{}, true},
		{"negative quantity", "L45", -2, RampComponent{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseComponent(tt.rawType, tt.qty)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseComponent() err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseComponent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTotalComponentCount(t *testing.T) {
	got := TotalComponentCount([]RampComponent{{ComponentRS4, 2}, {ComponentL55, 1}, {ComponentRS8, 4}})
	if got != 7 {
		t.Errorf("TotalComponentCount() = %d, want 7", got)
	}
	if got := TotalComponentCount(nil); got != 0 {
		t.Errorf("TotalComponentCount(nil) = %d, want 0", got)
	}
}

func TestRecalculate_FractionalRates(t *testing.T) {
	var d JobDraft
	AddComponent(&d, RampComponent{ComponentRS4, 3})
	d.DistanceFromWarehouse = 17.42

	got := Recalculate(d, PricingRates{DeliveryFeePerMile: 1.75, InstallFeePerComponent: 12.5, RentalRatePerFoot: 2.2})
	want := 17.42*1.75 + 3*12.5 + 12*2.2
	if math.Abs(got.TotalCost-want) > 1e-9 {
		t.Errorf("TotalCost = %v, want %v", got.TotalCost, want)
	}
}
