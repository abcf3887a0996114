package analytics

import (
	"testing"
)

func TestConversionRate(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		previous int
		expected float64
	}{
		{name: "zero denominator", current: 5, previous: 0, expected: 0},
		{name: "zero over zero", current: 0, previous: 0, expected: 0},
		{name: "negative denominator guarded", current: 5, previous: -1, expected: 0},
		{name: "simple quarter", current: 50, previous: 200, expected: 25},
		{name: "rounds to one decimal", current: 1, previous: 3, expected: 33.3},
		{name: "rounds up", current: 2, previous: 3, expected: 66.7},
		{name: "full conversion", current: 10, previous: 10, expected: 100},
		{name: "above hundred not clamped", current: 25, previous: 10, expected: 250},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConversionRate(tt.current, tt.previous)
			if got != tt.expected {
				t.Errorf("ConversionRate(%d, %d) = %v, want %v", tt.current, tt.previous, got, tt.expected)
			}
		})
	}
}

func TestComputeFunnelTypical(t *testing.T) {
	result := ComputeFunnel(FunnelCounts{WebsiteVisits: 200, StoreVisits: 50, Signups: 10})

	if len(result.Stages) != 3 {
		t.Fatalf("expected 3 stages, got %d", len(result.Stages))
	}

	website := result.Stages[0]
	if website.Name != "Website Visits" || website.Count != 200 || website.Percentage != 100 {
		t.Errorf("unexpected website stage: %+v", website)
	}
	if website.ConversionFromPrevious != nil {
		t.Errorf("top stage must not carry a conversion rate, got %v", *website.ConversionFromPrevious)
	}

	storeStage := result.Stages[1]
	if storeStage.Count != 50 || storeStage.Percentage != 25 {
		t.Errorf("unexpected store stage: %+v", storeStage)
	}
	if storeStage.ConversionFromPrevious == nil || *storeStage.ConversionFromPrevious != 25 {
		t.Errorf("expected store conversion 25, got %v", storeStage.ConversionFromPrevious)
	}

	// The signup stage carries two denominators: percentage is end-to-end
	// over website visits, conversionFromPrevious is over store visits.
	signup := result.Stages[2]
	if signup.Count != 10 || signup.Percentage != 5 {
		t.Errorf("unexpected signup stage: %+v", signup)
	}
	if signup.ConversionFromPrevious == nil || *signup.ConversionFromPrevious != 20 {
		t.Errorf("expected signup conversion from store 20, got %v", signup.ConversionFromPrevious)
	}

	if result.Overall.OverallConversionRate != 5 {
		t.Errorf("expected overall conversion 5, got %v", result.Overall.OverallConversionRate)
	}
	if result.Overall.TotalWebsiteVisits != 200 || result.Overall.TotalStoreVisits != 50 || result.Overall.TotalSignups != 10 {
		t.Errorf("unexpected overall totals: %+v", result.Overall)
	}
}

func TestComputeFunnelAllZero(t *testing.T) {
	result := ComputeFunnel(FunnelCounts{})

	for i, stage := range result.Stages {
		if stage.Count != 0 {
			t.Errorf("stage %d count = %d, want 0", i, stage.Count)
		}
		if stage.ConversionFromPrevious != nil && *stage.ConversionFromPrevious != 0 {
			t.Errorf("stage %d conversion = %v, want 0", i, *stage.ConversionFromPrevious)
		}
	}
	if result.Stages[0].Percentage != 100 {
		t.Errorf("top stage percentage = %v, want 100", result.Stages[0].Percentage)
	}
	if result.Overall.OverallConversionRate != 0 {
		t.Errorf("overall conversion = %v, want 0", result.Overall.OverallConversionRate)
	}
}

func TestComputeFunnelOnlyWebsiteVisits(t *testing.T) {
	result := ComputeFunnel(FunnelCounts{WebsiteVisits: 2})

	if result.Stages[0].Count != 2 || result.Stages[0].Percentage != 100 {
		t.Errorf("unexpected website stage: %+v", result.Stages[0])
	}
	if result.Stages[1].Percentage != 0 || *result.Stages[1].ConversionFromPrevious != 0 {
		t.Errorf("unexpected store stage: %+v", result.Stages[1])
	}
	if result.Stages[2].Percentage != 0 || *result.Stages[2].ConversionFromPrevious != 0 {
		t.Errorf("unexpected signup stage: %+v", result.Stages[2])
	}
	if result.Overall.OverallConversionRate != 0 {
		t.Errorf("overall conversion = %v, want 0", result.Overall.OverallConversionRate)
	}
}

func TestComputeFunnelLaterStageLarger(t *testing.T) {
	// Accumulated visit counts can legitimately push a later stage above the
	// one before it; rates above 100 pass through unclamped.
	result := ComputeFunnel(FunnelCounts{WebsiteVisits: 10, StoreVisits: 25, Signups: 5})

	if *result.Stages[1].ConversionFromPrevious != 250 {
		t.Errorf("store conversion = %v, want 250", *result.Stages[1].ConversionFromPrevious)
	}
	if *result.Stages[2].ConversionFromPrevious != 20 {
		t.Errorf("signup conversion from store = %v, want 20", *result.Stages[2].ConversionFromPrevious)
	}
	if result.Stages[2].Percentage != 50 {
		t.Errorf("signup end-to-end percentage = %v, want 50", result.Stages[2].Percentage)
	}
}
