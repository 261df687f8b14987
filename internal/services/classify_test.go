package services

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		icon string
		temp float64
		want Category
	}{
		{"01d", 25, CategorySunny},
		{"01n", 5, CategoryNight},
		{"01d", -3, CategorySunny},
		{"10d", 5, CategoryRainy},
		{"09n", 20, CategoryRainy},
		{"13d", 2, CategorySnowy},
		{"13n", 15, CategorySnowy},
		{"04n", 5, CategoryCold},
		{"02d", 9.99, CategoryCold},
		{"03d", 20, CategoryCloudy},
		{"04d", 10, CategoryCloudy},
		{"50d", 5, CategoryCold},
		{"50d", 18, CategoryDefault},
		{"11d", 30, CategoryDefault},
		{"99x", 20, CategoryDefault},
	}

	for _, tt := range tests {
		if got := Classify(tt.icon, tt.temp); got != tt.want {
			t.Errorf("Classify(%q, %v) = %s, want %s", tt.icon, tt.temp, got, tt.want)
		}
	}
}

func TestClassifyClearSkyFollowsDayNight(t *testing.T) {
	for _, temp := range []float64{-20, 0, 9, 10, 35} {
		if got := Classify("01n", temp); got != CategoryNight {
			t.Errorf("Classify(01n, %v) = %s, want night", temp, got)
		}
		if got := Classify("01d", temp); got != CategorySunny {
			t.Errorf("Classify(01d, %v) = %s, want sunny", temp, got)
		}
	}
}

func TestClassifyColdBeatsCloudy(t *testing.T) {
	for _, icon := range []string{"02d", "02n", "03d", "03n", "04d", "04n", "11d", "50n"} {
		for _, temp := range []float64{-15, 0, 9.5} {
			if got := Classify(icon, temp); got != CategoryCold {
				t.Errorf("Classify(%q, %v) = %s, want cold", icon, temp, got)
			}
		}
	}
}

func TestIsNight(t *testing.T) {
	if !IsNight("10n") {
		t.Error("expected 10n to be night")
	}
	if IsNight("10d") {
		t.Error("expected 10d to be day")
	}
	if IsNight("") {
		t.Error("expected empty code to be day")
	}
}
