package normalize_test

import (
	"testing"

	"jobmate/radar-service/internal/normalize"
)

// ── ExtractPay — structured patterns in priority order ─────────────────────

func TestExtractPay_Range(t *testing.T) {
	got, ok := normalize.ExtractPay("Property Manager", "Dallas, TX",
		"Compensation: $120,000 - $150,000 plus bonus")
	if !ok {
		t.Fatal("expected a pay signal")
	}
	if got != "$120,000 - $150,000" {
		t.Errorf("got %q, want %q", got, "$120,000 - $150,000")
	}
}

func TestExtractPay_SingleWithPeriod(t *testing.T) {
	got, ok := normalize.ExtractPay("Leasing Agent", "", "Earn $85,000 per year with benefits")
	if !ok || got != "$85,000 per year" {
		t.Errorf("got (%q, %v), want ($85,000 per year, true)", got, ok)
	}
}

func TestExtractPay_Hourly(t *testing.T) {
	got, ok := normalize.ExtractPay("Concierge", "", "Starting at $22.50 per hour")
	if !ok || got != "$22.50 per hour" {
		t.Errorf("got (%q, %v), want ($22.50 per hour, true)", got, ok)
	}
}

func TestExtractPay_RangeWinsOverHourly(t *testing.T) {
	got, ok := normalize.ExtractPay("", "", "$30 - $35 or $32 per hour DOE")
	if !ok || got != "$30 - $35" {
		t.Errorf("got (%q, %v), want ($30 - $35, true)", got, ok)
	}
}

// ── ExtractPay — generic marker and negative cases ─────────────────────────

func TestExtractPay_GenericMarker(t *testing.T) {
	got, ok := normalize.ExtractPay("", "", "competitive salary, $ discussed at interview")
	if !ok || got != normalize.PayMentioned {
		t.Errorf("got (%q, %v), want (%q, true)", got, ok, normalize.PayMentioned)
	}
}

func TestExtractPay_NoSignal(t *testing.T) {
	got, ok := normalize.ExtractPay("Maintenance Technician", "Rockville, MD",
		"Great team, growth opportunities")
	if ok || got != "" {
		t.Errorf("got (%q, %v), want (\"\", false)", got, ok)
	}
}

func TestExtractPay_MarkupStripped(t *testing.T) {
	got, ok := normalize.ExtractPay("", "", "<p><b>$90,000</b> - <b>$110,000</b></p>")
	if !ok || got != "$90,000 - $110,000" {
		t.Errorf("got (%q, %v), want ($90,000 - $110,000, true)", got, ok)
	}
}
