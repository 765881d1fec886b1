package normalize_test

import (
	"testing"

	"jobmate/radar-service/internal/normalize"
)

// ── ParseLocation — city/region extraction ─────────────────────────────────

func TestParseLocation_CityAndCode(t *testing.T) {
	loc := normalize.ParseLocation("Chicago, IL")
	if loc.City == nil || *loc.City != "Chicago" {
		t.Errorf("City = %v, want Chicago", strOrNil(loc.City))
	}
	if loc.Region == nil || *loc.Region != "IL" {
		t.Errorf("Region = %v, want IL", strOrNil(loc.Region))
	}
	if loc.Remote {
		t.Error("Remote should be false")
	}
}

func TestParseLocation_CountrySuffix(t *testing.T) {
	loc := normalize.ParseLocation("New York, NY, United States")
	if loc.City == nil || *loc.City != "New York" {
		t.Errorf("City = %v, want New York", strOrNil(loc.City))
	}
	if loc.Region == nil || *loc.Region != "NY" {
		t.Errorf("Region = %v, want NY", strOrNil(loc.Region))
	}
}

func TestParseLocation_StreetAddress(t *testing.T) {
	loc := normalize.ParseLocation("10777 Westheimer Road, Suite 400, Houston, Texas 77042")
	if loc.City == nil || *loc.City != "Houston" {
		t.Errorf("City = %v, want Houston", strOrNil(loc.City))
	}
	if loc.Region == nil || *loc.Region != "TX" {
		t.Errorf("Region = %v, want TX", strOrNil(loc.Region))
	}
}

func TestParseLocation_NoCommaWithZip(t *testing.T) {
	loc := normalize.ParseLocation("Boston MA 02115")
	if loc.City == nil || *loc.City != "Boston" {
		t.Errorf("City = %v, want Boston", strOrNil(loc.City))
	}
	if loc.Region == nil || *loc.Region != "MA" {
		t.Errorf("Region = %v, want MA", strOrNil(loc.Region))
	}
}

// ── ParseLocation — remote wins over everything ────────────────────────────

func TestParseLocation_Remote(t *testing.T) {
	for _, raw := range []string{"Remote", "REMOTE", "Remote - Chicago, IL"} {
		loc := normalize.ParseLocation(raw)
		if !loc.Remote {
			t.Errorf("ParseLocation(%q).Remote should be true", raw)
		}
		if loc.Region != nil {
			t.Errorf("ParseLocation(%q).Region = %v, want nil", raw, *loc.Region)
		}
	}
}

// ── ParseLocation — unparseable input keeps raw text ───────────────────────

func TestParseLocation_Unparseable(t *testing.T) {
	raw := "somewhere on planet earth"
	loc := normalize.ParseLocation(raw)
	if loc.City != nil || loc.Region != nil {
		t.Errorf("expected nil City and Region, got %v / %v",
			strOrNil(loc.City), strOrNil(loc.Region))
	}
	if loc.Raw != raw {
		t.Errorf("Raw = %q, want %q (unmodified)", loc.Raw, raw)
	}
}

func TestParseLocation_NameNeedsWordBoundary(t *testing.T) {
	// "Indianapolis" embeds "indiana" but is not a region mention by itself.
	loc := normalize.ParseLocation("Indianapolis")
	if loc.Region != nil {
		t.Errorf("Region = %v, want nil", *loc.Region)
	}

	loc = normalize.ParseLocation("Indianapolis, Indiana")
	if loc.Region == nil || *loc.Region != "IN" {
		t.Errorf("Region = %v, want IN", strOrNil(loc.Region))
	}
	if loc.City == nil || *loc.City != "Indianapolis" {
		t.Errorf("City = %v, want Indianapolis", strOrNil(loc.City))
	}
}

func TestParseLocation_Empty(t *testing.T) {
	loc := normalize.ParseLocation("")
	if loc.City != nil || loc.Region != nil || loc.Remote {
		t.Error("empty input should produce an all-nil location")
	}
}

func strOrNil(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}
