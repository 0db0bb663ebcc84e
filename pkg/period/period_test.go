package period

import (
	"testing"
	"time"
)

func TestParse_Valid(t *testing.T) {
	got, err := Parse("032025")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.March {
		t.Fatalf("got %v, want 03/2025", got)
	}
}

func TestParse_InvalidLength(t *testing.T) {
	_, err := Parse("32025") // 5 chars
	if err == nil {
		t.Fatal("expected error for invalid length, got nil")
	}
}

func TestParse_InvalidMonth(t *testing.T) {
	_, err := Parse("132025") // 13th month
	if err == nil {
		t.Fatal("expected error for invalid month, got nil")
	}
}

func TestParse_NonDigit(t *testing.T) {
	_, err := Parse("0a2025")
	if err == nil {
		t.Fatal("expected error for non-digit input, got nil")
	}
}

func TestOf_TruncatesToMonth(t *testing.T) {
	a := Of(time.Date(2024, 1, 5, 13, 37, 0, 0, time.UTC))
	b := Of(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC))
	if a != b {
		t.Fatalf("same month should map to same period: %v vs %v", a, b)
	}
	if a.String() != "01/2024" {
		t.Fatalf("got %q, want %q", a.String(), "01/2024")
	}
}

func TestSub_MonthBoundaries(t *testing.T) {
	jan := Of(time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC))
	feb := Of(time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC))
	// 9 jours d'écart mais une frontière de mois franchie
	if d := feb.Sub(jan); d != 1 {
		t.Fatalf("got offset %d, want 1", d)
	}

	dec := Of(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC))
	if d := feb.Sub(dec); d != 2 {
		t.Fatalf("year boundary: got offset %d, want 2", d)
	}
}

func TestRangeInclusive(t *testing.T) {
	start, _ := Parse("032025")
	end, _ := Parse("062025")
	got := RangeInclusive(start, end)
	if len(got) != 4 {
		t.Fatalf("got %d months, want 4", len(got))
	}
	// spot-check
	if got[0].Month() != time.March || got[3].Month() != time.June {
		t.Fatalf("unexpected months: %v", got)
	}
}

func TestRangeInclusive_Empty(t *testing.T) {
	start, _ := Parse("062025")
	end, _ := Parse("032025")
	if got := RangeInclusive(start, end); got != nil {
		t.Fatalf("expected nil for end < start, got %v", got)
	}
}

func TestString(t *testing.T) {
	p, _ := Parse("112025")
	if fm := p.String(); fm != "11/2025" {
		t.Fatalf("got %q, want %q", fm, "11/2025")
	}
}

func TestTime_FirstOfMonth(t *testing.T) {
	p, _ := Parse("022024")
	want := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	if !p.Time().Equal(want) {
		t.Fatalf("got %v, want %v", p.Time(), want)
	}
}
