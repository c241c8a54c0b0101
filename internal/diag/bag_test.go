package diag

import (
	"testing"

	"lunar/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	r := BagReporter{Bag: b}
	r.Report(LintWarning, SevWarning, source.Span{Start: 1, End: 2}, "unused variable 'x'", nil)
	if b.HasErrors() {
		t.Fatalf("warnings must not count as errors")
	}
	r.Report(SynUnexpectedToken, SevError, source.Span{Start: 0, End: 1}, "unexpected symbol near 'x'", nil)
	if !b.HasErrors() {
		t.Fatalf("expected an error after reporting one")
	}
	if b.Add(Diagnostic{Severity: SevInfo}) {
		t.Fatalf("bag must refuse items past its limit")
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(Diagnostic{Severity: SevWarning, Code: LintWarning, Tag: "W211", Primary: source.Span{Start: 9, End: 10}, Message: "b"})
	b.Add(Diagnostic{Severity: SevError, Code: SynExpectToken, Primary: source.Span{Start: 3, End: 4}, Message: "a"})
	b.Add(Diagnostic{Severity: SevWarning, Code: LintWarning, Tag: "W211", Primary: source.Span{Start: 9, End: 10}, Message: "b"})
	b.Sort()
	b.Dedup()

	items := b.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 unique items, got %d", len(items))
	}
	if items[0].Primary.Start != 3 || items[1].DisplayCode() != "W211" {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func TestCodeIDs(t *testing.T) {
	tests := map[Code]string{
		LexBadNumber:       "LEX1005",
		SynUnexpectedToken: "SYN2001",
		LintWarning:        "LNT3002",
		InternalScope:      "INT9001",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if ParseSeverity("E") != SevError || ParseSeverity("W") != SevWarning || ParseSeverity("") != SevInfo {
		t.Fatalf("unexpected severity mapping")
	}
}

func TestNilBagReporterDiscards(t *testing.T) {
	BagReporter{}.Report(SynUnexpectedToken, SevError, source.Span{}, "dropped", nil)
}
