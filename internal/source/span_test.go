package source

import "testing"

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{Start: 1, End: 3}, Span{Start: 7, End: 9}, Span{Start: 1, End: 9}},
		{"nested", Span{Start: 1, End: 9}, Span{Start: 3, End: 4}, Span{Start: 1, End: 9}},
		{"other file", Span{File: 1, Start: 1, End: 3}, Span{File: 2, Start: 0, End: 9}, Span{File: 1, Start: 1, End: 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Fatalf("Cover = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanContainsIsEndInclusive(t *testing.T) {
	s := Span{Start: 4, End: 8}
	for off, want := range map[uint32]bool{3: false, 4: true, 8: true, 9: false} {
		if got := s.Contains(off); got != want {
			t.Errorf("Contains(%d) = %v, want %v", off, got, want)
		}
	}
}
