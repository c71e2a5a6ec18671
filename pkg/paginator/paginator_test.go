package paginator

import "testing"

func TestAdjust(t *testing.T) {
	tests := []struct {
		name         string
		in           OffsetQuery
		defaultLimit int
		want         OffsetQuery
	}{
		{"zero values", OffsetQuery{}, 0, OffsetQuery{Skip: 0, Limit: DefaultLimit}},
		{"custom default", OffsetQuery{}, 100, OffsetQuery{Limit: 100}},
		{"negative skip", OffsetQuery{Skip: -5, Limit: 10}, 0, OffsetQuery{Skip: 0, Limit: 10}},
		{"capped", OffsetQuery{Skip: 20, Limit: 1000}, 0, OffsetQuery{Skip: 20, Limit: MaxLimit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.in
			q.Adjust(tt.defaultLimit)
			if q != tt.want {
				t.Errorf("Adjust() = %+v, want %+v", q, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	q := OffsetQuery{Skip: 10, Limit: 5}
	if p := q.Build(5); !p.More {
		t.Error("full page should report more")
	}
	if p := q.Build(3); p.More || p.Count != 3 || p.Skip != 10 {
		t.Errorf("Build(3) = %+v", p)
	}
}
