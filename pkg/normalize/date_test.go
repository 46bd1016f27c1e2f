package normalize

import (
	"testing"

	"github.com/harrisonrobin/portfolio/pkg/model"
)

func TestDate(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"empty", "", ""},
		{"blank", "   ", ""},
		{"garbage", "amanhã", ""},
		{"gviz token", "Date(2024,4,20)", "2024-05-20T00:00:00.000Z"},
		{"gviz token january", "Date(2024,0,1)", "2024-01-01T00:00:00.000Z"},
		{"gviz token with time", "Date(2024,11,31,18,30,0)", "2024-12-31T00:00:00.000Z"},
		{"gviz token overflow", "Date(2024,1,30)", "2024-03-01T00:00:00.000Z"},
		{"gviz token short", "Date(2024,4)", ""},
		{"iso date", "2024-05-01", "2024-05-01T00:00:00.000Z"},
		{"iso instant", "2024-05-01T10:00:00-03:00", "2024-05-01T13:00:00.000Z"},
		{"canonical round trip", "2024-05-01T00:00:00.000Z", "2024-05-01T00:00:00.000Z"},
		{"pt-BR date", "20/05/2024", "2024-05-20T00:00:00.000Z"},
		{"pt-BR short", "5/6/2024", "2024-06-05T00:00:00.000Z"},
		{"year first slashed", "2024/05/01", "2024-05-01T00:00:00.000Z"},
		{"gviz token five-digit year", "Date(20000,0,1)", ""},
		{"gviz token year overflow", "Date(9999,11,32)", ""},
		{"number", 45000.0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Date(tt.in); got != tt.want {
				t.Errorf("Date(%v): expected %q, got %q", tt.in, tt.want, got)
			}
		})
	}
}

func TestDateOutputParsesBack(t *testing.T) {
	inputs := []any{"Date(9999,11,31)", "Date(20000,0,1)", "Date(2024,4,20)", "2024/05/01", "31/12/2024"}
	for _, in := range inputs {
		got := Date(in)
		if got == "" {
			continue
		}
		if _, ok := model.ParseDate(got); !ok {
			t.Errorf("Date(%v) = %q, which model.ParseDate rejects", in, got)
		}
	}
}

func TestDateTokenMonthIsZeroBased(t *testing.T) {
	for month := 0; month < 12; month++ {
		got := Date(formatToken(2023, month, 15))
		want := formatISO(2023, month+1, 15)
		if got != want {
			t.Errorf("month %d: expected %s, got %s", month, want, got)
		}
	}
}
