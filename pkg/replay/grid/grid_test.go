package grid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		end   float64
		step  float64
		want  []float64
	}{
		{
			name: "full race step",
			end:  10, step: 2.0,
			want: []float64{0, 2, 4, 6, 8},
		},
		{
			name: "lap step",
			end:  2, step: 0.5,
			want: []float64{0, 0.5, 1, 1.5},
		},
		{
			name:  "non zero start",
			start: 100, end: 106, step: 2.0,
			want: []float64{100, 102, 104},
		},
		{
			name: "end excluded",
			end:  4, step: 2.0,
			want: []float64{0, 2},
		},
		{
			name: "empty interval",
			end:  0, step: 2.0,
			want: nil,
		},
		{
			name: "invalid step",
			end:  10, step: 0,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.start, tt.end, tt.step)
			if diff := cmp.Diff(tt.want, got.Times()); diff != "" {
				t.Errorf("New() times mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, len(tt.want), got.Len())
		})
	}
}

func TestTimeGridIndexOf(t *testing.T) {
	g := New(0, 10, 2.0)
	tests := []struct {
		name string
		t    float64
		want int
	}{
		{name: "exact", t: 4, want: 2},
		{name: "rounds down", t: 4.9, want: 2},
		{name: "rounds up", t: 5.1, want: 3},
		{name: "before start clamps", t: -3, want: 0},
		{name: "after end clamps", t: 100, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.IndexOf(tt.t))
		})
	}
}

func TestTimeGridIndexOfEmpty(t *testing.T) {
	g := New(0, 0, 2.0)
	assert.Equal(t, 0, g.IndexOf(5))
}
