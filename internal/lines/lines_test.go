// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lines

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/pdf2docx/pkg/types"
)

func frag(text string, x, y float64) types.Fragment {
	return types.Fragment{Text: text, X: x, Y: y}
}

func TestReconstruct(t *testing.T) {
	tests := []struct {
		name  string
		frags []types.Fragment
		want  []string
	}{
		{
			name:  "empty stream",
			frags: nil,
			want:  nil,
		},
		{
			name:  "single fragment",
			frags: []types.Fragment{frag("alone", 10, 700)},
			want:  []string{"alone"},
		},
		{
			name: "same baseline sorted by x",
			frags: []types.Fragment{
				frag("World", 60, 700),
				frag("Hello", 10, 700),
				frag("again", 120, 700),
			},
			want: []string{"Hello World again"},
		},
		{
			name: "within threshold folds into one line",
			frags: []types.Fragment{
				frag("a", 10, 700),
				frag("b", 20, 704),
				frag("c", 30, 695.5),
			},
			want: []string{"a b c"},
		},
		{
			name: "two lines are reversed",
			frags: []types.Fragment{
				frag("f1", 10, 100),
				frag("f2", 40, 100),
				frag("f3", 10, 50),
			},
			want: []string{"f3", "f1 f2"},
		},
		{
			name: "drift compares against previous fragment",
			frags: []types.Fragment{
				frag("a", 10, 100),
				frag("b", 20, 104),
				frag("c", 30, 108),
				frag("d", 40, 112),
			},
			want: []string{"a b c d"},
		},
		{
			name: "gap exactly at threshold stays on the line",
			frags: []types.Fragment{
				frag("x", 10, 100),
				frag("y", 20, 95),
			},
			want: []string{"x y"},
		},
		{
			name: "three lines",
			frags: []types.Fragment{
				frag("top", 10, 700),
				frag("middle", 10, 680),
				frag("bottom", 10, 660),
			},
			want: []string{"bottom", "middle", "top"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Reconstruct(tt.frags))
		})
	}
}

func TestReconstruct_CustomThreshold(t *testing.T) {
	frags := []types.Fragment{
		frag("a", 10, 100),
		frag("b", 20, 108),
	}

	assert.Equal(t, []string{"b", "a"}, Reconstructor{}.Reconstruct(frags))
	assert.Equal(t, []string{"a b"}, Reconstructor{Threshold: 10}.Reconstruct(frags))
}

func TestReconstruct_DoesNotMutateInput(t *testing.T) {
	frags := []types.Fragment{
		frag("second", 60, 700),
		frag("first", 10, 700),
	}
	Reconstruct(frags)
	assert.Equal(t, "second", frags[0].Text)
	assert.Equal(t, "first", frags[1].Text)
}
