package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectGeometry(t *testing.T) {
	r := Rect{X1: 10, Y1: 20, X2: 49, Y2: 35}

	assert.Equal(t, 39, r.Width())
	assert.Equal(t, 15, r.Height())
	assert.Equal(t, Point{X: 29, Y: 27}, r.Center())
	assert.Equal(t, "(10,20)-(49,35)", r.String())

	assert.True(t, r.Contains(Point{X: 10, Y: 20}))
	assert.True(t, r.Contains(Point{X: 49, Y: 35}))
	assert.False(t, r.Contains(Point{X: 50, Y: 35}))
}

func TestPointRect(t *testing.T) {
	r := PointRect(Point{X: 3, Y: 4})
	assert.Equal(t, Rect{X1: 3, Y1: 4, X2: 3, Y2: 4}, r)
	assert.Equal(t, 0, r.Width())
	assert.Equal(t, Point{X: 3, Y: 4}, r.Center())
}

func TestRectCanon(t *testing.T) {
	r := Rect{X1: 9, Y1: 8, X2: 1, Y2: 2}.Canon()
	assert.Equal(t, Rect{X1: 1, Y1: 2, X2: 9, Y2: 8}, r)
}

func TestRectWithin(t *testing.T) {
	outer := Rect{X1: 50, Y1: 50, X2: 89, Y2: 89}

	tests := []struct {
		name     string
		r        Rect
		slack    int
		expected bool
	}{
		{"identical", outer, 0, true},
		{"strictly inside", Rect{60, 60, 70, 70}, 0, true},
		{"poking out without slack", Rect{45, 60, 70, 70}, 0, false},
		{"poking out within slack", Rect{45, 60, 70, 70}, 5, true},
		{"poking out beyond slack", Rect{44, 60, 70, 70}, 5, false},
		{"larger than outer", Rect{0, 0, 199, 199}, 20, false},
		{"disjoint", Rect{100, 100, 120, 120}, 8, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.r.Within(outer, tt.slack))
		})
	}
}
