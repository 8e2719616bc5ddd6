package domain

import "time"

type Point struct {
	At    time.Time
	Value float64
}

type Size struct {
	Width  int
	Height int
}

// Container is the surface a chart is bound to.
type Container struct {
	ID   string
	Size Size
}

type Option struct {
	Title      string
	SeriesName string
	XAxisName  string
	YAxisName  string
	Smooth     bool
	ShowSymbol bool
	LineWidth  float32
	Points     []Point
}

func DefaultOption() Option {
	return Option{
		Title:      "Heart Rate",
		SeriesName: "Heart Rate",
		XAxisName:  "Time",
		YAxisName:  "BPM",
		Smooth:     true,
		LineWidth:  2,
	}
}

// WithPoints returns a copy of o whose series is exactly points.
func (o Option) WithPoints(points []Point) Option {
	cp := make([]Point, len(points))
	copy(cp, points)
	o.Points = cp
	return o
}

// Range reports the smallest and largest value in the series.
func (o Option) Range() (lo, hi float64, ok bool) {
	if len(o.Points) == 0 {
		return 0, 0, false
	}
	lo, hi = o.Points[0].Value, o.Points[0].Value
	for _, p := range o.Points[1:] {
		if p.Value < lo {
			lo = p.Value
		}
		if p.Value > hi {
			hi = p.Value
		}
	}
	return lo, hi, true
}
