package domain

import "image"

// SourceCoverage compares raw message counts of one export file with its groups.
type SourceCoverage struct {
	SourceFile      string
	DefaultMessages int
	JoinedMessages  int
	Groups          int
}

// Bar is one labelled value of a bar chart.
type Bar struct {
	Label string
	Value float64
}

// BarChart is a horizontal bar chart request.
type BarChart struct {
	Title  string
	XLabel string
	Bars   []Bar
}

// MapPoint is a city marker sized by Value.
type MapPoint struct {
	Label string
	Lat   float64
	Lon   float64
	Value float64
}

// MapBounds is the geographic extent drawn on a map canvas.
type MapBounds struct {
	MinLon, MaxLon float64
	MinLat, MaxLat float64
}

// CityMap is a point map request; Background may be nil.
type CityMap struct {
	Title      string
	Bounds     MapBounds
	Points     []MapPoint
	Background image.Image
}
