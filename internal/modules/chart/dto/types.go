package dto

import "time"

type Point struct {
	At    time.Time
	Value float64
}

type Size struct {
	Width  int
	Height int
}

type Container struct {
	ID     string
	Width  int
	Height int
}
