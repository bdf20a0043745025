// Package demo exercises the generator end to end. Its generated file is
// committed so the tests can check the emitted functions against the draw
// behavior they promise.
package demo

//randgen:derive
type Color int

const (
	Red Color = iota
	Green
	Blue
)

//randgen:derive
type Point struct {
	X, Y int64
}

//randgen:derive
type Segment struct {
	Start Point
	End   Point
}

//randgen:derive
type Shape interface {
	isShape()
}

type Circle struct {
	Radius float64
}

func (Circle) isShape() {}

type Rect struct {
	W, H float64
}

func (Rect) isShape() {}

//randgen:derive
type Node struct {
	Value int64
	Next  *Node
}

//randgen:derive
type Pair[A, B any] struct {
	First  A
	Second B
}

//randgen:derive
type Marker struct{}
