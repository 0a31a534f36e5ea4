// Package testing provides fixtures for many: marker types and annotated
// types whose generated code lives in helpers_many.go.
package testing

import (
	"encoding/xml"
	"time"
)

//go:generate go run github.com/zoobzio/many/cmd/manygen helpers.go

// DefaultMarker selects the baseline encoding of the fixtures.
type DefaultMarker struct{}

// SpecialMarker selects the alternate encoding of the fixtures.
type SpecialMarker struct{}

// UnusedMarker is declared by no fixture.
type UnusedMarker struct{}

// Point renames its x key under SpecialMarker.
//
//many:markers default="DefaultMarker", special="SpecialMarker"
type Point struct {
	X int `json:"x" yaml:"x" msgpack:"x" bson:"x" xml:"x" many:"special(json:'x_value' yaml:'x_value' msgpack:'x_value' bson:'x_value' xml:'x_value')"`
	Y int `json:"y" yaml:"y" msgpack:"y" bson:"y" xml:"y"`
}

// Shape nests a Point and a Color, both following the active marker.
// Note is dropped under SpecialMarker.
//
//many:markers default="DefaultMarker", special="SpecialMarker"
type Shape struct {
	Name   string `json:"name" yaml:"name" msgpack:"name" bson:"name" xml:"name"`
	Origin Point  `json:"origin" yaml:"origin" msgpack:"origin" bson:"origin" xml:"origin"`
	Fill   Color  `json:"fill" yaml:"fill" msgpack:"fill" bson:"fill" xml:"fill"`
	Note   string `json:"note,omitempty" yaml:"note,omitempty" msgpack:"note,omitempty" bson:"note,omitempty" xml:"note,omitempty" many:"special(json:'-' yaml:'-' msgpack:'-' bson:'-' xml:'-')"`
}

// Color is encoded by value under DefaultMarker and by name under
// SpecialMarker.
//
//many:markers default="DefaultMarker", special="SpecialMarker"
//many:config special(enum:'name' trim_prefix:'Color' rename_all:'lowercase')
type Color int

const (
	ColorRed   Color = iota + 1
	ColorGreen       //many:config special(alias:'verde')
	ColorBlue        //many:config special(name:'azure' alias:'blue')
)

// Pair has no baseline tags; SpecialMarker derives snake_case keys.
//
//many:markers default="DefaultMarker", special="SpecialMarker"
//many:config special(rename_all:'snake_case' tags:'json,yaml')
type Pair[T any] struct {
	First  T
	Second T
}

// Serial is encoded as a quoted number in JSON.
type Serial int64

// Single declares one marker and no scoped tags, so it encodes exactly like
// the type itself.
//
//many:markers default="DefaultMarker"
type Single struct {
	XMLName xml.Name  `json:"-" yaml:"-" msgpack:"-" bson:"-" xml:"single"`
	ID      string    `json:"id" yaml:"id" msgpack:"id" bson:"id" xml:"id"`
	Count   int       `json:"count,omitempty" yaml:"count,omitempty" msgpack:"count,omitempty" bson:"count,omitempty" xml:"count,omitempty"`
	Created time.Time `json:"created" yaml:"created" msgpack:"created" bson:"created" xml:"created"`
	Parent  *Point    `json:"parent,omitempty" yaml:"parent,omitempty" msgpack:"parent,omitempty" bson:"parent,omitempty" xml:"parent,omitempty"`
	Serial  Serial    `json:"serial,string" yaml:"serial" msgpack:"serial" bson:"serial" xml:"serial"`
}

// Plain has no generated code and always encodes as itself.
type Plain struct {
	ID   string `json:"id" yaml:"id" msgpack:"id" bson:"id" xml:"id"`
	Name string `json:"name" yaml:"name" msgpack:"name" bson:"name" xml:"name"`
}

// SamplePoint returns the Point used across round trip tests.
func SamplePoint() Point {
	return Point{X: 1, Y: 2}
}

// SampleShape returns a Shape with every field set.
func SampleShape() Shape {
	return Shape{
		Name:   "square",
		Origin: Point{X: 3, Y: 4},
		Fill:   ColorBlue,
		Note:   "internal",
	}
}

// SampleSingle returns a Single with every field set.
func SampleSingle() Single {
	return Single{
		ID:      "s-1",
		Count:   7,
		Created: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Serial:  42,
	}
}
