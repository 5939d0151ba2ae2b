package mapping

import (
	"math"
	"strconv"
	"strings"
)

// DirectionOf returns the direction for a oneway or junction value.
func DirectionOf(value string) Direction {
	switch value {
	case "1", "true", "yes", "roundabout", "mini_roundabout":
		return Forward
	case "-1":
		return Backward
	}
	return Bidirectional
}

// Lanes are the lane counts of a way. Total is limited to 0-7, Forward
// and Backward to 0-255.
type Lanes struct {
	Total    uint8
	Forward  uint8
	Backward uint8
}

const (
	lanesTotalMask     = 0x07
	lanesForwardShift  = 16
	lanesBackwardShift = 24
)

// Pack returns the lanes as a single word.
func (l Lanes) Pack() uint32 {
	return uint32(l.Total&lanesTotalMask) |
		uint32(l.Forward)<<lanesForwardShift |
		uint32(l.Backward)<<lanesBackwardShift
}

func UnpackLanes(w uint32) Lanes {
	return Lanes{
		Total:    uint8(w & lanesTotalMask),
		Forward:  uint8(w >> lanesForwardShift),
		Backward: uint8(w >> lanesBackwardShift),
	}
}

// LanesFromTags reads lanes, lanes:forward and lanes:backward. Values
// that are no unsigned integers are ignored, too large values are
// truncated to the width of their field.
func LanesFromTags(tags map[string]string) Lanes {
	l := Lanes{}
	if n, ok := parseCount(tags["lanes"]); ok {
		l.Total = uint8(n & lanesTotalMask)
	}
	if n, ok := parseCount(tags["lanes:forward"]); ok {
		l.Forward = uint8(n)
	}
	if n, ok := parseCount(tags["lanes:backward"]); ok {
		l.Backward = uint8(n)
	}
	return l
}

func parseCount(v string) (uint64, bool) {
	if v == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Parking is a set of per side parking restrictions. The low byte holds
// the right side, the next byte the left side.
type Parking uint16

const (
	ParkingParallelRight Parking = 1 << iota
	ParkingDiagonalRight
	ParkingPerpendicularRight
	ParkingMarkingRight
	ParkingNoRight
)

const (
	ParkingParallelLeft      = ParkingParallelRight << 8
	ParkingDiagonalLeft      = ParkingDiagonalRight << 8
	ParkingPerpendicularLeft = ParkingPerpendicularRight << 8
	ParkingMarkingLeft       = ParkingMarkingRight << 8
	ParkingNoLeft            = ParkingNoRight << 8
)

type parkingSide uint8

const (
	sideRight parkingSide = 1 << iota
	sideLeft
)

func parseParkingSide(s string) parkingSide {
	switch s {
	case "right":
		return sideRight
	case "left":
		return sideLeft
	case "both":
		return sideRight | sideLeft
	}
	return 0
}

// onSides sets the right side bit r for each selected side.
func (s parkingSide) onSides(r Parking) Parking {
	p := Parking(0)
	if s&sideRight != 0 {
		p |= r
	}
	if s&sideLeft != 0 {
		p |= r << 8
	}
	return p
}

var parkingOrientations = map[string]Parking{
	"parallel":      ParkingParallelRight,
	"diagonal":      ParkingDiagonalRight,
	"perpendicular": ParkingPerpendicularRight,
}

// ParkingFromTags scans all parking:<side>[:<attribute>] tags.
func ParkingFromTags(tags map[string]string) Parking {
	p := Parking(0)
	for k, v := range tags {
		if !strings.HasPrefix(k, "parking:") {
			continue
		}
		parts := strings.SplitN(k, ":", 4)
		side := parseParkingSide(parts[1])
		if side == 0 {
			continue
		}
		if len(parts) == 2 {
			if strings.HasPrefix(v, "no") {
				p |= side.onSides(ParkingNoRight)
			}
			continue
		}
		switch parts[2] {
		case "restriction":
			if strings.HasPrefix(v, "no") {
				p |= side.onSides(ParkingNoRight)
			}
		case "orientation":
			if o, ok := parkingOrientations[v]; ok {
				p |= side.onSides(o | ParkingMarkingRight)
			}
		}
	}
	return p
}

// WidthFromTag returns the width in millimeters. Invalid and negative
// widths return 0.
func WidthFromTag(v string) uint32 {
	if v == "" {
		return 0
	}
	w, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return 0
	}
	mm := w * 1000
	if mm >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(mm)
}
