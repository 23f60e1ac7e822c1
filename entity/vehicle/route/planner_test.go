package route_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity/vehicle/route"
)

func TestHint(t *testing.T) {
	at := entity.Location{X: 3, Y: 3}
	cases := []struct {
		name        string
		heading     entity.Heading
		destination entity.Location
		want        entity.Action
	}{
		{"arrived", entity.East, at, entity.ActionNone},
		{"east aligned", entity.East, entity.Location{X: 6, Y: 1}, entity.ActionForward},
		{"east opposite", entity.West, entity.Location{X: 6, Y: 3}, entity.ActionRight},
		{"east facing south", entity.South, entity.Location{X: 6, Y: 3}, entity.ActionLeft},
		{"east facing north", entity.North, entity.Location{X: 6, Y: 3}, entity.ActionRight},
		{"west facing south", entity.South, entity.Location{X: 1, Y: 3}, entity.ActionRight},
		{"south aligned", entity.South, entity.Location{X: 3, Y: 5}, entity.ActionForward},
		{"south opposite", entity.North, entity.Location{X: 3, Y: 5}, entity.ActionRight},
		{"south facing east", entity.East, entity.Location{X: 3, Y: 5}, entity.ActionRight},
		{"south facing west", entity.West, entity.Location{X: 3, Y: 5}, entity.ActionLeft},
		{"north facing east", entity.East, entity.Location{X: 3, Y: 1}, entity.ActionLeft},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, route.Hint(at, c.heading, c.destination), c.name)
	}
}

// 转向提示应当使车辆朝向终点方向
func TestHintTurnsTowardDestination(t *testing.T) {
	at := entity.Location{X: 4, Y: 4}
	for _, h := range entity.Headings {
		for _, dest := range []entity.Location{{X: 6, Y: 4}, {X: 1, Y: 4}, {X: 4, Y: 6}, {X: 4, Y: 1}} {
			var next entity.Heading
			switch route.Hint(at, h, dest) {
			case entity.ActionForward:
				next = h
			case entity.ActionLeft:
				next = h.TurnLeft()
			case entity.ActionRight:
				next = h.TurnRight()
			}
			moved := at.Add(next)
			if moved.Distance(dest) < at.Distance(dest) {
				continue
			}
			// 只有背向终点时（右转绕行掉头）才允许不立即缩短距离
			toward := entity.Heading{DX: sign(dest.X - at.X), DY: sign(dest.Y - at.Y)}
			assert.Equal(t, int32(-1), h.Dot(toward), "heading %v dest %v", h, dest)
		}
	}
}

func sign(v int32) int32 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
