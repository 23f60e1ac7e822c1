package junction_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity/junction"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity/junction/trafficlight"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/randengine"
	"google.golang.org/protobuf/types/known/structpb"
)

var testBounds = entity.Bounds{MinX: 1, MinY: 1, MaxX: 8, MaxY: 6}

func TestGrid(t *testing.T) {
	m := junction.NewManager(testBounds, randengine.New(0), nil)
	locs := m.Locations()
	assert.Len(t, locs, 48)
	assert.Equal(t, entity.Location{X: 1, Y: 1}, locs[0])
	assert.Equal(t, entity.Location{X: 1, Y: 2}, locs[1])
	assert.Equal(t, entity.Location{X: 8, Y: 6}, locs[47])
	// 每个内部路口4条出边，边上3条，角上2条
	assert.Len(t, m.Roads(), 2*(7*6+8*5))
	for _, r := range m.Roads() {
		assert.Equal(t, int32(1), r.From.Distance(r.To))
	}
	assert.Len(t, m.Junction(entity.Location{X: 1, Y: 1}).Neighbors(), 2)
	assert.Len(t, m.Junction(entity.Location{X: 4, Y: 1}).Neighbors(), 3)
	assert.Len(t, m.Junction(entity.Location{X: 4, Y: 3}).Neighbors(), 4)
}

func TestGetUnknown(t *testing.T) {
	m := junction.NewManager(testBounds, randengine.New(0), nil)
	_, err := m.GetOrError(entity.Location{X: 0, Y: 0})
	assert.ErrorIs(t, err, junction.ErrUnknownJunction)
	assert.Panics(t, func() { m.Get(entity.Location{X: 9, Y: 1}) })
	j, err := m.GetOrError(entity.Location{X: 2, Y: 3})
	require.NoError(t, err)
	assert.Equal(t, entity.Location{X: 2, Y: 3}, j.Location())
}

func TestLightFor(t *testing.T) {
	m := junction.NewManager(testBounds, randengine.New(0), nil)
	loc := entity.Location{X: 3, Y: 3}
	m.Junction(loc).SetTrafficLight(trafficlight.New(true, 100))
	j := m.Get(loc)
	assert.Equal(t, entity.LightGreen, j.LightFor(entity.North))
	assert.Equal(t, entity.LightGreen, j.LightFor(entity.South))
	assert.Equal(t, entity.LightRed, j.LightFor(entity.East))
	assert.Equal(t, entity.LightRed, j.LightFor(entity.West))

	m.Junction(loc).SetTrafficLight(trafficlight.New(false, 100))
	assert.Equal(t, entity.LightRed, j.LightFor(entity.North))
	assert.Equal(t, entity.LightGreen, j.LightFor(entity.East))
}

func TestResetAndUpdate(t *testing.T) {
	m := junction.NewManager(testBounds, randengine.New(0), []int32{2})
	loc := entity.Location{X: 5, Y: 5}
	before := m.Junction(loc).TrafficLight().NSOpen()
	m.Update(1)
	assert.Equal(t, before, m.Junction(loc).TrafficLight().NSOpen())
	m.Update(2)
	assert.NotEqual(t, before, m.Junction(loc).TrafficLight().NSOpen())
	assert.Equal(t, int32(2), m.Junction(loc).TrafficLight().LastToggledAt())
	m.Reset()
	assert.Equal(t, int32(0), m.Junction(loc).TrafficLight().LastToggledAt())
	assert.NotEqual(t, before, m.Junction(loc).TrafficLight().NSOpen())
}

func TestGetTrafficLightRPC(t *testing.T) {
	m := junction.NewManager(testBounds, randengine.New(0), nil)
	m.Junction(entity.Location{X: 2, Y: 4}).SetTrafficLight(trafficlight.New(true, 4))
	mux := http.NewServeMux()
	m.Register(mux, &sync.Mutex{})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := connect.NewClient[structpb.Struct, structpb.Struct](
		server.Client(), server.URL+junction.GetTrafficLightProcedure,
	)
	req, err := structpb.NewStruct(map[string]any{"x": 2, "y": 4})
	require.NoError(t, err)
	res, err := client.CallUnary(context.Background(), connect.NewRequest(req))
	require.NoError(t, err)
	fields := res.Msg.GetFields()
	assert.True(t, fields["ns_open"].GetBoolValue())
	assert.Equal(t, 4.0, fields["period"].GetNumberValue())

	req, err = structpb.NewStruct(map[string]any{"x": 20, "y": 4})
	require.NoError(t, err)
	_, err = client.CallUnary(context.Background(), connect.NewRequest(req))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}
