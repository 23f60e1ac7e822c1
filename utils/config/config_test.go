package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/config"
)

func TestDefault(t *testing.T) {
	c := config.Default()
	require.NoError(t, c.Validate())
	assert.Equal(t, int32(8), c.World.Cols)
	assert.Equal(t, int32(6), c.World.Rows)
	assert.Equal(t, int32(-100), c.World.HardTimeLimit)
	assert.True(t, c.Control.EnforceDeadline)
}

func TestParse(t *testing.T) {
	data := []byte(`
control:
  trials: 10
  seed: 42
world:
  cols: 5
  rows: 5
  light_periods: [2]
agent:
  gamma: 0.35
  snapshot: q.pb
output:
  excel: report.xlsx
  mongo:
    uri: mongodb://localhost:27017
    db: smartcab
    col: trials
`)
	c, err := config.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, int32(10), c.Control.Trials)
	assert.Equal(t, uint64(42), c.Control.Seed)
	// 未出现的字段保留默认值
	assert.True(t, c.Control.EnforceDeadline)
	assert.Equal(t, int32(3), c.World.NumDummies)
	assert.Equal(t, []int32{2}, c.World.LightPeriods)
	assert.Equal(t, 0.35, c.Agent.Gamma)
	assert.Equal(t, "q.pb", c.Agent.Snapshot)
	require.NotNil(t, c.Output.Mongo)
	assert.Equal(t, "trials", c.Output.Mongo.Col)

	rc := config.NewRuntimeConfig(c)
	assert.Equal(t, c.Control, rc.C)
	assert.Equal(t, c.World, rc.W)
}

func TestParseStrict(t *testing.T) {
	_, err := config.Parse([]byte("control:\n  trails: 10\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *config.Config){
		"grid":     func(c *config.Config) { c.World.Cols = 0 },
		"distance": func(c *config.Config) { c.World.Cols, c.World.Rows = 2, 2 },
		"deadline": func(c *config.Config) { c.World.DeadlineFactor = 0 },
		"hard":     func(c *config.Config) { c.World.HardTimeLimit = 1 },
		"period":   func(c *config.Config) { c.World.LightPeriods = []int32{3, 0} },
		"gamma":    func(c *config.Config) { c.Agent.Gamma = 1 },
		"mongo":    func(c *config.Config) { c.Output.Mongo = &config.MongoOutput{URI: "mongodb://x"} },
	}
	for name, mutate := range cases {
		c := config.Default()
		mutate(&c)
		assert.Error(t, c.Validate(), name)
	}
}
