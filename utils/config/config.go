package config

import (
	"fmt"

	"gopkg.in/yaml.v2"
)

// Default 默认配置
// 功能：8×6网格、3辆背景车、信号灯周期{3,4,5}、起终点距离至少4、截止时间为5倍距离、
// 硬性时间下限-100、折扣因子0.5、100轮试验且强制截止时间
func Default() Config {
	return Config{
		Control: Control{
			Trials:          100,
			MaxSteps:        0,
			EnforceDeadline: true,
			Seed:            0,
		},
		World: World{
			Cols:           8,
			Rows:           6,
			NumDummies:     3,
			LightPeriods:   []int32{3, 4, 5},
			MinDistance:    4,
			DeadlineFactor: 5,
			HardTimeLimit:  -100,
		},
		Agent: Agent{
			Gamma: 0.5,
		},
	}
}

// Parse 解析YAML配置
// 功能：在默认配置之上严格解析YAML（未知字段报错），并校验
// 参数：data-YAML内容
// 返回：配置与错误
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.UnmarshalStrict(data, &c); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

// Validate 校验配置
// 说明：网格必须能容纳距离不小于MinDistance的起终点对，否则重置试验时的拒绝采样不会终止
func (c Config) Validate() error {
	w := c.World
	if w.Cols <= 0 || w.Rows <= 0 {
		return fmt.Errorf("config: grid size must be positive, got %dx%d", w.Cols, w.Rows)
	}
	if w.MinDistance < 0 || w.MinDistance > (w.Cols-1)+(w.Rows-1) {
		return fmt.Errorf("config: min_distance %d unreachable in %dx%d grid", w.MinDistance, w.Cols, w.Rows)
	}
	if w.DeadlineFactor <= 0 {
		return fmt.Errorf("config: deadline_factor must be positive, got %d", w.DeadlineFactor)
	}
	if w.HardTimeLimit > 0 {
		return fmt.Errorf("config: hard_time_limit must not be positive, got %d", w.HardTimeLimit)
	}
	if w.NumDummies < 0 {
		return fmt.Errorf("config: num_dummies must not be negative, got %d", w.NumDummies)
	}
	for _, p := range w.LightPeriods {
		if p <= 0 {
			return fmt.Errorf("config: light period must be positive, got %d", p)
		}
	}
	if c.Control.Trials < 0 || c.Control.MaxSteps < 0 {
		return fmt.Errorf("config: trials and max_steps must not be negative")
	}
	if c.Agent.Gamma < 0 || c.Agent.Gamma >= 1 {
		return fmt.Errorf("config: gamma must be in [0, 1), got %v", c.Agent.Gamma)
	}
	if m := c.Output.Mongo; m != nil && m.URI != "" && (m.DB == "" || m.Col == "") {
		return fmt.Errorf("config: output.mongo needs db and col")
	}
	return nil
}

// RuntimeConfig 运行时配置
// 功能：存储校验后的配置，供各模块只读访问
type RuntimeConfig struct {
	All Config  // 全部配置
	C   Control // 全局控制配置
	W   World   // 路网配置
}

// NewRuntimeConfig 根据配置初始化运行时配置
func NewRuntimeConfig(config Config) *RuntimeConfig {
	return &RuntimeConfig{
		All: config,
		C:   config.Control,
		W:   config.World,
	}
}
