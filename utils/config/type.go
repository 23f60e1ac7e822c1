package config

// MongoOutput 试验记录写入MongoDB的配置项
// 说明：URI为空时不启用
type MongoOutput struct {
	URI string `yaml:"uri"` // MongoDB连接字符串
	DB  string `yaml:"db"`  // 数据库名
	Col string `yaml:"col"` // 集合名
}

// Output 输出配置
// 功能：定义试验结果的各类导出目标，留空则不导出
type Output struct {
	Excel string       `yaml:"excel,omitempty"` // 每轮试验明细的xlsx文件路径
	Chart string       `yaml:"chart,omitempty"` // 学习曲线html文件路径
	Mongo *MongoOutput `yaml:"mongo,omitempty"` // 试验记录写入MongoDB
}

// Agent 学习车辆配置
type Agent struct {
	Gamma    float64 `yaml:"gamma"`              // 折扣因子
	Snapshot string  `yaml:"snapshot,omitempty"` // 结束时保存Q表的文件路径
	Load     string  `yaml:"load,omitempty"`     // 启动时加载Q表的文件路径
}

// World 路网与交通配置
// 功能：定义网格大小、背景车辆数量与试验生成规则
type World struct {
	Cols           int32   `yaml:"cols"`            // 列数，x范围[1..cols]
	Rows           int32   `yaml:"rows"`            // 行数，y范围[1..rows]
	NumDummies     int32   `yaml:"num_dummies"`     // 背景车辆数
	LightPeriods   []int32 `yaml:"light_periods"`   // 信号灯候选周期
	MinDistance    int32   `yaml:"min_distance"`    // 起终点最小L1距离
	DeadlineFactor int32   `yaml:"deadline_factor"` // 截止时间 = 系数 × 起终点L1距离
	HardTimeLimit  int32   `yaml:"hard_time_limit"` // 剩余时间降到该值时强制结束试验
}

// Control 模拟器控制配置
// 功能：定义试验次数、每轮步数上限、截止时间开关与随机种子
type Control struct {
	Trials          int32  `yaml:"trials"`           // 试验轮数
	MaxSteps        int32  `yaml:"max_steps"`        // 每轮最多步数，0表示直到试验结束
	EnforceDeadline bool   `yaml:"enforce_deadline"` // 是否强制截止时间
	Seed            uint64 `yaml:"seed"`             // 随机种子
}

// Config YAML配置文件的根结构
// 功能：定义整个仿真系统的配置结构
type Config struct {
	Control Control `yaml:"control"` // 模拟过程控制
	World   World   `yaml:"world"`   // 路网
	Agent   Agent   `yaml:"agent"`   // 学习车辆
	Output  Output  `yaml:"output"`  // 输出
}
