// 随机数引擎，包装了golang.org/x/exp/rand，提供了一些常用的随机数生成方法
package randengine

import (
	"flag"
	"log"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数生成
)

// Engine 随机数引擎
// 功能：为整个仿真提供唯一的随机数来源，保证给定种子时试验可复现
// 说明：仿真是单线程推进的，所有方法均不加锁
type Engine struct {
	*rand.Rand // 底层随机数生成器
}

// New 创建随机数引擎
// 功能：初始化一个新的随机数引擎实例
// 参数：seed-随机数种子
// 返回：随机数引擎指针
// 说明：种子偏移量允许在不修改配置的情况下调整随机数序列
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// PTrue 以指定概率返回true（非线程安全）
// 功能：实现伯努利分布
// 参数：p-返回true的概率（0.0到1.0之间）
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}

// Choice 从非空切片中等概率选取一个元素（非线程安全）
// 参数：e-随机数引擎，items-候选元素
// 返回：被选中的元素
func Choice[T any](e *Engine, items []T) T {
	if len(items) == 0 {
		log.Panicf("randengine: Choice from empty slice")
	}
	return items[e.Intn(len(items))]
}
