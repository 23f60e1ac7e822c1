package output

import (
	"fmt"
	"math"
	"sync"

	"github.com/samber/lo"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity"
	"github.com/tsinghua-fib-lab/smartcab-sim-oss/environment"
	"gonum.org/v1/gonum/stat"
)

// TrialRecord 一轮试验的记录
type TrialRecord struct {
	Trial             int32               // 试验序号，从1开始
	Start             entity.Location     // 主车辆起点
	Destination       entity.Location     // 主车辆终点
	InitialDeadline   int32               // 初始截止时间
	RemainingDeadline int32               // 试验结束时的剩余时间
	Steps             int32               // 执行的步数
	Reward            float64             // 本轮累计奖励
	Errors            float64             // 本轮负奖励之和
	Outcome           environment.Outcome // 结束原因，OutcomeNone表示达到步数上限
	QTableSize        int                 // 试验结束时Q表的条目数
}

// Summary 全部试验的汇总
type Summary struct {
	Trials      int
	Reached     int // 成功到达
	Late        int // 强制截止时间下超时
	Aborted     int // 达到硬性时间下限
	Unfinished  int // 达到每轮步数上限
	TotalReward float64
	TotalErrors float64
	MeanReward  float64
	StdReward   float64 // 少于两轮时为0
	SuccessRate float64
}

func (s Summary) String() string {
	return fmt.Sprintf(
		"Your cab made %d successful trips, and %d late. It also had a total rewards of %v and a total error amount of %v",
		s.Reached, s.Late, s.TotalReward, s.TotalErrors,
	)
}

// Recorder 试验记录器
// 功能：按顺序保存每轮试验的记录，可选地同步写入MongoDB，并计算汇总
// 说明：Record在仿真主循环中调用，Summary与Records可被RPC协程并发读取
type Recorder struct {
	mtx     sync.RWMutex
	records []TrialRecord
	sink    *MongoSink
}

// NewRecorder 创建记录器
// 参数：sink-可选的MongoDB写入目标，nil表示不写入
func NewRecorder(sink *MongoSink) *Recorder {
	return &Recorder{sink: sink}
}

// Record 追加一轮试验记录
// 说明：MongoDB写入失败只记录日志，不中断仿真
func (r *Recorder) Record(rec TrialRecord) {
	r.mtx.Lock()
	r.records = append(r.records, rec)
	r.mtx.Unlock()
	log.Infof("trial %d: %v after %d steps, reward = %v, errors = %v", rec.Trial, rec.Outcome, rec.Steps, rec.Reward, rec.Errors)
	if r.sink != nil {
		if err := r.sink.Insert(rec); err != nil {
			log.Errorf("trial %d: mongo insert err: %v", rec.Trial, err)
		}
	}
}

// Records 返回全部记录的副本
func (r *Recorder) Records() []TrialRecord {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return append([]TrialRecord(nil), r.records...)
}

func (r *Recorder) Len() int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	return len(r.records)
}

// Summary 计算汇总
func (r *Recorder) Summary() Summary {
	return Summarize(r.Records())
}

// Summarize 计算一组试验记录的汇总
// 算法说明：按结束原因计数，奖励的均值与样本标准差由gonum计算
func Summarize(records []TrialRecord) Summary {
	counts := lo.CountValuesBy(records, func(r TrialRecord) environment.Outcome {
		return r.Outcome
	})
	rewards := lo.Map(records, func(r TrialRecord, _ int) float64 {
		return r.Reward
	})
	s := Summary{
		Trials:      len(records),
		Reached:     counts[environment.OutcomeReached],
		Late:        counts[environment.OutcomeOutOfTime],
		Aborted:     counts[environment.OutcomeHardLimit],
		Unfinished:  counts[environment.OutcomeNone],
		TotalReward: lo.Sum(rewards),
		TotalErrors: lo.SumBy(records, func(r TrialRecord) float64 { return r.Errors }),
	}
	switch len(records) {
	case 0:
	case 1:
		s.MeanReward = rewards[0]
	default:
		s.MeanReward, s.StdReward = stat.MeanStdDev(rewards, nil)
		if math.IsNaN(s.StdReward) {
			s.StdReward = 0
		}
	}
	if s.Trials > 0 {
		s.SuccessRate = float64(s.Reached) / float64(s.Trials)
	}
	return s
}
