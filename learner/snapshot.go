package learner

import (
	"errors"
	"fmt"
	"os"

	"github.com/tsinghua-fib-lab/smartcab-sim-oss/entity"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

var (
	ErrEmptySnapshot = errors.New("snapshot has no entries field")
)

// ToPb 将学习器导出为protobuf结构
// 功能：包含全局更新次数、折扣因子与全部Q表条目（按固定顺序）
func (l *Learner) ToPb() (*structpb.Struct, error) {
	entries := make([]any, 0, l.table.Len())
	for _, e := range l.table.Entries() {
		entries = append(entries, map[string]any{
			"light":    e.State.Light.String(),
			"oncoming": e.State.Oncoming.String(),
			"left":     e.State.Left.String(),
			"waypoint": e.State.Waypoint.String(),
			"action":   e.Action.String(),
			"value":    e.Value,
		})
	}
	return structpb.NewStruct(map[string]any{
		"time":    l.time,
		"gamma":   l.gamma,
		"entries": entries,
	})
}

// FromPb 从protobuf结构恢复Q表与全局更新次数
// 说明：折扣因子以当前配置为准，不从快照中恢复
func (l *Learner) FromPb(pb *structpb.Struct) error {
	fields := pb.GetFields()
	entries, ok := fields["entries"]
	if !ok {
		return ErrEmptySnapshot
	}
	table := NewQTable()
	for i, v := range entries.GetListValue().GetValues() {
		f := v.GetStructValue().GetFields()
		var (
			s   State
			a   entity.Action
			err error
		)
		if s.Light, err = entity.ParseLight(f["light"].GetStringValue()); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if s.Oncoming, err = entity.ParseAction(f["oncoming"].GetStringValue()); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if s.Left, err = entity.ParseAction(f["left"].GetStringValue()); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if s.Waypoint, err = entity.ParseAction(f["waypoint"].GetStringValue()); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if a, err = entity.ParseAction(f["action"].GetStringValue()); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		table.set(s, a, f["value"].GetNumberValue())
	}
	l.table = table
	l.time = int64(fields["time"].GetNumberValue())
	return nil
}

// Save 将学习器快照写入文件（protobuf二进制）
func (l *Learner) Save(path string) error {
	pb, err := l.ToPb()
	if err != nil {
		return fmt.Errorf("learner: build snapshot: %w", err)
	}
	data, err := proto.Marshal(pb)
	if err != nil {
		return fmt.Errorf("learner: marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("learner: write snapshot: %w", err)
	}
	log.Infof("saved %d q-table entries to %s", l.table.Len(), path)
	return nil
}

// Load 从文件加载学习器快照
func (l *Learner) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("learner: read snapshot: %w", err)
	}
	var pb structpb.Struct
	if err := proto.Unmarshal(data, &pb); err != nil {
		return fmt.Errorf("learner: unmarshal snapshot: %w", err)
	}
	if err := l.FromPb(&pb); err != nil {
		return fmt.Errorf("learner: %w", err)
	}
	log.Infof("loaded %d q-table entries from %s", l.table.Len(), path)
	return nil
}
