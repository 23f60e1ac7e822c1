package output

import (
	"context"
	"fmt"
	"time"

	"github.com/tsinghua-fib-lab/smartcab-sim-oss/utils/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoTimeout = 10 * time.Second

// MongoSink 将每轮试验记录写入MongoDB集合
type MongoSink struct {
	job    string
	client *mongo.Client
	col    *mongo.Collection
}

// NewMongoSink 连接MongoDB
// 参数：ctx-连接上下文，c-连接配置，job-任务名（写入每条记录）
// 返回：写入目标与错误
func NewMongoSink(ctx context.Context, c *config.MongoOutput, job string) (*MongoSink, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(c.URI))
	if err != nil {
		return nil, fmt.Errorf("output: mongo connect: %w", err)
	}
	log.Infof("trial records will be written to mongo %s.%s", c.DB, c.Col)
	return &MongoSink{
		job:    job,
		client: client,
		col:    client.Database(c.DB).Collection(c.Col),
	}, nil
}

// Insert 写入一轮试验记录
func (s *MongoSink) Insert(rec TrialRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()
	if _, err := s.col.InsertOne(ctx, trialDoc(s.job, rec)); err != nil {
		return fmt.Errorf("output: mongo insert: %w", err)
	}
	return nil
}

func (s *MongoSink) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func trialDoc(job string, rec TrialRecord) bson.M {
	return bson.M{
		"job":                job,
		"trial":              rec.Trial,
		"start":              bson.M{"x": rec.Start.X, "y": rec.Start.Y},
		"destination":        bson.M{"x": rec.Destination.X, "y": rec.Destination.Y},
		"initial_deadline":   rec.InitialDeadline,
		"remaining_deadline": rec.RemainingDeadline,
		"steps":              rec.Steps,
		"reward":             rec.Reward,
		"errors":             rec.Errors,
		"outcome":            rec.Outcome.String(),
		"q_table_size":       rec.QTableSize,
	}
}
