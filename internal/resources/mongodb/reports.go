// Package mongodb stores configuration reports in MongoDB.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/report"
)

const (
	connectTimeout = 10 * time.Second
	insertTimeout  = 30 * time.Second
)

// Inserter is the part of a collection the repository writes through.
type Inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// ReportRepository implements ports.ReportPublisher.
type ReportRepository struct {
	client *mongo.Client
	coll   Inserter
	log    *zap.Logger
}

type Option func(*ReportRepository)

func WithLogger(l *zap.Logger) Option {
	return func(r *ReportRepository) {
		if l != nil {
			r.log = l
		}
	}
}

// NewReportRepository connects and pings the server before returning.
func NewReportRepository(ctx context.Context, uri, database, collection string, opts ...Option) (*ReportRepository, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	r := NewReportRepositoryWithCollection(client.Database(database).Collection(collection), opts...)
	r.client = client
	r.log.Info("mongo connected", zap.String("database", database), zap.String("collection", collection))
	return r, nil
}

func NewReportRepositoryWithCollection(coll Inserter, opts ...Option) *ReportRepository {
	r := &ReportRepository{coll: coll, log: zap.NewNop()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Publish inserts the finalized report.
func (r *ReportRepository) Publish(ctx context.Context, rep *report.Report) error {
	ctx, cancel := context.WithTimeout(ctx, insertTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, rep); err != nil {
		return fmt.Errorf("insert report %s: %w", rep.ID, err)
	}
	r.log.Debug("report stored",
		zap.Stringer("report", rep.ID),
		zap.Int("entries", len(rep.Entries)),
		zap.Bool("complete", rep.Complete))
	return nil
}

func (r *ReportRepository) Close(ctx context.Context) error {
	if r.client != nil {
		return r.client.Disconnect(ctx)
	}
	return nil
}
