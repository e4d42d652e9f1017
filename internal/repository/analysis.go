package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"rhapsody/internal/bootstrap"
	"rhapsody/internal/domain/analysis"
	errs "rhapsody/internal/errors"
)

const analysesCollection = "analyses"

// AnalysisRepository keeps the report log in Redis for fast retrieval
// and archives it in Mongo. Reads hit Redis first and fall back to the
// archive.
type AnalysisRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

type analysisDocument struct {
	GameID    string                `bson:"game_id"`
	CreatedAt time.Time             `bson:"created_at"`
	Reports   []analysis.MoveReport `bson:"reports"`
}

func NewAnalysisRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *AnalysisRepository {
	return &AnalysisRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func analysisKey(gameID string) string {
	return "analysis:" + gameID
}

func (a *AnalysisRepository) SaveAnalysis(ctx context.Context, gameID string, reports []analysis.MoveReport) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	payload, err := json.Marshal(reports)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis %s: %w", gameID, err)
	}

	ttl := time.Duration(a.cfg.AnalysisTTLHours) * time.Hour
	if err := a.redis.Set(ctx, analysisKey(gameID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache analysis %s: %w", gameID, err)
	}

	doc := analysisDocument{
		GameID:    gameID,
		CreatedAt: time.Now(),
		Reports:   reports,
	}
	if _, err := a.mongo.Collection(analysesCollection).InsertOne(ctx, doc); err != nil {
		a.log.Errorf("failed to archive analysis %s: %v", gameID, err)
		return err
	}

	a.log.Infof("analysis stored with game id %s (%d moves)", gameID, len(reports))
	return nil
}

func (a *AnalysisRepository) GetAnalysis(ctx context.Context, gameID string) ([]analysis.MoveReport, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	payload, err := a.redis.Get(ctx, analysisKey(gameID)).Bytes()
	if err == nil {
		var reports []analysis.MoveReport
		if err := json.Unmarshal(payload, &reports); err != nil {
			return nil, fmt.Errorf("corrupt cached analysis %s: %w", gameID, err)
		}
		return reports, nil
	}
	if !errors.Is(err, redis.Nil) {
		a.log.Errorf("redis read failed for %s, trying archive: %v", gameID, err)
	}

	var doc analysisDocument
	filter := bson.M{"game_id": gameID}
	err = a.mongo.Collection(analysesCollection).FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load analysis %s: %w", gameID, err)
	}
	return doc.Reports, nil
}
