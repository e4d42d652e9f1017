package analysis

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "rhapsody/internal/domain/analysis"
	"rhapsody/internal/domain/sgf"
	"rhapsody/internal/usecase/analyzer"
)

// AnalysisStore keeps finished analysis logs for later retrieval by
// the presentation layer.
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, gameID string, reports []domain.MoveReport) error
	GetAnalysis(ctx context.Context, gameID string) ([]domain.MoveReport, error)
}

type AnalysisUseCase struct {
	store AnalysisStore
	log   *zap.SugaredLogger
}

func NewAnalysisUseCase(store AnalysisStore, log *zap.SugaredLogger) *AnalysisUseCase {
	return &AnalysisUseCase{store: store, log: log}
}

// AnalyzeSGF parses the SGF text, runs the full move-by-move analysis
// and stores the report log under a fresh game id. A parse failure
// aborts with no partial log; per-move rejections are recorded inside
// the log and do not fail the call.
func (a *AnalysisUseCase) AnalyzeSGF(ctx context.Context, sgfText string) (string, []domain.MoveReport, error) {
	record, err := sgf.ParseGame(sgfText)
	if err != nil {
		return "", nil, err
	}

	game, err := analyzer.NewGame(record.BoardSize, a.log)
	if err != nil {
		return "", nil, err
	}
	reports, err := game.Analyze(record.Moves)
	if err != nil {
		return "", nil, err
	}

	gameID := uuid.New().String()
	if err := a.store.SaveAnalysis(ctx, gameID, reports); err != nil {
		return "", nil, err
	}

	a.log.Infof("analyzed game %s: %d moves on a %dx%d board", gameID, len(reports), record.BoardSize, record.BoardSize)
	return gameID, reports, nil
}

func (a *AnalysisUseCase) GetAnalysis(ctx context.Context, gameID string) ([]domain.MoveReport, error) {
	return a.store.GetAnalysis(ctx, gameID)
}
