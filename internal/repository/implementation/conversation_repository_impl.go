package implementation

import (
	"context"

	"knagent-be/internal/entity"
	"knagent-be/internal/mapper"
	"knagent-be/internal/model"
	"knagent-be/internal/repository/contract"
	"knagent-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const sessionPreviewLength = 30

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationRepositoryImpl) Append(ctx context.Context, turn *entity.ConversationTurn) error {
	if turn.Id == uuid.Nil {
		turn.Id = uuid.New()
	}
	m := r.mapper.ToModel(turn)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*turn = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConversationRepositoryImpl) ListBySession(ctx context.Context, sessionId string, specs ...specification.Specification) ([]*entity.ConversationTurn, error) {
	all := append([]specification.Specification{specification.BySessionID{SessionID: sessionId}}, specs...)
	all = append(all, specification.OrderBy{Field: "created_at"})
	return r.FindAll(ctx, all...)
}

// ListSessions walks the caller's turns newest first; the first turn seen for a
// session is its latest, so sessions come out ordered by recency without duplicates.
func (r *ConversationRepositoryImpl) ListSessions(ctx context.Context, userId string) ([]*entity.SessionSummary, error) {
	turns, err := r.FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	summaries := make([]*entity.SessionSummary, 0)
	for _, t := range turns {
		if _, ok := seen[t.SessionId]; ok {
			continue
		}
		seen[t.SessionId] = struct{}{}
		summaries = append(summaries, &entity.SessionSummary{
			SessionId: t.SessionId,
			Preview:   previewOf(t.Content),
			Timestamp: t.Timestamp,
		})
	}
	return summaries, nil
}

func (r *ConversationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error) {
	var models []*model.ConversationTurn
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ConversationTurn, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

func (r *ConversationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ConversationTurn{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func previewOf(content string) string {
	runes := []rune(content)
	if len(runes) > sessionPreviewLength {
		runes = runes[:sessionPreviewLength]
	}
	return string(runes) + "..."
}
