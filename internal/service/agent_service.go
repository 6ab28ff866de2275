package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"knagent-be/internal/constant"
	"knagent-be/internal/dto"
	"knagent-be/internal/entity"
	"knagent-be/internal/pkg/logger"
	"knagent-be/internal/repository/specification"
	"knagent-be/internal/repository/unitofwork"
	"knagent-be/pkg/agent"
	"knagent-be/pkg/events"
	pktNats "knagent-be/pkg/nats"
	"knagent-be/pkg/rag/chain"

	"github.com/google/uuid"
)

var ErrEmptyQuestion = errors.New("question must not be empty")

// AgentRunner is satisfied by *agent.Loop.
type AgentRunner interface {
	Run(ctx context.Context, req agent.Request) (*agent.Result, error)
}

// ChainAnswerer is satisfied by *chain.RetrievalChain.
type ChainAnswerer interface {
	Answer(ctx context.Context, question string, role entity.Role, history []chain.HistoryTurn) (string, error)
}

// GapDetector is satisfied by *gap.Detector.
type GapDetector interface {
	Detect(answer string) bool
}

type IAgentService interface {
	Ask(ctx context.Context, identity agent.Identity, req *dto.QueryRequest) (*dto.QueryResponse, error)
	ListSessions(ctx context.Context, userID string) ([]*dto.SessionInfo, error)
	History(ctx context.Context, userID, sessionID string) ([]*dto.HistoryMessage, error)
}

type AgentSettings struct {
	Pipeline     string
	HistoryTurns int
}

type agentService struct {
	uowFactory unitofwork.RepositoryFactory
	loop       AgentRunner
	chain      ChainAnswerer
	detector   GapDetector
	publisher  pktNats.EventPublisher
	settings   AgentSettings
	logger     logger.ILogger
}

func NewAgentService(
	uowFactory unitofwork.RepositoryFactory,
	loop AgentRunner,
	retrievalChain ChainAnswerer,
	detector GapDetector,
	publisher pktNats.EventPublisher,
	settings AgentSettings,
	log logger.ILogger,
) IAgentService {
	if settings.Pipeline == "" {
		settings.Pipeline = constant.PipelineAgent
	}
	return &agentService{
		uowFactory: uowFactory,
		loop:       loop,
		chain:      retrievalChain,
		detector:   detector,
		publisher:  publisher,
		settings:   settings,
		logger:     log,
	}
}

func (s *agentService) Ask(ctx context.Context, identity agent.Identity, req *dto.QueryRequest) (*dto.QueryResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	sessionID := ""
	if req.SessionId != nil {
		sessionID = strings.TrimSpace(*req.SessionId)
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// 1. Prior turns of this session, before the new question is stored
	prior, err := uow.ConversationRepository().ListBySession(ctx, sessionID, specification.OwnedBy{UserID: identity.UserID})
	if err != nil {
		return nil, err
	}
	history := toHistoryMessages(lastTurns(prior, s.settings.HistoryTurns))

	// 2. User turn is saved before the loop runs
	if err := s.appendTurn(ctx, identity.UserID, sessionID, entity.SenderUser, req.Question); err != nil {
		return nil, err
	}

	// 3. Reason
	answer, ok := s.answer(ctx, identity, question, history)

	// 4. Knowledge gaps
	if ok && s.detector.Detect(answer) {
		s.recordGap(ctx, identity, question, sessionID)
	}

	// 5. Agent turn
	if err := s.appendTurn(ctx, identity.UserID, sessionID, entity.SenderAgent, answer); err != nil {
		return nil, err
	}

	return &dto.QueryResponse{Answer: answer, SessionId: sessionID}, nil
}

// answer reports false when the fallback text was substituted.
func (s *agentService) answer(ctx context.Context, identity agent.Identity, question string, history []*dto.HistoryMessage) (string, bool) {
	var (
		text string
		err  error
	)

	switch s.settings.Pipeline {
	case constant.PipelineRetrievalChain:
		turns := make([]chain.HistoryTurn, len(history))
		for i, h := range history {
			turns[i] = chain.HistoryTurn{Role: h.Role, Content: h.Content}
		}
		text, err = s.chain.Answer(ctx, question, identity.Role, turns)
	default:
		turns := make([]agent.HistoryTurn, len(history))
		for i, h := range history {
			turns[i] = agent.HistoryTurn{Role: h.Role, Content: h.Content}
		}
		var res *agent.Result
		res, err = s.loop.Run(ctx, agent.Request{
			Identity: identity,
			Question: question,
			History:  turns,
		})
		if err == nil {
			text = res.Answer
			s.logger.Debug("AgentService", "Loop finished", map[string]interface{}{
				"user_id":    identity.UserID,
				"iterations": res.Iterations,
				"truncated":  res.Truncated,
			})
		}
	}

	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty answer")
	}
	if err != nil {
		s.logger.Error("AgentService", "Agent failed, answering with fallback", map[string]interface{}{
			"user_id":  identity.UserID,
			"pipeline": s.settings.Pipeline,
			"error":    err.Error(),
		})
		return constant.FallbackAnswer, false
	}
	return text, true
}

// recordGap never fails the request.
func (s *agentService) recordGap(ctx context.Context, identity agent.Identity, question, sessionID string) {
	s.logger.Info("AgentService", "Knowledge gap detected", map[string]interface{}{
		"user_id":  identity.UserID,
		"role":     identity.Role.String(),
		"question": question,
	})

	gap := &entity.UnansweredQuery{
		UserId:    identity.UserID,
		UserRole:  identity.Role,
		Question:  question,
		SessionId: sessionID,
		Timestamp: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		s.logger.Error("AgentService", "Failed to record knowledge gap", map[string]interface{}{"error": err.Error()})
		return
	}
	defer uow.Rollback()

	if err := uow.UnansweredQueryRepository().Create(ctx, gap); err != nil {
		s.logger.Error("AgentService", "Failed to record knowledge gap", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := uow.Commit(); err != nil {
		s.logger.Error("AgentService", "Failed to record knowledge gap", map[string]interface{}{"error": err.Error()})
		return
	}

	publishAsync(s.publisher, s.logger, events.QueryUnanswered(identity.UserID, identity.Role.String(), question, sessionID))
}

func (s *agentService) appendTurn(ctx context.Context, userID, sessionID string, sender entity.Sender, content string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.ConversationRepository().Append(ctx, &entity.ConversationTurn{
		UserId:    userID,
		SessionId: sessionID,
		Sender:    sender,
		Content:   content,
		Timestamp: time.Now(),
	}); err != nil {
		return err
	}
	return uow.Commit()
}

func (s *agentService) ListSessions(ctx context.Context, userID string) ([]*dto.SessionInfo, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	summaries, err := uow.ConversationRepository().ListSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.SessionInfo, 0, len(summaries))
	for _, sm := range summaries {
		res = append(res, &dto.SessionInfo{
			SessionId: sm.SessionId,
			Preview:   sm.Preview,
			Timestamp: sm.Timestamp,
		})
	}
	return res, nil
}

// History only ever shows the caller's own turns, even for a session id shared with someone else.
func (s *agentService) History(ctx context.Context, userID, sessionID string) ([]*dto.HistoryMessage, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	turns, err := uow.ConversationRepository().ListBySession(ctx, sessionID, specification.OwnedBy{UserID: userID})
	if err != nil {
		return nil, err
	}
	return toHistoryMessages(turns), nil
}

func toHistoryMessages(turns []*entity.ConversationTurn) []*dto.HistoryMessage {
	res := make([]*dto.HistoryMessage, 0, len(turns))
	for _, t := range turns {
		role := constant.HistoryRoleAI
		if t.Sender == entity.SenderUser {
			role = constant.HistoryRoleHuman
		}
		res = append(res, &dto.HistoryMessage{Role: role, Content: t.Content})
	}
	return res
}

func lastTurns(turns []*entity.ConversationTurn, n int) []*entity.ConversationTurn {
	if n <= 0 || len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}
