package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	gocache "github.com/patrickmn/go-cache"
	"github.com/ultron-crm/assistant-backend/internal/entity"
	"github.com/ultron-crm/assistant-backend/internal/formatter"
	"github.com/ultron-crm/assistant-backend/internal/intent"
	"github.com/ultron-crm/assistant-backend/internal/pkg/logger"
	"github.com/ultron-crm/assistant-backend/internal/pkg/metrics"
	"github.com/ultron-crm/assistant-backend/internal/sqlpolicy"
	"go.uber.org/zap"
)

const (
	apologyGeneration = "Désolé, je n'ai pas réussi à interpréter votre question. Essayez par exemple : « Montre-moi les prospects chauds » ou « Combien de prospects ne sont pas assignés ? »"
	apologyValidation = "Désolé, je ne peux pas exécuter cette demande : %s. Essayez par exemple : « Montre-moi les prospects chauds »."
	apologyExecution  = "Désolé, une erreur est survenue lors de la recherche. Réessayez dans un instant, ou reformulez votre question, par exemple : « Liste les prospects non assignés »."
)

// Usecase runs the assistant pipeline: classify, generate, rewrite,
// validate, execute, format. Each request is processed synchronously to a
// terminal state; nothing is retried.
type Usecase struct {
	llmConnector    LLMConnector
	executor        QueryExecutor
	policy          *sqlpolicy.Policy
	responseCache   *gocache.Cache
	defaultRowLimit int
	logger          *zap.Logger
}

// NewUsecase creates the assistant use case
func NewUsecase(
	llmConnector LLMConnector,
	executor QueryExecutor,
	policy *sqlpolicy.Policy,
	responseCacheTTL time.Duration,
	defaultRowLimit int,
	logger *zap.Logger,
) *Usecase {
	return &Usecase{
		llmConnector:    llmConnector,
		executor:        executor,
		policy:          policy,
		responseCache:   gocache.New(responseCacheTTL, 2*responseCacheTTL),
		defaultRowLimit: defaultRowLimit,
		logger:          logger,
	}
}

// HandleMessage processes one user message to a terminal response. Stage
// failures are folded into the response as taxonomy codes with user-facing
// apologies; internal detail is logged here and never returned.
func (uc *Usecase) HandleMessage(ctx context.Context, org *entity.Organization, req *entity.AssistantRequest) *entity.AssistantResponse {
	message := strings.TrimSpace(req.Message)

	if intent.IsSmallTalk(message) {
		ctxzap.Info(ctx, "message classified as small talk")
		metrics.RequestsTotal.WithLabelValues("small_talk").Inc()
		return &entity.AssistantResponse{Response: intent.CannedReply(message)}
	}

	// The pipeline is read-only and idempotent, so serving a cached
	// terminal response for an identical question is safe.
	cacheKey := org.ID + "\x00" + strings.ToLower(message)
	if len(req.ConversationHistory) == 0 {
		if cached, ok := uc.responseCache.Get(cacheKey); ok {
			ctxzap.Info(ctx, "serving cached assistant response")
			metrics.CacheHitsTotal.Inc()
			return cached.(*entity.AssistantResponse)
		}
	}

	candidate, err := uc.generate(ctx, message, req.ConversationHistory)
	if err != nil {
		ctxzap.Error(ctx, "query generation failed", zap.Error(err))
		metrics.RequestsTotal.WithLabelValues("generation_error").Inc()
		return &entity.AssistantResponse{
			Response: apologyGeneration,
			Error:    entity.ErrorCodeSQLGeneration,
		}
	}

	rewritten := sqlpolicy.Rewrite(candidate, uc.defaultRowLimit)

	outcome := uc.policy.Validate(rewritten)
	if !outcome.Valid {
		ctxzap.Warn(ctx, "candidate query rejected by policy",
			zap.String("reason", outcome.Reason),
		)
		metrics.RequestsTotal.WithLabelValues("validation_error").Inc()
		return &entity.AssistantResponse{
			Response: fmt.Sprintf(apologyValidation, outcome.Reason),
			Error:    entity.ErrorCodeValidation,
		}
	}

	if unknown := uc.policy.UnknownTables(rewritten); len(unknown) > 0 {
		// Soft check: not blocked, the executor will fail cleanly if the
		// table truly does not exist.
		ctxzap.Warn(ctx, "query references unknown tables", zap.Strings("tables", unknown))
	}

	rows, err := uc.execute(ctx, rewritten, org.ID)
	if err != nil {
		ctxzap.Error(ctx, "query execution failed", zap.Error(err))
		metrics.RequestsTotal.WithLabelValues("execution_error").Inc()
		return &entity.AssistantResponse{
			Response: apologyExecution,
			Error:    entity.ErrorCodeExecution,
		}
	}

	formatted := formatter.Format(rows)
	response := &entity.AssistantResponse{
		Response: formatted.Summary,
		Query:    rewritten,
		Data:     rows,
		DataType: formatted.DataType,
	}

	ctxzap.Info(ctx, "assistant request completed",
		zap.Int("row_count", len(rows)),
		zap.String("data_type", string(formatted.DataType)),
	)
	metrics.RequestsTotal.WithLabelValues("responded").Inc()

	if len(req.ConversationHistory) == 0 {
		uc.responseCache.SetDefault(cacheKey, response)
	}

	return response
}

func (uc *Usecase) generate(ctx context.Context, message string, history []entity.ConversationTurn) (string, error) {
	ctx = logger.WithStage(ctx, "generate")
	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("generate").Observe(time.Since(start).Seconds())
	}()

	return uc.llmConnector.GenerateQuery(ctx, message, history)
}

// execute tries the generic entry point first and degrades to the structured
// fallback only when that entry point is unavailable, not on query errors.
func (uc *Usecase) execute(ctx context.Context, query string, orgID string) ([]map[string]any, error) {
	ctx = logger.WithStage(ctx, "execute")
	start := time.Now()
	defer func() {
		metrics.StageDuration.WithLabelValues("execute").Observe(time.Since(start).Seconds())
	}()

	rows, err := uc.executor.Execute(ctx, query, orgID)
	if err == nil {
		return rows, nil
	}
	if !errors.Is(err, entity.ErrExecFunctionUnavailable) {
		return nil, err
	}

	ctxzap.Warn(ctx, "generic execution entry point unavailable, using structured fallback")
	metrics.FallbackTotal.Inc()

	queryIntent := sqlpolicy.ParseIntent(query)
	if len(queryIntent.DroppedPredicates) > 0 {
		// Known correctness gap: unrecognized predicates are skipped, so
		// the fallback can return a superset of the intended rows.
		ctxzap.Warn(ctx, "fallback dropped unrecognized predicates",
			zap.Strings("predicates", queryIntent.DroppedPredicates),
		)
	}

	return uc.executor.ExecuteIntent(ctx, queryIntent, orgID)
}
