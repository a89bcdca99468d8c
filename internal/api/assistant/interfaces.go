package assistant

import (
	"context"

	"github.com/ultron-crm/assistant-backend/internal/entity"
)

type AssistantUsecase interface {
	HandleMessage(ctx context.Context, org *entity.Organization, req *entity.AssistantRequest) *entity.AssistantResponse
}
