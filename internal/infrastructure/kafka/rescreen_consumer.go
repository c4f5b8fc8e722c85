package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bibbank/kyb-service/internal/application/dto"
	pkgkafka "github.com/bibbank/kyb-service/pkg/kafka"
)

// ScopeAll requests a full sweep instead of a single merchant.
const ScopeAll = "all"

var errMalformedRequest = errors.New("malformed rescreen request")

// RescreenRequest is the payload on the rescreen-requests topic, typically
// sent when a reference list is updated upstream.
type RescreenRequest struct {
	MerchantID string `json:"merchant_id,omitempty"`
	Scope      string `json:"scope,omitempty"`
	PageSize   int    `json:"page_size,omitempty"`
}

// MerchantRescreener rescreens one merchant.
type MerchantRescreener interface {
	Execute(ctx context.Context, req dto.RescreenMerchantRequest) (dto.MerchantResponse, error)
}

// SweepRescreener rescreens every eligible merchant.
type SweepRescreener interface {
	Execute(ctx context.Context, req dto.RescreenAllRequest) (dto.RescreenAllResponse, error)
}

// RescreenHandler turns rescreen requests into use case calls.
type RescreenHandler struct {
	one    MerchantRescreener
	all    SweepRescreener
	logger *slog.Logger
}

// NewRescreenHandler creates a new RescreenHandler instance.
func NewRescreenHandler(one MerchantRescreener, all SweepRescreener, logger *slog.Logger) *RescreenHandler {
	return &RescreenHandler{one: one, all: all, logger: logger}
}

// Handle matches pkgkafka.Handler.
func (h *RescreenHandler) Handle(ctx context.Context, msg pkgkafka.Message) error {
	var req RescreenRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		return fmt.Errorf("%w: %v", errMalformedRequest, err)
	}

	if req.Scope == ScopeAll {
		resp, err := h.all.Execute(ctx, dto.RescreenAllRequest{PageSize: req.PageSize})
		if err != nil {
			return fmt.Errorf("rescreen sweep: %w", err)
		}
		h.logger.InfoContext(ctx, "rescreen sweep requested",
			slog.Int("processed", resp.Processed),
			slog.Int("matches", resp.Matches),
			slog.Int("failed", resp.Failed),
		)
		return nil
	}

	id, err := uuid.Parse(req.MerchantID)
	if err != nil {
		return fmt.Errorf("%w: merchant_id %q: %v", errMalformedRequest, req.MerchantID, err)
	}
	resp, err := h.one.Execute(ctx, dto.RescreenMerchantRequest{MerchantID: id})
	if err != nil {
		return fmt.Errorf("rescreen merchant %s: %w", id, err)
	}
	h.logger.InfoContext(ctx, "merchant rescreened on request",
		slog.String("merchant_id", id.String()),
		slog.String("screening", resp.ScreeningSummary),
	)
	return nil
}

// NewRescreenConsumer subscribes the handler to the rescreen-requests topic.
func NewRescreenConsumer(cfg pkgkafka.Config, topic string, h *RescreenHandler, logger *slog.Logger) (*pkgkafka.Consumer, error) {
	c, err := pkgkafka.NewConsumer(cfg, topic, h.Handle, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create rescreen consumer: %w", err)
	}
	return c, nil
}
