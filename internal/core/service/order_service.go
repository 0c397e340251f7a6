package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aiqb/preorder-system/internal/api/metrics"
	"github.com/aiqb/preorder-system/internal/core/domain"
	"github.com/aiqb/preorder-system/internal/core/ports"
)

const maxListLimit = 100

type OrderService struct {
	repo      ports.OrderRepository
	remote    ports.RemoteData
	snapshots ports.SnapshotService
	notifier  ports.Notifier
	logger    zerolog.Logger
	now       func() time.Time
}

func NewOrderService(
	repo ports.OrderRepository,
	remote ports.RemoteData,
	snapshots ports.SnapshotService,
	notifier ports.Notifier,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		repo:      repo,
		remote:    remote,
		snapshots: snapshots,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// Submit runs the submission pipeline: validate, construct, persist remote
// best-effort, persist local unconditionally, clear the form snapshot.
//
// The remote write is attempted exactly once and its failure is deliberately
// invisible to the buyer: the order is captured locally and reported as a
// success either way. The reconciler pushes captured orders remote later.
func (s *OrderService) Submit(ctx context.Context, in ports.SubmitOrderInput) (*ports.OrderConfirmation, error) {
	if verr := validateSubmission(in); verr != nil {
		metrics.ValidationFailuresTotal.WithLabelValues(verr.Field).Inc()
		s.notifier.Push(in.ClientID, domain.ToastError, "", verr.Message, 0)
		return nil, verr
	}

	if in.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, in.IdempotencyKey)
		if err == nil && existing != nil {
			s.logger.Info().
				Str("idempotency_key", in.IdempotencyKey).
				Str("order_id", existing.OrderID).
				Msg("idempotent replay")
			conf := confirmationFrom(existing)
			conf.AlreadyExisted = true
			return conf, nil
		}
	}

	now := s.now().UTC()
	order := &domain.Order{
		OrderID:        domain.NewOrderID(now),
		ClientID:       in.ClientID,
		UserID:         in.UserID,
		FullName:       in.FullName,
		Email:          in.Email,
		Phone:          in.Phone,
		Size:           in.Size,
		LiningColor:    in.LiningColor,
		Address:        in.Address,
		City:           in.City,
		Landmark:       in.Landmark,
		PaymentMethod:  in.PaymentMethod,
		AmountNPR:      domain.AmountNPR,
		CreatedAt:      now,
		SyncStatus:     domain.SyncCaptured,
		IdempotencyKey: in.IdempotencyKey,
	}

	// Tier one: remote backend, best effort, one attempt, no retry.
	if record, err := s.remote.CreateOrder(ctx, order); err != nil {
		metrics.RemoteWriteFailuresTotal.WithLabelValues("create_order").Inc()
		s.logger.Warn().Err(err).Str("order_id", order.OrderID).Msg("remote order write failed, capturing locally")
	} else {
		order.SyncStatus = domain.SyncSynced
		order.RemoteID = record.ID
		syncedAt := now
		order.SyncedAt = &syncedAt
	}

	// Tier two: local fallback, unconditional. This write is the durable
	// record; its failure is the only one that aborts the submission.
	if err := s.repo.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("order_id", order.OrderID).Msg("failed to capture order")
		return nil, fmt.Errorf("capture order: %w", err)
	}

	if err := s.snapshots.Clear(ctx, in.ClientID); err != nil {
		s.logger.Warn().Err(err).Str("client_id", in.ClientID).Msg("failed to clear form snapshot")
	}

	metrics.OrdersSubmittedTotal.WithLabelValues(order.PaymentMethod).Inc()
	s.notifier.Push(in.ClientID, domain.ToastSuccess, "", "Order placed successfully!", 0)
	s.logger.Info().
		Str("order_id", order.OrderID).
		Str("sync_status", string(order.SyncStatus)).
		Str("payment_method", order.PaymentMethod).
		Msg("order submitted")

	return confirmationFrom(order), nil
}

// GetConfirmation retrieves a submitted order scoped to the submitting client.
func (s *OrderService) GetConfirmation(ctx context.Context, clientID, orderID string) (*ports.OrderConfirmation, error) {
	order, err := s.repo.FindByOrderID(ctx, orderID, clientID)
	if err != nil {
		return nil, err
	}
	return confirmationFrom(order), nil
}

// ListOrders is the staff view over the local tier.
func (s *OrderService) ListOrders(ctx context.Context, in ports.ListOrdersInput) (*ports.ListOrdersResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	orders, total, err := s.repo.List(ctx, ports.ListOrdersFilter{
		SyncStatus:    in.SyncStatus,
		Size:          in.Size,
		PaymentMethod: in.PaymentMethod,
		Search:        in.Search,
		DateFrom:      in.DateFrom,
		DateTo:        in.DateTo,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]ports.OrderSummary, 0, len(orders))
	for _, o := range orders {
		items = append(items, ports.OrderSummary{
			OrderID:       o.OrderID,
			FullName:      o.FullName,
			Email:         o.Email,
			Phone:         o.Phone,
			Size:          o.Size,
			LiningColor:   o.LiningColor,
			PaymentMethod: o.PaymentMethod,
			AmountNPR:     o.AmountNPR,
			SyncStatus:    string(o.SyncStatus),
			CreatedAt:     o.CreatedAt,
		})
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListOrdersResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// validateSubmission applies the form rules in order and stops at the first
// failure. An order must never be constructed unless every rule passed.
func validateSubmission(in ports.SubmitOrderInput) *domain.ValidationError {
	if len(strings.TrimSpace(in.FullName)) < 2 {
		return &domain.ValidationError{Field: "full_name", Message: "Please enter your full name"}
	}
	if !domain.ValidPhone(in.Phone) {
		return &domain.ValidationError{Field: "phone", Message: "Please enter a valid Nepali phone number"}
	}
	if !domain.ValidEmail(in.Email) {
		return &domain.ValidationError{Field: "email", Message: "Please enter a valid email"}
	}
	if in.Size == "" {
		return &domain.ValidationError{Field: "size", Message: "Please select a size"}
	}
	if in.LiningColor == "" {
		return &domain.ValidationError{Field: "lining_color", Message: "Please select a lining color"}
	}
	if in.PaymentMethod == "" {
		return &domain.ValidationError{Field: "payment_method", Message: "Please select a payment method"}
	}
	return nil
}

func confirmationFrom(o *domain.Order) *ports.OrderConfirmation {
	return &ports.OrderConfirmation{
		OrderID:       o.OrderID,
		FullName:      o.FullName,
		Size:          o.Size,
		AmountNPR:     o.AmountNPR,
		PaymentMethod: strings.ToUpper(o.PaymentMethod),
		Email:         o.Email,
		Phone:         o.Phone,
		CreatedAt:     o.CreatedAt,
	}
}
