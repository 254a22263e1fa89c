package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/realtime"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	ErrOwnBook        = errors.New("cannot request your own book")
	ErrNotReceiver    = errors.New("only the request receiver can decide it")
	ErrAlreadyDecided = errors.New("request already decided")
)

// ExchangeService handles book-exchange requests. The book owner is
// notified when a request arrives; the sender is notified when it is
// accepted.
type ExchangeService struct {
	repo   *repository.ExchangeRepo
	books  *repository.BookRepo
	users  *repository.UserRepo
	notifs *NotificationService
}

func NewExchangeService(repo *repository.ExchangeRepo, books *repository.BookRepo, users *repository.UserRepo, notifs *NotificationService) *ExchangeService {
	return &ExchangeService{repo: repo, books: books, users: users, notifs: notifs}
}

// Send files an exchange request for a book and notifies its owner.
func (s *ExchangeService) Send(ctx context.Context, senderID, bookID uuid.UUID) (*models.ExchangeRequest, error) {
	book, err := s.books.Get(bookID)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	if book.OwnerID == senderID {
		return nil, ErrOwnBook
	}

	req := &models.ExchangeRequest{
		ID:         uuid.New(),
		BookID:     bookID,
		SenderID:   senderID,
		ReceiverID: book.OwnerID,
		Status:     models.ExchangeStatusPending,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Create(req); err != nil {
		return nil, fmt.Errorf("create exchange request: %w", err)
	}

	sender, err := s.users.Get(senderID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("sender lookup failed, skipping notification")
		return req, nil
	}
	if err := s.notifs.Notify(ctx, book.OwnerID, realtime.TypeExchangeRequestSent,
		fmt.Sprintf("%s wants to exchange %q", sender.DisplayName, book.Title), sender, &req.ID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("exchange request notification failed")
	}
	return req, nil
}

// Accept marks the request accepted and notifies its sender.
func (s *ExchangeService) Accept(ctx context.Context, ownerID, requestID uuid.UUID) error {
	return s.decide(ctx, ownerID, requestID, models.ExchangeStatusAccepted,
		realtime.TypeExchangeRequestAccepted, "Your exchange request was accepted")
}

// Reject marks the request rejected. The original flow raises no
// notification for rejection; the sender sees it in their request list.
func (s *ExchangeService) Reject(ctx context.Context, ownerID, requestID uuid.UUID) error {
	return s.decide(ctx, ownerID, requestID, models.ExchangeStatusRejected, "", "")
}

// ListForUser retrieves the user's sent and received requests.
func (s *ExchangeService) ListForUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ExchangeRequest, error) {
	reqs, err := s.repo.ListForUser(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list exchange requests: %w", err)
	}
	return reqs, nil
}

func (s *ExchangeService) decide(ctx context.Context, ownerID, requestID uuid.UUID, status string, typ realtime.NotificationType, message string) error {
	req, err := s.repo.Get(requestID)
	if err != nil {
		return fmt.Errorf("get exchange request: %w", err)
	}
	if req.ReceiverID != ownerID {
		return ErrNotReceiver
	}
	if req.Status != models.ExchangeStatusPending {
		return ErrAlreadyDecided
	}

	req.Status = status
	req.UpdatedAt = time.Now()
	if err := s.repo.Save(req); err != nil {
		return fmt.Errorf("save exchange request: %w", err)
	}

	if typ == "" {
		return nil
	}
	owner, err := s.users.Get(ownerID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("owner lookup failed, skipping notification")
		return nil
	}
	if err := s.notifs.Notify(ctx, req.SenderID, typ, message, owner, &req.ID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("exchange decision notification failed")
	}
	return nil
}
