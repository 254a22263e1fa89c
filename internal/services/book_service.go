package services

import (
	"context"
	"fmt"
	"time"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/realtime"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// BookService manages the catalogue. Adding a book announces it to every
// connected user except the one who added it.
type BookService struct {
	repo   *repository.BookRepo
	users  *repository.UserRepo
	notifs *NotificationService
}

func NewBookService(repo *repository.BookRepo, users *repository.UserRepo, notifs *NotificationService) *BookService {
	return &BookService{repo: repo, users: users, notifs: notifs}
}

// AddBook stores the book and broadcasts BookAdded to the all-users group.
func (s *BookService) AddBook(ctx context.Context, ownerID uuid.UUID, book *models.Book) (*models.Book, error) {
	book.ID = uuid.New()
	book.OwnerID = ownerID
	book.CreatedAt = time.Now()
	if err := s.repo.Create(book); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("owner_id", ownerID.String()).Msg("Failed to create book")
		return nil, fmt.Errorf("create book: %w", err)
	}

	owner, err := s.users.Get(ownerID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("owner lookup failed, skipping broadcast")
		return book, nil
	}
	s.notifs.NotifyGroup(realtime.GroupAllUsers, realtime.TypeBookAdded,
		fmt.Sprintf("%s added a new book: %s", owner.DisplayName, book.Title), owner, &book.ID)
	return book, nil
}

// Get fetches one book.
func (s *BookService) Get(ctx context.Context, bookID uuid.UUID) (*models.Book, error) {
	book, err := s.repo.Get(bookID)
	if err != nil {
		return nil, fmt.Errorf("get book: %w", err)
	}
	return book, nil
}

// List retrieves the catalogue page.
func (s *BookService) List(ctx context.Context, limit, offset int) ([]models.Book, error) {
	books, err := s.repo.List(limit, offset)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to list books")
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}
