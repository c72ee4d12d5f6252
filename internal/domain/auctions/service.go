package auctions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/floroz/gavel-auctions/internal/domain/images"
	"github.com/floroz/gavel-auctions/pkg/database"
	"github.com/floroz/gavel-auctions/pkg/events"
	"github.com/floroz/gavel-auctions/pkg/metrics"
)

// Service implements auction listing and the seller-side commands.
type Service struct {
	txManager    database.TransactionManager
	auctionRepo  AuctionRepository
	categoryRepo CategoryRepository
	outboxRepo   OutboxRepository
	imageStore   images.Store
	logger       *slog.Logger
	now          func() time.Time
}

// NewService creates a new auction service
func NewService(
	txManager database.TransactionManager,
	auctionRepo AuctionRepository,
	categoryRepo CategoryRepository,
	outboxRepo OutboxRepository,
	imageStore images.Store,
	logger *slog.Logger,
) *Service {
	return &Service{
		txManager:    txManager,
		auctionRepo:  auctionRepo,
		categoryRepo: categoryRepo,
		outboxRepo:   outboxRepo,
		imageStore:   imageStore,
		logger:       logger,
		now:          time.Now,
	}
}

// Search returns the page of auctions selected by q together with the total
// number of matching auctions.
func (s *Service) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	if q.SortBy == "" {
		q.SortBy = DefaultSort
	}
	if !q.SortBy.IsValid() {
		return nil, ErrInvalidSortBy
	}
	if q.StartIndex < 0 || (q.Count != nil && *q.Count < 0) {
		return nil, ErrInvalidInput
	}

	if len(q.CategoryIDs) > 0 {
		if err := s.ensureCategories(ctx, q.CategoryIDs...); err != nil {
			return nil, err
		}
	}

	found, err := s.auctionRepo.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search auctions: %w", err)
	}

	total, err := s.auctionRepo.CountMatching(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to count auctions: %w", err)
	}

	return &SearchResult{Count: total, Auctions: found}, nil
}

// GetAuction returns a single auction with its bid aggregates.
func (s *Service) GetAuction(ctx context.Context, id int64) (*Auction, error) {
	return s.auctionRepo.GetAuction(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateAuction validates the command and stores a new auction owned by the seller.
func (s *Service) CreateAuction(ctx context.Context, cmd CreateAuctionCommand) (*Auction, error) {
	title := strings.TrimSpace(cmd.Title)
	description := strings.TrimSpace(cmd.Description)
	if title == "" || description == "" {
		return nil, ErrInvalidInput
	}

	reserve := DefaultReserve
	if cmd.Reserve != nil {
		reserve = *cmd.Reserve
	}
	if reserve < 1 {
		return nil, ErrInvalidReserve
	}

	if !cmd.EndDate.After(s.now()) {
		return nil, ErrInvalidEndDate
	}

	if err := s.ensureCategories(ctx, cmd.CategoryID); err != nil {
		return nil, err
	}

	tx, err := s.txManager.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	auction := &Auction{
		Title:       title,
		Description: description,
		Reserve:     reserve,
		CategoryID:  cmd.CategoryID,
		SellerID:    cmd.SellerID,
		EndDate:     cmd.EndDate.UTC(),
	}
	if err := s.auctionRepo.CreateAuction(ctx, tx, auction); err != nil {
		return nil, fmt.Errorf("failed to create auction: %w", err)
	}

	event, err := events.NewOutboxEvent(events.EventTypeAuctionCreated, events.AuctionCreated{
		AuctionID:  auction.ID,
		SellerID:   auction.SellerID,
		CategoryID: auction.CategoryID,
		Title:      auction.Title,
		Reserve:    auction.Reserve,
		EndDate:    auction.EndDate,
	})
	if err != nil {
		return nil, err
	}
	if err := s.outboxRepo.SaveEvent(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("failed to save outbox event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.RecordAuctionMutation("create")
	s.logger.Info("Auction created", "auction_id", auction.ID, "seller_id", auction.SellerID)

	return s.auctionRepo.GetAuction(ctx, auction.ID)
}

// UpdateAuction applies a partial update. Only the seller may update, and
// only while the auction has no bids.
func (s *Service) UpdateAuction(ctx context.Context, cmd UpdateAuctionCommand) (*Auction, error) {
	tx, err := s.txManager.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	auction, err := s.auctionRepo.GetAuctionForUpdate(ctx, tx, cmd.AuctionID)
	if err != nil {
		return nil, err
	}
	if auction.IsLocked() {
		return nil, ErrAuctionLocked
	}
	if auction.SellerID != cmd.RequesterID {
		return nil, ErrNotSeller
	}

	if err := s.applyPatch(ctx, auction, cmd.Patch); err != nil {
		return nil, err
	}
	// ownership never transfers through an update
	auction.SellerID = cmd.RequesterID

	if err := s.auctionRepo.UpdateAuction(ctx, tx, auction); err != nil {
		return nil, fmt.Errorf("failed to update auction: %w", err)
	}

	event, err := events.NewOutboxEvent(events.EventTypeAuctionUpdated, events.AuctionUpdated{
		AuctionID:  auction.ID,
		SellerID:   auction.SellerID,
		CategoryID: auction.CategoryID,
		Title:      auction.Title,
		Reserve:    auction.Reserve,
		EndDate:    auction.EndDate,
	})
	if err != nil {
		return nil, err
	}
	if err := s.outboxRepo.SaveEvent(ctx, tx, event); err != nil {
		return nil, fmt.Errorf("failed to save outbox event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.RecordAuctionMutation("update")
	s.logger.Info("Auction updated", "auction_id", auction.ID)

	return s.auctionRepo.GetAuction(ctx, auction.ID)
}

func (s *Service) applyPatch(ctx context.Context, auction *Auction, patch AuctionPatch) error {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return ErrInvalidInput
		}
		auction.Title = title
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return ErrInvalidInput
		}
		auction.Description = description
	}
	if patch.Reserve != nil {
		if *patch.Reserve < 1 {
			return ErrInvalidReserve
		}
		auction.Reserve = *patch.Reserve
	}
	if patch.EndDate != nil {
		if !patch.EndDate.After(s.now()) {
			return ErrInvalidEndDate
		}
		auction.EndDate = patch.EndDate.UTC()
	}
	if patch.CategoryID != nil {
		if err := s.ensureCategories(ctx, *patch.CategoryID); err != nil {
			return err
		}
		auction.CategoryID = *patch.CategoryID
	}
	return nil
}

// DeleteAuction removes an auction that has no bids. The stored image, if
// any, is removed once the deletion has committed.
func (s *Service) DeleteAuction(ctx context.Context, cmd DeleteAuctionCommand) error {
	tx, err := s.txManager.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	auction, err := s.auctionRepo.GetAuctionForUpdate(ctx, tx, cmd.AuctionID)
	if err != nil {
		return err
	}
	if auction.SellerID != cmd.RequesterID {
		return ErrNotSeller
	}
	if auction.IsLocked() {
		return ErrAuctionLocked
	}

	if err := s.auctionRepo.DeleteAuction(ctx, tx, auction.ID); err != nil {
		return fmt.Errorf("failed to delete auction: %w", err)
	}

	event, err := events.NewOutboxEvent(events.EventTypeAuctionDeleted, events.AuctionDeleted{
		AuctionID: auction.ID,
		SellerID:  auction.SellerID,
	})
	if err != nil {
		return err
	}
	if err := s.outboxRepo.SaveEvent(ctx, tx, event); err != nil {
		return fmt.Errorf("failed to save outbox event: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.RecordAuctionMutation("delete")
	s.logger.Info("Auction deleted", "auction_id", auction.ID)

	if auction.ImageFilename != nil {
		s.removeImage(ctx, *auction.ImageFilename)
	}
	return nil
}

// GetAuctionImage returns images.ErrImageNotFound when the auction has no image.
func (s *Service) GetAuctionImage(ctx context.Context, id int64) (*images.Image, error) {
	auction, err := s.auctionRepo.GetAuction(ctx, id)
	if err != nil {
		return nil, err
	}
	if auction.ImageFilename == nil {
		return nil, images.ErrImageNotFound
	}
	return images.Load(ctx, s.imageStore, *auction.ImageFilename)
}

// SetAuctionImage stores the seller's image for the auction and reports
// whether the auction had no image before.
func (s *Service) SetAuctionImage(ctx context.Context, cmd SetImageCommand) (bool, error) {
	ext, err := images.ExtensionForContentType(cmd.ContentType)
	if err != nil {
		return false, err
	}
	if len(cmd.Data) == 0 {
		return false, ErrInvalidInput
	}

	tx, err := s.txManager.BeginTx(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	auction, err := s.auctionRepo.GetAuctionForUpdate(ctx, tx, cmd.AuctionID)
	if err != nil {
		return false, err
	}
	if auction.SellerID != cmd.RequesterID {
		return false, ErrNotSeller
	}
	if auction.IsLocked() {
		return false, ErrAuctionLocked
	}

	filename := fmt.Sprintf("auction_%d.%s", auction.ID, ext)
	if err := s.imageStore.Put(ctx, filename, cmd.Data); err != nil {
		return false, fmt.Errorf("failed to store image: %w", err)
	}
	if err := s.auctionRepo.SetImageFilename(ctx, tx, auction.ID, &filename); err != nil {
		return false, fmt.Errorf("failed to set image filename: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	previous := auction.ImageFilename
	if previous != nil && *previous != filename {
		s.removeImage(ctx, *previous)
	}
	return previous == nil, nil
}

func (s *Service) removeImage(ctx context.Context, filename string) {
	if err := s.imageStore.Delete(ctx, filename); err != nil && !errors.Is(err, images.ErrImageNotFound) {
		s.logger.Error("Failed to remove auction image", "filename", filename, "error", err)
	}
}

func (s *Service) ensureCategories(ctx context.Context, ids ...int64) error {
	ok, err := s.categoryRepo.CategoriesExist(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to check categories: %w", err)
	}
	if !ok {
		return ErrUnknownCategory
	}
	return nil
}
