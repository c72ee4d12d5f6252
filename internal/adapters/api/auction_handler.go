package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/floroz/gavel-auctions/internal/domain/auctions"
	"github.com/floroz/gavel-auctions/internal/domain/images"
	"github.com/floroz/gavel-auctions/pkg/auth"
)

// AuctionService is the subset of auctions.Service the HTTP layer uses.
type AuctionService interface {
	Search(ctx context.Context, q auctions.SearchQuery) (*auctions.SearchResult, error)
	GetAuction(ctx context.Context, id int64) (*auctions.Auction, error)
	ListCategories(ctx context.Context) ([]*auctions.Category, error)
	CreateAuction(ctx context.Context, cmd auctions.CreateAuctionCommand) (*auctions.Auction, error)
	UpdateAuction(ctx context.Context, cmd auctions.UpdateAuctionCommand) (*auctions.Auction, error)
	DeleteAuction(ctx context.Context, cmd auctions.DeleteAuctionCommand) error
	GetAuctionImage(ctx context.Context, id int64) (*images.Image, error)
	SetAuctionImage(ctx context.Context, cmd auctions.SetImageCommand) (bool, error)
}

type AuctionHandler struct {
	svc    AuctionService
	logger *slog.Logger
}

func NewAuctionHandler(svc AuctionService, logger *slog.Logger) *AuctionHandler {
	return &AuctionHandler{svc: svc, logger: logger}
}

// Register mounts the auction routes. requireLogin guards the mutating ones.
func (h *AuctionHandler) Register(r gin.IRoutes, requireLogin gin.HandlerFunc) {
	r.GET("/auctions", h.search)
	r.GET("/auctions/categories", h.categories)
	r.GET("/auctions/:id", h.get)
	r.POST("/auctions", requireLogin, h.create)
	r.PATCH("/auctions/:id", requireLogin, h.update)
	r.DELETE("/auctions/:id", requireLogin, h.delete)
	r.GET("/auctions/:id/image", h.getImage)
	r.PUT("/auctions/:id/image", requireLogin, h.setImage)
}

func (h *AuctionHandler) search(c *gin.Context) {
	var q searchAuctionsQuery
	if err := bindQuery(c, &q, searchAuctionsParams...); err != nil {
		badRequest(c, "Invalid search parameters")
		return
	}

	result, err := h.svc.Search(c.Request.Context(), auctions.SearchQuery{
		Q:           q.Q,
		CategoryIDs: q.CategoryIDs,
		SellerID:    q.SellerID,
		BidderID:    q.BidderID,
		SortBy:      auctions.SortBy(q.SortBy),
		Count:       q.Count,
		StartIndex:  q.StartIndex,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toSearchResponse(result))
}

func (h *AuctionHandler) categories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toCategoryResponses(categories))
}

func (h *AuctionHandler) get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, "Invalid auction id")
		return
	}
	auction, err := h.svc.GetAuction(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toAuctionDetail(auction))
}

func (h *AuctionHandler) create(c *gin.Context) {
	var req createAuctionRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, "Invalid auction data")
		return
	}
	userID, _ := auth.GetUserID(c.Request.Context())

	auction, err := h.svc.CreateAuction(c.Request.Context(), auctions.CreateAuctionCommand{
		SellerID:    userID,
		Title:       req.Title,
		Description: req.Description,
		Reserve:     req.Reserve,
		CategoryID:  *req.CategoryID,
		EndDate:     req.EndDate.Time,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, toAuctionDetail(auction))
}

func (h *AuctionHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, "Invalid auction id")
		return
	}
	var req updateAuctionRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, "Invalid auction data")
		return
	}
	userID, _ := auth.GetUserID(c.Request.Context())

	patch := auctions.AuctionPatch{
		Title:       req.Title,
		Description: req.Description,
		Reserve:     req.Reserve,
		CategoryID:  req.CategoryID,
	}
	if req.EndDate != nil {
		patch.EndDate = &req.EndDate.Time
	}

	auction, err := h.svc.UpdateAuction(c.Request.Context(), auctions.UpdateAuctionCommand{
		AuctionID:   id,
		RequesterID: userID,
		Patch:       patch,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toAuctionDetail(auction))
}

func (h *AuctionHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, "Invalid auction id")
		return
	}
	userID, _ := auth.GetUserID(c.Request.Context())

	err := h.svc.DeleteAuction(c.Request.Context(), auctions.DeleteAuctionCommand{AuctionID: id, RequesterID: userID})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *AuctionHandler) getImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, "Invalid auction id")
		return
	}
	img, err := h.svc.GetAuctionImage(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Data(http.StatusOK, img.ContentType, img.Data)
}

func (h *AuctionHandler) setImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		badRequest(c, "Invalid auction id")
		return
	}
	data, ok, err := readImage(c)
	if err != nil {
		badRequest(c, "Invalid image")
		return
	}
	if !ok {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "Image too large"})
		return
	}
	userID, _ := auth.GetUserID(c.Request.Context())

	created, err := h.svc.SetAuctionImage(c.Request.Context(), auctions.SetImageCommand{
		AuctionID:   id,
		RequesterID: userID,
		ContentType: c.ContentType(),
		Data:        data,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(imageStatus(created))
}

func imageStatus(created bool) int {
	if created {
		return http.StatusCreated
	}
	return http.StatusOK
}
