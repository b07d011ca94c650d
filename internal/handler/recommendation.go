package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfreview/internal/auth"
	"github.com/snnyvrz/shelfreview/internal/recommend"
	"go.uber.org/zap"
)

type Recommender interface {
	Recommend(ctx context.Context, userID string) ([]recommend.Recommendation, error)
}

type RecommendationHandler struct {
	recommender Recommender
	logger      *zap.Logger
}

func NewRecommendationHandler(recommender Recommender, logger *zap.Logger) *RecommendationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationHandler{recommender: recommender, logger: logger}
}

func (h *RecommendationHandler) RegisterRoutes(r *gin.RouterGroup, g Guards) {
	r.GET("/books/recommendations", g.protected(h.ListRecommendations)...)
}

// ListRecommendations godoc
// @Summary      Recommend books
// @Description  Up to five books for the caller. Without reviews the best rated books are returned; otherwise books rated 4+ by others that the caller has not liked.
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   RecommendationResponse
// @Failure      401  {object}  validation.ErrorResponse   "Unauthorized"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/recommendations [get]
func (h *RecommendationHandler) ListRecommendations(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	recs, err := h.recommender.Recommend(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("recommend books", zap.String("user_id", user.ID), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"RECOMMENDATION_FAILED",
			"failed to compute recommendations",
		)
		return
	}

	res := make([]RecommendationResponse, 0, len(recs))
	for _, r := range recs {
		res = append(res, RecommendationResponse{
			ID:              r.Book.ID,
			Title:           r.Book.Title,
			Author:          r.Book.Author,
			Description:     r.Book.Description,
			Rating:          r.Book.Rating,
			SimilarityScore: r.SimilarityScore,
		})
	}

	c.JSON(http.StatusOK, res)
}
