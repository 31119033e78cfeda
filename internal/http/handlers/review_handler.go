// README: Review handlers: list, submit, like/dislike, reply, delete reply.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shirinfathima/voyabot/internal/http/middleware"
	"github.com/shirinfathima/voyabot/internal/modules/review"
)

type ReviewService interface {
	List(ctx context.Context) ([]review.Review, error)
	Submit(ctx context.Context, username, text string) (*review.Review, error)
	React(ctx context.Context, reviewID string, action review.Action) (*review.Review, error)
	Reply(ctx context.Context, username, reviewID, text string) (*review.Reply, error)
	DeleteReply(ctx context.Context, reviewID string, index int) error
}

type ReviewHandler struct {
	reviews ReviewService
}

func NewReviewHandler(svc ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: svc}
}

// reviewView is the wire form: hex id and an HTTP-date timestamp.
type reviewView struct {
	ID         string         `json:"_id"`
	Username   string         `json:"username"`
	ReviewText string         `json:"review_text"`
	Timestamp  string         `json:"timestamp"`
	Likes      int            `json:"likes"`
	Dislikes   int            `json:"dislikes"`
	Replies    []review.Reply `json:"replies"`
}

func toReviewView(r review.Review) reviewView {
	replies := r.Replies
	if replies == nil {
		replies = []review.Reply{}
	}
	return reviewView{
		ID:         r.ID.Hex(),
		Username:   r.Username,
		ReviewText: r.ReviewText,
		Timestamp:  r.Timestamp.UTC().Format(review.ReplyTimeLayout),
		Likes:      r.Likes,
		Dislikes:   r.Dislikes,
		Replies:    replies,
	}
}

// List handles GET /get_reviews.
func (h *ReviewHandler) List(c *gin.Context) {
	list, err := h.reviews.List(c.Request.Context())
	if err != nil {
		writeReviewError(c, err)
		return
	}
	out := make([]reviewView, 0, len(list))
	for _, r := range list {
		out = append(out, toReviewView(r))
	}
	writeJSON(c, http.StatusOK, out)
}

type submitReviewReq struct {
	ReviewText string `json:"review_text"`
}

// Submit handles POST /submit_review.
func (h *ReviewHandler) Submit(c *gin.Context) {
	var req submitReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if _, err := h.reviews.Submit(c.Request.Context(), middleware.CallerUsername(c), req.ReviewText); err != nil {
		writeReviewError(c, err)
		return
	}
	writeMessage(c, http.StatusCreated, "Review submitted successfully!")
}

type reactReq struct {
	ReviewID string `json:"review_id"`
	Action   string `json:"action"`
}

type reactResp struct {
	Message  string `json:"message"`
	ReviewID string `json:"review_id"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
}

// React handles POST /like_dislike_review.
func (h *ReviewHandler) React(c *gin.Context) {
	var req reactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "No data provided")
		return
	}
	r, err := h.reviews.React(c.Request.Context(), req.ReviewID, review.Action(req.Action))
	if err != nil {
		writeReviewError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, reactResp{
		Message:  "Review " + req.Action + "d successfully",
		ReviewID: r.ID.Hex(),
		Likes:    r.Likes,
		Dislikes: r.Dislikes,
	})
}

type replyReq struct {
	ReviewID  string `json:"review_id"`
	ReplyText string `json:"reply_text"`
}

type replyResp struct {
	Message string       `json:"message"`
	Reply   review.Reply `json:"reply"`
}

// Reply handles POST /reply_review.
func (h *ReviewHandler) Reply(c *gin.Context) {
	var req replyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "No data provided")
		return
	}
	reply, err := h.reviews.Reply(c.Request.Context(), middleware.CallerUsername(c), req.ReviewID, req.ReplyText)
	if err != nil {
		writeReviewError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, replyResp{Message: "Reply added successfully", Reply: *reply})
}

type deleteReplyReq struct {
	ReviewID   string `json:"review_id"`
	ReplyIndex *int   `json:"reply_index"`
}

// DeleteReply handles DELETE /delete_reply.
func (h *ReviewHandler) DeleteReply(c *gin.Context) {
	var req deleteReplyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "No data provided")
		return
	}
	if req.ReplyIndex == nil {
		writeReviewError(c, review.ErrReplyNotDeleted)
		return
	}
	if err := h.reviews.DeleteReply(c.Request.Context(), req.ReviewID, *req.ReplyIndex); err != nil {
		writeReviewError(c, err)
		return
	}
	writeMessage(c, http.StatusOK, "Reply deleted successfully")
}
