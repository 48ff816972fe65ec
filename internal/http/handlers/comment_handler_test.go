package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skatsaros/go-forms-backend/internal/domain"
	"github.com/skatsaros/go-forms-backend/internal/repo"
	"github.com/skatsaros/go-forms-backend/internal/services"
)

func commentRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.GET("/api/comments", h.ListComments)
	r.POST("/api/comments", h.CreateComment)
	r.GET("/api/comments/:id", h.GetComment)
	r.PUT("/api/comments/:id", h.UpdateComment)
	r.DELETE("/api/comments/:id", h.DeleteComment)
	r.POST("/api/comments/:id/like", h.LikeComment)
	r.DELETE("/api/comments/:id/like", h.UnlikeComment)
	r.GET("/api/comments/:id/responses", h.ListCommentResponses)
	r.POST("/api/comments/:id/responses", h.CreateCommentResponse)
	return r
}

func TestListComments_PassesFilterAndViewer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got repo.CommentFilter
	var viewer string
	svc := stubCommentSvc{
		list: func(ctx context.Context, f repo.CommentFilter, viewerID string) ([]repo.CommentWithStats, error) {
			got, viewer = f, viewerID
			return []repo.CommentWithStats{{Comment: domain.Comment{ID: "c1"}, LikeCount: 3}}, nil
		},
	}
	h := newHandlers(stubFormSvc{}, stubSubSvc{}, stubUploadSvc{}, svc)
	r := commentRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/comments?category=bug&status=open&priority=high&sort=priority", nil)
	req.Header.Set("X-User-ID", "viewer-1")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list -> %d", w.Code)
	}
	if got.Category != "bug" || got.Status != "open" || got.Priority != "high" || got.Sort != "priority" {
		t.Fatalf("filter = %+v", got)
	}
	if viewer != "viewer-1" {
		t.Fatalf("viewer = %q", viewer)
	}

	var out []repo.CommentWithStats
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	if len(out) != 1 || out[0].LikeCount != 3 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestListComments_DefaultSortNewest(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got repo.CommentFilter
	svc := stubCommentSvc{
		list: func(ctx context.Context, f repo.CommentFilter, viewerID string) ([]repo.CommentWithStats, error) {
			got = f
			return nil, nil
		},
	}
	h := newHandlers(stubFormSvc{}, stubSubSvc{}, stubUploadSvc{}, svc)
	r := commentRouter(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/comments", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list -> %d", w.Code)
	}
	if got.Sort != "newest" {
		t.Fatalf("default sort = %q", got.Sort)
	}
}

func TestCreateComment_Validation_And_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Validation -> 400 with code
	{
		svc := stubCommentSvc{
			create: func(ctx context.Context, u string, in services.CommentInput) (*domain.Comment, error) {
				return nil, &services.ValidationError{Code: services.CodeTitleRequired, Key: "validation.titleRequired"}
			},
		}
		h := newHandlers(stubFormSvc{}, stubSubSvc{}, stubUploadSvc{}, svc)
		r := commentRouter(h)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/comments", bytes.NewBufferString(`{"content":"x"}`))
		req.Header.Set("X-User-ID", "u1")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("create -> %d", w.Code)
		}
	}

	// Success -> 201
	{
		h := newHandlers(stubFormSvc{}, stubSubSvc{}, stubUploadSvc{}, stubCommentSvc{})
		r := commentRouter(h)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/comments", bytes.NewBufferString(`{"title":"Bug","content":"It breaks"}`))
		req.Header.Set("X-User-ID", "u1")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("create -> %d body=%s", w.Code, w.Body.String())
		}
		var out domain.Comment
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("json: %v", err)
		}
		if out.UserID != "u1" {
			t.Fatalf("unexpected comment: %#v", out)
		}
	}
}

func TestUpdateComment_404_Then_403(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Unknown comment -> 404
	{
		svc := stubCommentSvc{
			update: func(ctx context.Context, u, id string, in services.CommentInput) (*domain.Comment, error) {
				return nil, services.ErrCommentNotFound
			},
		}
		h := newHandlers(stubFormSvc{}, stubSubSvc{}, stubUploadSvc{}, svc)
		r := commentRouter(h)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/comments/nope", bytes.NewBufferString(`{"title":"X"}`))
		req.Header.Set("X-User-ID", "u1")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("update missing -> %d", w.Code)
		}
	}

	// Foreign comment -> 403
	{
		svc := stubCommentSvc{
			update: func(ctx context.Context, u, id string, in services.CommentInput) (*domain.Comment, error) {
				return nil, services.ErrNotCommentOwner
			},
		}
		h := newHandlers(stubFormSvc{}, stubSubSvc{}, stubUploadSvc{}, svc)
		r := commentRouter(h)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/api/comments/c1", bytes.NewBufferString(`{"title":"X"}`))
		req.Header.Set("X-User-ID", "intruder")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("update foreign -> %d", w.Code)
		}
	}
}

func TestDeleteComment_Statuses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusNoContent},
		{services.ErrCommentNotFound, http.StatusNotFound},
		{services.ErrNotCommentOwner, http.StatusForbidden},
	}
	for _, tc := range cases {
		svc := stubCommentSvc{
			del: func(ctx context.Context, u, id string) error { return tc.err },
		}
		h := newHandlers(stubFormSvc{}, stubSubSvc{}, stubUploadSvc{}, svc)
		r := commentRouter(h)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/comments/c1", nil)
		req.Header.Set("X-User-ID", "u1")
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("delete err=%v -> %d want %d", tc.err, w.Code, tc.want)
		}
	}
}

func TestLikeComment_Conflict_NotFound_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err  error
		want int
	}{
		{nil, http.StatusCreated},
		{services.ErrAlreadyLiked, http.StatusConflict},
		{services.ErrCommentNotFound, http.StatusNotFound},
	}
	for _, tc := range cases {
		svc := stubCommentSvc{
			like: func(ctx context.Context, u, id string) error { return tc.err },
		}
		h := newHandlers(stubFormSvc{}, stubSubSvc{}, stubUploadSvc{}, svc)
		r := commentRouter(h)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/comments/c1/like", nil)
		req.Header.Set("X-User-ID", "u1")
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("like err=%v -> %d want %d", tc.err, w.Code, tc.want)
		}
	}

	// Unlike is idempotent -> always 204
	h := newHandlers(stubFormSvc{}, stubSubSvc{}, stubUploadSvc{}, stubCommentSvc{})
	r := commentRouter(h)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/comments/c1/like", nil)
	req.Header.Set("X-User-ID", "u1")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("unlike -> %d", w.Code)
	}
}

func TestCommentResponses_Create_And_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Missing content -> 400
	{
		h := newHandlers(stubFormSvc{}, stubSubSvc{}, stubUploadSvc{}, stubCommentSvc{})
		r := commentRouter(h)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/comments/c1/responses", bytes.NewBufferString(`{}`))
		req.Header.Set("X-User-ID", "u1")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("respond empty -> %d", w.Code)
		}
	}

	// Unknown comment -> 404
	{
		svc := stubCommentSvc{
			respond: func(ctx context.Context, u, id, content string) (*domain.CommentResponse, error) {
				return nil, services.ErrCommentNotFound
			},
		}
		h := newHandlers(stubFormSvc{}, stubSubSvc{}, stubUploadSvc{}, svc)
		r := commentRouter(h)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/comments/nope/responses", bytes.NewBufferString(`{"content":"hi"}`))
		req.Header.Set("X-User-ID", "u1")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Fatalf("respond missing -> %d", w.Code)
		}
	}

	// Success -> 201 then list -> 200
	{
		svc := stubCommentSvc{
			listResponses: func(ctx context.Context, id string) ([]domain.CommentResponse, error) {
				return []domain.CommentResponse{{ID: "r1", CommentID: id, Content: "hi"}}, nil
			},
		}
		h := newHandlers(stubFormSvc{}, stubSubSvc{}, stubUploadSvc{}, svc)
		r := commentRouter(h)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/comments/c1/responses", bytes.NewBufferString(`{"content":"hi"}`))
		req.Header.Set("X-User-ID", "u1")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("respond -> %d", w.Code)
		}

		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/api/comments/c1/responses", nil)
		req.Header.Set("X-User-ID", "u1")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("list responses -> %d", w.Code)
		}
		var out []domain.CommentResponse
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("json: %v", err)
		}
		if len(out) != 1 || out[0].Content != "hi" {
			t.Fatalf("unexpected thread: %#v", out)
		}
	}
}
