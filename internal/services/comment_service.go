// Package services – CommentService
//
// This file implements the community comment board: threaded comments with
// categories, priorities, and workflow status, plus likes and responses.
// Listings are memoised in a short-lived in-process cache keyed by the full
// filter combination and the viewing user; every write invalidates it so
// readers see their own actions immediately.
package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/skatsaros/go-forms-backend/internal/cache"
	"github.com/skatsaros/go-forms-backend/internal/domain"
	"github.com/skatsaros/go-forms-backend/internal/repo"
)

// CommentInput carries the writable comment fields for create and update.
// Nil pointers on update mean "leave unchanged".
type CommentInput struct {
	Title    *string
	Content  *string
	Category *string
	Priority *string
	Status   *string
}

// CommentService provides the board use-cases. All reads are open to any
// authenticated user; writes to a comment are restricted to its author.
type CommentService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Listings caches assembled board listings per filter+viewer.
	Listings *cache.TTL[[]repo.CommentWithStats]

	// TitleMaxLen caps comment titles by rune length.
	TitleMaxLen int
	// ContentMinLen / ContentMaxLen bound comment bodies by rune length.
	ContentMinLen int
	ContentMaxLen int
}

// NewCommentService constructs a CommentService with the given listing cache
// TTL.
func NewCommentService(db *gorm.DB, listingTTL time.Duration) *CommentService {
	return &CommentService{
		DB:            db,
		Listings:      cache.New[[]repo.CommentWithStats](listingTTL),
		TitleMaxLen:   200,
		ContentMinLen: 10,
		ContentMaxLen: 2000,
	}
}

var (
	validCategories = map[string]struct{}{
		domain.CategoryGeneral:     {},
		domain.CategoryBug:         {},
		domain.CategoryFeature:     {},
		domain.CategoryImprovement: {},
		domain.CategoryQuestion:    {},
	}
	validPriorities = map[string]struct{}{
		domain.PriorityLow:    {},
		domain.PriorityMedium: {},
		domain.PriorityHigh:   {},
		domain.PriorityUrgent: {},
	}
	validStatuses = map[string]struct{}{
		domain.StatusOpen:       {},
		domain.StatusInProgress: {},
		domain.StatusResolved:   {},
		domain.StatusClosed:     {},
	}
)

// Create validates and persists a new comment. Category defaults to general
// and priority to medium; status always starts open.
func (s *CommentService) Create(ctx context.Context, userID string, in CommentInput) (*domain.Comment, error) {
	title := strings.TrimSpace(deref(in.Title))
	if title == "" {
		return nil, &ValidationError{Code: CodeTitleRequired, Key: "validation.titleRequired"}
	}
	if utf8.RuneCountInString(title) > s.TitleMaxLen {
		return nil, &ValidationError{Code: CodeTitleTooLong, Key: "validation.titleTooLong"}
	}
	content := strings.TrimSpace(deref(in.Content))
	if err := s.validateContent(content); err != nil {
		return nil, err
	}

	category := deref(in.Category)
	if category == "" {
		category = domain.CategoryGeneral
	}
	priority := deref(in.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if _, ok := validCategories[category]; !ok {
		return nil, &ValidationError{Code: CodeFieldTypeInvalid, Key: "validation.generic"}
	}
	if _, ok := validPriorities[priority]; !ok {
		return nil, &ValidationError{Code: CodeFieldTypeInvalid, Key: "validation.generic"}
	}

	c, err := repo.CreateComment(ctx, s.DB, userID, title, content, category, priority)
	if err != nil {
		return nil, err
	}
	s.Listings.Invalidate()
	return c, nil
}

// List returns the board filtered and sorted for viewerID, with like and
// response statistics attached. Results come from the cache when a fresh
// entry exists for the same filter and viewer.
func (s *CommentService) List(ctx context.Context, f repo.CommentFilter, viewerID string) ([]repo.CommentWithStats, error) {
	key := listingKey(f, viewerID)
	if cached, ok := s.Listings.Get(key); ok {
		return cached, nil
	}

	out, err := repo.ListCommentsWithStats(ctx, s.DB, f, viewerID)
	if err != nil {
		// Aggregate join failed; assemble the listing row by row instead
		// of failing the request.
		log.Warn().Err(err).Msg("aggregate listing failed, using per-comment fallback")
		out, err = s.listFallback(ctx, f, viewerID)
		if err != nil {
			return nil, err
		}
	}

	s.Listings.Set(key, out)
	return out, nil
}

// Get returns one comment with its statistics for viewerID.
func (s *CommentService) Get(ctx context.Context, commentID, viewerID string) (*repo.CommentWithStats, error) {
	c, err := repo.GetComment(ctx, s.DB, commentID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	st, err := s.stats(ctx, commentID, viewerID)
	if err != nil {
		return nil, err
	}
	return &repo.CommentWithStats{
		Comment:       *c,
		LikeCount:     st.LikeCount,
		ResponseCount: st.ResponseCount,
		IsLikedByUser: st.IsLikedByUser,
	}, nil
}

// Update applies the provided fields to an owned comment. A missing comment
// is reported before ownership, so probing cannot distinguish "not yours"
// from "never existed" by reordering.
func (s *CommentService) Update(ctx context.Context, userID, commentID string, in CommentInput) (*domain.Comment, error) {
	existing, err := repo.GetComment(ctx, s.DB, commentID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if existing.UserID != userID {
		return nil, ErrNotCommentOwner
	}

	patch := map[string]any{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, &ValidationError{Code: CodeTitleRequired, Key: "validation.titleRequired"}
		}
		if utf8.RuneCountInString(title) > s.TitleMaxLen {
			return nil, &ValidationError{Code: CodeTitleTooLong, Key: "validation.titleTooLong"}
		}
		patch["title"] = title
	}
	if in.Content != nil {
		content := strings.TrimSpace(*in.Content)
		if err := s.validateContent(content); err != nil {
			return nil, err
		}
		patch["content"] = content
	}
	if in.Category != nil {
		if _, ok := validCategories[*in.Category]; !ok {
			return nil, &ValidationError{Code: CodeFieldTypeInvalid, Key: "validation.generic"}
		}
		patch["category"] = *in.Category
	}
	if in.Priority != nil {
		if _, ok := validPriorities[*in.Priority]; !ok {
			return nil, &ValidationError{Code: CodeFieldTypeInvalid, Key: "validation.generic"}
		}
		patch["priority"] = *in.Priority
	}
	if in.Status != nil {
		if _, ok := validStatuses[*in.Status]; !ok {
			return nil, &ValidationError{Code: CodeFieldTypeInvalid, Key: "validation.generic"}
		}
		patch["status"] = *in.Status
	}
	if len(patch) == 0 {
		return existing, nil
	}

	updated, err := repo.UpdateComment(ctx, s.DB, commentID, patch)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	s.Listings.Invalidate()
	return updated, nil
}

// Delete removes an owned comment along with its likes and responses.
func (s *CommentService) Delete(ctx context.Context, userID, commentID string) error {
	existing, err := repo.GetComment(ctx, s.DB, commentID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if existing.UserID != userID {
		return ErrNotCommentOwner
	}
	if err := repo.DeleteComment(ctx, s.DB, commentID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	s.Listings.Invalidate()
	return nil
}

// Like records userID's like on a comment. Liking twice yields
// ErrAlreadyLiked; liking a missing comment yields ErrCommentNotFound.
func (s *CommentService) Like(ctx context.Context, userID, commentID string) error {
	if _, err := repo.CreateLike(ctx, s.DB, commentID, userID); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return ErrAlreadyLiked
		case errors.Is(err, repo.ErrNotFound):
			return ErrCommentNotFound
		default:
			return err
		}
	}
	s.Listings.Invalidate()
	return nil
}

// Unlike removes userID's like. Unliking something never liked is a no-op.
func (s *CommentService) Unlike(ctx context.Context, userID, commentID string) error {
	if err := repo.DeleteLike(ctx, s.DB, commentID, userID); err != nil {
		return err
	}
	s.Listings.Invalidate()
	return nil
}

// Respond appends a response to a comment's thread.
func (s *CommentService) Respond(ctx context.Context, userID, commentID, content string) (*domain.CommentResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &ValidationError{Code: CodeFieldsRequired, Key: "validation.generic"}
	}
	if _, err := repo.GetComment(ctx, s.DB, commentID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	r, err := repo.CreateResponse(ctx, s.DB, commentID, userID, content)
	if err != nil {
		return nil, err
	}
	s.Listings.Invalidate()
	return r, nil
}

// ListResponses returns a comment's thread, oldest first.
func (s *CommentService) ListResponses(ctx context.Context, commentID string) ([]domain.CommentResponse, error) {
	if _, err := repo.GetComment(ctx, s.DB, commentID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return repo.ListResponses(ctx, s.DB, commentID)
}

// stats loads the aggregate numbers for one comment, preferring the single
// round-trip query and falling back to three concurrent counts.
func (s *CommentService) stats(ctx context.Context, commentID, viewerID string) (*repo.CommentStats, error) {
	if st, err := repo.GetCommentStats(ctx, s.DB, commentID, viewerID); err == nil {
		return st, nil
	}

	var (
		wg    sync.WaitGroup
		st    repo.CommentStats
		errMu sync.Mutex
		first error
	)
	record := func(err error) {
		if err == nil {
			return
		}
		errMu.Lock()
		if first == nil {
			first = err
		}
		errMu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		n, err := repo.CountLikes(ctx, s.DB, commentID)
		st.LikeCount = n
		record(err)
	}()
	go func() {
		defer wg.Done()
		n, err := repo.CountResponses(ctx, s.DB, commentID)
		st.ResponseCount = n
		record(err)
	}()
	go func() {
		defer wg.Done()
		liked, err := repo.HasLiked(ctx, s.DB, commentID, viewerID)
		st.IsLikedByUser = liked
		record(err)
	}()
	wg.Wait()

	if first != nil {
		return nil, first
	}
	return &st, nil
}

// listFallback rebuilds a listing without the aggregate join.
func (s *CommentService) listFallback(ctx context.Context, f repo.CommentFilter, viewerID string) ([]repo.CommentWithStats, error) {
	comments, err := repo.ListComments(ctx, s.DB, f)
	if err != nil {
		return nil, err
	}
	out := make([]repo.CommentWithStats, 0, len(comments))
	for _, c := range comments {
		st, err := s.stats(ctx, c.ID, viewerID)
		if err != nil {
			return nil, err
		}
		out = append(out, repo.CommentWithStats{
			Comment:       c,
			LikeCount:     st.LikeCount,
			ResponseCount: st.ResponseCount,
			IsLikedByUser: st.IsLikedByUser,
		})
	}
	return out, nil
}

// validateContent enforces the board's content bounds on an already-trimmed
// body. An empty body reports the required-field code rather than the
// too-short one.
func (s *CommentService) validateContent(content string) error {
	switch n := utf8.RuneCountInString(content); {
	case n == 0:
		return &ValidationError{Code: CodeFieldsRequired, Key: "validation.generic"}
	case n < s.ContentMinLen:
		return &ValidationError{Code: CodeContentTooShort, Key: "validation.contentTooShort"}
	case n > s.ContentMaxLen:
		return &ValidationError{Code: CodeContentTooLong, Key: "validation.contentTooLong"}
	}
	return nil
}

// listingKey builds the cache key for one filter+viewer combination.
func listingKey(f repo.CommentFilter, viewerID string) string {
	return strings.Join([]string{f.Category, f.Status, f.Priority, f.UserID, f.Sort, viewerID}, "|")
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
