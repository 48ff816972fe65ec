package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skatsaros/go-forms-backend/internal/domain"
)

func TestCreateComment_DefaultsToOpen(t *testing.T) {
	db := newTestDB(t)
	c, err := CreateComment(context.Background(), db, "u1", "T", "0123456789", domain.CategoryBug, domain.PriorityHigh)
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	if c.Status != domain.StatusOpen {
		t.Fatalf("status = %q, want open", c.Status)
	}
	got, err := GetComment(context.Background(), db, c.ID)
	if err != nil {
		t.Fatalf("GetComment: %v", err)
	}
	if got.Title != "T" || got.Category != domain.CategoryBug || got.Priority != domain.PriorityHigh {
		t.Fatalf("round-trip mismatch: %+v", got)
	}
}

func TestListComments_FiltersAndSorts(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	mk := func(user, title, cat, prio string) {
		if _, err := CreateComment(ctx, db, user, title, "content content", cat, prio); err != nil {
			t.Fatalf("CreateComment: %v", err)
		}
		time.Sleep(2 * time.Millisecond) // distinct created_at for sort assertions
	}
	mk("u1", "a", domain.CategoryBug, domain.PriorityLow)
	mk("u2", "b", domain.CategoryFeature, domain.PriorityUrgent)
	mk("u1", "c", domain.CategoryBug, domain.PriorityHigh)

	t.Run("category filter", func(t *testing.T) {
		out, err := ListComments(ctx, db, CommentFilter{Category: domain.CategoryBug})
		if err != nil {
			t.Fatalf("ListComments: %v", err)
		}
		if len(out) != 2 {
			t.Fatalf("expected 2 bug comments, got %d", len(out))
		}
	})

	t.Run("all means no filter", func(t *testing.T) {
		out, err := ListComments(ctx, db, CommentFilter{Category: "all", Status: "all", Priority: "all"})
		if err != nil {
			t.Fatalf("ListComments: %v", err)
		}
		if len(out) != 3 {
			t.Fatalf("expected 3 comments, got %d", len(out))
		}
	})

	t.Run("user filter", func(t *testing.T) {
		out, err := ListComments(ctx, db, CommentFilter{UserID: "u2"})
		if err != nil {
			t.Fatalf("ListComments: %v", err)
		}
		if len(out) != 1 || out[0].Title != "b" {
			t.Fatalf("expected only u2's comment, got %+v", out)
		}
	})

	t.Run("newest is default", func(t *testing.T) {
		out, err := ListComments(ctx, db, CommentFilter{})
		if err != nil {
			t.Fatalf("ListComments: %v", err)
		}
		if out[0].Title != "c" {
			t.Fatalf("expected newest first, got %q", out[0].Title)
		}
	})

	t.Run("oldest", func(t *testing.T) {
		out, err := ListComments(ctx, db, CommentFilter{Sort: "oldest"})
		if err != nil {
			t.Fatalf("ListComments: %v", err)
		}
		if out[0].Title != "a" {
			t.Fatalf("expected oldest first, got %q", out[0].Title)
		}
	})

	t.Run("priority ranks urgent first", func(t *testing.T) {
		out, err := ListComments(ctx, db, CommentFilter{Sort: "priority"})
		if err != nil {
			t.Fatalf("ListComments: %v", err)
		}
		if out[0].Priority != domain.PriorityUrgent || out[1].Priority != domain.PriorityHigh {
			t.Fatalf("priority order wrong: %q, %q", out[0].Priority, out[1].Priority)
		}
	})
}

func TestListCommentsWithStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c, err := CreateComment(ctx, db, "author", "liked one", "content content", domain.CategoryGeneral, domain.PriorityMedium)
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}
	other, err := CreateComment(ctx, db, "author", "plain one", "content content", domain.CategoryGeneral, domain.PriorityMedium)
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if _, err := CreateLike(ctx, db, c.ID, "viewer"); err != nil {
		t.Fatalf("CreateLike: %v", err)
	}
	if _, err := CreateLike(ctx, db, c.ID, "somebody"); err != nil {
		t.Fatalf("CreateLike: %v", err)
	}
	if _, err := CreateResponse(ctx, db, c.ID, "somebody", "a reply"); err != nil {
		t.Fatalf("CreateResponse: %v", err)
	}

	out, err := ListCommentsWithStats(ctx, db, CommentFilter{Sort: "oldest"}, "viewer")
	if err != nil {
		t.Fatalf("ListCommentsWithStats: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	liked := out[0]
	if liked.ID != c.ID {
		t.Fatalf("expected oldest (liked) comment first")
	}
	if liked.LikeCount != 2 || liked.ResponseCount != 1 || !liked.IsLikedByUser {
		t.Fatalf("stats wrong: %+v", liked)
	}
	plain := out[1]
	if plain.ID != other.ID || plain.LikeCount != 0 || plain.ResponseCount != 0 || plain.IsLikedByUser {
		t.Fatalf("plain stats wrong: %+v", plain)
	}
}

func TestUpdateComment_And_Delete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c, err := CreateComment(ctx, db, "u1", "T", "content content", domain.CategoryGeneral, domain.PriorityMedium)
	if err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	got, err := UpdateComment(ctx, db, c.ID, map[string]any{"status": domain.StatusResolved, "title": "T2"})
	if err != nil {
		t.Fatalf("UpdateComment: %v", err)
	}
	if got.Status != domain.StatusResolved || got.Title != "T2" {
		t.Fatalf("update not applied: %+v", got)
	}

	if _, err := UpdateComment(ctx, db, "missing", map[string]any{"title": "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := DeleteComment(ctx, db, c.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if err := DeleteComment(ctx, db, c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
