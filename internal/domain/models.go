// Package domain defines the persistence models for forms, submissions, and
// the comment board. These types are mapped with GORM and form the core data
// layer of the forms application.
package domain

import (
	"time"
)

// FieldType enumerates the supported kinds of form fields.
type FieldType string

// Supported field kinds. The set is fixed; a form payload carrying any other
// value is rejected at validation time.
const (
	FieldText     FieldType = "text"
	FieldNumber   FieldType = "number"
	FieldEmail    FieldType = "email"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
	FieldCheckbox FieldType = "checkbox"
	FieldFile     FieldType = "file"
)

// Valid reports whether t is one of the supported field kinds.
func (t FieldType) Valid() bool {
	switch t {
	case FieldText, FieldNumber, FieldEmail, FieldDate, FieldSelect, FieldCheckbox, FieldFile:
		return true
	}
	return false
}

// FileConstraints bounds uploads for a file field.
//
// MaxSizeMB is capped at 30 by validation; AllowedTypes holds extensions or
// MIME types the client enforces before requesting an upload URL.
type FileConstraints struct {
	MaxSizeMB    int      `json:"maxSize"`
	AllowedTypes []string `json:"allowedTypes"`
}

// FormField is one typed input in a form's field list. Fields have no row of
// their own; they live inside the owning form's JSON fields column and their
// identity is the client-assigned ID used to key submission data.
type FormField struct {
	ID              string           `json:"id"`
	Type            FieldType        `json:"type"`
	Label           string           `json:"label"`
	Placeholder     string           `json:"placeholder,omitempty"`
	Required        bool             `json:"required"`
	Options         []string         `json:"options,omitempty"`
	FileConstraints *FileConstraints `json:"fileConstraints,omitempty"`
}

// Form is a user-authored template of typed input fields plus an
// email-delivery target.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - UserID: identifier of the owner; indexed for dashboard listings.
//   - Fields: ordered field definitions, serialized as JSON.
//   - EmailRecipient / EmailSubject: where and how submissions are relayed.
//   - IsActive: soft switch; inactive forms reject public submissions.
type Form struct {
	ID             string      `json:"id"              gorm:"type:char(36);primaryKey"`
	UserID         string      `json:"user_id"         gorm:"type:varchar(64);not null;index:idx_user_forms"`
	Title          string      `json:"title"           gorm:"type:varchar(100);not null"`
	Description    string      `json:"description"     gorm:"type:text"`
	Fields         []FormField `json:"fields"          gorm:"serializer:json;type:text;not null"`
	EmailRecipient string      `json:"email_recipient" gorm:"type:varchar(254);not null"`
	EmailSubject   string      `json:"email_subject"   gorm:"type:varchar(255)"`
	IsActive       bool        `json:"is_active"       gorm:"not null;default:true"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// TableName returns the database table name for Form.
func (Form) TableName() string { return "forms" }

// MissingRequired recomputes, server-side, which required field labels are
// absent from a submission payload. File fields are satisfied only by a
// non-empty list of storage paths; everything else by any non-nil, non-empty
// value.
func (f *Form) MissingRequired(data map[string]any) []string {
	var missing []string
	for _, fld := range f.Fields {
		if !fld.Required {
			continue
		}
		v, ok := data[fld.ID]
		if fld.Type == FieldFile {
			if !ok || !hasFiles(v) {
				missing = append(missing, fld.Label)
			}
			continue
		}
		if !ok || v == nil || v == "" {
			missing = append(missing, fld.Label)
		}
	}
	return missing
}

// hasFiles reports whether v is a non-empty list. Submission payloads arrive
// as decoded JSON, so file values are []any of path strings; []string is
// accepted for callers constructing payloads in Go.
func hasFiles(v any) bool {
	switch s := v.(type) {
	case []any:
		return len(s) > 0
	case []string:
		return len(s) > 0
	}
	return false
}

// Submission is one filled-out instance of a form, with optional file
// attachments referenced by storage path. Rows are append-only: they are
// written on public submit and never updated afterwards.
type Submission struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	FormID    string         `json:"form_id"    gorm:"type:char(36);not null;index:idx_form_submissions"`
	Data      map[string]any `json:"data"       gorm:"serializer:json;type:text;not null"`
	Files     []string       `json:"files"      gorm:"serializer:json;type:text"`
	IPAddress string         `json:"ip_address" gorm:"type:varchar(64)"`
	CreatedAt time.Time      `json:"created_at"`

	// Form is the parent template. Submissions are cascade-deleted when the
	// form is removed.
	Form Form `json:"-" gorm:"foreignKey:FormID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Submission.
func (Submission) TableName() string { return "submissions" }

// Comment categories, priorities, and statuses. All three sets are closed
// enums validated at the service layer.
const (
	CategoryGeneral     = "general"
	CategoryBug         = "bug"
	CategoryFeature     = "feature"
	CategoryImprovement = "improvement"
	CategoryQuestion    = "question"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"

	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

// Comment is one board entry: an issue, idea, or question raised by a user.
type Comment struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;index:idx_user_comments"`
	Title     string    `json:"title"      gorm:"type:varchar(200);not null"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	Category  string    `json:"category"   gorm:"type:varchar(16);not null;default:'general';check:category IN ('general','bug','feature','improvement','question')"`
	Priority  string    `json:"priority"   gorm:"type:varchar(16);not null;default:'medium';check:priority IN ('low','medium','high','urgent')"`
	Status    string    `json:"status"     gorm:"type:varchar(16);not null;default:'open';check:status IN ('open','in_progress','resolved','closed')"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }

// CommentResponse is a threaded reply on a comment. Responses are append-only
// in the current behavior: there is no edit or delete operation.
type CommentResponse struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	CommentID string    `json:"comment_id" gorm:"type:char(36);not null;index:idx_comment_responses"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null"`
	Content   string    `json:"content"    gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Comment Comment `json:"-" gorm:"foreignKey:CommentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for CommentResponse.
func (CommentResponse) TableName() string { return "comment_responses" }

// CommentLike marks that a user liked a comment. Uniqueness over
// (comment_id, user_id) is enforced by the store, so a double-click can never
// produce two rows.
type CommentLike struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	CommentID string    `json:"comment_id" gorm:"type:char(36);not null;index;uniqueIndex:ux_like_comment_user"`
	UserID    string    `json:"user_id"    gorm:"type:varchar(64);not null;index;uniqueIndex:ux_like_comment_user"`
	CreatedAt time.Time `json:"created_at"`

	Comment Comment `json:"-" gorm:"foreignKey:CommentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for CommentLike.
func (CommentLike) TableName() string { return "comment_likes" }
