package models

import "time"

// Post is a blog entry created by a user. Unpublished posts are drafts
// readable only by their owner.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Published bool      `gorm:"index;not null;default:false" json:"published"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Comments  []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// OwnerID reports the user that created the post. The owner is fixed at
// creation and never reassigned.
func (p *Post) OwnerID() uint { return p.UserID }

// IsPublished reports whether the post is publicly readable.
func (p *Post) IsPublished() bool { return p.Published }
