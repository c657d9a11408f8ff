package models

import "time"

// Comment is a reply attached to exactly one post. It cannot outlive its
// parent; deleting a post removes its comments in the same transaction.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
}

// OwnerID reports the user that wrote the comment. Mutation rights follow
// this owner, never the parent post's owner.
func (c *Comment) OwnerID() uint { return c.UserID }
