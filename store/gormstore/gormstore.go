// Package gormstore implements the repository contract on MySQL via GORM.
package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/draftbox/draftbox/models"
	"github.com/draftbox/draftbox/policy"
	"github.com/draftbox/draftbox/store"
)

// Store is a GORM-backed implementation of store.Store.
type Store struct {
	db *gorm.DB
}

// New wraps an initialized GORM handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return store.ErrDuplicate
	}
	return err
}

// visibleScope is the SQL realization of the visibility base predicate:
// anonymous callers see published rows only, authenticated callers
// additionally see their own drafts. It must stay in lockstep with
// policy.CanView.
func visibleScope(viewer *policy.Identity) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if viewer == nil {
			return tx.Where("published = ?", true)
		}
		return tx.Where("published = ? OR user_id = ?", true, viewer.ID)
	}
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	// The unique index on username surfaces as ErrDuplicatedKey with
	// error translation enabled on the gorm handle.
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *Store) FindUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) CreatePost(ctx context.Context, p *models.Post) error {
	tx := s.db.WithContext(ctx)
	if err := tx.Create(p).Error; err != nil {
		return err
	}
	return tx.Preload("User").First(p, p.ID).Error
}

func (s *Store) FindPost(ctx context.Context, id uint) (*models.Post, error) {
	var p models.Post
	if err := s.db.WithContext(ctx).Preload("User").First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) ListPosts(ctx context.Context, q policy.PostQuery) ([]models.Post, int64, error) {
	base := s.db.WithContext(ctx).Model(&models.Post{}).Scopes(visibleScope(q.Viewer))
	if q.Filter.Published != nil {
		base = base.Where("published = ?", *q.Filter.Published)
	}
	if q.Filter.Owner != nil {
		base = base.Where("user_id = ?", *q.Filter.Owner)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := base.Preload("User").
		Order("created_at DESC, id DESC").
		Offset(q.Page.Offset()).
		Limit(q.Page.Size).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (s *Store) UpdatePost(ctx context.Context, p *models.Post) error {
	tx := s.db.WithContext(ctx)
	// Omit associations: the owner is immutable and never written back.
	if err := tx.Omit("User", "Comments").Save(p).Error; err != nil {
		return err
	}
	return tx.Preload("User").First(p, p.ID).Error
}

// DeletePost removes the post and its comments atomically. Both deletes
// run in one transaction so no reader sees a half-cascaded state.
func (s *Store) DeletePost(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	tx := s.db.WithContext(ctx)
	if err := tx.Create(c).Error; err != nil {
		return err
	}
	return tx.Preload("User").First(c, c.ID).Error
}

func (s *Store) FindComment(ctx context.Context, id uint) (*models.Comment, error) {
	var c models.Comment
	if err := s.db.WithContext(ctx).Preload("User").First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Store) ListComments(ctx context.Context, q policy.CommentQuery) ([]models.Comment, int64, error) {
	base := s.db.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", q.PostID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := base.Preload("User").
		Order("created_at DESC, id DESC").
		Offset(q.Page.Offset()).
		Limit(q.Page.Size).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (s *Store) UpdateComment(ctx context.Context, c *models.Comment) error {
	tx := s.db.WithContext(ctx)
	if err := tx.Omit("User").Save(c).Error; err != nil {
		return err
	}
	return tx.Preload("User").First(c, c.ID).Error
}

func (s *Store) DeleteComment(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}
