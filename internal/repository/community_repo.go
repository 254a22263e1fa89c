package repository

import (
	"context"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommunityRepo struct {
	db *gorm.DB
}

func NewCommunityRepo(db *gorm.DB) *CommunityRepo {
	return &CommunityRepo{db: db}
}

// CommunityIDsForUser returns the ids of every community the user is an
// active (non-banned) member of. This is the membership source the hub
// queries once per connection.
func (r *CommunityRepo) CommunityIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.CommunityMember{}).
		Where("user_id = ? AND is_banned = FALSE", userID).
		Pluck("community_id", &ids).Error
	return ids, err
}

// Member fetches the membership row for a user in a community.
func (r *CommunityRepo) Member(communityID, userID uuid.UUID) (*models.CommunityMember, error) {
	var m models.CommunityMember
	if err := r.db.
		Where("community_id = ? AND user_id = ?", communityID, userID).
		First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// IsModerator reports whether the user moderates the community.
func (r *CommunityRepo) IsModerator(communityID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.
		Model(&models.CommunityMember{}).
		Where("community_id = ? AND user_id = ? AND is_moderator = TRUE", communityID, userID).
		Count(&count).Error
	return count > 0, err
}

// SaveMember persists membership mutations (moderator flag, ban flag).
func (r *CommunityRepo) SaveMember(m *models.CommunityMember) error {
	return r.db.Save(m).Error
}

// AddMember inserts a membership row.
func (r *CommunityRepo) AddMember(m *models.CommunityMember) error {
	return r.db.Create(m).Error
}

// CreateCommunity inserts a community record.
func (r *CommunityRepo) CreateCommunity(c *models.Community) error {
	return r.db.Create(c).Error
}

// GetPost fetches one post.
func (r *CommunityRepo) GetPost(postID uuid.UUID) (*models.CommunityPost, error) {
	var p models.CommunityPost
	if err := r.db.First(&p, "id = ?", postID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePost inserts a post record.
func (r *CommunityRepo) CreatePost(p *models.CommunityPost) error {
	return r.db.Create(p).Error
}

// SavePost persists post mutations (status changes).
func (r *CommunityRepo) SavePost(p *models.CommunityPost) error {
	return r.db.Save(p).Error
}

// CreateComment inserts a comment record.
func (r *CommunityRepo) CreateComment(c *models.PostComment) error {
	return r.db.Create(c).Error
}

// CreateLike inserts a like; the unique pair index rejects duplicates.
func (r *CommunityRepo) CreateLike(l *models.PostLike) error {
	return r.db.Create(l).Error
}

// DeleteLike removes a user's like from a post.
func (r *CommunityRepo) DeleteLike(postID, userID uuid.UUID) error {
	return r.db.
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.PostLike{}).Error
}
