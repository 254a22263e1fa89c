package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/realtime"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrNotModerator = errors.New("moderator role required")

// CommunityService covers the community interactions that raise
// notifications: likes, comments, post moderation, moderator assignment and
// bans. Every method commits the mutation first, then publishes.
type CommunityService struct {
	repo   *repository.CommunityRepo
	users  *repository.UserRepo
	notifs *NotificationService
}

func NewCommunityService(repo *repository.CommunityRepo, users *repository.UserRepo, notifs *NotificationService) *CommunityService {
	return &CommunityService{repo: repo, users: users, notifs: notifs}
}

// CreateCommunity opens a new community with the creator as its first
// moderator.
func (s *CommunityService) CreateCommunity(ctx context.Context, creatorID uuid.UUID, name, description string) (*models.Community, error) {
	community := &models.Community{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedBy:   creatorID,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.CreateCommunity(community); err != nil {
		return nil, fmt.Errorf("create community: %w", err)
	}
	if err := s.repo.AddMember(&models.CommunityMember{
		ID:          uuid.New(),
		CommunityID: community.ID,
		UserID:      creatorID,
		IsModerator: true,
		JoinedAt:    time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("add creator membership: %w", err)
	}
	return community, nil
}

// Join adds the user as a member. Group membership on live connections
// catches up when the user reconnects.
func (s *CommunityService) Join(ctx context.Context, userID, communityID uuid.UUID) error {
	if err := s.repo.AddMember(&models.CommunityMember{
		ID:          uuid.New(),
		CommunityID: communityID,
		UserID:      userID,
		JoinedAt:    time.Now(),
	}); err != nil {
		return fmt.Errorf("add member: %w", err)
	}
	return nil
}

// CreatePost submits a pending post to a community.
func (s *CommunityService) CreatePost(ctx context.Context, authorID, communityID uuid.UUID, content string) (*models.CommunityPost, error) {
	post := &models.CommunityPost{
		ID:          uuid.New(),
		CommunityID: communityID,
		AuthorID:    authorID,
		Content:     content,
		Status:      models.PostStatusPending,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.CreatePost(post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return post, nil
}

// LikePost records a like and notifies the post owner.
func (s *CommunityService) LikePost(ctx context.Context, actorID, postID uuid.UUID) error {
	post, err := s.repo.GetPost(postID)
	if err != nil {
		return fmt.Errorf("get post: %w", err)
	}
	if err := s.repo.CreateLike(&models.PostLike{
		ID:        uuid.New(),
		PostID:    postID,
		UserID:    actorID,
		CreatedAt: time.Now(),
	}); err != nil {
		return fmt.Errorf("create like: %w", err)
	}

	s.notifyPostOwner(ctx, post, actorID, realtime.TypePostLike, "%s liked your post")
	return nil
}

// UnlikePost removes a like and notifies the post owner.
func (s *CommunityService) UnlikePost(ctx context.Context, actorID, postID uuid.UUID) error {
	post, err := s.repo.GetPost(postID)
	if err != nil {
		return fmt.Errorf("get post: %w", err)
	}
	if err := s.repo.DeleteLike(postID, actorID); err != nil {
		return fmt.Errorf("delete like: %w", err)
	}

	s.notifyPostOwner(ctx, post, actorID, realtime.TypePostUnlike, "%s unliked your post")
	return nil
}

// CommentOnPost records a comment and notifies the post owner.
func (s *CommunityService) CommentOnPost(ctx context.Context, actorID, postID uuid.UUID, content string) (*models.PostComment, error) {
	post, err := s.repo.GetPost(postID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	comment := &models.PostComment{
		ID:        uuid.New(),
		PostID:    postID,
		AuthorID:  actorID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.repo.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.notifyPostOwner(ctx, post, actorID, realtime.TypePostComment, "%s commented on your post")
	return comment, nil
}

// ApprovePost accepts a pending post: the author is notified directly, the
// rest of the community sees a group broadcast (the author's connections
// are excluded from it).
func (s *CommunityService) ApprovePost(ctx context.Context, moderatorID, postID uuid.UUID) error {
	post, moderator, err := s.moderatedPost(ctx, moderatorID, postID)
	if err != nil {
		return err
	}

	post.Status = models.PostStatusAccepted
	post.UpdatedAt = time.Now()
	if err := s.repo.SavePost(post); err != nil {
		return fmt.Errorf("save post: %w", err)
	}

	if err := s.notifs.Notify(ctx, post.AuthorID, realtime.TypePostAccepted,
		"Your post was accepted", moderator, &post.ID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("post accepted notification failed")
	}

	author, err := s.users.Get(post.AuthorID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("author lookup failed, skipping group broadcast")
		return nil
	}
	s.notifs.NotifyGroup(realtime.CommunityGroup(post.CommunityID), realtime.TypePostAccepted,
		fmt.Sprintf("New post in your community by %s", author.DisplayName), author, &post.ID)
	return nil
}

// RejectPost declines a pending post; only the author hears about it.
func (s *CommunityService) RejectPost(ctx context.Context, moderatorID, postID uuid.UUID) error {
	post, moderator, err := s.moderatedPost(ctx, moderatorID, postID)
	if err != nil {
		return err
	}

	post.Status = models.PostStatusRejected
	post.UpdatedAt = time.Now()
	if err := s.repo.SavePost(post); err != nil {
		return fmt.Errorf("save post: %w", err)
	}

	if err := s.notifs.Notify(ctx, post.AuthorID, realtime.TypePostRejected,
		"Your post was rejected", moderator, &post.ID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("post rejected notification failed")
	}
	return nil
}

// AssignModerator grants moderation and notifies the target user.
func (s *CommunityService) AssignModerator(ctx context.Context, actorID, communityID, targetID uuid.UUID) error {
	return s.setModerator(ctx, actorID, communityID, targetID, true,
		realtime.TypeModeratorAssigned, "You are now a moderator")
}

// RemoveModerator revokes moderation and notifies the target user.
func (s *CommunityService) RemoveModerator(ctx context.Context, actorID, communityID, targetID uuid.UUID) error {
	return s.setModerator(ctx, actorID, communityID, targetID, false,
		realtime.TypeModeratorRemoved, "You are no longer a moderator")
}

// BanMember bans a member and notifies them.
func (s *CommunityService) BanMember(ctx context.Context, actorID, communityID, targetID uuid.UUID) error {
	return s.setBanned(ctx, actorID, communityID, targetID, true,
		realtime.TypeCommunityBan, "You were banned from the community")
}

// UnbanMember lifts a ban and notifies the member.
func (s *CommunityService) UnbanMember(ctx context.Context, actorID, communityID, targetID uuid.UUID) error {
	return s.setBanned(ctx, actorID, communityID, targetID, false,
		realtime.TypeCommunityUnban, "Your community ban was lifted")
}

func (s *CommunityService) setModerator(ctx context.Context, actorID, communityID, targetID uuid.UUID, isMod bool, typ realtime.NotificationType, message string) error {
	member, err := s.requireModerator(ctx, actorID, communityID, targetID)
	if err != nil {
		return err
	}
	member.IsModerator = isMod
	if err := s.repo.SaveMember(member); err != nil {
		return fmt.Errorf("save member: %w", err)
	}
	s.notifyMember(ctx, actorID, targetID, communityID, typ, message)
	return nil
}

func (s *CommunityService) setBanned(ctx context.Context, actorID, communityID, targetID uuid.UUID, banned bool, typ realtime.NotificationType, message string) error {
	member, err := s.requireModerator(ctx, actorID, communityID, targetID)
	if err != nil {
		return err
	}
	member.IsBanned = banned
	if banned {
		member.IsModerator = false
	}
	if err := s.repo.SaveMember(member); err != nil {
		return fmt.Errorf("save member: %w", err)
	}
	s.notifyMember(ctx, actorID, targetID, communityID, typ, message)
	return nil
}

func (s *CommunityService) requireModerator(ctx context.Context, actorID, communityID, targetID uuid.UUID) (*models.CommunityMember, error) {
	isMod, err := s.repo.IsModerator(communityID, actorID)
	if err != nil {
		return nil, fmt.Errorf("moderator check: %w", err)
	}
	if !isMod {
		return nil, ErrNotModerator
	}
	member, err := s.repo.Member(communityID, targetID)
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}
	return member, nil
}

func (s *CommunityService) moderatedPost(ctx context.Context, moderatorID, postID uuid.UUID) (*models.CommunityPost, *models.User, error) {
	post, err := s.repo.GetPost(postID)
	if err != nil {
		return nil, nil, fmt.Errorf("get post: %w", err)
	}
	isMod, err := s.repo.IsModerator(post.CommunityID, moderatorID)
	if err != nil {
		return nil, nil, fmt.Errorf("moderator check: %w", err)
	}
	if !isMod {
		return nil, nil, ErrNotModerator
	}
	moderator, err := s.users.Get(moderatorID)
	if err != nil {
		return nil, nil, fmt.Errorf("get moderator: %w", err)
	}
	return post, moderator, nil
}

func (s *CommunityService) notifyPostOwner(ctx context.Context, post *models.CommunityPost, actorID uuid.UUID, typ realtime.NotificationType, format string) {
	if post.AuthorID == actorID {
		return // no self-notification
	}
	actor, err := s.users.Get(actorID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("actor_id", actorID.String()).Msg("actor lookup failed, skipping notification")
		return
	}
	if err := s.notifs.Notify(ctx, post.AuthorID, typ,
		fmt.Sprintf(format, actor.DisplayName), actor, &post.ID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("post owner notification failed")
	}
}

func (s *CommunityService) notifyMember(ctx context.Context, actorID, targetID, communityID uuid.UUID, typ realtime.NotificationType, message string) {
	actor, err := s.users.Get(actorID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("actor_id", actorID.String()).Msg("actor lookup failed, skipping notification")
		return
	}
	if err := s.notifs.Notify(ctx, targetID, typ, message, actor, &communityID); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("member notification failed")
	}
}
