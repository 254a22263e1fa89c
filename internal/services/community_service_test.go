package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/models"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/realtime"
	"github.com/MAHMOUDBADAWY74/Graduation-project/internal/repository"
)

func newCommunityService(db *gorm.DB, b *realtime.Broadcaster) *CommunityService {
	notifs := NewNotificationService(repository.NewNotificationRepo(db), b)
	return NewCommunityService(repository.NewCommunityRepo(db), repository.NewUserRepo(db), notifs)
}

func TestCreateCommunityMakesCreatorModerator(t *testing.T) {
	db := setupTestDB(t)
	_, _, b := testFanout()
	svc := newCommunityService(db, b)
	creator := createTestUser(t, db, "creator")

	community, err := svc.CreateCommunity(context.Background(), creator.ID, "book club", "weekly reads")
	require.NoError(t, err)

	isMod, err := repository.NewCommunityRepo(db).IsModerator(community.ID, creator.ID)
	require.NoError(t, err)
	assert.True(t, isMod)
}

func TestLikePostNotifiesOwner(t *testing.T) {
	db := setupTestDB(t)
	reg, _, b := testFanout()
	svc := newCommunityService(db, b)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	liker := createTestUser(t, db, "liker")
	community, err := svc.CreateCommunity(ctx, owner.ID, "club", "")
	require.NoError(t, err)
	post, err := svc.CreatePost(ctx, owner.ID, community.ID, "my post")
	require.NoError(t, err)

	ownerTab := newFakeSender(owner.ID)
	reg.Register(ownerTab)

	require.NoError(t, svc.LikePost(ctx, liker.ID, post.ID))

	envs := ownerTab.envelopes()
	require.Len(t, envs, 1)
	notif, ok := envs[0].Data.(realtime.Notification)
	require.True(t, ok)
	assert.Equal(t, realtime.TypePostLike, notif.Type)
	assert.Equal(t, "liker", notif.ActorUserName)

	var stored models.Notification
	require.NoError(t, db.First(&stored, "user_id = ?", owner.ID).Error)
	assert.Equal(t, string(realtime.TypePostLike), stored.Type)
}

func TestLikeOwnPostRaisesNoNotification(t *testing.T) {
	db := setupTestDB(t)
	reg, _, b := testFanout()
	svc := newCommunityService(db, b)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	community, err := svc.CreateCommunity(ctx, owner.ID, "club", "")
	require.NoError(t, err)
	post, err := svc.CreatePost(ctx, owner.ID, community.ID, "my post")
	require.NoError(t, err)

	ownerTab := newFakeSender(owner.ID)
	reg.Register(ownerTab)

	require.NoError(t, svc.LikePost(ctx, owner.ID, post.ID))

	assert.Empty(t, ownerTab.envelopes())
	var count int64
	db.Model(&models.Notification{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestApprovePostNotifiesAuthorAndBroadcastsToCommunity(t *testing.T) {
	db := setupTestDB(t)
	reg, groups, b := testFanout()
	svc := newCommunityService(db, b)
	ctx := context.Background()

	moderator := createTestUser(t, db, "moderator")
	author := createTestUser(t, db, "author")
	member := createTestUser(t, db, "member")

	community, err := svc.CreateCommunity(ctx, moderator.ID, "club", "")
	require.NoError(t, err)
	require.NoError(t, svc.Join(ctx, author.ID, community.ID))
	require.NoError(t, svc.Join(ctx, member.ID, community.ID))
	post, err := svc.CreatePost(ctx, author.ID, community.ID, "review")
	require.NoError(t, err)

	authorTab := newFakeSender(author.ID)
	memberTab := newFakeSender(member.ID)
	outsiderTab := newFakeSender(uuid.New())
	reg.Register(authorTab)
	group := realtime.CommunityGroup(community.ID)
	groups.Join(group, authorTab)
	groups.Join(group, memberTab)

	require.NoError(t, svc.ApprovePost(ctx, moderator.ID, post.ID))

	post, err = repository.NewCommunityRepo(db).GetPost(post.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PostStatusAccepted, post.Status)

	// The author hears about it once, directly; the group broadcast skips
	// their connections.
	envs := authorTab.envelopes()
	require.Len(t, envs, 1)
	direct, ok := envs[0].Data.(realtime.Notification)
	require.True(t, ok)
	assert.Equal(t, realtime.TypePostAccepted, direct.Type)
	assert.Equal(t, "moderator", direct.ActorUserName)

	memberEnvs := memberTab.envelopes()
	require.Len(t, memberEnvs, 1)
	broadcast, ok := memberEnvs[0].Data.(realtime.Notification)
	require.True(t, ok)
	assert.Equal(t, "author", broadcast.ActorUserName)

	assert.Empty(t, outsiderTab.envelopes())
}

func TestApprovePostRequiresModerator(t *testing.T) {
	db := setupTestDB(t)
	_, _, b := testFanout()
	svc := newCommunityService(db, b)
	ctx := context.Background()

	moderator := createTestUser(t, db, "moderator")
	intruder := createTestUser(t, db, "intruder")
	community, err := svc.CreateCommunity(ctx, moderator.ID, "club", "")
	require.NoError(t, err)
	require.NoError(t, svc.Join(ctx, intruder.ID, community.ID))
	post, err := svc.CreatePost(ctx, moderator.ID, community.ID, "post")
	require.NoError(t, err)

	err = svc.ApprovePost(ctx, intruder.ID, post.ID)
	assert.ErrorIs(t, err, ErrNotModerator)
}

func TestBanMemberClearsModeratorFlag(t *testing.T) {
	db := setupTestDB(t)
	reg, _, b := testFanout()
	svc := newCommunityService(db, b)
	ctx := context.Background()

	owner := createTestUser(t, db, "owner")
	target := createTestUser(t, db, "target")
	community, err := svc.CreateCommunity(ctx, owner.ID, "club", "")
	require.NoError(t, err)
	require.NoError(t, svc.Join(ctx, target.ID, community.ID))
	require.NoError(t, svc.AssignModerator(ctx, owner.ID, community.ID, target.ID))

	targetTab := newFakeSender(target.ID)
	reg.Register(targetTab)

	require.NoError(t, svc.BanMember(ctx, owner.ID, community.ID, target.ID))

	repo := repository.NewCommunityRepo(db)
	member, err := repo.Member(community.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, member.IsBanned)
	assert.False(t, member.IsModerator)

	// Banned members no longer count for membership lookups.
	ids, err := repo.CommunityIDsForUser(ctx, target.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	envs := targetTab.envelopes()
	require.Len(t, envs, 1)
	notif, ok := envs[0].Data.(realtime.Notification)
	require.True(t, ok)
	assert.Equal(t, realtime.TypeCommunityBan, notif.Type)
}
