package realtime

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNotification(typ NotificationType) Notification {
	return Notification{
		ID:        uuid.New(),
		Type:      typ,
		Message:   "test",
		CreatedAt: time.Now(),
	}
}

func TestPublishToUserReachesEveryTab(t *testing.T) {
	reg := NewConnectionRegistry()
	b := NewBroadcaster(reg, NewGroupIndex())

	user := uuid.New()
	tab1 := newFakeSender(user)
	tab2 := newFakeSender(user)
	reg.Register(tab1)
	reg.Register(tab2)

	b.PublishToUser(user, testNotification(TypePostLike))

	// Exactly once per connection: twice total, not once.
	assert.Len(t, tab1.envelopes(), 1)
	assert.Len(t, tab2.envelopes(), 1)
}

func TestPublishToUserNoConnections(t *testing.T) {
	b := NewBroadcaster(NewConnectionRegistry(), NewGroupIndex())
	// A disconnected recipient simply misses the live event.
	b.PublishToUser(uuid.New(), testNotification(TypePostLike))
}

func TestPublishToGroupExcludesEveryConnectionOfActor(t *testing.T) {
	reg := NewConnectionRegistry()
	groups := NewGroupIndex()
	b := NewBroadcaster(reg, groups)

	actor := uuid.New()
	other := uuid.New()
	key := CommunityGroup(uuid.New())

	actorTab1 := newFakeSender(actor)
	actorTab2 := newFakeSender(actor)
	otherTab := newFakeSender(other)
	for _, s := range []*fakeSender{actorTab1, actorTab2, otherTab} {
		reg.Register(s)
		groups.Join(key, s)
	}

	b.PublishToGroup(key, testNotification(TypePostAccepted), actor)

	assert.Empty(t, actorTab1.envelopes())
	assert.Empty(t, actorTab2.envelopes())
	assert.Len(t, otherTab.envelopes(), 1)
}

func TestPublishToGroupNilExclusion(t *testing.T) {
	reg := NewConnectionRegistry()
	groups := NewGroupIndex()
	b := NewBroadcaster(reg, groups)

	s := newFakeSender(uuid.New())
	reg.Register(s)
	groups.Join(GroupAllUsers, s)

	b.PublishToGroup(GroupAllUsers, testNotification(TypeBookAdded), uuid.Nil)
	assert.Len(t, s.envelopes(), 1)
}

func TestFanOutSurvivesDeadConnection(t *testing.T) {
	reg := NewConnectionRegistry()
	groups := NewGroupIndex()
	b := NewBroadcaster(reg, groups)

	key := CommunityGroup(uuid.New())
	dead := newFakeSender(uuid.New())
	dead.sendErr = errClosed
	live1 := newFakeSender(uuid.New())
	live2 := newFakeSender(uuid.New())
	for _, s := range []*fakeSender{dead, live1, live2} {
		groups.Join(key, s)
	}

	b.PublishToGroup(key, testNotification(TypePostComment), uuid.Nil)

	// One failed delivery must not stop the rest.
	assert.Empty(t, dead.envelopes())
	assert.Len(t, live1.envelopes(), 1)
	assert.Len(t, live2.envelopes(), 1)
}

func TestGroupTargeting(t *testing.T) {
	reg := NewConnectionRegistry()
	groups := NewGroupIndex()
	b := NewBroadcaster(reg, groups)

	community := uuid.New()
	member := newFakeSender(uuid.New())
	nonMember := newFakeSender(uuid.New())

	reg.Register(member)
	reg.Register(nonMember)
	groups.Join(GroupAllUsers, member)
	groups.Join(GroupAllUsers, nonMember)
	groups.Join(CommunityGroup(community), member)

	b.PublishToGroup(CommunityGroup(community), testNotification(TypePostAccepted), uuid.Nil)

	assert.Len(t, member.envelopes(), 1)
	assert.Empty(t, nonMember.envelopes())
}

func TestSendDirectOnlyReceiver(t *testing.T) {
	reg := NewConnectionRegistry()
	b := NewBroadcaster(reg, NewGroupIndex())

	sender := uuid.New()
	receiver := uuid.New()
	senderTab := newFakeSender(sender)
	receiverTab1 := newFakeSender(receiver)
	receiverTab2 := newFakeSender(receiver)
	for _, s := range []*fakeSender{senderTab, receiverTab1, receiverTab2} {
		reg.Register(s)
	}

	b.SendDirect(ChatMessage{
		SenderID:   sender,
		ReceiverID: receiver,
		Text:       "hello",
		SentAt:     time.Now(),
	})

	assert.Empty(t, senderTab.envelopes())
	require.Len(t, receiverTab1.envelopes(), 1)
	require.Len(t, receiverTab2.envelopes(), 1)

	env := receiverTab1.envelopes()[0]
	assert.Equal(t, EventChatMessage, env.Event)
	msg, ok := env.Data.(ChatMessage)
	require.True(t, ok)
	assert.Equal(t, "hello", msg.Text)
}

func TestNotificationEnvelopeEvent(t *testing.T) {
	reg := NewConnectionRegistry()
	b := NewBroadcaster(reg, NewGroupIndex())

	user := uuid.New()
	tab := newFakeSender(user)
	reg.Register(tab)

	b.PublishToUser(user, testNotification(TypeExchangeRequestSent))

	require.Len(t, tab.envelopes(), 1)
	assert.Equal(t, EventNotification, tab.envelopes()[0].Event)
}
