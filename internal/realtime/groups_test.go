package realtime

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGroupJoinLeave(t *testing.T) {
	groups := NewGroupIndex()
	s := newFakeSender(uuid.New())
	key := CommunityGroup(uuid.New())

	groups.Join(key, s)
	groups.Join(key, s) // idempotent
	assert.Len(t, groups.MembersOf(key), 1)

	groups.Leave(key, s.ConnectionID())
	groups.Leave(key, s.ConnectionID()) // idempotent
	assert.Empty(t, groups.MembersOf(key))
	assert.Empty(t, groups.GroupsOf(s.ConnectionID()))
}

func TestGroupLeaveAll(t *testing.T) {
	groups := NewGroupIndex()
	s := newFakeSender(uuid.New())

	keys := []string{GroupAllUsers}
	for i := 0; i < 5; i++ {
		keys = append(keys, CommunityGroup(uuid.New()))
	}
	for _, k := range keys {
		groups.Join(k, s)
	}
	assert.Len(t, groups.GroupsOf(s.ConnectionID()), len(keys))

	groups.LeaveAll(s.ConnectionID())
	for _, k := range keys {
		assert.Empty(t, groups.MembersOf(k), k)
	}
	assert.Empty(t, groups.GroupsOf(s.ConnectionID()))

	groups.LeaveAll(s.ConnectionID()) // duplicate disconnect, no-op
}

func TestGroupMembersOfSnapshot(t *testing.T) {
	groups := NewGroupIndex()
	key := CommunityGroup(uuid.New())
	a := newFakeSender(uuid.New())
	b := newFakeSender(uuid.New())
	groups.Join(key, a)
	groups.Join(key, b)

	members := groups.MembersOf(key)
	groups.Leave(key, a.ConnectionID())

	assert.Len(t, members, 2)
	assert.Len(t, groups.MembersOf(key), 1)
}

func TestGroupConcurrentJoinLeave(t *testing.T) {
	groups := NewGroupIndex()
	key := CommunityGroup(uuid.New())

	var wg sync.WaitGroup
	senders := make([]*fakeSender, 50)
	for i := range senders {
		senders[i] = newFakeSender(uuid.New())
		wg.Add(1)
		go func(s *fakeSender, leave bool) {
			defer wg.Done()
			groups.Join(key, s)
			groups.Join(GroupAllUsers, s)
			if leave {
				groups.LeaveAll(s.ConnectionID())
			}
		}(senders[i], i%2 == 0)
	}
	wg.Wait()

	assert.Len(t, groups.MembersOf(key), 25)
	assert.Len(t, groups.MembersOf(GroupAllUsers), 25)
}
