package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/uroom/uroom-server/internal/stats"
	"github.com/uroom/uroom-server/internal/store"
	"github.com/uroom/uroom-server/internal/testutil"
	"github.com/uroom/uroom-server/internal/types"
)

func newTestServer(t *testing.T, st *store.AppStore) *ChatServer {
	t.Helper()

	mockStats := &stats.MockStatsUpdater{}
	mockStats.On("Incr", mock.Anything).Maybe()
	mockStats.On("Decr", mock.Anything).Maybe()

	cs, err := NewChatServer(testutil.TestLogger(t), st, mockStats)
	require.NoError(t, err)

	go cs.Run()
	t.Cleanup(func() {
		close(cs.stop)
	})

	return cs
}

func recvMessage(t *testing.T, c *Client) *ServerMessage {
	t.Helper()

	select {
	case msg := <-c.send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for server message")
		return nil
	}
}

func assertNoMessage(t *testing.T, c *Client) {
	t.Helper()

	select {
	case msg := <-c.send:
		t.Fatalf("unexpected message: %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

// memberStore returns a store whose current user is a member of r1.
func memberStore(t *testing.T) (*store.AppStore, types.User) {
	t.Helper()

	st := store.NewAppStore(testutil.TestLogger(t), nil, store.Seed{
		Rooms: []types.Room{{Id: "r1", Title: "Test Room"}},
	})
	require.True(t, st.Signup("a@x.edu", "pw"))
	_, res := st.JoinRoom("r1", "")
	require.Equal(t, store.OpApplied, res)

	user, _ := st.CurrentUser()
	return st, user
}

func TestHandleJoin(t *testing.T) {
	st, user := memberStore(t)
	cs := newTestServer(t, st)
	c := NewClient(user, nil, cs, testutil.TestLogger(t))

	cs.joinChan <- &ClientMessage{
		BaseMessage: BaseMessage{Id: 1},
		Join:        &Join{RoomId: "r1"},
		UserId:      user.Id,
		client:      c,
	}

	msg := recvMessage(t, c)
	require.NotNil(t, msg.Response)
	assert.Equal(t, http.StatusOK, msg.Response.ResponseCode)

	data, ok := msg.Response.Data.(map[string]any)
	require.True(t, ok, "expected join response data")
	assert.Contains(t, data, "room")
	assert.Contains(t, data, "members")
}

func TestHandleJoin_roomNotFound(t *testing.T) {
	st, user := memberStore(t)
	cs := newTestServer(t, st)
	c := NewClient(user, nil, cs, testutil.TestLogger(t))

	cs.joinChan <- &ClientMessage{
		BaseMessage: BaseMessage{Id: 2},
		Join:        &Join{RoomId: "missing"},
		UserId:      user.Id,
		client:      c,
	}

	msg := recvMessage(t, c)
	require.NotNil(t, msg.Response)
	assert.Equal(t, http.StatusNotFound, msg.Response.ResponseCode)
}

func TestHandleJoin_notMember(t *testing.T) {
	st, _ := memberStore(t)
	cs := newTestServer(t, st)

	outsider := types.User{Id: "stranger", Name: "stranger"}
	c := NewClient(outsider, nil, cs, testutil.TestLogger(t))

	cs.joinChan <- &ClientMessage{
		BaseMessage: BaseMessage{Id: 3},
		Join:        &Join{RoomId: "r1"},
		UserId:      outsider.Id,
		client:      c,
	}

	msg := recvMessage(t, c)
	require.NotNil(t, msg.Response)
	assert.Equal(t, http.StatusForbidden, msg.Response.ResponseCode)
}

func TestHandlePublish_broadcasts(t *testing.T) {
	st, user := memberStore(t)
	cs := newTestServer(t, st)

	sender := NewClient(user, nil, cs, testutil.TestLogger(t))
	watcher := NewClient(user, nil, cs, testutil.TestLogger(t))

	for _, c := range []*Client{sender, watcher} {
		cs.joinChan <- &ClientMessage{
			Join:   &Join{RoomId: "r1"},
			UserId: user.Id,
			client: c,
		}
		msg := recvMessage(t, c)
		require.Equal(t, http.StatusOK, msg.Response.ResponseCode)
	}
	// drain the presence notification the sender got for the watcher's join
	recvMessage(t, sender)

	cs.publishChan <- &ClientMessage{
		BaseMessage: BaseMessage{Id: 7},
		Publish:     &Publish{RoomId: "r1", Text: "hello room"},
		UserId:      user.Id,
		client:      sender,
	}

	ack := recvMessage(t, sender)
	require.NotNil(t, ack.Response)
	assert.Equal(t, http.StatusAccepted, ack.Response.ResponseCode)

	broadcast := recvMessage(t, watcher)
	require.NotNil(t, broadcast.Message)
	assert.Equal(t, "hello room", broadcast.Message.Text)
	assert.Equal(t, user.Id, broadcast.Message.UserId)

	// the message went through the store
	messages := st.RoomMessages("r1")
	require.Len(t, messages, 1)
	assert.Equal(t, "hello room", messages[0].Text)
}

func TestHandlePublish_staleSession(t *testing.T) {
	st, user := memberStore(t)
	cs := newTestServer(t, st)
	c := NewClient(user, nil, cs, testutil.TestLogger(t))

	cs.joinChan <- &ClientMessage{
		Join:   &Join{RoomId: "r1"},
		UserId: user.Id,
		client: c,
	}
	recvMessage(t, c)

	// the session is replaced by another login
	require.True(t, st.Login("b@x.edu", "pw"))

	cs.publishChan <- &ClientMessage{
		BaseMessage: BaseMessage{Id: 8},
		Publish:     &Publish{RoomId: "r1", Text: "too late"},
		UserId:      user.Id,
		client:      c,
	}

	msg := recvMessage(t, c)
	require.NotNil(t, msg.Response)
	assert.Equal(t, http.StatusUnauthorized, msg.Response.ResponseCode)
	assert.Empty(t, st.RoomMessages("r1"), "stale session must not write messages")
}

func TestHandleLeave_stopsBroadcasts(t *testing.T) {
	st, user := memberStore(t)
	cs := newTestServer(t, st)
	c := NewClient(user, nil, cs, testutil.TestLogger(t))

	cs.joinChan <- &ClientMessage{
		Join:   &Join{RoomId: "r1"},
		UserId: user.Id,
		client: c,
	}
	recvMessage(t, c)

	cs.leaveChan <- &ClientMessage{
		BaseMessage: BaseMessage{Id: 9},
		Leave:       &Leave{RoomId: "r1"},
		UserId:      user.Id,
		client:      c,
	}
	msg := recvMessage(t, c)
	require.NotNil(t, msg.Response)
	assert.Equal(t, http.StatusOK, msg.Response.ResponseCode)

	cs.NotifyMembership("r1", user, true)
	assertNoMessage(t, c)
}

func TestNotifyMembership(t *testing.T) {
	st, user := memberStore(t)
	cs := newTestServer(t, st)
	c := NewClient(user, nil, cs, testutil.TestLogger(t))

	cs.joinChan <- &ClientMessage{
		Join:   &Join{RoomId: "r1"},
		UserId: user.Id,
		client: c,
	}
	recvMessage(t, c)

	joiner := types.User{Id: "u2", Name: "Dev"}
	cs.NotifyMembership("r1", joiner, true)

	msg := recvMessage(t, c)
	require.NotNil(t, msg.Notification)
	require.NotNil(t, msg.Notification.Membership)
	assert.True(t, msg.Notification.Membership.Joined)
	assert.Equal(t, "u2", msg.Notification.Membership.User.Id)
}

func TestClientQueueMessage_fullChannel(t *testing.T) {
	c := NewClient(types.User{Id: "u1"}, nil, nil, testutil.TestLogger(t))

	for i := 0; i < cap(c.send); i++ {
		require.True(t, c.queueMessage(NoErrAccepted(i)))
	}
	assert.False(t, c.queueMessage(NoErrAccepted(-1)), "expected queue to reject when full")
}
