package server

import (
	"context"
	"log"
	"sync"

	"github.com/uroom/uroom-server/internal/stats"
	"github.com/uroom/uroom-server/internal/store"
	"github.com/uroom/uroom-server/internal/types"
)

// ChatServer fans room activity out to connected feed clients. All
// state lives in the AppStore; the hub only tracks which connection is
// watching which room.
type ChatServer struct {
	log            *log.Logger
	store          *store.AppStore
	stats          stats.StatsProvider
	clients        map[*Client]struct{}
	clientsLock    sync.Mutex
	roomClients    map[string]map[*Client]struct{}
	joinChan       chan *ClientMessage
	leaveChan      chan *ClientMessage
	publishChan    chan *ClientMessage
	notifyChan     chan *roomNotification
	RegisterChan   chan *Client
	deRegisterChan chan *Client
	stop           chan struct{}
	done           chan struct{}
}

type roomNotification struct {
	roomId string
	msg    *ServerMessage
}

func NewChatServer(logger *log.Logger, st *store.AppStore, sp stats.StatsProvider) (*ChatServer, error) {
	return &ChatServer{
		log:            logger,
		store:          st,
		stats:          sp,
		clients:        make(map[*Client]struct{}),
		roomClients:    make(map[string]map[*Client]struct{}),
		joinChan:       make(chan *ClientMessage, 256),
		leaveChan:      make(chan *ClientMessage, 256),
		publishChan:    make(chan *ClientMessage, 256),
		notifyChan:     make(chan *roomNotification, 256),
		RegisterChan:   make(chan *Client),
		deRegisterChan: make(chan *Client),
		stop:           make(chan struct{}),
		done:           make(chan struct{}),
	}, nil
}

func (cs *ChatServer) Run() {
	for {
		select {
		case joinMsg := <-cs.joinChan:
			cs.handleJoin(joinMsg)
		case leaveMsg := <-cs.leaveChan:
			cs.handleLeave(leaveMsg)
		case msg := <-cs.publishChan:
			cs.handlePublish(msg)
		case n := <-cs.notifyChan:
			cs.broadcast(n.roomId, n.msg)
		case client := <-cs.RegisterChan:
			cs.log.Printf("adding connection from %q", client.user.Name)
			cs.addClient(client)
			cs.stats.Incr(stats.ActiveConnections)
		case client := <-cs.deRegisterChan:
			cs.log.Printf("removing connection from %q", client.user.Name)
			cs.removeClient(client)
			cs.stats.Decr(stats.ActiveConnections)
		case <-cs.stop:
			cs.log.Println("shutting down feed")
			close(cs.done)
			return
		}
	}
}

// handleJoin attaches a connection to a room's feed. The connection's
// user must be a member of the room.
func (cs *ChatServer) handleJoin(msg *ClientMessage) {
	roomId := msg.Join.RoomId
	room, ok := cs.store.RoomById(roomId)
	if !ok {
		msg.client.queueMessage(ErrRoomNotFound(msg.Id))
		return
	}

	if !cs.isMember(roomId, msg.UserId) {
		msg.client.queueMessage(ErrNotMember(msg.Id))
		return
	}

	if cs.roomClients[roomId] == nil {
		cs.roomClients[roomId] = make(map[*Client]struct{})
	}
	cs.roomClients[roomId][msg.client] = struct{}{}

	msg.client.queueMessage(NoErrOK(msg.Id, map[string]any{
		"room":    room,
		"members": cs.store.RoomMembers(roomId),
	}))

	cs.broadcast(roomId, &ServerMessage{
		Notification: &Notification{
			Presence: &Presence{
				Present: true,
				UserId:  msg.UserId,
				RoomId:  roomId,
			},
		},
		SkipClient: msg.client,
	})
}

func (cs *ChatServer) handleLeave(msg *ClientMessage) {
	roomId := msg.Leave.RoomId
	if clients, ok := cs.roomClients[roomId]; ok {
		delete(clients, msg.client)
		if len(clients) == 0 {
			delete(cs.roomClients, roomId)
		}
	}

	msg.client.queueMessage(NoErrOK(msg.Id, nil))

	cs.broadcast(roomId, &ServerMessage{
		Notification: &Notification{
			Presence: &Presence{
				Present: false,
				UserId:  msg.UserId,
				RoomId:  roomId,
			},
		},
	})
}

// handlePublish writes the message through the store and broadcasts
// the stored record. Attribution follows the store's current user,
// so a connection whose session has been replaced is rejected.
func (cs *ChatServer) handlePublish(msg *ClientMessage) {
	cur, ok := cs.store.CurrentUser()
	if !ok || cur.Id != msg.UserId {
		msg.client.queueMessage(ErrNotAuthenticated(msg.Id))
		return
	}

	roomId := msg.Publish.RoomId
	if _, ok := cs.store.RoomById(roomId); !ok {
		msg.client.queueMessage(ErrRoomNotFound(msg.Id))
		return
	}

	if !cs.isMember(roomId, msg.UserId) {
		msg.client.queueMessage(ErrNotMember(msg.Id))
		return
	}

	stored, res := cs.store.SendMessage(roomId, msg.Publish.Text)
	if res != store.OpApplied {
		msg.client.queueMessage(ErrNotAuthenticated(msg.Id))
		return
	}

	cs.stats.Incr(stats.MessagesSent)
	msg.client.queueMessage(NoErrAccepted(msg.Id))

	cs.broadcast(roomId, &ServerMessage{
		BaseMessage: BaseMessage{
			Timestamp: stored.CreatedAt,
		},
		Message:    &stored,
		SkipClient: msg.client,
	})
}

func (cs *ChatServer) isMember(roomId, userId string) bool {
	for _, m := range cs.store.RoomMembers(roomId) {
		if m.UserId == userId {
			return true
		}
	}
	return false
}

// NotifyMembership pushes a membership change produced over HTTP to
// the room's feed. It never blocks the caller.
func (cs *ChatServer) NotifyMembership(roomId string, user types.User, joined bool) {
	cs.notify(roomId, &ServerMessage{
		Notification: &Notification{
			Membership: &MembershipChange{
				RoomId: roomId,
				Joined: joined,
				User:   user,
			},
		},
	})
}

// NotifyOutput pushes a new room output to the room's feed.
func (cs *ChatServer) NotifyOutput(output types.RoomOutput) {
	cs.notify(output.RoomId, &ServerMessage{
		Notification: &Notification{
			Output: &OutputAdded{
				RoomId: output.RoomId,
				Output: output,
			},
		},
	})
}

func (cs *ChatServer) notify(roomId string, msg *ServerMessage) {
	select {
	case cs.notifyChan <- &roomNotification{roomId: roomId, msg: msg}:
	default:
		cs.log.Printf("notify channel full, dropping notification for room %q", roomId)
	}
}

func (cs *ChatServer) broadcast(roomId string, msg *ServerMessage) {
	msg.Timestamp = Now()

	for client := range cs.roomClients[roomId] {
		if client == msg.SkipClient {
			continue
		}

		client.queueMessage(msg)
	}
}

func (cs *ChatServer) addClient(c *Client) {
	cs.clientsLock.Lock()
	defer cs.clientsLock.Unlock()
	cs.clients[c] = struct{}{}
}

func (cs *ChatServer) removeClient(c *Client) {
	cs.clientsLock.Lock()
	defer cs.clientsLock.Unlock()
	delete(cs.clients, c)

	for roomId, clients := range cs.roomClients {
		delete(clients, c)
		if len(clients) == 0 {
			delete(cs.roomClients, roomId)
		}
	}
}

func (cs *ChatServer) Shutdown(ctx context.Context) error {
	cs.clientsLock.Lock()
	for c := range cs.clients {
		c.stopClient()
	}
	cs.clientsLock.Unlock()

	close(cs.stop)

	select {
	case <-cs.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
