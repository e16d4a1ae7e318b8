package feedpush

import (
	"encoding/json"
	"sync"

	"microblog/internal/model"

	"github.com/gorilla/websocket"
)

// Client 代表一个WebSocket连接的用户
type Client struct {
	UserID uint
	Conn   *websocket.Conn
	Send   chan []byte
}

// Manager 管理所有在线用户的WebSocket连接
// 新文章事件只推送给当前在线的粉丝；离线用户以关注流查询为准，不做离线补推
type Manager struct {
	clients map[uint]*Client
	lock    sync.RWMutex
}

var manager = &Manager{
	clients: make(map[uint]*Client),
}

// GetManager 获取全局连接管理器
func GetManager() *Manager {
	return manager
}

// AddClient 添加新连接
// 同一用户重复连接时关闭旧连接
func (m *Manager) AddClient(userID uint, client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if old, ok := m.clients[userID]; ok {
		close(old.Send)
	}
	m.clients[userID] = client
}

// RemoveClient 移除连接，返回是否真正移除
// 被顶替的旧连接在这里拿不到登记项，返回false
func (m *Manager) RemoveClient(userID uint, client *Client) bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	// 只移除仍然登记的同一连接，避免误关重连后的新连接
	if c, ok := m.clients[userID]; ok && c == client {
		close(c.Send)
		delete(m.clients, userID)
		return true
	}
	return false
}

// SendToUser 推送消息给指定在线用户
// 持读锁完成发送：Send只会在写锁内被关闭，读锁期间不会遇到已关闭的通道
func (m *Manager) SendToUser(userID uint, msg []byte) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	client, ok := m.clients[userID]
	if !ok {
		return
	}
	select {
	case client.Send <- msg:
	default:
		// 发送缓冲已满，可能连接已断开，丢弃
	}
}

// IsOnline 判断用户是否有活跃连接
func (m *Manager) IsOnline(userID uint) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, ok := m.clients[userID]
	return ok
}

// newPostEvent 新文章推送事件
type newPostEvent struct {
	Type      string `json:"type"`
	PostID    uint   `json:"post_id"`
	AuthorID  uint   `json:"author_id"`
	Title     string `json:"title"`
	Timestamp int64  `json:"timestamp"`
}

// NotifyNewPost 将新文章事件扇出给在线粉丝
func (m *Manager) NotifyNewPost(followerIDs []uint, post *model.Post) {
	event := newPostEvent{
		Type:      "new_post",
		PostID:    post.ID,
		AuthorID:  post.AuthorID,
		Title:     post.Title,
		Timestamp: post.CreatedAt.Unix(),
	}
	msg, err := json.Marshal(event)
	if err != nil {
		return
	}
	for _, id := range followerIDs {
		if id == post.AuthorID {
			continue
		}
		m.SendToUser(id, msg)
	}
}
