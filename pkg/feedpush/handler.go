package feedpush

import (
	"net/http"
	"time"

	"microblog/internal/repository"
	"microblog/pkg/redis"
	"microblog/pkg/response"
	"microblog/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	pingInterval = 30 * time.Second // 发送ping的间隔
	readTimeout  = 90 * time.Second // 未收到任何数据则断开
	writeTimeout = 10 * time.Second // 单次写超时
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // 允许跨域
	},
}

// Handler 关注流推送的WebSocket入口
type Handler struct {
	tokenSvc *token.Service
	userRepo *repository.UserRepository
}

// NewHandler 创建推送入口
func NewHandler(tokenSvc *token.Service, userRepo *repository.UserRepository) *Handler {
	return &Handler{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Serve 建立WebSocket连接
// 以访问令牌认证：?token=<auth token>
func (h *Handler) Serve(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		response.Unauthorized(c, "缺少token")
		return
	}

	userID, err := h.tokenSvc.VerifyAuth(tokenString)
	if err != nil {
		response.Unauthorized(c, "token无效或已过期")
		return
	}

	user, err := h.userRepo.GetByID(userID)
	if err != nil {
		response.Unauthorized(c, "用户不存在")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 64),
	}
	GetManager().AddClient(userID, client)

	// 连接建立视为一次活动心跳
	_ = redis.TouchPresence(userID, user.Username)

	go h.writePump(client)
	go h.readPump(client)
}

// readPump 读循环：只消费控制帧，检测连接断开
func (h *Handler) readPump(client *Client) {
	defer func() {
		// 被新连接顶替时登记项已不属于本连接，不能清掉新连接的在线状态
		if GetManager().RemoveClient(client.UserID, client) {
			_ = redis.ClearPresence(client.UserID)
		}
		_ = client.Conn.Close()
	}()

	_ = client.Conn.SetReadDeadline(time.Now().Add(readTimeout))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
		_ = client.Conn.SetReadDeadline(time.Now().Add(readTimeout))
	}
}

// writePump 写循环：推送事件并按间隔发ping
func (h *Handler) writePump(client *Client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		_ = client.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if !ok {
				// 通道关闭，连接已被移除
				_ = client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
