package feedpush

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID uint) *Client {
	return &Client{UserID: userID, Send: make(chan []byte, 4)}
}

func TestAddClientReplacesOldConnection(t *testing.T) {
	m := GetManager()
	old := newTestClient(1001)
	m.AddClient(1001, old)

	replacement := newTestClient(1001)
	m.AddClient(1001, replacement)
	defer m.RemoveClient(1001, replacement)

	// 旧连接的通道被关闭，用户仍在线
	_, ok := <-old.Send
	assert.False(t, ok)
	assert.True(t, m.IsOnline(1001))

	// 消息送达的是新连接
	m.SendToUser(1001, []byte("hello"))
	select {
	case msg := <-replacement.Send:
		assert.Equal(t, "hello", string(msg))
	default:
		t.Fatal("新连接未收到消息")
	}
}

func TestRemoveClientIgnoresReplacedConnection(t *testing.T) {
	m := GetManager()
	old := newTestClient(1002)
	m.AddClient(1002, old)
	replacement := newTestClient(1002)
	m.AddClient(1002, replacement)

	// 被顶替的旧连接清理时不能移除新连接的登记
	assert.False(t, m.RemoveClient(1002, old))
	assert.True(t, m.IsOnline(1002))

	assert.True(t, m.RemoveClient(1002, replacement))
	assert.False(t, m.IsOnline(1002))
}

func TestSendToOfflineUserIsNoop(t *testing.T) {
	m := GetManager()
	require.False(t, m.IsOnline(1003))
	m.SendToUser(1003, []byte("ignored"))
}

func TestSendToUserFullBufferDropped(t *testing.T) {
	m := GetManager()
	client := &Client{UserID: 1004, Send: make(chan []byte, 1)}
	m.AddClient(1004, client)
	defer m.RemoveClient(1004, client)

	m.SendToUser(1004, []byte("first"))
	// 缓冲已满，后续消息被丢弃而不是阻塞
	m.SendToUser(1004, []byte("second"))

	msg := <-client.Send
	assert.Equal(t, "first", string(msg))
	select {
	case <-client.Send:
		t.Fatal("缓冲满时消息应被丢弃")
	default:
	}
}

// 并发推送与连接增删交织时不得panic（发送遇到已关闭通道会panic）
func TestSendToUserConcurrentWithReconnect(t *testing.T) {
	m := GetManager()
	const userID = uint(1005)
	done := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				m.SendToUser(userID, []byte("event"))
			}
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			client := newTestClient(userID)
			m.AddClient(userID, client)
			go func(c *Client) {
				for range c.Send {
				}
			}(client)
			m.RemoveClient(userID, client)
		}
		close(done)
	}()
	wg.Wait()

	assert.False(t, m.IsOnline(userID))
}
