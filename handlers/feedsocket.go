package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"imagestore/feed"
	"imagestore/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
)

// SendSocketFunc returns true if data was successfully sent
type SendSocketFunc func([]byte) bool
type ConnectedClient struct {
	fun SendSocketFunc
}

// ConnectedClients is needed as a user may be connected more than once
type ConnectedClients []*ConnectedClient

var (
	ConnectedUsers = cmap.New[ConnectedClients]()
	upgrader       = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	subscribeOnce sync.Once
)

func addClient(id string, c *ConnectedClient) {
	ConnectedUsers.Upsert(id, ConnectedClients{c}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if exist {
			return append(valueInMap, c)
		}
		return newValue
	})
}

func removeClient(id string, c *ConnectedClient) {
	ConnectedUsers.Upsert(id, ConnectedClients{}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if !exist {
			return newValue
		}
		for _, oc := range valueInMap {
			if oc == c {
				continue
			}
			newValue = append(newValue, oc)
		}
		return newValue
	})
}

func broadcastAction(action feed.Action) {
	data, err := json.Marshal(FeedEntry{
		ID:      action.ID,
		Actor:   action.ActorID,
		Verb:    action.Verb,
		AlbumID: action.AlbumID,
		Created: action.CreatedAt,
	})
	if err != nil {
		return
	}
	for item := range ConnectedUsers.IterBuffered() {
		for _, client := range item.Val {
			client.fun(data)
		}
	}
}

// FeedLive streams newly recorded feed actions to the connected client
func FeedLive(c *gin.Context, user *models.User) {
	subscribeOnce.Do(func() {
		feed.Subscribe(broadcastAction)
	})
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Print("upgrade:", err)
		return
	}
	defer conn.Close()

	// Setup client
	isConnected := true
	id := strconv.FormatUint(user.ID, 10)
	client := ConnectedClient{}
	client.fun = func(data []byte) bool {
		if !isConnected {
			return false
		}
		err := conn.WriteMessage(websocket.TextMessage, data)
		if err != nil {
			log.Println("write err:", err)
			isConnected = false
			return false
		}
		return true
	}
	addClient(id, &client)
	defer removeClient(id, &client)
	// Main read cycle
	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			isConnected = false
			break
		}
		if string(message) == "ping" {
			_ = conn.WriteMessage(mt, []byte("pong"))
		}
	}
}
