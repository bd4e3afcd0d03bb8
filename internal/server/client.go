package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"labyrinth-server/internal/agent"
	"labyrinth-server/internal/engine"
	"labyrinth-server/internal/network"
	"labyrinth-server/pkg/api"
	"labyrinth-server/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и сессией
type Client struct {
	Game    *engine.GameService
	Hub     *network.Broadcaster
	Conn    *websocket.Conn
	Session *engine.Session

	id   string
	send <-chan api.ServerResponse
	log  *logrus.Entry
}

// NewClient создает сессию, подключает к ней автопилот и подписку в хабе.
func NewClient(game *engine.GameService, hub *network.Broadcaster, conn *websocket.Conn) (*Client, error) {
	session, err := game.Create()
	if err != nil {
		return nil, err
	}

	c := &Client{
		Game:    game,
		Hub:     hub,
		Conn:    conn,
		Session: session,
		id:      session.ID.String(),
		log:     logger.Log.WithField("session", session.ID.String()),
	}

	session.AttachPilot(agent.NewSolver(session, game.Settings().StepDelay))
	c.send = hub.Register(c.id)
	// Регистрация сразу отдает NEW_LEVEL
	session.Register(&hubObserver{hub: hub, id: c.id})

	c.log.WithField("remote", conn.RemoteAddr().String()).Info("Client connected")
	return c, nil
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c.id)
		c.Game.Remove(c.Session.ID)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.WithError(err).Error("WS error")
			}
			return
		}

		if _, err := c.Session.ExecuteRaw(cmd.Action, cmd.Payload); err != nil {
			c.Hub.SendTo(c.id, errorResponse(c.id, cmd.Action, err))
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}

// hubObserver переводит снимки мира в DTO и кладет их в канал сессии.
type hubObserver struct {
	hub *network.Broadcaster
	id  string
}

func (o *hubObserver) OnNewLevel(s engine.Snapshot) {
	o.hub.SendTo(o.id, engine.BuildResponse(o.id, api.TypeNewLevel, s))
}

func (o *hubObserver) OnUpdate(s engine.Snapshot) {
	o.hub.SendTo(o.id, engine.BuildResponse(o.id, api.TypeUpdate, s))
}

func errorResponse(id, action string, err error) api.ServerResponse {
	return api.ServerResponse{
		Type:      api.TypeError,
		SessionID: id,
		Logs:      []api.LogEntry{{Type: "ERROR", Text: action + ": " + err.Error()}},
	}
}
