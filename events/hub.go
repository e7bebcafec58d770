package events

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-reservation/models"
	"github.com/yeremiapane/restaurant-reservation/utils"
)

// Event types pushed to connected dashboard clients.
const (
	EventReservationCreate   = "reservation_create"
	EventReservationApprove  = "reservation_approve"
	EventReservationReject   = "reservation_reject"
	EventReservationCancel   = "reservation_cancel"
	EventReservationComplete = "reservation_complete"
	EventTableCreate         = "table_create"
	EventTableDelete         = "table_delete"
	EventDashboardUpdate     = "dashboard_update"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds the websocket connections of dashboard clients (admin,
// staff) and fans reservation events out to all of them.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler upgrades a dashboard client to websocket and keeps the
// connection registered until it closes.
func Handler(c *gin.Context) {
	role := c.Param("role")
	if role == "" {
		role = "staff"
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("websocket upgrade failed: %v", err)
		return
	}

	RegisterClient(conn, role)
	defer UnregisterClient(conn)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastReservation pushes a reservation lifecycle event.
func BroadcastReservation(event string, res models.Reservation) {
	broadcast(Message{Event: event, Data: res})
}

// BroadcastTableCreate announces a new table in the catalog.
func BroadcastTableCreate(table models.Table) {
	broadcast(Message{Event: EventTableCreate, Data: table})
}

// BroadcastTableDelete announces a table removal.
func BroadcastTableDelete(tableID string) {
	broadcast(Message{Event: EventTableDelete, Data: map[string]interface{}{"table_id": tableID}})
}

// BroadcastDashboardUpdate pushes refreshed dashboard stats.
func BroadcastDashboardUpdate(data interface{}) {
	broadcast(Message{Event: EventDashboardUpdate, Data: data})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("error marshaling event %s: %v", msg.Event, err)
		return
	}

	for conn, role := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("error sending %s to %s client: %v", msg.Event, role, err)
		}
	}
}
