package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/trusttaste/booking-core/models"
)

// Event types pushed to connected back-office dashboards.
const (
	EventTableUpdate       = "table_update"
	EventReservationCreate = "reservation_create"
	EventReservationUpdate = "reservation_update"
	EventOrderCreate       = "order_create"
	EventOrderUpdate       = "order_update"
	EventBookingVerified   = "booking_verified"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected dashboard client and serializes broadcasts.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastTableUpdate pushes a table's refreshed availability status.
func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{
		Event: EventTableUpdate,
		Data:  table,
	})
}

func BroadcastReservationCreate(reservation models.Reservation) {
	broadcast(Message{
		Event: EventReservationCreate,
		Data:  reservation,
	})
}

func BroadcastReservationUpdate(reservation models.Reservation) {
	broadcast(Message{
		Event: EventReservationUpdate,
		Data:  reservation,
	})
}

func BroadcastOrderCreate(order models.Order) {
	broadcast(Message{
		Event: EventOrderCreate,
		Data:  order,
	})
}

func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

// BroadcastBookingVerified announces a verification flip.
func BroadcastBookingVerified(kind string, id uint) {
	broadcast(Message{
		Event: EventBookingVerified,
		Data: map[string]interface{}{
			"booking_kind": kind,
			"booking_id":   id,
		},
	})
}

func BroadcastMessage(msg Message) {
	broadcast(msg)
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
