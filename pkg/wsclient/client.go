package wsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Diegoval-Dev/R-Lab2/framing-go/pkg/frame"
)

// DefaultURL es la dirección del receptor cuando no se configura otra.
const DefaultURL = "ws://0.0.0.0:8765"

// URLFromEnv devuelve WS_URL si está definida, o DefaultURL.
func URLFromEnv() string {
	if u := os.Getenv("WS_URL"); u != "" {
		return u
	}
	return DefaultURL
}

// Client envía tramas al receptor por WebSocket.
type Client struct {
	URL              string
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration
	// ReadTimeout es cuánto se espera la respuesta del receptor; 0 no espera respuesta.
	ReadTimeout time.Duration
}

// New crea un cliente con los timeouts por defecto.
func New(url string) *Client {
	return &Client{
		URL:              url,
		HandshakeTimeout: 5 * time.Second,
		WriteTimeout:     5 * time.Second,
		ReadTimeout:      10 * time.Second,
	}
}

// Reply es la respuesta del receptor. JSON es nil si la respuesta no era JSON.
type Reply struct {
	Raw  string
	JSON map[string]any
}

// Send se conecta al receptor, envía la trama como un mensaje de texto JSON y
// espera una respuesta. Devuelve (nil, nil) cuando ReadTimeout es 0.
func (c *Client) Send(ctx context.Context, f frame.Frame) (*Reply, error) {
	payload, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("error serializando la trama: %w", err)
	}

	dialer := websocket.Dialer{
		Proxy:            websocket.DefaultDialer.Proxy,
		HandshakeTimeout: c.HandshakeTimeout,
	}
	conn, _, err := dialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("error conectando a %s: %w", c.URL, err)
	}
	defer conn.Close()

	if c.WriteTimeout > 0 {
		_ = conn.SetWriteDeadline(time.Now().Add(c.WriteTimeout))
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return nil, fmt.Errorf("error enviando la trama: %w", err)
	}

	var reply *Reply
	if c.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(c.ReadTimeout))
		_, data, err := conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("error leyendo respuesta del receptor: %w", err)
		}
		reply = &Reply{Raw: string(data)}
		var decoded map[string]any
		if json.Unmarshal(data, &decoded) == nil {
			reply.JSON = decoded
		}
	}

	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))

	return reply, nil
}

// SendFrame se conecta al servidor WebSocket en url y envía la trama sin esperar respuesta.
func SendFrame(ctx context.Context, url string, f frame.Frame) error {
	c := New(url)
	c.ReadTimeout = 0
	_, err := c.Send(ctx, f)
	return err
}
