package websocketPkg

import (
	"VyapaarAI/internal/entity"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

const defaultDetectionURL = "ws://localhost:8001/api/v1/detect/ws"

var ErrNotConnected = errors.New("not connected to detection service")

// InferenceBox is one detection as sent by the inference server. Box is
// [x1, y1, x2, y2] in pixels of the frame that was sent.
type InferenceBox struct {
	ClassID    int       `json:"class_id"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	Box        []float64 `json:"box"`
}

type InferenceResult struct {
	Detections []InferenceBox `json:"detections"`
	Error      string         `json:"error,omitempty"`
}

func (r InferenceResult) ToEntities() []entity.Detection {
	out := make([]entity.Detection, 0, len(r.Detections))
	for _, d := range r.Detections {
		det := entity.Detection{
			ClassID:    d.ClassID,
			Label:      d.Label,
			Confidence: d.Confidence,
		}
		if len(d.Box) == 4 {
			det.Box = entity.BoundingBox{X1: d.Box[0], Y1: d.Box[1], X2: d.Box[2], Y2: d.Box[3]}
		}
		out = append(out, det)
	}
	return out
}

type IWebsocket interface {
	ProcessFrame(frame []byte) (*InferenceResult, error)
	IsConnected() bool
	Reconnect() error
	CloseConnections()
}

type webSocketClient struct {
	url          string
	conn         *websocket.Conn
	mu           sync.Mutex
	log          *logrus.Logger
	pingInterval time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewAIWebSocketClient(log *logrus.Logger) IWebsocket {
	url := os.Getenv("AI_DETECTION_URL")
	if url == "" {
		url = defaultDetectionURL
	}

	client := NewWithURL(url, log)
	go client.connectInBackground()

	return client
}

func NewWithURL(url string, log *logrus.Logger) *webSocketClient {
	return &webSocketClient{
		url:          url,
		log:          log,
		pingInterval: 30 * time.Second,
		readTimeout:  30 * time.Second,
		writeTimeout: 5 * time.Second,
	}
}

func (c *webSocketClient) connectInBackground() {
	if err := c.Reconnect(); err != nil {
		c.log.Warnf("Initial connection to detection service failed: %v. Will retry on demand.", err)
		return
	}
	c.log.Info("Successfully connected to detection service")
}

func (c *webSocketClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

func (c *webSocketClient) Reconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}

	c.log.Infof("Connecting to detection service at %s", c.url)

	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 10 * time.Second

	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", c.url, err)
	}

	conn.SetPingHandler(func(appData string) error {
		if err := conn.WriteControl(websocket.PongMessage, []byte(appData), time.Now().Add(c.writeTimeout)); err != nil {
			c.log.Warnf("Error sending pong: %v", err)
		}
		return nil
	})

	c.conn = conn
	go c.keepAlive(conn)

	return nil
}

func (c *webSocketClient) CloseConnections() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *webSocketClient) keepAlive(conn *websocket.Conn) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		if c.conn != conn {
			c.mu.Unlock()
			return
		}

		err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(c.writeTimeout))
		if err != nil {
			c.log.Warnf("Ping failed for detection service, marking connection as dead: %v", err)
			c.conn = nil
			conn.Close()
			c.mu.Unlock()
			return
		}

		c.mu.Unlock()
	}
}

func (c *webSocketClient) getConnection() (*websocket.Conn, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, ErrNotConnected
	}
	return c.conn, nil
}

// ProcessFrame sends one encoded image and waits for its detections. The
// connection carries one request at a time.
func (c *webSocketClient) ProcessFrame(frame []byte) (*InferenceResult, error) {
	if _, err := c.getConnection(); err != nil {
		if err := c.Reconnect(); err != nil {
			return nil, fmt.Errorf("cannot connect to detection service: %w", err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	conn := c.conn
	if conn == nil {
		return nil, ErrNotConnected
	}

	conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if err := conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
		c.conn = nil
		conn.Close()
		return nil, fmt.Errorf("error sending frame: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(c.readTimeout))
	_, message, err := conn.ReadMessage()
	if err != nil {
		c.conn = nil
		conn.Close()
		return nil, fmt.Errorf("error reading detection message: %w", err)
	}

	conn.SetReadDeadline(time.Time{})
	conn.SetWriteDeadline(time.Time{})

	var result InferenceResult
	if err := jsoniter.Unmarshal(message, &result); err != nil {
		return nil, fmt.Errorf("error unmarshaling detection response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("detection service: %s", result.Error)
	}

	c.log.WithField("detections", len(result.Detections)).Debug("Received response from detection service")

	return &result, nil
}
