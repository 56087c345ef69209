package checkoutHandler

import (
	"VyapaarAI/internal/api/checkout"
	"VyapaarAI/internal/entity"
	"VyapaarAI/internal/middleware"
	contextPkg "VyapaarAI/pkg/context"
	"strings"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const (
	streamReadTimeout  = 60 * time.Second
	streamWriteTimeout = 10 * time.Second
	checkoutCommand    = "checkout"
)

// handleStream turns every binary frame into a running bill. A text
// "checkout" message finalises the last bill produced on the connection.
func (h *CheckoutHandler) handleStream(c *websocket.Conn) {
	requestID, _ := c.Locals(middleware.RequestIDKey).(string)
	log := h.log.WithField("request_id", requestID)

	log.Info("Checkout stream client connected")
	defer log.Info("Checkout stream client disconnected")

	c.SetPingHandler(func(data string) error {
		if err := c.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(5*time.Second)); err != nil {
			log.Errorf("Error sending pong: %v", err)
		}
		return nil
	})

	lastBill := entity.EmptyBill()

	for {
		if err := c.SetReadDeadline(time.Now().Add(streamReadTimeout)); err != nil {
			log.Errorf("Error setting read deadline: %v", err)
			return
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Errorf("Checkout stream error: %v", err)
			}
			return
		}

		var reply interface{}
		switch messageType {
		case websocket.BinaryMessage:
			reply, lastBill = h.processFrame(requestID, message, lastBill, log)
		case websocket.TextMessage:
			if strings.TrimSpace(string(message)) != checkoutCommand {
				reply = checkout.StreamError{Error: "unsupported command"}
				break
			}
			reply, lastBill = h.finishStream(requestID, lastBill, log)
		default:
			log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		if err := c.SetWriteDeadline(time.Now().Add(streamWriteTimeout)); err != nil {
			log.Errorf("Error setting write deadline: %v", err)
			return
		}
		if err := c.WriteJSON(reply); err != nil {
			log.Errorf("Error writing JSON response: %v", err)
			return
		}
	}
}

func (h *CheckoutHandler) processFrame(requestID string, frame []byte, lastBill entity.Bill, log *logrus.Entry) (interface{}, entity.Bill) {
	ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), h.detectTimeout)
	defer cancel()

	result, err := h.checkoutService.ProcessFrame(ctx, frame)
	if err != nil {
		log.WithError(err).Warn("Error processing checkout frame")
		return checkout.StreamError{Error: err.Error()}, lastBill
	}
	return result, result.Bill
}

func (h *CheckoutHandler) finishStream(requestID string, bill entity.Bill, log *logrus.Entry) (interface{}, entity.Bill) {
	ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), 10*time.Second)
	defer cancel()

	id, err := h.checkoutService.Checkout(ctx, bill)
	if err != nil {
		log.WithError(err).Warn("Error finalising stream bill")
		return checkout.StreamError{Error: err.Error()}, bill
	}
	return checkout.StreamCheckoutResponse{BillID: id, Bill: bill}, entity.EmptyBill()
}
