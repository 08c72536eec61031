package staff

import (
	"net/http"
	"time"

	"github.com/dujiao-next/tableorder/internal/constants"
	handlershared "github.com/dujiao-next/tableorder/internal/http/handlers/shared"
	"github.com/dujiao-next/tableorder/internal/http/response"
	"github.com/dujiao-next/tableorder/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	orderFeedPageSize   = 100
	orderFeedWriteWait  = 10 * time.Second
	orderFeedPongWait   = 60 * time.Second
	orderFeedPingPeriod = 50 * time.Second
)

var orderFeedUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// orderFeedMessage 推送给看板的消息：触发事件与最新订单全集
type orderFeedMessage struct {
	Event  string              `json:"event"`
	Orders []service.OrderView `json:"orders"`
}

// StreamOrders 订单实时看板；订单表任何变更都会推送完整列表
func (h *Handler) StreamOrders(c *gin.Context) {
	if !websocket.IsWebSocketUpgrade(c.Request) {
		respondError(c, response.CodeBadRequest, "error.realtime_upgrade_required", nil)
		return
	}
	if h.Broker == nil {
		respondError(c, response.CodeInternal, "error.realtime_unavailable", nil)
		return
	}
	conn, err := orderFeedUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		handlershared.RequestLog(c).Warnw("order_feed_upgrade_failed", "error", err)
		return
	}
	defer conn.Close()

	sub := h.Broker.Subscribe(constants.RealtimeTableOrders, constants.RealtimeEventAll)
	defer sub.Unsubscribe()

	status := c.Query("status")
	log := handlershared.RequestLog(c)
	log.Infow("order_feed_connected", "status", status)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(orderFeedPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(orderFeedPongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	push := func(event string) bool {
		orders, _, err := h.OrderService.List(service.OrderListInput{
			Status:   status,
			Page:     1,
			PageSize: orderFeedPageSize,
		})
		if err != nil {
			log.Warnw("order_feed_refetch_failed", "error", err)
			return true
		}
		_ = conn.SetWriteDeadline(time.Now().Add(orderFeedWriteWait))
		if err := conn.WriteJSON(orderFeedMessage{Event: event, Orders: orders}); err != nil {
			log.Debugw("order_feed_write_failed", "error", err)
			return false
		}
		return true
	}

	if !push("SNAPSHOT") {
		return
	}

	ctx := c.Request.Context()
	ticker := time.NewTicker(orderFeedPingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-closed:
			log.Infow("order_feed_disconnected")
			return
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutdown"),
				time.Now().Add(orderFeedWriteWait))
			return
		case event, ok := <-sub.C:
			if !ok {
				return
			}
			if !push(event.Type) {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(orderFeedWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
