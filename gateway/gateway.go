// Package gateway is the REST ingestion edge: it validates JSON order
// payloads, encodes them as NewOrderSingle/OrderCancelRequest frames and
// offers them onto the inbound orders stream. Client-level validation errors
// stop here; nothing malformed reaches the engine.
package gateway

import (
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"falcon-exchange/sbe"
)

// OrderStream is the inbound transport as the gateway sees it: a plain offer
// of one encoded frame.
type OrderStream interface {
	Offer(frame []byte) error
}

// CreateOrder is the POST /orders payload.
type CreateOrder struct {
	ProductID string   `json:"product_id" binding:"required"`
	Side      string   `json:"side" binding:"required"`
	Type      string   `json:"type" binding:"required"`
	Size      float64  `json:"size" binding:"required"`
	Price     *float64 `json:"price"`
}

// CancelOrder is the POST /orders/cancel payload.
type CancelOrder struct {
	OrderID   string `json:"order_id" binding:"required"`
	ProductID string `json:"product_id" binding:"required"`
}

// OrderResponse echoes the accepted order back to the client.
type OrderResponse struct {
	ID        string   `json:"id"`
	ProductID string   `json:"product_id"`
	Side      string   `json:"side"`
	Type      string   `json:"type"`
	CreatedAt string   `json:"created_at"`
	Status    string   `json:"status"`
	Price     *float64 `json:"price,omitempty"`
	Size      float64  `json:"size"`
}

// Server holds the gateway's dependencies.
type Server struct {
	stream OrderStream
	log    *zap.Logger
	// account stands in for an authenticated party id until auth exists.
	account sbe.UUID
}

// NewServer creates a gateway publishing onto stream.
func NewServer(stream OrderStream, log *zap.Logger) *Server {
	return &Server{
		stream:  stream,
		log:     log,
		account: sbe.UUID(uuid.New()),
	}
}

// Router builds the gin engine with the order routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/orders", s.postOrder)
	r.POST("/orders/cancel", s.postCancel)
	return r
}

type parsedOrder struct {
	symbol        sbe.Symbol
	side          sbe.Side
	ordType       sbe.OrdType
	qtyMantissa   int64
	priceMantissa int64
}

func parseOrder(payload *CreateOrder) (parsedOrder, string) {
	var p parsedOrder

	symbol, errMsg := parseSymbol(payload.ProductID)
	if errMsg != "" {
		return p, errMsg
	}
	p.symbol = symbol

	switch strings.ToLower(payload.Side) {
	case "buy":
		p.side = sbe.SideBuy
	case "sell":
		p.side = sbe.SideSell
	default:
		return p, "side must be \"buy\" or \"sell\""
	}

	switch strings.ToLower(payload.Type) {
	case "limit":
		p.ordType = sbe.OrdTypeLimit
	case "market":
		p.ordType = sbe.OrdTypeMarket
	default:
		return p, "type must be \"limit\" or \"market\""
	}

	switch p.ordType {
	case sbe.OrdTypeLimit:
		if payload.Price == nil {
			return p, "price is required for limit orders"
		}
		if *payload.Price <= 0 {
			return p, "price must be positive for limit orders"
		}
	case sbe.OrdTypeMarket:
		if payload.Price != nil {
			return p, "price must not be provided for market orders"
		}
	}

	if payload.Size <= 0 {
		return p, "size must be greater than 0"
	}
	p.qtyMantissa = int64(math.Round(payload.Size * 1e8))
	if p.qtyMantissa <= 0 {
		return p, "size is below the minimum increment"
	}

	if payload.Price != nil {
		p.priceMantissa = int64(math.Round(*payload.Price * 1e8))
	} else {
		p.priceMantissa = sbe.NullDecimal
	}
	return p, ""
}

func parseSymbol(productID string) (sbe.Symbol, string) {
	var symbol sbe.Symbol
	upper := strings.ToUpper(productID)
	if upper == "" || len(upper) > len(symbol) {
		return symbol, "product_id must be between 1 and 6 characters"
	}
	copy(symbol[:], upper)
	return symbol, ""
}

func (s *Server) postOrder(c *gin.Context) {
	var payload CreateOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	parsed, errMsg := parseOrder(&payload)
	if errMsg != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": errMsg})
		return
	}

	clOrdID := sbe.UUID(uuid.New())
	transactTime := uint64(time.Now().UnixNano())

	frame := make([]byte, sbe.NewOrderSingleMessageSize)
	enc := sbe.EncodeNewOrderSingleHeader(frame)
	enc.ClOrdID(clOrdID)
	enc.Account(s.account)
	enc.Symbol(parsed.symbol)
	enc.Side(parsed.side)
	enc.TransactTime(transactTime)
	enc.OrdType(parsed.ordType)
	enc.OrderQty(parsed.qtyMantissa)
	enc.Price(parsed.priceMantissa)

	if err := s.stream.Offer(frame); err != nil {
		s.log.Error("failed to offer order to inbound stream", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "order stream unavailable"})
		return
	}

	resp := OrderResponse{
		ID:        uuid.UUID(clOrdID).String(),
		ProductID: strings.ToUpper(payload.ProductID),
		Side:      strings.ToLower(payload.Side),
		Type:      strings.ToLower(payload.Type),
		CreatedAt: time.Unix(0, int64(transactTime)).UTC().Format(time.RFC3339Nano),
		Status:    "open",
		Price:     payload.Price,
		Size:      payload.Size,
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) postCancel(c *gin.Context) {
	var payload CancelOrder
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	origClOrdID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "order_id must be a UUID"})
		return
	}
	symbol, errMsg := parseSymbol(payload.ProductID)
	if errMsg != "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": errMsg})
		return
	}

	frame := make([]byte, sbe.OrderCancelRequestMessageSize)
	enc := sbe.EncodeOrderCancelRequestHeader(frame)
	enc.OrigClOrdID(sbe.UUID(origClOrdID))
	enc.ClOrdID(sbe.UUID(uuid.New()))
	enc.Account(s.account)
	enc.TransactTime(uint64(time.Now().UnixNano()))
	enc.Symbol(symbol)
	enc.Side(sbe.SideNull)

	if err := s.stream.Offer(frame); err != nil {
		s.log.Error("failed to offer cancel to inbound stream", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "order stream unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"order_id": payload.OrderID, "status": "cancel_requested"})
}
