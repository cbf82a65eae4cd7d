// server/handlers.go
package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rustyeddy/tradedash/warehouse"
)

// Handler is the query gateway: a thin pass-through translating HTTP
// filter parameters into warehouse queries. All endpoints are reads.
type Handler struct {
	store *warehouse.Store
	log   *logrus.Logger
}

func NewHandler(store *warehouse.Store, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{store: store, log: log}
}

func (h *Handler) GetSymbols(c *gin.Context) {
	symbols, err := h.store.Symbols()
	if err != nil {
		h.fail(c, err)
		return
	}
	if symbols == nil {
		symbols = []warehouse.Symbol{}
	}
	c.JSON(http.StatusOK, symbols)
}

func (h *Handler) GetTraders(c *gin.Context) {
	traders, err := h.store.Traders()
	if err != nil {
		h.fail(c, err)
		return
	}
	if traders == nil {
		traders = []warehouse.Trader{}
	}
	c.JSON(http.StatusOK, traders)
}

func (h *Handler) GetStrategies(c *gin.Context) {
	strategies, err := h.store.Strategies()
	if err != nil {
		h.fail(c, err)
		return
	}
	if strategies == nil {
		strategies = []warehouse.Strategy{}
	}
	c.JSON(http.StatusOK, strategies)
}

func (h *Handler) GetTrades(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	trades, err := h.store.ListTrades(filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, trades)
}

func (h *Handler) GetPerformance(c *gin.Context) {
	strategyID, err := strconv.ParseInt(c.Param("strategy_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "strategy_id must be an integer"})
		return
	}

	series, err := h.store.Performance(strategyID)
	if err != nil {
		if errors.Is(err, warehouse.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

func (h *Handler) GetKPIs(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.store.SummaryKPIs(filter)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) GetLoads(c *gin.Context) {
	runs, err := h.store.LoadRuns()
	if err != nil {
		h.fail(c, err)
		return
	}
	if runs == nil {
		runs = []warehouse.LoadRun{}
	}
	c.JSON(http.StatusOK, runs)
}

func (h *Handler) fail(c *gin.Context, err error) {
	h.log.WithError(err).Error("query failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

// parseFilter maps the query string onto a TradeFilter. Dates use the
// warehouse layout; limit must be a non-negative integer.
func parseFilter(c *gin.Context) (warehouse.TradeFilter, error) {
	filter := warehouse.TradeFilter{
		Symbol:     c.Query("symbol"),
		Strategy:   c.Query("strategy"),
		Trader:     c.Query("trader"),
		AssetClass: c.Query("asset_class"),
	}

	var err error
	if from := c.Query("date_from"); from != "" {
		filter.DateFrom, err = time.Parse(warehouse.DateLayout, from)
		if err != nil {
			return filter, errors.New("date_from must be YYYY-MM-DD")
		}
	}
	if to := c.Query("date_to"); to != "" {
		filter.DateTo, err = time.Parse(warehouse.DateLayout, to)
		if err != nil {
			return filter, errors.New("date_to must be YYYY-MM-DD")
		}
	}
	if limit := c.Query("limit"); limit != "" {
		filter.Limit, err = strconv.Atoi(limit)
		if err != nil || filter.Limit < 0 {
			return filter, errors.New("limit must be a non-negative integer")
		}
	}
	return filter, nil
}
