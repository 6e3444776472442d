package catalog

import (
	"encoding/json"
	"math"
	"net/http"

	"go.uber.org/zap"

	"trade2cart/internal/vendors"
)

type Controller struct {
	index  *Index
	logger *zap.Logger
}

func NewController(index *Index, logger *zap.Logger) *Controller {
	return &Controller{
		index:  index,
		logger: logger,
	}
}

type rateDTO struct {
	Name     string  `json:"name"`
	Rate     float64 `json:"rate"`
	Unit     string  `json:"unit"`
	Location string  `json:"location"`
}

type ratesResponse struct {
	Rates []rateDTO `json:"rates"`
}

// HandleListRates returns today's trade prices for the vendor's location.
func (c *Controller) HandleListRates(w http.ResponseWriter, r *http.Request) {
	v, ok := vendors.FromContext(r.Context())
	if !ok {
		c.writeJSON(w, http.StatusForbidden, map[string]string{
			"error":   "FORBIDDEN",
			"message": "vendor profile required",
		})
		return
	}

	rates := c.index.Lookup(v.Location)

	out := make([]rateDTO, 0, len(rates))
	for _, m := range rates {
		out = append(out, rateDTO{
			Name:     m.Name,
			Rate:     roundMoney(m.Rate),
			Unit:     m.Unit,
			Location: m.Location,
		})
	}

	c.writeJSON(w, http.StatusOK, ratesResponse{Rates: out})
}

// Rounding happens only at the display boundary.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
