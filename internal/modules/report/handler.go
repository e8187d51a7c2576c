package report

import (
	"fmt"
	"net/http"
	"time"

	"equiptrack/internal/domain"
	"equiptrack/internal/middleware"
	"equiptrack/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
	now     func() time.Time
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/requests.xlsx", h.RequestLedger)
}

// RequestLedger handles GET /reports/requests.xlsx?status=&date_from=&date_to= (RFC3339 dates).
func (h *Handler) RequestLedger(c *gin.Context) {
	var f Filter
	if s := c.Query("status"); s != "" {
		f.Status = domain.RequestStatus(s)
		if !f.Status.Valid() {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown status "+s)
			return
		}
	}
	for name, dst := range map[string]**time.Time{"date_from": &f.From, "date_to": &f.To} {
		if v := c.Query(name); v != "" {
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+name)
				return
			}
			*dst = &t
		}
	}

	file, err := h.service.Ledger(middleware.ActorFrom(c), f)
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer file.Close()

	fileName := fmt.Sprintf("requests_%s.xlsx", h.now().Format("2006-01-02"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Status(http.StatusOK)
	if err := file.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
