package http

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Freeeeeet/slot_scheduler/internal/model"
	"github.com/Freeeeeet/slot_scheduler/internal/service"
)

const adminTokenHeader = "X-Admin-Token"

type SlotController struct {
	slots        *service.SlotService
	booking      *service.BookingService
	adminToken   string
	storeTimeout time.Duration
	logger       *zap.Logger
}

func NewSlotController(
	slots *service.SlotService,
	booking *service.BookingService,
	adminToken string,
	storeTimeout time.Duration,
	logger *zap.Logger,
) *SlotController {
	return &SlotController{
		slots:        slots,
		booking:      booking,
		adminToken:   adminToken,
		storeTimeout: storeTimeout,
		logger:       logger,
	}
}

func (c *SlotController) RegisterRoutes(router *gin.Engine) {
	router.GET("/healthz", c.health)

	api := router.Group("/api/v1")
	{
		api.GET("/availability/:date", c.availability)
	}

	admin := api.Group("/admin")
	admin.Use(c.adminAuth())
	{
		admin.GET("/slots/:date", c.daySlots)
		admin.POST("/slots/:date/extras", c.addExtra)
		admin.POST("/slots/:date/suppressions", c.suppressFixed)
		admin.DELETE("/extras/:id", c.removeExtra)
		admin.POST("/purge", c.purge)
	}
}

type TimeRequest struct {
	Time string `json:"time" binding:"required"`
}

type DaySlotsResponse struct {
	Date       string               `json:"date"`
	Slots      []model.ResolvedSlot `json:"slots"`
	Suppressed []string             `json:"suppressed"`
}

func (c *SlotController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "today": c.booking.Today()})
}

func (c *SlotController) availability(ctx *gin.Context) {
	date := ctx.Param("date")

	times, err := c.booking.AvailableTimes(date)
	if err != nil {
		c.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"date":  date,
		"times": times,
	})
}

func (c *SlotController) daySlots(ctx *gin.Context) {
	date := ctx.Param("date")

	slots, err := c.booking.Slots(date)
	if err != nil {
		c.fail(ctx, err)
		return
	}
	suppressed, err := c.booking.SuppressedTimes(date)
	if err != nil {
		c.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, DaySlotsResponse{
		Date:       date,
		Slots:      slots,
		Suppressed: suppressed,
	})
}

func (c *SlotController) addExtra(ctx *gin.Context) {
	var req TimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	opCtx, cancel := c.storeContext(ctx)
	defer cancel()

	id, err := c.slots.AddExtra(opCtx, ctx.Param("date"), req.Time)
	if err != nil {
		c.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"id": id})
}

func (c *SlotController) suppressFixed(ctx *gin.Context) {
	var req TimeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "bad_request", "message": err.Error()})
		return
	}

	opCtx, cancel := c.storeContext(ctx)
	defer cancel()

	id, err := c.slots.SuppressFixed(opCtx, ctx.Param("date"), req.Time)
	if err != nil {
		c.fail(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"id": id})
}

func (c *SlotController) removeExtra(ctx *gin.Context) {
	opCtx, cancel := c.storeContext(ctx)
	defer cancel()

	if err := c.slots.RemoveExtra(opCtx, ctx.Param("id")); err != nil {
		c.fail(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *SlotController) purge(ctx *gin.Context) {
	purged := c.slots.PurgeExpiredNow(ctx.Request.Context())
	ctx.JSON(http.StatusOK, gin.H{"purged": purged})
}

func (c *SlotController) storeContext(ctx *gin.Context) (context.Context, context.CancelFunc) {
	if c.storeTimeout <= 0 {
		return context.WithCancel(ctx.Request.Context())
	}
	return context.WithTimeout(ctx.Request.Context(), c.storeTimeout)
}

func (c *SlotController) fail(ctx *gin.Context, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		c.logger.Error("Slot request failed",
			zap.String("path", ctx.FullPath()),
			zap.Error(err))
	}
	ctx.JSON(status, gin.H{"error": code, "message": model.UserMessage(err)})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrInvalidTime):
		return http.StatusBadRequest, "invalid_time"
	case errors.Is(err, model.ErrInvalidDate):
		return http.StatusBadRequest, "invalid_date"
	case errors.Is(err, model.ErrPastDate):
		return http.StatusUnprocessableEntity, "past_date"
	case errors.Is(err, model.ErrNotFixedTime):
		return http.StatusUnprocessableEntity, "not_fixed_time"
	case errors.Is(err, model.ErrNotExtra):
		return http.StatusUnprocessableEntity, "not_extra"
	case errors.Is(err, model.ErrAlreadyOffered):
		return http.StatusConflict, "already_offered"
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, model.ErrWrite):
		return http.StatusServiceUnavailable, "write_failed"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// adminAuth пропускает все запросы, если токен не настроен
func (c *SlotController) adminAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if c.adminToken == "" {
			ctx.Next()
			return
		}

		token := ctx.GetHeader(adminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(token), []byte(c.adminToken)) != 1 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx.Next()
	}
}
