package handlers

import (
	"log"
	"net/http"
	"strings"

	request "taskilo_finance/internal/adapter/http/dto/request"
	response "taskilo_finance/internal/adapter/http/dto/response"
	"taskilo_finance/internal/domain/entities"
	"taskilo_finance/internal/usecase"
	"taskilo_finance/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidSyncPayload = pkg.NewDomainErrorSimple("INVALID_SYNC_INPUT", "Invalid sync payload", http.StatusBadRequest)
	errMissingOrderID     = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Order ID required", http.StatusBadRequest)
)

// SyncHandler exposes the order-to-invoice sync over HTTP.
//
// The sync use case never fails with an error; failed outcomes are returned
// with their success flag and error list, so the caller decides how to react.

type SyncHandler struct {
	usecase usecase.IOrderSyncUseCase
}

func NewSyncHandler(uc usecase.IOrderSyncUseCase) *SyncHandler {
	return &SyncHandler{usecase: uc}
}

// SyncOrder godoc
// @Summary      Sync a Taskilo order to an invoice
// @Description  Creates (or with force_overwrite updates) the invoice generated from an order.
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        order_id  path      string                   true  "Taskilo order ID"
// @Param        payload   body      request.SyncOrderRequest true  "Sync options"
// @Success      200       {object}  response.SyncOutcomeResponse
// @Failure      400       {object}  pkg.HTTPError
// @Router       /sync/order-to-invoice/{order_id} [post]
func (h *SyncHandler) SyncOrder(c *gin.Context) {
	orderID := strings.TrimSpace(c.Param("order_id"))
	log.Printf("[sync][handler] sync start order_id=%s", orderID)
	if orderID == "" {
		c.JSON(errMissingOrderID.HTTPStatus, errMissingOrderID.ToHTTPError())
		return
	}

	var payload request.SyncOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[sync][handler] invalid payload order_id=%s err=%v", orderID, err)
		c.JSON(errInvalidSyncPayload.HTTPStatus, errInvalidSyncPayload.ToHTTPError())
		return
	}

	outcome := h.usecase.SyncOrderToInvoice(c.Request.Context(), orderID, payload.ResolveCompanyID(), payload.ResolveUserID(), entities.SyncOptions{
		ForceOverwrite:  payload.ForceOverwrite,
		DryRun:          payload.DryRun,
		AutoSendInvoice: payload.AutoSendInvoice,
	})
	log.Printf("[sync][handler] sync done order_id=%s success=%t errors=%d warnings=%d", orderID, outcome.Success, len(outcome.Errors), len(outcome.Warnings))

	c.JSON(http.StatusOK, response.FromSyncOutcome(outcome))
}

// BatchSync godoc
// @Summary      Sync multiple Taskilo orders to invoices
// @Description  Applies the single-order sync sequentially; stops on the first failure unless continue_on_error is set.
// @Tags         sync
// @Accept       json
// @Produce      json
// @Param        payload  body      request.BatchSyncRequest true  "Order IDs and sync options"
// @Success      200      {object}  response.BatchSyncResponse
// @Failure      400      {object}  pkg.HTTPError
// @Router       /sync/order-to-invoice [post]
func (h *SyncHandler) BatchSync(c *gin.Context) {
	var payload request.BatchSyncRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[sync][handler] invalid batch payload err=%v", err)
		c.JSON(errInvalidSyncPayload.HTTPStatus, errInvalidSyncPayload.ToHTTPError())
		return
	}

	orderIDs := payload.ResolveOrderIDs()
	if len(orderIDs) == 0 {
		c.JSON(errMissingOrderID.HTTPStatus, errMissingOrderID.ToHTTPError())
		return
	}

	log.Printf("[sync][handler] batch sync start orders=%d company_id=%s", len(orderIDs), payload.ResolveCompanyID())
	result := h.usecase.BatchSyncOrders(c.Request.Context(), orderIDs, payload.ResolveCompanyID(), payload.ResolveUserID(), entities.BatchSyncOptions{
		ForceOverwrite:   payload.ForceOverwrite,
		DryRun:           payload.DryRun,
		AutoSendInvoices: payload.AutoSendInvoices,
		ContinueOnError:  payload.ContinueOnError,
	})
	log.Printf("[sync][handler] batch sync done processed=%d successful=%d failed=%d", result.TotalProcessed, result.Successful, result.Failed)

	c.JSON(http.StatusOK, response.FromBatchSyncResult(result))
}
