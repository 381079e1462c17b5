package handlers

import (
	"credittransfer/internal/config"
	apperrors "credittransfer/internal/errors"
	"credittransfer/internal/messages"
	"credittransfer/internal/services/transfer"
	"credittransfer/internal/services/validation"
	"credittransfer/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler exposes the credit transfer endpoints. Outcomes are
// reported in-band as (status_code, status_message) with HTTP 200; transport
// and parse problems use HTTP error statuses.
type TransferHandler struct {
	service   transfer.Service
	validator validation.Service
	catalog   *messages.Catalog
	cfg       *config.Config
}

func NewTransferHandler(s transfer.Service, v validation.Service, catalog *messages.Catalog, cfg *config.Config) *TransferHandler {
	return &TransferHandler{service: s, validator: v, catalog: catalog, cfg: cfg}
}

type transferRequest struct {
	SourceMsisdn string  `json:"source_msisdn"`
	DestMsisdn   string  `json:"dest_msisdn"`
	Amount       float64 `json:"amount"`
	PIN          string  `json:"pin"`
	Reason       string  `json:"reason"`
}

// TransferCredit handles POST /transfer requests.
func (h *TransferHandler) TransferCredit(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	result := h.service.Transfer(c.Context(), req.SourceMsisdn, req.DestMsisdn, req.Amount, req.PIN)
	return h.localize(c, result)
}

// TransferCreditWithoutPin handles POST /transfer/no-pin requests from
// channels that authenticate the subscriber themselves.
func (h *TransferHandler) TransferCreditWithoutPin(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	result := h.service.TransferWithoutPin(c.Context(), req.SourceMsisdn, req.DestMsisdn, req.Amount)
	return h.localize(c, result)
}

// TransferCreditWithAdjustmentReason handles POST /transfer/adjustment
// requests carrying an explicit audit reason.
func (h *TransferHandler) TransferCreditWithAdjustmentReason(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	if req.Reason == "" {
		return response.BadRequest(c, "reason is required")
	}
	result := h.service.TransferWithAdjustmentReason(c.Context(), req.SourceMsisdn, req.DestMsisdn, req.Amount, req.PIN, req.Reason)
	return h.localize(c, result)
}

// ValidateTransferInputs handles POST /transfer/validate requests. It runs
// the full validation pipeline without moving any money, for channels that
// pre-check before showing a confirmation screen.
func (h *TransferHandler) ValidateTransferInputs(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	verr := h.validator.Validate(c.Context(), req.SourceMsisdn, req.DestMsisdn, req.Amount)
	if verr != nil {
		return h.localize(c, transfer.Result{Code: verr.Code, Message: verr.Message})
	}
	return h.localize(c, transfer.Result{Code: apperrors.CodeSuccess, Message: "validation passed"})
}

// GetDenominations handles GET /denominations requests.
func (h *TransferHandler) GetDenominations(c *fiber.Ctx) error {
	return response.Success(c, "supported denominations", h.cfg.Denominations)
}

// localize swaps the status message for the caller's requested locale before
// writing the result.
func (h *TransferHandler) localize(c *fiber.Ctx, result transfer.Result) error {
	if locale := c.Query("locale"); locale != "" {
		result.Message = h.catalog.StatusMessage(result.Code, locale)
	}
	return c.JSON(result)
}
