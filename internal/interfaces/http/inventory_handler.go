package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/pkg/pagination"
)

// StockMovementService operaciones del ledger usadas por el handler.
type StockMovementService interface {
	ApplyStockIn(ctx context.Context, in inventory.StockInInput) (*entity.Product, error)
	ApplyStockOut(ctx context.Context, in inventory.StockOutInput) (*entity.Product, error)
	ListProductMovements(ctx context.Context, productID int64, limit, offset int) ([]*entity.StockMovement, error)
}

// InventoryHandler maneja entradas, salidas e historial por producto (protegido).
type InventoryHandler struct {
	uc StockMovementService
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc StockMovementService) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// StockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockInRequest  true  "product_id, quantity, supplier, purchase_price, notes"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-in [post]
func (h *InventoryHandler) StockIn(c *fiber.Ctx) error {
	var in dto.StockInRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	p, err := h.uc.ApplyStockIn(c.Context(), inventory.StockInInput{
		ProductID:     in.ProductID,
		Quantity:      in.Quantity,
		Supplier:      in.Supplier,
		PurchasePrice: in.PurchasePrice,
		Notes:         in.Notes,
		ActorID:       GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResultResponse{
		Message: "entrada registrada",
		Product: dto.FromProduct(p),
	})
}

// StockOut godoc
// @Summary      Registrar salida de stock
// @Description  Falla con 409 INSUFFICIENT_STOCK (incluye available) si no hay cantidad suficiente.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockOutRequest  true  "product_id, quantity, reason"
// @Success      201   {object}  dto.MovementResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-out [post]
func (h *InventoryHandler) StockOut(c *fiber.Ctx) error {
	var in dto.StockOutRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	p, err := h.uc.ApplyStockOut(c.Context(), inventory.StockOutInput{
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		ActorID:   GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResultResponse{
		Message: "salida registrada",
		Product: dto.FromProduct(p),
	})
}

// ProductMovements godoc
// @Summary      Historial de movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   int  true   "ID del producto"
// @Param        limit   query  int  false  "Límite"  default(10)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {array}   dto.StockMovementResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /api/products/{id}/movements [get]
func (h *InventoryHandler) ProductMovements(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	limit := pagination.NormalizeLimit(c.QueryInt("limit", pagination.DefaultLimit))
	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	list, err := h.uc.ListProductMovements(c.Context(), id, limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.FromMovement(m))
	}
	return c.JSON(out)
}
