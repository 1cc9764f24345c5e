package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventory-ledger-api/internal/application/dto"
	"github.com/jhoicas/inventory-ledger-api/internal/application/report"
	"github.com/jhoicas/inventory-ledger-api/internal/domain/entity"
	"github.com/jhoicas/inventory-ledger-api/pkg/pagination"
)

// AdminReporter consultas de solo lectura del panel de administración.
type AdminReporter interface {
	DashboardStats(ctx context.Context) (*report.DashboardStats, error)
	InventoryValue(ctx context.Context) (decimal.Decimal, error)
	InventoryReportPDF(ctx context.Context) ([]byte, error)
	ListUsers(ctx context.Context, page, limit int) (pagination.Page[*entity.User], error)
	ListStockOuts(ctx context.Context, page, limit int) (pagination.Page[*entity.StockMovement], error)
	ListStockIns(ctx context.Context, page, limit int) (pagination.Page[*entity.StockMovement], error)
}

// UserAdminService cambios de un admin sobre otros usuarios.
type UserAdminService interface {
	AdminUpdate(ctx context.Context, actorID, userID int64, in dto.UpdateUserRequest) (*dto.UserResponse, error)
	Delete(ctx context.Context, actorID, userID int64) error
}

// AdminHandler endpoints /api/admin (solo rol admin).
type AdminHandler struct {
	reports AdminReporter
	users   UserAdminService
}

// NewAdminHandler construye el handler.
func NewAdminHandler(reports AdminReporter, users UserAdminService) *AdminHandler {
	return &AdminHandler{reports: reports, users: users}
}

// Stats godoc
// @Summary      Contadores del dashboard
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	s, err := h.reports.DashboardStats(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DashboardStatsResponse{
		TotalUsers:          s.TotalUsers,
		TotalProducts:       s.TotalProducts,
		TotalCategories:     s.TotalCategories,
		LowStockProducts:    s.LowStockCount,
		TotalInventoryValue: s.InventoryValue,
	})
}

// InventoryValue godoc
// @Summary      Valor total del inventario
// @Description  Σ(price × quantity) de los productos vigentes.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryValueResponse
// @Router       /api/admin/inventory-value [get]
func (h *AdminHandler) InventoryValue(c *fiber.Ctx) error {
	v, err := h.reports.InventoryValue(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.InventoryValueResponse{TotalValue: v})
}

// InventoryValuePDF godoc
// @Summary      Reporte PDF de valorización
// @Tags         admin
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/admin/inventory-value/pdf [get]
func (h *AdminHandler) InventoryValuePDF(c *fiber.Ctx) error {
	pdf, err := h.reports.InventoryReportPDF(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	filename := fmt.Sprintf("inventario_%s.pdf", time.Now().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

// Users godoc
// @Summary      Listar usuarios
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200    {object}  dto.PagedResponse[dto.UserResponse]
// @Router       /api/admin/users [get]
func (h *AdminHandler) Users(c *fiber.Ctx) error {
	page, err := h.reports.ListUsers(c.Context(), c.QueryInt("page", 1), c.QueryInt("limit", pagination.DefaultLimit))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewPagedResponse(page, dto.FromUser))
}

// UpdateUser godoc
// @Summary      Actualizar usuario
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.UserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [put]
func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateUserRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.users.AdminUpdate(c.Context(), GetUserID(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteUser godoc
// @Summary      Eliminar usuario
// @Tags         admin
// @Security     Bearer
// @Param        id   path  int  true  "ID del usuario"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.users.Delete(c.Context(), GetUserID(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// StockOutHistory godoc
// @Summary      Historial de salidas
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200    {object}  dto.PagedResponse[dto.StockMovementResponse]
// @Router       /api/admin/stock-out-history [get]
func (h *AdminHandler) StockOutHistory(c *fiber.Ctx) error {
	page, err := h.reports.ListStockOuts(c.Context(), c.QueryInt("page", 1), c.QueryInt("limit", pagination.DefaultLimit))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewPagedResponse(page, dto.FromMovement))
}

// StockInHistory godoc
// @Summary      Historial de entradas
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"  default(1)
// @Param        limit  query  int  false  "Límite"  default(10)
// @Success      200    {object}  dto.PagedResponse[dto.StockMovementResponse]
// @Router       /api/admin/stock-in-history [get]
func (h *AdminHandler) StockInHistory(c *fiber.Ctx) error {
	page, err := h.reports.ListStockIns(c.Context(), c.QueryInt("page", 1), c.QueryInt("limit", pagination.DefaultLimit))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewPagedResponse(page, dto.FromMovement))
}
