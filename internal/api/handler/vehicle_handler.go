package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/rentwheels/rental-api/internal/api/metrics"
	"github.com/rentwheels/rental-api/internal/core/domain"
	"github.com/rentwheels/rental-api/internal/core/ports"
)

// VehicleHandler handles HTTP requests for fleet catalog operations. All
// routes are mounted behind the Auth and StaffOnly middleware.
type VehicleHandler struct {
	service ports.VehicleService
}

func NewVehicleHandler(service ports.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// List handles GET /vehicles/ — returns the whole catalog, unpaginated.
//
// @Summary      List all vehicles
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   vehicleResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /vehicles/ [get]
func (h *VehicleHandler) List(c echo.Context) error {
	vehicles, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVehicleListResponse(vehicles))
}

// Get handles GET /vehicles/:id/.
//
// @Summary      Get a vehicle by id
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Vehicle id"
// @Success      200  {object}  vehicleResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /vehicles/{id}/ [get]
func (h *VehicleHandler) Get(c echo.Context) error {
	id, err := vehicleID(c)
	if err != nil {
		return err
	}

	vehicle, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toVehicleResponse(vehicle))
}

// Create handles POST /vehicles/.
//
// @Summary      Add a vehicle to the fleet
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      vehicleRequest  true  "Vehicle details"
// @Success      201   {object}  vehicleResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /vehicles/ [post]
func (h *VehicleHandler) Create(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req vehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), actorID, toVehicleInput(req))
	if err != nil {
		return err
	}

	metrics.VehicleOpsTotal.WithLabelValues(domain.AuditActionCreate).Inc()
	return c.JSON(http.StatusCreated, toVehicleResponse(created))
}

// Update handles PUT /vehicles/:id/ — full replacement, all fields required.
//
// @Summary      Replace a vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Vehicle id"
// @Param        body  body      vehicleRequest  true  "Complete vehicle shape"
// @Success      200   {object}  vehicleResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /vehicles/{id}/ [put]
func (h *VehicleHandler) Update(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := vehicleID(c)
	if err != nil {
		return err
	}

	var req vehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	// Field constraints are checked by the service after the id resolves, so
	// an absent id with an invalid body is still a 404.
	updated, err := h.service.Replace(c.Request().Context(), actorID, id, toVehicleInput(req))
	if err != nil {
		return err
	}

	metrics.VehicleOpsTotal.WithLabelValues(domain.AuditActionUpdate).Inc()
	return c.JSON(http.StatusOK, toVehicleResponse(updated))
}

// Delete handles DELETE /vehicles/:id/ — removes the vehicle and cascades
// removal of its bookings.
//
// @Summary      Remove a vehicle from the fleet
// @Tags         vehicles
// @Security     BearerAuth
// @Param        id  path  int  true  "Vehicle id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /vehicles/{id}/ [delete]
func (h *VehicleHandler) Delete(c echo.Context) error {
	actorID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	id, err := vehicleID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), actorID, id); err != nil {
		return err
	}

	metrics.VehicleOpsTotal.WithLabelValues(domain.AuditActionDelete).Inc()
	return c.NoContent(http.StatusNoContent)
}

// vehicleID parses the :id path segment. A non-numeric id can never match an
// existing vehicle, so it reports not-found rather than a bad request.
func vehicleID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ErrVehicleNotFound
	}
	return id, nil
}

func toVehicleInput(req vehicleRequest) ports.VehicleInput {
	return ports.VehicleInput{
		Make:  req.Make,
		Model: req.Model,
		Year:  req.Year,
		Plate: req.Plate,
	}
}
