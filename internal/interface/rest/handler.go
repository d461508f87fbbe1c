package rest

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/barkeep/shaker/internal/domain"
	"github.com/barkeep/shaker/internal/usecase"
)

type Handler struct {
	cocktail   *usecase.CocktailUsecase
	ingredient *usecase.IngredientUsecase
}

func NewHandler(cocktail *usecase.CocktailUsecase, ingredient *usecase.IngredientUsecase) *Handler {
	return &Handler{
		cocktail:   cocktail,
		ingredient: ingredient,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/cocktail", h.handleCreateCocktail)
	e.GET("/cocktail", h.handleSearchCocktails)
	e.GET("/cocktail/:id", h.handleGetCocktail)
	e.PATCH("/cocktail/:id", h.handleUpdateCocktail)
	e.DELETE("/cocktail/:id", h.handleDeleteCocktail)
	e.POST("/cocktail/add-ingredient", h.handleAddIngredient)
	e.PUT("/cocktail/quantity", h.handleSetQuantity)

	e.POST("/ingredient", h.handleCreateIngredient)
	e.GET("/ingredient", h.handleListIngredients)
	e.GET("/ingredient/:id", h.handleGetIngredient)
	e.PATCH("/ingredient/:id", h.handleUpdateIngredient)
	e.DELETE("/ingredient/:id", h.handleDeleteIngredient)
}

func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		var notFound domain.NotFoundError
		if errors.As(err, &notFound) && len(notFound.IDs) > 0 {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error":      err.Error(),
				"resource":   notFound.Resource,
				"missingIds": notFound.IDs,
			})
		}
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}

func paramID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError{Message: "invalid id"}
	}
	return id, nil
}

// --- cocktails ---

func (h *Handler) handleCreateCocktail(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.CreateCocktailInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	created, err := h.cocktail.Create(ctx, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) handleSearchCocktails(c echo.Context) error {
	ctx := c.Request().Context()

	filter, err := parseCocktailFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	results, err := h.cocktail.Search(ctx, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, results)
}

func parseCocktailFilter(c echo.Context) (domain.CocktailFilter, error) {
	filter := domain.CocktailFilter{
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
		Mode:     c.QueryParam("ingredientsMode"),
		Sort:     c.QueryParam("sort"),
	}

	if raw := c.QueryParam("ingredientId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.CocktailFilter{}, domain.ValidationError{Message: "invalid ingredientId"}
		}
		filter.IngredientID = id
	}

	// Malformed entries in the id list are skipped, matching the
	// tolerant comma-list parsing of the search API.
	if raw := c.QueryParam("ingredientIds"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				continue
			}
			filter.IngredientIDs = append(filter.IngredientIDs, id)
		}
	}

	filter.AlcoholFree = c.QueryParam("alcoholFree") == "true"

	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return domain.CocktailFilter{}, domain.ValidationError{Message: "invalid page"}
		}
		filter.Page = page
	}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return domain.CocktailFilter{}, domain.ValidationError{Message: "invalid limit"}
		}
		filter.Limit = limit
	}

	return filter, nil
}

func (h *Handler) handleGetCocktail(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	cocktail, err := h.cocktail.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, cocktail)
}

func (h *Handler) handleUpdateCocktail(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var input usecase.UpdateCocktailInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	updated, err := h.cocktail.Update(ctx, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) handleDeleteCocktail(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.cocktail.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

type addIngredientRequest struct {
	IngredientID int64   `json:"ingredientId"`
	CocktailIDs  []int64 `json:"cocktailIds"`
}

func (h *Handler) handleAddIngredient(c echo.Context) error {
	ctx := c.Request().Context()

	var req addIngredientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.IngredientID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "ingredientId must be a positive integer"})
	}

	updated, err := h.cocktail.AddIngredientToCocktails(ctx, req.IngredientID, req.CocktailIDs)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"updated": updated})
}

type setQuantityRequest struct {
	CocktailID   int64  `json:"cocktailId"`
	IngredientID int64  `json:"ingredientId"`
	Quantity     string `json:"quantity"`
}

func (h *Handler) handleSetQuantity(c echo.Context) error {
	ctx := c.Request().Context()

	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if req.CocktailID <= 0 || req.IngredientID <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cocktailId and ingredientId must be positive integers"})
	}

	if err := h.cocktail.SetQuantity(ctx, req.CocktailID, req.IngredientID, req.Quantity); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

// --- ingredients ---

func (h *Handler) handleCreateIngredient(c echo.Context) error {
	ctx := c.Request().Context()

	var input usecase.CreateIngredientInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	created, err := h.ingredient.Create(ctx, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) handleListIngredients(c echo.Context) error {
	ctx := c.Request().Context()

	var filter domain.IngredientFilter
	switch c.QueryParam("isAlcoholic") {
	case "true":
		value := true
		filter.IsAlcoholic = &value
	case "false":
		value := false
		filter.IsAlcoholic = &value
	}
	if c.QueryParam("sortBy") == "name" {
		filter.SortBy = domain.SortByName
	}
	filter.Descending = strings.EqualFold(c.QueryParam("sortOrder"), "DESC")

	results, err := h.ingredient.List(ctx, filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, results)
}

func (h *Handler) handleGetIngredient(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	ingredient, err := h.ingredient.Get(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ingredient)
}

func (h *Handler) handleUpdateIngredient(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	var input usecase.UpdateIngredientInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	updated, err := h.ingredient.Update(ctx, id, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *Handler) handleDeleteIngredient(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := paramID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.ingredient.Delete(ctx, id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
