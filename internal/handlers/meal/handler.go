package meal

import (
	"net/http"

	"dpbooking/infras/otel"
	"dpbooking/internal/domains/meal/model"
	"dpbooking/internal/domains/meal/model/dto"
	"dpbooking/internal/domains/meal/service"
	"dpbooking/shared"
	"dpbooking/shared/constant"
	gDto "dpbooking/shared/dto"
	"dpbooking/shared/failure"
	"dpbooking/shared/validator"
	"dpbooking/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Meal
	otel    otel.Otel
}

func New(service service.Meal, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/meals", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateMeal)
		routerGroup.Get("/", handler.GetMeals)
		routerGroup.Get("/{id}", handler.GetMealByID)
		routerGroup.Patch("/{id}", handler.UpdateMeal)
		routerGroup.Delete("/{id}", handler.DeleteMeal)
	})
}

// CreateMeal handles the creation of a new meal.
// @Summary Create a new meal
// @Description Create a meal with its regular and special prices.
// @Tags Meal
// @Accept json
// @Produce json
// @Param meal body dto.CreateMealRequest true "Meal details"
// @Success 201 {object} response.Data[int64] "Created meal id"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meals [post]
// @Security BearerAuth
func (handler *Handler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMeal")
	defer scope.End()

	var req dto.CreateMealRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create meal")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserName).(string)
	scope.AddEvent("Meal created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// GetMeals retrieves all meals based on query parameters.
// @Summary Get all meals
// @Description Retrieve meals with optional filtering and pagination.
// @Tags Meal
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param station query string false "Filter by kitchen station"
// @Param is_active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetMealsResponse] "List of meals"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meals [get]
// @Security BearerAuth
func (handler *Handler) GetMeals(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMeals")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if station := r.URL.Query().Get(model.FieldStation); station != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStation,
			Operator: gDto.FilterOperatorEq,
			Value:    station,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldIsActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	meals, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get meals")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Meals retrieved successfully")

	response.WithJSON(w, http.StatusOK, meals)
}

// GetMealByID retrieves a meal by its ID.
// @Summary Get a meal by ID
// @Description Retrieve a meal by its unique identifier.
// @Tags Meal
// @Accept json
// @Produce json
// @Param id path integer true "Meal ID"
// @Success 200 {object} response.Data[dto.MealResponse] "Meal details"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meals/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetMealByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMealByID")
	defer scope.End()

	id, err := parseID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	meal, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get meal by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Meal retrieved successfully")

	response.WithJSON(w, http.StatusOK, meal)
}

// UpdateMeal updates an existing meal by its ID.
// @Summary Update a meal by ID
// @Description Update the details of an existing meal.
// @Tags Meal
// @Accept json
// @Produce json
// @Param id path integer true "Meal ID"
// @Param meal body dto.UpdateMealRequest true "Fields to update"
// @Success 200 {object} response.Message "Meal updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meals/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMeal(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMeal")
	defer scope.End()

	id, err := parseID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	var req dto.UpdateMealRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update meal")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserName).(string)
	scope.AddEvent("Meal updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Meal updated successfully")
}

// DeleteMeal deletes a meal by its ID.
// @Summary Delete a meal by ID
// @Description Delete a meal using its unique identifier.
// @Tags Meal
// @Accept json
// @Produce json
// @Param id path integer true "Meal ID"
// @Success 200 {object} response.Message "Meal deleted successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/meals/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMeal")
	defer scope.End()

	id, err := parseID(r)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete meal")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserName).(string)
	scope.AddEvent("Meal deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Meal deleted successfully")
}

func parseID(r *http.Request) (int64, error) {
	id, err := shared.ConvertStringToInt64(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		return 0, failure.BadRequestFromString("invalid meal id") // nolint:wrapcheck
	}

	return id, nil
}
