// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tomtom215/refeed/internal/logging"
	"github.com/tomtom215/refeed/internal/models"
	"github.com/tomtom215/refeed/internal/store"
	"github.com/tomtom215/refeed/internal/validation"
)

// ListMeals returns every meal in the table.
//
// @Summary List meals
// @Description Returns all meals. Records that cannot be decoded are skipped. Order is unspecified.
// @Tags Meals
// @Produce json
// @Success 200 {array} models.Meal
// @Failure 500 {object} models.ErrorResponse "Store failure"
// @Router /meals [get]
func (h *Handler) ListMeals(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.storeContext(r)
	defer cancel()

	result, err := h.store.Scan(ctx)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to list meals", err)
		return
	}
	if result.Skipped > 0 {
		logging.Ctx(r.Context()).Warn().
			Int("skipped", result.Skipped).
			Int("returned", len(result.Meals)).
			Msg("Skipped undecodable meal records")
	}

	meals := result.Meals
	if meals == nil {
		meals = []*models.Meal{}
	}
	respondJSON(w, http.StatusOK, meals)
}

// GetMeal returns one meal by id.
//
// @Summary Get meal
// @Description Returns the meal with the given id. A missing meal yields 404 with an empty body.
// @Tags Meals
// @Produce json
// @Param id path string true "Meal ID (UUID, any case)"
// @Success 200 {object} models.Meal
// @Failure 401 {object} object "Id is not a UUID"
// @Failure 404 "Meal not found"
// @Failure 500 {object} models.ErrorResponse "Store failure"
// @Router /meals/{id} [get]
func (h *Handler) GetMeal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathMealID(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	meal, err := h.store.Get(ctx, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondEmpty(w, http.StatusNotFound)
	case err != nil:
		respondError(w, r, http.StatusInternalServerError, "failed to get meal", err)
	default:
		respondJSON(w, http.StatusOK, meal)
	}
}

// CreateMeal stores a new meal under a freshly generated id.
//
// @Summary Create meal
// @Description Creates a meal. Any id in the body is replaced by a new UUID.
// @Tags Meals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param meal body models.Meal true "Meal"
// @Success 201 {object} models.Meal
// @Failure 400 {object} models.ErrorResponse "Malformed or invalid meal"
// @Failure 401 {object} object "Missing or invalid token"
// @Failure 500 {object} models.ErrorResponse "Store failure"
// @Router /meals [post]
func (h *Handler) CreateMeal(w http.ResponseWriter, r *http.Request) {
	meal, ok := h.decodeMeal(w, r)
	if !ok {
		return
	}
	meal.ID = uuid.NewString()

	h.putMeal(w, r, meal, http.StatusCreated)
}

// UpdateMeal replaces the meal stored under the path id.
//
// @Summary Update meal
// @Description Upserts a meal. The path id always wins over an id in the body.
// @Tags Meals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Meal ID (UUID, any case)"
// @Param meal body models.Meal true "Meal"
// @Success 202 {object} models.Meal
// @Failure 400 {object} models.ErrorResponse "Malformed or invalid meal"
// @Failure 401 {object} object "Missing or invalid token, or id is not a UUID"
// @Failure 500 {object} models.ErrorResponse "Store failure"
// @Router /meals/{id} [put]
func (h *Handler) UpdateMeal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathMealID(w, r)
	if !ok {
		return
	}

	meal, ok := h.decodeMeal(w, r)
	if !ok {
		return
	}
	if meal.ID != "" && meal.ID != id {
		logging.Ctx(r.Context()).Debug().
			Str("path_id", sanitizeLogValue(id)).
			Str("body_id", sanitizeLogValue(meal.ID)).
			Msg("Body id overridden by path id")
	}
	meal.ID = id

	h.putMeal(w, r, meal, http.StatusAccepted)
}

// DeleteMeal removes a meal. Deleting a missing id still succeeds.
//
// @Summary Delete meal
// @Tags Meals
// @Security BearerAuth
// @Param id path string true "Meal ID (UUID, any case)"
// @Success 204 "Deleted"
// @Failure 401 {object} object "Missing or invalid token, or id is not a UUID"
// @Failure 500 {object} models.ErrorResponse "Store failure"
// @Router /meals/{id} [delete]
func (h *Handler) DeleteMeal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathMealID(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	if err := h.store.Delete(ctx, id); err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to delete meal", err)
		return
	}
	respondEmpty(w, http.StatusNoContent)
}

// pathMealID returns the {id} path parameter in canonical lowercase UUID
// form. An id that is not a UUID is answered like an unknown route.
func pathMealID(w http.ResponseWriter, r *http.Request) (string, bool) {
	parsed, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		unmatchedRoute(w, r)
		return "", false
	}
	return parsed.String(), true
}

// decodeMeal reads and validates a meal body, answering 400 itself on failure.
func (h *Handler) decodeMeal(w http.ResponseWriter, r *http.Request) (*models.Meal, bool) {
	var meal models.Meal
	if err := decodeJSON(w, r, h.maxBodyBytes, &meal); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error(), nil)
		return nil, false
	}
	if verr := validation.ValidateStruct(&meal); verr != nil {
		respondError(w, r, http.StatusBadRequest, verr.Error(), nil)
		return nil, false
	}
	return &meal, true
}

func (h *Handler) putMeal(w http.ResponseWriter, r *http.Request, meal *models.Meal, status int) {
	ctx, cancel := h.storeContext(r)
	defer cancel()

	if err := h.store.Put(ctx, meal); err != nil {
		respondError(w, r, http.StatusInternalServerError, "failed to store meal", err)
		return
	}
	respondJSON(w, status, meal)
}
