package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"auth-web-server/internal/model"
	"auth-web-server/internal/model/requestresponse"
	"auth-web-server/internal/ports"
	"auth-web-server/internal/security"
	"auth-web-server/internal/util"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// GetUser godoc
// @Summary Получение пользователя
// @Description Возвращает пользователя по идентификатору. Доступен самому пользователю и администратору.
// @Tags Users
// @Produce json
// @Param id path int true "Идентификатор пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.UserResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/users/{id} [get]
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	id, err := userIDFromRequest(r)
	if err != nil {
		util.HandleError(w, "некорректный идентификатор", http.StatusBadRequest)
		return
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}
	if claims.Role != model.RoleAdmin && claims.UserID != id {
		util.HandleError(w, model.ErrAccessDenied.Error(), http.StatusForbidden)
		return
	}

	user, err := h.UserService.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			util.HandleError(w, model.ErrUserNotFound.Error(), http.StatusNotFound)
		} else {
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.UserResponse{Response: user})
}

// UpdatePassword godoc
// @Summary Смена пароля
// @Description Меняет пароль текущего пользователя
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.UpdatePasswordRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DeletedResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/users/password [put]
func (h *UserHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	var req requestresponse.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	if err := h.UserService.UpdatePassword(ctx, claims.UserID, req.NewPassword); err != nil {
		log.Println(err)
		if errors.Is(err, model.ErrUserNotFound) {
			util.HandleError(w, model.ErrUserNotFound.Error(), http.StatusNotFound)
		} else {
			util.HandleError(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]bool{"updated": true})
}

// DeleteUser godoc
// @Summary Удаление пользователя
// @Description Удаляет пользователя. Доступен самому пользователю и администратору.
// @Tags Users
// @Produce json
// @Param id path int true "Идентификатор пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DeletedResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	id, err := userIDFromRequest(r)
	if err != nil {
		util.HandleError(w, "некорректный идентификатор", http.StatusBadRequest)
		return
	}

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}
	if claims.Role != model.RoleAdmin && claims.UserID != id {
		util.HandleError(w, model.ErrAccessDenied.Error(), http.StatusForbidden)
		return
	}

	if err := h.UserService.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			util.HandleError(w, model.ErrUserNotFound.Error(), http.StatusNotFound)
		} else {
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	resp := requestresponse.DeletedResponse{}
	resp.Response.Deleted = true

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

func userIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
