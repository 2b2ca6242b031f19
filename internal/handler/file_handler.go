package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"auth-web-server/internal/model"
	"auth-web-server/internal/model/requestresponse"
	"auth-web-server/internal/ports"
	"auth-web-server/internal/security"
	"auth-web-server/internal/util"

	"github.com/go-chi/chi/v5"
)

type FileHandler struct {
	ports.FileService
}

func NewFileHandler(fileService ports.FileService) *FileHandler {
	return &FileHandler{fileService}
}

// CreateFile godoc
// @Summary Регистрация загружаемого файла
// @Description Сохраняет метаданные файла и возвращает pre-signed URL, по которому клиент загружает содержимое напрямую в хранилище
// @Tags Files
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateFileRequest true "Тело запроса"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.CreateFileResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/files [post]
func (h *FileHandler) CreateFile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	user, err := security.GetUserFromContext(ctx)
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	var req requestresponse.CreateFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "некорректный JSON", http.StatusBadRequest)
		return
	}

	result, err := h.FileService.CreateUpload(ctx, user.ID, req.Name, req.MimeType, req.SizeBytes)
	if err != nil {
		log.Println(err)
		util.HandleError(w, "не удалось зарегистрировать файл", http.StatusBadRequest)
		return
	}

	resp := requestresponse.CreateFileResponse{}
	resp.Response.UUID = result.File.UUID
	resp.Response.Name = result.File.Name
	resp.Response.PutURL = result.PutURL
	resp.Response.CreatedAt = result.File.CreatedAt

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// ListFiles godoc
// @Summary Список файлов пользователя
// @Tags Files
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.FileListResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/files [get]
func (h *FileHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	user, err := security.GetUserFromContext(ctx)
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	files, err := h.FileService.ListFiles(ctx, user.ID)
	if err != nil {
		log.Println(err)
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(requestresponse.FileListResponse{Response: files})
}

// DownloadFile godoc
// @Summary Получение URL на скачивание
// @Description Возвращает pre-signed URL на скачивание файла владельца
// @Tags Files
// @Produce json
// @Param uuid path string true "UUID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.FileDownloadResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/files/{uuid}/download [get]
func (h *FileHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	user, err := security.GetUserFromContext(ctx)
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	fileUUID := chi.URLParam(r, "uuid")

	getURL, err := h.FileService.GetDownloadURL(ctx, fileUUID, user.ID)
	if err != nil {
		if errors.Is(err, model.ErrFileNotFound) {
			util.HandleError(w, model.ErrFileNotFound.Error(), http.StatusNotFound)
		} else {
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	resp := requestresponse.FileDownloadResponse{}
	resp.Response.GetURL = getURL

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// DeleteFile godoc
// @Summary Удаление файла
// @Description Удаляет объект из хранилища и метаданные файла
// @Tags Files
// @Produce json
// @Param uuid path string true "UUID файла"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.DeletedResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/files/{uuid} [delete]
func (h *FileHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	ctx := r.Context()

	user, err := security.GetUserFromContext(ctx)
	if err != nil {
		util.HandleError(w, "не авторизован", http.StatusUnauthorized)
		return
	}

	fileUUID := chi.URLParam(r, "uuid")

	if err := h.FileService.DeleteFile(ctx, fileUUID, user.ID); err != nil {
		if errors.Is(err, model.ErrFileNotFound) {
			util.HandleError(w, model.ErrFileNotFound.Error(), http.StatusNotFound)
		} else {
			log.Println(err)
			util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
		}
		return
	}

	resp := requestresponse.DeletedResponse{}
	resp.Response.Deleted = true

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}
