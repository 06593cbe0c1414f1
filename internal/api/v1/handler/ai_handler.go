package handler

import (
	"net/http"
	"strconv"
	"strings"

	"photoai/internal/api/v1/dto"
	"photoai/internal/httpx"
	"photoai/internal/middleware"
	"photoai/internal/model"
	"photoai/internal/serr"
	"photoai/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// AIHandler serves uploads, training, generation and the listings of their
// results.
type AIHandler struct {
	generation service.GenerationService
	uploads    service.UploadService
	validate   *validator.Validate
	logger     zerolog.Logger
}

func NewAIHandler(generation service.GenerationService, uploads service.UploadService, validate *validator.Validate, logger zerolog.Logger) *AIHandler {
	return &AIHandler{
		generation: generation,
		uploads:    uploads,
		validate:   validate,
		logger:     logger.With().Str("handler", "AIHandler").Logger(),
	}
}

func (h *AIHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("GET /pre-signed-url", authMw(http.HandlerFunc(h.presignedURL)))
	mux.Handle("POST /ai/training", authMw(http.HandlerFunc(h.train)))
	mux.Handle("POST /ai/generate", authMw(http.HandlerFunc(h.generate)))
	mux.Handle("POST /pack/generate", authMw(http.HandlerFunc(h.generatePack)))
	mux.Handle("GET /image/bulk", authMw(http.HandlerFunc(h.listImages)))
	mux.Handle("GET /models", authMw(http.HandlerFunc(h.listModels)))
}

// presignedURL godoc
// @Summary Get an upload URL
// @Description Returns a presigned PUT URL for a zip of training photos.
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PresignedURLResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 502 {object} httpx.ErrorResponse
// @Router /pre-signed-url [get]
func (h *AIHandler) presignedURL(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	up, err := h.uploads.PresignUpload(r.Context(), userID)
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.PresignedURLResponse{
		URL:       up.URL,
		Key:       up.Key,
		PublicURL: up.PublicURL,
		ExpiresAt: up.ExpiresAt,
	})
}

// train godoc
// @Summary Train a model
// @Description Charges training credits and submits a training job.
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TrainModelRequest true "Training request"
// @Success 200 {object} dto.TrainModelResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 411 {object} httpx.ErrorResponse "Not enough credits"
// @Failure 502 {object} httpx.ErrorResponse
// @Router /ai/training [post]
func (h *AIHandler) train(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req dto.TrainModelRequest
	if err := h.decode(w, r, &req); err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	m, err := h.generation.Train(r.Context(), &model.Model{
		Name:      strings.TrimSpace(req.Name),
		Type:      model.ModelType(req.Type),
		Age:       req.Age,
		Ethnicity: req.Ethnicity,
		EyeColor:  req.EyeColor,
		Bald:      req.Bald,
		UserID:    userID,
		ZipURL:    req.ZipURL,
	})
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.TrainModelResponse{ModelID: m.ID})
}

// generate godoc
// @Summary Generate images
// @Description Charges one credit per image and submits num generation jobs.
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateImageRequest true "Generation request"
// @Success 200 {object} dto.GenerateImageResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse "Model not trained"
// @Failure 411 {object} httpx.ErrorResponse "Not enough credits"
// @Failure 502 {object} httpx.ErrorResponse
// @Router /ai/generate [post]
func (h *AIHandler) generate(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req dto.GenerateImageRequest
	if err := h.decode(w, r, &req); err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	images, err := h.generation.Generate(r.Context(), userID, req.ModelID, req.Prompt, req.Num)
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	ids := imageIDs(images)
	httpx.WriteJSON(w, http.StatusOK, dto.GenerateImageResponse{ImageID: ids[0], ImageIDs: ids})
}

// generatePack godoc
// @Summary Generate a pack
// @Description Charges for every prompt of the pack up front and submits one job per prompt.
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GeneratePackRequest true "Pack generation request"
// @Success 200 {object} dto.GeneratePackResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Failure 411 {object} httpx.ErrorResponse "Not enough credits"
// @Failure 502 {object} httpx.ErrorResponse
// @Router /pack/generate [post]
func (h *AIHandler) generatePack(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	var req dto.GeneratePackRequest
	if err := h.decode(w, r, &req); err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	images, err := h.generation.GeneratePack(r.Context(), userID, req.ModelID, req.PackID)
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.GeneratePackResponse{Images: imageIDs(images)})
}

// listImages godoc
// @Summary List images
// @Description Lists the caller's images newest first, excluding failed ones.
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Param ids query []string false "Restrict to these image ids"
// @Param limit query int false "Page size (default 100)"
// @Param offset query int false "Offset (default 0)"
// @Success 200 {object} dto.ImagesResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Router /image/bulk [get]
func (h *AIHandler) listImages(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	q := r.URL.Query()
	limit, err := intParam(q.Get("limit"), service.DefaultImageLimit)
	if err != nil {
		httpx.HandleErr(w, r, h.logger, serr.Validation(map[string]string{"limit": "must be a number"}))
		return
	}
	offset, err := intParam(q.Get("offset"), 0)
	if err != nil {
		httpx.HandleErr(w, r, h.logger, serr.Validation(map[string]string{"offset": "must be a number"}))
		return
	}

	images, err := h.generation.ListImages(r.Context(), userID, idsParam(q["ids"], q["ids[]"]), limit, offset)
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	resp := dto.ImagesResponse{Images: make([]dto.ImageDTO, 0, len(images))}
	for _, img := range images {
		resp.Images = append(resp.Images, dto.ImageDTO{
			ID:        img.ID,
			ImageURL:  img.ImageURL,
			ModelID:   img.ModelID,
			UserID:    img.UserID,
			Prompt:    img.Prompt,
			Status:    string(img.Status),
			CreatedAt: img.CreatedAt,
			UpdatedAt: img.UpdatedAt,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// listModels godoc
// @Summary List models
// @Description Lists the caller's models and every open model.
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ModelsResponse
// @Router /models [get]
func (h *AIHandler) listModels(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	models, err := h.generation.ListModels(r.Context(), userID)
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	resp := dto.ModelsResponse{Models: make([]dto.ModelDTO, 0, len(models))}
	for _, m := range models {
		resp.Models = append(resp.Models, dto.ModelDTO{
			ID:             m.ID,
			Name:           m.Name,
			Type:           string(m.Type),
			Age:            m.Age,
			Ethnicity:      m.Ethnicity,
			EyeColor:       m.EyeColor,
			Bald:           m.Bald,
			UserID:         m.UserID,
			TriggerWord:    m.TriggerWord,
			Thumbnail:      m.Thumbnail,
			TrainingStatus: string(m.TrainingStatus),
			Open:           m.Open,
			CreatedAt:      m.CreatedAt,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

func (h *AIHandler) decode(w http.ResponseWriter, r *http.Request, req any) error {
	if err := httpx.ReadJSON(w, r, req); err != nil {
		return err
	}
	return validateStruct(h.validate, req)
}

func imageIDs(images []*model.OutputImage) []string {
	ids := make([]string, len(images))
	for i, img := range images {
		ids[i] = img.ID
	}
	return ids
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// idsParam accepts repeated ids, ids[] and comma separated lists.
func idsParam(lists ...[]string) []string {
	var ids []string
	for _, list := range lists {
		for _, v := range list {
			for _, id := range strings.Split(v, ",") {
				if id = strings.TrimSpace(id); id != "" {
					ids = append(ids, id)
				}
			}
		}
	}
	return ids
}
