package handler

import (
	"net/http"

	"photoai/internal/api/v1/dto"
	"photoai/internal/httpx"
	"photoai/internal/model"
	"photoai/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// PackHandler serves the public pack catalogue and its admin editing routes.
type PackHandler struct {
	packs    service.PackService
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewPackHandler(packs service.PackService, validate *validator.Validate, logger zerolog.Logger) *PackHandler {
	return &PackHandler{packs: packs, validate: validate, logger: logger.With().Str("handler", "PackHandler").Logger()}
}

// RegisterRoutes mounts the catalogue publicly and the mutations behind adminMw.
func (h *PackHandler) RegisterRoutes(mux *http.ServeMux, adminMw func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /pack/bulk", h.list)
	mux.HandleFunc("GET /pack/{id}", h.get)
	mux.Handle("POST /pack", adminMw(http.HandlerFunc(h.create)))
	mux.Handle("PUT /pack/{id}", adminMw(http.HandlerFunc(h.update)))
	mux.Handle("DELETE /pack/{id}", adminMw(http.HandlerFunc(h.delete)))
}

// list godoc
// @Summary List packs
// @Tags packs
// @Produce json
// @Success 200 {object} dto.PacksResponse
// @Router /pack/bulk [get]
func (h *PackHandler) list(w http.ResponseWriter, r *http.Request) {
	packs, err := h.packs.List(r.Context())
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	resp := dto.PacksResponse{Packs: make([]dto.PackDTO, 0, len(packs))}
	for i := range packs {
		resp.Packs = append(resp.Packs, toPackDTO(&packs[i]))
	}
	httpx.WriteJSON(w, http.StatusOK, resp)
}

// get godoc
// @Summary Get a pack with its prompts
// @Tags packs
// @Produce json
// @Param id path string true "Pack ID"
// @Success 200 {object} dto.PackResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /pack/{id} [get]
func (h *PackHandler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.packs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.PackResponse{Pack: toPackDTO(p)})
}

// create godoc
// @Summary Create a pack
// @Tags packs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pack body dto.PackInput true "Pack"
// @Success 201 {object} dto.PackResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Router /pack [post]
func (h *PackHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.PackInput
	if err := h.decode(w, r, &req); err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	p, err := h.packs.Create(r.Context(), fromPackInput("", &req))
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, dto.PackResponse{Pack: toPackDTO(p)})
}

// update godoc
// @Summary Update a pack
// @Description Updates pack fields. Prompts with a known id are edited, the rest are added.
// @Tags packs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Pack ID"
// @Param pack body dto.PackInput true "Pack"
// @Success 200 {object} dto.PackResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /pack/{id} [put]
func (h *PackHandler) update(w http.ResponseWriter, r *http.Request) {
	var req dto.PackInput
	if err := h.decode(w, r, &req); err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	p, err := h.packs.Update(r.Context(), fromPackInput(r.PathValue("id"), &req))
	if err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, dto.PackResponse{Pack: toPackDTO(p)})
}

// delete godoc
// @Summary Delete a pack
// @Tags packs
// @Security BearerAuth
// @Param id path string true "Pack ID"
// @Success 204
// @Failure 403 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /pack/{id} [delete]
func (h *PackHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.packs.Delete(r.Context(), r.PathValue("id")); err != nil {
		httpx.HandleErr(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PackHandler) decode(w http.ResponseWriter, r *http.Request, req any) error {
	if err := httpx.ReadJSON(w, r, req); err != nil {
		return err
	}
	return validateStruct(h.validate, req)
}

func fromPackInput(id string, in *dto.PackInput) *model.Pack {
	p := &model.Pack{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		ImageURL1:   in.ImageURL1,
		ImageURL2:   in.ImageURL2,
		Prompts:     make([]model.PackPrompt, 0, len(in.Prompts)),
	}
	for _, pr := range in.Prompts {
		p.Prompts = append(p.Prompts, model.PackPrompt{ID: pr.ID, PackID: id, Prompt: pr.Prompt})
	}
	return p
}

func toPackDTO(p *model.Pack) dto.PackDTO {
	out := dto.PackDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		ImageURL1:   p.ImageURL1,
		ImageURL2:   p.ImageURL2,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, pr := range p.Prompts {
		out.Prompts = append(out.Prompts, dto.PackPromptDTO{ID: pr.ID, Prompt: pr.Prompt})
	}
	return out
}
