package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/procurement/internal/usecase"
)

// CatalogHandler serves classifications and materials.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

func (h *CatalogHandler) CreateFather(c *gin.Context) {
	var in usecase.FatherInput
	if !bindJSON(c, &in) {
		return
	}
	father, err := h.facade.CreateFather(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, father)
}

func (h *CatalogHandler) UpdateFather(c *gin.Context) {
	var in usecase.FatherInput
	if !bindJSON(c, &in) {
		return
	}
	father, err := h.facade.UpdateFather(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, father)
}

func (h *CatalogHandler) DeleteFather(c *gin.Context) {
	if err := h.facade.DeleteFather(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "classification")
}

// ListFathers returns a page of classifications with their sons embedded.
func (h *CatalogHandler) ListFathers(c *gin.Context) {
	filter, err := catalogFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := h.facade.Fathers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *CatalogHandler) CreateSon(c *gin.Context) {
	var in usecase.SonInput
	if !bindJSON(c, &in) {
		return
	}
	son, err := h.facade.CreateSon(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, son)
}

func (h *CatalogHandler) UpdateSon(c *gin.Context) {
	var patch usecase.SonPatch
	if !bindJSON(c, &patch) {
		return
	}
	son, err := h.facade.UpdateSon(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, son)
}

func (h *CatalogHandler) DeleteSon(c *gin.Context) {
	if err := h.facade.DeleteSon(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "classification son")
}

func (h *CatalogHandler) ListSons(c *gin.Context) {
	sons, err := h.facade.Sons(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sons)
}

func (h *CatalogHandler) CreateMaterial(c *gin.Context) {
	var in usecase.MaterialInput
	if !bindJSON(c, &in) {
		return
	}
	material, err := h.facade.CreateMaterial(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, material)
}

// UpdateMaterial keeps the stored file when the body omits attachedFile.
func (h *CatalogHandler) UpdateMaterial(c *gin.Context) {
	var patch usecase.MaterialPatch
	if !bindJSON(c, &patch) {
		return
	}
	material, err := h.facade.UpdateMaterial(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, material)
}

func (h *CatalogHandler) DeleteMaterial(c *gin.Context) {
	if err := h.facade.DeleteMaterial(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	deleted(c, "material")
}

func (h *CatalogHandler) ListMaterials(c *gin.Context) {
	filter, err := catalogFilter(c)
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := h.facade.Materials(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
