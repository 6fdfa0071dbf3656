package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"facestudio/middleware"
	"facestudio/models"
	"facestudio/services/content"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxUploadSize caps thumbnails and editor images.
const maxUploadSize = 10 << 20

// ContentHandler serves treatments, blog posts and education courses.
type ContentHandler struct {
	Service content.ContentService
}

func NewContentHandler(svc content.ContentService) *ContentHandler {
	return &ContentHandler{Service: svc}
}

func (h *ContentHandler) ListTreatments(c *gin.Context) {
	page, err := h.Service.ListTreatments(c.Request.Context(), middleware.Language(c), pageQuery(c))
	if err != nil {
		respondError(c, "ListTreatments", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ContentHandler) GetTreatment(c *gin.Context) {
	v, err := h.Service.GetTreatment(c.Request.Context(), middleware.Language(c), c.Param("slug"))
	if err != nil {
		respondError(c, "GetTreatment", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// articleKind resolves the :kind path segment ("blog" or "education").
func articleKind(c *gin.Context) (models.ArticleKind, bool) {
	kind := models.ArticleKind(c.Param("kind"))
	if !kind.Valid() {
		respondError(c, "articleKind", content.ErrInvalidKind)
		return "", false
	}
	return kind, true
}

func (h *ContentHandler) ListArticles(c *gin.Context) {
	kind, ok := articleKind(c)
	if !ok {
		return
	}
	page, err := h.Service.ListArticles(c.Request.Context(), kind, middleware.Language(c), pageQuery(c))
	if err != nil {
		respondError(c, "ListArticles", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ContentHandler) GetArticle(c *gin.Context) {
	kind, ok := articleKind(c)
	if !ok {
		return
	}
	v, err := h.Service.GetArticle(c.Request.Context(), kind, middleware.Language(c), c.Param("slug"))
	if err != nil {
		respondError(c, "GetArticle", err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// Admin treatments.

func (h *ContentHandler) AdminListTreatments(c *gin.Context) {
	list, err := h.Service.ListAllTreatments(c.Request.Context())
	if err != nil {
		respondError(c, "AdminListTreatments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"treatments": nonNil(list)})
}

func (h *ContentHandler) AdminGetTreatment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	t, err := h.Service.GetTreatmentByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, "AdminGetTreatment", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *ContentHandler) CreateTreatment(c *gin.Context) {
	var t models.Treatment
	if err := c.ShouldBindJSON(&t); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	t.ID = 0
	if err := h.Service.CreateTreatment(c.Request.Context(), &t); err != nil {
		respondError(c, "CreateTreatment", err)
		return
	}
	getLogger(c).Info("Treatment created", zap.Int64("treatment_id", t.ID), zap.String("slug", t.Slug.HR))
	c.JSON(http.StatusCreated, t)
}

func (h *ContentHandler) UpdateTreatment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var t models.Treatment
	if err := c.ShouldBindJSON(&t); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	t.ID = id
	if err := h.Service.UpdateTreatment(c.Request.Context(), &t); err != nil {
		respondError(c, "UpdateTreatment", err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *ContentHandler) DeleteTreatment(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteTreatment(c.Request.Context(), id); err != nil {
		respondError(c, "DeleteTreatment", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ContentHandler) UploadTreatmentThumbnail(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	withImage(c, func(file multipart.File, name string) {
		t, err := h.Service.SetTreatmentThumbnail(c.Request.Context(), id, file, name)
		if err != nil {
			respondError(c, "UploadTreatmentThumbnail", err)
			return
		}
		c.JSON(http.StatusOK, t)
	})
}

// Admin articles.

func (h *ContentHandler) AdminListArticles(c *gin.Context) {
	kind, ok := articleKind(c)
	if !ok {
		return
	}
	list, err := h.Service.ListAllArticles(c.Request.Context(), kind)
	if err != nil {
		respondError(c, "AdminListArticles", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": nonNil(list)})
}

func (h *ContentHandler) AdminGetArticle(c *gin.Context) {
	kind, ok := articleKind(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	a, err := h.Service.GetArticleByID(c.Request.Context(), kind, id)
	if err != nil {
		respondError(c, "AdminGetArticle", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *ContentHandler) CreateArticle(c *gin.Context) {
	kind, ok := articleKind(c)
	if !ok {
		return
	}
	var a models.Article
	if err := c.ShouldBindJSON(&a); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	a.ID = 0
	a.Kind = kind
	if err := h.Service.CreateArticle(c.Request.Context(), &a); err != nil {
		respondError(c, "CreateArticle", err)
		return
	}
	getLogger(c).Info("Article created", zap.Int64("article_id", a.ID), zap.String("kind", string(kind)))
	c.JSON(http.StatusCreated, a)
}

func (h *ContentHandler) UpdateArticle(c *gin.Context) {
	kind, ok := articleKind(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var a models.Article
	if err := c.ShouldBindJSON(&a); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	a.ID = id
	a.Kind = kind
	if err := h.Service.UpdateArticle(c.Request.Context(), &a); err != nil {
		respondError(c, "UpdateArticle", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *ContentHandler) DeleteArticle(c *gin.Context) {
	kind, ok := articleKind(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteArticle(c.Request.Context(), kind, id); err != nil {
		respondError(c, "DeleteArticle", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ContentHandler) UploadArticleThumbnail(c *gin.Context) {
	kind, ok := articleKind(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	withImage(c, func(file multipart.File, name string) {
		a, err := h.Service.SetArticleThumbnail(c.Request.Context(), kind, id, file, name)
		if err != nil {
			respondError(c, "UploadArticleThumbnail", err)
			return
		}
		c.JSON(http.StatusOK, a)
	})
}

// UploadEditorImage stores an image pasted into the rich-text editor and
// returns the URL the editor should embed.
func (h *ContentHandler) UploadEditorImage(c *gin.Context) {
	withImage(c, func(file multipart.File, name string) {
		res, err := h.Service.UploadImage(c.Request.Context(), file, name)
		if err != nil {
			respondError(c, "UploadEditorImage", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"url": res.URL, "public_id": res.PublicID})
	})
}

// withImage opens the multipart "file" field and hands it to fn when it is an image within the size cap.
func withImage(c *gin.Context, fn func(file multipart.File, name string)) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file not provided", err)
		return
	}
	if fileHeader.Size > maxUploadSize {
		badRequest(c, "file too large", nil)
		return
	}
	if ct := fileHeader.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		badRequest(c, "only image uploads are accepted", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, "withImage", err)
		return
	}
	defer file.Close()
	fn(file, fileHeader.Filename)
}
