package movies

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"peliculas/internal/locale"
	"peliculas/pkg/models"
)

const (
	msgInvalidMonth = "Mes no válido. Por favor ingrese un mes en español."
	msgInvalidDay   = "Día no válido. Por favor ingrese un día en español."
	msgNotFound     = "Película no encontrada."
	msgTitleMissing = "Parámetro 'title' requerido."
	msgInternal     = "Error interno."
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/", h.welcome)
	r.GET("/peliculas/mes/", h.countByMonth) // GET /peliculas/mes/?mes=enero
	r.GET("/peliculas/dia/", h.countByDay)   // GET /peliculas/dia/?dia=lunes
	r.GET("/votes/", h.votes)                // GET /votes/?title=Inception
	r.GET("/score/", h.score)                // GET /score/?title=Toy%20Story
	r.GET("/titles/", h.titles)
	r.GET("/health", h.health)
	r.GET("/ready", h.ready)
}

func (h *Handler) welcome(c *gin.Context) {
	base := baseURL(c.Request)
	mes := locale.MonthKeys()[0]
	dia := locale.WeekdayKeys()[0]

	c.JSON(http.StatusOK, gin.H{
		"Mensaje": "Bienvenido a la API de películas.",
		"Instrucciones": []string{
			"Utiliza los siguientes endpoints para interactuar con la API:",
			"/peliculas/mes/?mes=nombre_del_mes",
			"/peliculas/dia/?dia=nombre_del_dia",
			"/votes/?title=nombre_pelicula",
			"/score/?title=nombre_pelicula",
			"/titles/",
		},
		"Links Ejemplo": []gin.H{
			{"Para Mes": mes, "url": base + "/peliculas/mes/?mes=" + mes},
			{"Para Dia": dia, "url": base + "/peliculas/dia/?dia=" + dia},
			{"Para Votación": base + "/votes/?title=Inception", "Descripción": "Buscar votación de una película"},
			{"Para Puntuación": base + "/score/?title=Toy%20Story", "Descripción": "Buscar puntuación de una película"},
			{"Para Títulos": base + "/titles/", "Descripción": "Listar todos los títulos"},
		},
	})
}

func (h *Handler) countByMonth(c *gin.Context) {
	res, err := h.Service.CountByMonth(c.Query("mes"))
	if err != nil {
		writeError(c, err, msgInvalidMonth)
		return
	}
	c.JSON(http.StatusOK, models.CountResponse{
		Mensaje: fmt.Sprintf("Cantidad de películas que fueron estrenadas en el mes de %s: %d", res.Month, res.Count),
	})
}

func (h *Handler) countByDay(c *gin.Context) {
	res, err := h.Service.CountByWeekday(c.Query("dia"))
	if err != nil {
		writeError(c, err, msgInvalidDay)
		return
	}
	c.JSON(http.StatusOK, models.CountResponse{
		Mensaje: fmt.Sprintf("Cantidad de películas que fueron estrenadas en el día %s: %d", res.Day, res.Count),
	})
}

func (h *Handler) votes(c *gin.Context) {
	title, ok := c.GetQuery("title")
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: msgTitleMissing})
		return
	}
	summary, err := h.Service.GetVotes(title)
	if err != nil {
		writeError(c, err, msgNotFound)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: summary.Message()})
}

func (h *Handler) score(c *gin.Context) {
	title, ok := c.GetQuery("title")
	if !ok {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: msgTitleMissing})
		return
	}
	summary, err := h.Service.GetScore(title)
	if err != nil {
		writeError(c, err, msgNotFound)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: summary.Message()})
}

func (h *Handler) titles(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.ListTitles())
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ready",
		"datasets": h.Service.Store.Stats(),
	})
}

// writeError maps service errors to status codes. detail is the client
// message used for the 400 and 404 cases.
func writeError(c *gin.Context, err error, detail string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Detail: detail})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Detail: detail})
	default:
		slog.ErrorContext(c.Request.Context(), "query failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Detail: msgInternal})
	}
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(p, ",")[0]))
	}
	return scheme + "://" + r.Host
}
