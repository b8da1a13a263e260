package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExtractValueRequest запрос извлечения значения сущности из текста
type ExtractValueRequest struct {
	Text       string `json:"text" binding:"required"`
	EntityName string `json:"entity_name" binding:"required"`
}

// ExtractValueResponse ответ с предсказанным значением. Prediction равен
// null, если текст не содержит пригодных измерений либо сущность
// неизвестна: отсутствие предсказания — ожидаемый исход, а не ошибка.
type ExtractValueResponse struct {
	EntityName string  `json:"entity_name"`
	Prediction *string `json:"prediction"`
}

// ExtractUnitsRequest запрос извлечения всех измерений из текста
type ExtractUnitsRequest struct {
	Text string `json:"text" binding:"required"`
}

// ExtractedUnit одно извлеченное измерение с канонической единицей
type ExtractedUnit struct {
	Number string `json:"number"`
	Unit   string `json:"unit"`
}

// handleHealth проверка работоспособности сервиса
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"entities": s.registry.Entities(),
	})
}

// handleExtractValue извлекает значение запрошенной сущности из текста
func (s *Server) handleExtractValue(c *gin.Context) {
	var req ExtractValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text and entity_name are required"})
		return
	}

	resp := ExtractValueResponse{EntityName: req.EntityName}
	if prediction, ok := s.pipeline.Predict(req.Text, req.EntityName); ok {
		resp.Prediction = &prediction
	}

	c.JSON(http.StatusOK, resp)
}

// handleExtractUnits возвращает все нормализованные измерения текста
// в порядке их появления
func (s *Server) handleExtractUnits(c *gin.Context) {
	var req ExtractUnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	pairs := s.pipeline.ExtractUnits(req.Text)
	extracted := make([]ExtractedUnit, 0, len(pairs))
	for _, pair := range pairs {
		extracted = append(extracted, ExtractedUnit(pair))
	}

	c.JSON(http.StatusOK, gin.H{"units": extracted})
}
