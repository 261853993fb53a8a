package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/railtools/internal/domain/models"
	"github.com/mamadbah2/railtools/internal/service/calculations"
)

// CalculationHandler exposes the calculators over HTTP.
type CalculationHandler struct {
	svc    *calculations.Service
	logger *zap.Logger
}

// NewCalculationHandler constructs the HTTP handler adapter.
func NewCalculationHandler(svc *calculations.Service, logger *zap.Logger) *CalculationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CalculationHandler{svc: svc, logger: logger}
}

type calculationBody struct {
	Mode   string                 `json:"mode"`
	Inputs map[string]interface{} `json:"inputs"`
	Save   bool                   `json:"save"`
	Images []string               `json:"images"`
}

// Themes lists the available calculation themes.
func (h *CalculationHandler) Themes(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Themes())
}

// Theme returns a theme with its modes and fields.
func (h *CalculationHandler) Theme(c *gin.Context) {
	calc, err := h.svc.Calculator(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, calc)
}

// Fields lists the inputs of a theme mode (?mode=, default mode when absent).
func (h *CalculationHandler) Fields(c *gin.Context) {
	fields, err := h.svc.Fields(c.Param("id"), c.Query("mode"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, fields)
}

// Calculate runs one calculation and optionally saves it to the history.
func (h *CalculationHandler) Calculate(c *gin.Context) {
	var body calculationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.logger.Warn("invalid calculation payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := calculations.Request{
		Theme:  c.Param("theme"),
		Mode:   body.Mode,
		Inputs: make(models.Input, len(body.Inputs)),
		Save:   body.Save,
		Images: body.Images,
	}
	for name, v := range body.Inputs {
		req.Inputs[name] = inputText(v)
	}

	resp, err := h.svc.Calculate(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	status := http.StatusOK
	if resp.Entry != nil {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// inputText accepts JSON numbers as well as strings for an input value.
func inputText(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
