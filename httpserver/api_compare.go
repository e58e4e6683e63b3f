package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb/geojson"
	"gopkg.in/guregu/null.v4"

	"github.com/indobig/sizecompare/comparison"
	"github.com/indobig/sizecompare/interaction"
)

type APICompareResult struct {
	Message            string            `json:"message"`
	HighlightedCountry null.String       `json:"highlighted_country"`
	Overlay            *geojson.Geometry `json:"overlay"`
	OverlayStyle       *comparison.Style `json:"overlay_style,omitempty"`
	Ratio              null.Float        `json:"ratio"`
	ScaleFactor        null.Float        `json:"scale_factor"`
	Reset              bool              `json:"reset,omitempty"`
}

type pointerRequest struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type pointerResponse struct {
	StopPropagation bool              `json:"stop_propagation"`
	Selected        bool              `json:"selected"`
	DragIgnored     bool              `json:"drag_ignored,omitempty"`
	Result          *APICompareResult `json:"result,omitempty"`
}

type getHistoryResponse struct {
	History []comparison.HistoryEntry `json:"history"`
}

func resultToAPICompareResult(result *comparison.Result) *APICompareResult {
	apiResult := &APICompareResult{
		Message:            result.Message,
		HighlightedCountry: null.NewString(result.HighlightedCountry, result.HighlightedCountry != ""),
		Ratio:              result.Ratio,
		ScaleFactor:        result.ScaleFactor,
		Reset:              result.Reset,
	}

	if result.Overlay != nil {
		style := comparison.OverlayStyle
		apiResult.Overlay = geojson.NewGeometry(result.Overlay)
		apiResult.OverlayStyle = &style
	}

	return apiResult
}

func (srv *HTTPServer) handleCompare(c *gin.Context, cmp *comparison.Comparator) {
	result := cmp.SelectCountry(c.Param("name"))
	c.JSON(http.StatusOK, resultToAPICompareResult(&result))
}

func (srv *HTTPServer) handleReset(c *gin.Context, cmp *comparison.Comparator) {
	result := cmp.Reset()
	c.JSON(http.StatusOK, resultToAPICompareResult(&result))
}

func (srv *HTTPServer) handlePointer(c *gin.Context, cmp *comparison.Comparator) {
	var req pointerRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		srv.logger.Warnf("Pointer: bad request json: %v", err)
		c.JSON(http.StatusBadRequest, &APIErrorResponse{"bad request json"})
		return
	}

	evType, err := interaction.ParseEventType(req.Type)
	if err != nil {
		c.JSON(http.StatusBadRequest, &APIErrorResponse{err.Error()})
		return
	}

	outcome, result, err := cmp.HandlePointer(c.Param("name"), interaction.Event{
		Type: evType,
		X:    req.X,
		Y:    req.Y,
	})
	if err != nil {
		if errors.Is(err, comparison.ErrUnknownRegion) {
			c.JSON(http.StatusNotFound, &APIErrorResponse{"country not found"})
			return
		}
		srv.logger.Error(err)
		c.JSON(http.StatusInternalServerError, &APIErrorResponse{
			Error: "an internal error occurred: check the logs",
		})
		return
	}

	resp := pointerResponse{
		StopPropagation: outcome.StopPropagation,
		Selected:        outcome.Selected,
		DragIgnored:     outcome.DragIgnored,
	}
	if result != nil {
		resp.Result = resultToAPICompareResult(result)
	}

	c.JSON(http.StatusOK, resp)
}

func (srv *HTTPServer) handleGetHistory(c *gin.Context, cmp *comparison.Comparator) {
	c.JSON(http.StatusOK, getHistoryResponse{cmp.History()})
}
