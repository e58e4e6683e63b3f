package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gopkg.in/guregu/null.v4"
)

type statusResponse struct {
	Loaded     bool        `json:"loaded"`
	LoadError  null.String `json:"load_error"`
	Reference  string      `json:"reference,omitempty"`
	Regions    int         `json:"regions"`
	Selectable int         `json:"selectable"`
	Message    string      `json:"message,omitempty"`
}

func (srv *HTTPServer) handleGetStatus(c *gin.Context) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	var resp statusResponse

	if srv.loadErr != nil {
		resp.LoadError = null.StringFrom(srv.loadErr.Error())
	}

	if cmp := srv.comparator; cmp != nil {
		reg := cmp.Registry()
		resp.Loaded = true
		resp.Reference = reg.ReferenceName()
		resp.Regions = reg.Len()
		resp.Selectable = len(reg.Selectable())
		resp.Message = cmp.Message()
	}

	c.JSON(http.StatusOK, resp)
}

func (srv *HTTPServer) handleReload(c *gin.Context) {
	type reloadResponse struct {
		Message string `json:"message"`
	}

	err := srv.Reload(c.Request.Context())
	if err != nil {
		srv.logger.Errorf("dataset reload failed: %v", err)
		c.JSON(http.StatusInternalServerError, APIErrorResponse{
			Error: "dataset reload failed: check the logs",
		})
		return
	}

	srv.logger.Infof("datasets reloaded")

	c.JSON(http.StatusOK, reloadResponse{
		Message: "datasets have been reloaded",
	})
}
