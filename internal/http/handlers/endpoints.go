package handlers

import (
	_ "embed"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/gin-gonic/gin"
)

//go:embed endpoints.json
var endpointsJSON []byte

// EndpointsDoc returns a freshly decoded copy of the static endpoint
// documentation.
func EndpointsDoc() (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(endpointsJSON, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// GetEndpoints godoc
// @ID          getEndpoints
// @Summary     Describe the API
// @Description Serves a JSON description of every available endpoint.
// @Tags        Meta
// @Produce     json
//
// @Success     200  {object}  map[string]any
// @Router      / [get]
func (h *Handlers) GetEndpoints(c *gin.Context) {
	doc, err := EndpointsDoc()
	if err != nil {
		handleError(c, err)
		return
	}
	ok(c, http.StatusOK, gin.H{"endpoints": doc})
}
