package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tobscouts/troop-api/internal/api/handler/v1/response"
)

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Produce      plain
// @Success      200 {string} string "ok"
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.String(http.StatusOK, "ok")
}

// parseUintParam reads a positive integer path parameter, rendering a 400
// itself when the value is malformed.
func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)

	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("%v must be a positive integer", name)))
		return 0, false
	}

	return uint(id), true
}

// parseBoolQuery reads an optional boolean query parameter, rendering a 400
// itself when a value is present but not a boolean.
func parseBoolQuery(ctx *gin.Context, name string) (*bool, bool) {
	raw, exists := ctx.GetQuery(name)
	if !exists {
		return nil, true
	}

	value, err := strconv.ParseBool(raw)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("%v must be a boolean", name)))
		return nil, false
	}

	return &value, true
}

func bearerToken(ctx *gin.Context) string {
	const prefix = "Bearer "

	header := ctx.GetHeader("Authorization")
	if strings.HasPrefix(header, prefix) {
		return strings.TrimPrefix(header, prefix)
	}

	return ""
}
