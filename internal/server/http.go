package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/DominicWuest/issuebisect/internal/openqa"
	"github.com/DominicWuest/issuebisect/pkg/issuebisect"
	"github.com/gin-gonic/gin"
)

type httpServer struct {
	host string

	newInvestigator InvestigatorFactory
}

func (h *httpServer) Init(port int) error {
	return h.router().Run(fmt.Sprintf(":%d", port))
}

func (h *httpServer) router() *gin.Engine {
	router := gin.Default()

	router.GET("/plan/:jobId", h.getPlan)
	router.POST("/bisect/:jobId", h.postBisect)

	return router
}

type planResponse struct {
	RunID  string `json:"runId"`
	Reason string `json:"reason,omitempty"`

	Plan   issuebisect.Plan `json:"plan"`
	Digest string           `json:"digest"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// jobURL returns the URL of the job passed as path parameter, or false if the parameter is no valid job ID
func (h *httpServer) jobURL(c *gin.Context) (string, bool) {
	id, err := strconv.Atoi(c.Param("jobId"))
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid job id %q", c.Param("jobId"))})
		return "", false
	}
	return openqa.JobRef{Host: strings.TrimRight(h.host, "/"), ID: id}.URL(), true
}

func (h *httpServer) getPlan(c *gin.Context) {
	jobURL, ok := h.jobURL(c)
	if !ok {
		return
	}

	res, err := h.newInvestigator(true).Run(c.Request.Context(), jobURL)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	digest := res.Plan.Digest()
	c.Header("ETag", fmt.Sprintf("%q", digest))
	c.JSON(http.StatusOK, planResponse{
		RunID:  res.RunID,
		Reason: res.Reason,

		Plan:   res.Plan,
		Digest: digest,
	})
}

func (h *httpServer) postBisect(c *gin.Context) {
	jobURL, ok := h.jobURL(c)
	if !ok {
		return
	}

	res, err := h.newInvestigator(false).Run(c.Request.Context(), jobURL)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, res)
}
