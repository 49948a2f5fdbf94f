package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/backoffice/backend/internal/domain/document"
	"github.com/backoffice/backend/internal/domain/ticket"
	"github.com/backoffice/backend/internal/domain/visitor"
	"github.com/backoffice/backend/internal/domain/warehouse"
	"github.com/backoffice/backend/internal/domain/workflow"
	"github.com/backoffice/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SystemHandler handles system-related API endpoints
type SystemHandler struct {
	BaseHandler
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name" example:"Back Office API"`
	Version   string `json:"version" example:"1.0.0"`
	GoVersion string `json:"go_version" example:"go1.25.5"`
	Uptime    string `json:"uptime" example:"1h30m45s"`
}

// GetSystemInfo godoc
// @Summary      Get system information
// @Description  Returns basic system information including version and uptime
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /api/v1/system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "Back Office API",
		Version:   "1.0.0",
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message" example:"pong"`
	Timestamp string `json:"timestamp" example:"2026-01-23T12:00:00Z"`
}

// Ping godoc
// @Summary      Ping the API
// @Description  Simple ping endpoint to check if the API is responsive
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /api/v1/system/ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	response := PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// WorkflowStateResponse describes one state of a workflow
type WorkflowStateResponse struct {
	Value    string   `json:"value"`
	Label    string   `json:"label"`
	Color    string   `json:"color"`
	Next     []string `json:"next"`
	Terminal bool     `json:"terminal"`
}

// WorkflowResponse describes one workflow machine
type WorkflowResponse struct {
	Name    string                  `json:"name"`
	Initial string                  `json:"initial"`
	States  []WorkflowStateResponse `json:"states"`
}

// backofficeMachines lists every status workflow the API exposes.
var backofficeMachines = []*workflow.Machine{
	document.Machine,
	warehouse.OrderMachine,
	warehouse.OpnameMachine,
	ticket.Machine,
	ticket.MaintenanceMachine,
	visitor.Machine,
}

// ListWorkflows godoc
// @Summary      List status workflows
// @Description  Returns every workflow machine with its states, labels and allowed transitions
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /api/v1/system/workflows [get]
func (h *SystemHandler) ListWorkflows(c *gin.Context) {
	out := make([]WorkflowResponse, 0, len(backofficeMachines))
	for _, m := range backofficeMachines {
		states := m.States()
		stateResponses := make([]WorkflowStateResponse, 0, len(states))
		for _, s := range states {
			spec, _ := m.Spec(s)
			next := make([]string, 0, len(spec.Next))
			for _, n := range spec.Next {
				next = append(next, n.String())
			}
			stateResponses = append(stateResponses, WorkflowStateResponse{
				Value:    s.String(),
				Label:    spec.Label,
				Color:    spec.Color,
				Next:     next,
				Terminal: m.IsTerminal(s),
			})
		}
		out = append(out, WorkflowResponse{
			Name:    m.Name(),
			Initial: m.Initial().String(),
			States:  stateResponses,
		})
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(out))
}
