package controllers

import (
	"civiceye/entity"
	"civiceye/pkg/resp"
	"civiceye/services"
	"civiceye/utils"

	"github.com/gin-gonic/gin"
)

type AdminIssueController struct {
	Lifecycle *services.LifecycleService
	Assign    *services.AssignService
}

func NewAdminIssueController(lifecycle *services.LifecycleService, assign *services.AssignService) *AdminIssueController {
	return &AdminIssueController{Lifecycle: lifecycle, Assign: assign}
}

type assignReq struct {
	Department string          `json:"department"`
	StaffID    *uint           `json:"staffId"`
	Priority   entity.Priority `json:"priority"`
}

// PATCH /admin/issues/:id/assign handles combined department/staff assignment.
func (ac *AdminIssueController) AssignIssue(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	var req assignReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	issue, err := ac.Lifecycle.Assign(id, utils.CurrentUserID(c), services.AssignInput{
		Department: req.Department,
		StaffID:    req.StaffID,
		Priority:   req.Priority,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, issue)
}

// PATCH /admin/issues/:id/reassign-dept
func (ac *AdminIssueController) ReassignDept(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	var req struct {
		Department string `json:"department" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	issue, err := ac.Lifecycle.Assign(id, utils.CurrentUserID(c), services.AssignInput{Department: req.Department})
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, issue)
}

// PATCH /admin/issues/:id/assign-staff
func (ac *AdminIssueController) AssignStaff(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	var req struct {
		StaffID uint `json:"staffId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	issue, err := ac.Lifecycle.Assign(id, utils.CurrentUserID(c), services.AssignInput{StaffID: &req.StaffID})
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, issue)
}

// PATCH /admin/issues/:id/status applies an explicit transition, validated against the
// state graph.
func (ac *AdminIssueController) ChangeStatus(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	var req struct {
		Status entity.IssueStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	issue, err := ac.Lifecycle.ChangeStatus(id, utils.CurrentUserID(c), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, issue)
}
