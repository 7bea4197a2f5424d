package controllers

import (
	"civiceye/entity"
	"civiceye/pkg/resp"
	"civiceye/services"
	"civiceye/utils"

	"github.com/gin-gonic/gin"
)

type ComplaintController struct {
	Complaints *services.ComplaintService
}

func NewComplaintController(complaints *services.ComplaintService) *ComplaintController {
	return &ComplaintController{Complaints: complaints}
}

// POST /issues/:id/complaints
func (cc *ComplaintController) Create(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	var req struct {
		AgainstDept string `json:"againstDept"`
		Reason      string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	complaint, err := cc.Complaints.Create(id, utils.CurrentUserID(c), req.AgainstDept, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, complaint)
}

// GET /issues/:id/complaints
func (cc *ComplaintController) ListForIssue(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	complaints, err := cc.Complaints.ListByIssue(id)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, complaints)
}

// GET /admin/complaints
func (cc *ComplaintController) ListAll(c *gin.Context) {
	complaints, err := cc.Complaints.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, complaints)
}

// POST /admin/complaints/:id/actions
func (cc *ComplaintController) AddAction(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	action, err := cc.Complaints.AddAction(id, utils.CurrentUserID(c), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.Created(c, action)
}

// PATCH /admin/complaints/:id/status
func (cc *ComplaintController) UpdateStatus(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	var req struct {
		Status entity.ComplaintStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	complaint, err := cc.Complaints.UpdateStatus(id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, complaint)
}
