package controllers

import (
	"civiceye/entity"
	"civiceye/pkg/resp"
	"civiceye/repository"
	"civiceye/services"

	"github.com/gin-gonic/gin"
)

type DepartmentController struct {
	Repo   *repository.DepartmentRepository
	Assign *services.AssignService
}

func NewDepartmentController(repo *repository.DepartmentRepository, assign *services.AssignService) *DepartmentController {
	return &DepartmentController{Repo: repo, Assign: assign}
}

type createDepartmentReq struct {
	Type  string `json:"type" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// POST /departments (MUNICIPAL_ADMIN only, gated in routes)
func (dc *DepartmentController) Create(c *gin.Context) {
	var req createDepartmentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	dept := entity.Department{
		Type:       req.Type,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		AutoAssign: true,
	}
	if err := dc.Repo.Create(&dept); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, dept)
}

// GET /departments
func (dc *DepartmentController) List(c *gin.Context) {
	depts, err := dc.Repo.ListAll()
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, depts)
}

// GET /departments/:key/staff. :key may be an id, a name, or a type key.
func (dc *DepartmentController) ListStaff(c *gin.Context) {
	members, err := dc.Assign.ListMembers(c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, members)
}
