package controllers

import (
	"civiceye/entity"
	"civiceye/pkg/resp"
	"civiceye/repository"
	"civiceye/services"
	"civiceye/utils"

	"github.com/gin-gonic/gin"
)

type StaffController struct {
	Proof     *services.ProofOfWorkService
	Lifecycle *services.LifecycleService
	Staff     *repository.StaffRepository
	Issues    *repository.IssueRepository
}

func NewStaffController(proof *services.ProofOfWorkService, lifecycle *services.LifecycleService, staff *repository.StaffRepository, issues *repository.IssueRepository) *StaffController {
	return &StaffController{Proof: proof, Lifecycle: lifecycle, Staff: staff, Issues: issues}
}

// GET /partner/staff/work lists the issues assigned to the calling staff
// member.
func (sc *StaffController) Worklist(c *gin.Context) {
	staff, err := sc.Staff.FindByUserID(utils.CurrentUserID(c))
	if err != nil {
		resp.NotFound(c, "no staff profile")
		return
	}

	issues, err := sc.Issues.ListByStaff(staff.ID)
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, issues)
}

// PATCH /partner/staff/issues/:id/start marks assigned work as in progress.
func (sc *StaffController) StartWork(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}
	issue, err := sc.Lifecycle.ChangeStatus(id, utils.CurrentUserID(c), entity.StatusInProgress)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, issue)
}

// POST /partner/staff/issues/:id/proof (multipart: exactly one "proof" file)
func (sc *StaffController) UploadProof(c *gin.Context) {
	id := parseID(c)
	if id == 0 {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		resp.BadRequest(c, "multipart form required")
		return
	}
	files := form.File["proof"]
	if len(files) != 1 {
		resp.BadRequest(c, "exactly one proof file is required")
		return
	}

	path, err := saveUploadTemp(c, files[0])
	if err != nil {
		resp.ServerError(c, err)
		return
	}

	issue, err := sc.Proof.Submit(c.Request.Context(), id, utils.CurrentUserID(c), path)
	if err != nil {
		respondError(c, err)
		return
	}
	resp.OK(c, issue)
}
