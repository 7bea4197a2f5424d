package controllers

import (
	"net/http"

	"civiceye/pkg/resp"
	"civiceye/services"

	"github.com/gin-gonic/gin"
)

type OTPController struct {
	OTP *services.OTPService
}

func NewOTPController(otp *services.OTPService) *OTPController {
	return &OTPController{OTP: otp}
}

// POST /otp/send
func (oc *OTPController) Send(c *gin.Context) {
	var req struct {
		MobileNumber string `json:"mobileNumber" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := oc.OTP.Send(c.Request.Context(), req.MobileNumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", out)
}

// POST /otp/verify
func (oc *OTPController) Verify(c *gin.Context) {
	var req struct {
		MobileNumber   string `json:"mobileNumber" binding:"required"`
		VerificationID string `json:"verificationId" binding:"required"`
		Code           string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	out, err := oc.OTP.Verify(c.Request.Context(), req.MobileNumber, req.VerificationID, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", out)
}
