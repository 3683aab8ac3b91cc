package controller

import (
	"errors"
	"fmt"
	"net/http"

	"ulearner_backend/internal/service"
	"ulearner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

// Generate godoc
// @Summary Issue the completion certificate for a course
// @Description Idempotent: re-requesting an already issued certificate returns the existing one.
// @Tags certificates
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "course id"
// @Success 200 {object} util.Response{data=model.Certificate}
// @Failure 400 {object} util.Response "course not completed yet"
// @Failure 404 {object} util.Response
// @Router /api/certificates/generate/{courseId} [post]
func (c *CertificateController) Generate(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "courseId")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	cert, err := c.CertificateService.Issue(claims.UserID, courseID)
	if err != nil {
		var notEligible *util.NotEligibleError
		switch {
		case errors.As(err, &notEligible):
			util.ErrorWithData(ctx, http.StatusBadRequest,
				fmt.Sprintf("Course not completed yet. Current progress: %.2f%%", notEligible.Percentage),
				gin.H{"completionPercentage": notEligible.Percentage})
		case errors.Is(err, util.ErrUserNotFound):
			util.NotFound(ctx, "User not found")
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx, "Course not found")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, cert)
}

// Download godoc
// @Summary Download the rendered certificate PDF
// @Tags certificates
// @Produce  application/pdf
// @Security ApiKeyAuth
// @Param   certificateNumber path string true "certificate number"
// @Success 200 {file} binary
// @Failure 404 {object} util.Response
// @Router /api/certificates/{certificateNumber}/pdf [get]
func (c *CertificateController) Download(ctx *gin.Context) {
	certificateNumber := ctx.Param("certificateNumber")

	pdfBytes, err := c.CertificateService.RenderPDF(certificateNumber)
	if err != nil {
		if errors.Is(err, util.ErrCertificateNotFound) {
			util.NotFound(ctx, "Certificate not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="certificate-%s.pdf"`, certificateNumber))
	ctx.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// Verify godoc
// @Summary Verify a certificate number
// @Description Public endpoint for third-party verification. Always returns a payload, never an error.
// @Tags certificates
// @Produce  json
// @Param   certificateNumber path string true "certificate number"
// @Success 200 {object} util.Response{data=service.VerificationResult}
// @Router /api/certificates/verify/{certificateNumber} [get]
func (c *CertificateController) Verify(ctx *gin.Context) {
	result := c.CertificateService.Verify(ctx.Param("certificateNumber"))
	util.Success(ctx, result)
}

// GetMyCertificates godoc
// @Summary Certificates of the current user, oldest first
// @Tags certificates
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Certificate}
// @Router /api/certificates/my-certificates [get]
func (c *CertificateController) GetMyCertificates(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	certs, err := c.CertificateService.UserCertificates(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}

// Revoke godoc
// @Summary Revoke a certificate (admin)
// @Description Flips the verified flag; the ledger row is kept as audit trail.
// @Tags certificates
// @Produce  json
// @Security ApiKeyAuth
// @Param   certificateNumber path string true "certificate number"
// @Success 200 {object} util.Response{data=model.Certificate}
// @Failure 404 {object} util.Response
// @Router /api/admin/certificates/{certificateNumber}/revoke [post]
func (c *CertificateController) Revoke(ctx *gin.Context) {
	cert, err := c.CertificateService.Revoke(ctx.Param("certificateNumber"))
	if err != nil {
		if errors.Is(err, util.ErrCertificateNotFound) {
			util.NotFound(ctx, "Certificate not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, cert)
}
