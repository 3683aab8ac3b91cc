package service

import (
	"bytes"
	"errors"
	"fmt"

	"ulearner_backend/internal/model"
	"ulearner_backend/internal/util"

	"github.com/jung-kurt/gofpdf"
	"gorm.io/gorm"
)

// RenderPDF renders the certificate document on demand. Certificates are
// never stored as files; the bytes are produced fresh per download.
func (s *CertificateService) RenderPDF(certificateNumber string) ([]byte, error) {
	cert, err := s.CertRepo.FindByNumber(certificateNumber)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCertificateNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.renderCertificate(cert)
}

func (s *CertificateService) renderCertificate(cert *model.Certificate) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	contentWidth := pageWidth - left - right

	centered := func(text string, height float64) {
		pdf.CellFormat(contentWidth, height, text, "", 1, "C", false, 0, "")
	}

	pdf.SetY(60)
	pdf.SetFont("Helvetica", "B", 28)
	centered("CERTIFICATE OF COMPLETION", 14)

	pdf.Ln(16)
	pdf.SetFont("Helvetica", "", 16)
	centered("This is to certify that", 8)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(0, 0, 255)
	centered(cert.User.FullName(), 12)
	pdf.SetTextColor(0, 0, 0)

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 16)
	centered("has successfully completed the course", 8)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(64, 64, 64)
	centered(cert.Course.Title, 11)
	pdf.SetTextColor(0, 0, 0)

	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 14)
	centered("Issued on: "+cert.IssuedAt.Format("January 02, 2006"), 7)

	pdf.Ln(18)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(128, 128, 128)
	centered("Certificate Number: "+cert.CertificateNumber, 6)
	pdf.SetTextColor(0, 0, 255)
	pdf.SetFont("Helvetica", "", 10)
	centered(fmt.Sprintf("Verify at: %s/verify/%s", s.Cfg.Certificate.VerifyBaseURL, cert.CertificateNumber), 5)
	pdf.SetTextColor(0, 0, 0)

	pdf.Ln(16)
	pdf.SetFont("Helvetica", "", 14)
	centered("_______________________", 7)
	pdf.SetFont("Helvetica", "", 12)
	centered(cert.Course.Instructor.FullName(), 6)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(128, 128, 128)
	centered("Course Instructor", 5)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering certificate %s: %w", cert.CertificateNumber, err)
	}
	return buf.Bytes(), nil
}
