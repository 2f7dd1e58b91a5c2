// Package render produces the formal sanction artifact for approved
// applications.
package render

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/finncap/origination/internal/domain/model"
	"github.com/finncap/origination/internal/domain/valueobject"
)

var sanctionTemplate = template.Must(template.New("sanction").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Loan Sanction Letter</title></head>
<body>
  <h1>Loan Sanction Letter</h1>
  <p>Date: {{.Date}}</p>
  <p>Dear {{.BorrowerName}},</p>
  <p>We are pleased to inform you that your personal loan application
  <strong>{{.ApplicationID}}</strong> has been approved on the following terms:</p>
  <table border="1" cellpadding="6">
    <tr><td>Sanctioned amount</td><td>{{.Amount}}</td></tr>
    <tr><td>Tenure</td><td>{{.TenureMonths}} months</td></tr>
    <tr><td>Interest rate</td><td>{{.InterestRate}}% p.a.</td></tr>
    <tr><td>Monthly installment (EMI)</td><td>{{.EMI}}</td></tr>
    <tr><td>Total payable</td><td>{{.TotalPayable}}</td></tr>
  </table>
  <p>This sanction is valid for 30 days from the date above.</p>
</body>
</html>
`))

type sanctionData struct {
	Date          string
	BorrowerName  string
	ApplicationID string
	Amount        string
	TenureMonths  int
	InterestRate  string
	EMI           string
	TotalPayable  string
}

// SanctionRenderer writes sanction letters as HTML files under a base
// directory and returns the file reference.
type SanctionRenderer struct {
	baseDir string
}

// NewSanctionRenderer creates a SanctionRenderer rooted at baseDir.
func NewSanctionRenderer(baseDir string) (*SanctionRenderer, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create sanction directory: %w", err)
	}
	return &SanctionRenderer{baseDir: baseDir}, nil
}

// Render produces the artifact. The application must be approved.
func (r *SanctionRenderer) Render(_ context.Context, app model.LoanApplication, user model.User) (string, error) {
	if !app.Status().Equal(valueobject.StatusApproved()) {
		return "", fmt.Errorf("sanction letter requires approved status, have %s", app.Status().String())
	}

	var buf bytes.Buffer
	err := sanctionTemplate.Execute(&buf, sanctionData{
		Date:          time.Now().UTC().Format("02 Jan 2006"),
		BorrowerName:  user.FullName(),
		ApplicationID: app.ID().String(),
		Amount:        app.Amount().StringFixed(2),
		TenureMonths:  app.TenureMonths(),
		InterestRate:  app.InterestRate().StringFixed(2),
		EMI:           app.EMI().StringFixed(2),
		TotalPayable:  app.TotalPayable().StringFixed(2),
	})
	if err != nil {
		return "", fmt.Errorf("render sanction letter: %w", err)
	}

	ref := filepath.Join(r.baseDir, fmt.Sprintf("sanction-%s.html", app.ID()))
	if err := os.WriteFile(ref, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write sanction letter: %w", err)
	}
	return ref, nil
}
