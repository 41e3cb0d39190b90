package utils

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// certificateTemplate is the rendered artifact. The layout mirrors the
// issued paper certificate; it is served statically from the public folder.
const certificateTemplate = `<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<title>Certificate of Completion</title>
	<style>
		body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
		.certificate { max-width: 800px; margin: 40px auto; background: #FFFFFF; border: 12px solid #00004D; padding: 60px; text-align: center; }
		.header { color: #00004D; font-size: 32px; letter-spacing: 2px; margin-bottom: 10px; }
		.subheader { color: #666666; font-size: 14px; text-transform: uppercase; letter-spacing: 3px; }
		.name { color: #d7b56d; font-size: 40px; margin: 30px 0 10px; }
		.course { color: #00004D; font-size: 24px; margin: 20px 0; }
		.dates { color: #666666; font-size: 14px; margin-top: 20px; }
		.footer { margin-top: 50px; font-size: 12px; color: #999999; border-top: 1px solid #E0E0E0; padding-top: 20px; }
	</style>
</head>
<body>
	<div class="certificate">
		<div class="header">Certificate of Completion</div>
		<div class="subheader">This is to certify that</div>
		<div class="name">{{.StudentName}}</div>
		<div class="subheader">has successfully completed the course</div>
		<div class="course">{{.CourseName}}</div>
		<div class="dates">{{.StartDate}} &mdash; {{.EndDate}}</div>
		<div class="footer">Generated on {{.GeneratedOn}}</div>
	</div>
</body>
</html>`

// CertificateRenderer writes certificate artifacts into OutputDir and hands
// back their public URL. When UploadURL is set the rendered file is pushed to
// the remote artifact store and the store's URL is returned instead of the
// local one.
type CertificateRenderer struct {
	OutputDir string
	UploadURL string
}

func NewCertificateRenderer(outputDir, uploadURL string) *CertificateRenderer {
	return &CertificateRenderer{OutputDir: outputDir, UploadURL: uploadURL}
}

// Render produces the certificate document for a student and course and
// returns the URL it is served under.
func (r *CertificateRenderer) Render(studentName, courseName string, startDate, endDate time.Time) (string, error) {
	tmpl, err := template.New("certificate").Parse(certificateTemplate)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(r.OutputDir, 0755); err != nil {
		return "", err
	}

	filename := uuid.NewString() + ".html"
	filePath := filepath.Join(r.OutputDir, filename)

	file, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	data := map[string]string{
		"StudentName": studentName,
		"CourseName":  courseName,
		"StartDate":   startDate.Format("02 Jan 2006"),
		"EndDate":     endDate.Format("02 Jan 2006"),
		"GeneratedOn": time.Now().Format("02 Jan 2006"),
	}
	if err := tmpl.Execute(file, data); err != nil {
		os.Remove(filePath)
		return "", err
	}

	if r.UploadURL != "" {
		return r.uploadArtifact(filePath, filename)
	}
	return fmt.Sprintf("/certificates/%s", filename), nil
}

// uploadArtifact pushes the rendered file to the artifact store and returns
// the URL the store serves it under.
func (r *CertificateRenderer) uploadArtifact(filePath, filename string) (string, error) {
	client := resty.New()
	resp, err := client.R().
		SetFile("certificate", filePath).
		SetFormData(map[string]string{
			"filename": filename,
		}).
		Post(r.UploadURL)
	if err != nil {
		return "", fmt.Errorf("artifact store upload failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("artifact store returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var uploadResp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(resp.Body(), &uploadResp); err != nil {
		return "", fmt.Errorf("invalid artifact store response: %w", err)
	}
	if uploadResp.URL == "" {
		return "", fmt.Errorf("artifact store response missing url")
	}
	return uploadResp.URL, nil
}
