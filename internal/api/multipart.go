package api

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gin-gonic/gin"

	"service-logger-backend/internal/logbook"
	"service-logger-backend/internal/media"
)

// formState reads the operator's state from multipart fields.
func formState(c *gin.Context) logbook.State {
	mode := logbook.Mode(c.PostForm("mode"))
	if mode == "" {
		return logbook.Initial()
	}
	return logbook.State{
		Mode:               mode,
		SelectedCustomerID: c.PostForm("selected_customer_id"),
		SelectedMachineID:  c.PostForm("selected_machine_id"),
	}
}

func readUpload(fh *multipart.FileHeader) (media.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return media.Upload{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return media.Upload{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return media.Upload{Filename: fh.Filename, Data: data}, nil
}

// formUploads reads every file sent under field. A missing field is not an error.
func formUploads(c *gin.Context, field string) ([]media.Upload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	var uploads []media.Upload
	for _, fh := range form.File[field] {
		up, err := readUpload(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, up)
	}
	return uploads, nil
}

// formUpload reads the first file sent under field, or nil.
func formUpload(c *gin.Context, field string) (*media.Upload, error) {
	uploads, err := formUploads(c, field)
	if err != nil || len(uploads) == 0 {
		return nil, err
	}
	return &uploads[0], nil
}

// formSignature accepts the signature either as an uploaded file or as a
// data URL posted by a drawing canvas.
func formSignature(c *gin.Context) ([]byte, error) {
	up, err := formUpload(c, "signature")
	if err != nil {
		return nil, err
	}
	if up != nil {
		return up.Data, nil
	}
	if v := strings.TrimSpace(c.PostForm("signature")); v != "" {
		return []byte(v), nil
	}
	return nil, nil
}
