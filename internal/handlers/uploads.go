package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/NKTHUAN-2K5/portfolio/internal/logger"
	"github.com/NKTHUAN-2K5/portfolio/internal/uploads"
)

// UploadImages forwards the submitted files to the backend and appends
// each resulting URL to the form session's pending collection. Files
// upload concurrently; one failure never discards the others.
func (h *Handler) UploadImages(c *gin.Context) {
	section := c.PostForm("section")
	if _, ok := sectionSpecs[section]; !ok {
		section = h.view.Active()
	}
	back := "/admin/" + section

	formSession := c.PostForm("form_session")
	pending, ok := h.sessions.Get(formSession)
	if !ok {
		h.setNotice(c, "Your form session expired. Reopen the form and try again.")
		c.Redirect(http.StatusFound, back)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.setNotice(c, "Upload failed: malformed request.")
		c.Redirect(http.StatusFound, back)
		return
	}
	headers := form.File["image"]
	if len(headers) == 0 {
		h.setNotice(c, "Choose at least one image to upload.")
		c.Redirect(http.StatusFound, back)
		return
	}

	var files []uploads.File
	oversized := 0
	for _, fh := range headers {
		if fh.Size > h.maxUpload {
			oversized++
			continue
		}
		f, err := fh.Open()
		if err != nil {
			h.log.Warn("Failed to open uploaded file",
				logger.String("filename", fh.Filename),
				logger.Error(err),
			)
			continue
		}
		defer f.Close()
		files = append(files, uploads.File{Name: fh.Filename, Body: f})
	}

	failures := h.uploader.UploadAll(c.Request.Context(), files, pending)
	failed := len(failures) + oversized

	switch {
	case failed == 0:
		h.setNotice(c, fmt.Sprintf("Uploaded %d image(s).", len(files)))
	case len(files) > len(failures):
		h.setNotice(c, fmt.Sprintf("Uploaded %d image(s); %d failed.", len(files)-len(failures), failed))
	default:
		h.setNotice(c, "Upload failed.")
	}
	c.Redirect(http.StatusFound, back)
}

// RemoveImage drops one pending image by URL. Only the first match goes;
// duplicates keep their remaining occurrences and order is preserved.
func (h *Handler) RemoveImage(c *gin.Context) {
	section := c.PostForm("section")
	if _, ok := sectionSpecs[section]; !ok {
		section = h.view.Active()
	}
	back := "/admin/" + section

	formSession := c.PostForm("form_session")
	url := c.PostForm("remove_image")
	if pending, ok := h.sessions.Get(formSession); ok && url != "" {
		pending.Remove(url)
	}
	c.Redirect(http.StatusFound, back)
}
