package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/01moynul/baaje-storefront/internal/apperr"
	"github.com/01moynul/baaje-storefront/internal/payload"
	"github.com/01moynul/baaje-storefront/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// readRaw collects the request's scalar fields as strings, whatever the body
// encoding. For repeated form keys the first value wins.
func readRaw(c *gin.Context) (payload.Raw, error) {
	switch c.ContentType() {
	case binding.MIMEJSON:
		return readJSON(c)
	case binding.MIMEMultipartPOSTForm:
		form, err := multipartForm(c)
		if err != nil {
			return nil, err
		}
		return firstValues(form.Value), nil
	default:
		if err := c.Request.ParseForm(); err != nil {
			return nil, apperr.Validation("Malformed form body")
		}
		return firstValues(c.Request.PostForm), nil
	}
}

func readJSON(c *gin.Context) (payload.Raw, error) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, apperr.Upstream("read request body", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return payload.Raw{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, apperr.Validation("Request body must be a JSON object")
	}
	return payload.RawFromJSON(body), nil
}

func multipartForm(c *gin.Context) (*multipart.Form, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return &multipart.Form{}, nil
		}
		return nil, apperr.Validation("Malformed multipart body")
	}
	return form, nil
}

func firstValues(values map[string][]string) payload.Raw {
	raw := make(payload.Raw, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			raw[k] = vs[0]
		}
	}
	return raw
}

// uploadedFiles returns the files sent under field. Non-multipart requests
// carry none.
func uploadedFiles(c *gin.Context, field string) ([]*multipart.FileHeader, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, nil
	}
	form, err := multipartForm(c)
	if err != nil {
		return nil, err
	}
	return form.File[field], nil
}

// singleUpload accepts at most one file under field; nil means none was sent.
func singleUpload(c *gin.Context, field string, rule storage.Rule) (*payload.Upload, error) {
	files, err := uploadedFiles(c, field)
	if err != nil || len(files) == 0 {
		return nil, err
	}
	if len(files) > 1 {
		return nil, apperr.Validation("only one %s file is allowed", field)
	}
	u, err := storage.Accept(field, files[0], rule)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func multiUpload(c *gin.Context, field string, rule storage.Rule, limit int) ([]payload.Upload, error) {
	files, err := uploadedFiles(c, field)
	if err != nil {
		return nil, err
	}
	return storage.AcceptAll(field, files, rule, limit)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Validation("Invalid id")
	}
	return id, nil
}

// readPayload runs the normalizer over the request fields.
func (h *Handlers) readPayload(c *gin.Context, schema payload.Schema) (payload.Values, error) {
	raw, err := readRaw(c)
	if err != nil {
		return nil, err
	}
	return payload.Normalize(schema, raw, h.NumericPolicy)
}
