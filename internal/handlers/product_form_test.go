package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
)

func newMultipartContext(t *testing.T, fields map[string]string, fileField, fileName string, fileBody []byte) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	if fileField != "" {
		part, err := writer.CreateFormFile(fileField, fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(fileBody); err != nil {
			t.Fatalf("write file body: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/seller/products", buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = req
	return c
}

func TestParseProductFormFullForm(t *testing.T) {
	c := newMultipartContext(t, map[string]string{
		"title":       "  Fountain Pen  ",
		"price":       "12.50",
		"description": "Fine nib",
	}, "image", "pen.png", []byte("not really a png"))

	input, err := parseProductForm(c)
	if err != nil {
		t.Fatalf("parseProductForm: %v", err)
	}

	if !input.TitleSet || input.Title != "Fountain Pen" {
		t.Errorf("title = %q (set=%v), want trimmed Fountain Pen", input.Title, input.TitleSet)
	}
	if !input.PriceSet || input.Price != 12.50 {
		t.Errorf("price = %v (set=%v), want 12.50", input.Price, input.PriceSet)
	}
	if !input.DescriptionSet || input.Description != "Fine nib" {
		t.Errorf("description = %q, want Fine nib", input.Description)
	}
	if !input.ImageSet || input.Image == nil {
		t.Fatal("expected image to be set")
	}
	if input.Image.Filename != "pen.png" {
		t.Errorf("image filename = %q, want pen.png", input.Image.Filename)
	}
}

func TestParseProductFormPartialFields(t *testing.T) {
	c := newMultipartContext(t, map[string]string{"price": "3.99"}, "", "", nil)

	input, err := parseProductForm(c)
	if err != nil {
		t.Fatalf("parseProductForm: %v", err)
	}

	if input.TitleSet || input.DescriptionSet || input.ImageSet {
		t.Errorf("unexpected fields set: title=%v description=%v image=%v",
			input.TitleSet, input.DescriptionSet, input.ImageSet)
	}
	if !input.PriceSet || input.Price != 3.99 {
		t.Errorf("price = %v (set=%v), want 3.99", input.Price, input.PriceSet)
	}
}

func TestParseProductFormRejectsBadPrice(t *testing.T) {
	c := newMultipartContext(t, map[string]string{"price": "twelve"}, "", "", nil)

	if _, err := parseProductForm(c); err == nil {
		t.Fatal("expected error for non-numeric price")
	}
}

func TestReadImageFileRejectsOversizedUpload(t *testing.T) {
	file := &multipart.FileHeader{Filename: "big.png", Size: maxImageSize + 1}

	if _, err := readImageFile(file); err == nil {
		t.Fatal("expected error for oversized image")
	}
}

func TestParsePageParam(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"", 1, false},
		{"1", 1, false},
		{"42", 42, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"abc", 0, true},
	}

	for _, tc := range cases {
		got, err := parsePageParam(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parsePageParam(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parsePageParam(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("parsePageParam(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRespondDomainErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.ValidationError{Field: "title", Reason: "empty"}, http.StatusBadRequest},
		{"not found", domain.NotFoundError{Resource: "product"}, http.StatusNotFound},
		{"authorization", domain.AuthorizationError{Resource: "order"}, http.StatusForbidden},
		{"empty cart", domain.EmptyCartError{}, http.StatusUnprocessableEntity},
		{"upstream", domain.UpstreamError{Service: "payment gateway"}, http.StatusBadGateway},
	}

	for _, tc := range cases {
		recorder := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(recorder)
		respondDomainError(c, "test", tc.err)
		if recorder.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, recorder.Code, tc.want)
		}
	}
}
