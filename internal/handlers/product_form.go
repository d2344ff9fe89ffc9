package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 5 << 20

// productFormInput carries the parsed multipart product form. The *Set flags
// distinguish "field absent" from "field set to a zero value" so updates can
// be partial.
type productFormInput struct {
	Title          string
	TitleSet       bool
	Price          float64
	PriceSet       bool
	Description    string
	DescriptionSet bool
	Image          *multipart.FileHeader
	ImageSet       bool
}

func parseProductForm(c *gin.Context) (productFormInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return productFormInput{}, err
	}

	input := productFormInput{}

	if value, ok := c.GetPostForm("title"); ok {
		input.Title = strings.TrimSpace(value)
		input.TitleSet = true
	}

	if value, ok := c.GetPostForm("description"); ok {
		input.Description = strings.TrimSpace(value)
		input.DescriptionSet = true
	}

	if value, ok := c.GetPostForm("price"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return productFormInput{}, fmt.Errorf("invalid price: %s", value)
		}
		input.Price = parsed
		input.PriceSet = true
	}

	file, err := c.FormFile("image")
	if err == nil {
		input.Image = file
		input.ImageSet = true
	} else if !errors.Is(err, http.ErrMissingFile) &&
		!strings.Contains(err.Error(), "no such file") {
		return productFormInput{}, err
	}

	return input, nil
}

func readImageFile(file *multipart.FileHeader) ([]byte, error) {
	if file.Size > maxImageSize {
		return nil, fmt.Errorf("image file too large (max 5MB)")
	}

	in, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer in.Close()

	return io.ReadAll(in)
}
