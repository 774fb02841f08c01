package render

import (
	"fmt"
	"strings"

	"github.com/Aashish23092/tour-diary-generator/dto"
)

// OutputBaseName is the download name of every rendered diary, without extension.
const OutputBaseName = "NAU_Tour_Diary_Landscape"

// Renderer turns a merged diary into one downloadable document.
type Renderer interface {
	Render(d *dto.Diary) ([]byte, error)
	ContentType() string
	Extension() string
	Format() string
}

// ForFormat returns the renderer for "docx", "pdf" or "xlsx".
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case dto.FormatDOCX, "":
		return DOCXRenderer{}, nil
	case dto.FormatPDF:
		return PDFRenderer{}, nil
	case dto.FormatXLSX:
		return XLSXRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", dto.ErrUnknownFormat, format)
	}
}

// Filename is the attachment name for r.
func Filename(r Renderer) string {
	return OutputBaseName + r.Extension()
}
