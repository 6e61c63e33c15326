package view

import (
	"embed"
	"html/template"
	"io"
	"strings"

	"github.com/NethermindEth/prompt-studio/pkg/studio/content"
	"github.com/NethermindEth/prompt-studio/pkg/studio/controller"
)

const (
	TemplateName       = "index.html"
	PlaceholderMessage = "Your generated result will appear here."

	loadingRefreshSeconds = 1
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type Body string

const (
	BodyIdle    Body = "idle"
	BodyLoading Body = "loading"
	BodyError   Body = "error"
	BodyText    Body = "text"
	BodyImage   Body = "image"
)

type Mode struct {
	Value  content.Type
	Label  string
	Active bool
}

type Page struct {
	Prompt string
	Modes  []Mode
	Busy   bool

	Body     Body
	Text     string
	ImageSrc template.URL
	Error    string

	// RefreshSeconds is non-zero while a request is loading.
	RefreshSeconds int
}

// Render maps a controller snapshot onto the page model. It has no side
// effects; selected is the mode shown in the toggle, which may differ from
// the type the displayed result was generated with.
func Render(state controller.State, prompt string, selected content.Type) Page {
	page := Page{
		Prompt: prompt,
		Busy:   state.Busy(),
		Modes: []Mode{
			{Value: content.TypeText, Label: "Text", Active: selected == content.TypeText},
			{Value: content.TypeImage, Label: "Image", Active: selected == content.TypeImage},
		},
	}

	switch state.Status {
	case controller.StatusLoading, controller.StatusValidating:
		page.Body = BodyLoading
		page.RefreshSeconds = loadingRefreshSeconds
	case controller.StatusFailed:
		page.Body = BodyError
		page.Error = state.Error
	case controller.StatusSucceeded:
		if state.Type == content.TypeImage {
			src, ok := imageSource(state.Result)
			if !ok {
				page.Body = BodyError
				page.Error = controller.FallbackMessage
				break
			}
			page.Body = BodyImage
			page.ImageSrc = src
		} else {
			page.Body = BodyText
			page.Text = state.Result
		}
	default:
		page.Body = BodyIdle
	}

	return page
}

// imageSource trusts only http(s) URLs and image data URIs; html/template
// would otherwise rewrite a data URI to an unsafe placeholder.
func imageSource(result string) (template.URL, bool) {
	lower := strings.ToLower(result)
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "data:image/") {
		return template.URL(result), true
	}

	return "", false
}

func Template() *template.Template {
	return pageTemplate
}

func Write(w io.Writer, page Page) error {
	return pageTemplate.ExecuteTemplate(w, TemplateName, page)
}
