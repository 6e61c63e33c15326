package studio

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/NethermindEth/prompt-studio/pkg/studio/content"
	"github.com/NethermindEth/prompt-studio/pkg/studio/controller"
	"github.com/NethermindEth/prompt-studio/pkg/studio/view"
)

const SessionCookieName = "studio_session"

type GenerateRequest struct {
	Prompt string `json:"prompt"`
	Type   string `json:"type"`
}

type GenerateResponse struct {
	Type   content.Type `json:"type"`
	Result string       `json:"result"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type StateResponse struct {
	Prompt string           `json:"prompt"`
	Type   content.Type     `json:"type"`
	State  controller.State `json:"state"`
}

func (s *Studio) generateRouter() *gin.Engine {
	router := gin.Default()
	router.SetHTMLTemplate(view.Template())

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	router.GET("/", func(c *gin.Context) {
		ctrl, ok := s.sessionController(c)
		if !ok {
			return
		}

		c.HTML(http.StatusOK, view.TemplateName, view.Render(ctrl.State(), ctrl.Prompt(), ctrl.Type()))
	})

	router.POST("/generate", func(c *gin.Context) {
		ctrl, ok := s.sessionController(c)
		if !ok {
			return
		}

		if err := s.submitForm(c, ctrl); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}

		c.Redirect(http.StatusSeeOther, "/")
	})

	router.GET("/api/state", func(c *gin.Context) {
		ctrl, ok := s.sessionController(c)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, StateResponse{
			Prompt: ctrl.Prompt(),
			Type:   ctrl.Type(),
			State:  ctrl.State(),
		})
	})

	router.POST("/api/generate", func(c *gin.Context) {
		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}

		result, t, status, err := s.Generate(c.Request.Context(), req)
		if err != nil {
			c.JSON(status, ErrorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, GenerateResponse{Type: t, Result: result})
	})

	return router
}

func (s *Studio) GetRouter() *gin.Engine {
	return s.apiRouter
}

// sessionController resolves the caller's controller, issuing a new session
// cookie when the old one is missing or expired.
func (s *Studio) sessionController(c *gin.Context) (*controller.Controller, bool) {
	id, _ := c.Cookie(SessionCookieName)

	newId, ctrl, err := s.sessions.Get(id)
	if err != nil {
		slog.Error("failed to get session", "error", err)
		c.String(http.StatusInternalServerError, err.Error())
		return nil, false
	}

	if newId != id {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookieName, newId, int(s.sessionTTL.Seconds()), "/", "", false, true)
	}

	return ctrl, true
}

// submitForm applies the posted prompt and mode and submits. Posting while a
// request is in flight changes nothing.
func (s *Studio) submitForm(c *gin.Context, ctrl *controller.Controller) error {
	if ctrl.Busy() {
		return nil
	}

	if raw, ok := c.GetPostForm("type"); ok {
		t, err := content.ParseType(raw)
		if err != nil {
			return err
		}
		if err := ctrl.SetType(t); err != nil {
			return ignoreBusy(err)
		}
	}

	if err := ctrl.SetPrompt(c.PostForm("prompt")); err != nil {
		return ignoreBusy(err)
	}

	// The generation outlives this request.
	_, err := ctrl.Submit(context.WithoutCancel(c.Request.Context()))
	return ignoreBusy(err)
}

func ignoreBusy(err error) error {
	if errors.Is(err, controller.ErrBusy) {
		return nil
	}
	return err
}

// Generate runs a single stateless generation on the worker pool. The
// returned status is the HTTP status to report alongside err.
func (s *Studio) Generate(ctx context.Context, req GenerateRequest) (string, content.Type, int, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return "", "", http.StatusBadRequest, errors.New(controller.EmptyPromptMessage)
	}

	t, err := content.ParseType(req.Type)
	if err != nil {
		return "", "", http.StatusBadRequest, err
	}

	var result string
	task := s.pool.SubmitErr(func() error {
		var err error
		result, err = s.dispatcher.Generate(ctx, prompt, t)
		return err
	})

	if err := task.Wait(); err != nil {
		slog.Info("generation failed", "type", t, "error", err)
		if err.Error() == "" {
			err = errors.New(controller.FallbackMessage)
		}
		return "", t, http.StatusBadGateway, err
	}

	return result, t, http.StatusOK, nil
}
