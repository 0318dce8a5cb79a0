package handlers

import (
	"context"
	"errors"
	"net/http"
	"sheetform/internal/contact"
	"sheetform/internal/database"
	"sheetform/internal/logger"
	"sheetform/internal/views"
	"strconv"

	"github.com/labstack/echo/v4"
)

type submissionLister interface {
	Recent(ctx context.Context, limit int) ([]database.Submission, error)
}

// ContactPage godoc
// @Summary      Contact form page
// @Description  Renders the contact form with the current field values and status line
// @Tags         contact
// @Produce      html
// @Success      200  {string}  string  "HTML page"
// @Router       / [get]
func ContactPage() echo.HandlerFunc {
	return func(c echo.Context) error {
		return render(c, http.StatusOK, submitter(c))
	}
}

// SubmitContactPage godoc
// @Summary      Submit the contact form from a browser
// @Description  Applies the posted fields, relays the form to the sheet endpoint and re-renders the page
// @Tags         contact
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        name     formData  string  false  "Name"
// @Param        email    formData  string  false  "Email"
// @Param        phone    formData  string  false  "Phone"
// @Param        subject  formData  string  false  "Subject"
// @Param        message  formData  string  false  "Message"
// @Success      200  {string}  string  "HTML page"
// @Failure      409  {string}  string  "HTML page, a submit is already running"
// @Router       / [post]
func SubmitContactPage() echo.HandlerFunc {
	return func(c echo.Context) error {
		s := submitter(c)
		form, err := c.FormParams()
		if err != nil {
			return c.String(http.StatusBadRequest, "invalid form body")
		}
		for _, f := range contact.Fields {
			if values, ok := form[string(f)]; ok && len(values) > 0 {
				if err := s.SetField(string(f), values[0]); err != nil {
					logger.Error("failed to apply form field", err)
				}
			}
		}

		if _, err := s.Submit(detached(c)); errors.Is(err, contact.ErrSubmitInFlight) {
			return render(c, http.StatusConflict, s)
		}
		return render(c, http.StatusOK, s)
	}
}

// GetContact godoc
// @Summary      Current contact form
// @Description  Returns the field values, the last status line and whether a submit is running
// @Tags         contact
// @Produce      json
// @Success      200  {object}  ContactResponse
// @Router       /v1/contact [get]
func GetContact() echo.HandlerFunc {
	return func(c echo.Context) error {
		s := submitter(c)
		return c.JSON(http.StatusOK, ContactResponse{
			Form:       s.Snapshot(),
			Status:     s.Status(),
			Submitting: s.Submitting(),
		})
	}
}

// SetField godoc
// @Summary      Change one form field
// @Description  Sets exactly one field; the value is stored as given
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        name  path  string           true  "Field name"  Enums(name, email, phone, subject, message)
// @Param        body  body  SetFieldRequest  true  "New value"
// @Success      200   {object}  ContactResponse
// @Failure      400   {object}  map[string]string
// @Router       /v1/contact/fields/{name} [put]
func SetField() echo.HandlerFunc {
	return func(c echo.Context) error {
		s := submitter(c)
		var req SetFieldRequest
		if err := c.Bind(&req); err != nil || req.Value == nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
		}

		if err := s.SetField(c.Param("name"), *req.Value); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, ContactResponse{
			Form:       s.Snapshot(),
			Status:     s.Status(),
			Submitting: s.Submitting(),
		})
	}
}

// Submit godoc
// @Summary      Submit the contact form
// @Description  Relays the five fields to the sheet endpoint once. Remote and transport failures are reported in the body, not the status code
// @Tags         contact
// @Produce      json
// @Success      200  {object}  SubmitResponse
// @Failure      409  {object}  map[string]string
// @Router       /v1/contact/submit [post]
func Submit() echo.HandlerFunc {
	return func(c echo.Context) error {
		s := submitter(c)
		outcome, err := s.Submit(detached(c))
		if errors.Is(err, contact.ErrSubmitInFlight) {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, SubmitResponse{
			Outcome: outcome,
			Status:  s.Status(),
			Form:    s.Snapshot(),
		})
	}
}

// ListSubmissions godoc
// @Summary      Recent submit attempts
// @Description  Returns journaled submit attempts, newest first
// @Tags         submissions
// @Produce      json
// @Param        limit  query  int  false  "Max items"  default(20)
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  map[string]string
// @Router       /v1/submissions [get]
func ListSubmissions(journal submissionLister) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))

		results, err := journal.Recent(c.Request().Context(), limit)
		if err != nil {
			logger.Error("failed to list submissions", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}

		return c.JSON(http.StatusOK, echo.Map{"results": results})
	}
}

// Health godoc
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func Health() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	}
}

// detached keeps request values but drops cancellation: a submit the sheet may
// already have received runs to completion even if the client goes away.
func detached(c echo.Context) context.Context {
	return context.WithoutCancel(c.Request().Context())
}

func render(c echo.Context, code int, s *contact.Submitter) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return views.ContactPage(s.Snapshot(), s.Status()).Render(c.Request().Context(), c.Response())
}
