package handlers

import (
	"sheetform/internal/contact"
	"sheetform/internal/database"

	_ "sheetform/docs"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Register mounts the contact routes. Each caller works on its own form,
// tracked by the session cookie. journal may be nil, in which case the
// submissions listing is not exposed.
func Register(e *echo.Echo, sessions *contact.Sessions, journal *database.Journal) {
	session := Session(sessions)

	e.GET("/", ContactPage(), session)
	e.POST("/", SubmitContactPage(), session)
	e.GET("/healthz", Health())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")
	v1.GET("/contact", GetContact(), session)
	v1.PUT("/contact/fields/:name", SetField(), session)
	v1.POST("/contact/submit", Submit(), session)
	if journal != nil {
		v1.GET("/submissions", ListSubmissions(journal))
	}
}
