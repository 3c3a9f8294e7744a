package auth

import (
	"errors"
	"net/http"
	"os"

	"github.com/JohnPevien/credit-card-tracker/internal/httputil"
	"github.com/gin-gonic/gin"
)

const (
	// CookieName is the name of the cookie that grants access to the API.
	CookieName = "site_access_token"

	// CookieValue is the value the access cookie is set to.
	CookieValue = "authenticated"

	// CookieMaxAge is the lifetime of the access cookie in seconds, 7 days.
	CookieMaxAge = 7 * 24 * 60 * 60
)

var (
	ErrNotConfigured   = errors.New("no site password is configured")
	ErrPasswordMissing = errors.New("the password field must be set")
	ErrPasswordWrong   = errors.New("the password is incorrect")
)

func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.POST("", Login)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Auth
// @Success		204
// @Router			/v1/auth [options]
func Options(c *gin.Context) {
	httputil.OptionsPost(c)
}

type loginRequest struct {
	Password string `json:"password"` // The site password
}

// @Summary		Log in
// @Description	Verifies the site password and sets the access cookie
// @Tags			Auth
// @Accept			json
// @Produce		json
// @Success		204
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			login	body		loginRequest	true	"Login"
// @Router			/v1/auth [post]
func Login(c *gin.Context) {
	password := os.Getenv("SITE_PASSWORD")
	if password == "" {
		httputil.NewError(c, http.StatusInternalServerError, ErrNotConfigured)
		return
	}

	var request loginRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	if request.Password == "" {
		httputil.NewError(c, http.StatusBadRequest, ErrPasswordMissing)
		return
	}

	if request.Password != password {
		httputil.NewError(c, http.StatusUnauthorized, ErrPasswordWrong)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, CookieValue, CookieMaxAge, "/", "", false, true)
	c.Status(http.StatusNoContent)
}
