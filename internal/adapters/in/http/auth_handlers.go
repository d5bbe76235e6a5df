package http

import (
	"net/http"

	"crowdship/internal/core/application/usecases/commands"
	"crowdship/internal/core/application/usecases/queries"
	"crowdship/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Register godoc
// @Summary     Create an account
// @Description Accepts JSON or multipart/form-data with an optional "photo" file.
// @Description A 4-digit verification code is mailed to the address.
// @Tags        auth
// @Accept      json,mpfd
// @Produce     json
// @Param       request body     registerRequest true "Account"
// @Success     201     {object} messageResponse
// @Failure     400     {object} errorResponse
// @Router      /auth/register [post]
func (s *Server) Register(c echo.Context) error {
	var req registerRequest
	if isMultipart(c) {
		req.Name, req.Email, req.Password = c.FormValue("name"), c.FormValue("email"), c.FormValue("password")
	} else if err := bindJSON(c, &req); err != nil {
		return err
	}

	photo, release, err := optionalPhoto(c)
	if err != nil {
		return err
	}
	defer release()

	cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), req.Name, req.Email, req.Password, photo)
	if err != nil {
		return err
	}
	if err = s.h.RegisterUser.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{
		Status:  statusSuccess,
		Message: "A verification code was sent to your email",
	})
}

// VerifyEmail godoc
// @Summary Confirm the e-mail address with the mailed code
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   request body     verifyEmailRequest true "Code"
// @Success 201     {object} sessionResponse
// @Failure 400     {object} errorResponse
// @Router  /auth/verify-email [post]
func (s *Server) VerifyEmail(c echo.Context) error {
	var req verifyEmailRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewVerifyEmailCommand(req.Email, req.Code)
	if err != nil {
		return err
	}
	session, err := s.h.VerifyEmail.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respondSession(c, http.StatusCreated, session)
}

// Login godoc
// @Summary     Log in
// @Description Unverified accounts receive a new verification code instead of a token.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body     loginRequest true "Credentials"
// @Success     200     {object} sessionResponse
// @Failure     401     {object} errorResponse
// @Router      /auth/login [post]
func (s *Server) Login(c echo.Context) error {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewLoginCommand(req.Email, req.Password)
	if err != nil {
		return err
	}
	result, err := s.h.Login.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	if result.VerificationRequired {
		return c.JSON(http.StatusOK, messageResponse{
			Status:  statusSuccess,
			Message: "Your account is not verified yet, a new verification code was sent to your email",
		})
	}
	return s.respondSession(c, http.StatusOK, result.Session)
}

// ForgotPassword godoc
// @Summary Mail a password reset link
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   request body     forgotPasswordRequest true "Account e-mail"
// @Success 200     {object} messageResponse
// @Failure 404     {object} errorResponse
// @Router  /auth/forgot-password [post]
func (s *Server) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewForgotPasswordCommand(req.Email)
	if err != nil {
		return err
	}
	if err = s.h.ForgotPassword.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{
		Status:  statusSuccess,
		Message: "A password reset link was sent to your email",
	})
}

// ResetPassword godoc
// @Summary Set a new password with a reset token
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   resetToken path     string               true "Token from the reset link"
// @Param   request    body     resetPasswordRequest true "New password"
// @Success 200        {object} sessionResponse
// @Failure 400        {object} errorResponse
// @Router  /auth/reset-password/{resetToken} [patch]
func (s *Server) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewResetPasswordCommand(c.Param("resetToken"), req.Password)
	if err != nil {
		return err
	}
	session, err := s.h.ResetPassword.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return s.respondSession(c, http.StatusOK, session)
}

// Logout godoc
// @Summary Clear the session cookie
// @Tags    auth
// @Produce json
// @Success 200 {object} messageResponse
// @Router  /auth/logout [post]
func (s *Server) Logout(c echo.Context) error {
	s.clearSessionCookie(c)
	return c.JSON(http.StatusOK, messageResponse{Status: statusSuccess, Message: "Logged out"})
}

// respondSession sets the cookie and returns the token with the user's profile.
func (s *Server) respondSession(c echo.Context, status int, session commands.Session) error {
	query, err := queries.NewGetMeQuery(session.UserID)
	if err != nil {
		return err
	}
	me, err := s.h.GetMe.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	s.setSessionCookie(c, session)
	user := toUserResponse(me)
	return c.JSON(status, sessionResponse{
		Status:    statusSuccess,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Data:      &user,
	})
}
