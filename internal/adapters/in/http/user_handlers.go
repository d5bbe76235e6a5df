package http

import (
	"net/http"

	"crowdship/internal/core/application/usecases/commands"
	"crowdship/internal/core/application/usecases/queries"
	"crowdship/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// ListUsers godoc
// @Summary  List users
// @Tags     users
// @Produce  json
// @Param    page  query    int    false "Page number"
// @Param    limit query    int    false "Page size"
// @Param    sort  query    string false "Sort keys, e.g. -createdAt"
// @Success  200   {object} listResponse{data=[]UserResponse}
// @Failure  403   {object} errorResponse
// @Security BearerAuth
// @Router   /users/get-all [get]
func (s *Server) ListUsers(c echo.Context) error {
	query, err := queries.NewListUsersQuery(c.QueryParams())
	if err != nil {
		return err
	}
	page, err := s.h.ListUsers.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	resp, err := newListResponse(page, toUserResponse)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// GetMe godoc
// @Summary  The caller's profile
// @Tags     users
// @Produce  json
// @Success  200 {object} dataResponse{data=UserResponse}
// @Failure  401 {object} errorResponse
// @Security BearerAuth
// @Router   /users/get-me [get]
func (s *Server) GetMe(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	query, err := queries.NewGetMeQuery(p.UserID)
	if err != nil {
		return err
	}
	me, err := s.h.GetMe.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Status: statusSuccess, Data: toUserResponse(me)})
}

// UpdateMe godoc
// @Summary     Change name, password or photo
// @Description Accepts JSON or multipart/form-data with an optional "photo" file.
// @Description A password change returns a fresh session, older tokens stop working.
// @Tags        users
// @Accept      json,mpfd
// @Produce     json
// @Param       request body     updateMeRequest true "Changed fields"
// @Success     200     {object} dataResponse{data=UserResponse}
// @Failure     400     {object} errorResponse
// @Security    BearerAuth
// @Router      /users/update-me [patch]
func (s *Server) UpdateMe(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req updateMeRequest
	if isMultipart(c) {
		req.Name, req.Password = formValue(c, "name"), formValue(c, "password")
	} else if err = bindJSON(c, &req); err != nil {
		return err
	}
	photo, release, err := optionalPhoto(c)
	if err != nil {
		return err
	}
	defer release()

	cmd, err := commands.NewUpdateMeCommand(p.UserID, req.Name, req.Password, photo)
	if err != nil {
		return err
	}
	session, err := s.h.UpdateMe.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	if session != nil {
		return s.respondSession(c, http.StatusOK, *session)
	}
	return s.GetMe(c)
}

// DeleteMe godoc
// @Summary  Deactivate the caller's account
// @Tags     users
// @Success  204
// @Failure  401 {object} errorResponse
// @Security BearerAuth
// @Router   /users/delete-me [delete]
func (s *Server) DeleteMe(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeleteMeCommand(p.UserID)
	if err != nil {
		return err
	}
	if err = s.h.DeleteMe.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	s.clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context, name string) (kernel.UUID, error) {
	return kernel.ParseID(name, c.Param(name))
}

func formValue(c echo.Context, key string) *string {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	v, ok := form.Value[key]
	if !ok || len(v) == 0 {
		return nil
	}
	return &v[0]
}
