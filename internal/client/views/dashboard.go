package views

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/jwtdash/internal/client/client"
	"github.com/dmitrijs2005/jwtdash/internal/client/services"
	"github.com/dmitrijs2005/jwtdash/internal/client/session"
	"github.com/dmitrijs2005/jwtdash/internal/logging"
)

const (
	ClassSuccess = "alert-success"
	ClassError   = "alert-danger"
)

// ServerResponse is the last result shown in the dashboard's response
// panel. Data is the payload pretty-printed with a two-space indent.
type ServerResponse struct {
	Data   string
	Status int
	Class  string
}

func (r *ServerResponse) Success() bool {
	return r.Class == ClassSuccess
}

type DashboardController struct {
	auth   services.AuthService
	logger logging.Logger

	// User is the current user's info, loaded on construction.
	User json.RawMessage
	// Response is nil until the first action.
	Response *ServerResponse
}

// NewDashboardController builds the dashboard. When the session is
// authenticated it loads the current user; a failed load leaves User nil.
func NewDashboardController(ctx context.Context, auth services.AuthService, state *session.State, logger logging.Logger) *DashboardController {
	d := &DashboardController{auth: auth, logger: logger.With("component", "dashboard")}

	if state.Authenticated {
		resp, err := auth.GetCurrentUser(ctx)
		if err != nil {
			d.logger.Warn(ctx, "current user not loaded", "error", err)
		} else {
			d.User = resp.Data
		}
	}
	return d
}

// GetUserInfo requests the current user and shows the raw outcome.
func (d *DashboardController) GetUserInfo(ctx context.Context) *ServerResponse {
	resp, err := d.auth.GetCurrentUser(ctx)
	return d.setResponse(resp, err)
}

// GetAllUserInfo requests every user and shows the raw outcome.
func (d *DashboardController) GetAllUserInfo(ctx context.Context) *ServerResponse {
	resp, err := d.auth.GetAllUsers(ctx)
	return d.setResponse(resp, err)
}

func (d *DashboardController) setResponse(resp *client.Response, err error) *ServerResponse {
	if err != nil {
		r := &ServerResponse{Class: ClassError, Data: "null"}
		if re, ok := client.IsRequestError(err); ok {
			r.Status = re.Status
			r.Data = PrettyJSON(re.Data)
		}
		d.Response = r
		return r
	}

	d.Response = &ServerResponse{Status: resp.Status, Class: ClassSuccess, Data: PrettyJSON(resp.Data)}
	return d.Response
}

// PrettyJSON indents data with two spaces. Empty data renders as "null";
// data that is not JSON is returned as is.
func PrettyJSON(data json.RawMessage) string {
	if len(data) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return string(data)
	}
	return buf.String()
}

// StatusText is a display label for a response status; 0 means no response.
func StatusText(status int) string {
	if status == 0 {
		return "no response"
	}
	return http.StatusText(status)
}
