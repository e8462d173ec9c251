package cmd

import (
	"errors"
	"net/http"

	"github.com/decoutkhanqindev/motelctl/client"
	"github.com/decoutkhanqindev/motelctl/pkg/clierr"
	"github.com/spf13/cobra"
)

// roomStatusNames maps room statuses to the Vietnamese labels shown to the
// operator. The keys are the statuses the API uses.
var roomStatusNames = map[string]string{
	"available":   "Còn trống",     // vacant
	"occupied":    "Đã thuê",       // rented
	"unavailable": "Không sử dụng", // out of service
}

// statusLabel returns the display label for a room status, falling back to
// the raw status for values the mapping doesn't know.
func statusLabel(status string) string {
	if label, ok := roomStatusNames[status]; ok {
		return label
	}
	return status
}

// classifyRequestError maps a failed API call to a categorized CLI error.
func classifyRequestError(err error) *clierr.Error {
	if errors.Is(err, client.ErrSessionExpired) {
		return clierr.New(clierr.Auth, "Your session has expired. Please log in again with `motelctl login`.", err)
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.NoResponse:
			return clierr.New(clierr.Network, "Could not reach the server. Please check your connection and MOTEL_API_URL.", err)
		case apiErr.Status == http.StatusNotFound:
			return clierr.New(clierr.NotFound, apiErr.Error(), err)
		case apiErr.IsAuthStatus():
			return clierr.New(clierr.Auth, apiErr.Error(), err)
		default:
			return clierr.New(clierr.Internal, apiErr.Error(), err)
		}
	}
	return clierr.New(clierr.Internal, err.Error(), err)
}

// printRequestError renders a failed API call for the operator. A terminal
// session failure gets the explicit log-in-again message required before the
// session collapses back to anonymous.
func printRequestError(cmd *cobra.Command, err error) {
	cerr := classifyRequestError(err)
	if errors.Is(err, client.ErrSessionExpired) {
		cmd.PrintErrln(cerr.Message)
		return
	}
	cmd.PrintErrln("Error:", cerr.Message)
}
