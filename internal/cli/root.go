package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Houeta/staff-console/internal/metrics"
	"github.com/Houeta/staff-console/internal/records"
	"github.com/Houeta/staff-console/internal/validation"
)

// App is what every command works against.
type App struct {
	Log     *slog.Logger
	Records records.RecordService
	Rules   *validation.Rules
	Metrics *metrics.Metrics
}

// NewRootCmd builds the staffctl command tree over app.
func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "staffctl",
		Short:         "Manage employee records through the employee API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newListCmd(app),
		newGetCmd(app),
		newAddCmd(app),
		newEditCmd(app),
		newDeleteCmd(app),
	)

	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid employee id %q", raw)
	}

	return id, nil
}
