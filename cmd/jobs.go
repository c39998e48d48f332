package cmd

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/pb33f/jobific/config"
	"github.com/pb33f/jobific/motor"
	"github.com/pb33f/jobific/tui"
	"github.com/pb33f/jobific/work24"
	"github.com/spf13/cobra"
)

var (
	jobsRegion  string
	jobsDisplay int
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Browse job postings from the work24 open API",
	Long: `Browse job postings fetched from the work24 open API. An auth key is
required: set WORK24_AUTH_KEY (a .env file in the working directory is read)
or jobs.auth_key in the config file. Changing the region fetches again.`,
	Example: `  WORK24_AUTH_KEY=... jobific jobs
  jobific jobs --region 서울 --plain`,
	Args: cobra.NoArgs,
	RunE: runJobs,
}

func init() {
	rootCmd.AddCommand(jobsCmd)

	jobsCmd.Flags().StringVar(&jobsRegion, "region", "", "Initial region filter")
	jobsCmd.Flags().IntVar(&jobsDisplay, "display", 0, "Postings requested per call, 1-100 (overrides config)")
}

func runJobs(cmd *cobra.Command, args []string) error {
	cfg := appConfig.Jobs

	display := cfg.Display
	if jobsDisplay != 0 {
		display = jobsDisplay
	}

	defer pageLogging()()

	client, err := work24.NewClient(work24.Options{
		Endpoint:          cfg.Endpoint,
		AuthKey:           cfg.AuthKey,
		Display:           display,
		RequestsPerSecond: cfg.RequestsPerSecond,
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		Logger:            Logger,
	})
	if err != nil {
		if errors.Is(err, work24.ErrMissingAuthKey) {
			return fmt.Errorf("%w: set %s or jobs.auth_key", err, config.EnvAuthKey)
		}
		return err
	}

	controller := motor.NewController(client, nil, motor.ControllerOptions{
		PageSize: appConfig.PageSize,
		Logger:   Logger,
	})
	controller.SetCriteria(motor.Criteria{
		Search:   search,
		Province: jobsRegion,
	})

	return runPage(cmd.Context(), cmd.OutOrStdout(), tui.PageOptions{
		Kind:       tui.KindJobs,
		Controller: controller,
		Regions:    cfg.Regions,
	})
}
