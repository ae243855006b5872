package commands

import (
	"context"
	"fmt"

	"github.com/ncobase/longrun/cmd/longrun/provider"
	"github.com/ncobase/longrun/job/handler"
	"github.com/ncobase/longrun/job/service"
	"github.com/spf13/cobra"
)

func newRunCommand(load configLoader) *cobra.Command {
	var jobs uint32
	var minDuration int32

	cmd := &cobra.Command{
		Use:   "run",
		Args:  cobra.NoArgs,
		Short: "Start a batch of timed jobs",
		Long: `Start a batch of timed jobs and print them.

The jobs are only visible to later commands when job.registry is a shared
store (redis or sqlite).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw := map[string]any{}
			if cmd.Flags().Changed("jobs") {
				raw[service.ParamNumberOfJobs] = jobs
			}
			if cmd.Flags().Changed("min-duration") {
				raw[service.ParamMinDuration] = minDuration
			}

			return withApp(load, func(ctx context.Context, app *provider.App) error {
				params, err := app.Service.ValidateParams(raw)
				if err != nil {
					return err
				}
				set, err := app.Service.Run(ctx, params)
				if err != nil {
					return err
				}
				out := handler.RunResponse{RunID: set.RunID}
				for _, j := range set.Jobs() {
					out.Jobs = append(out.Jobs, handler.NewJobView(j))
				}
				return printJSON(cmd, out)
			})
		},
	}
	cmd.Flags().Uint32VarP(&jobs, "jobs", "n", 3, "number of jobs to run")
	cmd.Flags().Int32VarP(&minDuration, "min-duration", "d", 1, "minimum duration of each job in seconds")
	return cmd
}

func newStatusCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "status <job-id>",
		Args:  cobra.ExactArgs(1),
		Short: "Print the status of a job",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseJobID(args[0])
			if err != nil {
				return err
			}
			return withApp(load, func(ctx context.Context, app *provider.App) error {
				status, err := app.Service.Status(ctx, id)
				if err != nil {
					return fmt.Errorf("job %s: %w", id, err)
				}
				return printJSON(cmd, map[string]string{"id": id.String(), "status": status.String()})
			})
		},
	}
}

func newResultsCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "results <job-id>",
		Args:  cobra.ExactArgs(1),
		Short: "Print the results of a job",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseJobID(args[0])
			if err != nil {
				return err
			}
			return withApp(load, func(ctx context.Context, app *provider.App) error {
				res, err := app.Service.Results(ctx, id)
				if err != nil {
					return fmt.Errorf("job %s: %w", id, err)
				}
				return printJSON(cmd, res)
			})
		},
	}
}

func newDescribeCommand(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Args:  cobra.NoArgs,
		Short: "Print the service description and parameters",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(load, func(_ context.Context, app *provider.App) error {
				return printJSON(cmd, app.Service.Describe())
			})
		},
	}
}
