package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	// Import all Kubernetes client auth plugins (e.g. Azure, GCP, OIDC, etc.)
	// to ensure that the commands can make use of them.
	_ "k8s.io/client-go/plugin/pkg/client/auth"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/runtime"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
	"sigs.k8s.io/yaml"

	"github.com/thegeeklab/scheduler-kubernetes/internal/config"
	"github.com/thegeeklab/scheduler-kubernetes/internal/scheduler"
	"github.com/thegeeklab/scheduler-kubernetes/internal/webui"
	"github.com/thegeeklab/scheduler-kubernetes/pkg/spi"
)

var (
	scheme   = runtime.NewScheme()
	setupLog = ctrl.Log.WithName("setup")
)

const shutdownTimeout = 10 * time.Second

//nolint:wsl
func init() {
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
}

type globalOptions struct {
	configFile string
	envFiles   []string
	zap        zap.Options
}

func main() {
	if err := newRootCommand().ExecuteContext(ctrl.SetupSignalHandler()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:          "scheduler-kubernetes",
		Short:        "Schedule tasks as Kubernetes CronJobs",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			ctrl.SetLogger(zap.New(zap.UseFlagOptions(&opts.zap)))
			cmd.SetContext(ctrl.LoggerInto(cmd.Context(), ctrl.Log.WithName("scheduler")))
		},
	}

	bindFlags(cmd.PersistentFlags(), opts)

	cmd.AddCommand(
		newServeCommand(opts),
		newScheduleCommand(opts),
		newUnscheduleCommand(opts),
		newListCommand(opts),
	)

	return cmd
}

func bindFlags(flags *pflag.FlagSet, opts *globalOptions) {
	flags.StringVar(&opts.configFile, "config", "", "Path to a YAML file holding the scheduler properties.")
	flags.StringSliceVar(&opts.envFiles, "env-file", nil,
		"Env files to load before reading the environment. Defaults to "+config.DefaultEnvFile+".")

	goFlags := flag.NewFlagSet("zap", flag.ContinueOnError)
	opts.zap.BindFlags(goFlags)
	flags.AddGoFlagSet(goFlags)
}

func (o *globalOptions) scheduler() (*scheduler.KubernetesScheduler, error) {
	props, err := config.Load(o.configFile, o.envFiles...)
	if err != nil {
		return nil, err
	}

	restConfig, err := ctrl.GetConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	c, err := client.New(restConfig, client.Options{Scheme: scheme})
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	setupLog.V(1).Info("Loaded scheduler properties",
		"namespace", props.Namespace,
		"entryPointStyle", props.EntryPointStyle,
		"restartPolicy", props.RestartPolicy)

	return scheduler.New(c, props), nil
}

func newServeCommand(opts *globalOptions) *cobra.Command {
	serverConfig := webui.DefaultServerConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schedule API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sched, err := opts.scheduler()
			if err != nil {
				return err
			}

			server := webui.NewServer(serverConfig, sched)
			if err := server.Start(); err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}

			<-cmd.Context().Done()

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			return server.Stop(ctx)
		},
	}

	cmd.Flags().StringVar(&serverConfig.Addr, "bind-address", serverConfig.Addr, "The address the API server binds to.")

	return cmd
}

func newScheduleCommand(opts *globalOptions) *cobra.Command {
	flags := &scheduleFlags{}

	cmd := &cobra.Command{
		Use:   "schedule [flags] [-- ARGS...]",
		Short: "Create a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			request, err := flags.request(args)
			if err != nil {
				return err
			}

			sched, err := opts.scheduler()
			if err != nil {
				return err
			}

			if err := sched.Schedule(cmd.Context(), request); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "schedule %s created\n", request.ScheduleName)

			return err
		},
	}

	cmd.Flags().StringVar(&flags.name, "name", "", "Name of the schedule. Derived from the task definition if empty.")
	cmd.Flags().StringVar(&flags.taskDefinition, "task-definition", "", "Name of the task definition.")
	cmd.Flags().StringVar(&flags.resource, "resource", "", "Image resource, e.g. docker:springcloud/app:latest.")
	cmd.Flags().StringVar(&flags.cron, "cron", "", "Cron expression of the schedule.")
	cmd.Flags().StringArrayVar(&flags.properties, "property", nil, "Application property as key=value.")
	cmd.Flags().StringArrayVar(&flags.schedulerProperties, "scheduler-property", nil, "Scheduler property as key=value.")
	cmd.Flags().StringArrayVar(&flags.deploymentProperties, "deployment-property", nil,
		"Deployment property as key=value.")

	_ = cmd.MarkFlagRequired("task-definition")
	_ = cmd.MarkFlagRequired("resource")
	_ = cmd.MarkFlagRequired("cron")

	return cmd
}

func newUnscheduleCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unschedule NAME",
		Short: "Delete a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sched, err := opts.scheduler()
			if err != nil {
				return err
			}

			if err := sched.Unschedule(cmd.Context(), args[0]); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "schedule %s deleted\n", args[0])

			return err
		},
	}
}

func newListCommand(opts *globalOptions) *cobra.Command {
	var (
		taskDefinition string
		output         string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sched, err := opts.scheduler()
			if err != nil {
				return err
			}

			var infos []spi.ScheduleInfo
			if taskDefinition != "" {
				infos, err = sched.ListByTaskDefinition(cmd.Context(), taskDefinition)
			} else {
				infos, err = sched.List(cmd.Context())
			}

			if err != nil {
				return err
			}

			return printSchedules(cmd.OutOrStdout(), output, infos)
		},
	}

	cmd.Flags().StringVar(&taskDefinition, "task-definition", "", "Only list schedules of this task definition.")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "Output format. One of: table, yaml.")

	return cmd
}

const (
	outputTable = "table"
	outputYAML  = "yaml"
)

func printSchedules(w io.Writer, output string, infos []spi.ScheduleInfo) error {
	switch output {
	case outputYAML:
		data, err := yaml.Marshal(infos)
		if err != nil {
			return err
		}

		_, err = w.Write(data)

		return err
	case outputTable:
		tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
		_, _ = fmt.Fprintln(tw, "NAME\tTASK DEFINITION\tSCHEDULE")

		for _, info := range infos {
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n",
				info.ScheduleName, info.TaskDefinitionName, info.ScheduleProperties[spi.CronExpressionKey])
		}

		return tw.Flush()
	default:
		return fmt.Errorf("%w: unknown output format %q", spi.ErrInvalidArgument, output)
	}
}
