package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"

	"github.com/dukex/operion-ontap/pkg/log"
	"github.com/dukex/operion-ontap/pkg/models"
	"github.com/dukex/operion-ontap/pkg/ontap"
	"github.com/dukex/operion-ontap/pkg/otelhelper"
	"github.com/dukex/operion-ontap/pkg/registry"
)

func logLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "log-level",
		Usage:   "Log level (debug, info, warn, error)",
		Value:   "info",
		Sources: cli.EnvVars("LOG_LEVEL"),
	}
}

func pluginsPathFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "plugins-path",
		Usage:   "Path to the directory containing node plugins",
		Value:   "./plugins",
		Sources: cli.EnvVars("PLUGINS_PATH"),
	}
}

// connectionFlags are shared by every command that talks to a cluster. Each
// flag falls back to the corresponding ONTAP_* environment variable so
// credentials stay out of shell history.
func connectionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Usage:   "Cluster management LIF hostname or IP",
			Sources: cli.EnvVars("ONTAP_HOST"),
		},
		&cli.IntFlag{
			Name:    "port",
			Usage:   "HTTPS port of the management endpoint",
			Value:   443,
			Sources: cli.EnvVars("ONTAP_PORT"),
		},
		&cli.StringFlag{
			Name:    "username",
			Usage:   "ONTAP user name",
			Sources: cli.EnvVars("ONTAP_USERNAME"),
		},
		&cli.StringFlag{
			Name:    "password",
			Usage:   "ONTAP user password",
			Sources: cli.EnvVars("ONTAP_PASSWORD"),
		},
		&cli.BoolFlag{
			Name:    "allow-insecure-tls",
			Usage:   "Skip certificate validation (self-signed cluster certificates)",
			Sources: cli.EnvVars("ONTAP_ALLOW_INSECURE_TLS"),
		},
	}
}

func buildRegistry(ctx context.Context, command *cli.Command) (*registry.Registry, error) {
	logger := log.WithModule("registry")

	reg := registry.NewRegistry(logger)
	reg.RegisterDefaultNodes()

	if _, err := reg.LoadNodePlugins(command.String("plugins-path")); err != nil {
		logger.WarnContext(ctx, "Failed to load node plugins", "error", err)
	}

	return reg, nil
}

func nodesCommand() *cli.Command {
	return &cli.Command{
		Name:    "nodes",
		Aliases: []string{"n"},
		Usage:   "List available node types",
		Flags: []cli.Flag{
			logLevelFlag(),
			pluginsPathFlag(),
			&cli.BoolFlag{
				Name:  "schema",
				Usage: "Print the full JSON schema of each node type",
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			reg, err := buildRegistry(ctx, command)
			if err != nil {
				return err
			}

			for _, factory := range reg.GetAvailableNodes() {
				fmt.Printf("%s\t%s\t%s\n", factory.ID(), factory.Name(), factory.Description())

				if command.Bool("schema") {
					schema, err := json.MarshalIndent(factory.Schema(), "", "  ")
					if err != nil {
						return err
					}

					fmt.Println(string(schema))
				}
			}

			return nil
		},
	}
}

func runCommand() *cli.Command {
	flags := []cli.Flag{
		logLevelFlag(),
		pluginsPathFlag(),
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Usage:    "Path to a JSON file with the node configuration",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "type",
			Usage: "Node type to run",
			Value: "ontap",
		},
		&cli.StringFlag{
			Name:  "node-id",
			Usage: "Custom node ID (auto-generated if not provided)",
		},
		&cli.BoolFlag{
			Name:    "tracing",
			Usage:   "Export OpenTelemetry traces (endpoint from OTEL_EXPORTER_OTLP_* variables)",
			Sources: cli.EnvVars("OTEL_TRACING_ENABLED"),
		},
	}
	flags = append(flags, connectionFlags()...)

	return &cli.Command{
		Name:    "run",
		Aliases: []string{"r"},
		Usage:   "Execute a single node and print its result",
		Flags:   flags,
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			nodeID := command.String("node-id")
			if nodeID == "" {
				nodeID = "cli-" + uuid.New().String()[:8]
			}

			logger := log.WithModule("operion-ontap").With("nodeId", nodeID)

			if command.Bool("tracing") {
				if _, err := otelhelper.NewTracer(ctx, "operion-ontap"); err != nil {
					return fmt.Errorf("failed to initialize tracing: %w", err)
				}
			}

			config, err := readNodeConfig(command)
			if err != nil {
				return err
			}

			reg, err := buildRegistry(ctx, command)
			if err != nil {
				return err
			}

			node, err := reg.CreateNode(ctx, command.String("type"), nodeID, config)
			if err != nil {
				return err
			}

			executionCtx := models.ExecutionContext{
				ID:          uuid.New().String(),
				NodeResults: make(map[string]models.NodeResult),
				Variables:   make(map[string]any),
				Metadata:    make(map[string]any),
			}

			logger.InfoContext(ctx, "Executing node", "type", node.Type(), "executionId", executionCtx.ID)

			results, err := node.Execute(executionCtx, make(map[string]models.NodeResult))
			if err != nil {
				return err
			}

			output, err := json.MarshalIndent(results, "", "  ")
			if err != nil {
				return err
			}

			fmt.Println(string(output))

			if _, failed := results["error"]; failed {
				return fmt.Errorf("node execution finished on the error port")
			}

			return nil
		},
	}
}

// readNodeConfig loads the node configuration file and fills in the
// connection block from the command-line flags when the file omits it.
func readNodeConfig(command *cli.Command) (map[string]any, error) {
	raw, err := os.ReadFile(command.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config map[string]any
	if err := json.Unmarshal(raw, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if _, ok := config["connection"]; !ok {
		config["connection"] = map[string]any{
			"host":               command.String("host"),
			"port":               float64(command.Int("port")),
			"username":           command.String("username"),
			"password":           command.String("password"),
			"allow_insecure_tls": command.Bool("allow-insecure-tls"),
		}
	}

	return config, nil
}

func jobsCommand() *cli.Command {
	watchFlags := []cli.Flag{
		logLevelFlag(),
		&cli.StringFlag{
			Name:     "uuid",
			Usage:    "UUID of the job to watch",
			Required: true,
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "How long to wait for the job to reach a terminal state",
			Value: ontap.DefaultJobTimeout,
		},
		&cli.DurationFlag{
			Name:  "poll-interval",
			Usage: "Delay between job status polls",
			Value: ontap.DefaultPollInterval,
		},
	}
	watchFlags = append(watchFlags, connectionFlags()...)

	return &cli.Command{
		Name:    "jobs",
		Aliases: []string{"j"},
		Usage:   "Inspect asynchronous cluster jobs",
		Commands: []*cli.Command{
			{
				Name:  "watch",
				Usage: "Wait for a job to reach a terminal state",
				Flags: watchFlags,
				Action: func(ctx context.Context, command *cli.Command) error {
					log.Setup(command.String("log-level"))

					target := ontap.Target{
						Host:             command.String("host"),
						Port:             command.Int("port"),
						Username:         command.String("username"),
						Password:         command.String("password"),
						AllowInsecureTLS: command.Bool("allow-insecure-tls"),
					}

					client := ontap.NewClient()

					started := time.Now()

					job, err := client.AwaitJob(ctx, target, command.String("uuid"), ontap.JobWaitOptions{
						Timeout:      command.Duration("timeout"),
						PollInterval: command.Duration("poll-interval"),
					})
					if err != nil {
						return err
					}

					log.WithModule("jobs").InfoContext(ctx, "Job reached a terminal state",
						"state", job.State, "elapsed", time.Since(started).Round(time.Millisecond))

					output, err := json.MarshalIndent(job.Raw, "", "  ")
					if err != nil {
						return err
					}

					fmt.Println(string(output))

					return nil
				},
			},
		},
	}
}
