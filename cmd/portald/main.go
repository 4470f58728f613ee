package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/brightline/portald/pkg/acl"
	"github.com/brightline/portald/pkg/authorization"
	"github.com/brightline/portald/pkg/directory"
	"github.com/brightline/portald/pkg/hierarchy"
	"github.com/brightline/portald/pkg/identity"
	"github.com/brightline/portald/pkg/logging"
	"github.com/brightline/portald/pkg/tiers"
	"github.com/brightline/portald/pkg/titles"
	"github.com/brightline/portald/pkg/webserver"
	"github.com/brightline/portald/pkg/workflows"
)

var (
	version     = "dev" // Will be set during build
	cfgFile     string
	showVersion bool
)

func main() {
	cobra.CheckErr(rootCmd.Execute())
}

var rootCmd = &cobra.Command{
	Use:           "portald",
	Short:         "Brightline reporting portal access daemon",
	SilenceUsage:  false,
	SilenceErrors: true,
	Long: `Brightline reporting portal access daemon (portald)

Serves the access-resolution API the reporting dashboards consult: for each
signed-in staff member and dashboard it decides whether access is granted
and what slice of the data the person may see, based on named tiers, job
titles, the supervisor hierarchy, and the explicit ACL table.

Configuration file must be in JSON format with the following structure:
{
    "listen_addr": "0.0.0.0",
    "port": 8080,
    "session_secret": "...",
    "domain": "brightlineschools.org",
    "aliases": {"partner@example.org": "jdoe@brightlineschools.org"},
    "tier_file_path": "tiers.json",
    "title_rules_path": "title_rules.json",
    "workflow_roles_path": "workflow_roles.json",
    "schools_by_location": {"Langston Hughes Academy": "LHA"},
    "postgres_dsn": "postgres://portal@warehouse/staff",
    "staff_table": "staff_master_list",
    "acl_table": "dashboard_acl",
    "redis_addr": "127.0.0.1:6379",
    "staff_cache_time": 60,
    "hierarchy_cache_time": 300,
    "resolve_timeout": 10,
    "access_log_path": "/var/log/portald/access.log"
}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			fmt.Printf("portald %s\n", version)
			return nil
		}

		if cfgFile == "" {
			return fmt.Errorf("config file is required (use --config)")
		}

		// Convert to absolute path if needed
		if !filepath.IsAbs(cfgFile) {
			var err error
			cfgFile, err = filepath.Abs(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to get absolute path: %v", err)
			}
		}

		var config Config
		if err := LoadConfig(cfgFile, &config); err != nil {
			return fmt.Errorf("failed to load config: %v", err)
		}

		if err := logging.Initialize(&logging.Config{
			AppLogPath:    config.AppLogPath,
			AccessLogPath: config.AccessLogPath,
			Level:         config.LogLevel,
		}); err != nil {
			return fmt.Errorf("failed to initialize logging: %v", err)
		}

		fs := afero.NewOsFs()

		tierRegistry, err := tiers.LoadRegistry(fs, config.TierFilePath)
		if err != nil {
			return fmt.Errorf("failed to load tiers: %v", err)
		}

		classifier, err := titles.LoadClassifier(fs, config.TitleRulesPath)
		if err != nil {
			return fmt.Errorf("failed to load title rules: %v", err)
		}

		workflowRegistry := workflows.NewRegistry(nil, nil)
		if config.WorkflowRolesPath != "" {
			workflowRegistry, err = workflows.LoadRegistry(fs, config.WorkflowRolesPath)
			if err != nil {
				return fmt.Errorf("failed to load workflow roles: %v", err)
			}
		}

		ctx := context.Background()
		pool, err := pgxpool.New(ctx, config.PostgresDSN)
		if err != nil {
			return fmt.Errorf("failed to create warehouse pool: %v", err)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("failed to reach warehouse: %v", err)
		}

		var staffSource directory.Source = directory.NewPostgresSource(pool, config.StaffTable)
		if config.RedisAddr != "" {
			client := redis.NewClient(&redis.Options{
				Addr:     config.RedisAddr,
				Password: config.RedisPassword,
				DB:       config.RedisDB,
			})
			if err := client.Ping(ctx).Err(); err != nil {
				logging.App.Warnw("redis unreachable, continuing without shared cache", "error", err)
			} else {
				staffSource = directory.NewRedisCache(staffSource, client, time.Duration(config.StaffCacheTime)*time.Second)
			}
		}

		var aclSource acl.Source
		if config.ACLTable != "" || config.ACLFilePath == "" {
			aclSource = acl.NewPostgresSource(pool, config.ACLTable)
		} else {
			aclSource = acl.NewFileSource(fs, config.ACLFilePath)
		}

		resolver, err := authorization.NewResolver(authorization.Config{
			Identity:          identity.NewResolver(config.Domain, config.Aliases),
			Directory:         directory.NewRepository(staffSource, time.Duration(config.StaffCacheTime)*time.Second),
			Hierarchy:         hierarchy.NewIndex(hierarchy.NewPostgresSource(pool, config.StaffTable), time.Duration(config.HierarchyCacheTime)*time.Second),
			Tiers:             tierRegistry,
			Titles:            classifier,
			ACL:               acl.NewStore(aclSource),
			Workflows:         workflowRegistry,
			SchoolsByLocation: config.SchoolsByLocation,
		})
		if err != nil {
			return fmt.Errorf("failed to create resolver: %v", err)
		}

		server, err := webserver.New(&webserver.Config{
			ListenAddr:     config.ListenAddr,
			Port:           config.Port,
			SessionSecret:  config.SessionSecret,
			ResolveTimeout: time.Duration(config.ResolveTimeout) * time.Second,
		}, resolver, workflowRegistry)
		if err != nil {
			return fmt.Errorf("failed to create web server: %v", err)
		}

		fmt.Printf("Starting portald %s on %s:%d\n", version, config.ListenAddr, config.Port)
		return server.ListenAndServe()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "path to config file (required)")
	rootCmd.Flags().BoolVarP(&showVersion, "version", "v", false, "show version information")
}
