// Command `rigconf` is the end-user CLI for the rigconf daemon.
//
// Rigconf manages multi-project runtime configuration for automation rigs:
// each project is a named bundle of typed key/value settings, and exactly
// one project is active at a time. The CLI talks to a background daemon
// that owns the configuration state.
//
// Usage:
//
//	rigconf list                 - List available projects
//	rigconf use <project>        - Switch to a project and persist it as default
//	rigconf load <project>       - Switch to a project without persisting
//	rigconf get <key>            - Look up one configuration key
//	rigconf show <section>       - Print one section of the active project
//	rigconf status               - Show daemon status
//
// Project names accept letters, digits, '-', '_', '+' and '.'.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/lc/rigconf/internal/buildinfo"
	"github.com/lc/rigconf/internal/config"
	"github.com/lc/rigconf/pkg/client"
)

func main() {
	cfg, err := config.New().Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	cli := client.New(cfg.Socket.Path)

	root := &cobra.Command{
		Use:   "rigconf",
		Short: "Rigconf project-configuration CLI",
		Long: `Rigconf manages multi-project runtime configuration for automation rigs.
Each project is a named bundle of typed key/value settings; exactly one
project is active at a time and survives daemon restarts.`,
	}

	// ---- version command ----
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show version information for the rigconf CLI and daemon.`,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("version: %s\n", buildinfo.Version)
			fmt.Printf("commit: %s\n", buildinfo.Commit)
		},
	}

	// ---- list command ----
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List available projects",
		Long:    `List every project the daemon can load, marking the active one.`,
		Example: "rigconf list",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			names, err := cli.Projects(ctx)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				color.Yellow("No projects found.")
				return nil
			}
			status, err := cli.Status(ctx)
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Project", "Active"})
			table.SetHeaderColor(
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgHiCyanColor},
			)
			table.SetBorder(false)
			table.SetColumnColor(
				tablewriter.Colors{tablewriter.FgGreenColor},
				tablewriter.Colors{tablewriter.FgHiWhiteColor},
			)

			for _, name := range names {
				active := ""
				if name == status.Project {
					active = "*"
				}
				table.Append([]string{name, active})
			}

			color.New(color.Bold).Println("AVAILABLE PROJECTS:")
			table.Render()
			return nil
		},
	}

	// ---- use command ----
	useCmd := &cobra.Command{
		Use:     "use <project>",
		Short:   "Switch to a project and persist it as the default",
		Long:    `Switch the active project and store it as the durable default, so it is restored after a daemon restart.`,
		Example: "rigconf use ferrari",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := cli.Switch(ctx, args[0], true); err != nil {
				return err
			}
			color.New(color.FgGreen, color.Bold).Printf("✓ Switched to ")
			color.New(color.FgHiGreen, color.Bold).Printf("%s ", args[0])
			color.New(color.FgGreen, color.Bold).Println("(persisted as default)")
			return nil
		},
	}

	// ---- load command ----
	loadCmd := &cobra.Command{
		Use:     "load <project>",
		Short:   "Switch to a project without persisting it",
		Long:    `Switch the active project for this daemon lifetime only; the persisted default is left untouched.`,
		Example: "rigconf load audi",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := cli.Switch(ctx, args[0], false); err != nil {
				return err
			}
			color.New(color.FgGreen, color.Bold).Printf("✓ Loaded ")
			color.New(color.FgHiGreen, color.Bold).Printf("%s\n", args[0])
			return nil
		},
	}

	// ---- get command ----
	getCmd := &cobra.Command{
		Use:     "get <key>",
		Short:   "Look up one configuration key",
		Long:    `Look up a key across the active project's sections, in declaration order, and print its typed value.`,
		Example: "rigconf get EXECUTE_GROUP",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			v, err := cli.Value(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%v (%s)\n", v.Value, v.Kind)
			return nil
		},
	}

	// ---- show command ----
	showCmd := &cobra.Command{
		Use:     "show <section>",
		Short:   "Print one section of the active project",
		Example: "rigconf show DeviceConfiguration",
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			sec, err := cli.Section(ctx, args[0])
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Key", "Value"})
			table.SetBorder(false)
			for _, k := range sec.Keys {
				table.Append([]string{k, fmt.Sprintf("%v", sec.Values[k])})
			}

			color.New(color.Bold).Printf("SECTION %s:\n", sec.Name)
			table.Render()
			return nil
		},
	}

	// ---- status command ----
	statusCmd := &cobra.Command{
		Use:     "status",
		Short:   "Show daemon status",
		Example: "rigconf status",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			st, err := cli.Status(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("project: %s\n", st.Project)
			fmt.Printf("load id: %s\n", st.LoadID)
			fmt.Printf("loads: %d\n", st.Loads)
			fmt.Printf("uptime: %s\n", st.Uptime)
			fmt.Printf("version: %s (%s)\n", st.Version, st.Commit)
			return nil
		},
	}

	root.AddCommand(listCmd, useCmd, loadCmd, getCmd, showCmd, statusCmd, versionCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
