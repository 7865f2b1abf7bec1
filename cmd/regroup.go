/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/scaffoldgroup/InputParameters"
	"github.com/notargets/scaffoldgroup/metrics"
	"github.com/notargets/scaffoldgroup/regroup"
	"github.com/notargets/scaffoldgroup/utils"
)

type RegroupParameters struct {
	Input        string
	Groups       []string // From --group flags
	ConfigGroups []string // From the "groups" key of the config file or environment
	GroupsConfig string
	Location     string
	Mode         string
	MetricsFile  string
}

// RegroupCmd represents the regroup command
var RegroupCmd = &cobra.Command{
	Use:   "regroup [mesh file]",
	Short: "Keep only the inner and/or outer surface faces of each configured group",
	Long: `
Reads a scaffold mesh (.msh Gmsh 2.2 ASCII, or a .yaml/.yml/.json region document),
reduces the face elements of each configured group to the requested surfaces and
writes <name>_regrouped.<ext> beside the input.

Groups are given as "<group>,<surface>[,<surface>...]" where a surface is inner or
outer. They are taken from, in order of preference: --group flags, the file named by
--groups-config, the "groups" key of the config file, <location>/groups.config.

scaffoldgroup regroup -i heart.msh -g "left ventricle,inner"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		rp := &RegroupParameters{
			ConfigGroups: viper.GetStringSlice("groups"),
			Mode:         viper.GetString("mode"),
			MetricsFile:  viper.GetString("metrics-file"),
		}
		if rp.Input, err = cmd.Flags().GetString("input"); err != nil {
			return err
		}
		if len(args) == 1 {
			if rp.Input != "" {
				return fmt.Errorf("mesh file given both as an argument and with --input")
			}
			rp.Input = args[0]
		}
		if rp.Groups, err = cmd.Flags().GetStringArray("group"); err != nil {
			return err
		}
		if rp.GroupsConfig, err = cmd.Flags().GetString("groups-config"); err != nil {
			return err
		}
		if rp.Location, err = cmd.Flags().GetString("location"); err != nil {
			return err
		}
		logger, err := newLogger()
		if err != nil {
			return err
		}
		_, err = runRegroup(rp, logger, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(RegroupCmd)
	RegroupCmd.Flags().StringP("input", "i", "", "scaffold mesh file to regroup")
	RegroupCmd.Flags().StringArrayP("group", "g", nil, "group entry \"<group>,<surface>[,<surface>...]\", repeatable")
	RegroupCmd.Flags().String("groups-config", "", "JSON or YAML file holding {\"groups\": [...]}")
	RegroupCmd.Flags().StringP("location", "l", "", "step location directory holding groups.config")
	RegroupCmd.Flags().StringP("mode", "m", string(regroup.ModeFilter),
		"filter: keep faces on the listed surfaces, rebuild-inner: refill from the inner surface")
	RegroupCmd.Flags().String("metrics-file", "", "write prometheus metrics for the run to this file")
	_ = viper.BindPFlag("mode", RegroupCmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("metrics-file", RegroupCmd.Flags().Lookup("metrics-file"))
}

// resolveEntries picks the first non-empty group source
func (rp *RegroupParameters) resolveEntries() ([]InputParameters.GroupEntry, error) {
	items := rp.Groups
	if len(items) == 0 && rp.GroupsConfig != "" {
		path, err := homedir.Expand(rp.GroupsConfig)
		if err != nil {
			return nil, err
		}
		gc, err := InputParameters.ReadGroupsConfig(path)
		if err != nil {
			return nil, err
		}
		items = gc.Groups
	}
	if len(items) == 0 {
		items = rp.ConfigGroups
	}
	if len(items) == 0 && rp.Location != "" {
		dir, err := homedir.Expand(rp.Location)
		if err != nil {
			return nil, err
		}
		gc, err := InputParameters.ReadLocation(dir)
		if err != nil {
			return nil, err
		}
		items = gc.Groups
	}
	return InputParameters.ParseGroupEntries(items)
}

func runRegroup(rp *RegroupParameters, logger *slog.Logger, w io.Writer) (result *regroup.Result, err error) {
	if rp.Input == "" {
		return nil, fmt.Errorf("must supply a scaffold mesh file (-i, --input)")
	}
	input, err := homedir.Expand(rp.Input)
	if err != nil {
		return nil, err
	}
	entries, err := rp.resolveEntries()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		logger.Warn("no groups configured, the mesh is copied unchanged", "input", input)
	}
	opts := regroup.Options{Logger: logger}
	if opts.Mode, err = regroup.ParseMode(rp.Mode); err != nil {
		return nil, err
	}

	var collector *metrics.Collector
	if rp.MetricsFile != "" {
		collector = metrics.NewCollector()
		opts.Observer = collector
		defer func() {
			path, expandErr := homedir.Expand(rp.MetricsFile)
			if expandErr == nil {
				expandErr = collector.WriteTextfile(path)
			}
			if expandErr != nil {
				err = errors.Join(err, fmt.Errorf("writing metrics: %w", expandErr))
			}
		}()
	}

	start := time.Now()
	result, err = regroup.Run(regroup.FileLibrary{}, input, entries, opts)
	if collector != nil {
		collector.ObserveRun(time.Since(start), err)
	}
	logger.Debug("run finished", "elapsed", time.Since(start), utils.GetMemUsage())
	if err != nil {
		return nil, err
	}

	for _, report := range result.Groups {
		if report.Skipped {
			continue
		}
		fmt.Fprintf(w, "%-24s %4d -> %-4d faces", report.Name, report.Before, report.After)
		if report.Created {
			fmt.Fprint(w, " (face group created)")
		}
		fmt.Fprintln(w)
	}
	for _, warning := range result.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}
	fmt.Fprintf(w, "wrote %s\n", result.OutputPath)
	return result, nil
}
