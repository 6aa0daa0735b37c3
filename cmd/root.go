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
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/notargets/gomsh/msh"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile  string
	profiler interface{ Stop() }
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gomsh",
	Short: "Inspect, convert and validate Gmsh MSH mesh files",
	Long: `gomsh reads Gmsh MSH files in format 2.2 or 4.1, ASCII or binary.

It can summarize a mesh, check its structural consistency and rewrite it
in any supported version and encoding.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("profile") {
			profiler = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if profiler != nil {
			profiler.Stop()
			profiler = nil
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gomsh.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")
	rootCmd.PersistentFlags().Bool("splines", false, "handle the $NanoSplineFormat, $Curves and $Patches sections")
	rootCmd.PersistentFlags().Bool("profile", false, "write a CPU profile to the working directory")
	for _, key := range []string{"verbose", "splines", "profile"} {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)); err != nil {
			panic(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".gomsh" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".gomsh")
	}

	viper.SetEnvPrefix("gomsh")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && viper.GetBool("verbose") {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// progress logs to stderr when --verbose is set
func progress(cmd *cobra.Command) *log.Logger {
	if viper.GetBool("verbose") {
		return log.New(cmd.ErrOrStderr(), "gomsh: ", log.LstdFlags)
	}
	return log.New(io.Discard, "", 0)
}

// mshOptions maps the configuration onto library options. Skipped-section
// warnings always go to stderr.
func mshOptions(cmd *cobra.Command) []msh.Option {
	opts := []msh.Option{msh.WithLogger(log.New(cmd.ErrOrStderr(), "", 0))}
	if viper.GetBool("splines") {
		opts = append(opts, msh.WithSplineExtension())
	}
	return opts
}
