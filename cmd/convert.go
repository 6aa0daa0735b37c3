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
	"strings"

	"github.com/notargets/gomsh/msh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConvertCmd represents the convert command
var ConvertCmd = &cobra.Command{
	Use:   "convert IN OUT",
	Short: "Rewrite an MSH file in another version or encoding",
	Long: `Rewrite an MSH file in another version or encoding.

Writing version 2.2 flattens node and element blocks and drops the entities.
With --verify the output is read back and its serialization compared with
the input's.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := parseVersion(viper.GetString("version"))
		if err != nil {
			return err
		}
		encoding, err := parseEncoding(viper.GetString("encoding"))
		if err != nil {
			return err
		}
		verify, _ := cmd.Flags().GetBool("verify")
		return runConvert(cmd, args[0], args[1], version, encoding, verify)
	},
}

func init() {
	rootCmd.AddCommand(ConvertCmd)
	ConvertCmd.Flags().String("version", string(msh.V41), "output MSH version: 2.2 or 4.1")
	ConvertCmd.Flags().StringP("encoding", "e", "ascii", "output encoding: ascii or binary")
	ConvertCmd.Flags().Bool("verify", false, "read the output back and compare checksums")
	for _, key := range []string{"version", "encoding"} {
		if err := viper.BindPFlag(key, ConvertCmd.Flags().Lookup(key)); err != nil {
			panic(err)
		}
	}
}

func parseVersion(s string) (msh.Version, error) {
	switch v := msh.Version(s); v {
	case msh.V22, msh.V41:
		return v, nil
	}
	return "", fmt.Errorf("unsupported version %q, want %s or %s", s, msh.V22, msh.V41)
}

func parseEncoding(s string) (msh.Encoding, error) {
	switch strings.ToLower(s) {
	case "ascii":
		return msh.ASCII, nil
	case "binary":
		return msh.Binary, nil
	}
	return 0, fmt.Errorf("unsupported encoding %q, want ascii or binary", s)
}

func runConvert(cmd *cobra.Command, in, out string, version msh.Version, encoding msh.Encoding, verify bool) error {
	opts := mshOptions(cmd)
	logger := progress(cmd)

	logger.Printf("reading %s", in)
	doc, err := msh.LoadFile(in, opts...)
	if err != nil {
		return fmt.Errorf("reading %s: %w", in, err)
	}
	logger.Printf("writing %s as v%s %s", out, version, encoding)
	if err = msh.SaveFile(out, doc, version, encoding, opts...); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	if verify {
		want, err := msh.Checksum(doc, version, encoding, opts...)
		if err != nil {
			return err
		}
		written, err := msh.LoadFile(out, opts...)
		if err != nil {
			return fmt.Errorf("verifying %s: %w", out, err)
		}
		got, err := msh.Checksum(written, version, encoding, opts...)
		if err != nil {
			return err
		}
		if got != want {
			return fmt.Errorf("verifying %s: checksum %016x, want %016x", out, got, want)
		}
		logger.Printf("verified %s (%016x)", out, got)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (v%s %s)\n", in, out, version, encoding)
	return nil
}
