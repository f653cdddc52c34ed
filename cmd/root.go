/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

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
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bgallie/des/cryptors/des"
	"github.com/friendsofgo/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spf13/viper"
)

var (
	cfgFile        string
	inputFileName  string
	outputFileName string
	logger         = zerolog.Nop()
	GitCommit      string = "not set"
	GitBranch      string = "not set"
	GitState       string = "not set"
	GitSummary     string = "not set"
	BuildDate      string = "not set"
	Version        string = "dev"
)

const (
	desConfigFile = ".des"
	desFileSuffix = ".des"
	desApiLevel   = 1
)

var errNoKey = errors.New("you must supply a key")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "des",
	Short:         "The Data Encryption Standard block cipher",
	Long:          `des is a program that encrypts/decrypts files and single 64 bit blocks using the Data Encryption Standard (FIPS 46-3).`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.Version = fmt.Sprintf("%s (%s@%s %s, built %s)", Version, GitBranch, GitCommit, GitState, BuildDate)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.des.yaml)")
	rootCmd.PersistentFlags().StringP("key", "k", "", "the secret key as 16 hex digits (prefer DES_KEY or the prompt)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the plaintext file to encrypt/decrypt.")
	rootCmd.PersistentFlags().StringVarP(&outputFileName, "outputFile", "o", "", "Name of the file containing the encrypted/decrypted plaintext.")
	cobra.CheckErr(viper.BindPFlag("key", rootCmd.PersistentFlags().Lookup("key")))
	cobra.CheckErr(viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".des" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(desConfigFile)
	}

	viper.SetEnvPrefix("DES")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	err := viper.ReadInConfig()
	initLogger()
	if err == nil {
		logger.Info().Str("file", viper.ConfigFileUsed()).Msg("using config file")
	}
}

func initLogger() {
	lvl := viper.GetString("log-level")
	level, err := zerolog.ParseLevel(lvl)
	if err != nil || lvl == "" {
		level = zerolog.WarnLevel
	}

	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().
		Timestamp().
		Logger()
	if err != nil {
		logger.Warn().Str("level", lvl).Msg("unknown log level, using warn")
	}
}

// initKey obtains the secret key from either:
//  1. The --key flag or the 'key' config entry
//  2. The 'DES_KEY' environment variable
//  3. User input from the terminal
func initKey() (uint64, error) {
	secret := viper.GetString("key")
	source := "flag, config or environment"
	if len(secret) == 0 && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stderr, "Enter the key: ")
		byteSecret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return 0, errors.Wrap(err, "reading the key")
		}
		fmt.Fprintln(os.Stderr, "")
		secret = string(byteSecret)
		source = "terminal"
	}

	if len(secret) == 0 {
		return 0, errNoKey
	}

	key, err := parseKey(secret)
	if err != nil {
		return 0, err
	}
	logger.Debug().Str("source", source).Msg("key loaded")
	return key, nil
}

// parseKey converts a key written as 16 hex digits, optionally prefixed
// with 0x and broken up by white space, into a uint64.
func parseKey(s string) (uint64, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != 2*des.KeySize {
		return 0, errors.Errorf("the key must be %d hex digits, got %d", 2*des.KeySize, len(s))
	}

	key, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, errors.Wrap(err, "invalid key")
	}
	return key, nil
}

// getInputFile returns the file named by --inputFile, or stdin.
func getInputFile() *os.File {
	if len(inputFileName) == 0 || inputFileName == "-" {
		return os.Stdin
	}

	fin, err := os.Open(inputFileName)
	cobra.CheckErr(err)
	return fin
}

/*
	getOutputFile will return the output file to use while encrypting/decrypting
	data.  An explicit --outputFile wins, "-" means stdout.  Otherwise the
	defaultName is created, or stdout is used if there is no default.
*/
func getOutputFile(defaultName string) *os.File {
	name := outputFileName
	if len(name) == 0 {
		name = defaultName
	}

	if len(name) == 0 || name == "-" {
		return os.Stdout
	}

	fout, err := os.Create(name)
	cobra.CheckErr(err)
	logger.Debug().Str("file", name).Msg("writing output")
	return fout
}

// baseName returns the input file name recorded in an encrypted file's
// header, without any directory.
func baseName(name string) string {
	if len(name) == 0 || name == "-" {
		return ""
	}
	return filepath.Base(name)
}

// checkError checks for error that are not io.EOF and io.ErrUnexpectedEOF and exits.
func checkError(e error) {
	if e != io.EOF && e != io.ErrUnexpectedEOF {
		cobra.CheckErr(e)
	}
}
