// bioino: interconvert GFF3, FASTA and tabular files.
// Copyright (c) 2021 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/bioino/blob/master/LICENSE.txt>.

package cmd

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/exascience/bioino/internal"
	"github.com/exascience/bioino/tables"
	"github.com/exascience/bioino/utils"
)

// ProgramMessage is the first line printed when the bioino binary is
// called.
var ProgramMessage string

func init() {
	ProgramMessage = fmt.Sprint(
		"\n", utils.ProgramName, " version ", utils.ProgramVersion,
		" compiled with ", runtime.Version(),
		" - see ", utils.ProgramURL, " for more information.\n",
	)
}

// HelpMessage is printed to show the --help flag
const HelpMessage = "Print command details:\n" +
	"[--help]\n"

const commonHelp = "[--output file | -o file]\n" +
	"[--log]\n" +
	"[--log-path path]\n" +
	"[--verbose]\n"

// stringList is a repeatable flag of comma-separated values.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(value string) error {
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			*l = append(*l, v)
		}
	}
	return nil
}

// commonFlags are accepted by all commands.
type commonFlags struct {
	input, output, logPath string
	logFile, verbose       bool
}

func (c *commonFlags) register(flags *flag.FlagSet) {
	flags.StringVar(&c.output, "output", "", "output file")
	flags.StringVar(&c.output, "o", "", "output file")
	flags.BoolVar(&c.logFile, "log", false, "write a log file to the home directory")
	flags.StringVar(&c.logPath, "log-path", "", "write a log file to the given directory")
	flags.BoolVar(&c.verbose, "verbose", false, "log debug messages")
}

// parseFlags parses os.Args[2:]. The input file may be given as the
// first argument before all flags, or as the only argument after them.
func parseFlags(flags *flag.FlagSet, common *commonFlags, help string) {
	args := os.Args[2:]
	if len(args) > 0 && (args[0] == "-" || !strings.HasPrefix(args[0], "-")) {
		common.input, args = args[0], args[1:]
	}
	flags.SetOutput(ioutil.Discard)
	if err := flags.Parse(args); err != nil {
		x := 0
		if err != flag.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			x = 1
		}
		fmt.Fprint(os.Stderr, help)
		os.Exit(x)
	}
	if flags.NArg() == 1 && common.input == "" {
		common.input = flags.Arg(0)
	} else if flags.NArg() > 0 {
		fmt.Fprintln(os.Stderr, "Cannot parse remaining parameters:", flags.Args())
		fmt.Fprint(os.Stderr, help)
		os.Exit(1)
	}
}

func displayName(filename string) string {
	if filename == "" || filename == "-" {
		return "stdin/stdout"
	}
	if fullPath, err := internal.FullPathname(filename); err == nil {
		return fullPath
	}
	return filename
}

// setupLogging configures the default logger, and optionally tees it
// into a log file.
func setupLogging(common *commonFlags) error {
	log.SetReportTimestamp(true)
	if common.verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	if common.logFile || common.logPath != "" {
		return setLogOutput(common.logPath)
	}
	return nil
}

func createLogFilename() string {
	t := time.Now()
	return fmt.Sprintf("logs/bioino/bioino-%d-%02d-%02d-%02d-%02d-%02d-%v.log", t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), uuid.New())
}

func setLogOutput(path string) error {
	var err error
	if path == "" {
		path, err = homedir.Dir()
	} else {
		path, err = homedir.Expand(path)
	}
	if err != nil {
		return errors.Wrap(err, "while determining the log directory")
	}
	fullPath := filepath.Join(path, createLogFilename())
	if err := os.MkdirAll(filepath.Dir(fullPath), 0700); err != nil {
		return err
	}
	f, err := os.Create(fullPath)
	if err != nil {
		return err
	}
	fmt.Fprintln(f, ProgramMessage)

	orgStderr, err := unix.Dup(2)
	if err != nil {
		return errors.Wrap(err, "while duplicating stderr")
	}
	ferr := os.NewFile(uintptr(orgStderr), "/dev/stderr")
	if err := unix.Dup2(int(f.Fd()), 2); err != nil {
		return errors.Wrap(err, "while redirecting stderr")
	}

	log.SetOutput(io.MultiWriter(f, ferr))
	log.Info("Created log file", "path", fullPath)
	log.Info("Command line", "args", strings.Join(os.Args, " "))
	return nil
}

// IsBrokenPipe reports whether err stems from writing to a closed
// pipe, for example when the output is piped into head.
func IsBrokenPipe(err error) bool {
	return errors.Is(err, unix.EPIPE)
}

// tableFormat determines the table format from a flag value, or else
// from the file name, or else defaults to TSV.
func tableFormat(flagValue, filename string) (tables.Format, error) {
	if flagValue != "" {
		return tables.ParseFormat(flagValue)
	}
	if filename != "" && filename != "-" && !strings.HasPrefix(filename, "/dev/") {
		if format, err := tables.SniffFormat(filename); err == nil || err == tables.ErrUnsupportedFormat {
			return format, err
		}
	}
	return tables.TSV, nil
}

func parsePositions(values []string) ([]int, error) {
	positions := make([]int, 0, len(values))
	for _, value := range values {
		pos, err := strconv.Atoi(value)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid position %v", value)
		}
		positions = append(positions, pos)
	}
	return positions, nil
}

func writeOutput(filename string, write func(w io.Writer) error) (err error) {
	output, err := utils.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if nerr := output.Close(); err == nil {
			err = nerr
		}
	}()
	return write(output)
}
