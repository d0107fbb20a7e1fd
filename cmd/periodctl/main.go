// periodctl formats, parses and stores periods, locally or through a periodd server.
package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/lambdcalculus/periods/internal/config"
	"github.com/lambdcalculus/periods/pkg/logger"
	"github.com/lambdcalculus/periods/pkg/packets"
	"github.com/lambdcalculus/periods/pkg/period"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

type cmdHandler func(b backend, args []string) error

type command struct {
	handler     cmdHandler
	args        int
	description string
	usage       string
}

var commands map[string]command

var (
	confPath  string
	dbPath    string
	serverURL string
	token     string
	format    string
	lang      string
	fields    string
	fallback  period.Period
)

func init() {
	logger.SetLogger(logger.NewLogger(logger.PlainFmt, logger.LevelInfo, os.Stderr))

	pflag.CommandLine.SetOutput(os.Stdout)
	pflag.CommandLine.Usage = printUsage

	commands = map[string]command{
		"help":       {nil, 0, "shows usage information about a command", "periodctl help [command]"},
		"print":      {handlePrint, 0, "prints a period in a format", "periodctl [-f format] [-l lang] print [period]"},
		"parse":      {handleParse, 1, "parses text in a format", "periodctl [-f format] [--fields list] parse <text>"},
		"normalize":  {handleNormalize, 0, "normalizes a period into standard units", "periodctl [--fields list] normalize [period]"},
		"between":    {handleBetween, 2, "gives the period between two RFC 3339 instants", "periodctl [--fields list] between <start> <end>"},
		"add":        {handleAdd, 2, "adds a period to an RFC 3339 instant", "periodctl add <period> <instant> [times]"},
		"save":       {handleSave, 1, "saves a period under a name", "periodctl [--fields list] save <name> [period]"},
		"load":       {handleLoad, 1, "shows a saved period", "periodctl [-f format] load <name>"},
		"list":       {handleList, 0, "lists saved periods", "periodctl [-f format] list"},
		"rm":         {handleRm, 1, "removes a saved period", "periodctl rm <name>"},
		"formats":    {handleFormats, 0, "lists the available formats", "periodctl formats"},
		"hash-token": {nil, 1, "prints the bcrypt hash of a token, for auth_hash", "periodctl hash-token <token>"},
	}

	pflag.StringVarP(&confPath, "config", "c", "", "path to config.toml")
	pflag.StringVar(&dbPath, "db", "", "SQLite database (overrides the config)")
	pflag.StringVarP(&serverURL, "server", "s", "", "periodd websocket URL, e.g. ws://localhost:8080/ (default: work locally)")
	pflag.StringVarP(&token, "token", "t", "", "token sent to the server")
	pflag.StringVarP(&format, "format", "f", "iso", "format to print or parse with")
	pflag.StringVarP(&lang, "lang", "l", "", "language of the words format")
	pflag.StringVar(&fields, "fields", "", "comma separated fields of the result, e.g. days,hours")
	period.PeriodVar(pflag.CommandLine, &fallback, "period", period.Zero, "period used when a command's period argument is omitted")
}

func main() {
	pflag.Parse()

	if len(pflag.Args()) < 1 {
		logger.Fatalf("No command given.")
		pflag.CommandLine.Usage()
		os.Exit(1)
	}

	cmdName := pflag.Args()[0]
	cmd, ok := commands[cmdName]
	if !ok {
		logger.Fatalf("Unknown command %q.", cmdName)
		pflag.CommandLine.Usage()
		os.Exit(1)
	}
	cmdArgs := pflag.Args()[1:]
	if len(cmdArgs) < cmd.args {
		logger.Fatalf("Not enough arguments for %v (need %v, got %v).", cmdName, cmd.args, len(cmdArgs))
		showHelp(cmdName)
		os.Exit(1)
	}

	// These need no backend.
	switch cmdName {
	case "help":
		if len(cmdArgs) == 0 {
			pflag.CommandLine.Usage()
		} else {
			showHelp(cmdArgs[0])
		}
		return
	case "hash-token":
		hash, err := bcrypt.GenerateFromPassword([]byte(cmdArgs[0]), bcrypt.DefaultCost)
		if err != nil {
			logger.Fatalf("hash-token: Failed (%v).", err)
			os.Exit(1)
		}
		fmt.Println(string(hash))
		return
	}

	b, err := connect()
	if err != nil {
		logger.Fatalf("%v", err)
		os.Exit(1)
	}
	defer b.close()

	if err := cmd.handler(b, cmdArgs); err != nil {
		logger.Errorf("%v: %v", cmdName, err)
		b.close()
		os.Exit(1)
	}
}

func connect() (backend, error) {
	if serverURL != "" {
		return dialRemote(serverURL, token)
	}
	conf, err := config.Read(confPath)
	if err != nil {
		logger.Debugf("%v Using defaults.", err)
	}
	if dbPath != "" {
		conf.Server.Database = dbPath
	}
	return newLocal(conf)
}

// periodArg returns args[i] as a period, or the --period flag if it is missing.
func periodArg(args []string, i int) (period.Period, error) {
	if len(args) <= i {
		return fallback, nil
	}
	return period.ISOStandard().ParsePeriod(args[i])
}

func instantArg(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return t, fmt.Errorf("bad instant %q (%w)", s, err)
	}
	return t, nil
}

func handlePrint(b backend, args []string) error {
	p, err := periodArg(args, 0)
	if err != nil {
		return err
	}
	var out packets.DataText
	if err := call(b, packets.HeaderPrint, packets.DataPrint{Period: p, Format: format, Lang: lang}, &out); err != nil {
		return err
	}
	fmt.Println(out.Text)
	return nil
}

func handleParse(b backend, args []string) error {
	var out packets.DataPeriod
	req := packets.DataParse{Text: args[0], Format: format, Lang: lang, Fields: fields}
	if err := call(b, packets.HeaderParse, req, &out); err != nil {
		return err
	}
	fmt.Printf("%v (%v)\n", out.Period, out.Fields)
	return nil
}

func handleNormalize(b backend, args []string) error {
	p, err := periodArg(args, 0)
	if err != nil {
		return err
	}
	var out packets.DataPeriod
	if err := call(b, packets.HeaderNormalize, packets.DataNormalize{Period: p, Fields: fields}, &out); err != nil {
		return err
	}
	fmt.Println(out.Period)
	return nil
}

func handleBetween(b backend, args []string) error {
	start, err := instantArg(args[0])
	if err != nil {
		return err
	}
	end, err := instantArg(args[1])
	if err != nil {
		return err
	}
	var out packets.DataPeriod
	if err := call(b, packets.HeaderBetween, packets.DataBetween{Start: start, End: end, Fields: fields}, &out); err != nil {
		return err
	}
	fmt.Println(out.Period)
	return nil
}

func handleAdd(b backend, args []string) error {
	p, err := period.ISOStandard().ParsePeriod(args[0])
	if err != nil {
		return err
	}
	instant, err := instantArg(args[1])
	if err != nil {
		return err
	}
	scalar := 1
	if len(args) > 2 {
		if scalar, err = strconv.Atoi(args[2]); err != nil {
			return fmt.Errorf("bad multiple %q", args[2])
		}
	}
	var out packets.DataInstant
	if err := call(b, packets.HeaderAdd, packets.DataAdd{Period: p, Instant: instant, Scalar: scalar}, &out); err != nil {
		return err
	}
	fmt.Println(out.Instant.Format(time.RFC3339))
	return nil
}

func handleSave(b backend, args []string) error {
	p, err := periodArg(args, 1)
	if err != nil {
		return err
	}
	var out packets.DataPeriod
	if err := call(b, packets.HeaderSave, packets.DataSave{Name: args[0], Period: p, Fields: fields}, &out); err != nil {
		return err
	}
	fmt.Printf("save: Period '%v' saved as %v (%v).\n", args[0], out.Period, out.Fields)
	return nil
}

func handleLoad(b backend, args []string) error {
	var e packets.DataEntry
	if err := call(b, packets.HeaderLoad, packets.DataName{Name: args[0]}, &e); err != nil {
		return err
	}
	text, err := printIn(b, e.Period)
	if err != nil {
		return err
	}
	fmt.Printf("%v\t%v\t%v\t%v\n", e.Name, text, e.Fields, e.Created.Local().Format(time.DateTime))
	return nil
}

func handleList(b backend, args []string) error {
	var entries []packets.DataEntry
	if err := call(b, packets.HeaderList, nil, &entries); err != nil {
		return err
	}
	for _, e := range entries {
		text, err := printIn(b, e.Period)
		if err != nil {
			return err
		}
		fmt.Printf("%v\t%v\n", e.Name, text)
	}
	return nil
}

func handleRm(b backend, args []string) error {
	if err := call(b, packets.HeaderDelete, packets.DataName{Name: args[0]}, nil); err != nil {
		return err
	}
	fmt.Printf("rm: Period '%v' removed succesfully!\n", args[0])
	return nil
}

func handleFormats(b backend, args []string) error {
	var names []string
	if err := call(b, packets.HeaderFormats, nil, &names); err != nil {
		return err
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

// printIn renders p in the --format chosen on the command line.
func printIn(b backend, p period.Period) (string, error) {
	if format == "iso" {
		return p.String(), nil
	}
	var out packets.DataText
	if err := call(b, packets.HeaderPrint, packets.DataPrint{Period: p, Format: format, Lang: lang}, &out); err != nil {
		return "", err
	}
	return out.Text, nil
}

func showHelp(name string) {
	cmd, ok := commands[name]
	if !ok {
		fmt.Printf("help: command '%v' does not exist.\n", name)
		os.Exit(1)
	}
	fmt.Printf("Usage of %v:\n", name)
	fmt.Printf("    %v\n", cmd.usage)
}

func printUsage() {
	fmt.Print(
		"Usage of periodctl:\n" +
			"    periodctl [flags] [command] [args...]\n")
	fmt.Println()
	fmt.Println("Flags:")
	pflag.CommandLine.PrintDefaults()
	fmt.Println()
	fmt.Println("Available commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("    %v: %v.\n", name, commands[name].description)
	}
}
