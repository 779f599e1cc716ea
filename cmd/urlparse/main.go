// urlparse splits URLs into their components using a public suffix list.
//
// URLs are taken from the command line arguments, or one per line from
// standard input when there are none. Each result is printed as a JSON line.
// The exit status is 1 if any URL could not be parsed.

package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/database64128/urlparse-go/logging"
	"github.com/database64128/urlparse-go/psl"
	"github.com/database64128/urlparse-go/urlparser"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	pslPath   string
	pslFormat string
	icann     bool
	legacy    bool
	base      bool
	zapConf   string
	logLevel  zapcore.Level
)

func init() {
	flag.StringVar(&pslPath, "pslPath", psl.DefaultPath, "Path to the public suffix list file")
	flag.StringVar(&pslFormat, "pslFormat", "text", "Format of the public suffix list file.\nAvailable formats: text, gob")
	flag.BoolVar(&icann, "icann", false, "Use only the ICANN section of the public suffix list")
	flag.BoolVar(&legacy, "legacy", false, "Print the deprecated map form of each result")
	flag.BoolVar(&base, "base", false, "Print only the base URL of each input")
	flag.StringVar(&zapConf, "zapConf", "console", "Preset name or path to the JSON configuration file for building the zap logger.\nAvailable presets: console, console-nocolor, console-notime, systemd, production, development")
	flag.TextVar(&logLevel, "logLevel", zapcore.WarnLevel, "Log level for the console and systemd presets.\nAvailable levels: debug, info, warn, error, dpanic, panic, fatal")
}

func main() {
	flag.Parse()

	logger, err := logging.NewZapLogger(zapConf, logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to build logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	set, err := psl.NewLazy(psl.Config{
		Path:      pslPath,
		Format:    pslFormat,
		ICANNOnly: icann,
	}, logger).Get()
	if err != nil {
		logger.Fatal("Failed to load public suffix list", zap.String("pslPath", pslPath), zap.Error(err))
	}

	p := urlparser.NewParser(set, logger)
	w := bufio.NewWriter(os.Stdout)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	var failed bool
	handle := func(url string) {
		if err := parseOne(p, enc, url); err != nil {
			logger.Error("Failed to parse URL", zap.String("url", url), zap.Error(err))
			failed = true
		}
	}

	if args := flag.Args(); len(args) > 0 {
		for _, url := range args {
			handle(url)
		}
	} else if err = forEachLine(os.Stdin, handle); err != nil {
		logger.Error("Failed to read standard input", zap.Error(err))
		failed = true
	}

	if err = w.Flush(); err != nil {
		logger.Error("Failed to write output", zap.Error(err))
		failed = true
	}

	if failed {
		logger.Sync()
		os.Exit(1)
	}
}

func parseOne(p *urlparser.Parser, enc *json.Encoder, url string) error {
	switch {
	case base:
		baseURL, err := p.BaseURL(url)
		if err != nil {
			return err
		}
		return enc.Encode(baseURL)

	case legacy:
		m, err := p.ParseMap(url)
		if err != nil {
			return err
		}
		return enc.Encode(m)

	default:
		pu, err := p.Parse(url)
		if err != nil {
			return err
		}
		return enc.Encode(pu)
	}
}

// forEachLine calls fn with each non-blank line of r, trimmed of surrounding whitespace.
func forEachLine(r io.Reader, fn func(string)) error {
	s := bufio.NewScanner(r)
	for s.Scan() {
		if line := strings.TrimSpace(s.Text()); line != "" {
			fn(line)
		}
	}
	return s.Err()
}
