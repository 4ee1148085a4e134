package workout

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"
)

var errNoStore = errors.New("command needs the history store")

type CLI struct {
	writer   io.Writer
	service  *Service
	packages []Package
	addr     string
	logger   *slog.Logger
}

func NewCLI(w io.Writer, logger *slog.Logger, service *Service, packages []Package, addr string) *CLI {
	return &CLI{
		writer:   w,
		service:  service,
		packages: packages,
		addr:     addr,
		logger:   logger,
	}
}

// NeedsStore reports whether the command in args reads or writes the
// history store. Printing the configured packages does not.
func NeedsStore(args []string) bool {
	if len(args) == 0 {
		return false
	}
	switch args[0] {
	case "add", "gpx", "history", "api":
		return true
	}
	return false
}

func (c *CLI) Run(args []string) error {
	if len(args) == 0 {
		return c.Show()
	}

	switch args[0] {
	case "show":
		return c.Show()
	case "add":
		return c.AddWorkout(args[1:])
	case "gpx":
		return c.ImportGPX(args[1:])
	case "history":
		return c.History(context.Background())
	case "api":
		return c.RunAPI(context.Background())
	default:
		c.Usage()
	}
	return nil
}

func (c *CLI) Usage() {
	fmt.Fprintf(c.writer, "Usage: ftracker [command] [flags]\n--help show this message\n\n\tshow\n\tadd --code --data\n\tgpx --code --file --weight [--height]\n\thistory\n\tapi\n")
}

// Show prints the summary of every configured package in order.
func (c *CLI) Show() error {
	for _, pkg := range c.packages {
		calc, err := ReadPackage(pkg.Code, pkg.Data)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.writer, Summarize(calc).Message())
	}
	return nil
}

func (c *CLI) AddWorkout(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(c.writer)
	var code, data string
	fs.StringVar(&code, "code", "", "workout code: SWM, RUN or WLK")
	fs.StringVar(&data, "data", "", "comma separated sensor readings")
	fs.Usage = c.Usage

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	readings, err := parseReadings(data)
	if err != nil {
		return err
	}

	return c.store(Package{Code: code, Data: readings}, "")
}

func (c *CLI) ImportGPX(args []string) error {
	fs := flag.NewFlagSet("gpx", flag.ContinueOnError)
	fs.SetOutput(c.writer)
	var code, gpxFile string
	var weight, height float64
	fs.StringVar(&code, "code", CodeRunning, "workout code: RUN or WLK")
	fs.StringVar(&gpxFile, "file", "", "path to gpx file")
	fs.Float64Var(&weight, "weight", 0, "weight in kg")
	fs.Float64Var(&height, "height", 0, "height in cm, walking only")
	fs.Usage = c.Usage

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if gpxFile == "" {
		fs.Usage()
		return fmt.Errorf("missing --file")
	}

	c.logger.Info("Importing gpx file", slog.String("gpx_file", gpxFile))

	gpxBytes, err := readGPXFile(gpxFile)
	if err != nil {
		return err
	}

	pkg, err := ReadGPX(code, gpxBytes, weight, height)
	if err != nil {
		return err
	}

	return c.store(pkg, gpxHash(gpxBytes))
}

func (c *CLI) store(pkg Package, hash string) error {
	if c.service == nil {
		return errNoStore
	}
	w, err := c.service.Add(context.Background(), pkg, hash)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.writer, w.Message)
	c.logger.Info("Workout added", slog.String("id", w.ID))
	return nil
}

func (c *CLI) History(ctx context.Context) error {
	if c.service == nil {
		return errNoStore
	}
	workouts, err := c.service.List(ctx)
	if err != nil {
		return err
	}

	for _, w := range workouts {
		fmt.Fprintf(c.writer, "%s %s %s\n", w.ID, w.Created.Format(time.DateOnly), w.Message)
	}
	return nil
}

func (c *CLI) RunAPI(ctx context.Context) error {
	if c.service == nil {
		return errNoStore
	}
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	server := &http.Server{
		Addr:    c.addr,
		Handler: NewAPI(c.logger, c.service),
	}

	go func() {
		<-ctx.Done()
		c.logger.Info("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			c.logger.Error("Error shutting down server", slog.Any("error", err))
		}
	}()

	c.logger.Info("Starting server", slog.String("addr", c.addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		c.logger.Error("Error starting server", slog.Any("error", err))
		return err
	}

	return nil
}

func parseReadings(data string) ([]float64, error) {
	if strings.TrimSpace(data) == "" {
		return nil, fmt.Errorf("missing --data")
	}

	parts := strings.Split(data, ",")
	readings := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parsing reading %q: %w", p, err)
		}
		readings = append(readings, v)
	}
	return readings, nil
}
