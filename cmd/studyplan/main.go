package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"studybuddy/internal/concurrency"
	"studybuddy/internal/config"
	"studybuddy/internal/devutil"
	"studybuddy/internal/domain"
	"studybuddy/internal/export"
	"studybuddy/internal/httpx"
	"studybuddy/internal/logx"
	"studybuddy/internal/mappers"
	"studybuddy/internal/providers"
	"studybuddy/internal/providers/file"
	"studybuddy/internal/quotes"
	"studybuddy/internal/scheduler"
	"studybuddy/internal/sftpclient"
)

// listFlag collects a repeatable flag; each value may itself be a comma list
// when split is set.
type listFlag struct {
	values []string
	split  bool
}

func (l *listFlag) String() string { return strings.Join(l.values, ",") }

func (l *listFlag) Set(v string) error {
	if !l.split {
		l.values = append(l.values, v)
		return nil
	}
	l.values = append(l.values, splitCSV(v)...)
	return nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type options struct {
	inputs      []string
	courses     []string
	outputs     []string
	strategy    string
	today       string
	configPath  string
	compare     bool
	quote       bool
	chart       bool
	upload      bool
	debugFields []string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("studyplan", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		in      = &listFlag{split: true}
		course  = &listFlag{}
		out     = &listFlag{split: true}
		opts    options
		debugFs string
	)
	fs.Var(in, "in", "course file (.csv, .json, .yaml); repeatable")
	fs.Var(course, "course", `inline course "Name,deadline,hours"; repeatable`)
	fs.Var(out, "out", "output file(s) .csv/.txt/.xlsx, optional .br suffix; repeatable or comma list")
	fs.StringVar(&opts.strategy, "strategy", "", "even | urgency | pomodoro (overrides config)")
	fs.StringVar(&opts.today, "today", "", "override today's date (YYYY-MM-DD)")
	fs.StringVar(&opts.configPath, "config", "", "YAML/JSON config file")
	fs.BoolVar(&opts.compare, "compare", false, "print per-course totals for every strategy")
	fs.BoolVar(&opts.quote, "quote", false, "print a motivational quote")
	fs.BoolVar(&opts.chart, "chart", false, "print the minutes-per-course chart")
	fs.BoolVar(&opts.upload, "sftp", false, "upload written files via SFTP")
	fs.StringVar(&debugFs, "debug-fields", "", "log these block fields at debug level (e.g. course,date)")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	opts.inputs = in.values
	opts.courses = course.values
	opts.outputs = out.values
	opts.debugFields = devutil.ParseKeys(debugFs)

	if len(opts.inputs) == 0 && len(opts.courses) == 0 {
		return options{}, errors.New("no courses: pass -in and/or -course")
	}
	if opts.upload && len(opts.outputs) == 0 {
		return options{}, errors.New("-sftp needs at least one -out file")
	}
	return opts, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "studyplan:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.LoadFile(opts.configPath)
	if err != nil {
		return err
	}
	if opts.strategy != "" {
		cfg.Strategy = opts.strategy
	}
	if opts.today != "" {
		cfg.Today = opts.today
	}

	logSvc, log := logx.New(logx.Config{Level: cfg.LogLevel, Console: cfg.LogConsole, File: cfg.LogFile})
	defer logSvc.Close()

	engine := scheduler.NewEngine(log)
	today, err := resolveToday(cfg.Today, engine)
	if err != nil {
		return err
	}

	courses, err := loadCourses(ctx, opts)
	if err != nil {
		return err
	}
	log.Info("courses loaded", logx.Int("count", len(courses)), logx.String("today", scheduler.FormatDate(today)))

	if opts.compare {
		if err := writeComparison(stdout, engine, courses, today); err != nil {
			return err
		}
	}

	schedule, err := engine.Generate(cfg.Strategy, courses, today)
	if err != nil {
		return err
	}

	if len(opts.debugFields) > 0 && log.Enabled(logx.LevelDebug) {
		for i, m := range devutil.PickEach(schedule, opts.debugFields...) {
			log.Debug("block", logx.Int("i", i), logx.Any("fields", m))
		}
	}

	if len(opts.outputs) == 0 {
		if err := export.WriteText(stdout, schedule); err != nil {
			return err
		}
		if len(schedule) > 0 {
			fmt.Fprintln(stdout)
		}
	} else if err := writeOutputs(ctx, opts.outputs, schedule, log); err != nil {
		return err
	}

	if opts.chart {
		if err := export.WriteChart(stdout, export.Summarize(schedule)); err != nil {
			return err
		}
	}

	if opts.quote {
		client := httpx.New(cfg.QuoteTimeout, cfg.QuoteRatePerSec, log)
		qctx, cancel := context.WithTimeout(ctx, cfg.QuoteTimeout)
		fmt.Fprintln(stdout, quotes.New(cfg.QuoteURL, client, log).Line(qctx))
		cancel()
	}

	if opts.upload {
		return uploadOutputs(ctx, cfg, opts.outputs, log)
	}
	return nil
}

// resolveToday uses the override when set, else the engine clock.
func resolveToday(override string, engine *scheduler.Engine) (time.Time, error) {
	if strings.TrimSpace(override) == "" {
		return engine.Today(), nil
	}
	t, err := time.Parse(scheduler.DateLayout, strings.TrimSpace(override))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid today %q: want YYYY-MM-DD", override)
	}
	return t, nil
}

func loadCourses(ctx context.Context, opts options) ([]domain.CourseRequest, error) {
	var ps []providers.CourseProvider
	for _, path := range opts.inputs {
		ps = append(ps, file.New(path))
	}
	if len(opts.courses) > 0 {
		inline := make([]domain.CourseRequest, 0, len(opts.courses))
		for _, s := range opts.courses {
			c, err := mappers.CourseFromFlag(s)
			if err != nil {
				return nil, err
			}
			inline = append(inline, c)
		}
		ps = append(ps, providers.Static{Label: "flags", Courses: inline})
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	return providers.Collect(ctx, ps...)
}

func writeComparison(w io.Writer, engine *scheduler.Engine, courses []domain.CourseRequest, today time.Time) error {
	for _, name := range scheduler.Strategies() {
		schedule, err := engine.Generate(name, courses, today)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "== %s (%d blocks)\n", name, len(schedule))
		if err := export.WriteChart(w, export.Summarize(schedule)); err != nil {
			return err
		}
	}
	return nil
}

func writeOutputs(ctx context.Context, paths []string, schedule domain.Schedule, log logx.Logger) error {
	errs := concurrency.ForEach(ctx, paths, concurrency.ParallelOptions{MaxWorkers: 4},
		func(ctx context.Context, _ int, path string) error {
			if err := export.WriteFile(path, schedule); err != nil {
				return err
			}
			log.Info("wrote schedule", logx.String("path", path), logx.Int("blocks", len(schedule)))
			return nil
		})
	return errors.Join(errs...)
}

func uploadOutputs(ctx context.Context, cfg config.Config, paths []string, log logx.Logger) error {
	upCfg := sftpclient.Config{
		Host:                  cfg.SFTPHost,
		Port:                  cfg.SFTPPort,
		User:                  cfg.SFTPUser,
		Pass:                  cfg.SFTPPass,
		RemoteDir:             cfg.SFTPDir,
		KnownHosts:            cfg.SFTPKnownHosts,
		InsecureIgnoreHostKey: cfg.SFTPInsecureIgnoreHostKey,
	}

	upCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	for _, p := range paths {
		remoteName := filepath.Base(p)
		if err := sftpclient.UploadFile(upCtx, upCfg, p, remoteName); err != nil {
			return err
		}
		log.Info("uploaded", logx.String("remote", fmt.Sprintf("sftp://%s:%d%s/%s", upCfg.Host, upCfg.Port, upCfg.RemoteDir, remoteName)))
	}
	return nil
}
